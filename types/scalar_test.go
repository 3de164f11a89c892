package types

import "testing"

func TestSmoothstep(t *testing.T) {
	type spec struct {
		a, b, x float32
		exp     float32
	}
	specs := []spec{
		{0, 1, -1, 0},
		{0, 1, 0, 0},
		{0, 1, 0.5, 0.5},
		{0, 1, 1, 1},
		{0, 1, 2, 1},
		{0.15, 0.35, 0.25, 0.5},
		// Coinciding edges behave like a hard step
		{0.5, 0.5, 0.49, 0},
		{0.5, 0.5, 0.5, 1},
		{0.5, 0.5, 0.51, 1},
	}

	for index, s := range specs {
		if got := Smoothstep(s.a, s.b, s.x); !ApproxEqual(got, s.exp, 1e-6) {
			t.Fatalf("[spec %d] expected smoothstep(%f, %f, %f) to be %f; got %f", index, s.a, s.b, s.x, s.exp, got)
		}
	}
}

func TestSmoothstepIsClamped(t *testing.T) {
	for i := -100; i <= 200; i++ {
		x := float32(i) / 100
		v := Smoothstep(0.2, 0.6, x)
		if v < 0 || v > 1 {
			t.Fatalf("expected smoothstep to stay within [0, 1] for x=%f; got %f", x, v)
		}
	}
}

func TestMapRange(t *testing.T) {
	if got := MapRange(1, -1, 1, -0.4, 0.4); !ApproxEqual(got, 0.4, 1e-6) {
		t.Fatalf("expected 0.4; got %f", got)
	}
	if got := MapRange(-1, -1, 1, 0.2, -0.2); !ApproxEqual(got, 0.2, 1e-6) {
		t.Fatalf("expected 0.2; got %f", got)
	}
	if got := MapRange(0, -1, 1, 0.1, -0.1); !ApproxEqual(got, 0, 1e-6) {
		t.Fatalf("expected 0; got %f", got)
	}
	if got := MapRange(3, 1, 1, 5, 10); got != 5 {
		t.Fatalf("expected degenerate input range to yield outMin; got %f", got)
	}
}

func TestHexColor(t *testing.T) {
	c := HexColor("#FFDDAA")
	exp := Vec3{1, float32(0xdd) / 255, float32(0xaa) / 255}
	for i := 0; i < 3; i++ {
		if !ApproxEqual(c[i], exp[i], 1e-6) {
			t.Fatalf("expected %v; got %v", exp, c)
		}
	}

	if c := HexColor("nope"); c != (Vec3{1, 1, 1}) {
		t.Fatalf("expected invalid input to yield white; got %v", c)
	}
}

func TestQuatRotation(t *testing.T) {
	q := QuatFromEulerXYZ(0, 1.5707964, 0)
	v := q.Rotate(Vec3{1, 0, 0})
	exp := Vec3{0, 0, -1}
	for i := 0; i < 3; i++ {
		if !ApproxEqual(v[i], exp[i], 1e-5) {
			t.Fatalf("expected rotated vector %v; got %v", exp, v)
		}
	}

	m := q.Mat4()
	mv := TransformPoint(m, Vec3{1, 0, 0}).Vec3()
	for i := 0; i < 3; i++ {
		if !ApproxEqual(mv[i], exp[i], 1e-5) {
			t.Fatalf("expected matrix rotated vector %v; got %v", exp, mv)
		}
	}
}
