package preset

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestReadDefaults(t *testing.T) {
	type spec struct {
		input string
		exp   Settings
	}

	specs := []spec{
		{`{"version":3,"settings":{}}`, Defaults()},
		{
			`{"version":4,"settings":{"backgroundCutoff":0.1,"middlegroundCutoff":0.7,"depthScale":1.25,"layerBlending":0.05,"isStatic":true}}`,
			Settings{BackgroundCutoff: 0.1, MiddlegroundCutoff: 0.7, DepthScale: 1.25, LayerBlending: 0.05, IsStatic: true},
		},
		// Legacy field name
		{
			`{"version":3,"settings":{"edgeFeather":0.3}}`,
			Settings{BackgroundCutoff: 0.25, MiddlegroundCutoff: 0.5, DepthScale: 0.5, LayerBlending: 0.3},
		},
		// Canonical name wins over the legacy one
		{
			`{"version":3,"settings":{"edgeFeather":0.3,"layerBlending":0.2}}`,
			Settings{BackgroundCutoff: 0.25, MiddlegroundCutoff: 0.5, DepthScale: 0.5, LayerBlending: 0.2},
		},
	}

	for index, s := range specs {
		got, err := Read(strings.NewReader(s.input))
		if err != nil {
			t.Fatalf("[spec %d] unexpected error: %v", index, err)
		}
		if !reflect.DeepEqual(*got, s.exp) {
			t.Fatalf("[spec %d] expected %+v; got %+v", index, s.exp, *got)
		}
	}
}

func TestReadInvalid(t *testing.T) {
	specs := []string{
		`{"version":2,"settings":{"depthScale":0.4}}`,
		`{"settings":{}}`,
		`{"version":4}`,
		`{"version":4,"settings":[]}`,
		`{"version":"4","settings":{}}`,
		`not json`,
		`{"version":4,"settings":{"layerBlending":0}}`,
		`{"version":4,"settings":{"backgroundCutoff":1.5}}`,
		`{"version":4,"settings":{"layerCount":0}}`,
	}

	for index, input := range specs {
		got, err := Read(strings.NewReader(input))
		if !errors.Is(err, ErrInvalidPreset) {
			t.Fatalf("[spec %d] expected ErrInvalidPreset; got %v", index, err)
		}
		if got != nil {
			t.Fatalf("[spec %d] expected no settings to be returned; got %+v", index, got)
		}
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errReadFailed
}

var errReadFailed = errors.New("read failed")

func TestReadStreamError(t *testing.T) {
	got, err := Read(failingReader{})
	if !errors.Is(err, ErrInvalidPreset) {
		t.Fatalf("expected ErrInvalidPreset; got %v", err)
	}
	if !errors.Is(err, errReadFailed) {
		t.Fatalf("expected the stream error to be wrapped; got %v", err)
	}
	if got != nil {
		t.Fatalf("expected no settings to be returned; got %+v", got)
	}
}

func TestRoundTrip(t *testing.T) {
	layers := 7
	atmosphere := 0.35
	specs := []Settings{
		Defaults(),
		{BackgroundCutoff: 0.123456789, MiddlegroundCutoff: 0.987654321, DepthScale: 2.5, LayerBlending: 0.01, IsStatic: true},
		{BackgroundCutoff: 0, MiddlegroundCutoff: 0, DepthScale: 0, LayerBlending: 1e-9, LayerCount: &layers, Atmosphere: &atmosphere},
	}

	for index, s := range specs {
		var buf bytes.Buffer
		if err := Write(&buf, &s); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), `"version": 4`) {
			t.Fatalf("[spec %d] expected version 4 in output; got %s", index, buf.String())
		}

		got, err := Read(&buf)
		if err != nil {
			t.Fatalf("[spec %d] unexpected error: %v", index, err)
		}
		if !reflect.DeepEqual(*got, s) {
			t.Fatalf("[spec %d] expected %+v; got %+v", index, s, *got)
		}
	}
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.json")
	in := Defaults()
	in.IsStatic = true
	if err := WriteFile(path, &in); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "edgeFeather") {
		t.Fatalf("expected canonical field names only; got %s", data)
	}

	out, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(*out, in) {
		t.Fatalf("expected %+v; got %+v", in, *out)
	}
}
