package shading

import "fmt"

// Role selects the compositing rules applied to a surface.
type Role uint8

const (
	Infill Role = iota
	Background
	Middleground
	Foreground
	Base
	Sliced
)

func (r Role) String() string {
	switch r {
	case Infill:
		return "infill"
	case Background:
		return "background"
	case Middleground:
		return "middleground"
	case Foreground:
		return "foreground"
	case Base:
		return "base"
	case Sliced:
		return "sliced"
	}
	return fmt.Sprintf("role(%d)", uint8(r))
}

// Returns true if surfaces with this role are displaced by the depth map.
func (r Role) Displaced() bool {
	return r == Middleground || r == Foreground || r == Base
}
