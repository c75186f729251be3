package geometry

import (
	"errors"
	"fmt"
	"math"
)

type Shape interface {
	Area() float64
	Name() string
}

type Rectangle struct {
	Length float64
	Width  float64
}

func (r Rectangle) Area() float64 {
	return r.Length * r.Width
}

func (r Rectangle) Name() string {
	return "Rectangle"
}

type Circle struct {
	Radius float64
}

func (c Circle) Area() float64 {
	return math.Pi * c.Radius * c.Radius
}

func (c Circle) Name() string {
	return "Circle"
}

func TotalArea[S Shape](shapes ...S) float64 {
	var total float64
	for _, s := range shapes {
		total += s.Area()
	}
	return total
}

var ErrUnknownKind = errors.New("geometry: unknown shape kind")

// Spec is the YAML form of a shape.
type Spec struct {
	Kind   string  `yaml:"kind"`
	Length float64 `yaml:"length,omitempty"`
	Width  float64 `yaml:"width,omitempty"`
	Radius float64 `yaml:"radius,omitempty"`
}

func (s Spec) Build() (Shape, error) {
	switch s.Kind {
	case "rectangle":
		if s.Length < 0 || s.Width < 0 {
			return nil, fmt.Errorf("geometry: negative rectangle side %vx%v", s.Length, s.Width)
		}
		return Rectangle{Length: s.Length, Width: s.Width}, nil
	case "circle":
		if s.Radius < 0 {
			return nil, fmt.Errorf("geometry: negative radius %v", s.Radius)
		}
		return Circle{Radius: s.Radius}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, s.Kind)
	}
}
