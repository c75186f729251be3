package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestArea(t *testing.T) {
	for _, tc := range []struct {
		shape Shape
		name  string
		area  float64
	}{
		{shape: Rectangle{Length: 2, Width: 3}, name: "Rectangle", area: 6},
		{shape: Rectangle{}, name: "Rectangle", area: 0},
		{shape: Circle{Radius: 1}, name: "Circle", area: math.Pi},
		{shape: Circle{Radius: 2}, name: "Circle", area: 4 * math.Pi},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.name, tc.shape.Name())
			require.InDelta(t, tc.area, tc.shape.Area(), 1e-9)
		})
	}
}

func TestTotalArea(t *testing.T) {
	require.Zero(t, TotalArea[Shape]())
	require.InDelta(t, 6+math.Pi, TotalArea[Shape](Rectangle{Length: 2, Width: 3}, Circle{Radius: 1}), 1e-9)
	require.InDelta(t, 2.0, TotalArea(Rectangle{1, 1}, Rectangle{1, 1}), 1e-9)
}

func TestSpec_Build(t *testing.T) {
	var specs []Spec
	require.NoError(t, yaml.Unmarshal([]byte(`
- kind: rectangle
  length: 4
  width: 5
- kind: circle
  radius: 3
`), &specs))

	shapes := make([]Shape, 0, len(specs))
	for _, s := range specs {
		shape, err := s.Build()
		require.NoError(t, err)
		shapes = append(shapes, shape)
	}
	require.Equal(t, []Shape{Rectangle{Length: 4, Width: 5}, Circle{Radius: 3}}, shapes)

	_, err := Spec{Kind: "triangle"}.Build()
	require.ErrorIs(t, err, ErrUnknownKind)

	_, err = Spec{Kind: "circle", Radius: -1}.Build()
	require.Error(t, err)
}
