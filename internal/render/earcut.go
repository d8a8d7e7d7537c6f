package render

import (
	"fmt"

	"github.com/rclancey/earcut"

	"github.com/irfansharif/palettepro/internal/geom"
)

// earClip triangulates a polygon (optionally with holes) using the earcut
// algorithm, returning a slice of triangles, each represented as a
// [3]geom.Point.
func earClip(outer []geom.Point, holes ...[]geom.Point) ([][3]geom.Point, error) {
	if len(outer) < 3 {
		return nil, fmt.Errorf("degenerate polygon (%d vertices < 3)", len(outer))
	}

	// Convert polygon points to flat coordinate array required by earcut.
	// Format: [x0, y0, x1, y1, ..., xn, yn], outer ring first, then each hole.
	total := len(outer)
	for _, hole := range holes {
		total += len(hole)
	}
	vertexCoords := make([]float64, 0, total*2)
	for _, point := range outer {
		vertexCoords = append(vertexCoords, point.X, point.Y)
	}

	var holeIndices []int
	for _, hole := range holes {
		if len(hole) < 3 {
			return nil, fmt.Errorf("degenerate hole (%d vertices < 3)", len(hole))
		}
		holeIndices = append(holeIndices, len(vertexCoords)/2)
		for _, point := range hole {
			vertexCoords = append(vertexCoords, point.X, point.Y)
		}
	}

	triangleIndices, err := earcut.Earcut(vertexCoords, holeIndices, 2 /* dim */)
	if err != nil {
		return nil, fmt.Errorf("triangulation failed for %d-vertex polygon: %w", total, err)
	}

	if len(triangleIndices)%3 != 0 {
		return nil, fmt.Errorf("invalid triangle count (indices: %d, not divisible by 3)", len(triangleIndices))
	}

	// Convert triangle indices back to geom.Point triangles. Each vertex
	// index maps to a (x,y) pair in vertexCoords.
	triangles := make([][3]geom.Point, len(triangleIndices)/3)
	for i := range triangles {
		for v := 0; v < 3; v++ {
			idx := triangleIndices[i*3+v]
			triangles[i][v] = geom.Point{X: vertexCoords[idx*2], Y: vertexCoords[idx*2+1]}
		}
	}
	return triangles, nil
}
