package crosswalk

import (
	"fmt"

	"github.com/peterstace/simplefeatures/geom"
)

// buildPolygon constructs a simplefeatures Polygon from one or more
// projected rings (ring 0 is the exterior, the rest are holes).
func buildPolygon(rings [][][2]float64) (geom.Polygon, error) {
	lineStrings := make([]geom.LineString, 0, len(rings))
	for _, ring := range rings {
		coords := make([]float64, 0, len(ring)*2)
		for _, pt := range ring {
			coords = append(coords, pt[0], pt[1])
		}
		seq := geom.NewSequence(coords, geom.DimXY)
		ls, err := geom.NewLineString(seq)
		if err != nil {
			return geom.Polygon{}, fmt.Errorf("build ring: %w", err)
		}
		lineStrings = append(lineStrings, ls)
	}
	poly, err := geom.NewPolygon(lineStrings)
	if err != nil {
		return geom.Polygon{}, fmt.Errorf("build polygon: %w", err)
	}
	return poly, nil
}

// intersectionArea returns the planar area (projected CRS units squared)
// of the intersection of two polygons. Zero area (including disjoint
// geometries) is a valid, non-error result.
func intersectionArea(a, b geom.Polygon) (float64, error) {
	intersection, err := geom.Intersection(a.AsGeometry(), b.AsGeometry())
	if err != nil {
		return 0, fmt.Errorf("intersect: %w", err)
	}
	if intersection.IsEmpty() {
		return 0, nil
	}
	return intersection.Area(), nil
}
