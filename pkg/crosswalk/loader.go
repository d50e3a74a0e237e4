package crosswalk

import (
	"fmt"
	"strings"

	"github.com/jonas-p/go-shp"

	"github.com/coolbeans/regula/pkg/errtax"
)

// feature is one polygon feature read from a shapefile, with its rings
// still in geographic (lon/lat) coordinates.
type feature struct {
	ID        string
	StateFIPS string
	Rings     [][][2]float64
}

// tribalAreaIDField, countyIDField and stateFIPSField name the DBF
// attribute columns the crosswalk
// builder expects on each input shapefile.
const (
	tribalAreaIDField = "GEOID"
	countyIDField     = "GEOID"
	stateFIPSField    = "STATEFP"
)

// loadFeatures reads every polygon record from a shapefile, pairing each
// with the requested attribute columns.
func loadFeatures(path, idField, stateField string) ([]feature, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, errtax.IO(path, fmt.Errorf("open shapefile: %w", err))
	}
	defer reader.Close()

	fields := reader.Fields()
	idIdx, stateIdx := -1, -1
	for i, f := range fields {
		name := strings.TrimRight(string(f.Name[:]), "\x00")
		switch name {
		case idField:
			idIdx = i
		case stateField:
			stateIdx = i
		}
	}
	if idIdx < 0 {
		return nil, errtax.DataIntegrity(path, fmt.Errorf("missing field %q", idField))
	}

	var out []feature
	for reader.Next() {
		n, shape := reader.Shape()
		poly, ok := shape.(*shp.Polygon)
		if !ok {
			continue
		}

		f := feature{ID: reader.ReadAttribute(n, idIdx)}
		if stateIdx >= 0 {
			f.StateFIPS = reader.ReadAttribute(n, stateIdx)
		}
		f.Rings = ringsFromShape(poly)
		out = append(out, f)
	}
	return out, nil
}

// ringsFromShape splits a shp.Polygon's flat point/part arrays into
// separate rings of (lon, lat) pairs.
func ringsFromShape(poly *shp.Polygon) [][][2]float64 {
	parts := append(poly.Parts, int32(len(poly.Points)))
	rings := make([][][2]float64, 0, len(poly.Parts))
	for i := 0; i < len(poly.Parts); i++ {
		start, end := parts[i], parts[i+1]
		ring := make([][2]float64, 0, end-start)
		for _, p := range poly.Points[start:end] {
			ring = append(ring, [2]float64{p.X, p.Y})
		}
		rings = append(rings, ring)
	}
	return rings
}
