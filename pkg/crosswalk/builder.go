// Package crosswalk builds the Tribal-area-to-county area-weight mapping
// consumed by the hazard aggregator. Structurally grounded on the teacher's
// pkg/store.GraphBuilder (a builder that loads raw inputs, derives a
// structure, and reports build statistics); the projection/intersection
// math itself has no teacher analog and is built fresh on top of
// go-shp and simplefeatures/geom (see DESIGN.md).
package crosswalk

import (
	"fmt"
	"sort"
	"time"

	"github.com/peterstace/simplefeatures/geom"

	"github.com/coolbeans/regula/pkg/types"
)

// SliverFraction is the minimum retained raw weight share (spec §4.4 step 5).
const SliverFraction = 0.01

// BuildStats mirrors the teacher's BuildStats reporting idiom: counts
// accumulated during the build, surfaced to the caller for logging.
type BuildStats struct {
	TribalAreas      int
	CountyFeatures   int
	Pairs            int
	SliversDropped   int
	ZeroCountyAreas  int
}

// Build loads the Tribal-area and county shapefiles, partitions by
// Alaska/CONUS, projects and intersects per-partition, filters slivers,
// renormalizes, and emits the crosswalk artifact (spec §4.4).
func Build(tribalAreaShpPath, countyShpPath string) (*types.AreaWeightCrosswalk, *BuildStats, error) {
	tribalAreas, err := loadFeatures(tribalAreaShpPath, tribalAreaIDField, stateFIPSField)
	if err != nil {
		return nil, nil, err
	}
	counties, err := loadFeatures(countyShpPath, countyIDField, stateFIPSField)
	if err != nil {
		return nil, nil, err
	}

	stats := &BuildStats{TribalAreas: len(tribalAreas), CountyFeatures: len(counties)}

	akAreas, conusAreas := partition(tribalAreas)
	akCounties, conusCounties := partition(counties)

	crosswalk := make(map[string][]types.CountyWeight)

	for _, group := range []struct {
		areas    []feature
		counties []feature
		proj     albersParams
	}{
		{akAreas, akCounties, alaskaAlbers},
		{conusAreas, conusCounties, conusAlbers},
	} {
		if err := buildPartition(group.areas, group.counties, group.proj, crosswalk, stats); err != nil {
			return nil, nil, err
		}
	}

	for areaID, weights := range crosswalk {
		crosswalk[areaID] = renormalize(weights)
	}

	for _, weights := range crosswalk {
		stats.Pairs += len(weights)
	}

	result := &types.AreaWeightCrosswalk{
		Crosswalk: crosswalk,
		Metadata: types.CrosswalkMetadata{
			BuildTimestamp: time.Now().UTC().Format(time.RFC3339),
			TribalAreaFile: tribalAreaShpPath,
			CountyFile:     countyShpPath,
			MinOverlapPct:  SliverFraction,
		},
	}
	return result, stats, nil
}

// partition splits features by Alaska (state FIPS "02") vs. everything
// else (spec §4.4 step 2).
func partition(features []feature) (alaska, conus []feature) {
	for _, f := range features {
		if f.StateFIPS == "02" {
			alaska = append(alaska, f)
		} else {
			conus = append(conus, f)
		}
	}
	return alaska, conus
}

// buildPartition computes raw area-share weights for every (tribal area,
// county) pair within a single CRS partition and accumulates them into
// crosswalk, dropping slivers below SliverFraction.
func buildPartition(areas, counties []feature, proj albersParams, crosswalk map[string][]types.CountyWeight, stats *BuildStats) error {
	type projectedFeature struct {
		id   string
		poly geom.Polygon
	}

	pCounties := make([]projectedFeature, 0, len(counties))
	for _, c := range counties {
		poly, err := buildPolygonFromFeature(c, proj)
		if err != nil {
			continue
		}
		pCounties = append(pCounties, projectedFeature{id: c.ID, poly: poly})
	}

	for _, area := range areas {
		areaPoly, err := buildPolygonFromFeature(area, proj)
		if err != nil {
			continue
		}
		totalArea := areaPoly.Area()
		if totalArea <= 0 {
			stats.ZeroCountyAreas++
			continue
		}

		var weights []types.CountyWeight
		for _, county := range pCounties {
			inter, err := intersectionArea(areaPoly, county.poly)
			if err != nil || inter <= 0 {
				continue
			}
			raw := inter / totalArea
			if raw < SliverFraction {
				stats.SliversDropped++
				continue
			}
			weights = append(weights, types.CountyWeight{CountyFIPS: county.id, Weight: raw})
		}

		if len(weights) == 0 {
			continue
		}
		crosswalk[area.ID] = append(crosswalk[area.ID], weights...)
	}

	return nil
}

// renormalize rescales a Tribal area's retained weights so they sum to 1.0
// (spec §4.4 step 6), in stable county-FIPS order.
func renormalize(weights []types.CountyWeight) []types.CountyWeight {
	var total float64
	for _, w := range weights {
		total += w.Weight
	}
	if total <= 0 {
		return weights
	}
	out := make([]types.CountyWeight, len(weights))
	copy(out, weights)
	for i := range out {
		out[i].Weight = out[i].Weight / total
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CountyFIPS < out[j].CountyFIPS })
	return out
}

func buildPolygonFromFeature(f feature, proj albersParams) (geom.Polygon, error) {
	projected := make([][][2]float64, len(f.Rings))
	for i, ring := range f.Rings {
		projected[i] = projectRing(proj, ring)
	}
	p, err := buildPolygon(projected)
	if err != nil {
		return geom.Polygon{}, fmt.Errorf("feature %s: %w", f.ID, err)
	}
	return p, nil
}
