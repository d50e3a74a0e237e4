package crosswalk

import "math"

// albersParams holds the defining parameters of an Albers Equal-Area Conic
// projection: reference ellipsoid radius, standard parallels, origin.
type albersParams struct {
	radius                 float64 // authalic sphere radius, meters
	lat1, lat2, lat0, lon0 float64 // degrees
}

// conusAlbers is EPSG:5070 (NAD83 / Conus Albers) parameters.
var conusAlbers = albersParams{
	radius: 6370997.0,
	lat1:   29.5,
	lat2:   45.5,
	lat0:   23.0,
	lon0:   -96.0,
}

// alaskaAlbers is EPSG:3338 (NAD83 / Alaska Albers) parameters.
var alaskaAlbers = albersParams{
	radius: 6370997.0,
	lat1:   55.0,
	lat2:   65.0,
	lat0:   50.0,
	lon0:   -154.0,
}

func deg2rad(d float64) float64 { return d * math.Pi / 180.0 }

// project converts a longitude/latitude pair (degrees) to planar (x, y)
// meters under the Albers Equal-Area Conic projection defined by p. This is
// the standard closed-form forward transform (Snyder, Map Projections — A
// Working Manual, eq. 14-1..14-4), applied here to a spherical datum which
// is accurate enough at the area-share granularity the crosswalk needs.
func project(p albersParams, lon, lat float64) (x, y float64) {
	phi := deg2rad(lat)
	phi1 := deg2rad(p.lat1)
	phi2 := deg2rad(p.lat2)
	phi0 := deg2rad(p.lat0)
	lambda := deg2rad(lon)
	lambda0 := deg2rad(p.lon0)

	n := (math.Sin(phi1) + math.Sin(phi2)) / 2
	c := math.Cos(phi1)*math.Cos(phi1) + 2*n*math.Sin(phi1)
	rho0 := p.radius * math.Sqrt(c-2*n*math.Sin(phi0)) / n
	rho := p.radius * math.Sqrt(c-2*n*math.Sin(phi)) / n
	theta := n * (lambda - lambda0)

	x = rho * math.Sin(theta)
	y = rho0 - rho*math.Cos(theta)
	return x, y
}

// projectRing projects every vertex of a closed ring.
func projectRing(p albersParams, ring [][2]float64) [][2]float64 {
	out := make([][2]float64, len(ring))
	for i, pt := range ring {
		x, y := project(p, pt[0], pt[1])
		out[i] = [2]float64{x, y}
	}
	return out
}

// paramsFor returns the projection to use for a given state FIPS code:
// Alaska ("02") gets its own equal-area CRS, everything else uses the
// CONUS one (spec §4.4 step 3).
func paramsFor(stateFIPS string) albersParams {
	if stateFIPS == "02" {
		return alaskaAlbers
	}
	return conusAlbers
}
