package types

// HazardCode enumerates the 18 National Risk Index hazard types tracked per
// county.
type HazardCode string

const (
	HazardAvalanche       HazardCode = "AVLN"
	HazardCoastalFlood    HazardCode = "CFLD"
	HazardColdWave        HazardCode = "CWAV"
	HazardDrought         HazardCode = "DRGT"
	HazardEarthquake      HazardCode = "ERQK"
	HazardHail            HazardCode = "HAIL"
	HazardHeatWave        HazardCode = "HWAV"
	HazardHurricane       HazardCode = "HRCN"
	HazardIceStorm        HazardCode = "ISTM"
	HazardLandslide       HazardCode = "LNDS"
	HazardLightning       HazardCode = "LTNG"
	HazardRiverineFlood   HazardCode = "RFLD"
	HazardStrongWind      HazardCode = "SWND"
	HazardTornado         HazardCode = "TRND"
	HazardTsunami         HazardCode = "TSUN"
	HazardVolcano         HazardCode = "VLCN"
	HazardWildfire        HazardCode = "WFIR"
	HazardWinterWeather   HazardCode = "WNTW"
)

// AllHazardCodes lists all 18 tracked hazard types in a stable order.
var AllHazardCodes = []HazardCode{
	HazardAvalanche, HazardCoastalFlood, HazardColdWave, HazardDrought,
	HazardEarthquake, HazardHail, HazardHeatWave, HazardHurricane,
	HazardIceStorm, HazardLandslide, HazardLightning, HazardRiverineFlood,
	HazardStrongWind, HazardTornado, HazardTsunami, HazardVolcano,
	HazardWildfire, HazardWinterWeather,
}

// HazardTypeRecord holds one hazard type's metrics for a single county row.
type HazardTypeRecord struct {
	RiskScore       float64 `json:"risk_score"`
	Rating          string  `json:"rating"`
	EAL             float64 `json:"eal"`
	AnnualFrequency float64 `json:"annual_frequency"`
}

// CountyHazardRow is one row of the county-level National Risk Index CSV
// artifact (spec §3, §6).
type CountyHazardRow struct {
	FIPS       string                             `json:"fips"`
	Hazards    map[HazardCode]*HazardTypeRecord    `json:"hazards"`
	RiskScore  float64                            `json:"risk_score"`
	EALTotal   float64                            `json:"eal_total"`
	SoVIScore  float64                            `json:"sovi_score"`
	RESLScore  float64                            `json:"resl_score"`
	NRIVersion string                             `json:"nri_version"`
}

// CountyWeight pairs a county FIPS code with its area-derived weight within
// a Tribal area's crosswalk entry.
type CountyWeight struct {
	CountyFIPS string  `json:"county_fips"`
	Weight     float64 `json:"weight"`
}

// AreaWeightCrosswalk is the full crosswalk artifact: tribal-area id to its
// ordered list of (county, weight) pairs, summing to 1.0.
type AreaWeightCrosswalk struct {
	Crosswalk map[string][]CountyWeight `json:"crosswalk"`
	Metadata  CrosswalkMetadata         `json:"metadata"`
}

// CrosswalkMetadata records crosswalk build provenance.
type CrosswalkMetadata struct {
	BuildTimestamp  string  `json:"build_timestamp"`
	TribalAreaFile  string  `json:"tribal_area_file"`
	CountyFile      string  `json:"county_file"`
	MinOverlapPct   float64 `json:"min_overlap_pct"`
}

// HazardRating is the quintile-derived label for a 0-100 composite score.
type HazardRating string

const (
	RatingVeryLow            HazardRating = "Very Low"
	RatingRelativelyLow      HazardRating = "Relatively Low"
	RatingRelativelyModerate HazardRating = "Relatively Moderate"
	RatingRelativelyHigh     HazardRating = "Relatively High"
	RatingVeryHigh           HazardRating = "Very High"
)

// RatingForScore maps a 0-100 percentile score to its quintile rating per
// spec §4.5 step 5.
func RatingForScore(score float64) HazardRating {
	switch {
	case score < 20:
		return RatingVeryLow
	case score < 40:
		return RatingRelativelyLow
	case score < 60:
		return RatingRelativelyModerate
	case score < 80:
		return RatingRelativelyHigh
	default:
		return RatingVeryHigh
	}
}

// TopHazard is one entry in a HazardProfile's top-5 list.
type TopHazard struct {
	Code            HazardCode `json:"code"`
	RiskScore       float64    `json:"risk_score"`
	Rating          string     `json:"rating"`
	EAL             float64    `json:"eal"`
	Source          string     `json:"source,omitempty"` // "NRI" (default) or "USFS"
	NRIWFIROriginal *float64   `json:"nri_wfir_original,omitempty"`
}

// CompositeNRI holds the re-derived composite risk metrics for a Tribe.
type CompositeNRI struct {
	RiskScore  float64      `json:"risk_score"`
	EALTotal   float64      `json:"eal_total"`
	EALRating  HazardRating `json:"eal_rating"`
	SoVIScore  float64      `json:"sovi_score"`
	SoVIRating HazardRating `json:"sovi_rating"`
	RESLScore  float64      `json:"resl_score"`
	RESLRating HazardRating `json:"resl_rating"`
	RiskRating HazardRating `json:"risk_rating"`
}

// HazardProfile is the per-Tribe output artifact of the hazard aggregator
// (spec §3, §4.5).
type HazardProfile struct {
	TribeID          string                          `json:"tribe_id"`
	Composite        CompositeNRI                    `json:"composite"`
	TopHazards       []TopHazard                     `json:"top_hazards"`
	AllHazards       map[HazardCode]*HazardTypeRecord `json:"all_hazards"`
	CountiesAnalyzed int                             `json:"counties_analyzed"`
	NRIVersion       string                          `json:"nri_version"`
	GeneratedAt      string                          `json:"generated_at"`
}

// WildfireOverrideRow is one record of the USFS wildfire-risk-to-structures
// tabular override dataset. Column detection is dynamic at the ingest layer;
// this is the normalized shape consumers see.
type WildfireOverrideRow struct {
	AreaID       string
	CountyFIPS   string
	RiskToHomes  float64
}
