package types

// TribePacketContext is the fully assembled, immutable input to the
// document builder for one (tribe, variant) pair (spec §3, §4.8).
// Constructed fresh per pair; never mutated after construction.
type TribePacketContext struct {
	Tribe            *Tribe
	Delegation       *TribeDelegation
	SelectedPrograms []*Program
	Awards           *TribeAwardCache
	Hazard           *HazardProfile
	Bills            []*Bill
	Confidence       *ConfidenceScore
	Variant          *VariantConfig

	// RegionID is set only for regional variants (C, D); empty otherwise.
	RegionID string

	// RegionTribes holds the member Tribes for a regional context. Empty
	// for single-tribe variants (A, B).
	RegionTribes []*Tribe

	GeneratedAt string
}

// IsRegional reports whether this context covers a region rather than a
// single Tribe.
func (c *TribePacketContext) IsRegional() bool {
	return c.Variant != nil && c.Variant.Variant.IsRegional()
}
