package types

// ProgramStatus is the confidence/funding-intelligence status classification
// for a federal program.
type ProgramStatus string

const (
	StatusSecure              ProgramStatus = "SECURE"
	StatusStable              ProgramStatus = "STABLE"
	StatusStableButVulnerable ProgramStatus = "STABLE_BUT_VULNERABLE"
	StatusAtRisk              ProgramStatus = "AT_RISK"
	StatusUncertain           ProgramStatus = "UNCERTAIN"
	StatusFlagged             ProgramStatus = "FLAGGED"
	StatusTerminated          ProgramStatus = "TERMINATED"
)

// Program is a federal funding or technical-assistance program in the
// inventory consumed by the relevance filter.
type Program struct {
	ID                string        `json:"program_id"`
	Name              string        `json:"name"`
	Agency            string        `json:"agency"`
	ProgramNumber     string        `json:"program_number"`
	CIScore           float64       `json:"ci_score"`
	Status            ProgramStatus `json:"status"`
	HazardTags        []HazardCode  `json:"hazard_tags,omitempty"`
	EcoregionTags     []string      `json:"ecoregion_tags,omitempty"`
	AccessType        string        `json:"access_type,omitempty"`
	FundingType       string        `json:"funding_type,omitempty"`
}

// BillImpactType classifies how a bill affects programs.
type BillImpactType string

const (
	ImpactFunding        BillImpactType = "funding"
	ImpactAuthorization  BillImpactType = "authorization"
	ImpactAdministration BillImpactType = "administration"
	ImpactMixed          BillImpactType = "mixed"
)

// BillUrgency classifies how time-sensitive a bill is.
type BillUrgency string

const (
	UrgencyCritical BillUrgency = "critical"
	UrgencyHigh     BillUrgency = "high"
	UrgencyMedium   BillUrgency = "medium"
	UrgencyLow      BillUrgency = "low"
)

// Bill is one piece of congressional bill intelligence.
type Bill struct {
	ID               string         `json:"bill_id"` // {congress-type-number}
	Title            string         `json:"title"`
	Status           string         `json:"status"`
	SponsorBioguide  string         `json:"sponsor_bioguide"`
	CosponsorBioguides []string     `json:"cosponsor_bioguides,omitempty"`
	CommitteeCodes   []string       `json:"committee_codes,omitempty"`
	RelevanceScore   float64        `json:"relevance_score"`
	AffectedPrograms []string       `json:"affected_programs"`
	ImpactType       BillImpactType `json:"impact_type"`
	Urgency          BillUrgency    `json:"urgency"`
	LastActionText   string         `json:"last_action_text,omitempty"`
	LastActionDate   string         `json:"last_action_date,omitempty"`
}

// Chamber identifies a legislative chamber.
type Chamber string

const (
	ChamberSenate Chamber = "senate"
	ChamberHouse  Chamber = "house"
)

// Legislator is a member of Congress.
type Legislator struct {
	BioguideID string   `json:"bioguide_id"`
	Name       string   `json:"name"`
	Chamber    Chamber  `json:"chamber"`
	State      string   `json:"state"`
	District   string   `json:"district,omitempty"`
	Party      string   `json:"party"`
	Committees []string `json:"committees,omitempty"`
}

// TribeDelegation is the set of legislators derived from geographic overlap
// between a Tribe's state/district and each legislator's seat, plus the
// Alaska at-large rule (Alaska's single at-large House seat represents every
// Alaska Native tribal area regardless of district boundary).
type TribeDelegation struct {
	TribeID     string        `json:"tribe_id"`
	Legislators []*Legislator `json:"legislators"`
	GeneratedAt string        `json:"generated_at"`
}
