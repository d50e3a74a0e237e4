package types

// CriticSeverity classifies how serious a single critique is.
type CriticSeverity string

const (
	SeverityBlocker CriticSeverity = "blocker"
	SeverityMajor   CriticSeverity = "major"
	SeverityMinor   CriticSeverity = "minor"
)

// CriticPriority orders critics for conflict resolution: lower number wins.
// 1=accuracy, 2=audience, 3=political-framing, 4=design, 5=copy.
type CriticPriority int

const (
	PriorityAccuracy        CriticPriority = 1
	PriorityAudience        CriticPriority = 2
	PriorityPoliticalFraming CriticPriority = 3
	PriorityDesign          CriticPriority = 4
	PriorityCopy            CriticPriority = 5
)

// Critique is one finding emitted by a single critic against one section.
type Critique struct {
	Critic         string         `json:"critic"`
	Priority       CriticPriority `json:"priority"`
	Section        string         `json:"section"`
	Severity       CriticSeverity `json:"severity"`
	Recommendation string         `json:"recommendation"`
}

// QualityGateResult is the persisted outcome of a single document's pass
// through the quality gate (spec §3, §4.10).
type QualityGateResult struct {
	Pass               bool              `json:"pass"`
	CriticsCompleted   int               `json:"critics_completed"`
	SeverityCounts     map[CriticSeverity]int `json:"severity_counts"`
	FailingChecks      []string          `json:"failing_checks"`
	ConflictResolution []ConflictEntry   `json:"conflict_resolution,omitempty"`
	GeneratedAt        string            `json:"generated_at"`
}

// ConflictEntry records one priority-resolved disagreement between two
// critics over the same section.
type ConflictEntry struct {
	Section    string `json:"section"`
	Winner     string `json:"winner"`
	Loser      string `json:"loser"`
	WinnerPrio CriticPriority `json:"winner_priority"`
	LoserPrio  CriticPriority `json:"loser_priority"`
	TieBreak   bool   `json:"tie_break"`
}
