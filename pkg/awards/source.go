// Package awards populates per-Tribe award caches from a paginated federal
// award transport, matches recipients to Tribes, and reports coverage.
// Grounded on the teacher's pkg/bulk.Downloader (retry/backoff, manifest
// resumability) and pkg/senate.SenateVoteConnector (paginated connector
// shape, per-domain rate limiting).
package awards

import "context"

// Page is one page of award records returned by an AwardSource, together
// with the signal needed to continue or stop pagination.
type Page struct {
	Records  []RawAward
	HasMore  bool
}

// RawAward is the wire shape returned by the upstream award-data
// collaborator, before fiscal-year tagging or matching.
type RawAward struct {
	AwardID        string
	RecipientName  string
	RecipientState string
	Obligation     float64
	ProgramNumber  string
	StartDate      string
	Description    string
	AwardingAgency string
}

// AwardSource is the external transport collaborator. Its implementation
// (an HTTP scraper against a federal award API) is explicitly out of this
// repo's scope; pkg/awards consumes and aggregates what it returns.
type AwardSource interface {
	// FetchPage returns one page of records for (programNumber, fiscalYear),
	// where page is 0-indexed.
	FetchPage(ctx context.Context, programNumber string, fiscalYear, page int) (Page, error)
}
