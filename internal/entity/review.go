package entity

import "time"

// ReviewScopeKind names the granularity a Review finding is attached to.
type ReviewScopeKind string

const (
	ReviewScopeWork     ReviewScopeKind = "work"
	ReviewScopeDocument ReviewScopeKind = "document"
	ReviewScopeSection  ReviewScopeKind = "section"
	ReviewScopeBlock    ReviewScopeKind = "block"
)

// ReviewSeverity orders findings for triage; Command Surface exit codes and
// `review list` default sort key both key off this.
type ReviewSeverity string

const (
	SeverityInfo    ReviewSeverity = "info"
	SeverityWarning ReviewSeverity = "warning"
	SeverityError   ReviewSeverity = "error"
)

// Review is a diagnostic finding over some scope (work/document/section/
// block), produced by validation passes (e.g. mention language mismatch,
// dangling mention placeholders) rather than hand-authored by a user.
type Review struct {
	ID        ID
	ScopeKind ReviewScopeKind
	ScopeID   ID
	IssueType string
	Message   string
	Severity  ReviewSeverity
	Metadata  Document
	CreatedAt time.Time
}
