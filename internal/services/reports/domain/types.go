// Package domain defines the types and ports for the reports service
package domain

import (
	"time"

	"tipline/internal/core/canon"
)

// Outcome is the triage decision for one submission attempt
type Outcome string

const (
	// OutcomeAccepted means the report passed every gate
	OutcomeAccepted Outcome = "accepted"

	// OutcomeDuplicateResource means the target hit its resource quota
	OutcomeDuplicateResource Outcome = "duplicate_resource"

	// OutcomeEmailLimit means the submitter hit the reporting quota
	OutcomeEmailLimit Outcome = "email_limit"

	// OutcomeSpam means the classifier flagged it and no bypass applied
	OutcomeSpam Outcome = "spam"
)

// User facing rejection messages, surfaced verbatim by the caller
const (
	MsgDuplicateResource = "This page has already been reported."
	MsgEmailLimit        = "You have reached your daily reporting limit."
	MsgSpam              = "This report looks like spam to our system!"
)

// Account is the authenticated identity of a logged in submitter
type Account struct {
	ID    int64  `json:"id" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// Submitter carries the explicit submitter identity for one attempt
// Account is nil for anonymous visitors, there is no ambient lookup
type Submitter struct {
	Email     string
	Account   *Account
	IP        string
	UserAgent string
}

// Authenticated reports whether the submitter is logged in
func (s Submitter) Authenticated() bool { return s.Account != nil }

// SubmitInput is the submission payload
// The account block is supplied by the presentation layer when the
// visitor is logged in
type SubmitInput struct {
	URL      string   `json:"url" validate:"required,max=2080" example:"https://archiveofourown.org/works/789"`
	Email    string   `json:"email" validate:"required,email" example:"someone@example.com"`
	Username string   `json:"username" validate:"required,max=255" example:"concerned reader"`
	Comment  string   `json:"comment" validate:"required" example:"this work violates the content policy"`
	Account  *Account `json:"account,omitempty"`

	IP        string `json:"ip,omitempty" validate:"omitempty,ip"`
	UserAgent string `json:"user_agent,omitempty"`
}

// Submitter builds the explicit submitter identity from the payload
func (in SubmitInput) Submitter() Submitter {
	return Submitter{
		Email:     in.Email,
		Account:   in.Account,
		IP:        in.IP,
		UserAgent: in.UserAgent,
	}
}

// Evaluation is the triage result for one attempt
// CreatorIDs is nil for anything that is not a work page
type Evaluation struct {
	CanonicalURL string         `json:"canonical_url"`
	Identity     canon.Identity `json:"-"`
	Kind         string         `json:"kind" example:"work"`
	Outcome      Outcome        `json:"outcome"`
	Reason       string         `json:"reason,omitempty"`
	CreatorIDs   *string        `json:"creator_ids,omitempty"`
}

// Accepted reports whether the attempt passed triage
func (e Evaluation) Accepted() bool { return e.Outcome == OutcomeAccepted }

// Receipt is the submission response
type Receipt struct {
	ReportID int64 `json:"report_id,omitempty"`
	Evaluation
}

// ReportWrite is the accepted report record handed to persistence
// The URL is truncated to the storage maximum before it gets here
type ReportWrite struct {
	URL           string
	Email         string
	Username      string
	Comment       string
	ComparisonKey string
	CreatorIDs    *string
	SubmittedAt   time.Time
}
