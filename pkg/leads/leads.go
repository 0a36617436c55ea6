// Package leads builds quote-request submissions and relays them to the
// external intake endpoint. Submissions are tagged with the page they came
// from so the office can tell which town and service generated the lead.
package leads

import (
	"time"

	"github.com/google/uuid"
)

// Submission is the payload relayed to the intake collaborator. Field values
// arrive verbatim from the form; empty strings are kept rather than dropped
// so the intake sheet keeps its column alignment.
type Submission struct {
	ID                string    `json:"id"`
	SourcePageID      string    `json:"source"`
	CustomerName      string    `json:"customerName"`
	CustomerEmail     string    `json:"customerEmail"`
	CustomerPhone     string    `json:"customerPhone"`
	Address           string    `json:"address"`
	ServicesRequested string    `json:"servicesRequested"`
	Budget            string    `json:"budget"`
	Message           string    `json:"message"`
	SubmittedAt       time.Time `json:"submittedAt"`
}

// Form carries the raw field values posted by a lead form.
type Form struct {
	CustomerName      string
	CustomerEmail     string
	CustomerPhone     string
	Address           string
	ServicesRequested string
	Budget            string
	Message           string
}

// NewSubmission stamps a form with a fresh ID, a UTC timestamp, and the
// source page tag. sourcePageID must be non-empty; it is the only field a
// submission cannot do without.
func NewSubmission(sourcePageID string, form Form) (Submission, error) {
	if sourcePageID == "" {
		return Submission{}, &ValidationError{Field: "source", Reason: "missing source page id"}
	}
	return Submission{
		ID:                uuid.NewString(),
		SourcePageID:      sourcePageID,
		CustomerName:      form.CustomerName,
		CustomerEmail:     form.CustomerEmail,
		CustomerPhone:     form.CustomerPhone,
		Address:           form.Address,
		ServicesRequested: form.ServicesRequested,
		Budget:            form.Budget,
		Message:           form.Message,
		SubmittedAt:       time.Now().UTC(),
	}, nil
}
