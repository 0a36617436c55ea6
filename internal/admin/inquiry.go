// Package admin stores customer inquiries for the back office. The public
// site only ever appends; status changes and deletions come from the admin
// API.
package admin

import (
	"errors"
	"fmt"
	"time"

	"github.com/gdlandscaping/sitegen/pkg/leads"
)

// Status tracks where an inquiry sits in the follow-up flow.
type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusScheduled Status = "scheduled"
	StatusClosed    Status = "closed"
)

// Statuses returns the known statuses in flow order.
func Statuses() []Status {
	return []Status{StatusNew, StatusContacted, StatusScheduled, StatusClosed}
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	for _, known := range Statuses() {
		if s == known {
			return true
		}
	}
	return false
}

// Inquiry is a stored customer inquiry.
type Inquiry struct {
	ID                string    `json:"id"`
	SourcePageID      string    `json:"source"`
	CustomerName      string    `json:"customerName"`
	CustomerEmail     string    `json:"customerEmail"`
	CustomerPhone     string    `json:"customerPhone"`
	Address           string    `json:"address"`
	ServicesRequested string    `json:"servicesRequested"`
	Budget            string    `json:"budget"`
	Message           string    `json:"message"`
	Status            Status    `json:"status"`
	SubmittedAt       time.Time `json:"submittedAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// FromSubmission converts a relayed lead into a stored inquiry.
func FromSubmission(s leads.Submission) Inquiry {
	return Inquiry{
		ID:                s.ID,
		SourcePageID:      s.SourcePageID,
		CustomerName:      s.CustomerName,
		CustomerEmail:     s.CustomerEmail,
		CustomerPhone:     s.CustomerPhone,
		Address:           s.Address,
		ServicesRequested: s.ServicesRequested,
		Budget:            s.Budget,
		Message:           s.Message,
		Status:            StatusNew,
		SubmittedAt:       s.SubmittedAt,
	}
}

// NotFoundError reports a missing inquiry.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("admin: inquiry %q not found", e.ID)
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
