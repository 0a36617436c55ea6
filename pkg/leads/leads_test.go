package leads_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gdlandscaping/sitegen/pkg/leads"
)

func TestNewSubmission(t *testing.T) {
	form := leads.Form{
		CustomerName:  "Dana Ortiz",
		CustomerEmail: "dana@example.com",
		CustomerPhone: "(860) 555-0199",
		Address:       "12 Mill St, Berlin CT",
		Message:       "Weekly mowing quote please",
	}

	s, err := leads.NewSubmission("lawn-care-berlin-ct", form)
	if err != nil {
		t.Fatalf("NewSubmission() error = %v", err)
	}
	if s.ID == "" {
		t.Error("ID is empty")
	}
	if s.SourcePageID != "lawn-care-berlin-ct" {
		t.Errorf("SourcePageID = %q", s.SourcePageID)
	}
	if s.SubmittedAt.Location() != time.UTC {
		t.Errorf("SubmittedAt zone = %v, want UTC", s.SubmittedAt.Location())
	}
	if s.CustomerName != form.CustomerName || s.Message != form.Message {
		t.Errorf("form fields not carried over: %+v", s)
	}
}

func TestNewSubmissionKeepsEmptyFields(t *testing.T) {
	// A visitor who fills nothing but the message still produces a valid
	// submission; empty strings stay empty rather than being rejected.
	s, err := leads.NewSubmission("snow-removal-cromwell-ct", leads.Form{Message: "call me"})
	if err != nil {
		t.Fatalf("NewSubmission() error = %v", err)
	}
	if s.CustomerName != "" || s.CustomerEmail != "" || s.Budget != "" {
		t.Errorf("empty fields mutated: %+v", s)
	}
	if s.SourcePageID != "snow-removal-cromwell-ct" {
		t.Errorf("SourcePageID = %q", s.SourcePageID)
	}
}

func TestNewSubmissionRequiresSource(t *testing.T) {
	_, err := leads.NewSubmission("", leads.Form{CustomerName: "A"})
	if !leads.IsValidation(err) {
		t.Fatalf("error = %v, want validation error", err)
	}
}

func TestNewSubmissionIDsUnique(t *testing.T) {
	a, _ := leads.NewSubmission("lawn-care-berlin-ct", leads.Form{})
	b, _ := leads.NewSubmission("lawn-care-berlin-ct", leads.Form{})
	if a.ID == b.ID {
		t.Errorf("two submissions share ID %q", a.ID)
	}
}

func TestHTTPRelaySend(t *testing.T) {
	var got leads.Submission
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("body does not decode: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	relay := leads.NewHTTPRelay(srv.URL)
	s, _ := leads.NewSubmission("fall-cleanup-berlin-ct", leads.Form{CustomerName: "Pat"})
	if err := relay.Send(context.Background(), s); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if got.SourcePageID != "fall-cleanup-berlin-ct" || got.CustomerName != "Pat" {
		t.Errorf("relayed payload = %+v", got)
	}
}

func TestHTTPRelayNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	relay := leads.NewHTTPRelay(srv.URL)
	s, _ := leads.NewSubmission("lawn-care-berlin-ct", leads.Form{})
	err := relay.Send(context.Background(), s)
	if !leads.IsExternalCall(err) {
		t.Fatalf("error = %v, want external call error", err)
	}
}

func TestHTTPRelayTransportFailure(t *testing.T) {
	relay := leads.NewHTTPRelay("http://127.0.0.1:1", leads.WithHTTPClient(&http.Client{Timeout: time.Second}))
	s, _ := leads.NewSubmission("lawn-care-berlin-ct", leads.Form{})
	err := relay.Send(context.Background(), s)
	if !leads.IsExternalCall(err) {
		t.Fatalf("error = %v, want external call error", err)
	}
}
