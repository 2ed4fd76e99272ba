package jobqueue

import (
	"testing"
	"time"
)

func TestTeamInviteMailPayloadRoundtrip(t *testing.T) {
	in := TeamInviteMailJobPayload{
		AccountID:   7,
		Email:       "agent@example.com",
		InviterName: "Dana Broker",
		InviteToken: "tok_abc",
	}

	out, err := TeamInviteMailJobPayloadFromMap(in.ToMap())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *out != in {
		t.Fatalf("payload roundtrip mismatch: got %+v, want %+v", *out, in)
	}
}

func TestLeadAlertMailPayloadRoundtrip(t *testing.T) {
	in := LeadAlertMailJobPayload{
		AccountID:  3,
		Email:      "owner@example.com",
		LeadName:   "Pat Buyer",
		LeadSource: "zillow",
	}

	out, err := LeadAlertMailJobPayloadFromMap(in.ToMap())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *out != in {
		t.Fatalf("payload roundtrip mismatch: got %+v, want %+v", *out, in)
	}
}

func TestJobStatusTransitions(t *testing.T) {
	job := &Job{ID: "j1", Type: JobTypeLeadAlertMail, Status: JobStatusPending, MaxRetries: 2}

	job.MarkAsProcessing()
	if job.Status != JobStatusProcessing || job.ProcessedAt == nil {
		t.Fatalf("expected processing status with timestamp, got %+v", job)
	}

	job.MarkAsFailed("smtp timeout")
	if job.Status != JobStatusFailed || job.RetryCount != 1 {
		t.Fatalf("expected failed status with one retry, got %+v", job)
	}
	if !job.IsRetryable() {
		t.Fatalf("expected job with retries left to be retryable")
	}

	job.MarkAsFailed("smtp timeout")
	if job.IsRetryable() {
		t.Fatalf("expected job at max retries to not be retryable")
	}

	job.MarkAsCompleted()
	if job.Status != JobStatusCompleted || job.CompletedAt == nil || job.ErrorMsg != "" {
		t.Fatalf("expected clean completed job, got %+v", job)
	}
	if job.CompletedAt.After(time.Now()) {
		t.Fatalf("completion timestamp in the future")
	}
}
