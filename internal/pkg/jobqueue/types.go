package jobqueue

import (
	"encoding/json"
	"time"
)

// JobType defines the type of job
type JobType string

const (
	JobTypeTeamInviteMail JobType = "team_invite_mail"
	JobTypeLeadAlertMail  JobType = "lead_alert_mail"
)

// JobStatus defines the status of a job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusRetrying   JobStatus = "retrying"
)

// Job represents a background job
type Job struct {
	ID          string                 `json:"id"`
	Type        JobType                `json:"type"`
	Status      JobStatus              `json:"status"`
	Payload     map[string]interface{} `json:"payload"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	ProcessedAt *time.Time             `json:"processed_at,omitempty"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
	ErrorMsg    string                 `json:"error_msg,omitempty"`
	RetryCount  int                    `json:"retry_count"`
	MaxRetries  int                    `json:"max_retries"`
}

// TeamInviteMailJobPayload contains the payload for team invitation mails
type TeamInviteMailJobPayload struct {
	AccountID   uint   `json:"account_id"`
	Email       string `json:"email"`
	InviterName string `json:"inviter_name"`
	InviteToken string `json:"invite_token"`
}

// ToMap converts the payload to a map for storage
func (p TeamInviteMailJobPayload) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"account_id":   p.AccountID,
		"email":        p.Email,
		"inviter_name": p.InviterName,
		"invite_token": p.InviteToken,
	}
}

// TeamInviteMailJobPayloadFromMap creates a payload from a map
func TeamInviteMailJobPayloadFromMap(data map[string]interface{}) (*TeamInviteMailJobPayload, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var payload TeamInviteMailJobPayload
	err = json.Unmarshal(jsonData, &payload)
	return &payload, err
}

// LeadAlertMailJobPayload contains the payload for new-lead alert mails
type LeadAlertMailJobPayload struct {
	AccountID  uint   `json:"account_id"`
	Email      string `json:"email"`
	LeadName   string `json:"lead_name"`
	LeadSource string `json:"lead_source"`
}

// ToMap converts the payload to a map for storage
func (p LeadAlertMailJobPayload) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"account_id":  p.AccountID,
		"email":       p.Email,
		"lead_name":   p.LeadName,
		"lead_source": p.LeadSource,
	}
}

// LeadAlertMailJobPayloadFromMap creates a payload from a map
func LeadAlertMailJobPayloadFromMap(data map[string]interface{}) (*LeadAlertMailJobPayload, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var payload LeadAlertMailJobPayload
	err = json.Unmarshal(jsonData, &payload)
	return &payload, err
}

// IsRetryable checks if the job can be retried
func (j *Job) IsRetryable() bool {
	return j.Status == JobStatusFailed && j.RetryCount < j.MaxRetries
}

// MarkAsProcessing updates the job status to processing
func (j *Job) MarkAsProcessing() {
	now := time.Now()
	j.Status = JobStatusProcessing
	j.UpdatedAt = now
	j.ProcessedAt = &now
}

// MarkAsCompleted updates the job status to completed
func (j *Job) MarkAsCompleted() {
	now := time.Now()
	j.Status = JobStatusCompleted
	j.UpdatedAt = now
	j.CompletedAt = &now
	j.ErrorMsg = ""
}

// MarkAsFailed updates the job status to failed
func (j *Job) MarkAsFailed(errorMsg string) {
	j.Status = JobStatusFailed
	j.UpdatedAt = time.Now()
	j.ErrorMsg = errorMsg
	j.RetryCount++
}

// MarkAsRetrying updates the job status to retrying
func (j *Job) MarkAsRetrying() {
	j.Status = JobStatusRetrying
	j.UpdatedAt = time.Now()
}
