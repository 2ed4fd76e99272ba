package jobqueue

import (
	"errors"
	"fmt"

	"github.com/ManuelReschke/LeadFox/internal/pkg/mail"
)

// processTeamInviteMailJob sends the roster invitation mail for an enqueued invite.
func (q *Queue) processTeamInviteMailJob(job *Job) error {
	payload, err := TeamInviteMailJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid team invite payload: %w", err)
	}
	if payload.Email == "" || payload.InviteToken == "" {
		return errors.New("team invite payload is missing email or token")
	}
	return mail.SendTeamInvite(payload.Email, payload.InviterName, payload.InviteToken)
}

// processLeadAlertMailJob sends the new-lead alert mail. The enqueueing side
// already checked the account's notification settings, so this just delivers.
func (q *Queue) processLeadAlertMailJob(job *Job) error {
	payload, err := LeadAlertMailJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid lead alert payload: %w", err)
	}
	if payload.Email == "" {
		return errors.New("lead alert payload is missing email")
	}
	return mail.SendLeadAlert(payload.Email, payload.LeadName, payload.LeadSource)
}
