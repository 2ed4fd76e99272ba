package controllers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/ManuelReschke/LeadFox/app/models"
	"github.com/ManuelReschke/LeadFox/app/repository"
	"github.com/ManuelReschke/LeadFox/internal/pkg/gate"
	"github.com/ManuelReschke/LeadFox/internal/pkg/jobqueue"
	"github.com/ManuelReschke/LeadFox/internal/pkg/statistics"
)

// HandleListTeam returns the account's roster.
func HandleListTeam(c *fiber.Ctx) error {
	userCtx, ok := requireUser(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Missing or invalid authentication")
	}

	members, err := repository.GetGlobalFactory().GetTeamMemberRepository().GetByAccountID(userCtx.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load team")
	}

	occupied := int64(0)
	for _, member := range members {
		if member.CountsAgainstQuota() {
			occupied++
		}
	}

	return c.JSON(fiber.Map{
		"members":        members,
		"occupied_seats": occupied,
	})
}

type inviteTeamMemberRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// HandleInviteTeamMember adds a pending seat to the roster. The invite is
// gated on both the team-size quota and the role lock for the requested
// role; the role lock wins when both would block.
func HandleInviteTeamMember(c *fiber.Ctx) error {
	userCtx, ok := requireUser(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Missing or invalid authentication")
	}

	var req inviteTeamMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Role == "" {
		req.Role = models.TEAM_ROLE_AGENT
	}

	teamRepo := repository.GetGlobalFactory().GetTeamMemberRepository()

	occupied, err := teamRepo.CountOccupiedSeats(userCtx.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to check team quota")
	}
	decision, err := gate.CanAddTeamMember(userCtx.Subscription, occupied, req.Role)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Entitlement configuration error")
	}
	if !decision.Allowed {
		return upgradeRequired(c, decision)
	}

	if existing, err := teamRepo.GetByEmail(userCtx.UserID, req.Email); err == nil && existing.CountsAgainstQuota() {
		return jsonError(c, fiber.StatusConflict, "conflict", "This email is already on the roster")
	}

	token, err := generateInviteToken()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create invite")
	}
	now := time.Now()
	member := &models.TeamMember{
		AccountID:   userCtx.UserID,
		Name:        strings.TrimSpace(req.Name),
		Email:       req.Email,
		Role:        req.Role,
		Status:      models.TEAM_STATUS_PENDING,
		InviteToken: token,
		InvitedAt:   &now,
	}
	if err := member.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", "Invalid invite data")
	}
	if err := teamRepo.Create(member); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to save invite")
	}

	statistics.InvalidateAccountStats(userCtx.UserID)

	payload := jobqueue.TeamInviteMailJobPayload{
		AccountID:   userCtx.UserID,
		Email:       member.Email,
		InviterName: userCtx.Username,
		InviteToken: token,
	}
	if _, err := jobqueue.GetManager().GetQueue().EnqueueJob(jobqueue.JobTypeTeamInviteMail, payload.ToMap()); err != nil {
		log.Errorf("failed to enqueue invite mail for account %d: %v", userCtx.UserID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(member)
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

// HandleChangeTeamMemberRole updates a member's role, gated on the role lock
// only: the seat is already occupied so quota is not consulted.
func HandleChangeTeamMemberRole(c *fiber.Ctx) error {
	userCtx, ok := requireUser(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Missing or invalid authentication")
	}

	memberID, err := c.ParamsInt("id")
	if err != nil || memberID <= 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid member id")
	}

	var req changeRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	switch req.Role {
	case models.TEAM_ROLE_AGENT, models.TEAM_ROLE_MANAGER, models.TEAM_ROLE_ADMIN:
	default:
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", "Unknown role")
	}

	decision, err := gate.CanChangeRole(userCtx.Subscription, req.Role)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Entitlement configuration error")
	}
	if !decision.Allowed {
		return upgradeRequired(c, decision)
	}

	teamRepo := repository.GetGlobalFactory().GetTeamMemberRepository()
	member, err := teamRepo.GetByID(userCtx.UserID, uint(memberID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Team member not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load team member")
	}

	member.Role = req.Role
	if err := teamRepo.Update(member); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update team member")
	}
	return c.JSON(member)
}

// HandleRemoveTeamMember frees the member's seat.
func HandleRemoveTeamMember(c *fiber.Ctx) error {
	userCtx, ok := requireUser(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Missing or invalid authentication")
	}

	memberID, err := c.ParamsInt("id")
	if err != nil || memberID <= 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid member id")
	}

	if err := repository.GetGlobalFactory().GetTeamMemberRepository().Remove(userCtx.UserID, uint(memberID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Team member not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to remove team member")
	}

	statistics.InvalidateAccountStats(userCtx.UserID)
	return c.SendStatus(fiber.StatusNoContent)
}

func generateInviteToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
