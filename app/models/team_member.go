package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	TEAM_ROLE_AGENT   = "agent"
	TEAM_ROLE_MANAGER = "manager"
	TEAM_ROLE_ADMIN   = "admin"

	TEAM_STATUS_PENDING = "pending"
	TEAM_STATUS_ACTIVE  = "active"
	TEAM_STATUS_REMOVED = "removed"
)

// TeamMember is one seat on an account's roster. Pending members count
// against the team-size quota so an account cannot oversubscribe through
// unaccepted invites.
type TeamMember struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	AccountID   uint           `gorm:"not null;index" json:"account_id"`
	Name        string         `gorm:"type:varchar(150)" json:"name" validate:"max=150"`
	Email       string         `gorm:"type:varchar(200);not null;index" json:"email" validate:"required,email,min=5,max=200"`
	Role        string         `gorm:"type:varchar(20);default:'agent'" json:"role" validate:"oneof=agent manager admin"`
	Status      string         `gorm:"type:varchar(20);default:'pending'" json:"status" validate:"oneof=pending active removed"`
	InviteToken string         `gorm:"type:varchar(100);index" json:"-"`
	InvitedAt   *time.Time     `gorm:"type:timestamp;default:null" json:"invited_at"`
	JoinedAt    *time.Time     `gorm:"type:timestamp;default:null" json:"joined_at"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (m *TeamMember) Validate() error {
	v := validator.New()

	return v.Struct(m)
}

// CountsAgainstQuota reports whether the member occupies a seat.
func (m *TeamMember) CountsAgainstQuota() bool {
	return m.Status == TEAM_STATUS_PENDING || m.Status == TEAM_STATUS_ACTIVE
}
