package repository

import (
	"time"

	"github.com/ManuelReschke/LeadFox/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByAPIKeyHash(hash string) (*models.User, *models.UserSettings, error)
	Update(user *models.User) error
	Delete(id uint) error
	Count() (int64, error)
}

// LeadRepository defines the interface for lead-related database operations
type LeadRepository interface {
	Create(lead *models.Lead) error
	GetByUUID(accountID uint, uuid string) (*models.Lead, error)
	GetByAccountID(accountID uint, limit int) ([]models.Lead, error)
	UpdateStage(accountID uint, uuid string, stage string) (*models.Lead, error)
	CountOpenByAccountID(accountID uint) (int64, error)
	CountCreatedSince(since time.Time) (int64, error)
	Count() (int64, error)
}

// TeamMemberRepository defines the interface for roster operations
type TeamMemberRepository interface {
	Create(member *models.TeamMember) error
	GetByID(accountID uint, id uint) (*models.TeamMember, error)
	GetByAccountID(accountID uint) ([]models.TeamMember, error)
	GetByEmail(accountID uint, email string) (*models.TeamMember, error)
	CountOccupiedSeats(accountID uint) (int64, error)
	Update(member *models.TeamMember) error
	Remove(accountID uint, id uint) error
}

// CommissionRepository defines the interface for commission operations
type CommissionRepository interface {
	Create(commission *models.Commission) error
	GetByAccountID(accountID uint, limit int) ([]models.Commission, error)
	GetByID(accountID uint, id uint) (*models.Commission, error)
}

// EnrichmentRepository defines the interface for enrichment lookup records
type EnrichmentRepository interface {
	Create(lookup *models.EnrichmentLookup) error
	CountForMonth(accountID uint, month time.Time) (int64, error)
	GetUsageForPeriod(accountID uint, period string) (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User       UserRepository
	Lead       LeadRepository
	TeamMember TeamMemberRepository
	Commission CommissionRepository
	Enrichment EnrichmentRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:       NewUserRepository(db),
		Lead:       NewLeadRepository(db),
		TeamMember: NewTeamMemberRepository(db),
		Commission: NewCommissionRepository(db),
		Enrichment: NewEnrichmentRepository(db),
	}
}
