package repository

import (
	"github.com/ManuelReschke/LeadFox/app/models"
	"gorm.io/gorm"
)

// teamMemberRepository implements the TeamMemberRepository interface
type teamMemberRepository struct {
	db *gorm.DB
}

// NewTeamMemberRepository creates a new team member repository instance
func NewTeamMemberRepository(db *gorm.DB) TeamMemberRepository {
	return &teamMemberRepository{db: db}
}

// Create creates a new roster entry
func (r *teamMemberRepository) Create(member *models.TeamMember) error {
	return r.db.Create(member).Error
}

// GetByID retrieves a roster entry scoped to the account
func (r *teamMemberRepository) GetByID(accountID uint, id uint) (*models.TeamMember, error) {
	var member models.TeamMember
	err := r.db.Where("account_id = ? AND id = ?", accountID, id).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// GetByAccountID retrieves the full roster for an account
func (r *teamMemberRepository) GetByAccountID(accountID uint) ([]models.TeamMember, error) {
	var members []models.TeamMember
	err := r.db.Where("account_id = ? AND status <> ?", accountID, models.TEAM_STATUS_REMOVED).
		Order("created_at ASC").
		Find(&members).Error
	return members, err
}

// GetByEmail finds a non-removed roster entry by email, scoped to the account
func (r *teamMemberRepository) GetByEmail(accountID uint, email string) (*models.TeamMember, error) {
	var member models.TeamMember
	err := r.db.Where("account_id = ? AND email = ? AND status <> ?", accountID, email, models.TEAM_STATUS_REMOVED).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// CountOccupiedSeats counts pending and active members against the team quota
func (r *teamMemberRepository) CountOccupiedSeats(accountID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.TeamMember{}).
		Where("account_id = ? AND status IN ?", accountID, []string{models.TEAM_STATUS_PENDING, models.TEAM_STATUS_ACTIVE}).
		Count(&count).Error
	return count, err
}

// Update saves changes to an existing roster entry
func (r *teamMemberRepository) Update(member *models.TeamMember) error {
	return r.db.Save(member).Error
}

// Remove marks the member as removed, freeing the seat without losing history
func (r *teamMemberRepository) Remove(accountID uint, id uint) error {
	return r.db.Model(&models.TeamMember{}).
		Where("account_id = ? AND id = ?", accountID, id).
		Update("status", models.TEAM_STATUS_REMOVED).Error
}
