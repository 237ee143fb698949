package team

import (
	"errors"

	"gorm.io/gorm"
)

// TeamRepository defines the persistence operations for teams.
type TeamRepository interface {
	Create(t *Team) error
	GetByID(id uint) (*Team, error)
	ListByTournament(tournamentID uint) ([]Team, error)
	Update(t *Team) error
	Delete(id uint) error
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new instance of TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) Create(t *Team) error {
	return r.db.Create(t).Error
}

func (r *teamRepository) GetByID(id uint) (*Team, error) {
	var t Team
	if err := r.db.First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *teamRepository) ListByTournament(tournamentID uint) ([]Team, error) {
	var teams []Team
	err := r.db.Where("tournament_id = ?", tournamentID).
		Order("name ASC").
		Find(&teams).Error
	return teams, err
}

func (r *teamRepository) Update(t *Team) error {
	return r.db.Save(t).Error
}

func (r *teamRepository) Delete(id uint) error {
	return r.db.Delete(&Team{}, id).Error
}
