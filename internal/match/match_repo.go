package match

import (
	"errors"

	"gorm.io/gorm"
)

// MatchRepository defines the persistence operations for matches.
type MatchRepository interface {
	Create(m *Match) error
	GetByID(id uint) (*Match, error)
	ListByTournament(tournamentID uint) ([]Match, error)
	Update(m *Match) error
	Delete(id uint) error
}

type matchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new instance of MatchRepository
func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) Create(m *Match) error {
	return r.db.Create(m).Error
}

func (r *matchRepository) GetByID(id uint) (*Match, error) {
	var m Match
	if err := r.db.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *matchRepository) ListByTournament(tournamentID uint) ([]Match, error) {
	var matches []Match
	err := r.db.Where("tournament_id = ?", tournamentID).
		Order("scheduled_at ASC").
		Find(&matches).Error
	return matches, err
}

func (r *matchRepository) Update(m *Match) error {
	return r.db.Save(m).Error
}

func (r *matchRepository) Delete(id uint) error {
	return r.db.Delete(&Match{}, id).Error
}
