package scoring

import (
	"errors"

	"github.com/cricboard/cricboard/internal/match"
	"gorm.io/gorm"
)

// ScoringRepository is the persistence boundary for live scoring. Commit
// writes the match snapshot and its innings record(s) as one unit so the
// two views never disagree.
type ScoringRepository interface {
	GetMatch(id uint) (*match.Match, error)
	GetInnings(matchID uint, number int) (*Innings, error)
	ListInnings(matchID uint) ([]Innings, error)
	SaveMatch(m *match.Match) error
	Commit(m *match.Match, innings ...*Innings) error
}

type scoringRepository struct {
	db *gorm.DB
}

// NewScoringRepository creates a new instance of ScoringRepository
func NewScoringRepository(db *gorm.DB) ScoringRepository {
	return &scoringRepository{db: db}
}

func (r *scoringRepository) GetMatch(id uint) (*match.Match, error) {
	var m match.Match
	if err := r.db.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *scoringRepository) GetInnings(matchID uint, number int) (*Innings, error) {
	var inn Innings
	err := r.db.Where("match_id = ? AND number = ?", matchID, number).First(&inn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inn, nil
}

func (r *scoringRepository) ListInnings(matchID uint) ([]Innings, error) {
	var innings []Innings
	err := r.db.Where("match_id = ?", matchID).
		Order("number ASC").
		Find(&innings).Error
	return innings, err
}

func (r *scoringRepository) SaveMatch(m *match.Match) error {
	return r.db.Save(m).Error
}

func (r *scoringRepository) Commit(m *match.Match, innings ...*Innings) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(m).Error; err != nil {
			return err
		}
		for _, inn := range innings {
			if err := tx.Save(inn).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
