package tournament

import (
	"errors"

	"gorm.io/gorm"
)

// TournamentRepository defines the persistence operations for tournaments.
type TournamentRepository interface {
	Create(t *Tournament) error
	GetByID(id uint) (*Tournament, error)
	List(page, pageSize int) ([]Tournament, int64, error)
	ListByOrganizer(userID uint, page, pageSize int) ([]Tournament, int64, error)
	Update(t *Tournament) error
	Delete(id uint) error
}

type tournamentRepository struct {
	db *gorm.DB
}

// NewTournamentRepository creates a new instance of TournamentRepository
func NewTournamentRepository(db *gorm.DB) TournamentRepository {
	return &tournamentRepository{db: db}
}

func (r *tournamentRepository) Create(t *Tournament) error {
	return r.db.Create(t).Error
}

func (r *tournamentRepository) GetByID(id uint) (*Tournament, error) {
	var t Tournament
	if err := r.db.First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *tournamentRepository) List(page, pageSize int) ([]Tournament, int64, error) {
	var tournaments []Tournament
	var total int64

	if err := r.db.Model(&Tournament{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.Order("start_date DESC").
		Offset(offset).Limit(pageSize).
		Find(&tournaments).Error
	return tournaments, total, err
}

func (r *tournamentRepository) ListByOrganizer(userID uint, page, pageSize int) ([]Tournament, int64, error) {
	var tournaments []Tournament
	var total int64

	query := r.db.Model(&Tournament{}).Where("created_by_user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("start_date DESC").
		Offset(offset).Limit(pageSize).
		Find(&tournaments).Error
	return tournaments, total, err
}

func (r *tournamentRepository) Update(t *Tournament) error {
	return r.db.Save(t).Error
}

func (r *tournamentRepository) Delete(id uint) error {
	return r.db.Delete(&Tournament{}, id).Error
}
