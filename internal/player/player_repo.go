package player

import (
	"errors"

	"gorm.io/gorm"
)

// PlayerRepository defines the persistence operations for players.
type PlayerRepository interface {
	Create(p *Player) error
	GetByID(id uint) (*Player, error)
	ListByTeam(teamID uint) ([]Player, error)
	Update(p *Player) error
	Delete(id uint) error
}

type playerRepository struct {
	db *gorm.DB
}

// NewPlayerRepository creates a new instance of PlayerRepository
func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &playerRepository{db: db}
}

func (r *playerRepository) Create(p *Player) error {
	return r.db.Create(p).Error
}

func (r *playerRepository) GetByID(id uint) (*Player, error) {
	var p Player
	if err := r.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *playerRepository) ListByTeam(teamID uint) ([]Player, error) {
	var players []Player
	err := r.db.Where("team_id = ?", teamID).
		Order("jersey_number ASC, name ASC").
		Find(&players).Error
	return players, err
}

func (r *playerRepository) Update(p *Player) error {
	return r.db.Save(p).Error
}

func (r *playerRepository) Delete(id uint) error {
	return r.db.Delete(&Player{}, id).Error
}
