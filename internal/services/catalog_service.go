package services

import (
	"errors"

	"github.com/sparklehq/sparkle-backend/internal/models"
	"gorm.io/gorm"
)

var ErrGameNotFound = errors.New("game not found")

type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// ListActive returns all active games in natural storage order.
func (s *CatalogService) ListActive() ([]models.Game, error) {
	var games []models.Game
	if err := s.db.Where("is_active = ?", true).Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

// GetActive returns a single active game.
func (s *CatalogService) GetActive(gameID uint) (*models.Game, error) {
	var game models.Game
	if err := s.db.Where("is_active = ?", true).First(&game, gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return &game, nil
}
