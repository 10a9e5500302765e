package repositories

import (
	"nodeBoard/internal/models"

	"gorm.io/gorm"
)

type AssetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) *AssetRepository {
	return &AssetRepository{
		db: db,
	}
}

func (ar *AssetRepository) CreateImage(image *models.Image) error {
	return ar.db.Create(image).Error
}

func (ar *AssetRepository) CreateSpeech(speech *models.Speech) error {
	return ar.db.Create(speech).Error
}

func (ar *AssetRepository) CreateWebsite(website *models.Website) error {
	return ar.db.Create(website).Error
}

func (ar *AssetRepository) GetWhiteboardAssets(whiteboardID uint) (*models.WhiteboardAssets, error) {
	assets := &models.WhiteboardAssets{
		Images:   []models.Image{},
		Speeches: []models.Speech{},
		Websites: []models.Website{},
	}
	if err := ar.db.Where("whiteboard_id = ?", whiteboardID).Order("id").Find(&assets.Images).Error; err != nil {
		return nil, err
	}
	if err := ar.db.Where("whiteboard_id = ?", whiteboardID).Order("id").Find(&assets.Speeches).Error; err != nil {
		return nil, err
	}
	if err := ar.db.Where("whiteboard_id = ?", whiteboardID).Order("id").Find(&assets.Websites).Error; err != nil {
		return nil, err
	}
	return assets, nil
}
