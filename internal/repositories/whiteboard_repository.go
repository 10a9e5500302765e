package repositories

import (
	"errors"
	"nodeBoard/internal/errs"
	"nodeBoard/internal/models"
	"nodeBoard/internal/utils"

	"gorm.io/gorm"
)

type WhiteboardRepository struct {
	db *gorm.DB
}

func NewWhiteboardRepository(db *gorm.DB) *WhiteboardRepository {
	return &WhiteboardRepository{
		db: db,
	}
}

func (wr *WhiteboardRepository) CreateNewWhiteboard(whiteboard *models.Whiteboard) (*models.Whiteboard, error) {
	result := wr.db.Create(whiteboard)
	if err := result.Error; err != nil {
		return nil, err
	}
	if result.RowsAffected <= 0 {
		return nil, errs.ErrWhiteboardCreationFailed
	}
	return whiteboard, nil
}

// FindUserWhiteboard hides other users' whiteboards behind ErrWhiteboardNotFound.
func (wr *WhiteboardRepository) FindUserWhiteboard(whiteboardID, userID uint) (*models.Whiteboard, error) {
	var whiteboard models.Whiteboard
	result := wr.db.Where("id = ? AND user_id = ?", whiteboardID, userID).First(&whiteboard)
	if err := result.Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrWhiteboardNotFound
		}
		return nil, err
	}
	return &whiteboard, nil
}

func (wr *WhiteboardRepository) GetUserWhiteboards(userID uint, page, size int) ([]models.Whiteboard, int64, error) {
	var whiteboards []models.Whiteboard
	var total int64

	transactionErr := wr.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Scopes(utils.Paginate(page, size)).
			Where("user_id = ?", userID).
			Order("updated_at DESC").
			Order("id DESC").
			Find(&whiteboards).Error; err != nil {
			return err
		}

		if err := tx.
			Model(&models.Whiteboard{}).
			Where("user_id = ?", userID).
			Count(&total).Error; err != nil {
			return err
		}
		return nil
	})
	if transactionErr != nil {
		return nil, 0, transactionErr
	}
	return whiteboards, total, nil
}

func (wr *WhiteboardRepository) SaveWhiteboard(whiteboard *models.Whiteboard) error {
	return wr.db.Save(whiteboard).Error
}

func (wr *WhiteboardRepository) UpdateNodes(whiteboardID uint, nodes models.Nodes) error {
	result := wr.db.Model(&models.Whiteboard{}).Where("id = ?", whiteboardID).Update("nodes", nodes)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.ErrWhiteboardNotFound
	}
	return nil
}

// DeleteWhiteboard removes the whiteboard together with its generated asset rows.
func (wr *WhiteboardRepository) DeleteWhiteboard(whiteboardID uint) error {
	return wr.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&models.Image{}, &models.Speech{}, &models.Website{}} {
			if err := tx.Where("whiteboard_id = ?", whiteboardID).Delete(model).Error; err != nil {
				return err
			}
		}
		result := tx.Delete(&models.Whiteboard{}, whiteboardID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.ErrWhiteboardNotFound
		}
		return nil
	})
}
