package repositories

import (
	"errors"

	"github.com/PzyCool/DomiHive-sub000/internal/models"
	"gorm.io/gorm"
)

// ScreeningRepository defines the interface for screening record operations
type ScreeningRepository interface {
	CreateScreening(screening *models.ScreeningRecord) error
	GetByScreeningID(screeningID string) (*models.ScreeningRecord, error)
	GetByApplicationID(applicationID string) (*models.ScreeningRecord, error)
	ListByUser(userID uint) ([]models.ScreeningRecord, error)
}

type postgresScreeningRepository struct {
	db *gorm.DB
}

func NewPostgresScreeningRepository(db *gorm.DB) ScreeningRepository {
	return &postgresScreeningRepository{db: db}
}

func (r *postgresScreeningRepository) CreateScreening(screening *models.ScreeningRecord) error {
	return r.db.Create(screening).Error
}

func (r *postgresScreeningRepository) GetByScreeningID(screeningID string) (*models.ScreeningRecord, error) {
	var screening models.ScreeningRecord
	if err := r.db.Where("screening_id = ?", screeningID).First(&screening).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &screening, nil
}

func (r *postgresScreeningRepository) GetByApplicationID(applicationID string) (*models.ScreeningRecord, error) {
	var screening models.ScreeningRecord
	if err := r.db.Where("application_id = ?", applicationID).First(&screening).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &screening, nil
}

func (r *postgresScreeningRepository) ListByUser(userID uint) ([]models.ScreeningRecord, error) {
	var screenings []models.ScreeningRecord
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&screenings).Error
	return screenings, err
}
