package repositories

import (
	"errors"

	"github.com/PzyCool/DomiHive-sub000/internal/models"
	"gorm.io/gorm"
)

// ApplicationRepository defines the interface for rental application operations
type ApplicationRepository interface {
	CreateApplication(app *models.RentalApplication) error
	GetByApplicationID(applicationID string) (*models.RentalApplication, error)
	ListByUser(userID uint) ([]models.RentalApplication, error)
	// UpdateStatus transitions the matching application from one status to
	// the next. Only the record whose current status equals `from` is
	// touched; a miss returns ErrInvalidTransition.
	UpdateStatus(applicationID, from, to string) error
}

type postgresApplicationRepository struct {
	db *gorm.DB
}

func NewPostgresApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &postgresApplicationRepository{db: db}
}

func (r *postgresApplicationRepository) CreateApplication(app *models.RentalApplication) error {
	return r.db.Create(app).Error
}

func (r *postgresApplicationRepository) GetByApplicationID(applicationID string) (*models.RentalApplication, error) {
	var app models.RentalApplication
	if err := r.db.Where("application_id = ?", applicationID).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *postgresApplicationRepository) ListByUser(userID uint) ([]models.RentalApplication, error) {
	var apps []models.RentalApplication
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&apps).Error
	return apps, err
}

func (r *postgresApplicationRepository) UpdateStatus(applicationID, from, to string) error {
	res := r.db.Model(&models.RentalApplication{}).
		Where("application_id = ? AND status = ?", applicationID, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		r.db.Model(&models.RentalApplication{}).Where("application_id = ?", applicationID).Count(&count)
		if count == 0 {
			return ErrNotFound
		}
		return ErrInvalidTransition
	}
	return nil
}
