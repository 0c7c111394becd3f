package repositories

import (
	"errors"

	"github.com/PzyCool/DomiHive-sub000/internal/models"
	"gorm.io/gorm"
)

// BookingRepository defines the interface for inspection booking operations
type BookingRepository interface {
	CreateBooking(booking *models.InspectionBooking) error
	GetByBookingID(bookingID string) (*models.InspectionBooking, error)
	ListByUser(userID uint) ([]models.InspectionBooking, error)
}

type postgresBookingRepository struct {
	db *gorm.DB
}

func NewPostgresBookingRepository(db *gorm.DB) BookingRepository {
	return &postgresBookingRepository{db: db}
}

func (r *postgresBookingRepository) CreateBooking(booking *models.InspectionBooking) error {
	return r.db.Create(booking).Error
}

func (r *postgresBookingRepository) GetByBookingID(bookingID string) (*models.InspectionBooking, error) {
	var booking models.InspectionBooking
	if err := r.db.Where("booking_id = ?", bookingID).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *postgresBookingRepository) ListByUser(userID uint) ([]models.InspectionBooking, error) {
	var bookings []models.InspectionBooking
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&bookings).Error
	return bookings, err
}
