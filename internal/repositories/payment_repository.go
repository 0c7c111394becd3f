package repositories

import (
	"errors"

	"github.com/PzyCool/DomiHive-sub000/internal/models"
	"gorm.io/gorm"
)

// PaymentRepository defines the interface for payment record operations
type PaymentRepository interface {
	CreatePayment(payment *models.PaymentRecord) error
	GetByPaymentID(paymentID string) (*models.PaymentRecord, error)
	ListByUser(userID uint) ([]models.PaymentRecord, error)
}

type postgresPaymentRepository struct {
	db *gorm.DB
}

func NewPostgresPaymentRepository(db *gorm.DB) PaymentRepository {
	return &postgresPaymentRepository{db: db}
}

func (r *postgresPaymentRepository) CreatePayment(payment *models.PaymentRecord) error {
	return r.db.Create(payment).Error
}

func (r *postgresPaymentRepository) GetByPaymentID(paymentID string) (*models.PaymentRecord, error) {
	var payment models.PaymentRecord
	if err := r.db.Where("payment_id = ?", paymentID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *postgresPaymentRepository) ListByUser(userID uint) ([]models.PaymentRecord, error) {
	var payments []models.PaymentRecord
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&payments).Error
	return payments, err
}
