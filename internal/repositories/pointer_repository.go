package repositories

import (
	"errors"

	"github.com/PzyCool/DomiHive-sub000/internal/models"
	"gorm.io/gorm"
)

// PointerRepository manages the per-user "current record" slots that hand
// workflow state between steps.
type PointerRepository interface {
	Get(userID uint, kind string) (*models.WorkflowPointer, error)
	ListByUser(userID uint) ([]models.WorkflowPointer, error)
	// Set points the slot at recordID. When expectedVersion >= 0 the write
	// is a compare-and-set: a mismatch with the stored version returns
	// ErrPointerConflict. expectedVersion < 0 advances unconditionally.
	Set(userID uint, kind, recordID string, expectedVersion int64) (*models.WorkflowPointer, error)
}

type postgresPointerRepository struct {
	db *gorm.DB
}

func NewPostgresPointerRepository(db *gorm.DB) PointerRepository {
	return &postgresPointerRepository{db: db}
}

func (r *postgresPointerRepository) Get(userID uint, kind string) (*models.WorkflowPointer, error) {
	var pointer models.WorkflowPointer
	if err := r.db.Where("user_id = ? AND kind = ?", userID, kind).First(&pointer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &pointer, nil
}

func (r *postgresPointerRepository) ListByUser(userID uint) ([]models.WorkflowPointer, error) {
	var pointers []models.WorkflowPointer
	err := r.db.Where("user_id = ?", userID).Find(&pointers).Error
	return pointers, err
}

func (r *postgresPointerRepository) Set(userID uint, kind, recordID string, expectedVersion int64) (*models.WorkflowPointer, error) {
	var pointer models.WorkflowPointer
	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND kind = ?", userID, kind).First(&pointer).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if expectedVersion > 0 {
				return ErrPointerConflict
			}
			pointer = models.WorkflowPointer{UserID: userID, Kind: kind, RecordID: recordID, Version: 1}
			return tx.Create(&pointer).Error
		}
		if err != nil {
			return err
		}
		if expectedVersion >= 0 && pointer.Version != expectedVersion {
			return ErrPointerConflict
		}
		pointer.RecordID = recordID
		pointer.Version++
		return tx.Save(&pointer).Error
	})
	if err != nil {
		return nil, err
	}
	return &pointer, nil
}
