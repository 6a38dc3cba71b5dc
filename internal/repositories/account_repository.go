package repositories

import (
	"errors"
	"time"

	"payhook_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrAccountNotFound = errors.New("user account not found")
	// ErrVersionConflict means another delivery updated the account between
	// our read and our write. The caller reloads and reapplies.
	ErrVersionConflict = errors.New("account was modified concurrently")
)

// AccountRepository is one application's account store. Each application
// gets its own instance bound to its own database; there are no
// cross-application lookups.
//
// Methods deliberately take no request context: an in-flight write must
// complete even when the processor disconnects mid-request, because the
// processor decides on redelivery from the final status alone and a
// partially applied webhook is worse than a slow one.
type AccountRepository interface {
	FindByID(id string) (*models.UserAccount, error)
	FindByEmail(email string) (*models.UserAccount, error)
	Create(account *models.UserAccount) error
	// Save persists PaymentHistory and IsPaid in a single conditional
	// UPDATE guarded by the version the account was loaded with. Returns
	// ErrVersionConflict when a concurrent delivery won the race.
	Save(account *models.UserAccount) error
}

type AccountRepositoryImpl struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &AccountRepositoryImpl{db: db}
}

func (r *AccountRepositoryImpl) FindByID(id string) (*models.UserAccount, error) {
	var account models.UserAccount
	if err := r.db.First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepositoryImpl) FindByEmail(email string) (*models.UserAccount, error) {
	var account models.UserAccount
	if err := r.db.First(&account, "email = ?", models.NormalizeEmail(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepositoryImpl) Create(account *models.UserAccount) error {
	account.Email = models.NormalizeEmail(account.Email)
	if account.Version == 0 {
		account.Version = 1
	}
	return r.db.Create(account).Error
}

func (r *AccountRepositoryImpl) Save(account *models.UserAccount) error {
	loadedVersion := account.Version

	result := r.db.Model(&models.UserAccount{}).
		Where("id = ? AND version = ?", account.ID, loadedVersion).
		Updates(map[string]interface{}{
			"is_paid":         account.IsPaid,
			"payment_history": account.PaymentHistory,
			"version":         loadedVersion + 1,
			"updated_at":      time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}

	account.Version = loadedVersion + 1
	return nil
}

// Migrate creates the account table in one application store.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.UserAccount{})
}
