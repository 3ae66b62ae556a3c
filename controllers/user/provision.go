package userControllers

import (
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/hackwithroshan/autocosmic-shop-sub000/models"
)

// InitialPassword derives the deterministic first credential for an
// auto-provisioned account from the phone number supplied at checkout. It is
// hashed before storage and emailed exactly once.
func InitialPassword(phone string) string {
	return phone
}

// UserDirectory is the slice of user storage ResolveCustomer needs. Create
// must report a unique-email violation as gorm.ErrDuplicatedKey; the
// gorm-backed UserStore gets that from the connection's TranslateError mode.
type UserDirectory interface {
	FindByEmail(email string) (*models.User, error)
	Create(user *models.User) error
}

// UserStore is the gorm-backed UserDirectory.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) Create(user *models.User) error {
	return s.db.Create(user).Error
}

// ResolveCustomer finds the user owning email or creates one from the
// checkout input. Lookup is an exact, case-sensitive match. Existing account
// data always wins: nothing is overwritten from checkout fields.
//
// Idempotent under concurrent checkouts for the same email: the unique index
// on users.email makes the second insert fail with gorm.ErrDuplicatedKey,
// which is treated as "already exists, re-fetch". The returned plaintext is
// non-empty only when an account was created.
func ResolveCustomer(store UserDirectory, email, name, phone string, address models.Address) (*models.User, bool, string, error) {
	user, err := store.FindByEmail(email)
	if err == nil {
		return user, false, "", nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, "", err
	}

	plaintext := InitialPassword(phone)
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, "", err
	}

	created := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		Phone:        phone,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		Address:      address,
	}

	if err := store.Create(&created); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race against a concurrent checkout for the same email.
			existing, err := store.FindByEmail(email)
			if err != nil {
				return nil, false, "", err
			}
			return existing, false, "", nil
		}
		return nil, false, "", err
	}

	return &created, true, plaintext, nil
}
