package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Subscription lifecycle states. Time alone never changes the stored status;
// trial expiry is derived on read and only webhook reconciliation writes
// transitions.
const (
	SubscriptionStatusTrial    = "trial"
	SubscriptionStatusActive   = "active"
	SubscriptionStatusPastDue  = "past_due"
	SubscriptionStatusCanceled = "canceled"
)

// TrialDuration is the entitlement window granted at sign-up.
const TrialDuration = 7 * 24 * time.Hour

type User struct {
	ID                    uint           `gorm:"primaryKey" json:"id"`
	Name                  string         `gorm:"type:varchar(150)" json:"name" validate:"required,min=3,max=150"`
	Email                 string         `gorm:"uniqueIndex;type:varchar(200)" json:"email" validate:"required,email,min=5,max=200"`
	Password              string         `gorm:"type:text" json:"-" validate:"required,min=6"`
	CPF                   string         `gorm:"type:varchar(14);index" json:"cpf" validate:"omitempty,min=11,max=14"`
	Phone                 string         `gorm:"type:varchar(20)" json:"phone" validate:"max=20"`
	SubscriptionStatus    string         `gorm:"type:varchar(32);not null;default:'trial';index" json:"subscription_status" validate:"oneof=trial active past_due canceled"`
	SubscriptionExpiresAt *time.Time     `gorm:"type:timestamp;default:null" json:"subscription_expires_at,omitempty"`
	SubscriptionID        string         `gorm:"type:varchar(64);default:''" json:"subscription_id"`
	LastLoginAt           *time.Time     `gorm:"type:timestamp;default:null" json:"last_login_at"`
	CreatedAt             time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) Validate() error {
	v := validator.New()

	return v.Struct(u)
}

// CreateUser builds a new owner account with a fresh trial window.
func CreateUser(name string, email string, password string) (*User, error) {
	pw, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	trialEnd := time.Now().Add(TrialDuration)
	u := &User{
		Name:                  name,
		Email:                 email,
		Password:              pw,
		SubscriptionStatus:    SubscriptionStatusTrial,
		SubscriptionExpiresAt: &trialEnd,
	}

	err = u.Validate()
	if err != nil {
		return nil, err
	}

	return u, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// CheckPassword verifies if the provided password matches the user's stored password
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.Password)
}

// SetPassword hashes and sets a new password for the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return err
	}
	u.Password = hashedPassword
	return nil
}
