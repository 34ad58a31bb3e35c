package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arjunm-codes/notesvault/internal/apperrors"
)

const (
	MinAge = 18
	MaxAge = 60
)

type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password"`
	Age       *int               `json:"age,omitempty" bson:"age,omitempty"`
	Phone     string             `json:"-" bson:"phone"` // AES-encrypted at rest, never returned
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Validate enforces the write-time schema rules for a user document.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(u.Email) == "" {
		return fmt.Errorf("%w: email is required", apperrors.ErrValidation)
	}
	return ValidateAge(u.Age)
}

// ValidateAge checks the optional age against the allowed range.
func ValidateAge(age *int) error {
	if age == nil {
		return nil
	}
	if *age < MinAge || *age > MaxAge {
		return fmt.Errorf("%w: age must be between %d and %d", apperrors.ErrValidation, MinAge, MaxAge)
	}
	return nil
}

// UserUpdate is a partial profile update: nil fields are left untouched.
// Email and password are not updatable through this path.
type UserUpdate struct {
	Name  *string `json:"name"`
	Age   *int    `json:"age"`
	Phone *string `json:"phone"`
}

// Profile is the readable projection of a user. The password hash and the
// encrypted phone never leave the store through it.
type Profile struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Age       *int               `json:"age,omitempty" bson:"age,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}
