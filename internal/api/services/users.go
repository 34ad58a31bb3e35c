package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arjunm-codes/notesvault/internal/apperrors"
	"github.com/arjunm-codes/notesvault/internal/models"
	"github.com/arjunm-codes/notesvault/internal/utils"
)

// TokenValidity is how long an issued bearer token stays valid.
const TokenValidity = time.Hour

// Claims are the JWT claims bound to an account identity.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// UserStore is the persistence capability the user service depends on.
type UserStore interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, upd models.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type UserService struct {
	users      UserStore
	jwtSecret  []byte
	encryptKey string
}

func NewUserService(users UserStore, jwtSecret, encryptKey string) *UserService {
	return &UserService{
		users:      users,
		jwtSecret:  []byte(jwtSecret),
		encryptKey: encryptKey,
	}
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Age      *int
}

// Signup registers a new account. The returned id is the only thing the
// caller learns about the stored document.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (primitive.ObjectID, error) {
	_, err := s.users.GetByEmail(ctx, in.Email)
	if err == nil {
		return primitive.NilObjectID, apperrors.ErrEmailExists
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return primitive.NilObjectID, err
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return primitive.NilObjectID, err
	}

	encryptedPhone, err := utils.EncryptPhone(in.Phone, s.encryptKey)
	if err != nil {
		return primitive.NilObjectID, err
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hashed,
		Age:      in.Age,
		Phone:    encryptedPhone,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return created.ID, nil
}

// Login authenticates by email and password. An unknown email and a wrong
// password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrNotFound) {
		return "", apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if !utils.CheckPassword(user.Password, password) {
		return "", apperrors.ErrInvalidCredentials
	}

	return s.IssueToken(user.ID)
}

// IssueToken signs a short-lived bearer token bound to the account identity.
func (s *UserService) IssueToken(userID primitive.ObjectID) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenValidity)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

type UserUpdateInput struct {
	Name     *string `json:"name"`
	Age      *int    `json:"age"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// Update merges the updatable profile fields. A password in the input is
// rejected outright; an email is silently ignored.
func (s *UserService) Update(ctx context.Context, userID primitive.ObjectID, in UserUpdateInput) (*models.User, error) {
	if in.Password != nil {
		return nil, apperrors.ErrPasswordChangeNotAllowed
	}

	upd := models.UserUpdate{Name: in.Name, Age: in.Age}
	if in.Phone != nil {
		encrypted, err := utils.EncryptPhone(*in.Phone, s.encryptKey)
		if err != nil {
			return nil, err
		}
		upd.Phone = &encrypted
	}

	return s.users.Update(ctx, userID, upd)
}

func (s *UserService) Delete(ctx context.Context, userID primitive.ObjectID) error {
	return s.users.Delete(ctx, userID)
}

// GetProfile returns the account projection without the credential.
func (s *UserService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.Profile{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Age:       user.Age,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}, nil
}

// FindOrCreateOAuthUser resolves a Google-authenticated identity to an
// account. On the register flow the account must not exist yet; on the login
// flow it must. OAuth accounts carry no password and no phone.
func (s *UserService) FindOrCreateOAuthUser(ctx context.Context, name, email, flow string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)

	switch flow {
	case "register":
		if err == nil {
			return nil, apperrors.ErrEmailExists
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return s.users.Create(ctx, &models.User{Name: name, Email: email})
	default: // login
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return user, err
	}
}
