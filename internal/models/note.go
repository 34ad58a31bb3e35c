package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arjunm-codes/notesvault/internal/apperrors"
)

type Note struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	Content   string             `json:"content" bson:"content"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	Tags      []string           `json:"tags" bson:"tags"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Validate enforces the write-time schema rules for a note document.
func (n *Note) Validate() error {
	if err := ValidateTitle(n.Title); err != nil {
		return err
	}
	if strings.TrimSpace(n.Content) == "" {
		return fmt.Errorf("%w: content is required", apperrors.ErrValidation)
	}
	return nil
}

// ValidateTitle rejects empty titles and titles written entirely in upper case.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", apperrors.ErrValidation)
	}
	if title == strings.ToUpper(title) {
		return fmt.Errorf("%w: title must not be entirely uppercase", apperrors.ErrValidation)
	}
	return nil
}

// NoteUpdate is a partial update: nil fields are left untouched.
type NoteUpdate struct {
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Tags    *[]string `json:"tags"`
}

// NoteReplace is a full overwrite of a note's mutable fields. The owner is
// never part of it; replace pins the stored owner.
type NoteReplace struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// NoteWithUser is a note projection joined with its owner's email,
// as produced by the note-with-user lookup.
type NoteWithUser struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	Title     string             `json:"title" bson:"title"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	User      struct {
		Email string `json:"email" bson:"email"`
	} `json:"user" bson:"user"`
}

// AggregatedNote is a row of the aggregate-search pipeline: the note joined
// with its owner's name and email.
type AggregatedNote struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	Title     string             `json:"title" bson:"title"`
	Content   string             `json:"content" bson:"content"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	User      struct {
		Name  string `json:"name" bson:"name"`
		Email string `json:"email" bson:"email"`
	} `json:"user" bson:"user"`
}
