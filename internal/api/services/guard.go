package services

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arjunm-codes/notesvault/internal/apperrors"
	"github.com/arjunm-codes/notesvault/internal/models"
)

// CheckOwnership decides whether the requester may act on a fetched note.
// A nil note means the record does not exist; a mismatched owner is forbidden.
// Pure decision function, shared by every single-record note operation.
func CheckOwnership(note *models.Note, requesterID primitive.ObjectID) error {
	if note == nil {
		return apperrors.ErrNotFound
	}
	if note.UserID != requesterID {
		return apperrors.ErrForbidden
	}
	return nil
}
