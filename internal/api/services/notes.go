package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arjunm-codes/notesvault/internal/apperrors"
	"github.com/arjunm-codes/notesvault/internal/models"
)

// NoteStore is the persistence capability the note service depends on.
type NoteStore interface {
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Note, error)
	Update(ctx context.Context, id primitive.ObjectID, upd models.NoteUpdate) (*models.Note, error)
	Replace(ctx context.Context, existing *models.Note, rep models.NoteReplace) (*models.Note, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Note, error)
	FindByContent(ctx context.Context, userID primitive.ObjectID, content string) (*models.Note, error)
	FindPaginated(ctx context.Context, userID primitive.ObjectID, page, limit int64) ([]models.Note, error)
	UpdateAllTitles(ctx context.Context, userID primitive.ObjectID, title string) (int64, error)
	DeleteAll(ctx context.Context, userID primitive.ObjectID) (int64, error)
	FindWithUser(ctx context.Context, userID primitive.ObjectID) ([]models.NoteWithUser, error)
	Aggregate(ctx context.Context, userID primitive.ObjectID, title string) ([]models.AggregatedNote, error)
}

type NoteService struct {
	notes NoteStore
}

func NewNoteService(notes NoteStore) *NoteService {
	return &NoteService{notes: notes}
}

func (s *NoteService) Create(ctx context.Context, userID primitive.ObjectID, title, content string, tags []string) (*models.Note, error) {
	note := &models.Note{
		Title:   title,
		Content: content,
		UserID:  userID,
		Tags:    tags,
	}
	return s.notes.Create(ctx, note)
}

// fetchOwned implements the shared single-record protocol:
// fetch by id, then apply the ownership check.
func (s *NoteService) fetchOwned(ctx context.Context, noteID, userID primitive.ObjectID) (*models.Note, error) {
	note, err := s.notes.GetByID(ctx, noteID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := CheckOwnership(note, userID); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) Update(ctx context.Context, noteID, userID primitive.ObjectID, upd models.NoteUpdate) (*models.Note, error) {
	if _, err := s.fetchOwned(ctx, noteID, userID); err != nil {
		return nil, err
	}
	return s.notes.Update(ctx, noteID, upd)
}

func (s *NoteService) Replace(ctx context.Context, noteID, userID primitive.ObjectID, rep models.NoteReplace) (*models.Note, error) {
	note, err := s.fetchOwned(ctx, noteID, userID)
	if err != nil {
		return nil, err
	}
	// the store pins the owner to note.UserID; a userId in the request body
	// never reaches the document
	return s.notes.Replace(ctx, note, rep)
}

func (s *NoteService) Delete(ctx context.Context, noteID, userID primitive.ObjectID) (*models.Note, error) {
	if _, err := s.fetchOwned(ctx, noteID, userID); err != nil {
		return nil, err
	}
	return s.notes.Delete(ctx, noteID)
}

func (s *NoteService) GetByID(ctx context.Context, noteID, userID primitive.ObjectID) (*models.Note, error) {
	return s.fetchOwned(ctx, noteID, userID)
}

// GetByContent returns the first note of the caller with exactly matching
// content. The filter already scopes by owner, so no ownership check is
// needed afterward.
func (s *NoteService) GetByContent(ctx context.Context, userID primitive.ObjectID, content string) (*models.Note, error) {
	return s.notes.FindByContent(ctx, userID, content)
}

// NotePage is one page of notes together with the paging echo.
type NotePage struct {
	Page  int64         `json:"page"`
	Limit int64         `json:"limit"`
	Count int           `json:"count"`
	Notes []models.Note `json:"notes"`
}

func (s *NoteService) ListPaginated(ctx context.Context, userID primitive.ObjectID, page, limit int64) (*NotePage, error) {
	if page < 1 || limit < 1 {
		return nil, fmt.Errorf("%w: page and limit must be positive", apperrors.ErrValidation)
	}

	notes, err := s.notes.FindPaginated(ctx, userID, page, limit)
	if err != nil {
		return nil, err
	}
	return &NotePage{Page: page, Limit: limit, Count: len(notes), Notes: notes}, nil
}

func (s *NoteService) UpdateAllTitles(ctx context.Context, userID primitive.ObjectID, title string) (int64, error) {
	if strings.TrimSpace(title) == "" {
		return 0, fmt.Errorf("%w: title is required", apperrors.ErrValidation)
	}
	return s.notes.UpdateAllTitles(ctx, userID, title)
}

func (s *NoteService) DeleteAll(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.notes.DeleteAll(ctx, userID)
}

func (s *NoteService) ListWithOwnerInfo(ctx context.Context, userID primitive.ObjectID) ([]models.NoteWithUser, error) {
	return s.notes.FindWithUser(ctx, userID)
}

// AggregateSearch joins the caller's notes with their account, optionally
// narrowed by a case-insensitive title substring.
func (s *NoteService) AggregateSearch(ctx context.Context, userID primitive.ObjectID, title string) ([]models.AggregatedNote, error) {
	return s.notes.Aggregate(ctx, userID, title)
}
