package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/arjunm-codes/notesvault/internal/apperrors"
	"github.com/arjunm-codes/notesvault/internal/models"
)

// NoteRepository persists note documents in the Notes collection and owns all
// query composition: filters, pagination, bulk writes and lookup pipelines.
type NoteRepository struct {
	coll *mongo.Collection
}

func (r *NoteRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	if err := note.Validate(); err != nil {
		return nil, err
	}

	if note.Tags == nil {
		note.Tags = []string{}
	}
	now := time.Now().UTC()
	note.CreatedAt = now
	note.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("failed to insert note: %w", err)
	}

	note.ID = res.InsertedID.(primitive.ObjectID)
	return note, nil
}

func (r *NoteRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Note, error) {
	var note models.Note
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&note)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query note: %w", err)
	}
	return &note, nil
}

// Update merges the non-nil fields into the stored document and returns the
// updated note.
func (r *NoteRepository) Update(ctx context.Context, id primitive.ObjectID, upd models.NoteUpdate) (*models.Note, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.Title != nil {
		if err := models.ValidateTitle(*upd.Title); err != nil {
			return nil, err
		}
		set["title"] = *upd.Title
	}
	if upd.Content != nil {
		set["content"] = *upd.Content
	}
	if upd.Tags != nil {
		set["tags"] = *upd.Tags
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var note models.Note
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&note)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	return &note, nil
}

// Replace overwrites every mutable field of the stored note. The owner and
// creation time are pinned to the existing document's values regardless of
// what the replacement carries.
func (r *NoteRepository) Replace(ctx context.Context, existing *models.Note, rep models.NoteReplace) (*models.Note, error) {
	replacement := models.Note{
		Title:     rep.Title,
		Content:   rep.Content,
		UserID:    existing.UserID,
		Tags:      rep.Tags,
		CreatedAt: existing.CreatedAt,
		UpdatedAt: time.Now().UTC(),
	}
	if err := replacement.Validate(); err != nil {
		return nil, err
	}
	if replacement.Tags == nil {
		replacement.Tags = []string{}
	}

	opts := options.FindOneAndReplace().SetReturnDocument(options.After)

	var note models.Note
	err := r.coll.FindOneAndReplace(ctx, bson.M{"_id": existing.ID}, replacement, opts).Decode(&note)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to replace note: %w", err)
	}
	return &note, nil
}

// Delete removes the note and returns the removed document.
func (r *NoteRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Note, error) {
	var note models.Note
	err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&note)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete note: %w", err)
	}
	return &note, nil
}

// FindByContent returns the first note owned by userID with exactly matching
// content.
func (r *NoteRepository) FindByContent(ctx context.Context, userID primitive.ObjectID, content string) (*models.Note, error) {
	var note models.Note
	err := r.coll.FindOne(ctx, bson.M{"userId": userID, "content": content}).Decode(&note)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query note by content: %w", err)
	}
	return &note, nil
}

// FindPaginated returns one page of the caller's notes, newest first.
func (r *NoteRepository) FindPaginated(ctx context.Context, userID primitive.ObjectID, page, limit int64) ([]models.Note, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}

	notes := []models.Note{}
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, fmt.Errorf("failed to decode notes: %w", err)
	}
	return notes, nil
}

// UpdateAllTitles bulk-sets the title on every note owned by userID and
// reports the modified count.
func (r *NoteRepository) UpdateAllTitles(ctx context.Context, userID primitive.ObjectID, title string) (int64, error) {
	set := bson.M{"$set": bson.M{"title": title, "updatedAt": time.Now().UTC()}}
	res, err := r.coll.UpdateMany(ctx, bson.M{"userId": userID}, set)
	if err != nil {
		return 0, fmt.Errorf("failed to update notes: %w", err)
	}
	return res.ModifiedCount, nil
}

// DeleteAll removes every note owned by userID and reports the deleted count.
func (r *NoteRepository) DeleteAll(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete notes: %w", err)
	}
	return res.DeletedCount, nil
}

// FindWithUser projects {title, userId, createdAt} for the caller's notes and
// resolves the owner reference to the account email.
func (r *NoteRepository) FindWithUser(ctx context.Context, userID primitive.ObjectID) ([]models.NoteWithUser, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": userID}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         usersCollection,
			"localField":   "userId",
			"foreignField": "_id",
			"as":           "user",
		}}},
		{{Key: "$unwind", Value: "$user"}},
		{{Key: "$project", Value: bson.M{
			"title":      1,
			"createdAt":  1,
			"user.email": 1,
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate notes: %w", err)
	}

	notes := []models.NoteWithUser{}
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, fmt.Errorf("failed to decode notes: %w", err)
	}
	return notes, nil
}

// Aggregate joins the caller's notes with their account, optionally narrowed
// by a case-insensitive title substring.
func (r *NoteRepository) Aggregate(ctx context.Context, userID primitive.ObjectID, title string) ([]models.AggregatedNote, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": userID}}},
	}

	if title != "" {
		pipeline = append(pipeline, bson.D{
			{Key: "$match", Value: bson.M{
				"title": bson.M{"$regex": title, "$options": "i"},
			}},
		})
	}

	pipeline = append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         usersCollection,
			"localField":   "userId",
			"foreignField": "_id",
			"as":           "user",
		}}},
		bson.D{{Key: "$unwind", Value: "$user"}},
		bson.D{{Key: "$project", Value: bson.M{
			"title":      1,
			"content":    1,
			"createdAt":  1,
			"user.name":  1,
			"user.email": 1,
		}}},
	)

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate notes: %w", err)
	}

	notes := []models.AggregatedNote{}
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, fmt.Errorf("failed to decode notes: %w", err)
	}
	return notes, nil
}
