package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arjunm-codes/notesvault/internal/api/middleware"
	"github.com/arjunm-codes/notesvault/internal/api/services"
	"github.com/arjunm-codes/notesvault/internal/models"
	"github.com/arjunm-codes/notesvault/internal/utils"
)

const (
	defaultPage  = 1
	defaultLimit = 5
)

type NoteHandler struct {
	notes *services.NoteService
}

func NewNoteHandler(notes *services.NoteService) *NoteHandler {
	return &NoteHandler{notes: notes}
}

// requester resolves the authenticated identity or answers 401.
func requester(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
			Message: "Unauthorized",
		})
	}
	return userID, ok
}

// noteID parses the note id path segment or answers 400.
func noteID(w http.ResponseWriter, r *http.Request, segment string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(r.PathValue(segment))
	if err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Message: "Invalid note id",
		})
		return primitive.NilObjectID, false
	}
	return id, true
}

// CreateNote godoc
// @Summary Create a note
// @Description Creates a note owned by the authenticated user.
// @Tags Notes
// @Accept json
// @Produce json
// @Param note body object true "title, content and optional tags"
// @Success 201 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /notes [post]
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}

	var input struct {
		Title   string   `json:"title"`
		Content string   `json:"content"`
		Tags    []string `json:"tags"`
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Message: "Invalid input",
		})
		return
	}

	note, err := h.notes.Create(r.Context(), userID, input.Title, input.Content, input.Tags)
	if err != nil {
		writeError(w, err, "Failed to create note")
		return
	}

	utils.JSONResponse(w, http.StatusCreated, utils.Payload{
		Message: "Note created successfully",
		Data:    note,
	})
}

// UpdateNote godoc
// @Summary Partially update a note
// @Description Merges the given fields into an owned note.
// @Tags Notes
// @Accept json
// @Produce json
// @Param noteId path string true "Note id"
// @Success 200 {object} utils.Payload
// @Failure 403 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /notes/{noteId} [patch]
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}
	id, ok := noteID(w, r, "noteId")
	if !ok {
		return
	}

	var upd models.NoteUpdate
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&upd); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Message: "Invalid input",
		})
		return
	}

	note, err := h.notes.Update(r.Context(), id, userID, upd)
	if err != nil {
		writeError(w, err, "Update failed")
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Message: "Note updated successfully",
		Data:    note,
	})
}

// ReplaceNote godoc
// @Summary Replace a note
// @Description Overwrites all fields of an owned note. The owner is pinned to
// the stored value, so a userId in the body is ignored.
// @Tags Notes
// @Accept json
// @Produce json
// @Param noteId path string true "Note id"
// @Success 200 {object} utils.Payload
// @Failure 403 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /notes/replace/{noteId} [put]
func (h *NoteHandler) ReplaceNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}
	id, ok := noteID(w, r, "noteId")
	if !ok {
		return
	}

	// unknown fields allowed here: a stray userId in the body is ignored
	// rather than rejected
	var rep models.NoteReplace
	if err := json.NewDecoder(r.Body).Decode(&rep); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Message: "Invalid input",
		})
		return
	}

	note, err := h.notes.Replace(r.Context(), id, userID, rep)
	if err != nil {
		writeError(w, err, "Replace failed")
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Message: "Note replaced successfully",
		Data:    note,
	})
}

func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}
	id, ok := noteID(w, r, "noteId")
	if !ok {
		return
	}

	note, err := h.notes.Delete(r.Context(), id, userID)
	if err != nil {
		writeError(w, err, "Delete failed")
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Message: "Note deleted successfully",
		Data:    note,
	})
}

func (h *NoteHandler) GetNoteByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}
	id, ok := noteID(w, r, "id")
	if !ok {
		return
	}

	note, err := h.notes.GetByID(r.Context(), id, userID)
	if err != nil {
		writeError(w, err, "Failed to get note")
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Message: "Note fetched successfully",
		Data:    note,
	})
}

func (h *NoteHandler) GetNoteByContent(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}

	note, err := h.notes.GetByContent(r.Context(), userID, r.URL.Query().Get("content"))
	if err != nil {
		writeError(w, err, "Failed to get note")
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Message: "Note fetched successfully",
		Data:    note,
	})
}

// GetNotesPaginated godoc
// @Summary List notes page by page
// @Description Returns one page of the caller's notes, newest first.
// @Tags Notes
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 5)"
// @Success 200 {object} utils.Payload
// @Router /notes/paginate-sort [get]
func (h *NoteHandler) GetNotesPaginated(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}

	page := queryInt(r, "page", defaultPage)
	limit := queryInt(r, "limit", defaultLimit)

	result, err := h.notes.ListPaginated(r.Context(), userID, page, limit)
	if err != nil {
		writeError(w, err, "Failed to get notes")
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Message: "Notes fetched successfully",
		Data:    result,
	})
}

// queryInt reads an integer query parameter, falling back on absent or
// non-numeric values.
func queryInt(r *http.Request, key string, fallback int64) int64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return value
}

func (h *NoteHandler) UpdateAllNotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}

	var input struct {
		Title string `json:"title"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Message: "Invalid input",
		})
		return
	}

	modified, err := h.notes.UpdateAllTitles(r.Context(), userID, input.Title)
	if err != nil {
		writeError(w, err, "Update all notes failed")
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Message: "All notes updated successfully",
		Data:    map[string]int64{"modifiedCount": modified},
	})
}

func (h *NoteHandler) DeleteAllNotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}

	deleted, err := h.notes.DeleteAll(r.Context(), userID)
	if err != nil {
		writeError(w, err, "Failed to delete notes")
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Message: "All notes deleted successfully",
		Data:    map[string]int64{"deletedCount": deleted},
	})
}

func (h *NoteHandler) GetNotesWithUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}

	notes, err := h.notes.ListWithOwnerInfo(r.Context(), userID)
	if err != nil {
		writeError(w, err, "Failed to get notes")
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Message: "Notes fetched successfully",
		Data:    notes,
	})
}

// GetNotesAggregate godoc
// @Summary Search notes joined with owner info
// @Description Joins the caller's notes with their account, optionally
// filtered by a case-insensitive title substring.
// @Tags Notes
// @Produce json
// @Param title query string false "Title substring filter"
// @Success 200 {object} utils.Payload
// @Router /notes/aggregate [get]
func (h *NoteHandler) GetNotesAggregate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}

	notes, err := h.notes.AggregateSearch(r.Context(), userID, r.URL.Query().Get("title"))
	if err != nil {
		writeError(w, err, "Aggregation failed")
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Message: "Notes fetched successfully",
		Data:    notes,
	})
}
