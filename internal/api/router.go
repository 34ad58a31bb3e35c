package api

import (
	"fmt"
	"log"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/rs/cors"

	_ "github.com/arjunm-codes/notesvault/docs"
	"github.com/arjunm-codes/notesvault/internal/api/handlers"
	"github.com/arjunm-codes/notesvault/internal/api/middleware"
	"github.com/arjunm-codes/notesvault/internal/config"
)

// SetupRouter wires every route to its handler. Protected routes sit behind
// the bearer-token middleware; anything unmatched answers 404.
func SetupRouter(users *handlers.UserHandler, notes *handlers.NoteHandler) http.Handler {
	mux := http.NewServeMux()
	c := cors.New(config.Envs.CorsConfig)

	jwtSecret := config.Envs.JWTSecret
	protected := func(h http.HandlerFunc) http.Handler {
		return middleware.Auth(jwtSecret, h)
	}

	// ---------- PUBLIC ROUTES ----------
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	mux.Handle("/docs/", httpSwagger.WrapHandler)

	mux.HandleFunc("POST /users/signup", users.Signup)
	mux.HandleFunc("POST /users/login", users.Login)
	mux.HandleFunc("GET /users/google/login", users.HandleGoogleLogin)
	mux.HandleFunc("GET /users/google/callback", users.HandleGoogleCallback)

	// ---------- PROTECTED ROUTES ----------
	mux.Handle("GET /users", protected(users.GetProfile))
	mux.Handle("PATCH /users", protected(users.UpdateProfile))
	mux.Handle("DELETE /users", protected(users.DeleteUser))

	mux.Handle("POST /notes", protected(notes.CreateNote))
	mux.Handle("GET /notes/paginate-sort", protected(notes.GetNotesPaginated))
	mux.Handle("PATCH /notes/all", protected(notes.UpdateAllNotes))
	mux.Handle("PATCH /notes/{noteId}", protected(notes.UpdateNote))
	mux.Handle("PUT /notes/replace/{noteId}", protected(notes.ReplaceNote))
	mux.Handle("DELETE /notes/{noteId}", protected(notes.DeleteNote))
	mux.Handle("GET /notes/aggregate", protected(notes.GetNotesAggregate))
	mux.Handle("GET /notes/note-with-user", protected(notes.GetNotesWithUser))
	mux.Handle("GET /notes/note-by-content", protected(notes.GetNoteByContent))
	mux.Handle("GET /notes/{id}", protected(notes.GetNoteByID))
	mux.Handle("DELETE /notes", protected(notes.DeleteAllNotes))

	// ---------- INVALID ROUTES ----------
	mux.HandleFunc("/", handlers.NotFound)

	log.Println("Router initialized")
	handler := c.Handler(mux)
	handler = middleware.Logger(handler)
	return handler
}
