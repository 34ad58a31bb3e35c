package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/arjunm-codes/notesvault/internal/api"
	"github.com/arjunm-codes/notesvault/internal/api/handlers"
	"github.com/arjunm-codes/notesvault/internal/api/services"
	"github.com/arjunm-codes/notesvault/internal/config"
	"github.com/arjunm-codes/notesvault/internal/repositories"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := repositories.Connect(ctx, config.Envs.MongoURI, config.Envs.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	userService := services.NewUserService(store.Users(), config.Envs.JWTSecret, config.Envs.EncryptKey)
	noteService := services.NewNoteService(store.Notes())
	oauth := services.NewGoogleOauthConfig(config.Envs.Google)

	userHandler := handlers.NewUserHandler(userService, oauth)
	noteHandler := handlers.NewNoteHandler(noteService)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.Envs.Port),
		Handler: api.SetupRouter(userHandler, noteHandler),
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Starting NotesVault server on port: %s", config.Envs.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return store.Disconnect(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server stopped with error: %v", err)
	}
	log.Println("Server stopped")
}
