package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/arjunm-codes/notesvault/internal/apperrors"
	"github.com/arjunm-codes/notesvault/internal/config"
	"github.com/arjunm-codes/notesvault/internal/utils"
)

// writeError is the single mapping from a service outcome to a wire response.
// Domain outcomes map to their status code and carry their own message; any
// other error is a store failure answered with the fallback message, with the
// detail echoed only in development mode.
func writeError(w http.ResponseWriter, err error, fallback string) {
	status := statusFor(err)

	if status == http.StatusInternalServerError {
		log.Printf("%s: %v", fallback, err)
		payload := utils.Payload{Message: fallback}
		if config.Envs.IsDevelopment() {
			payload.Error = err.Error()
		}
		utils.JSONResponse(w, status, payload)
		return
	}

	utils.JSONResponse(w, status, utils.Payload{Message: err.Error()})
}

// NotFound answers every route the router does not know.
func NotFound(w http.ResponseWriter, r *http.Request) {
	utils.JSONResponse(w, http.StatusNotFound, utils.Payload{
		Message: "Invalid application routing",
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrPhoneRequired),
		errors.Is(err, apperrors.ErrPasswordChangeNotAllowed):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrEmailExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
