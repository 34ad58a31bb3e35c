package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/arjunm-codes/notesvault/internal/api/services"
	"github.com/arjunm-codes/notesvault/internal/utils"
)

type UserHandler struct {
	users *services.UserService
	oauth *oauth2.Config
}

func NewUserHandler(users *services.UserService, oauth *oauth2.Config) *UserHandler {
	return &UserHandler{users: users, oauth: oauth}
}

// POST /users/signup
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Phone    string `json:"phone"`
		Age      *int   `json:"age"`
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Message: "Invalid input",
		})
		return
	}

	if input.Email == "" || input.Name == "" || input.Password == "" {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Message: "Invalid input",
		})
		return
	}

	userID, err := h.users.Signup(r.Context(), services.SignupInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Phone:    input.Phone,
		Age:      input.Age,
	})
	if err != nil {
		writeError(w, err, "Signup failed")
		return
	}

	utils.JSONResponse(w, http.StatusCreated, utils.Payload{
		Message: "User registered successfully",
		Data:    map[string]string{"userId": userID.Hex()},
	})
}

// POST /users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Message: "Invalid input",
		})
		return
	}

	if input.Email == "" || input.Password == "" {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Message: "Invalid input",
		})
		return
	}

	token, err := h.users.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		writeError(w, err, "Login failed")
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Message: "Login successful",
		Data:    map[string]string{"token": token},
	})
}

// GET /users
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}

	profile, err := h.users.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, err, "Failed to get user")
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Message: "User fetched successfully",
		Data:    profile,
	})
}

// PATCH /users
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}

	// email and password fields are handled by the service: password is
	// rejected, email is ignored
	var input services.UserUpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Message: "Invalid input",
		})
		return
	}

	if _, err := h.users.Update(r.Context(), userID, input); err != nil {
		writeError(w, err, "Update failed")
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Message: "User updated successfully",
	})
}

// DELETE /users
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}

	if err := h.users.Delete(r.Context(), userID); err != nil {
		writeError(w, err, "Delete failed")
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Message: "User deleted",
	})
}

// GET /users/google/login
func (h *UserHandler) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	flow := r.URL.Query().Get("redirect") // "login" or "register"
	if flow == "" {
		flow = "login"
	}

	state, err := GenerateState(map[string]string{"flow": flow})
	if err != nil {
		http.Error(w, "Failed to generate OAuth state", http.StatusInternalServerError)
		return
	}

	url := h.oauth.AuthCodeURL(state)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// GET /users/google/callback
func (h *UserHandler) HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	state := r.FormValue("state")
	stateData, err := DecodeState(state)
	if err != nil {
		http.Error(w, "Invalid OAuth state", http.StatusBadRequest)
		return
	}

	flow := stateData["flow"]
	code := r.FormValue("code")

	token, err := h.oauth.Exchange(context.Background(), code)
	if err != nil {
		http.Error(w, "Code exchange failed", http.StatusInternalServerError)
		log.Println("Exchange error:", err)
		return
	}

	client := h.oauth.Client(context.Background(), token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		http.Error(w, "Failed to get user info", http.StatusInternalServerError)
		return
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)

	var googleUser struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(data, &googleUser); err != nil {
		http.Error(w, "Failed to parse user info", http.StatusInternalServerError)
		return
	}

	user, err := h.users.FindOrCreateOAuthUser(r.Context(), googleUser.Name, googleUser.Email, flow)
	if err != nil {
		writeError(w, err, "Google sign-in failed")
		return
	}

	signed, err := h.users.IssueToken(user.ID)
	if err != nil {
		http.Error(w, "Failed to create token", http.StatusInternalServerError)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Message: "Login successful",
		Data:    map[string]string{"token": signed},
	})
}
