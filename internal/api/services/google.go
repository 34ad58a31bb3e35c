package services

import (
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/arjunm-codes/notesvault/internal/config"
)

// NewGoogleOauthConfig builds the OAuth2 config for the Google sign-in flow.
func NewGoogleOauthConfig(cfg config.GoogleConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}
