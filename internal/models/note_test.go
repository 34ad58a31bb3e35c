package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arjunm-codes/notesvault/internal/apperrors"
)

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantErr bool
	}{
		{name: "mixed case accepted", title: "Hello World", wantErr: false},
		{name: "all uppercase rejected", title: "HELLO WORLD", wantErr: true},
		{name: "empty rejected", title: "", wantErr: true},
		{name: "whitespace only rejected", title: "   ", wantErr: true},
		{name: "lowercase accepted", title: "shopping list", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTitle(tt.title)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNoteValidate(t *testing.T) {
	n := &Note{Title: "Groceries", Content: "milk"}
	assert.NoError(t, n.Validate())

	n.Content = ""
	assert.ErrorIs(t, n.Validate(), apperrors.ErrValidation)
}

func TestValidateAge(t *testing.T) {
	age := func(v int) *int { return &v }

	assert.NoError(t, ValidateAge(nil))
	assert.NoError(t, ValidateAge(age(18)))
	assert.NoError(t, ValidateAge(age(60)))
	assert.ErrorIs(t, ValidateAge(age(17)), apperrors.ErrValidation)
	assert.ErrorIs(t, ValidateAge(age(61)), apperrors.ErrValidation)
}
