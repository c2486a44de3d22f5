package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type registerPayload struct {
	Username string `json:"username" validate:"required,min=3,max=15"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type updatePayload struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=15"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

func strPtr(s string) *string { return &s }

func TestValidate_Register(t *testing.T) {
	tests := []struct {
		name       string
		payload    registerPayload
		wantFields []string
	}{
		{
			name:    "valid payload",
			payload: registerPayload{Username: "alice", Email: "a@x.com", Password: "secret1"},
		},
		{
			name:       "all fields missing",
			payload:    registerPayload{},
			wantFields: []string{"username", "email", "password"},
		},
		{
			name:       "username too short",
			payload:    registerPayload{Username: "ab", Email: "a@x.com", Password: "secret1"},
			wantFields: []string{"username"},
		},
		{
			name:       "username too long",
			payload:    registerPayload{Username: "abcdefghijklmnop", Email: "a@x.com", Password: "secret1"},
			wantFields: []string{"username"},
		},
		{
			name:       "invalid email",
			payload:    registerPayload{Username: "alice", Email: "not-an-email", Password: "secret1"},
			wantFields: []string{"email"},
		},
		{
			name:       "password too short",
			payload:    registerPayload{Username: "alice", Email: "a@x.com", Password: "12345"},
			wantFields: []string{"password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fieldErrors := Validate(tt.payload)
			if len(tt.wantFields) == 0 {
				assert.Nil(t, fieldErrors)
				return
			}

			assert.Len(t, fieldErrors, len(tt.wantFields))
			for _, field := range tt.wantFields {
				assert.NotEmpty(t, fieldErrors[field], "expected messages for field %s", field)
			}
		})
	}
}

func TestValidate_Update(t *testing.T) {
	tests := []struct {
		name       string
		payload    updatePayload
		wantFields []string
	}{
		{
			name:    "empty payload is a valid no-op",
			payload: updatePayload{},
		},
		{
			name:    "single valid field",
			payload: updatePayload{Username: strPtr("newname")},
		},
		{
			name:       "username too short",
			payload:    updatePayload{Username: strPtr("ab")},
			wantFields: []string{"username"},
		},
		{
			name:       "invalid email",
			payload:    updatePayload{Email: strPtr("invalid_email")},
			wantFields: []string{"email"},
		},
		{
			name:       "password too short",
			payload:    updatePayload{Password: strPtr("123")},
			wantFields: []string{"password"},
		},
		{
			name: "all fields valid",
			payload: updatePayload{
				Username: strPtr("newname"),
				Email:    strPtr("new@example.com"),
				Password: strPtr("newpassword"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fieldErrors := Validate(tt.payload)
			if len(tt.wantFields) == 0 {
				assert.Nil(t, fieldErrors)
				return
			}

			assert.Len(t, fieldErrors, len(tt.wantFields))
			for _, field := range tt.wantFields {
				assert.NotEmpty(t, fieldErrors[field])
			}
		})
	}
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	fieldErrors := Validate(registerPayload{})
	assert.Contains(t, fieldErrors, "username")
	assert.Contains(t, fieldErrors, "email")
	assert.Contains(t, fieldErrors, "password")
	assert.NotContains(t, fieldErrors, "Username")
}
