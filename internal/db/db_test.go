package db

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCVJSONShape(t *testing.T) {
	cv := CV{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		Title:      "Backend Engineer CV",
		TemplateID: "classic",
		Content:    json.RawMessage(`{"personal":{"name":"Jane"}}`),
	}

	raw, err := json.Marshal(cv)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "Backend Engineer CV", decoded["title"])
	assert.Equal(t, "classic", decoded["templateId"])
	assert.Contains(t, decoded, "userId")
	assert.Contains(t, decoded, "isPublic")
}

func TestUserPasswordHashNeverSerialized(t *testing.T) {
	u := User{
		ID:           uuid.New(),
		Name:         "Jane",
		Email:        "jane@example.com",
		PasswordHash: "bcrypt-hash",
		Plan:         "pro",
	}

	raw, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "bcrypt-hash")
}
