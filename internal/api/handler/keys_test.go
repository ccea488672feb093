package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/hirescreen/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMe(t *testing.T) {
	s := newTestServer(t)
	env := s.mustDo(t, http.MethodGet, "/auth/me", nil, http.StatusOK)
	user := decodeData[models.User](t, env)
	assert.Equal(t, s.user.ID, user.ID)
	assert.Equal(t, "rita@example.com", user.Email)
}

func TestKeys_CreateListRevoke(t *testing.T) {
	s := newTestServer(t)

	env := s.mustDo(t, http.MethodPost, "/admin/keys", map[string]any{"name": "ci", "scopes": []string{"admin"}}, http.StatusCreated)
	created := decodeData[struct {
		ID        uuid.UUID `json:"id"`
		Key       string    `json:"key"`
		KeyPrefix string    `json:"keyPrefix"`
		Scopes    []string  `json:"scopes"`
	}](t, env)
	require.Len(t, created.Key, 52)
	assert.Equal(t, created.Key[:8], created.KeyPrefix)
	assert.Equal(t, []string{"admin"}, created.Scopes)
	assert.NotContains(t, string(env.Data), "keyHash")

	env = s.mustDo(t, http.MethodGet, "/admin/keys", nil, http.StatusOK)
	keys := decodeData[[]map[string]any](t, env)
	require.Len(t, keys, 1)
	assert.NotContains(t, keys[0], "key")

	s.mustDo(t, http.MethodDelete, "/admin/keys/"+created.ID.String(), nil, http.StatusOK)
	env = s.mustDo(t, http.MethodDelete, "/admin/keys/"+created.ID.String(), nil, http.StatusNotFound)
	assert.Equal(t, "KEY_NOT_FOUND", env.ErrorCode)

	env = s.mustDo(t, http.MethodGet, "/admin/keys", nil, http.StatusOK)
	assert.Empty(t, decodeData[[]map[string]any](t, env))
}

func TestKeys_Validation(t *testing.T) {
	s := newTestServer(t)

	env := s.mustDo(t, http.MethodPost, "/admin/keys", map[string]any{}, http.StatusBadRequest)
	assert.Equal(t, "name is required", env.Message)

	env = s.mustDo(t, http.MethodPost, "/admin/keys", map[string]any{"name": "x", "scopes": []string{"root"}}, http.StatusBadRequest)
	assert.Equal(t, "VALIDATION_ERROR", env.ErrorCode)

	env = s.mustDo(t, http.MethodDelete, "/admin/keys/abc", nil, http.StatusBadRequest)
	assert.Equal(t, "INVALID_KEY_ID", env.ErrorCode)
}
