package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/hirescreen/pkg/models"
)

type contextKey string

const (
	userKey         contextKey = "user"
	keyPrefixKey    contextKey = "key_prefix"
	apiKeyScopesKey contextKey = "api_key_scopes"
)

// WithUser stores the acting user. Exported for handler tests.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return setUser(ctx, u)
}

func setUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

func GetUser(r *http.Request) (*models.User, bool) {
	u, ok := r.Context().Value(userKey).(*models.User)
	return u, ok && u != nil
}

func GetUserID(r *http.Request) (uuid.UUID, bool) {
	u, ok := GetUser(r)
	if !ok {
		return uuid.Nil, false
	}
	return u.ID, true
}

// GetOrganizationID returns the acting user's organization, or nil when the
// user belongs to none.
func GetOrganizationID(r *http.Request) *uuid.UUID {
	u, ok := GetUser(r)
	if !ok {
		return nil
	}
	return u.OrganizationID
}

func setKeyPrefix(ctx context.Context, prefix string) context.Context {
	return context.WithValue(ctx, keyPrefixKey, prefix)
}

func getKeyPrefix(r *http.Request) (string, bool) {
	prefix, ok := r.Context().Value(keyPrefixKey).(string)
	return prefix, ok
}

func setScopes(ctx context.Context, scopes []string) context.Context {
	return context.WithValue(ctx, apiKeyScopesKey, scopes)
}

func getScopes(r *http.Request) []string {
	scopes, _ := r.Context().Value(apiKeyScopesKey).([]string)
	return scopes
}

// WithKey stores the API key prefix and scopes. Exported for tests.
func WithKey(ctx context.Context, prefix string, scopes []string) context.Context {
	return setScopes(setKeyPrefix(ctx, prefix), scopes)
}
