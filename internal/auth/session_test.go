package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/juegoya/juegoya/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	a := auth.NewAuthenticator("test-secret")

	token, err := a.Issue("user-1", "ana@example.com", time.Hour)
	require.NoError(t, err)

	session, err := a.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", session.UserID)
	assert.Equal(t, "ana@example.com", session.Email)
}

func TestVerify_Rejects(t *testing.T) {
	a := auth.NewAuthenticator("test-secret")
	other := auth.NewAuthenticator("other-secret")

	foreign, err := other.Issue("user-1", "", time.Hour)
	require.NoError(t, err)
	expired, err := a.Issue("user-1", "", -time.Minute)
	require.NoError(t, err)
	noSubject, err := a.Issue("", "", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"empty", "", auth.ErrMissingToken},
		{"garbage", "not-a-jwt", auth.ErrInvalidToken},
		{"wrong secret", foreign, auth.ErrInvalidToken},
		{"expired", expired, auth.ErrInvalidToken},
		{"no subject", noSubject, auth.ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Verify(tt.token)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", auth.BearerToken("Bearer abc"))
	assert.Equal(t, "abc", auth.BearerToken("bearer  abc"))
	assert.Equal(t, "", auth.BearerToken("Basic abc"))
	assert.Equal(t, "", auth.BearerToken(""))
}

func TestSessionContext(t *testing.T) {
	_, ok := auth.FromContext(context.Background())
	assert.False(t, ok)

	ctx := auth.WithSession(context.Background(), auth.Session{UserID: "u1"})
	s, ok := auth.FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "u1", s.UserID)
}
