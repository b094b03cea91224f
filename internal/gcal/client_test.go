package gcal

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestOAuthConfig_ParsesInstalledCredentials(t *testing.T) {
	cfg, err := OAuthConfig("testdata/credentials.json")
	require.NoError(t, err)
	assert.Equal(t, "test-client.apps.googleusercontent.com", cfg.ClientID)
	assert.Equal(t, Scopes, cfg.Scopes)

	_, err = OAuthConfig("testdata/missing.json")
	assert.ErrorContains(t, err, "reading client secret file")
}

func TestTokenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")

	_, err := LoadToken(path)
	assert.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, SaveToken(path, &oauth2.Token{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer"}))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	tok, err := LoadToken(path)
	require.NoError(t, err)
	assert.Equal(t, "r", tok.RefreshToken)
}

func TestExchangeAndSave(t *testing.T) {
	var gotCode string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		gotCode = r.PostForm.Get("code")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"fresh","refresh_token":"keep","token_type":"Bearer","expires_in":3600}`))
	}))
	defer server.Close()

	cfg := &oauth2.Config{
		ClientID:     "id",
		ClientSecret: "secret",
		Endpoint:     oauth2.Endpoint{AuthURL: server.URL + "/auth", TokenURL: server.URL + "/token"},
		Scopes:       Scopes,
	}
	tokenFile := filepath.Join(t.TempDir(), "token.json")
	var out bytes.Buffer

	err := exchangeAndSave(context.Background(), cfg, tokenFile, strings.NewReader("  the-code\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, "the-code", gotCode)
	assert.Contains(t, out.String(), server.URL+"/auth?")
	assert.Contains(t, out.String(), "access_type=offline")

	tok, err := LoadToken(tokenFile)
	require.NoError(t, err)
	assert.Equal(t, "fresh", tok.AccessToken)
}

func TestExchangeAndSave_EmptyCode(t *testing.T) {
	cfg := &oauth2.Config{Endpoint: oauth2.Endpoint{AuthURL: "http://example.invalid/auth"}}
	err := exchangeAndSave(context.Background(), cfg, filepath.Join(t.TempDir(), "t.json"), strings.NewReader("\n"), &bytes.Buffer{})
	assert.ErrorContains(t, err, "authorization code is empty")
}
