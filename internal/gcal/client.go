package gcal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Scopes requested from Google. The feed only reads events.
var Scopes = []string{calendar.CalendarReadonlyScope}

// ErrNoToken is returned when no OAuth token has been stored yet.
var ErrNoToken = errors.New("no Google Calendar token (run `adapta gcal login`)")

// Config locates the OAuth client secrets, the cached token and the
// calendar to read.
type Config struct {
	CredentialsFile string
	TokenFile       string
	CalendarID      string
}

// OAuthConfig parses the client secrets file downloaded from the Google
// Cloud console.
func OAuthConfig(credentialsFile string) (*oauth2.Config, error) {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("reading client secret file %s: %w", credentialsFile, err)
	}
	cfg, err := google.ConfigFromJSON(b, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("parsing client secret file: %w", err)
	}
	return cfg, nil
}

// NewService builds an authenticated Calendar client from the stored token.
// The oauth2 client refreshes an expired access token on its own.
func NewService(ctx context.Context, cfg Config) (*calendar.Service, error) {
	oauthCfg, err := OAuthConfig(cfg.CredentialsFile)
	if err != nil {
		return nil, err
	}
	tok, err := LoadToken(cfg.TokenFile)
	if err != nil {
		return nil, err
	}
	srv, err := calendar.NewService(ctx, option.WithHTTPClient(oauthCfg.Client(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("creating calendar service: %w", err)
	}
	return srv, nil
}

// Login runs the manual authorization code flow: it prints the consent URL
// to out, reads the pasted code from in and stores the resulting token.
func Login(ctx context.Context, cfg Config, in io.Reader, out io.Writer) error {
	oauthCfg, err := OAuthConfig(cfg.CredentialsFile)
	if err != nil {
		return err
	}
	return exchangeAndSave(ctx, oauthCfg, cfg.TokenFile, in, out)
}

func exchangeAndSave(ctx context.Context, oauthCfg *oauth2.Config, tokenFile string, in io.Reader, out io.Writer) error {
	authURL := oauthCfg.AuthCodeURL("adapta", oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
	fmt.Fprintf(out, "Open this URL in your browser and authorize access:\n%s\n\n", authURL)

	var code string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Authorization code").
				Value(&code),
		),
	).WithInput(in).WithOutput(out).WithShowHelp(false)
	// Piped input gets the line-based prompt.
	if f, ok := in.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		form = form.WithAccessible(true)
	}
	if err := form.RunWithContext(ctx); err != nil {
		return fmt.Errorf("reading authorization code: %w", err)
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("authorization code is empty")
	}

	tok, err := oauthCfg.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchanging authorization code: %w", err)
	}
	if err := SaveToken(tokenFile, tok); err != nil {
		return err
	}
	fmt.Fprintf(out, "Token saved to %s\n", tokenFile)
	return nil
}

// LoadToken reads a cached token. A missing file yields ErrNoToken.
func LoadToken(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoToken
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("decoding token file %s: %w", path, err)
	}
	return tok, nil
}

// SaveToken writes the token with owner-only permissions.
func SaveToken(path string, tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("opening token file: %w", err)
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(tok); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	return nil
}
