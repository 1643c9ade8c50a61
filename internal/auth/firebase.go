package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/starlinemember/portfolio-website/config"
)

// ErrInvalidCredentials covers every credential failure from the provider.
// Callers must not leak which part of the credential was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// FirebaseProvider implements Provider against Firebase Auth: password
// sign-in goes through the Identity Toolkit REST endpoint (the Admin SDK
// has no password grant), revocation through the Admin SDK.
type FirebaseProvider struct {
	client     *fbauth.Client
	webAPIKey  string
	httpClient *http.Client
}

// NewFirebaseProvider initializes the Firebase Admin SDK and returns a
// provider bound to it.
func NewFirebaseProvider(cfg config.FirebaseConfig) (*FirebaseProvider, error) {
	if cfg.CredentialsPath == "" {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required")
	}
	if cfg.WebAPIKey == "" {
		return nil, fmt.Errorf("FIREBASE_WEB_API_KEY is required")
	}

	opt := option.WithCredentialsFile(cfg.CredentialsPath)
	app, err := firebase.NewApp(context.Background(), nil, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	authClient, err := app.Auth(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get Auth client: %w", err)
	}

	return &FirebaseProvider{
		client:    authClient,
		webAPIKey: cfg.WebAPIKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

const signInEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	LocalID string `json:"localId"`
	Email   string `json:"email"`
	IDToken string `json:"idToken"`
}

func (p *FirebaseProvider) SignInWithPassword(ctx context.Context, email, password string) (*ProviderUser, error) {
	body, err := json.Marshal(signInRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal sign-in request: %w", err)
	}

	reqURL := signInEndpoint + "?key=" + p.webAPIKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		// Wrong email, wrong password, disabled user: all the same to us.
		return nil, ErrInvalidCredentials
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("auth provider returned status %d", resp.StatusCode)
	}

	var out signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode sign-in response: %w", err)
	}
	if out.LocalID == "" {
		return nil, ErrInvalidCredentials
	}

	return &ProviderUser{UID: out.LocalID, Email: out.Email}, nil
}

func (p *FirebaseProvider) RevokeSessions(ctx context.Context, uid string) error {
	if err := p.client.RevokeRefreshTokens(ctx, uid); err != nil {
		return fmt.Errorf("revoke provider sessions: %w", err)
	}
	return nil
}
