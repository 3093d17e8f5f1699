package remoteauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"daily-diet/internal/platform/httpclient"
	"daily-diet/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("remote auth not configured")
	ErrTokenEmpty    = errors.New("token is empty")
	ErrUnauthorized  = errors.New("remote auth rejected token")
	ErrUpstream      = errors.New("remote auth upstream error")
)

// Config del servicio de identidad que valida los tokens.
type Config struct {
	// URL completa del endpoint de verificación (POST {"token": ...}).
	VerifyURL string
	APIKey    string

	// Si está vacío, se usa "X-Api-Key".
	APIKeyHeader string

	Timeout   time.Duration
	Transport http.RoundTripper
}

// Verifier implementa auth.AuthVerifier delegando en un servicio de identidad.
type Verifier struct {
	url          string
	apiKey       string
	apiKeyHeader string
	client       *httpclient.Client
}

func NewVerifier(cfg Config) *Verifier {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	return &Verifier{
		url:          strings.TrimSpace(cfg.VerifyURL),
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
		client:       httpclient.New(cfg.Timeout, cfg.Transport),
	}
}

type verifyResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.url == "" {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	headers := map[string]string{"Authorization": "Bearer " + token}
	if v.apiKey != "" {
		headers[v.apiKeyHeader] = v.apiKey
	}

	var out verifyResponse
	err := v.client.PostJSON(ctx, v.url, headers, map[string]string{"token": token}, &out)
	if err != nil {
		var se *httpclient.StatusError
		if errors.As(err, &se) && (se.StatusCode == http.StatusUnauthorized || se.StatusCode == http.StatusForbidden) {
			return auth.Claims{}, ErrUnauthorized
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	userID := strings.TrimSpace(out.UserID)
	if userID == "" {
		return auth.Claims{}, fmt.Errorf("%w: response missing user_id", ErrUpstream)
	}

	return auth.Claims{
		UserID: userID,
		Email:  strings.TrimSpace(out.Email),
	}, nil
}
