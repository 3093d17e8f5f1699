package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"daily-diet/internal/ports/auth"
)

type fakeVerifier struct {
	want string
}

func (f fakeVerifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if token != f.want {
		return auth.Claims{}, errors.New("bad token")
	}
	return auth.Claims{UserID: "user-from-token"}, nil
}

func runAuth(t *testing.T, v auth.AuthVerifier, headers map[string]string) (auth.Claims, bool) {
	t.Helper()

	var (
		got auth.Claims
		ok  bool
	)
	h := AuthContext(v)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = GetClaims(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, val := range headers {
		req.Header.Set(k, val)
	}
	h.ServeHTTP(httptest.NewRecorder(), req)
	return got, ok
}

func TestAuthContext_DevHeader(t *testing.T) {
	c, ok := runAuth(t, nil, map[string]string{DebugUserHeader: " dev-user "})
	if !ok || c.UserID != "dev-user" {
		t.Fatalf("expected dev-user claims, got %+v ok=%v", c, ok)
	}

	if _, ok := runAuth(t, nil, nil); ok {
		t.Fatalf("expected no claims without header")
	}
}

func TestAuthContext_Bearer(t *testing.T) {
	v := fakeVerifier{want: "good"}

	cases := []struct {
		name    string
		headers map[string]string
		wantOK  bool
	}{
		{"valid token", map[string]string{"Authorization": "Bearer good"}, true},
		{"lowercase scheme", map[string]string{"Authorization": "bearer good"}, true},
		{"invalid token", map[string]string{"Authorization": "Bearer bad"}, false},
		{"wrong scheme", map[string]string{"Authorization": "Basic good"}, false},
		{"missing header", nil, false},
		{"debug header ignored", map[string]string{DebugUserHeader: "dev-user"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, ok := runAuth(t, v, tc.headers)
			if ok != tc.wantOK {
				t.Fatalf("expected ok=%v, got %v (%+v)", tc.wantOK, ok, c)
			}
			if ok && c.UserID != "user-from-token" {
				t.Fatalf("unexpected claims %+v", c)
			}
		})
	}
}
