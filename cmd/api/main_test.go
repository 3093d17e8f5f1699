package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"daily-diet/internal/adapters/auth/jwtauth"
	"daily-diet/internal/adapters/auth/remoteauth"
	"daily-diet/internal/adapters/storage/sqlite"
	"daily-diet/internal/config"
	"daily-diet/internal/platform/logger"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// loadConfig escribe en el entorno; t.Setenv lo restaura al terminar.
	for _, k := range []string{"STORAGE", "DB_DSN", "SQLITE_PATH", "PORT", "JWT_SECRET"} {
		t.Setenv(k, "")
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version error: %v", err)
	}
	if strings.TrimSpace(out) != version {
		t.Fatalf("expected %q, got %q", version, out)
	}
}

func TestMigrateCommand_Memory(t *testing.T) {
	out, err := execute(t, "migrate", "--storage", "memory")
	if err != nil {
		t.Fatalf("migrate error: %v", err)
	}
	if !strings.Contains(out, "nothing to migrate") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestMigrateCommand_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meals.db")

	out, err := execute(t, "migrate", "--storage", "sqlite", "--sqlite-path", path)
	if err != nil {
		t.Fatalf("migrate error: %v (out=%s)", err, out)
	}

	db, err := sqlite.Open(t.Context(), path)
	if err != nil {
		t.Fatalf("open migrated db: %v", err)
	}
	defer db.Close()

	v, err := sqlite.SchemaVersionOf(t.Context(), db)
	if err != nil {
		t.Fatalf("SchemaVersionOf error: %v", err)
	}
	if v != sqlite.SchemaVersion {
		t.Fatalf("expected schema version %d, got %d", sqlite.SchemaVersion, v)
	}
}

func TestTokenCommand_RequiresSecret(t *testing.T) {
	if _, err := execute(t, "token", "user-1"); err == nil {
		t.Fatalf("expected error without JWT_SECRET")
	}
}

func TestNewVerifier_Selection(t *testing.T) {
	log := logger.Nop()

	if v := newVerifier(config.Config{}, log); v != nil {
		t.Fatalf("expected nil verifier in dev mode, got %T", v)
	}
	if _, ok := newVerifier(config.Config{JWTSecret: "s"}, log).(*jwtauth.Verifier); !ok {
		t.Fatalf("expected jwt verifier")
	}
	v := newVerifier(config.Config{JWTSecret: "s", AuthVerifyURL: "http://identity/verify"}, log)
	if _, ok := v.(*remoteauth.Verifier); !ok {
		t.Fatalf("expected remote verifier to take precedence, got %T", v)
	}
}
