package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, `
logLevel: debug
storage: file
dataDir: ./data
catalogLoadDelay: 500ms
replyDelay: 2s
authDelay: 1s
jwtSecret: demo-secret
sessionTTL: 24h
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage != StorageFile || cfg.DataDir != "./data" {
		t.Fatalf("unexpected storage config: %+v", cfg)
	}
	if cfg.CatalogLoadDelayDuration() != 500*time.Millisecond {
		t.Fatalf("unexpected load delay: %v", cfg.CatalogLoadDelayDuration())
	}
	if cfg.ReplyDelayDuration() != 2*time.Second {
		t.Fatalf("unexpected reply delay: %v", cfg.ReplyDelayDuration())
	}
	if cfg.SessionTTLDuration() != 24*time.Hour {
		t.Fatalf("unexpected ttl: %v", cfg.SessionTTLDuration())
	}
}

func TestLoadRejectsUnknownStorage(t *testing.T) {
	path := writeConfig(t, `
storage: tape
jwtSecret: x
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unknown storage backend")
	}
}

func TestLoadRequiresBackendAddress(t *testing.T) {
	cases := map[string]string{
		"file":     "storage: file\njwtSecret: x\n",
		"redis":    "storage: redis\njwtSecret: x\n",
		"postgres": "storage: postgres\njwtSecret: x\n",
	}
	for name, content := range cases {
		if _, err := Load(writeConfig(t, content)); err == nil {
			t.Fatalf("%s: expected missing-address error", name)
		}
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	path := writeConfig(t, "storage: memory\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected missing jwtSecret error")
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := writeConfig(t, `
storage: memory
jwtSecret: x
replyDelay: soon
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected invalid duration error")
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
storage: memory
jwtSecret: from-file
`)
	t.Setenv("BOOKCHAT_STORAGE", "redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("BOOKCHAT_JWT_SECRET", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage != StorageRedis || cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if cfg.JWTSecret != "from-env" {
		t.Fatalf("jwt secret override not applied: %q", cfg.JWTSecret)
	}
}
