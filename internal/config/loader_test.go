package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const baseYAML = `
http:
  listen_addr: ":8080"
  cors_allowed_origins: ["https://admin.example.com"]
  shutdown_timeout: 5s
database:
  dsn: "cms@tcp(127.0.0.1:3306)/cms"
  password: "vault:secret/cms#db_password"
  max_open: 10
  max_idle: 5
auth:
  jwt_secret: "0123456789abcdef0123"
content:
  per_page: 25
log:
  level: debug
`

type mapSecrets map[string]string

func (m mapSecrets) Resolve(_ context.Context, ref string, _ time.Duration) (string, error) {
	v, ok := m[ref]
	if !ok {
		return "", errors.New("no such secret")
	}
	return v, nil
}

func writeRoot(t *testing.T, yaml string) string {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "conf"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "conf", "global.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestLoadFromResolvesSecretsAndOverlay(t *testing.T) {
	root := writeRoot(t, baseYAML)
	t.Setenv("ADEPT_HTTP__LISTEN_ADDR", ":9090")
	t.Setenv("ADEPT_CONTENT__PER_PAGE", "50")

	cfg, err := LoadFrom(context.Background(), root, mapSecrets{"vault:secret/cms#db_password": "s3cret"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.ListenAddr != ":9090" {
		t.Fatalf("listen_addr = %q", cfg.HTTP.ListenAddr)
	}
	if cfg.Content.PerPage != 50 {
		t.Fatalf("per_page = %d", cfg.Content.PerPage)
	}
	if cfg.Database.Password != "s3cret" {
		t.Fatalf("password = %q", cfg.Database.Password)
	}
	if cfg.HTTP.ShutdownTimeout != 5*time.Second {
		t.Fatalf("shutdown_timeout = %v", cfg.HTTP.ShutdownTimeout)
	}
	if len(cfg.HTTP.CORSAllowedOrigins) != 1 || cfg.HTTP.CORSAllowedOrigins[0] != "https://admin.example.com" {
		t.Fatalf("cors = %v", cfg.HTTP.CORSAllowedOrigins)
	}
	if cfg.Paths.Root != root {
		t.Fatalf("root = %q", cfg.Paths.Root)
	}
}

func TestLoadFromSecretFailure(t *testing.T) {
	root := writeRoot(t, baseYAML)
	if _, err := LoadFrom(context.Background(), root, mapSecrets{}); err == nil {
		t.Fatal("expected secret lookup error")
	}
}

func TestLoadFromValidation(t *testing.T) {
	cases := map[string]string{
		"short secret": `
http: {listen_addr: ":8080"}
database: {dsn: "x"}
auth: {jwt_secret: "short"}
`,
		"missing dsn": `
http: {listen_addr: ":8080"}
auth: {jwt_secret: "0123456789abcdef0123"}
`,
		"bad level": `
http: {listen_addr: ":8080"}
database: {dsn: "x"}
auth: {jwt_secret: "0123456789abcdef0123"}
log: {level: loud}
`,
		"mail without from": `
http: {listen_addr: ":8080"}
database: {dsn: "x"}
auth: {jwt_secret: "0123456789abcdef0123"}
mail: {host: smtp.example.com, port: 587}
`,
		"idle above open": `
http: {listen_addr: ":8080"}
database: {dsn: "x", max_open: 2, max_idle: 4}
auth: {jwt_secret: "0123456789abcdef0123"}
`,
	}
	for name, yaml := range cases {
		root := writeRoot(t, yaml)
		if _, err := LoadFrom(context.Background(), root, mapSecrets{}); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestEnvKey(t *testing.T) {
	if got := envKey("ADEPT_MAIL__CONTACT_TO"); got != "mail.contact_to" {
		t.Fatalf("envKey = %q", got)
	}
}
