package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage.Driver != "file" || cfg.Storage.Dir != "data" {
		t.Errorf("storage defaults: %+v", cfg.Storage)
	}
	if cfg.Schedule.DailyCron == "" || cfg.Schedule.WeeklyCron == "" {
		t.Error("expected default cron expressions")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
env: prod
storage:
  driver: sqlite
  sqlite_path: /tmp/ledger.db
telegram:
  bot_token: from-file
  chat_id: "12345"
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TELEGRAM_BOT_TOKEN", "from-env")
	t.Setenv("METRICS_PORT", "9200")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Env != "prod" || cfg.Storage.Driver != "sqlite" || cfg.Storage.SQLitePath != "/tmp/ledger.db" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Telegram.BotToken != "from-env" {
		t.Errorf("env override not applied, token = %q", cfg.Telegram.BotToken)
	}
	if cfg.Metrics.Port != "9200" {
		t.Errorf("metrics port = %q", cfg.Metrics.Port)
	}
	if err := cfg.ValidateServe(); err != nil {
		t.Errorf("serve config should validate: %v", err)
	}
	id, _ := cfg.ChatID()
	if id != 12345 {
		t.Errorf("ChatID = %d", id)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("storage: [unclosed"), 0o644)
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	cfg, _ := Load(filepath.Join(t.TempDir(), "absent.yaml"))

	cfg.Storage.Driver = "redis"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown driver")
	}

	cfg.Storage.Driver = "memory"
	if err := cfg.ValidateServe(); err == nil {
		t.Error("expected error without telegram token")
	}
	cfg.Telegram.BotToken = "token"
	cfg.Telegram.ChatID = "not-a-number"
	if err := cfg.ValidateServe(); err == nil {
		t.Error("expected error for non-numeric chat id")
	}
}
