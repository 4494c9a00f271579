package app

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAndUseToken(t *testing.T) {
	path := writeConfig(t, `
telegram:
  run_mode: longpoll
bot_tokens:
  diller: "123:abc"
database:
  host: localhost
allowed_chat_ids: "-100200, -100300"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Tokens.Diller != "123:abc" {
		t.Errorf("diller token = %q", cfg.Tokens.Diller)
	}

	// No token selected yet, so validation must fail.
	if err := cfg.UseToken(""); err == nil {
		t.Error("expected error without token")
	}
	if err := cfg.UseToken(cfg.Tokens.Diller); err != nil {
		t.Fatal(err)
	}
	if cfg.Telegram.Token != "123:abc" {
		t.Errorf("selected token = %q", cfg.Telegram.Token)
	}
}

func TestAllowedChatIDs(t *testing.T) {
	cfg := &Config{AllowedChats: " -100200 , -100300 ,"}
	ids, err := cfg.AllowedChatIDs()
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 || ids[0] != -100200 || ids[1] != -100300 {
		t.Errorf("ids = %v", ids)
	}

	cfg = &Config{}
	if ids, err := cfg.AllowedChatIDs(); err != nil || ids != nil {
		t.Errorf("empty list: ids=%v err=%v", ids, err)
	}

	cfg = &Config{AllowedChats: "abc"}
	if _, err := cfg.AllowedChatIDs(); err == nil {
		t.Error("expected error for junk id")
	}
}
