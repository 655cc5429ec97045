package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `{"hostUrl":"ws://localhost:7777/bridge"}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != DefaultListenAddr {
		t.Errorf("ListenAddr = %s", cfg.ListenAddr)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %s", cfg.LogLevel)
	}
	if cfg.EventBufferSize != DefaultEventBufferSize {
		t.Errorf("EventBufferSize = %d", cfg.EventBufferSize)
	}
	if cfg.PushDedupSize != DefaultPushDedupSize {
		t.Errorf("PushDedupSize = %d", cfg.PushDedupSize)
	}
}

func TestLoad_RequiresHostURL(t *testing.T) {
	path := writeConfig(t, `{}`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted config without hostUrl")
	}
}

func TestLoad_RejectsNonWebSocketURL(t *testing.T) {
	path := writeConfig(t, `{"hostUrl":"http://localhost:7777"}`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted http hostUrl")
	}
}

func TestLoad_RejectsBadLogLevel(t *testing.T) {
	path := writeConfig(t, `{"hostUrl":"ws://h:1/b","logLevel":"verbose"}`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted bad log level")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("Load accepted missing file")
	}
}
