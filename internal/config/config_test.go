package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"github.com/Iron-Ham/levdist/internal/segment"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	if cfg.Segmentation.Mode != "codepoint" {
		t.Errorf("Segmentation.Mode = %q, want %q", cfg.Segmentation.Mode, "codepoint")
	}
	if cfg.Pool.DefaultWorkers != 0 {
		t.Errorf("Pool.DefaultWorkers = %d, want 0", cfg.Pool.DefaultWorkers)
	}
	if cfg.Pool.MaxWorkers != 0 {
		t.Errorf("Pool.MaxWorkers = %d, want 0", cfg.Pool.MaxWorkers)
	}
	if cfg.Logging.Enabled {
		t.Error("Logging.Enabled should be false by default")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "warn")
	}
	if cfg.Logging.Dir != "" {
		t.Errorf("Logging.Dir = %q, want empty", cfg.Logging.Dir)
	}
}

func TestSegmentationConfig_ParsedMode(t *testing.T) {
	tests := []struct {
		mode string
		want segment.Mode
	}{
		{"codepoint", segment.CodePoint},
		{"grapheme", segment.Grapheme},
		{"GRAPHEME", segment.Grapheme},
		{"", segment.CodePoint},
		{"bogus", segment.CodePoint},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			cfg := SegmentationConfig{Mode: tt.mode}
			if got := cfg.ParsedMode(); got != tt.want {
				t.Errorf("ParsedMode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	t.Run("with XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")
		result := ConfigDir()
		expected := "/custom/config/levdist"
		if result != expected {
			t.Errorf("ConfigDir() = %q, want %q", result, expected)
		}
	})

	t.Run("without XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		result := ConfigDir()

		home, _ := os.UserHomeDir()
		expected := filepath.Join(home, ".config", "levdist")
		if result != expected {
			t.Errorf("ConfigDir() = %q, want %q", result, expected)
		}
	})
}

func TestConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	result := ConfigFile()
	expected := "/custom/config/levdist/config.yaml"
	if result != expected {
		t.Errorf("ConfigFile() = %q, want %q", result, expected)
	}
}

func TestLoad_GlobalDefaults(t *testing.T) {
	// Set defaults in viper first (normally done by cmd init)
	SetDefaults()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Segmentation.Mode != "codepoint" {
		t.Errorf("Load().Segmentation.Mode = %q, want %q", cfg.Segmentation.Mode, "codepoint")
	}
	if cfg.Pool.MaxWorkers != 0 {
		t.Errorf("Load().Pool.MaxWorkers = %d, want 0", cfg.Pool.MaxWorkers)
	}
}

func TestLoadFrom(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	t.Run("file values override defaults", func(t *testing.T) {
		content := "segmentation:\n  mode: grapheme\npool:\n  default_workers: 4\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		v := newTestViper(t, path)
		cfg, err := LoadFrom(v)
		if err != nil {
			t.Fatalf("LoadFrom() error = %v", err)
		}
		if cfg.Segmentation.Mode != "grapheme" {
			t.Errorf("Segmentation.Mode = %q, want grapheme", cfg.Segmentation.Mode)
		}
		if cfg.Pool.DefaultWorkers != 4 {
			t.Errorf("Pool.DefaultWorkers = %d, want 4", cfg.Pool.DefaultWorkers)
		}
		if cfg.Pool.MaxWorkers != 0 {
			t.Errorf("Pool.MaxWorkers = %d, want default 0", cfg.Pool.MaxWorkers)
		}
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		content := "segmentation:\n  mode: bytes\npool:\n  max_workers: -1\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		v := newTestViper(t, path)
		_, err := LoadFrom(v)
		if err == nil {
			t.Fatal("LoadFrom() error = nil, want validation error")
		}
		verrs, ok := err.(ValidationErrors)
		if !ok {
			t.Fatalf("LoadFrom() error type = %T, want ValidationErrors", err)
		}
		if len(verrs) != 2 {
			t.Errorf("got %d validation errors, want 2: %v", len(verrs), verrs)
		}
	})
}

func newTestViper(t *testing.T, path string) *viper.Viper {
	t.Helper()

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig() error = %v", err)
	}
	return v
}
