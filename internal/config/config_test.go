package config_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/ghettovoice/urlobject"
	"github.com/ghettovoice/urlobject/internal/config"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		data    string
		want    *config.Config
		wantErr error
	}{
		{
			"empty",
			"",
			&config.Config{Log: config.LogConfig{Level: "info"}},
			nil,
		},
		{
			"full",
			"[log]\nlevel = \"debug\"\ndev = true\n\n[ports]\ngemini = 1965\n",
			&config.Config{
				Log:   config.LogConfig{Level: "debug", Dev: true},
				Ports: map[string]int64{"gemini": 1965},
			},
			nil,
		},
		{"syntax error", "[log\n", nil, config.ErrInvalidConfig},
		{"unknown key", "[log]\ncolor = true\n", nil, config.ErrInvalidConfig},
		{"port out of range", "[ports]\ngemini = 70000\n", nil, config.ErrInvalidConfig},
		{"negative port", "[ports]\ngemini = -1\n", nil, config.ErrInvalidConfig},
		{"bad scheme", "[ports]\n\"1x\" = 1\n", nil, config.ErrInvalidConfig},
		{"bad level", "[log]\nlevel = \"loud\"\n", nil, config.ErrInvalidConfig},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			fs := afero.NewMemMapFs()
			if err := afero.WriteFile(fs, "/etc/urlobject.toml", []byte(c.data), 0o644); err != nil {
				t.Fatalf("afero.WriteFile() error = %v, want nil", err)
			}

			got, err := config.Load(fs, "/etc/urlobject.toml")
			if !errors.Is(err, c.wantErr) {
				t.Fatalf("config.Load() error = %v, want %v", err, c.wantErr)
			}
			if diff := cmp.Diff(got, c.want); diff != "" {
				t.Errorf("config.Load() mismatch\ndiff (-got +want):\n%v", diff)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := config.Load(afero.NewMemMapFs(), "/missing.toml")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("config.Load() error = %v, want %v", err, os.ErrNotExist)
	}
}

func TestConfig_RegisterPorts(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Ports: map[string]int64{"Gemini": 1965, "http": 8080}}
	ports := urlobject.NewPorts(map[string]uint16{"http": 80, "https": 443})
	cfg.RegisterPorts(ports)

	u := urlobject.New("gemini://example.com/")
	if got, ok, err := u.DefaultPortFrom(ports); got != 1965 || !ok || err != nil {
		t.Errorf("u.DefaultPortFrom(ports) = (%d, %v, %v), want (1965, true, nil)", got, ok, err)
	}
	if got, _ := ports.Get("http"); got != 8080 {
		t.Errorf("ports.Get(\"http\") = %d, want 8080", got)
	}
	if got, _ := ports.Get("https"); got != 443 {
		t.Errorf("ports.Get(\"https\") = %d, want 443", got)
	}
}

func TestConfig_LogLevel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		level string
		want  slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"bogus", slog.LevelInfo},
	}
	for _, c := range cases {
		t.Run(c.level, func(t *testing.T) {
			t.Parallel()

			cfg := &config.Config{Log: config.LogConfig{Level: c.level}}
			if got := cfg.LogLevel(); got != c.want {
				t.Errorf("cfg.LogLevel() = %v, want %v", got, c.want)
			}
		})
	}
}
