package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return cfgPath
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Storage.PathToWrite != "contacts.txt" {
		t.Errorf("default path = %q, want %q", cfg.Storage.PathToWrite, "contacts.txt")
	}
	if cfg.Console.Plain {
		t.Error("default plain = true, want false")
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("default log level = %q, want %q", cfg.Log.Level, "warn")
	}
}

func TestLoad_ValidFile(t *testing.T) {
	cfgPath := writeConfig(t, `
storage:
  path_to_write: /tmp/book.txt
console:
  plain: true
log:
  level: debug
`)

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Storage.PathToWrite != "/tmp/book.txt" {
		t.Errorf("path = %q, want %q", cfg.Storage.PathToWrite, "/tmp/book.txt")
	}
	if !cfg.Console.Plain {
		t.Error("plain = false, want true")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want %q", cfg.Log.Level, "debug")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load("/nonexistent/config.yaml")
	if err != nil {
		t.Fatalf("Load() should return defaults for missing file, got error: %v", err)
	}
	want := DefaultConfig()
	if *cfg != want {
		t.Errorf("Load(missing) = %+v, want defaults %+v", *cfg, want)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	cfgPath := writeConfig(t, "{{invalid yaml")

	if _, err := Load(cfgPath); err == nil {
		t.Fatal("Load(invalid YAML) should return error")
	}
}

func TestLoad_UnknownField(t *testing.T) {
	cfgPath := writeConfig(t, `
storage:
  path_to_wrte: typo.txt
`)

	if _, err := Load(cfgPath); err == nil {
		t.Fatal("Load() should return error for unknown field 'path_to_wrte'")
	}
}

func TestLoad_PartialConfig(t *testing.T) {
	cfgPath := writeConfig(t, `
console:
  plain: true
`)

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Console.Plain {
		t.Error("plain = false, want true")
	}
	// Unset fields should retain defaults.
	if cfg.Storage.PathToWrite != "contacts.txt" {
		t.Errorf("path = %q, want default %q", cfg.Storage.PathToWrite, "contacts.txt")
	}
}

func TestLoad_CommentOnlyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, "# just a comment\n"))
	if err != nil {
		t.Fatalf("Load(comment-only) error = %v", err)
	}
	want := DefaultConfig()
	if *cfg != want {
		t.Errorf("Load(comment-only) = %+v, want defaults %+v", *cfg, want)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load(empty) error = %v", err)
	}
	want := DefaultConfig()
	if *cfg != want {
		t.Errorf("Load(empty) = %+v, want defaults %+v", *cfg, want)
	}
}

func TestLoadLayered_Priority(t *testing.T) {
	// Setup: user config sets path and level, project config overrides path.
	userCfg := writeConfig(t, `
storage:
  path_to_write: /home/user/contacts.txt
log:
  level: info
`)
	projectCfg := writeConfig(t, `
storage:
  path_to_write: ./project-contacts.txt
`)

	cfg, err := LoadLayered(userCfg, projectCfg)
	if err != nil {
		t.Fatalf("LoadLayered() error = %v", err)
	}
	// Path from project config (overrides user).
	if cfg.Storage.PathToWrite != "./project-contacts.txt" {
		t.Errorf("path = %q, want %q", cfg.Storage.PathToWrite, "./project-contacts.txt")
	}
	// Level from user config (project doesn't set it).
	if cfg.Log.Level != "info" {
		t.Errorf("log level = %q, want %q", cfg.Log.Level, "info")
	}
	// Plain retains default when neither layer sets it.
	if cfg.Console.Plain {
		t.Error("plain = true, want default false")
	}
}

func TestLoadLayered_ExplicitFalseOverrides(t *testing.T) {
	userCfg := writeConfig(t, "console:\n  plain: true\n")
	projectCfg := writeConfig(t, "console:\n  plain: false\n")

	cfg, err := LoadLayered(userCfg, projectCfg)
	if err != nil {
		t.Fatalf("LoadLayered() error = %v", err)
	}
	if cfg.Console.Plain {
		t.Error("plain = true, want false from project layer")
	}
}

func TestLoadLayered_AllMissing(t *testing.T) {
	cfg, err := LoadLayered("/no/user.yaml", "/no/project.yaml")
	if err != nil {
		t.Fatalf("LoadLayered(all missing) error = %v", err)
	}
	want := DefaultConfig()
	if *cfg != want {
		t.Errorf("got %+v, want defaults %+v", *cfg, want)
	}
}

func TestLoadLayered_InvalidLayer(t *testing.T) {
	good := writeConfig(t, "log:\n  level: info\n")
	bad := writeConfig(t, "storage: [")

	if _, err := LoadLayered(good, bad); err == nil {
		t.Fatal("LoadLayered() should fail when a layer is invalid")
	}
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name    string
		envs    map[string]string
		wantErr bool
		check   func(*testing.T, Config)
	}{
		{
			name: "CONTACTS_PATH_TO_WRITE overrides path",
			envs: map[string]string{"CONTACTS_PATH_TO_WRITE": "/data/contacts.txt"},
			check: func(t *testing.T, c Config) {
				if c.Storage.PathToWrite != "/data/contacts.txt" {
					t.Errorf("path = %q, want %q", c.Storage.PathToWrite, "/data/contacts.txt")
				}
			},
		},
		{
			name: "CONTACTS_PLAIN overrides plain",
			envs: map[string]string{"CONTACTS_PLAIN": "true"},
			check: func(t *testing.T, c Config) {
				if !c.Console.Plain {
					t.Error("plain = false, want true")
				}
			},
		},
		{
			name: "CONTACTS_LOG_LEVEL overrides level",
			envs: map[string]string{"CONTACTS_LOG_LEVEL": "error"},
			check: func(t *testing.T, c Config) {
				if c.Log.Level != "error" {
					t.Errorf("log level = %q, want %q", c.Log.Level, "error")
				}
			},
		},
		{
			name:    "invalid CONTACTS_PLAIN returns error",
			envs:    map[string]string{"CONTACTS_PLAIN": "sometimes"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envs {
				t.Setenv(k, v)
			}
			cfg := DefaultConfig()
			err := cfg.ApplyEnv()

			if tt.wantErr {
				if err == nil {
					t.Fatal("ApplyEnv() should return error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyEnv() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			modify: func(*Config) {},
		},
		{
			name:    "empty path",
			modify:  func(c *Config) { c.Storage.PathToWrite = "" },
			wantErr: true,
		},
		{
			name:    "blank path",
			modify:  func(c *Config) { c.Storage.PathToWrite = "   " },
			wantErr: true,
		},
		{
			name:    "unknown log level",
			modify:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: true,
		},
		{
			name:   "empty log level",
			modify: func(c *Config) { c.Log.Level = "" },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLog_SlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{level: "debug", want: slog.LevelDebug},
		{level: "INFO", want: slog.LevelInfo},
		{level: "warn", want: slog.LevelWarn},
		{level: "", want: slog.LevelWarn},
		{level: "error", want: slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			got, err := Log{Level: tt.level}.SlogLevel()
			if err != nil {
				t.Fatalf("SlogLevel() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("SlogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}
