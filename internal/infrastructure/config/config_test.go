package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

// chdirForTest 切换工作目录并在测试结束时恢复（等价于 Go 1.24 的 t.Chdir）
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Errorf("restore working directory: %v", err)
		}
	})
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	// 切到空目录，避免读到仓库中的配置文件
	chdirForTest(t, t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Log.Level != "info" || cfg.Log.Output != "console" {
		t.Errorf("log defaults = %+v", cfg.Log)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("server.port = %q", cfg.Server.Port)
	}
	if cfg.Rename.QPS != 0 || cfg.Rename.Recursive {
		t.Errorf("rename defaults = %+v", cfg.Rename)
	}
	if cfg.Watch.Debounce != 2*time.Second {
		t.Errorf("watch.debounce = %v", cfg.Watch.Debounce)
	}
	if len(cfg.Groups) != 0 {
		t.Errorf("groups = %v, want empty", cfg.Groups)
	}
	if got := len(cfg.GroupTable()); got != 26 {
		t.Errorf("len(GroupTable()) = %d, want default 26", got)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
rename:
  recursive: true
  qps: 2.5
server:
  port: "9090"
  token: secret-token
groups:
  - id: "9-1"
    aliases: ["Pixel 9", "pixel9"]
  - id: "9-2"
    aliases: ["Galaxy S25"]
scheduler:
  enabled: true
  tasks:
    - name: nightly
      enabled: true
      cron: "0 2 * * *"
      path: /data/photos
      recursive: true
watch:
  debounce: 500ms
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q", cfg.Log.Level)
	}
	if !cfg.Rename.Recursive || cfg.Rename.QPS != 2.5 {
		t.Errorf("rename = %+v", cfg.Rename)
	}
	if cfg.Server.Port != "9090" || cfg.Server.Token != "secret-token" {
		t.Errorf("server = %+v", cfg.Server)
	}
	if len(cfg.Groups) != 2 || cfg.Groups[0].ID != "9-1" || cfg.Groups[0].Aliases[0] != "Pixel 9" {
		t.Errorf("groups = %+v", cfg.Groups)
	}
	if len(cfg.Scheduler.Tasks) != 1 || cfg.Scheduler.Tasks[0].Cron != "0 2 * * *" || !cfg.Scheduler.Tasks[0].Recursive {
		t.Errorf("scheduler.tasks = %+v", cfg.Scheduler.Tasks)
	}
	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("watch.debounce = %v", cfg.Watch.Debounce)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, "rename:\n  qps: 1\n")
	t.Setenv("NORMNAME_RENAME_QPS", "4")
	t.Setenv("NORMNAME_SERVER_PORT", "7000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Rename.QPS != 4 {
		t.Errorf("rename.qps = %v, want 4", cfg.Rename.QPS)
	}
	if cfg.Server.Port != "7000" {
		t.Errorf("server.port = %q, want 7000", cfg.Server.Port)
	}
}

func TestLoader_BindFlag(t *testing.T) {
	path := writeConfig(t, "log:\n  level: warn\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "info", "")
	if err := flags.Parse([]string{"--log-level", "debug"}); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(path)
	if err := loader.BindFlag("log.level", flags.Lookup("log-level")); err != nil {
		t.Fatalf("BindFlag() error = %v", err)
	}
	if err := loader.BindFlag("missing", flags.Lookup("missing")); err == nil {
		t.Error("BindFlag(nil flag) error = nil")
	}

	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want flag value debug", cfg.Log.Level)
	}
	if loader.Current() != cfg {
		t.Error("Current() does not return the last loaded config")
	}
	if loader.ConfigFileUsed() != path {
		t.Errorf("ConfigFileUsed() = %q", loader.ConfigFileUsed())
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "组别格式错误", content: "groups:\n  - id: abc\n    aliases: [x]\n"},
		{name: "负的QPS", content: "rename:\n  qps: -1\n"},
		{name: "启用telegram但无token", content: "telegram:\n  enabled: true\n  chat_ids: [1]\n"},
		{name: "启用任务但无cron", content: "scheduler:\n  tasks:\n    - name: a\n      enabled: true\n      path: /tmp\n"},
		{name: "YAML语法错误", content: "log: [unclosed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("Load() error = nil, want error")
			}
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() of a missing explicit file should fail")
	}
}

func TestWriteFile_LoadsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs", "config.yaml")

	cfg := Default()
	cfg.Scheduler.Tasks = []ScheduledTask{{Name: "daily", Enabled: true, Cron: "@daily", Path: "/srv/shots"}}
	if err := WriteFile(path, cfg, false); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := WriteFile(path, cfg, false); err == nil {
		t.Error("WriteFile() without overwrite should refuse an existing file")
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(loaded.Groups) != len(cfg.Groups) {
		t.Errorf("groups = %d, want %d", len(loaded.Groups), len(cfg.Groups))
	}
	if loaded.Groups[0].ID != "1-1" || loaded.Groups[0].Aliases[0] != "小米15" {
		t.Errorf("first group = %+v", loaded.Groups[0])
	}
	if len(loaded.Scheduler.Tasks) != 1 || loaded.Scheduler.Tasks[0].Cron != "@daily" {
		t.Errorf("tasks = %+v", loaded.Scheduler.Tasks)
	}
	if loaded.Watch.Debounce != cfg.Watch.Debounce {
		t.Errorf("debounce = %v, want %v", loaded.Watch.Debounce, cfg.Watch.Debounce)
	}
}

func TestLoader_Watch(t *testing.T) {
	path := writeConfig(t, "rename:\n  qps: 1\n")

	loader := NewLoader(path)
	if _, err := loader.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	changed := make(chan *Config, 4)
	loader.Watch(func(c *Config) { changed <- c }, nil)

	if err := os.WriteFile(path, []byte("rename:\n  qps: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case c := <-changed:
			if c.Rename.QPS == 3 {
				return
			}
		case <-deadline:
			t.Fatal("config change was not observed")
		}
	}
}
