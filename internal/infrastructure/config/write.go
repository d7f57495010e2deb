package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// WriteFile 将配置写成 YAML 文件；overwrite 为 false 时拒绝覆盖已有文件
func WriteFile(path string, cfg *Config, overwrite bool) error {
	if cfg == nil {
		return fmt.Errorf("cfg 不能为空")
	}
	if path == "" {
		return fmt.Errorf("path 不能为空")
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("配置文件已存在: %s", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建配置目录失败: %w", err)
	}

	tasks := cfg.Scheduler.Tasks
	if tasks == nil {
		tasks = []ScheduledTask{}
	}
	chatIDs := cfg.Telegram.ChatIDs
	if chatIDs == nil {
		chatIDs = []int64{}
	}

	payload := map[string]any{
		"log": map[string]any{
			"level":    cfg.Log.Level,
			"output":   cfg.Log.Output,
			"format":   cfg.Log.Format,
			"file":     cfg.Log.File,
			"colorize": cfg.Log.Colorize,
		},
		"rename": map[string]any{
			"dir":           cfg.Rename.Dir,
			"recursive":     cfg.Rename.Recursive,
			"qps":           cfg.Rename.QPS,
			"strict_groups": cfg.Rename.StrictGroups,
			"fold_width":    cfg.Rename.FoldWidth,
		},
		"server": map[string]any{
			"port":  cfg.Server.Port,
			"mode":  cfg.Server.Mode,
			"token": cfg.Server.Token,
		},
		"telegram": map[string]any{
			"enabled":   cfg.Telegram.Enabled,
			"bot_token": cfg.Telegram.BotToken,
			"chat_ids":  chatIDs,
		},
		"scheduler": map[string]any{
			"enabled":    cfg.Scheduler.Enabled,
			"state_file": cfg.Scheduler.StateFile,
			"tasks":      tasks,
		},
		"watch": map[string]any{
			"debounce": cfg.Watch.Debounce.String(),
		},
		"groups": cfg.GroupTable(),
	}

	b, err := yaml.Marshal(payload)
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}
	return nil
}
