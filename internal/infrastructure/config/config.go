package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/easayliu/normname/internal/domain/services/group"
	"github.com/easayliu/normname/internal/infrastructure/filesystem"
)

// EnvPrefix 环境变量前缀，如 NORMNAME_RENAME_QPS 覆盖 rename.qps
const EnvPrefix = "NORMNAME"

type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Rename    RenameConfig    `mapstructure:"rename"`
	Groups    group.Table     `mapstructure:"groups"` // 为空时使用内置分组表
	Server    ServerConfig    `mapstructure:"server"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Watch     WatchConfig     `mapstructure:"watch"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Output   string `mapstructure:"output"` // console | file | both
	Format   string `mapstructure:"format"` // text | json
	File     string `mapstructure:"file"`
	Colorize bool   `mapstructure:"colorize"`
}

type RenameConfig struct {
	Dir          string  `mapstructure:"dir"`
	Recursive    bool    `mapstructure:"recursive"`
	QPS          float64 `mapstructure:"qps"`           // 每秒重命名次数上限，0 表示不限制
	StrictGroups bool    `mapstructure:"strict_groups"` // 别名冲突视为配置错误
	FoldWidth    bool    `mapstructure:"fold_width"`    // 匹配组别前把全角型号折叠为半角
}

type ServerConfig struct {
	Port  string `mapstructure:"port"`
	Mode  string `mapstructure:"mode"`
	Token string `mapstructure:"token"` // 非空时 API 需要 Bearer 认证
}

type TelegramConfig struct {
	Enabled  bool    `mapstructure:"enabled"`
	BotToken string  `mapstructure:"bot_token"`
	ChatIDs  []int64 `mapstructure:"chat_ids"`
}

type SchedulerConfig struct {
	Enabled   bool            `mapstructure:"enabled"`
	StateFile string          `mapstructure:"state_file"` // 任务运行统计持久化文件，为空时只保存在内存
	Tasks     []ScheduledTask `mapstructure:"tasks"`
}

type ScheduledTask struct {
	Name      string `mapstructure:"name" yaml:"name"`           // 任务名称
	Enabled   bool   `mapstructure:"enabled" yaml:"enabled"`     // 是否启用
	Cron      string `mapstructure:"cron" yaml:"cron"`           // cron表达式，如 "0 2 * * *" 每天凌晨2点
	Path      string `mapstructure:"path" yaml:"path"`           // 要整理的目录
	Recursive bool   `mapstructure:"recursive" yaml:"recursive"` // 是否递归子目录
}

type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"` // 文件事件合并窗口
}

// GroupTable 返回生效的分组表
func (c *Config) GroupTable() group.Table {
	if len(c.Groups) == 0 {
		return group.DefaultTable()
	}
	return c.Groups
}

// Validate 校验配置
func (c *Config) Validate() error {
	if len(c.Groups) > 0 {
		if err := c.Groups.Validate(); err != nil {
			return fmt.Errorf("groups: %w", err)
		}
	}
	if c.Rename.QPS < 0 {
		return fmt.Errorf("rename.qps must not be negative")
	}
	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if len(c.Telegram.ChatIDs) == 0 {
			return fmt.Errorf("telegram.chat_ids is required when telegram is enabled")
		}
	}
	for i, t := range c.Scheduler.Tasks {
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("scheduler.tasks[%d]: name is required", i)
		}
		if t.Enabled && (strings.TrimSpace(t.Cron) == "" || strings.TrimSpace(t.Path) == "") {
			return fmt.Errorf("scheduler.tasks[%d] %q: cron and path are required", i, t.Name)
		}
	}
	return nil
}

// Loader 持有 viper 实例，负责读取、环境变量覆盖、命令行参数绑定与热加载
type Loader struct {
	v    *viper.Viper
	mu   sync.Mutex
	last *Config
}

// NewLoader 创建配置加载器；configPath 为空时在 ./configs 与当前目录查找 config.yaml
func NewLoader(configPath string) *Loader {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		if expanded, err := filesystem.ExpandPath(configPath); err == nil {
			configPath = expanded
		}
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

// BindFlag 将命令行参数绑定到配置键，命令行显式设置时优先于文件与环境变量
func (l *Loader) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("flag for %q not found", key)
	}
	return l.v.BindPFlag(key, flag)
}

// Load 读取并解析配置，找不到配置文件时使用默认值
func (l *Loader) Load() (*Config, error) {
	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	cfg, err := l.decode()
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.last = cfg
	l.mu.Unlock()
	return cfg, nil
}

// ConfigFileUsed 实际读取的配置文件路径，未使用文件时为空
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// Watch 监听配置文件变化，解析成功后回调；解析失败时保留上一次配置并回调 onError
func (l *Loader) Watch(onChange func(*Config), onError func(error)) {
	if l.v.ConfigFileUsed() == "" {
		return
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := l.decode()
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		l.mu.Lock()
		l.last = cfg
		l.mu.Unlock()
		onChange(cfg)
	})
	l.v.WatchConfig()
}

// Current 最近一次成功加载的配置
func (l *Loader) Current() *Config {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.last
}

func (l *Loader) decode() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := resolvePaths(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load 从指定路径加载配置（路径为空时按默认位置查找）
func Load(configPath string) (*Config, error) {
	return NewLoader(configPath).Load()
}

// Default 仅由默认值构成的配置，分组表展开为内置表
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	// 默认值均为基础类型，不会解析失败
	_ = v.Unmarshal(&cfg)
	cfg.Groups = group.DefaultTable()
	return &cfg
}

// setDefaults 设置默认值
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.output", "console")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "./logs/normname.log")
	v.SetDefault("log.colorize", true)

	v.SetDefault("rename.dir", ".")
	v.SetDefault("rename.recursive", false)
	v.SetDefault("rename.qps", 0)
	v.SetDefault("rename.strict_groups", false)
	v.SetDefault("rename.fold_width", false)

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.token", "")

	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.bot_token", "")

	v.SetDefault("scheduler.enabled", false)
	v.SetDefault("scheduler.state_file", "")
	v.SetDefault("scheduler.tasks", []ScheduledTask{})

	v.SetDefault("watch.debounce", "2s")
}

// resolvePaths 展开路径中的 "~"
func resolvePaths(cfg *Config) error {
	var err error
	if cfg.Log.File != "" {
		if cfg.Log.File, err = filesystem.ExpandPath(cfg.Log.File); err != nil {
			return fmt.Errorf("log.file: %w", err)
		}
	}
	if cfg.Rename.Dir != "" {
		if cfg.Rename.Dir, err = filesystem.ExpandPath(cfg.Rename.Dir); err != nil {
			return fmt.Errorf("rename.dir: %w", err)
		}
	}
	if cfg.Scheduler.StateFile != "" {
		if cfg.Scheduler.StateFile, err = filesystem.ExpandPath(cfg.Scheduler.StateFile); err != nil {
			return fmt.Errorf("scheduler.state_file: %w", err)
		}
	}
	for i := range cfg.Scheduler.Tasks {
		if cfg.Scheduler.Tasks[i].Path == "" {
			continue
		}
		if cfg.Scheduler.Tasks[i].Path, err = filesystem.ExpandPath(cfg.Scheduler.Tasks[i].Path); err != nil {
			return fmt.Errorf("scheduler.tasks[%d].path: %w", i, err)
		}
	}
	return nil
}
