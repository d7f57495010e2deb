package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/easayliu/normname/internal/application/container"
	"github.com/easayliu/normname/internal/infrastructure/config"
	"github.com/easayliu/normname/pkg/logger"
)

// annotationSkipConfig 标记无需加载配置的命令
const annotationSkipConfig = "skip-config"

// errReported 错误信息已经输出给用户，只需以非零状态退出
var errReported = errors.New("already reported")

var (
	cfgFile string
	loader  *config.Loader
	cfg     *config.Config
)

// flagBindings 命令行参数 -> 配置键；命令行显式设置时优先
var flagBindings = map[string]string{
	"log-level":     "log.level",
	"strict-groups": "rename.strict_groups",
	"dir":           "rename.dir",
	"recursive":     "rename.recursive",
	"qps":           "rename.qps",
	"port":          "server.port",
	"debounce":      "watch.debounce",
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	_ = logger.Close()

	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "错误:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &renameOptions{}

	rootCmd := &cobra.Command{
		Use:   "normname",
		Short: "批量重命名为：组别_手机型号_第N个点（N为中文数字）",
		Long: `normname 从文件名中提取手机型号与点位序号，按分组表归一化型号，
统一重命名为 "组别_型号_第N个点"（未命中分组时为 "型号_第N个点"）。
不带子命令时等同于 normname rename。`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRenameCmd(cmd, opts)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "配置文件路径（默认查找 ./configs/config.yaml 与 ./config.yaml）")
	pf.String("log-level", "", "日志级别 (debug|info|warn|error)")
	pf.Bool("strict-groups", false, "分组表存在别名冲突时报错")
	addRenameFlags(rootCmd, opts)

	rootCmd.AddCommand(renameCmd())
	rootCmd.AddCommand(explainCmd())
	rootCmd.AddCommand(groupsCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(scheduleCmd())
	rootCmd.AddCommand(watchCmd())

	return rootCmd
}

// setup 加载配置并初始化日志
func setup(cmd *cobra.Command, args []string) error {
	if cmd.Annotations[annotationSkipConfig] == "true" {
		return nil
	}

	loader = config.NewLoader(cfgFile)
	for name, key := range flagBindings {
		if flag := cmd.Flags().Lookup(name); flag != nil {
			if err := loader.BindFlag(key, flag); err != nil {
				return err
			}
		}
	}

	var err error
	cfg, err = loader.Load()
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}

	if err := logger.Init(logger.Options{
		Level:    cfg.Log.Level,
		Output:   cfg.Log.Output,
		Format:   cfg.Log.Format,
		FilePath: cfg.Log.File,
		Colorize: cfg.Log.Colorize,
	}); err != nil {
		return fmt.Errorf("初始化日志失败: %w", err)
	}

	if used := loader.ConfigFileUsed(); used != "" {
		logger.Debug("Configuration loaded", "file", used)
	}
	return nil
}

// newContainer 按当前配置创建服务容器
func newContainer() (*container.ServiceContainer, error) {
	c, err := container.NewServiceContainer(cfg)
	if err != nil {
		return nil, fmt.Errorf("初始化服务失败: %w", err)
	}
	return c, nil
}

// watchConfig serve/schedule 等常驻命令在配置文件变化时热加载
func watchConfig(c *container.ServiceContainer) {
	loader.Watch(func(next *config.Config) {
		if err := c.Reload(next); err != nil {
			logger.Error("Failed to apply reloaded configuration", "error", err)
			return
		}
		if err := logger.SetLevel(next.Log.Level); err != nil {
			logger.Warn("Invalid log level in reloaded configuration", "level", next.Log.Level, "error", err)
		}
	}, func(err error) {
		logger.Error("Configuration reload rejected, keeping previous configuration", "error", err)
	})
}
