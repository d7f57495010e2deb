// Package logger 基于 log/slog 的全局日志门面
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

// Options 日志初始化选项
type Options struct {
	Level     string // debug | info | warn | error
	Output    string // console | file | both
	Format    string // text | json
	FilePath  string // Output 含 file 时必填
	Colorize  bool   // 仅在终端输出时生效
	AddSource bool
}

var (
	defaultLogger *slog.Logger
	levelVar      = new(slog.LevelVar)
	logFile       *os.File
	mu            sync.Mutex
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[36m"
	colorGray   = "\033[90m"
)

// Init 按选项初始化全局日志，可重复调用
func Init(opts Options) error {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

	var writers []io.Writer
	colorize := false

	output := strings.ToLower(opts.Output)
	if output == "" {
		output = "console"
	}

	if output == "console" || output == "both" {
		writers = append(writers, os.Stderr)
		colorize = opts.Colorize && isTerminal(os.Stderr)
	}

	var newFile *os.File
	if output == "file" || output == "both" {
		if opts.FilePath == "" {
			return fmt.Errorf("log file path is required for output %q", output)
		}
		if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0o755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		newFile, err = os.OpenFile(opts.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, newFile)
		// 文件中不写入颜色控制符
		colorize = false
	}

	if len(writers) == 0 {
		return fmt.Errorf("unknown log output %q", opts.Output)
	}

	levelVar.Set(level)
	handlerOpts := &slog.HandlerOptions{
		Level:     levelVar,
		AddSource: opts.AddSource,
	}
	if colorize {
		handlerOpts.ReplaceAttr = colorizeLevel
	}

	w := io.MultiWriter(writers...)
	var handler slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = newFile
	defaultLogger = slog.New(handler)
	return nil
}

// SetLevel 运行时调整日志级别
func SetLevel(level string) error {
	l, err := parseLevel(level)
	if err != nil {
		return err
	}
	levelVar.Set(l)
	return nil
}

// Close 关闭日志文件
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// Get 返回底层 slog.Logger，未初始化时使用默认配置
func Get() *slog.Logger {
	mu.Lock()
	l := defaultLogger
	mu.Unlock()
	if l != nil {
		return l
	}

	if err := Init(Options{Level: "info", Output: "console", Colorize: true}); err != nil {
		return slog.Default()
	}
	mu.Lock()
	defer mu.Unlock()
	return defaultLogger
}

// With 返回携带固定字段的子 logger
func With(args ...any) *slog.Logger {
	return Get().With(SanitizeArgs(args...)...)
}

func Debug(msg string, args ...any) {
	Get().Debug(msg, SanitizeArgs(args...)...)
}

func Info(msg string, args ...any) {
	Get().Info(msg, SanitizeArgs(args...)...)
}

func Warn(msg string, args ...any) {
	Get().Warn(msg, SanitizeArgs(args...)...)
}

func Error(msg string, args ...any) {
	Get().Error(msg, SanitizeArgs(args...)...)
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func colorizeLevel(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 || a.Key != slog.LevelKey {
		return a
	}
	level, ok := a.Value.Any().(slog.Level)
	if !ok {
		return a
	}

	color := colorBlue
	switch {
	case level >= slog.LevelError:
		color = colorRed
	case level >= slog.LevelWarn:
		color = colorYellow
	case level < slog.LevelInfo:
		color = colorGray
	}
	return slog.String(a.Key, color+level.String()+colorReset)
}
