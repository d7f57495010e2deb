package filesystem

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"

	"github.com/mitchellh/go-homedir"
)

// ErrInvalidRoot 扫描根目录不存在或不是目录
var ErrInvalidRoot = errors.New("invalid root directory")

// PathValidationError 路径验证错误
type PathValidationError struct {
	Path   string
	Reason string
	Err    error
}

func (e *PathValidationError) Error() string {
	return fmt.Sprintf("路径验证失败: %s - %s", e.Path, e.Reason)
}

func (e *PathValidationError) Unwrap() error {
	return e.Err
}

// ExpandPath 展开 "~" 并清理路径
func ExpandPath(path string) (string, error) {
	expanded, err := homedir.Expand(filepath.Clean(path))
	if err != nil {
		return "", err
	}
	return expanded, nil
}

// ResolveRoot 将用户给出的目录解析为绝对路径，并确认其存在且为目录
// 空字符串表示当前工作目录
func ResolveRoot(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = "."
	}

	expanded, err := ExpandPath(path)
	if err != nil {
		return "", &PathValidationError{Path: path, Reason: err.Error(), Err: ErrInvalidRoot}
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", &PathValidationError{Path: path, Reason: err.Error(), Err: ErrInvalidRoot}
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", &PathValidationError{Path: abs, Reason: "目录不存在", Err: ErrInvalidRoot}
	}
	if !info.IsDir() {
		return "", &PathValidationError{Path: abs, Reason: "不是目录", Err: ErrInvalidRoot}
	}

	return abs, nil
}

var reservedNames = buildReservedNamesMap()

// buildReservedNamesMap 构建Windows保留名称映射表
func buildReservedNamesMap() map[string]bool {
	reserved := []string{
		"CON", "PRN", "AUX", "NUL",
		"COM1", "COM2", "COM3", "COM4", "COM5",
		"COM6", "COM7", "COM8", "COM9",
		"LPT1", "LPT2", "LPT3", "LPT4", "LPT5",
		"LPT6", "LPT7", "LPT8", "LPT9",
	}

	reservedMap := make(map[string]bool, len(reserved))
	for _, name := range reserved {
		reservedMap[name] = true
	}
	return reservedMap
}

// ValidateName 检查目标文件名能否安全落盘：
// 不含控制字符或零宽字符，Windows 下不得使用保留名称
func ValidateName(name string) error {
	if name == "" {
		return &PathValidationError{Path: name, Reason: "文件名为空"}
	}

	for _, r := range name {
		if unicode.Is(unicode.Cc, r) {
			return &PathValidationError{
				Path:   name,
				Reason: fmt.Sprintf("文件名包含控制字符: U+%04X", r),
			}
		}
		if isZeroWidthChar(r) {
			return &PathValidationError{
				Path:   name,
				Reason: fmt.Sprintf("文件名包含零宽字符: U+%04X", r),
			}
		}
	}

	if runtime.GOOS == "windows" {
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if reservedNames[strings.ToUpper(stem)] {
			return &PathValidationError{
				Path:   name,
				Reason: fmt.Sprintf("包含Windows保留名称: %s", strings.ToUpper(stem)),
			}
		}
	}

	return nil
}

// isZeroWidthChar 检查是否为零宽字符
func isZeroWidthChar(r rune) bool {
	switch r {
	case '\u200B', '\u200C', '\u200D', '\u200E', '\u200F', '\uFEFF':
		return true
	}
	return false
}
