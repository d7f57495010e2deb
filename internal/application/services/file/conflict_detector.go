package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConflictDetector 为重命名目标分配不冲突的路径
// 目标已存在于磁盘（且不是源文件本身）或已被本批次更早的计划占用时，
// 在扩展名前追加 " (n)"，n 从 2 开始递增。
// 每个批次使用一个新的检测器，非并发安全。
type ConflictDetector struct {
	claimed map[string]bool
	exists  func(target, source string) bool
}

// NewConflictDetector 创建冲突检测器
func NewConflictDetector() *ConflictDetector {
	return &ConflictDetector{
		claimed: make(map[string]bool),
		exists:  existsOnDisk,
	}
}

// Resolve 返回 target 或其带序号的变体，并将结果登记为已占用
func (d *ConflictDetector) Resolve(target, source string) (string, bool) {
	if !d.taken(target, source) {
		d.claimed[target] = true
		return target, false
	}

	dir := filepath.Dir(target)
	stem, ext := SplitName(filepath.Base(target))
	for i := 2; ; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, i, ext))
		if !d.taken(candidate, source) {
			d.claimed[candidate] = true
			return candidate, true
		}
	}
}

func (d *ConflictDetector) taken(path, source string) bool {
	return d.claimed[path] || d.exists(path, source)
}

// existsOnDisk 目标存在且不是源文件本身（大小写不敏感的文件系统上二者可能是同一文件）
func existsOnDisk(target, source string) bool {
	ti, err := os.Lstat(target)
	if err != nil {
		return false
	}
	si, err := os.Lstat(source)
	if err != nil {
		return true
	}
	return !os.SameFile(ti, si)
}

// SplitName 拆分文件名为主名与扩展名
// 以点开头且无其他点的文件（如 ".profile"）及以点结尾的文件视为没有扩展名
func SplitName(name string) (stem, ext string) {
	ext = filepath.Ext(name)
	if ext == name || ext == "." {
		return name, ""
	}
	return strings.TrimSuffix(name, ext), ext
}
