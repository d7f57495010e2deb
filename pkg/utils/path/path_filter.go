package pathutil

import (
	"strings"
)

// CommonSkipDirs NAS 与操作系统自动生成的目录，监听时不进入
var CommonSkipDirs = map[string]bool{
	// 群晖缩略图与回收站
	"@eadir":    true,
	"#recycle":  true,
	"#snapshot": true,
	"@tmp":      true,

	// Windows
	"$recycle.bin":              true,
	"system volume information": true,

	// macOS
	".spotlight-v100": true,
	".fseventsd":      true,
	".trashes":        true,
	".temporaryitems": true,
}

// ShouldSkipDirectory 判断是否应该跳过该目录：隐藏目录与系统目录，忽略大小写
func ShouldSkipDirectory(dirName string) bool {
	if dirName == "" {
		return true
	}
	if strings.HasPrefix(dirName, ".") && dirName != "." && dirName != ".." {
		return true
	}
	return CommonSkipDirs[strings.ToLower(dirName)]
}

// FilterSkipDirs 从目录列表中过滤掉应该跳过的目录
func FilterSkipDirs(dirs []string) []string {
	if len(dirs) == 0 {
		return dirs
	}

	filtered := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		if !ShouldSkipDirectory(dir) {
			filtered = append(filtered, dir)
		}
	}
	return filtered
}
