// Package file 编排本地目录的重命名：扫描、生成计划、执行。
package file

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/easayliu/normname/internal/domain/models/rename"
	"github.com/easayliu/normname/internal/domain/services/filename"
	"github.com/easayliu/normname/internal/infrastructure/filesystem"
	"github.com/easayliu/normname/pkg/logger"
)

// ErrInvalidRoot 扫描根目录不存在或不是目录
var ErrInvalidRoot = filesystem.ErrInvalidRoot

// Planner 扫描目录并生成重命名计划
type Planner struct {
	builder atomic.Pointer[filename.Builder]
}

// NewPlanner 创建计划生成器
func NewPlanner(builder *filename.Builder) *Planner {
	p := &Planner{}
	p.builder.Store(builder)
	return p
}

// SetBuilder 替换文件名构建器（分组表热加载时调用），进行中的扫描不受影响
func (p *Planner) SetBuilder(builder *filename.Builder) {
	p.builder.Store(builder)
}

// Builder 当前使用的文件名构建器
func (p *Planner) Builder() *filename.Builder {
	return p.builder.Load()
}

// Plan 扫描 root 下的文件（recursive 为 true 时包含所有子目录），返回按源路径排序的计划
// root 无效时返回 ErrInvalidRoot
func (p *Planner) Plan(ctx context.Context, root string, recursive bool) ([]rename.Plan, error) {
	absRoot, err := filesystem.ResolveRoot(root)
	if err != nil {
		return nil, err
	}

	files, err := listFiles(ctx, absRoot, recursive)
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	builder := p.builder.Load()
	detector := NewConflictDetector()
	plans := make([]rename.Plan, 0)

	for _, src := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		plan, ok := planFile(builder, detector, absRoot, src)
		if ok {
			plans = append(plans, plan)
		}
	}

	logger.Debug("Rename plan generated", "root", absRoot, "recursive", recursive,
		"files", len(files), "plans", len(plans))
	return plans, nil
}

func planFile(builder *filename.Builder, detector *ConflictDetector, root, src string) (rename.Plan, bool) {
	dir, name := filepath.Split(src)
	stem, ext := SplitName(name)

	result := builder.Explain(stem)
	if result.Err != nil {
		return rename.Plan{}, false
	}
	if result.NewStem == stem {
		return rename.Plan{}, false
	}

	newName := result.NewStem + ext
	if err := filesystem.ValidateName(newName); err != nil {
		logger.Warn("Skip invalid target name", "file", src, "error", err)
		return rename.Plan{}, false
	}

	dst, suffixed := detector.Resolve(filepath.Join(dir, newName), src)
	dstName := filepath.Base(dst)

	// 仅大小写不同的变化在大小写不敏感的文件系统上无意义
	if strings.EqualFold(dstName, name) {
		return rename.Plan{}, false
	}

	rel, err := filepath.Rel(root, src)
	if err != nil {
		rel = name
	}

	return rename.Plan{
		Source:      src,
		Destination: dst,
		Relative:    rel,
		NewName:     dstName,
		GroupID:     result.GroupID,
		Suffixed:    suffixed,
	}, true
}

// listFiles 列出普通文件（含指向普通文件的符号链接），跳过锁文件
func listFiles(ctx context.Context, root string, recursive bool) ([]string, error) {
	var files []string

	if !recursive {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			path := filepath.Join(root, entry.Name())
			if isRegularFile(path, entry) {
				files = append(files, path)
			}
		}
		return files, nil
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// 无法读取的子目录跳过，根目录本身出错则终止
			if path == root {
				return err
			}
			logger.Warn("Skip unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if isRegularFile(path, d) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil && !errors.Is(err, fs.SkipDir) {
		return nil, err
	}
	return files, nil
}

func isRegularFile(path string, d fs.DirEntry) bool {
	if filesystem.IsLockFile(d.Name()) {
		return false
	}
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(path)
		return err == nil && info.Mode().IsRegular()
	}
	return false
}
