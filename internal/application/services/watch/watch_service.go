package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/easayliu/normname/internal/application/contracts"
	"github.com/easayliu/normname/internal/infrastructure/filesystem"
	"github.com/easayliu/normname/pkg/logger"
	pathutil "github.com/easayliu/normname/pkg/utils/path"
)

// Trigger 监听批次的触发来源
const Trigger = "watch"

// DefaultDebounce 默认的事件合并窗口
const DefaultDebounce = 2 * time.Second

// Options 监听选项
type Options struct {
	Root      string
	Recursive bool
	Debounce  time.Duration // 最后一个事件之后等待多久再整理，<=0 使用 DefaultDebounce
}

// WatchService 监听目录中新出现的文件，合并事件后对受影响目录执行整理
type WatchService struct {
	watcher   *fsnotify.Watcher
	runner    contracts.RenameRunner
	root      string
	recursive bool
	debounce  time.Duration

	mu      sync.Mutex
	pending map[string]bool // 目录 -> 是否递归整理
	watched map[string]struct{}
}

// NewWatchService 创建监听服务；根目录不存在时返回 filesystem.ErrInvalidRoot
func NewWatchService(runner contracts.RenameRunner, opts Options) (*WatchService, error) {
	root, err := filesystem.ResolveRoot(opts.Root)
	if err != nil {
		return nil, err
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("创建文件监控器失败: %w", err)
	}

	return &WatchService{
		watcher:   watcher,
		runner:    runner,
		root:      root,
		recursive: opts.Recursive,
		debounce:  debounce,
		pending:   make(map[string]bool),
		watched:   make(map[string]struct{}),
	}, nil
}

// Root 监听的根目录（绝对路径）
func (s *WatchService) Root() string {
	return s.root
}

// Watched 当前已注册监听的目录，按路径排序
func (s *WatchService) Watched() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	dirs := make([]string, 0, len(s.watched))
	for dir := range s.watched {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}

// Run 先整理一次已有文件，然后持续监听直到 ctx 取消
func (s *WatchService) Run(ctx context.Context) error {
	defer s.watcher.Close()

	if err := s.addTree(s.root); err != nil {
		return err
	}
	logger.Info("Watching directory", "root", s.root, "recursive", s.recursive, "debounce", s.debounce)

	s.mark(s.root, s.recursive)
	s.flush(ctx)

	timer := time.NewTimer(s.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			logger.Info("Watcher stopped", "root", s.root)
			return nil
		case event, ok := <-s.watcher.Events:
			if !ok {
				return nil
			}
			if s.handleEvent(event) {
				// 每个新事件都重新开始计时，文件复制完成后才整理
				timer.Reset(s.debounce)
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("文件监控错误", "error", err)
		case <-timer.C:
			s.flush(ctx)
		}
	}
}

// handleEvent 处理文件系统事件，返回是否产生了待整理目录
func (s *WatchService) handleEvent(event fsnotify.Event) bool {
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		s.forget(event.Name)
		return false
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}
	if filesystem.IsLockFile(filepath.Base(event.Name)) {
		return false
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		// 文件已被移走
		return false
	}

	if info.IsDir() {
		if !s.recursive || !event.Has(fsnotify.Create) || pathutil.ShouldSkipDirectory(filepath.Base(event.Name)) {
			return false
		}
		if err := s.addTree(event.Name); err != nil {
			logger.Warn("添加监控目录失败", "path", event.Name, "error", err)
			return false
		}
		// 整个目录移入时其中已有文件不会产生事件
		s.mark(event.Name, true)
		return true
	}

	if !info.Mode().IsRegular() {
		return false
	}
	s.mark(filepath.Dir(event.Name), false)
	return true
}

// mark 记录待整理目录；同一目录同时需要递归与非递归时取递归
func (s *WatchService) mark(dir string, recursive bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[dir] = s.pending[dir] || recursive
}

// flush 依次整理所有待整理目录
func (s *WatchService) flush(ctx context.Context) {
	s.mu.Lock()
	pending := s.pending
	s.pending = make(map[string]bool)
	s.mu.Unlock()

	dirs := make([]string, 0, len(pending))
	for dir := range pending {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	for _, dir := range dirs {
		if ctx.Err() != nil {
			return
		}
		summary, err := s.runner.Run(ctx, Trigger, dir, pending[dir])
		if err != nil {
			logger.Warn("Watch run failed", "dir", dir, "error", err)
			continue
		}
		if summary.Planned > 0 {
			logger.Info("Watch run finished", "dir", dir, "renamed", summary.Renamed, "failed", summary.Failed)
		}
	}
}

// addTree 注册目录监听；递归模式下包含除隐藏与系统目录外的所有子目录
func (s *WatchService) addTree(dir string) error {
	if !s.recursive {
		return s.addDir(dir)
	}

	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && pathutil.ShouldSkipDirectory(d.Name()) {
			return filepath.SkipDir
		}
		if err := s.addDir(path); err != nil {
			logger.Warn("添加监控目录失败", "path", path, "error", err)
		}
		return nil
	})
}

func (s *WatchService) addDir(dir string) error {
	s.mu.Lock()
	_, exists := s.watched[dir]
	s.mu.Unlock()
	if exists {
		return nil
	}

	if err := s.watcher.Add(dir); err != nil {
		return err
	}

	s.mu.Lock()
	s.watched[dir] = struct{}{}
	s.mu.Unlock()
	logger.Debug("添加监控目录", "path", dir)
	return nil
}

// forget 移除已删除或移走的目录及其子目录的监听记录
func (s *WatchService) forget(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefix := path + string(filepath.Separator)
	for dir := range s.watched {
		if dir == path || strings.HasPrefix(dir, prefix) {
			delete(s.watched, dir)
			_ = s.watcher.Remove(dir)
		}
	}
}
