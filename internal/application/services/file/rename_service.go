package file

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/easayliu/normname/internal/application/contracts"
	"github.com/easayliu/normname/internal/domain/models/rename"
	"github.com/easayliu/normname/internal/infrastructure/filesystem"
	"github.com/easayliu/normname/pkg/logger"
)

// Preview 一次预览的结果
type Preview struct {
	RunID     string        `json:"run_id"`
	Root      string        `json:"root"`
	Recursive bool          `json:"recursive"`
	Plans     []rename.Plan `json:"plans"`
}

// RenameService 组合扫描、执行、目录锁与通知，供 CLI、HTTP、定时任务与监听共用
type RenameService struct {
	planner  *Planner
	executor *Executor
	notifier contracts.Notifier
}

// NewRenameService 创建重命名服务；notifier 可为 nil
func NewRenameService(planner *Planner, executor *Executor, notifier contracts.Notifier) *RenameService {
	return &RenameService{
		planner:  planner,
		executor: executor,
		notifier: notifier,
	}
}

// Preview 仅生成计划，不修改文件
func (s *RenameService) Preview(ctx context.Context, root string, recursive bool) (*Preview, error) {
	absRoot, err := filesystem.ResolveRoot(root)
	if err != nil {
		return nil, err
	}

	plans, err := s.planner.Plan(ctx, absRoot, recursive)
	if err != nil {
		return nil, err
	}

	return &Preview{
		RunID:     uuid.New().String(),
		Root:      absRoot,
		Recursive: recursive,
		Plans:     plans,
	}, nil
}

// Apply 在目录锁内执行已确认的预览；执行期间不重新扫描
func (s *RenameService) Apply(ctx context.Context, preview *Preview) (rename.Summary, error) {
	lock, err := filesystem.LockRoot(preview.Root)
	if err != nil {
		return rename.Summary{}, fmt.Errorf("lock %s: %w", preview.Root, err)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("Failed to release root lock", "root", preview.Root, "error", err)
		}
	}()

	summary := s.executor.Apply(ctx, preview.Plans)
	summary.RunID = preview.RunID
	summary.Root = preview.Root

	logger.Info("Rename batch finished",
		"run_id", summary.RunID,
		"root", summary.Root,
		"planned", summary.Planned,
		"renamed", summary.Renamed,
		"failed", summary.Failed,
		"canceled", summary.Canceled)
	return summary, nil
}

// Run 无人值守执行：加锁后扫描并执行，完成后发送通知
// 加锁后再扫描，避免与其他批次的结果交错
func (s *RenameService) Run(ctx context.Context, trigger, root string, recursive bool) (rename.Summary, error) {
	absRoot, err := filesystem.ResolveRoot(root)
	if err != nil {
		return rename.Summary{}, err
	}

	lock, err := filesystem.LockRoot(absRoot)
	if err != nil {
		return rename.Summary{}, fmt.Errorf("lock %s: %w", absRoot, err)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("Failed to release root lock", "root", absRoot, "error", err)
		}
	}()

	runID := uuid.New().String()
	started := time.Now()

	plans, err := s.planner.Plan(ctx, absRoot, recursive)
	if err != nil {
		return rename.Summary{}, err
	}

	summary := s.executor.Apply(ctx, plans)
	summary.RunID = runID
	summary.Root = absRoot
	summary.StartedAt = started
	summary.Duration = summary.FinishedAt.Sub(started)

	logger.Info("Rename run finished",
		"trigger", trigger,
		"run_id", runID,
		"root", absRoot,
		"planned", summary.Planned,
		"renamed", summary.Renamed,
		"failed", summary.Failed)

	if s.notifier != nil {
		// 通知失败不影响批次结果
		if err := s.notifier.NotifyRun(context.WithoutCancel(ctx), trigger, summary); err != nil {
			logger.Warn("Failed to send run notification", "run_id", runID, "error", err)
		}
	}

	return summary, nil
}
