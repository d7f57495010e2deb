package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/easayliu/normname/internal/domain/models/rename"
	"github.com/easayliu/normname/internal/infrastructure/ratelimit"
	"github.com/easayliu/normname/pkg/logger"
)

// Executor 顺序执行重命名计划
type Executor struct {
	limiter *ratelimit.RateLimiter
	rename  func(src, dst string) error
}

// NewExecutor 创建执行器；limiter 为 nil 时不限速
func NewExecutor(limiter *ratelimit.RateLimiter) *Executor {
	return &Executor{
		limiter: limiter,
		rename:  os.Rename,
	}
}

// Limiter 执行器使用的限速器
func (e *Executor) Limiter() *ratelimit.RateLimiter {
	return e.limiter
}

// Apply 逐个执行计划。单个文件失败会被记录，批次继续；
// ctx 取消后停止执行剩余计划，已完成的重命名保持不变。
func (e *Executor) Apply(ctx context.Context, plans []rename.Plan) rename.Summary {
	summary := rename.Summary{
		Planned:   len(plans),
		StartedAt: time.Now(),
	}

	for i, plan := range plans {
		if err := e.limiter.Wait(ctx); err != nil {
			summary.Canceled = true
			summary.Skipped = len(plans) - i
			logger.Warn("Rename batch canceled", "done", i, "remaining", summary.Skipped)
			break
		}

		if err := e.applyOne(plan); err != nil {
			summary.Failed++
			summary.Failures = append(summary.Failures, rename.Failure{Plan: plan, Error: err.Error()})
			logger.Error("Failed to rename file", "src", plan.Source, "dst", plan.Destination, "error", err)
			continue
		}

		summary.Renamed++
		logger.Debug("File renamed successfully", "src", plan.Source, "dst", plan.Destination)
	}

	summary.FinishedAt = time.Now()
	summary.Duration = summary.FinishedAt.Sub(summary.StartedAt)
	return summary
}

func (e *Executor) applyOne(plan rename.Plan) error {
	if err := os.MkdirAll(filepath.Dir(plan.Destination), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	// 计划生成后目标可能被其他程序创建，不覆盖已有文件
	if existsOnDisk(plan.Destination, plan.Source) {
		return fmt.Errorf("destination already exists: %s", plan.Destination)
	}

	return e.rename(plan.Source, plan.Destination)
}
