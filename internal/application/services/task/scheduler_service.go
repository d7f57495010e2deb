package task

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/easayliu/normname/internal/application/contracts"
	"github.com/easayliu/normname/internal/domain/entities"
	"github.com/easayliu/normname/internal/domain/models/rename"
	"github.com/easayliu/normname/internal/infrastructure/config"
	"github.com/easayliu/normname/internal/infrastructure/repository"
	"github.com/easayliu/normname/pkg/logger"
)

// TriggerPrefix 定时任务批次的触发来源前缀
const TriggerPrefix = "schedule:"

type SchedulerService struct {
	cron     *cron.Cron
	taskRepo *repository.TaskRepository
	runner   contracts.RenameRunner
	jobs     map[string]cron.EntryID
	mu       sync.RWMutex
	running  bool
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewSchedulerService(taskRepo *repository.TaskRepository, runner contracts.RenameRunner) *SchedulerService {
	l := cronLogger{}
	return &SchedulerService{
		// 使用标准5字段格式（分 时 日 月 周），同一任务上一次未结束时跳过本次
		cron:     cron.New(cron.WithLogger(l), cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l))),
		taskRepo: taskRepo,
		runner:   runner,
		jobs:     make(map[string]cron.EntryID),
		ctx:      context.Background(),
		cancel:   func() {},
	}
}

// LoadTasks 用配置中的任务定义同步任务仓库；调度器运行中时立即重新调度
func (s *SchedulerService) LoadTasks(defs []config.ScheduledTask) error {
	names := make([]string, 0, len(defs))
	seen := make(map[string]struct{}, len(defs))
	for _, def := range defs {
		if _, dup := seen[def.Name]; dup {
			return fmt.Errorf("duplicate task name: %s", def.Name)
		}
		seen[def.Name] = struct{}{}

		// 验证cron表达式
		if def.Enabled {
			if _, err := cron.ParseStandard(def.Cron); err != nil {
				return fmt.Errorf("task %s: invalid cron expression: %w", def.Name, err)
			}
		}
		names = append(names, def.Name)
	}

	for _, def := range defs {
		if _, err := s.taskRepo.Upsert(&entities.ScheduledTask{
			Name:      def.Name,
			Enabled:   def.Enabled,
			Cron:      def.Cron,
			Path:      def.Path,
			Recursive: def.Recursive,
		}); err != nil {
			return fmt.Errorf("failed to save task %s: %w", def.Name, err)
		}
	}
	if err := s.taskRepo.Retain(names); err != nil {
		return fmt.Errorf("failed to prune tasks: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return s.rescheduleUnlocked()
	}
	return nil
}

// Start 启动调度器；ctx 取消时正在执行的批次在文件之间中止
func (s *SchedulerService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	s.ctx, s.cancel = context.WithCancel(ctx)
	if err := s.rescheduleUnlocked(); err != nil {
		s.cancel()
		return err
	}

	s.cron.Start()
	s.running = true
	logger.Info("Scheduler service started", "jobs", len(s.jobs))

	return nil
}

// Stop 停止调度器，取消并等待正在执行的任务
func (s *SchedulerService) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	stopped := s.cron.Stop()
	s.cancel()
	for id, entryID := range s.jobs {
		s.cron.Remove(entryID)
		delete(s.jobs, id)
		if err := s.taskRepo.SetStatus(id, entities.TaskStatusStopped); err != nil {
			logger.Warn("Failed to update task status", "task_id", id, "error", err)
		}
	}
	s.mu.Unlock()

	// 任务执行中会读取调度表，必须在释放锁之后等待
	<-stopped.Done()
	logger.Info("Scheduler service stopped")
}

// IsRunning 调度器是否在运行
func (s *SchedulerService) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// GetTask 根据ID或名称获取任务
func (s *SchedulerService) GetTask(idOrName string) (*entities.ScheduledTask, error) {
	if task, err := s.taskRepo.GetByID(idOrName); err == nil {
		return task, nil
	}
	return s.taskRepo.GetByName(idOrName)
}

// GetAllTasks 获取所有任务
func (s *SchedulerService) GetAllTasks() ([]*entities.ScheduledTask, error) {
	return s.taskRepo.GetAll()
}

// RunTaskNow 立即同步执行任务，不影响其调度
func (s *SchedulerService) RunTaskNow(ctx context.Context, idOrName string) (rename.Summary, error) {
	task, err := s.GetTask(idOrName)
	if err != nil {
		return rename.Summary{}, fmt.Errorf("failed to get task: %w", err)
	}
	return s.runTask(ctx, task)
}

// rescheduleUnlocked 按仓库内容重建调度表（调用时必须已经持有锁）
func (s *SchedulerService) rescheduleUnlocked() error {
	for id, entryID := range s.jobs {
		s.cron.Remove(entryID)
		delete(s.jobs, id)
	}

	tasks, err := s.taskRepo.GetAll()
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}

	for _, task := range tasks {
		if !task.Enabled {
			continue
		}
		if err := s.scheduleTask(task); err != nil {
			logger.Error("Failed to schedule task", "task", task.Name, "error", err)
		}
	}
	return nil
}

// scheduleTask 调度单个任务（内部方法，需要加锁）
func (s *SchedulerService) scheduleTask(task *entities.ScheduledTask) error {
	taskID := task.ID
	entryID, err := s.cron.AddFunc(task.Cron, func() {
		s.executeTask(taskID)
	})
	if err != nil {
		return err
	}

	s.jobs[taskID] = entryID
	if task.Status == entities.TaskStatusStopped {
		if err := s.taskRepo.SetStatus(taskID, entities.TaskStatusIdle); err != nil {
			return err
		}
	}

	// 调度器尚未启动时 Entry.Next 为零值，用解析结果计算下次运行时间
	if schedule, err := cron.ParseStandard(task.Cron); err == nil {
		return s.taskRepo.UpdateNextRunTime(taskID, schedule.Next(time.Now()))
	}
	return nil
}

// executeTask 由 cron 调用
func (s *SchedulerService) executeTask(taskID string) {
	task, err := s.taskRepo.GetByID(taskID)
	if err != nil {
		logger.Warn("Scheduled task disappeared", "task_id", taskID, "error", err)
		return
	}

	s.mu.RLock()
	ctx := s.ctx
	s.mu.RUnlock()

	if _, err := s.runTask(ctx, task); err != nil {
		logger.Error("Scheduled task failed", "task", task.Name, "error", err)
	}

	// 更新下次运行时间
	s.mu.RLock()
	if entryID, exists := s.jobs[taskID]; exists {
		if entry := s.cron.Entry(entryID); entry.ID != 0 && !entry.Next.IsZero() {
			_ = s.taskRepo.UpdateNextRunTime(taskID, entry.Next)
		}
	}
	s.mu.RUnlock()
}

// runTask 执行一次整理并记录运行统计
func (s *SchedulerService) runTask(ctx context.Context, task *entities.ScheduledTask) (rename.Summary, error) {
	logger.Info("Executing scheduled task", "task", task.Name, "path", task.Path, "recursive", task.Recursive)

	if err := s.taskRepo.MarkRunning(task.ID, time.Now()); err != nil {
		return rename.Summary{}, err
	}

	summary, err := s.runner.Run(ctx, TriggerPrefix+task.Name, task.Path, task.Recursive)
	if recErr := s.taskRepo.RecordResult(task.ID, summary.RunID, summary.Renamed, summary.Failed, err); recErr != nil {
		logger.Warn("Failed to record task result", "task", task.Name, "error", recErr)
	}
	return summary, err
}

// cronLogger 将 cron 内部日志转到 pkg/logger
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
