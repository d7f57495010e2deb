package container

import (
	"fmt"
	"sync"

	"github.com/easayliu/normname/internal/application/contracts"
	"github.com/easayliu/normname/internal/application/services/file"
	"github.com/easayliu/normname/internal/application/services/notification"
	"github.com/easayliu/normname/internal/application/services/task"
	"github.com/easayliu/normname/internal/application/services/watch"
	"github.com/easayliu/normname/internal/domain/services/filename"
	"github.com/easayliu/normname/internal/domain/services/group"
	"github.com/easayliu/normname/internal/infrastructure/config"
	"github.com/easayliu/normname/internal/infrastructure/ratelimit"
	"github.com/easayliu/normname/internal/infrastructure/repository"
	"github.com/easayliu/normname/internal/infrastructure/telegram"
	"github.com/easayliu/normname/pkg/logger"
)

// ServiceContainer 服务容器 - 实现依赖注入
type ServiceContainer struct {
	mu     sync.RWMutex
	config *config.Config

	limiter          *ratelimit.RateLimiter
	planner          *file.Planner
	executor         *file.Executor
	notifier         contracts.Notifier
	renameService    *file.RenameService
	taskRepo         *repository.TaskRepository
	schedulerService *task.SchedulerService
}

// NewServiceContainer 创建服务容器并初始化所有服务
func NewServiceContainer(cfg *config.Config) (*ServiceContainer, error) {
	logger.Info("Initializing service container")

	builder, err := NewBuilder(cfg)
	if err != nil {
		return nil, err
	}

	notifier, err := newNotifier(cfg)
	if err != nil {
		return nil, err
	}

	taskRepo, err := repository.NewTaskRepository(cfg.Scheduler.StateFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize task repository: %w", err)
	}

	c := &ServiceContainer{
		config:   cfg,
		limiter:  ratelimit.NewRateLimiter(cfg.Rename.QPS),
		planner:  file.NewPlanner(builder),
		notifier: notifier,
		taskRepo: taskRepo,
	}
	c.executor = file.NewExecutor(c.limiter)
	c.renameService = file.NewRenameService(c.planner, c.executor, c.notifier)
	c.schedulerService = task.NewSchedulerService(c.taskRepo, c.renameService)

	if err := c.schedulerService.LoadTasks(cfg.Scheduler.Tasks); err != nil {
		return nil, err
	}

	logger.Info("Service container initialized successfully",
		"groups", len(builder.Index().Table()),
		"qps", cfg.Rename.QPS,
		"telegram", cfg.Telegram.Enabled)
	return c, nil
}

// NewBuilder 按配置构建分组索引与文件名构建器；strict_groups 时别名冲突视为错误
func NewBuilder(cfg *config.Config) (*filename.Builder, error) {
	table := cfg.GroupTable()

	var opts []group.Option
	if cfg.Rename.FoldWidth {
		opts = append(opts, group.WithWidthFolding())
	}

	var (
		idx *group.Index
		err error
	)
	if cfg.Rename.StrictGroups {
		idx, err = group.NewIndexStrict(table, opts...)
	} else {
		idx, err = group.NewIndex(table, opts...)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build group index: %w", err)
	}

	for _, c := range idx.Collisions() {
		logger.Warn("Alias collision, later group wins", "collision", c.String())
	}
	return filename.NewBuilder(idx), nil
}

// newNotifier 启用 Telegram 时返回 Telegram 通知，否则返回空实现
func newNotifier(cfg *config.Config) (contracts.Notifier, error) {
	if !cfg.Telegram.Enabled {
		return notification.NoopNotifier{}, nil
	}
	client, err := telegram.NewClient(&cfg.Telegram)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telegram client: %w", err)
	}
	return notification.NewTelegramNotifier(client, true), nil
}

// GetConfig 当前生效的配置
func (c *ServiceContainer) GetConfig() *config.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

// GetBuilder 当前生效的文件名构建器
func (c *ServiceContainer) GetBuilder() *filename.Builder {
	return c.planner.Builder()
}

// GetIndex 当前生效的分组索引
func (c *ServiceContainer) GetIndex() *group.Index {
	return c.planner.Builder().Index()
}

// GetRenameService 获取重命名服务
func (c *ServiceContainer) GetRenameService() *file.RenameService {
	return c.renameService
}

// GetSchedulerService 获取定时任务服务
func (c *ServiceContainer) GetSchedulerService() *task.SchedulerService {
	return c.schedulerService
}

// NewWatchService 创建目录监听服务；debounce 未指定时使用配置值
func (c *ServiceContainer) NewWatchService(opts watch.Options) (*watch.WatchService, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = c.GetConfig().Watch.Debounce
	}
	return watch.NewWatchService(c.renameService, opts)
}

// Reload 应用新配置：分组表、限速与定时任务即时生效，日志与通知设置需重启
func (c *ServiceContainer) Reload(cfg *config.Config) error {
	builder, err := NewBuilder(cfg)
	if err != nil {
		return err
	}
	if err := c.schedulerService.LoadTasks(cfg.Scheduler.Tasks); err != nil {
		return err
	}

	c.planner.SetBuilder(builder)
	c.limiter.SetQPS(cfg.Rename.QPS)

	c.mu.Lock()
	old := c.config
	c.config = cfg
	c.mu.Unlock()

	if old != nil && old.Telegram.Enabled != cfg.Telegram.Enabled {
		logger.Warn("Telegram settings changed, restart to apply")
	}
	logger.Info("Configuration reloaded", "groups", len(builder.Index().Table()), "qps", cfg.Rename.QPS)
	return nil
}

// Shutdown 关闭服务容器
func (c *ServiceContainer) Shutdown() {
	logger.Info("Shutting down service container")

	if c.schedulerService != nil {
		c.schedulerService.Stop()
	}

	logger.Info("Service container shutdown completed")
}

// GetServiceHealth 获取服务健康状态
func (c *ServiceContainer) GetServiceHealth() map[string]interface{} {
	return map[string]interface{}{
		"container": "healthy",
		"services": map[string]interface{}{
			"rename_service":    c.getServiceStatus(c.renameService != nil),
			"scheduler_service": c.getSchedulerStatus(),
			"notifier":          c.getNotifierStatus(),
		},
		"groups":     len(c.GetIndex().Table()),
		"collisions": len(c.GetIndex().Collisions()),
	}
}

// getServiceStatus 获取服务状态
func (c *ServiceContainer) getServiceStatus(initialized bool) string {
	if initialized {
		return "healthy"
	}
	return "unhealthy"
}

func (c *ServiceContainer) getSchedulerStatus() string {
	if c.schedulerService.IsRunning() {
		return "running"
	}
	return "stopped"
}

func (c *ServiceContainer) getNotifierStatus() string {
	if _, ok := c.notifier.(notification.NoopNotifier); ok {
		return "disabled"
	}
	return "telegram"
}
