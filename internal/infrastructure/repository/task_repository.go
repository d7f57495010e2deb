package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/easayliu/normname/internal/domain/entities"
)

// TaskRepository 保存定时任务及其运行统计；filePath 为空时只保存在内存
type TaskRepository struct {
	filePath string
	mu       sync.RWMutex
	tasks    map[string]*entities.ScheduledTask
}

func NewTaskRepository(filePath string) (*TaskRepository, error) {
	repo := &TaskRepository{
		filePath: filePath,
		tasks:    make(map[string]*entities.ScheduledTask),
	}
	if filePath == "" {
		return repo, nil
	}

	// 确保数据目录存在
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// 加载已存在的任务
	if err := repo.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	return repo, nil
}

// load 从文件加载任务
func (r *TaskRepository) load() error {
	data, err := os.ReadFile(r.filePath)
	if err != nil {
		return err
	}

	var tasks []*entities.ScheduledTask
	if err := json.Unmarshal(data, &tasks); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks = make(map[string]*entities.ScheduledTask)
	for _, task := range tasks {
		// 进程重启后不存在运行中的任务
		if task.Status == entities.TaskStatusRunning {
			task.Status = entities.TaskStatusIdle
		}
		r.tasks[task.ID] = task
	}

	return nil
}

// saveUnlocked 保存任务到文件（调用时必须已经持有锁）
func (r *TaskRepository) saveUnlocked() error {
	if r.filePath == "" {
		return nil
	}

	data, err := json.MarshalIndent(r.sortedUnlocked(), "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(r.filePath, data, 0o644)
}

func (r *TaskRepository) sortedUnlocked() []*entities.ScheduledTask {
	tasks := make([]*entities.ScheduledTask, 0, len(r.tasks))
	for _, task := range r.tasks {
		tasks = append(tasks, task)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Name < tasks[j].Name })
	return tasks
}

func (r *TaskRepository) findByNameUnlocked(name string) *entities.ScheduledTask {
	for _, task := range r.tasks {
		if task.Name == name {
			return task
		}
	}
	return nil
}

// Upsert 按名称写入任务定义；已存在的任务保留 ID 与运行统计
func (r *TaskRepository) Upsert(task *entities.ScheduledTask) (*entities.ScheduledTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	existing := r.findByNameUnlocked(task.Name)
	if existing == nil {
		stored := task.Clone()
		if stored.ID == "" {
			stored.ID = uuid.New().String()
		}
		if stored.Status == "" {
			stored.Status = entities.TaskStatusIdle
		}
		stored.CreatedAt = now
		stored.UpdatedAt = now
		r.tasks[stored.ID] = stored
		return stored.Clone(), r.saveUnlocked()
	}

	existing.Enabled = task.Enabled
	existing.Cron = task.Cron
	existing.Path = task.Path
	existing.Recursive = task.Recursive
	if !existing.Enabled {
		existing.Status = entities.TaskStatusStopped
		existing.NextRunAt = nil
	} else if existing.Status == entities.TaskStatusStopped {
		existing.Status = entities.TaskStatusIdle
	}
	existing.UpdatedAt = now
	return existing.Clone(), r.saveUnlocked()
}

// Retain 删除名称不在 names 中的任务
func (r *TaskRepository) Retain(names []string) error {
	keep := make(map[string]struct{}, len(names))
	for _, name := range names {
		keep[name] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for id, task := range r.tasks {
		if _, ok := keep[task.Name]; !ok {
			delete(r.tasks, id)
		}
	}
	return r.saveUnlocked()
}

// GetByID 根据ID获取任务
func (r *TaskRepository) GetByID(id string) (*entities.ScheduledTask, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, exists := r.tasks[id]
	if !exists {
		return nil, fmt.Errorf("task not found: %s", id)
	}

	return task.Clone(), nil
}

// GetByName 根据名称获取任务
func (r *TaskRepository) GetByName(name string) (*entities.ScheduledTask, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task := r.findByNameUnlocked(name)
	if task == nil {
		return nil, fmt.Errorf("task not found: %s", name)
	}
	return task.Clone(), nil
}

// GetAll 获取所有任务，按名称排序
func (r *TaskRepository) GetAll() ([]*entities.ScheduledTask, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := r.sortedUnlocked()
	for i, task := range tasks {
		tasks[i] = task.Clone()
	}
	return tasks, nil
}

// MarkRunning 标记任务开始运行
func (r *TaskRepository) MarkRunning(id string, runTime time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, exists := r.tasks[id]
	if !exists {
		return fmt.Errorf("task not found: %s", id)
	}

	task.Status = entities.TaskStatusRunning
	task.LastRunAt = &runTime
	task.RunCount++
	task.UpdatedAt = time.Now()

	return r.saveUnlocked()
}

// RecordResult 记录一次运行的结果；runErr 非空或有文件失败时计为失败
func (r *TaskRepository) RecordResult(id, runID string, renamed, failed int, runErr error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, exists := r.tasks[id]
	if !exists {
		return fmt.Errorf("task not found: %s", id)
	}

	task.LastRunID = runID
	task.RenamedCount += renamed
	switch {
	case runErr != nil:
		task.Status = entities.TaskStatusError
		task.FailureCount++
		task.LastError = runErr.Error()
	case failed > 0:
		task.Status = entities.TaskStatusError
		task.FailureCount++
		task.LastError = fmt.Sprintf("%d 个文件重命名失败", failed)
	default:
		task.Status = entities.TaskStatusSuccess
		task.SuccessCount++
		task.LastError = ""
	}
	task.UpdatedAt = time.Now()

	return r.saveUnlocked()
}

// UpdateNextRunTime 更新下次运行时间
func (r *TaskRepository) UpdateNextRunTime(id string, nextTime time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, exists := r.tasks[id]
	if !exists {
		return fmt.Errorf("task not found: %s", id)
	}

	task.NextRunAt = &nextTime
	task.UpdatedAt = time.Now()

	return r.saveUnlocked()
}

// SetStatus 更新任务状态
func (r *TaskRepository) SetStatus(id string, status entities.TaskStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, exists := r.tasks[id]
	if !exists {
		return fmt.Errorf("task not found: %s", id)
	}

	task.Status = status
	if status == entities.TaskStatusStopped {
		task.NextRunAt = nil
	}
	task.UpdatedAt = time.Now()

	return r.saveUnlocked()
}
