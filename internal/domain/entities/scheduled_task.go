package entities

import (
	"time"
)

// TaskStatus 任务状态枚举
type TaskStatus string

const (
	TaskStatusIdle    TaskStatus = "idle"    // 空闲状态
	TaskStatusRunning TaskStatus = "running" // 运行中
	TaskStatusSuccess TaskStatus = "success" // 最后一次执行成功
	TaskStatusError   TaskStatus = "error"   // 最后一次执行失败
	TaskStatusStopped TaskStatus = "stopped" // 已停止
)

// ScheduledTask 定时整理任务实体
type ScheduledTask struct {
	ID           string     `json:"id"`            // 任务ID
	Name         string     `json:"name"`          // 任务名称，配置内唯一
	Enabled      bool       `json:"enabled"`       // 是否启用
	Status       TaskStatus `json:"status"`        // 任务状态
	Cron         string     `json:"cron"`          // cron表达式
	Path         string     `json:"path"`          // 要整理的目录
	Recursive    bool       `json:"recursive"`     // 是否递归子目录
	RunCount     int        `json:"run_count"`     // 运行次数
	SuccessCount int        `json:"success_count"` // 成功次数
	FailureCount int        `json:"failure_count"` // 失败次数
	RenamedCount int        `json:"renamed_count"` // 累计重命名文件数
	LastRunID    string     `json:"last_run_id"`   // 最后一次批次ID
	LastError    string     `json:"last_error"`    // 最后一次失败原因
	CreatedAt    time.Time  `json:"created_at"`    // 创建时间
	UpdatedAt    time.Time  `json:"updated_at"`    // 更新时间
	LastRunAt    *time.Time `json:"last_run_at"`   // 最后运行时间
	NextRunAt    *time.Time `json:"next_run_at"`   // 下次运行时间
}

// Clone 返回副本，避免调用方修改仓库内的状态
func (t *ScheduledTask) Clone() *ScheduledTask {
	c := *t
	if t.LastRunAt != nil {
		v := *t.LastRunAt
		c.LastRunAt = &v
	}
	if t.NextRunAt != nil {
		v := *t.NextRunAt
		c.NextRunAt = &v
	}
	return &c
}
