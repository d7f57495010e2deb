// Package rename 重命名计划与执行结果的领域模型
package rename

import (
	"path/filepath"
	"time"
)

// Plan 单个文件的重命名计划
type Plan struct {
	Source      string `json:"source"`      // 原始完整路径
	Destination string `json:"destination"` // 目标完整路径
	Relative    string `json:"relative"`    // 相对扫描根目录的原始路径
	NewName     string `json:"new_name"`    // 目标文件名（含扩展名）
	GroupID     string `json:"group_id,omitempty"`
	Suffixed    bool   `json:"suffixed,omitempty"` // 因冲突追加了 " (n)" 后缀
}

// SourceName 原始文件名
func (p Plan) SourceName() string {
	return filepath.Base(p.Source)
}

// Failure 单个文件重命名失败记录
type Failure struct {
	Plan  Plan   `json:"plan"`
	Error string `json:"error"`
}

// Summary 一次重命名批次的执行结果
type Summary struct {
	RunID      string        `json:"run_id,omitempty"`
	Root       string        `json:"root,omitempty"`
	Planned    int           `json:"planned"`
	Renamed    int           `json:"renamed"`
	Failed     int           `json:"failed"`
	Skipped    int           `json:"skipped"` // 因取消未执行的条目
	Failures   []Failure     `json:"failures,omitempty"`
	Canceled   bool          `json:"canceled,omitempty"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Duration   time.Duration `json:"duration"`
}

// OK 所有计划均成功执行
func (s Summary) OK() bool {
	return s.Failed == 0 && !s.Canceled
}
