package contracts

import (
	"context"

	"github.com/easayliu/normname/internal/domain/models/rename"
)

// RenameRunner 无人值守的重命名入口，定时任务与目录监听共用
type RenameRunner interface {
	Run(ctx context.Context, trigger, root string, recursive bool) (rename.Summary, error)
}
