package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/easayliu/normname/internal/application/services/watch"
)

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "监听目录，新文件出现后自动重命名",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newContainer()
			if err != nil {
				return err
			}
			defer c.Shutdown()

			svc, err := c.NewWatchService(watch.Options{
				Root:      cfg.Rename.Dir,
				Recursive: cfg.Rename.Recursive,
				Debounce:  cfg.Watch.Debounce,
			})
			if err != nil {
				return err
			}
			return svc.Run(cmd.Context())
		},
	}
	addRenameFlags(cmd, nil)
	cmd.Flags().Duration("debounce", 2*time.Second, "最后一个文件事件之后等待多久再整理")
	return cmd
}
