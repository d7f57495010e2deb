package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/easayliu/normname/internal/domain/entities"
	"github.com/easayliu/normname/pkg/formatter"
	"github.com/easayliu/normname/pkg/logger"
)

func scheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "按配置中的 cron 表达式定时整理目录，直到收到中断信号",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newContainer()
			if err != nil {
				return err
			}
			defer c.Shutdown()

			scheduler := c.GetSchedulerService()
			tasks, err := scheduler.GetAllTasks()
			if err != nil {
				return err
			}
			if !hasEnabledTask(tasks) {
				return fmt.Errorf("没有启用的定时任务，请在配置文件 scheduler.tasks 中添加")
			}

			ctx := cmd.Context()
			if err := scheduler.Start(ctx); err != nil {
				return err
			}
			watchConfig(c)

			tasks, _ = scheduler.GetAllTasks()
			if err := printTasks(cmd.OutOrStdout(), tasks); err != nil {
				return err
			}

			<-ctx.Done()
			logger.Info("Received shutdown signal")
			return nil
		},
	}
	cmd.AddCommand(scheduleRunCmd())
	return cmd
}

func scheduleRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <任务名>",
		Short: "立即执行一次指定的定时任务",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newContainer()
			if err != nil {
				return err
			}
			defer c.Shutdown()

			summary, err := c.GetSchedulerService().RunTaskNow(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, failure := range summary.Failures {
				fmt.Fprintln(out, formatter.FailureLine(failure))
			}
			fmt.Fprintln(out, formatter.CompletionLine(summary))
			return nil
		},
	}
}

func hasEnabledTask(tasks []*entities.ScheduledTask) bool {
	for _, task := range tasks {
		if task.Enabled {
			return true
		}
	}
	return false
}

// printTasks 表格输出任务及其运行时间
func printTasks(out io.Writer, tasks []*entities.ScheduledTask) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "任务\tcron\t目录\t上次运行\t下次运行")
	for _, task := range tasks {
		last := "从未"
		if task.LastRunAt != nil {
			last = formatter.FormatTimeAgo(*task.LastRunAt)
		}
		next := "-"
		if task.Enabled && task.NextRunAt != nil {
			next = task.NextRunAt.Format(time.DateTime)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", task.Name, task.Cron, task.Path, last, next)
	}
	return w.Flush()
}
