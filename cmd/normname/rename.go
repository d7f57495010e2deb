package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/easayliu/normname/internal/application/services/file"
	"github.com/easayliu/normname/internal/infrastructure/filesystem"
	"github.com/easayliu/normname/pkg/formatter"
)

type renameOptions struct {
	apply bool
}

// addRenameFlags 目录相关参数；dir/recursive/qps 通过配置键读取
func addRenameFlags(cmd *cobra.Command, opts *renameOptions) {
	f := cmd.Flags()
	f.StringP("dir", "d", "", "目标文件夹路径（默认：当前目录）")
	f.BoolP("recursive", "r", false, "递归处理子文件夹")
	f.Float64("qps", 0, "每秒最多重命名的文件数，0 表示不限制")
	if opts != nil {
		f.BoolVarP(&opts.apply, "apply", "y", false, "直接执行重命名（无此参数则仅预览并询问）")
	}
}

func renameCmd() *cobra.Command {
	opts := &renameOptions{}
	cmd := &cobra.Command{
		Use:   "rename",
		Short: "预览并批量重命名目录中的文件",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRenameCmd(cmd, opts)
		},
	}
	addRenameFlags(cmd, opts)
	return cmd
}

func runRenameCmd(cmd *cobra.Command, opts *renameOptions) error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	defer c.Shutdown()

	return runRename(cmd.Context(), c.GetRenameService(), cmd.InOrStdin(), cmd.OutOrStdout(),
		cfg.Rename.Dir, cfg.Rename.Recursive, opts.apply)
}

// runRename 预览、确认并执行；apply 为 true 时跳过确认
func runRename(ctx context.Context, svc *file.RenameService, in io.Reader, out io.Writer, dir string, recursive, apply bool) error {
	root, err := filesystem.ExpandPath(dir)
	if err != nil {
		return err
	}

	preview, err := svc.Preview(ctx, root, recursive)
	if err != nil {
		if errors.Is(err, filesystem.ErrInvalidRoot) {
			path := root
			var pve *filesystem.PathValidationError
			if errors.As(err, &pve) {
				path = pve.Path
			}
			fmt.Fprintf(out, "目录不存在：%s\n", path)
			return errReported
		}
		return err
	}

	if len(preview.Plans) == 0 {
		fmt.Fprintln(out, "未找到可重命名的文件。")
		return nil
	}

	fmt.Fprintln(out, "将进行如下重命名：")
	for _, line := range formatter.PreviewLines(preview.Plans) {
		fmt.Fprintln(out, line)
	}

	if !apply && !confirm(in, out) {
		fmt.Fprintln(out, "已取消。")
		return nil
	}

	summary, err := svc.Apply(ctx, preview)
	if err != nil {
		return err
	}

	for _, failure := range summary.Failures {
		fmt.Fprintln(out, formatter.FailureLine(failure))
	}
	if summary.Canceled {
		fmt.Fprintf(out, "已中断：%d 个文件未处理。\n", summary.Skipped)
	}
	fmt.Fprintln(out, formatter.CompletionLine(summary))

	if summary.Canceled {
		return errReported
	}
	return nil
}

// confirm 询问是否执行，仅 y/yes 视为确认；读不到输入视为拒绝
func confirm(in io.Reader, out io.Writer) bool {
	fmt.Fprint(out, "是否执行重命名？(y/N) ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
