package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/easayliu/normname/internal/domain/services/filename"
)

func explainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain <文件名>...",
		Short: "显示文件名（不含扩展名）的解析过程",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newContainer()
			if err != nil {
				return err
			}
			defer c.Shutdown()

			printExplain(cmd.OutOrStdout(), c.GetBuilder(), args)
			return nil
		},
	}
}

// printExplain 逐个输出各阶段结果
func printExplain(out io.Writer, builder *filename.Builder, stems []string) {
	for i, stem := range stems {
		if i > 0 {
			fmt.Fprintln(out)
		}
		r := builder.Explain(stem)

		fmt.Fprintf(out, "原始: %s\n", r.Stem)
		if r.Model != "" {
			fmt.Fprintf(out, "  型号: %s\n", r.Model)
		}
		if r.Numeral != "" {
			if r.Err == nil {
				fmt.Fprintf(out, "  序号: %s (= %d)\n", r.Numeral, r.Number)
			} else {
				fmt.Fprintf(out, "  序号: %s\n", r.Numeral)
			}
		}
		if r.Err != nil {
			fmt.Fprintf(out, "  错误: %v\n", r.Err)
			continue
		}
		if r.GroupID != "" {
			fmt.Fprintf(out, "  组别: %s（别名 %s）\n", r.GroupID, r.Alias)
		} else {
			fmt.Fprintln(out, "  组别: 未命中")
		}
		fmt.Fprintf(out, "  结果: %s\n", r.NewStem)
	}
}
