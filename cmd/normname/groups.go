package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/easayliu/normname/internal/domain/services/group"
)

func groupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "显示当前生效的分组表与别名冲突",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newContainer()
			if err != nil {
				return err
			}
			defer c.Shutdown()

			return printGroups(cmd.OutOrStdout(), c.GetIndex())
		},
	}
}

// printGroups 表格输出分组，冲突作为警告附在末尾
func printGroups(out io.Writer, idx *group.Index) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "组别\t规范型号\t别名")
	for _, g := range idx.Table() {
		canonical, _ := idx.Canonical(g.ID)
		fmt.Fprintf(w, "%s\t%s\t%s\n", g.ID, canonical, strings.Join(g.Aliases, ", "))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for _, c := range idx.Collisions() {
		fmt.Fprintf(out, "警告：%s\n", c.String())
	}
	return nil
}
