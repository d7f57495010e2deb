package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/easayliu/normname/internal/infrastructure/config"
	"github.com/easayliu/normname/internal/infrastructure/filesystem"
)

// defaultConfigPath config init 的默认输出路径
const defaultConfigPath = "./configs/config.yaml"

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "配置文件管理",
	}
	cmd.AddCommand(configInitCmd())
	return cmd
}

func configInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:         "init [path]",
		Short:       "生成包含内置分组表的默认配置文件",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{annotationSkipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultConfigPath
			if len(args) == 1 {
				path = args[0]
			}
			path, err := filesystem.ExpandPath(path)
			if err != nil {
				return err
			}

			if err := config.WriteFile(path, config.Default(), force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "已写入配置文件：%s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "覆盖已存在的配置文件")
	return cmd
}
