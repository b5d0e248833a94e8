package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wxgeo/global-search/internal/editor"
)

// newEditorsCmd 创建 editors 子命令。
// 命令用于展示受支持的外部编辑器以及各自的行定位参数语法。
func newEditorsCmd(registry *editor.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "editors",
		Short: "展示受支持的外部编辑器",
		RunE: func(cmd *cobra.Command, _ []string) error {
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			if _, err := fmt.Fprintln(writer, "EDITOR\tOPEN AT LINE"); err != nil {
				return err
			}

			for _, item := range registry.Editors() {
				name := item.Name()
				if name == editor.DefaultName {
					name += " (default)"
				}
				if _, err := fmt.Fprintf(writer, "%s\t%s %s\n", name, item.Name(), item.LineSyntax()); err != nil {
					return err
				}
			}

			return writer.Flush()
		},
	}
}
