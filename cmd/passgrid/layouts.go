package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"passgrid/pkg/layout"
)

// plainTable is the borderless table both listing commands print.
func plainTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderHeader(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().PaddingRight(2)
		}).
		Headers(headers...)
}

func newLayoutsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layouts",
		Short: "List the available grid layouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := plainTable("LAYOUT", "ROWS", "COLUMNS", "CELLS")
			for _, l := range layout.All() {
				name := l.String()
				if l == layout.Default {
					name += " (default)"
				}
				t.Row(name, strconv.Itoa(l.Rows()), strconv.Itoa(l.Columns()), strconv.Itoa(l.Cells()))
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return err
		},
	}
}
