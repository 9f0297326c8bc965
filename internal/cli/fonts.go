package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/tagcloud/tagcloud/pkg/fonts"
)

// fontsCommand creates the fonts command.
func (c *CLI) fontsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fonts",
		Short: "List the available font families",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			current := c.baseOptions().Font
			if current == "" {
				current = fonts.DefaultFamily
			}
			fmt.Fprintln(c.out, fontTable(fonts.Names(), current).Render())
			return nil
		},
	}
}

// fontTable lists names, marking current.
func fontTable(names []string, current string) *table.Table {
	rows := make([][]string, len(names))
	for i, name := range names {
		mark := ""
		if name == current {
			mark = iconSuccess
		}
		rows[i] = []string{mark, name}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Family").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row < len(names) && names[row] == current {
				return base.Foreground(colorGreen).Bold(true)
			}
			return base
		})
}
