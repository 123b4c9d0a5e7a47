package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tooltipper/pkg/tooltip"
)

func (c *CLI) profilesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the built-in tooltip profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(c.out, profilesTable())
			return err
		},
	}
}

func profilesTable() string {
	var rows [][]string
	for _, name := range tooltip.Profiles() {
		cfg, _ := tooltip.Profile(name)
		if name == tooltip.DefaultProfile {
			name += " (default)"
		}
		rows = append(rows, []string{
			name,
			strconv.Itoa(cfg.PagePadding),
			strconv.Itoa(cfg.VerticalPadding),
			strconv.Itoa(cfg.TriangleWidth),
			strconv.Itoa(cfg.BorderWidth),
			cfg.PointerSelector,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Profile", "Page pad", "Vertical pad", "Triangle", "Border", "Pointer").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return StyleHighlight
			default:
				return lipgloss.NewStyle().Foreground(colorWhite)
			}
		}).
		Render()
}
