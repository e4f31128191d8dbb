package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom/project"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom/rollup"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom/tree"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/snapshot"
)

var (
	browseSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	browseNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	browseDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand opens an interactive tree browser on a snapshot.
func (c *CLI) browseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse [snapshot.json]",
		Short: "Navigate a BOM tree interactively",
		Long: `Navigate a BOM tree interactively.

Keys:
  up/k, down/j   move the cursor
  enter, space   expand or collapse the selected node
  E              expand all
  C              collapse all
  1-9            expand to level
  q, esc         quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := snapshot.ReadFile(args[0])
			if err != nil {
				return err
			}
			t, err := tree.Build(s.Nodes, c.Limits)
			if err != nil {
				return err
			}
			rollup.Apply(t, rollup.Options{})

			m := newBrowseModel(s.BOMID, t)
			_, err = tea.NewProgram(m, tea.WithOutput(cmd.OutOrStdout())).Run()
			return err
		},
	}
	return cmd
}

// browseModel is the bubbletea model for tree navigation. All expansion
// state lives here; the engine's projection is recomputed from (tree,
// expanded) on every render, so cursor rows always match the projector's
// indices.
type browseModel struct {
	bomID    string
	tree     *tree.Tree
	expanded project.Set
	cursor   int
	offset   int
	height   int
}

func newBrowseModel(bomID string, t *tree.Tree) browseModel {
	return browseModel{
		bomID:    bomID,
		tree:     t,
		expanded: project.CollapseAll(),
		height:   20,
	}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	visible := project.Visible(m.tree, m.expanded)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Height > 4 {
			m.height = msg.Height - 4
		}
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(visible)-1 {
				m.cursor++
			}
		case "enter", " ":
			if m.cursor < len(visible) {
				m.expanded = project.Toggle(m.tree, m.expanded, visible[m.cursor].Node.ID)
			}
		case "E":
			m.expanded = project.ExpandAll(m.tree)
		case "C":
			m.expanded = project.CollapseAll()
			m.cursor = 0
		default:
			if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
				m.expanded = project.ExpandToLevel(m.tree, int(key[0]-'1'))
			}
		}
	}

	// Clamp the cursor to the new projection and keep it in the window.
	if visible = project.Visible(m.tree, m.expanded); m.cursor >= len(visible) && len(visible) > 0 {
		m.cursor = len(visible) - 1
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
	return m, nil
}

func (m browseModel) View() string {
	visible := project.Visible(m.tree, m.expanded)

	var sb strings.Builder
	sb.WriteString(styleTitle.Render("BOM "+m.bomID) + "\n")

	end := min(m.offset+m.height, len(visible))
	for i := m.offset; i < end; i++ {
		row := visible[i]
		marker := "  "
		if row.HasChildren {
			if row.Expanded {
				marker = "▾ "
			} else {
				marker = "▸ "
			}
		}
		line := strings.Repeat("  ", row.Depth) + marker + row.Node.ComponentID +
			fmt.Sprintf("  x%s = %s", row.Node.ActualQuantity, row.Node.TotalCost)

		switch {
		case i == m.cursor:
			sb.WriteString(browseSelectedStyle.Render("> " + line))
		case !row.Node.IsActive:
			sb.WriteString(browseDimStyle.Render("  " + line))
		default:
			sb.WriteString(browseNormalStyle.Render("  " + line))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(browseDimStyle.Render(fmt.Sprintf("\n%d/%d  enter: toggle  E: expand all  C: collapse  q: quit",
		m.cursor+1, len(visible))))
	return sb.String()
}
