package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom/tree"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary values
	colorGreen  = lipgloss.Color("35")  // Green - additions, success
	colorYellow = lipgloss.Color("220") // Amber - warnings, changes
	colorRed    = lipgloss.Color("167") // Soft red - removals, errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// Tree Rendering
// =============================================================================

// renderTree prints a built tree as indented text, one node per line, in
// depth-first pre-order. Inactive nodes are dimmed, optional nodes marked.
func renderTree(sb *strings.Builder, t *tree.Tree) {
	t.Walk(func(i int) bool {
		n := t.Node(i)
		indent := strings.Repeat("  ", n.Level)

		line := fmt.Sprintf("%s%s", indent, n.ComponentID)
		meta := fmt.Sprintf("  %s x%s @ %s = %s",
			typeAbbrev(n.ComponentType), n.ActualQuantity, n.UnitCost, n.TotalCost)

		switch {
		case !n.IsActive:
			sb.WriteString(styleDim.Render(line + meta + "  (inactive)"))
		case n.IsOptional:
			sb.WriteString(styleValue.Render(line) + styleDim.Render(meta+"  (optional)"))
		default:
			sb.WriteString(styleValue.Render(line) + styleDim.Render(meta))
		}
		sb.WriteString("\n")
		return true
	})
}

// renderWarnings prints build warnings (orphans degraded to roots).
func renderWarnings(sb *strings.Builder, warnings []tree.Warning) {
	for _, w := range warnings {
		sb.WriteString(styleWarning.Render(fmt.Sprintf("warning: %s: %s", w.NodeID, w.Message)))
		sb.WriteString("\n")
	}
}

// summaryRow renders one label/value pair for summary output.
func summaryRow(label, value string) string {
	return styleDim.Render(fmt.Sprintf("%-22s", label)) + styleNumber.Render(value) + "\n"
}

func typeAbbrev(t bom.ComponentType) string {
	switch t {
	case bom.RawMaterial:
		return "RAW"
	case bom.SemiFinished:
		return "SEMI"
	case bom.PurchasedPart:
		return "BUY"
	case bom.SubAssembly:
		return "ASSY"
	case bom.Consumable:
		return "CONS"
	}
	return string(t)
}
