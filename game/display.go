package game

import (
	"fmt"
	"strings"
)

// ToDisplayText shows the board, the next piece and the running totals.
func (g *Game) ToDisplayText() string {
	var sb strings.Builder
	sb.WriteString(g.board.ToDisplayText())
	fmt.Fprintf(&sb, "Turn: %d  Rows cleared: %d", g.turn, g.rowsCleared)
	if g.lost {
		sb.WriteString("  (lost)")
	} else {
		fmt.Fprintf(&sb, "  Next: %v", g.next)
	}
	sb.WriteString("\n")
	return sb.String()
}
