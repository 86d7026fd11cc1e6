package t2048

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
)

const (
	cellWidth  = 7 // Width of each cell including its left border
	cellHeight = 2 // Height of each cell including its top border
	hudHeight  = 3
)

// minScreen returns the smallest screen that fits a size×size board and HUD.
func minScreen(size int) (int, int) {
	boardW := size*cellWidth + 1
	boardH := size*cellHeight + 1
	return max(boardW, 24), boardH + hudHeight + 2
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	n := g.variant.Size
	boardW := n*cellWidth + 1
	boardH := n*cellHeight + 1

	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX, boardW)
	g.renderBoard(dst, boardX, boardY)
	g.renderOverlays(dst, boardX, boardY, boardW, boardH)

	if footerY := boardY + boardH + 1; footerY < g.screenH {
		dst.DrawTextColored(max(0, (g.screenW-len(g.Controls()))/2), footerY, g.Controls(), core.ColorGray)
	}
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")

	minW, minH := minScreen(g.variant.Size)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", minW, minH))
}

// renderHUD draws title, score, best score and move count.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	title := g.variant.Title
	dst.DrawTextColored(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightYellow)

	score := g.ctrl.Score()
	scoreStr := fmt.Sprintf("Score: %d", score)
	if g.lastDelta > 0 && !g.ctrl.GameOver() {
		scoreStr += fmt.Sprintf(" +%d", g.lastDelta)
	}
	dst.DrawText(boardX, 1, scoreStr)

	bestStr := fmt.Sprintf("Best: %d", max(g.best, score))
	dst.DrawTextColored(max(boardX, boardX+boardW-len(bestStr)), 1, bestStr, core.ColorCyan)

	info := fmt.Sprintf("Moves: %d  Max: %d", g.ctrl.Moves(), g.ctrl.MaxTile())
	dst.DrawTextColored(boardX+(boardW-len(info))/2, 2, info, core.ColorGray)
}

// renderBoard draws the grid lines and tiles for any board size.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	n := g.variant.Size
	grid := g.ctrl.Grid()

	for y := range n + 1 {
		for x := range n + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			dst.Set(px, py, junction(x, y, n))

			if x < n {
				for i := 1; i < cellWidth; i++ {
					dst.Set(px+i, py, '─')
				}
			}
			if y < n {
				for i := 1; i < cellHeight; i++ {
					dst.Set(px, py+i, '│')
				}
			}
		}
	}

	for y := range n {
		for x := range n {
			val := grid[y][x]
			cellX := boardX + x*cellWidth + 1
			cellY := boardY + y*cellHeight + 1

			if val == 0 {
				dst.SetColored(cellX+(cellWidth-1)/2, cellY, '·', core.TileColor(0))
				continue
			}

			valStr := strconv.Itoa(val)
			padLeft := max(0, (cellWidth-1-len(valStr))/2)
			dst.DrawTextColored(cellX+padLeft, cellY, valStr, core.TileColor(val))
		}
	}
}

// junction picks the box-drawing rune for grid intersection (x, y).
func junction(x, y, n int) rune {
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == n:
		return '┐'
	case y == n && x == 0:
		return '└'
	case y == n && x == n:
		return '┘'
	case y == 0:
		return '┬'
	case y == n:
		return '┴'
	case x == 0:
		return '├'
	case x == n:
		return '┤'
	default:
		return '┼'
	}
}

func (g *Game) renderOverlays(dst *core.Screen, boardX, boardY, boardW, boardH int) {
	centerX := boardX + boardW/2
	centerY := boardY + boardH/2

	switch {
	case g.ctrl.GameOver():
		lines := []string{"GAME OVER", fmt.Sprintf("Final score: %d", g.ctrl.Score())}
		if g.ctrl.Score() > 0 && g.ctrl.Score() >= g.best {
			lines = append(lines, "New best!")
		}
		lines = append(lines, "Press R to restart")
		drawOverlay(dst, centerX, centerY, lines...)
	case g.paused:
		drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	}
}

// drawOverlay draws a boxed, centered block of text.
func drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := core.NewRect(centerX-(maxLen+4)/2, centerY-(len(lines)+2)/2, maxLen+4, len(lines)+2)
	dst.FillRect(box, ' ')
	dst.DrawBox(box)

	for i, line := range lines {
		dst.DrawTextColored(centerX-len(line)/2, box.Y+1+i, line, core.ColorBrightWhite)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD/hjkl: Move | P: Pause | R: Restart | Q: Quit"
}
