package t2048

import (
	"fmt"
	"math"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
)

const (
	cellWidth  = 7 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 3

	boardWidth  = BoardSize*cellWidth + 1  // +1 for right border
	boardHeight = BoardSize*cellHeight + 1 // +1 for bottom border
)

// Minimum screen size for DrawBoard.
const (
	MinScreenWidth  = boardWidth + 2
	MinScreenHeight = hudHeight + boardHeight + 2
)

// HUD is the text drawn around the board.
type HUD struct {
	Profile string // Shown under the title when set
	Hint    string // Shown below the board when set
}

// DrawBoard draws the animator's current frame, the score line and any
// win or game over overlay.
func DrawBoard(dst *core.Screen, a *Animator, hud HUD) {
	dst.Clear()

	if dst.Width() < MinScreenWidth || dst.Height() < MinScreenHeight {
		renderTooSmall(dst)
		return
	}

	frame, _ := a.Frame()

	boardX := (dst.Width() - boardWidth) / 2
	boardY := hudHeight + 1

	renderHUD(dst, frame.Meta, hud, boardX)
	renderGrid(dst, boardX, boardY)
	renderSprites(dst, a.Sprites(), boardX, boardY)

	if hud.Hint != "" && boardY+boardHeight < dst.Height() {
		dst.DrawTextColored((dst.Width()-len(hud.Hint))/2, boardY+boardHeight, hud.Hint, core.ColorGray)
	}

	if !a.Animating() {
		renderOverlays(dst, frame, boardX, boardY)
	}
}

// renderTooSmall shows a "window too small" message.
func renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", MinScreenWidth, MinScreenHeight))
}

// renderHUD draws the title, score and best score.
func renderHUD(dst *core.Screen, meta Meta, hud HUD, boardX int) {
	title := "2048"
	dst.DrawTextColored(boardX+(boardWidth-len(title))/2, 0, title, core.ColorBrightYellow)

	score := fmt.Sprintf("Score: %d", meta.Score)
	dst.DrawText(boardX, 1, score)
	if meta.ScoreDelta > 0 {
		dst.DrawTextColored(boardX+len(score)+1, 1, fmt.Sprintf("+%d", meta.ScoreDelta), core.ColorBrightGreen)
	}

	best := fmt.Sprintf("Best: %d", meta.BestScore)
	dst.DrawText(max(boardX, boardX+boardWidth-len(best)), 1, best)

	if hud.Profile != "" {
		dst.DrawTextColored(boardX+(boardWidth-len(hud.Profile))/2, 2, hud.Profile, core.ColorGray)
	}
}

// renderGrid draws the 4x4 cell borders.
func renderGrid(dst *core.Screen, boardX, boardY int) {
	for y := range BoardSize + 1 {
		for x := range BoardSize + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == BoardSize:
				corner = '┐'
			case y == BoardSize && x == 0:
				corner = '└'
			case y == BoardSize && x == BoardSize:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == BoardSize:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == BoardSize:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColored(px, py, corner, core.ColorGray)

			if x < BoardSize {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}
			if y < BoardSize {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}
}

// renderSprites draws tiles at their interpolated cell positions.
func renderSprites(dst *core.Screen, sprites []Sprite, boardX, boardY int) {
	for _, s := range sprites {
		cellX := boardX + int(math.Round(s.X*cellWidth)) + 1
		cellY := boardY + int(math.Round(s.Y*cellHeight)) + 1

		text := strconv.Itoa(s.Value)
		if s.Pop < 0.4 {
			text = "·"
		}
		padLeft := max(0, (cellWidth-1-len([]rune(text)))/2)
		dst.DrawTextColored(cellX+padLeft, cellY, text, TileColor(s.Value))
	}
}

// renderOverlays draws the win or game over box.
func renderOverlays(dst *core.Screen, f Frame, boardX, boardY int) {
	centerX := boardX + boardWidth/2
	centerY := boardY + boardHeight/2

	switch {
	case f.Meta.Over:
		drawOverlay(dst, centerX, centerY, "GAME OVER", fmt.Sprintf("Max tile: %d", MaxTile(f.Board)), "R: new game")
	case f.Meta.Won && !f.Meta.KeepPlaying:
		drawOverlay(dst, centerX, centerY, "YOU WIN!", "C: keep going", "R: new game")
	}
}

// drawOverlay draws a centered text box.
func drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := core.CenteredRect(centerX, centerY, maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	for i, line := range lines {
		dst.DrawTextColored(centerX-len(line)/2, box.Y+1+i, line, core.ColorBrightWhite)
	}
}

// TileColor returns the display color for a tile value.
func TileColor(value int) core.Color {
	switch value {
	case 2:
		return core.ColorWhite
	case 4:
		return core.ColorBrightWhite
	case 8:
		return core.ColorOrange
	case 16:
		return core.ColorBrightRed
	case 32:
		return core.ColorRed
	case 64:
		return core.ColorBrightMagenta
	case 128:
		return core.ColorYellow
	case 256:
		return core.ColorBrightYellow
	case 512:
		return core.ColorGreen
	case 1024:
		return core.ColorBrightGreen
	case 2048:
		return core.ColorBrightCyan
	default:
		return core.ColorCyan
	}
}
