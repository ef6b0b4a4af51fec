package t2048

import (
	"strconv"
	"strings"
)

// BoardSize is the board dimension.
const BoardSize = 4

// Board is the value view of a 4x4 grid, row-major (Board[y][x]); zero is empty.
type Board [BoardSize][BoardSize]int

// String renders the board as rows of right-aligned values, "." for empty.
func (b Board) String() string {
	var sb strings.Builder
	for y := range BoardSize {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range BoardSize {
			cell := "."
			if b[y][x] != 0 {
				cell = strconv.Itoa(b[y][x])
			}
			sb.WriteString(strings.Repeat(" ", max(0, 5-len(cell))))
			sb.WriteString(cell)
		}
	}
	return sb.String()
}

// slideRow slides and merges a single row to the left.
// Returns the updated row and the score gained from merges.
func slideRow(row [BoardSize]int) (result [BoardSize]int, score int) {
	writePos := 0
	mergedAt := -1

	for i := range BoardSize {
		if row[i] == 0 {
			continue
		}

		if writePos > 0 && mergedAt != writePos-1 && result[writePos-1] == row[i] {
			// Merge with previous tile
			result[writePos-1] *= 2
			score += result[writePos-1]
			mergedAt = writePos - 1
		} else {
			result[writePos] = row[i]
			writePos++
		}
	}

	return result, score
}

// reverseRow reverses a row.
func reverseRow(row [BoardSize]int) [BoardSize]int {
	var result [BoardSize]int
	for i := range BoardSize {
		result[i] = row[BoardSize-1-i]
	}
	return result
}

// SlideLeft slides all tiles left and merges.
// Returns the new board, score gained, and whether the board changed.
func SlideLeft(board Board) (Board, int, bool) {
	var newBoard Board
	totalScore := 0
	changed := false

	for y := range BoardSize {
		row := board[y]
		newRow, score := slideRow(row)
		newBoard[y] = newRow
		totalScore += score

		if row != newRow {
			changed = true
		}
	}

	return newBoard, totalScore, changed
}

// SlideRight slides all tiles right and merges.
func SlideRight(board Board) (Board, int, bool) {
	var newBoard Board
	totalScore := 0
	changed := false

	for y := range BoardSize {
		row := reverseRow(board[y])
		newRow, score := slideRow(row)
		newBoard[y] = reverseRow(newRow)
		totalScore += score

		if board[y] != newBoard[y] {
			changed = true
		}
	}

	return newBoard, totalScore, changed
}

// SlideUp slides all tiles up and merges.
func SlideUp(board Board) (Board, int, bool) {
	slid, score, changed := SlideLeft(transpose(board))
	return transpose(slid), score, changed
}

// SlideDown slides all tiles down and merges.
func SlideDown(board Board) (Board, int, bool) {
	slid, score, changed := SlideRight(transpose(board))
	return transpose(slid), score, changed
}

// transpose returns the matrix transpose.
func transpose(board Board) Board {
	var result Board
	for y := range BoardSize {
		for x := range BoardSize {
			result[y][x] = board[x][y]
		}
	}
	return result
}

// Slide computes a move on the value view without touching any grid.
// Returns the new board, score gained, and whether the board changed.
func Slide(board Board, dir Direction) (Board, int, bool) {
	switch dir {
	case DirLeft:
		return SlideLeft(board)
	case DirRight:
		return SlideRight(board)
	case DirUp:
		return SlideUp(board)
	case DirDown:
		return SlideDown(board)
	default:
		return board, 0, false
	}
}

// EmptyCells returns coordinates of all empty cells.
func EmptyCells(board Board) []Position {
	var cells []Position
	for y := range BoardSize {
		for x := range BoardSize {
			if board[y][x] == 0 {
				cells = append(cells, Position{X: x, Y: y})
			}
		}
	}
	return cells
}

// HasEmptyCell returns true if there's at least one empty cell.
func HasEmptyCell(board Board) bool {
	for y := range BoardSize {
		for x := range BoardSize {
			if board[y][x] == 0 {
				return true
			}
		}
	}
	return false
}

// HasPossibleMerge returns true if any two orthogonally adjacent tiles share a value.
func HasPossibleMerge(board Board) bool {
	for y := range BoardSize {
		for x := range BoardSize {
			val := board[y][x]
			if val == 0 {
				continue
			}
			if x < BoardSize-1 && board[y][x+1] == val {
				return true
			}
			if y < BoardSize-1 && board[y+1][x] == val {
				return true
			}
		}
	}
	return false
}

// CanMove returns true if any move is possible.
func CanMove(board Board) bool {
	return HasEmptyCell(board) || HasPossibleMerge(board)
}

// MaxTile returns the maximum tile value on the board.
func MaxTile(board Board) int {
	maxVal := 0
	for y := range BoardSize {
		for x := range BoardSize {
			if board[y][x] > maxVal {
				maxVal = board[y][x]
			}
		}
	}
	return maxVal
}

// IsGameOver is the loss predicate: no empty cell and no adjacent equal pair.
// It depends only on the board, never on move history.
func IsGameOver(board Board) bool {
	return !CanMove(board)
}
