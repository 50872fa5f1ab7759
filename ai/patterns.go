package ai

import "github.com/korjavin/gomoku-relay/board"

// Pattern scores from spec §4.1, one flat constant per pattern.
const (
	scoreFive      = 1000000
	scoreOpenFour  = 100000
	scoreFour      = 15000
	scoreOpenThree = 5000
	scoreThree     = 800
	scoreOpenTwo   = 300
	scoreTwo       = 50
	scoreOne       = 10
)

// infinityScore bounds terminal minimax scores; see search and alphabeta.
const infinityScore = 10000000

// patternScore maps a line's (count, openEnds) to its point value, shared by
// evaluatePosition (single-cell placement) and evaluateBoard (whole-board
// leaf scan).
func patternScore(count, openEnds int) int {
	switch {
	case count >= 5:
		return scoreFive
	case count == 4 && openEnds == 2:
		return scoreOpenFour
	case count == 4 && openEnds == 1:
		return scoreFour
	case count == 3 && openEnds == 2:
		return scoreOpenThree
	case count == 3 && openEnds == 1:
		return scoreThree
	case count == 2 && openEnds == 2:
		return scoreOpenTwo
	case count == 2 && openEnds == 1:
		return scoreTwo
	case count == 1 && openEnds == 2:
		return 2 * scoreOne
	case count == 1 && openEnds == 1:
		return scoreOne
	default:
		return 0
	}
}

// positionWeight returns the small center-bias term added to leaf
// evaluations: BOARD_SIZE minus the Manhattan distance to the center.
func positionWeight(row, col int) int {
	dist := abs(row-board.Center) + abs(col-board.Center)
	return board.Size - dist
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// evaluatePosition temporarily places color at (row, col), scores the four
// lines through it, adds combinatorial bonuses for multi-direction threats,
// and restores the cell before returning.
func evaluatePosition(b *board.Board, row, col int, color board.Color) int {
	prev := b.At(row, col)
	b.Set(row, col, color)
	defer b.Set(row, col, prev)

	total := 0
	closedFours := 0
	openThrees := 0

	for _, dir := range board.Directions {
		run := b.AnalyzeLine(row, col, color, dir)
		total += patternScore(run.Count, run.OpenEnds)

		if run.Count == 4 && run.OpenEnds == 1 {
			closedFours++
		}
		if run.Count == 3 && run.OpenEnds == 2 {
			openThrees++
		}
	}

	switch {
	case closedFours >= 2:
		total += scoreOpenFour // double-four
	case closedFours >= 1 && openThrees >= 1:
		total += scoreOpenFour / 2 // four-three
	case openThrees >= 2:
		total += scoreFour // double-three
	}

	total += positionWeight(row, col)
	return total
}

// evaluateBoard is the search leaf: the signed sum, over every stone on the
// board, of the pattern score of each line it starts (so every line is
// counted exactly once) plus the position weight, positive for aiColor and
// negative for the opponent.
func evaluateBoard(b *board.Board, aiColor board.Color) int {
	total := 0
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			cell := b.At(row, col)
			if cell == board.Empty {
				continue
			}

			sign := 1
			if cell != aiColor {
				sign = -1
			}

			total += sign * positionWeight(row, col)

			for _, dir := range board.Directions {
				prevR, prevC := row-dir.DY, col-dir.DX
				if board.InBounds(prevR, prevC) && b.At(prevR, prevC) == cell {
					continue // not the start of this run
				}
				run := b.AnalyzeLine(row, col, cell, dir)
				total += sign * patternScore(run.Count, run.OpenEnds)
			}
		}
	}
	return total
}
