package ai

import (
	"sort"

	"github.com/korjavin/gomoku-relay/board"
)

// neighborhoodRadius and candidateCap implement spec §4.1's candidate
// generation: empty cells within Chebyshev distance of a stone, deduplicated,
// scored by the position-weight table and capped.
func neighborhoodRadius(diff Difficulty) int {
	if diff == Hard {
		return 3
	}
	return 2
}

func candidateCap(diff Difficulty) int {
	if diff == Hard {
		return 100
	}
	return 60
}

// generateCandidates returns the bounded, deduplicated, descending-sorted
// set of empty cells worth considering for the next move.
func generateCandidates(b *board.Board, diff Difficulty) []board.Move {
	if b.IsEmpty() {
		return []board.Move{{Row: board.Center, Col: board.Center}}
	}

	radius := neighborhoodRadius(diff)
	seen := make(map[board.Move]bool)
	var scored []board.ScoredMove

	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			if b.At(row, col) == board.Empty {
				continue
			}
			for dr := -radius; dr <= radius; dr++ {
				for dc := -radius; dc <= radius; dc++ {
					if dr == 0 && dc == 0 {
						continue
					}
					r, c := row+dr, col+dc
					if !board.InBounds(r, c) || b.At(r, c) != board.Empty {
						continue
					}
					mv := board.Move{Row: r, Col: c}
					if seen[mv] {
						continue
					}
					seen[mv] = true
					scored = append(scored, board.ScoredMove{Move: mv, Score: positionWeight(r, c)})
				}
			}
		}
	}

	sort.Slice(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	cap := candidateCap(diff)
	if len(scored) > cap {
		scored = scored[:cap]
	}

	moves := make([]board.Move, len(scored))
	for i, s := range scored {
		moves[i] = s.Move
	}
	return moves
}
