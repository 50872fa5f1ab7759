package ai

import (
	"sort"

	"github.com/korjavin/gomoku-relay/board"
)

// orderCandidates rescoring for search move ordering: attack score for the
// mover plus defense score for the opponent, sorted descending, capped by
// how much depth remains (spec §4.1 step 3).
func orderCandidates(b *board.Board, candidates []board.Move, mover, other board.Color, depth int) []board.Move {
	scored := make([]board.ScoredMove, len(candidates))
	for i, mv := range candidates {
		scored[i] = board.ScoredMove{
			Move:  mv,
			Score: evaluatePosition(b, mv.Row, mv.Col, mover) + evaluatePosition(b, mv.Row, mv.Col, other),
		}
	}
	sort.Slice(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	cap := 10
	switch {
	case depth <= 2:
		cap = 20
	case depth <= 4:
		cap = 15
	}
	if len(scored) > cap {
		scored = scored[:cap]
	}

	out := make([]board.Move, len(scored))
	for i, s := range scored {
		out[i] = s.Move
	}
	return out
}

// search runs the bounded alpha-beta game tree and returns the AI's chosen
// root move. The second return value is false only when no candidate could
// be evaluated (should not happen given non-empty candidates).
func (e *Engine) search(b *board.Board, rootCandidates []board.Move, aiColor board.Color, diff Difficulty) (board.Move, bool) {
	maxDepth := diff.depth()
	opponent := aiColor.Other()

	ordered := orderCandidates(b, rootCandidates, aiColor, opponent, maxDepth)
	if len(ordered) == 0 {
		return board.Move{}, false
	}

	alpha, beta := -infinityScore, infinityScore
	bestScore := -infinityScore - 1
	bestMove := ordered[0]
	found := false

	for _, mv := range ordered {
		prev := b.At(mv.Row, mv.Col)
		b.Set(mv.Row, mv.Col, aiColor)

		var score int
		if board.CheckWinAt(b, mv.Row, mv.Col, aiColor) {
			score = infinityScore - (maxDepth - maxDepth)
		} else {
			score = e.alphabeta(b, maxDepth-1, alpha, beta, false, aiColor, maxDepth, diff)
		}

		b.Set(mv.Row, mv.Col, prev)

		if score > bestScore {
			bestScore = score
			bestMove = mv
			found = true
		}
		if score > alpha {
			alpha = score
		}
		if beta <= alpha {
			break
		}
	}

	return bestMove, found
}

// alphabeta is the classic negamax-in-minimax recursion described in
// spec §4.1: regenerate and order candidates at every interior node, try
// each under a strict place/undo discipline, and prefer shallower forced
// wins via the terminal-score depth term.
func (e *Engine) alphabeta(b *board.Board, depth int, alpha, beta int, maximizing bool, aiColor board.Color, maxDepth int, diff Difficulty) int {
	if depth == 0 {
		return evaluateBoard(b, aiColor)
	}

	mover := aiColor
	other := aiColor.Other()
	if !maximizing {
		mover, other = other, mover
	}

	candidates := generateCandidates(b, diff)
	if len(candidates) == 0 {
		return evaluateBoard(b, aiColor)
	}
	ordered := orderCandidates(b, candidates, mover, other, depth)

	if maximizing {
		best := -infinityScore - 1
		for _, mv := range ordered {
			prev := b.At(mv.Row, mv.Col)
			b.Set(mv.Row, mv.Col, mover)

			var score int
			if board.CheckWinAt(b, mv.Row, mv.Col, mover) {
				score = infinityScore - (maxDepth - depth)
			} else {
				score = e.alphabeta(b, depth-1, alpha, beta, false, aiColor, maxDepth, diff)
			}

			b.Set(mv.Row, mv.Col, prev)

			if score > best {
				best = score
			}
			if score > alpha {
				alpha = score
			}
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := infinityScore + 1
	for _, mv := range ordered {
		prev := b.At(mv.Row, mv.Col)
		b.Set(mv.Row, mv.Col, mover)

		var score int
		if board.CheckWinAt(b, mv.Row, mv.Col, mover) {
			score = -(infinityScore - (maxDepth - depth))
		} else {
			score = e.alphabeta(b, depth-1, alpha, beta, true, aiColor, maxDepth, diff)
		}

		b.Set(mv.Row, mv.Col, prev)

		if score < best {
			best = score
		}
		if score < beta {
			beta = score
		}
		if beta <= alpha {
			break
		}
	}
	return best
}
