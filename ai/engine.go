// Package ai implements the heuristic alpha-beta Gomoku engine: candidate
// generation, pattern-based position scoring, a layered short-circuit
// decision procedure for forced tactics, and a bounded-depth search for
// everything else.
package ai

import (
	"math/rand"
	"time"

	"github.com/korjavin/gomoku-relay/board"
	"github.com/rs/zerolog/log"
)

// Difficulty selects the search depth and candidate neighborhood.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return "unknown"
	}
}

// depth returns the fixed search depth schedule from spec §4.1.
func (d Difficulty) depth() int {
	switch d {
	case Easy:
		return 2
	case Medium:
		return 4
	default:
		return 6
	}
}

// easyRandomMoveChance is the probability Easy mode skips search entirely
// and returns a random top-weighted candidate instead.
const easyRandomMoveChance = 0.30

// Engine holds the single RNG used for Easy-mode variance.
// No other state persists between calls to FindBestMove: every call borrows
// the board, mutates it under a strict try-undo discipline, and restores it.
type Engine struct {
	rng *rand.Rand
}

// NewEngine constructs an Engine. Passing seed 0 seeds from the current
// time; tests should pass a fixed non-zero seed for determinism.
func NewEngine(seed int64) *Engine {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Engine{rng: rand.New(rand.NewSource(seed))}
}

// Init is kept for parity with the original initAI()/cleanupAI() pair named
// in spec §6; it is idempotent and safe to call on each game start. An
// Engine is otherwise ready to use as soon as NewEngine returns.
func (e *Engine) Init() {}

// Cleanup is the companion to Init; the Go engine holds no resources that
// outlive a call, so this is a no-op kept for interface parity.
func (e *Engine) Cleanup() {}

// FindBestMove returns the best next move for aiColor on b within the given
// difficulty's budget. b may be mutated during the call but is always
// restored to its original state before returning.
func (e *Engine) FindBestMove(b *board.Board, aiColor board.Color, diff Difficulty) board.Move {
	if b.IsEmpty() {
		return board.Move{Row: board.Center, Col: board.Center}
	}

	candidates := generateCandidates(b, diff)
	if len(candidates) == 0 {
		return board.Move{Row: board.Center, Col: board.Center}
	}

	if mv, ok := e.layeredDecision(b, candidates, aiColor, diff); ok {
		return mv
	}

	if diff == Easy && e.rng.Float64() < easyRandomMoveChance {
		top := candidates
		if len(top) > 5 {
			top = top[:5]
		}
		return top[e.rng.Intn(len(top))]
	}

	mv, ok := e.search(b, candidates, aiColor, diff)
	if !ok {
		return candidates[0]
	}
	return mv
}

// layeredDecision implements spec §4.1's short-circuit tactical layers,
// which run before any tree search. It returns (move, true) if a layer
// fires, or (zero, false) if play should fall through to search.
func (e *Engine) layeredDecision(b *board.Board, candidates []board.Move, aiColor board.Color, diff Difficulty) (board.Move, bool) {
	opponent := aiColor.Other()

	type scoredCandidate struct {
		move     board.Move
		atkScore int
		defScore int
	}

	scored := make([]scoredCandidate, len(candidates))
	for i, mv := range candidates {
		scored[i] = scoredCandidate{
			move:     mv,
			atkScore: evaluatePosition(b, mv.Row, mv.Col, aiColor),
			defScore: evaluatePosition(b, mv.Row, mv.Col, opponent),
		}
	}

	// 1. Immediate win.
	for _, s := range scored {
		if s.atkScore >= scoreFive {
			return s.move, true
		}
	}

	// 2. Forced defense against an immediate opponent win.
	for _, s := range scored {
		if s.defScore >= scoreFive {
			return s.move, true
		}
	}

	// 3. AI can make an open four (or a double-four, which evaluatePosition
	// bonuses past OPEN_FOUR). A four-three gets only OPEN_FOUR/2 as a bonus
	// and stays below this threshold.
	for _, s := range scored {
		if s.atkScore >= scoreOpenFour {
			return s.move, true
		}
	}

	// 4. Opponent threatens an open four; track the strongest opponent
	// threat for the layers below as a side effect.
	bestDef := scored[0]
	for _, s := range scored {
		if s.defScore > bestDef.defScore {
			bestDef = s
		}
	}
	for _, s := range scored {
		if s.defScore >= scoreOpenFour {
			return s.move, true
		}
	}

	// 5. Opponent's best threat is at least a closed four: defend it.
	if bestDef.defScore >= scoreFour {
		return bestDef.move, true
	}

	// 6. AI can make an open three, unless the opponent's best threat is a
	// stronger open three, in which case defend that instead.
	bestAtk := scored[0]
	for _, s := range scored {
		if s.atkScore > bestAtk.atkScore {
			bestAtk = s
		}
	}
	if bestAtk.atkScore >= scoreOpenThree {
		if bestDef.defScore >= scoreOpenThree && bestDef.defScore > bestAtk.atkScore {
			return bestDef.move, true
		}
		return bestAtk.move, true
	}

	log.Debug().Str("difficulty", diff.String()).Msg("no tactical short-circuit, entering search")
	return board.Move{}, false
}
