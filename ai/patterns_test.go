package ai

import (
	"testing"

	"github.com/korjavin/gomoku-relay/board"
	"github.com/stretchr/testify/require"
)

func TestPatternScoreTable(t *testing.T) {
	require.Equal(t, scoreFive, patternScore(5, 0))
	require.Equal(t, scoreOpenFour, patternScore(4, 2))
	require.Equal(t, scoreFour, patternScore(4, 1))
	require.Equal(t, scoreOpenThree, patternScore(3, 2))
	require.Equal(t, scoreThree, patternScore(3, 1))
	require.Equal(t, scoreOpenTwo, patternScore(2, 2))
	require.Equal(t, scoreTwo, patternScore(2, 1))
	require.Equal(t, 2*scoreOne, patternScore(1, 2))
	require.Equal(t, scoreOne, patternScore(1, 1))
	require.Equal(t, 0, patternScore(0, 0))
}

func TestEvaluatePositionRestoresCell(t *testing.T) {
	b := board.New()
	b.Set(7, 7, board.Black)
	before := b.Clone()
	evaluatePosition(b, 7, 8, board.Black)
	require.True(t, b.Equal(before))
}

func TestEvaluatePositionDoubleThreeBonus(t *testing.T) {
	b := board.New()
	// Two open threes crossing at (7,7) once Black plays there.
	b.Set(7, 5, board.Black)
	b.Set(7, 6, board.Black)
	b.Set(5, 7, board.Black)
	b.Set(6, 7, board.Black)

	score := evaluatePosition(b, 7, 7, board.Black)
	require.Greater(t, score, scoreFour, "double-three bonus should push the score past a plain FOUR")
}

// S3 — open four preferred over closed four defense.
func TestOpenFourPreferredOverClosedFourDefense(t *testing.T) {
	e := NewEngine(1)
	b := board.New()
	// Black has three in a row with both ends open: playing (7,8) or (7,4)
	// makes an open four (layer 3).
	b.Set(7, 5, board.Black)
	b.Set(7, 6, board.Black)
	b.Set(7, 7, board.Black)

	// White has a closed three (one end blocked by Black) whose remaining
	// open end, if White played there, would only reach a closed four
	// (count 4, one open end) — a layer-5 "defend the closed four" threat,
	// not an immediate five.
	b.Set(2, 2, board.Black)
	b.Set(2, 3, board.White)
	b.Set(2, 4, board.White)
	b.Set(2, 5, board.White)

	mv := e.FindBestMove(b, board.Black, Medium)
	require.Contains(t, []board.Move{{Row: 7, Col: 4}, {Row: 7, Col: 8}}, mv,
		"Black should complete its open four instead of pre-blocking White's closed four")
}
