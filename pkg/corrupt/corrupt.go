package corrupt

import (
	"math/rand"
	"sort"

	chess_codec "github.com/8ff/chesscode/pkg/codecs/chess"
)

// Function that replaces num random squares of board with a different symbol, it picks squares without repeating
func FlipSquares(board string, num int, rng *rand.Rand) string {
	squares := []rune(board)
	if num > len(squares) {
		num = len(squares)
	}
	symbols := chess_codec.Symbols()

	flips := make(map[int]bool)
	for i := 0; i < num; i++ {
		flip := rng.Intn(len(squares))
		_, ok := flips[flip]
		if ok {
			i--
			continue
		}
		flips[flip] = true
	}

	// Map order is random, walk the squares in order so a seeded rng gives the same board
	positions := make([]int, 0, len(flips))
	for pos := range flips {
		positions = append(positions, pos)
	}
	sort.Ints(positions)

	for _, pos := range positions {
		idx, err := chess_codec.IndexFor(squares[pos])
		if err != nil { // not a board symbol, anything else will do
			squares[pos] = symbols[rng.Intn(len(symbols))]
			continue
		}
		// Shift by 1..len-1 so the square always changes
		squares[pos] = symbols[(idx+1+rng.Intn(len(symbols)-1))%len(symbols)]
	}
	return string(squares)
}

// Function that compares two boards and returns the number of different squares
func CompareBoards(a string, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}
	diff := len(ra) - len(rb)
	for i := 0; i < len(rb); i++ {
		if ra[i] != rb[i] {
			diff++
		}
	}
	return diff
}
