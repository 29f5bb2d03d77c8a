// Package chess_codec packs short ASCII messages into the placement of pieces on a chessboard and back.
//
// Every character contributes its low 7 bits to a bitstream. The stream is cut greedily into 3 and 4 bit groups: a
// 4 bit group is taken only when its value is 8..12, otherwise 3 bits are taken. Each group is the index of a symbol
// in SymbolTable. The board is always 64 symbols long, padded with empty squares.
package chess_codec

import "fmt"

const (
	// SymbolTable lists the board symbols by value.
	// lowercase == white, uppercase == black
	// p == pawn, n == kNight, b == bishop, r == rook, q == queen, k == king, . == empty square
	SymbolTable = ".pnbrqkPNBRQK"

	Empty      = '.'
	BoardSize  = 64
	BoardWidth = 8

	charBits      = 7
	minSymbolBits = 3
	maxSymbolBits = 4
	// smallest value that is worth spending 4 bits on
	wideSymbol   = 1 << minSymbolBits
	maxBoardBits = (BoardSize-1)*maxSymbolBits + minSymbolBits
)

var symbols = []rune(SymbolTable)

var symbolIndex = func() map[rune]int {
	m := make(map[rune]int, len(symbols))
	for i, r := range symbols {
		m[r] = i
	}
	return m
}()

// Symbols returns a copy of the symbol table, ordered by value
func Symbols() []rune {
	return append([]rune(nil), symbols...)
}

// SymbolFor returns the symbol with the given value
func SymbolFor(index int) (rune, error) {
	if index < 0 || index >= len(symbols) {
		return 0, fmt.Errorf("%w: no symbol with value %d", ErrUnknownSymbol, index)
	}
	return symbols[index], nil
}

// IndexFor returns the value of a board symbol
func IndexFor(symbol rune) (int, error) {
	i, ok := symbolIndex[symbol]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSymbol, symbol)
	}
	return i, nil
}
