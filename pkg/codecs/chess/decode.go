package chess_codec

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/8ff/chesscode/pkg/bitManipulation"
)

// Decode unpacks a board string produced by Encode. The board must be exactly 64 symbols from SymbolTable.
//
// Trailing NUL characters are dropped since they cannot be told apart from empty squares at the end of the board.
func Decode(board string) (string, error) {
	if n := utf8.RuneCountInString(board); n != BoardSize {
		return "", fmt.Errorf("%w: have %d symbols, want %d", ErrInvalidLength, n, BoardSize)
	}

	// Values 0-7 come back as 3 bits and 8-12 as 4 bits
	stream := bitManipulation.NewSequence(BoardSize * maxSymbolBits)
	square := 0
	for _, r := range board {
		v, err := IndexFor(r)
		if err != nil {
			return "", fmt.Errorf("square %d: %w", square, err)
		}
		stream.AppendNatural(uint(v), minSymbolBits)
		square++
	}

	text := make([]byte, 0, stream.Len()/charBits+1)
	for stream.Remaining() > 0 {
		n := charBits
		if n > stream.Remaining() {
			n = stream.Remaining()
		}
		c, err := stream.Read(n)
		if err != nil {
			return "", err
		}
		text = append(text, byte(c))
	}

	// Right-most NULs are empty squares on the board, not part of the message
	return strings.TrimRight(string(text), "\x00"), nil
}
