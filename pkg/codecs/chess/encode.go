package chess_codec

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/8ff/chesscode/pkg/bitManipulation"
)

// Encode packs text into a 64 symbol board string.
// Messages of about 30 characters fit, up to 36 when the bits line up well for 4 bit symbols.
func Encode(text string) (string, error) {
	for i, r := range text {
		if r >= utf8.RuneSelf {
			return "", fmt.Errorf("%w: %q at byte %d", ErrNonASCIIInput, r, i)
		}
	}
	// 63 wide symbols and a 3 bit tail is the most a board can hold
	if len(text)*charBits > maxBoardBits {
		return "", fmt.Errorf("%w: %d characters need more than %d squares", ErrMessageTooLarge, len(text), BoardSize)
	}

	stream := bitManipulation.NewSequence(len(text) * charBits)
	for i := 0; i < len(text); i++ {
		stream.Append(uint(text[i]), charBits)
	}

	squares, err := pack(stream)
	if err != nil {
		return "", err
	}

	// Fill empty spaces in the board
	var board strings.Builder
	board.Grow(BoardSize)
	for _, s := range squares {
		board.WriteRune(s)
	}
	for i := len(squares); i < BoardSize; i++ {
		board.WriteRune(Empty)
	}
	return board.String(), nil
}

// pack cuts the stream into symbols. The last symbol always holds the final 0-3 bits, zero padded to 3 bits.
func pack(stream *bitManipulation.Sequence) ([]rune, error) {
	squares := make([]rune, 0, BoardSize)
	for {
		if len(squares) == BoardSize { // there is always at least one more symbol to write
			return nil, fmt.Errorf("%w: %d characters need more than %d squares", ErrMessageTooLarge, stream.Len()/charBits, BoardSize)
		}

		if stream.Remaining() < maxSymbolBits {
			squares = append(squares, symbols[stream.ReadPadded(minSymbolBits)])
			return squares, nil
		}

		v, err := stream.Peek(maxSymbolBits)
		if err != nil {
			return nil, err
		}
		if v >= wideSymbol && v < uint(len(symbols)) { // If it can hold 4 bits, do it
			stream.Skip(maxSymbolBits)
		} else {
			if v, err = stream.Read(minSymbolBits); err != nil {
				return nil, err
			}
		}
		squares = append(squares, symbols[v])
	}
}
