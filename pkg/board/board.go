// Package board lays a 64 symbol board string out as a grid or FEN piece placement, and reads both forms back.
package board

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	chess_codec "github.com/8ff/chesscode/pkg/codecs/chess"
)

// Grid prints the board as 8 rows of 8 space separated symbols, one row per line
func Grid(board string) (string, error) {
	squares, err := squaresOf(board)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for i, s := range squares {
		if i > 0 {
			if i%chess_codec.BoardWidth == 0 {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteRune(s)
	}
	b.WriteByte('\n')
	return b.String(), nil
}

// ParseGrid turns a printed grid back into a board string. All whitespace is ignored.
func ParseGrid(text string) (string, error) {
	board := strings.Join(strings.Fields(text), "")
	if _, err := squaresOf(board); err != nil {
		return "", err
	}
	return board, nil
}

// FEN returns the piece placement field of a FEN record, ranks separated by '/' and empty runs written as digits
func FEN(board string) (string, error) {
	squares, err := squaresOf(board)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for rank := 0; rank < chess_codec.BoardSize/chess_codec.BoardWidth; rank++ {
		if rank > 0 {
			b.WriteByte('/')
		}
		empty := 0
		for _, s := range squares[rank*chess_codec.BoardWidth : (rank+1)*chess_codec.BoardWidth] {
			if s == chess_codec.Empty {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			b.WriteRune(s)
		}
		if empty > 0 {
			b.WriteString(strconv.Itoa(empty))
		}
	}
	return b.String(), nil
}

// ParseFEN expands a FEN piece placement into a board string. A full FEN record is accepted, only its first field is read.
func ParseFEN(fen string) (string, error) {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return "", fmt.Errorf("%w: empty placement", chess_codec.ErrInvalidLength)
	}
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != chess_codec.BoardSize/chess_codec.BoardWidth {
		return "", fmt.Errorf("%w: have %d ranks, want %d", chess_codec.ErrInvalidLength, len(ranks), chess_codec.BoardSize/chess_codec.BoardWidth)
	}

	var b strings.Builder
	b.Grow(chess_codec.BoardSize)
	for i, rank := range ranks {
		width := 0
		for _, r := range rank {
			if r >= '1' && r <= '8' {
				n := int(r - '0')
				b.WriteString(strings.Repeat(string(chess_codec.Empty), n))
				width += n
				continue
			}
			if _, err := chess_codec.IndexFor(r); err != nil {
				return "", fmt.Errorf("rank %d: %w", i+1, err)
			}
			b.WriteRune(r)
			width++
		}
		if width != chess_codec.BoardWidth {
			return "", fmt.Errorf("%w: rank %d has %d squares", chess_codec.ErrInvalidLength, i+1, width)
		}
	}
	return b.String(), nil
}

// Parse reads a board in any of the supported forms: a plain 64 symbol line, a grid or a FEN placement
func Parse(text string) (string, error) {
	if strings.Contains(text, "/") {
		return ParseFEN(text)
	}
	return ParseGrid(text)
}

func squaresOf(board string) ([]rune, error) {
	if n := utf8.RuneCountInString(board); n != chess_codec.BoardSize {
		return nil, fmt.Errorf("%w: have %d symbols, want %d", chess_codec.ErrInvalidLength, n, chess_codec.BoardSize)
	}
	squares := []rune(board)
	for i, s := range squares {
		if _, err := chess_codec.IndexFor(s); err != nil {
			return nil, fmt.Errorf("square %d: %w", i, err)
		}
	}
	return squares, nil
}
