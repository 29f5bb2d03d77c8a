package chess_codec

import "errors"

var (
	ErrNonASCIIInput   = errors.New("chess: non-ASCII input")
	ErrMessageTooLarge = errors.New("chess: message too large")
	ErrInvalidLength   = errors.New("chess: invalid board length")
	ErrUnknownSymbol   = errors.New("chess: unknown symbol")
)
