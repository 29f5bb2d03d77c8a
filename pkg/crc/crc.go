package crc

import (
	"fmt"
	"strconv"
	"strings"
)

// Check if the byte and privided crc16 checksum is valid
func Match16(input []byte, checksum uint16) bool {
	return Encode16(input) == checksum
}

// Function which does crc16 checksum on input byte array
func Encode16(input []byte) uint16 {
	var crc uint16 = 0xFFFF
	for _, b := range input {
		crc ^= uint16(b)
		for i := 0; i < 8; i++ {
			if crc&0x0001 != 0 {
				crc = (crc >> 1) ^ 0xA001
			} else {
				crc >>= 1
			}
		}
	}
	return crc
}

// Board16 is the crc16 of a board string
func Board16(board string) uint16 {
	return Encode16([]byte(board))
}

// Function that appends the crc16 of board as 4 hex digits, separated by a space
func AppendBoard16(board string) string {
	return fmt.Sprintf("%s %04x", board, Board16(board))
}

// Function that strips the appended crc16 from line and verifies it, if valid returns the board without the checksum
func StripBoard16(line string) (string, error) {
	line = strings.TrimSpace(line)
	i := strings.LastIndexByte(line, ' ')
	if i < 0 {
		return "", fmt.Errorf("checksum is missing")
	}
	board, sum := strings.TrimSpace(line[:i]), line[i+1:]
	checksum, err := strconv.ParseUint(sum, 16, 16)
	if err != nil {
		return "", fmt.Errorf("invalid checksum %q: %w", sum, err)
	}
	if !Match16([]byte(board), uint16(checksum)) {
		return "", fmt.Errorf("checksum does not match")
	}
	return board, nil
}
