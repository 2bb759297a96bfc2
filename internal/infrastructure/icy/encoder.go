// ABOUTME: ICY metadata blocks for relays that inject now-playing into Shoutcast streams
// ABOUTME: Encodes and decodes the length-prefixed, 16-byte padded block format
package icy

import (
	"bytes"
	"errors"
	"fmt"
)

const (
	blockUnit = 16
	maxBlocks = 255
	// MaxPayload is the largest text a single block can carry.
	MaxPayload = maxBlocks * blockUnit
)

var ErrMalformed = errors.New("icy: malformed metadata block")

// Block encodes text as one metadata block: a length byte counting 16-byte
// units, then the text zero-padded to that length. Text beyond MaxPayload is
// dropped. Empty text encodes as the single byte 0x00.
func Block(text string) []byte {
	payload := []byte(text)
	if len(payload) > MaxPayload {
		payload = payload[:MaxPayload]
	}

	units := (len(payload) + blockUnit - 1) / blockUnit

	out := make([]byte, 1+units*blockUnit)
	out[0] = byte(units)
	copy(out[1:], payload)
	return out
}

// Parse decodes a block produced by Block and returns its text without
// padding, plus the number of bytes consumed.
func Parse(block []byte) (string, int, error) {
	if len(block) == 0 {
		return "", 0, fmt.Errorf("%w: empty input", ErrMalformed)
	}

	size := int(block[0]) * blockUnit
	if len(block) < 1+size {
		return "", 0, fmt.Errorf("%w: want %d payload bytes, have %d", ErrMalformed, size, len(block)-1)
	}

	payload := bytes.TrimRight(block[1:1+size], "\x00")
	return string(payload), 1 + size, nil
}
