// ABOUTME: Tests for ICY metadata block encoding
// ABOUTME: Verifies padding, length byte calculation, truncation, and decoding
package icy

import (
	"errors"
	"strings"
	"testing"

	"github.com/harper/listenmoe-ingest/internal/domain/track"
)

func TestBlock_Empty(t *testing.T) {
	result := Block("")
	if len(result) != 1 || result[0] != 0x00 {
		t.Errorf("empty string should produce single zero byte, got %v", result)
	}
}

func TestBlock_TrackTitle(t *testing.T) {
	info := track.Info{Artist: "LiSA", Title: "Gurenge"}
	meta := info.ICY() // StreamTitle='LiSA - Gurenge'; is 29 bytes

	result := Block(meta)

	if len(result) != 33 {
		t.Errorf("expected 33 bytes, got %d", len(result))
	}
	if result[0] != 2 {
		t.Errorf("expected length byte 2, got %d", result[0])
	}
	if got := string(result[1 : 1+len(meta)]); got != meta {
		t.Errorf("expected %q, got %q", meta, got)
	}
	for i := 1 + len(meta); i < len(result); i++ {
		if result[i] != 0x00 {
			t.Errorf("byte %d should be 0x00, got 0x%02x", i, result[i])
		}
	}
}

func TestBlock_ExactMultiple(t *testing.T) {
	result := Block(strings.Repeat("a", 32))
	if result[0] != 2 || len(result) != 33 {
		t.Errorf("32 bytes should need no padding, got length byte %d and %d bytes", result[0], len(result))
	}
}

func TestBlock_Truncation(t *testing.T) {
	result := Block(strings.Repeat("x", 5000))

	if result[0] != 255 {
		t.Errorf("expected length byte 255, got %d", result[0])
	}

	expected := 1 + MaxPayload
	if len(result) != expected {
		t.Errorf("expected %d bytes, got %d", expected, len(result))
	}
}

func TestParse(t *testing.T) {
	meta := "StreamTitle='Aimer - Kataomoi';"
	block := append(Block(meta), 0xFF, 0xFB)

	got, n, err := Parse(block)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got != meta {
		t.Errorf("expected %q, got %q", meta, got)
	}
	if n != len(block)-2 {
		t.Errorf("expected to consume %d bytes, got %d", len(block)-2, n)
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"empty", nil},
		{"short payload", []byte{0x02, 'a', 'b'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := Parse(tt.input); !errors.Is(err, ErrMalformed) {
				t.Errorf("expected ErrMalformed, got %v", err)
			}
		})
	}
}
