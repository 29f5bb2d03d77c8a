package bitManipulation_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/8ff/chesscode/pkg/bitManipulation"
)

func TestToBinary(t *testing.T) {
	tests := []struct {
		value    uint
		minWidth int
		want     string
	}{
		{0, 3, "000"},
		{1, 3, "001"},
		{7, 3, "111"},
		{8, 3, "1000"},
		{12, 3, "1100"},
		{5, 7, "0000101"},
		{127, 7, "1111111"},
		{0, 0, "0"},
	}
	for _, tt := range tests {
		if got := bitManipulation.ToBinary(tt.value, tt.minWidth); got != tt.want {
			t.Errorf("ToBinary(%d, %d) = %q, want %q", tt.value, tt.minWidth, got, tt.want)
		}
		if got := bitManipulation.Width(tt.value, tt.minWidth); tt.value > 0 && got != len(tt.want) {
			t.Errorf("Width(%d, %d) = %d, want %d", tt.value, tt.minWidth, got, len(tt.want))
		}
	}
}

func TestAppendAndRead(t *testing.T) {
	seq := bitManipulation.NewSequence(16)
	seq.Append('A', 7)
	seq.AppendNatural(3, 3)
	seq.AppendNatural(10, 3)

	if got, want := seq.String(), "1000001"+"011"+"1010"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	if seq.Len() != 14 || seq.Remaining() != 14 {
		t.Fatalf("Len/Remaining = %d/%d, want 14/14", seq.Len(), seq.Remaining())
	}

	v, err := seq.Peek(4)
	if err != nil || v != 8 {
		t.Fatalf("Peek(4) = %d, %v, want 8, nil", v, err)
	}
	v, err = seq.Read(7)
	if err != nil || v != 'A' {
		t.Fatalf("Read(7) = %d, %v, want %d, nil", v, err, 'A')
	}
	if n := seq.Skip(3); n != 3 {
		t.Fatalf("Skip(3) = %d, want 3", n)
	}
	if _, err := seq.Read(5); !errors.Is(err, bitManipulation.ErrShortRead) {
		t.Fatalf("Read past end returned %v, want ErrShortRead", err)
	}
	if v := seq.ReadPadded(3); v != 5 {
		t.Fatalf("ReadPadded(3) = %d, want 5", v)
	}
	// one bit left: 0 -> 000
	if v := seq.ReadPadded(3); v != 0 || seq.Remaining() != 0 {
		t.Fatalf("ReadPadded(3) = %d with %d left, want 0 with 0 left", v, seq.Remaining())
	}
	if v := seq.ReadPadded(3); v != 0 {
		t.Fatalf("ReadPadded on empty sequence = %d, want 0", v)
	}
	if n := seq.Skip(10); n != 0 {
		t.Fatalf("Skip on empty sequence = %d, want 0", n)
	}
}

func TestReadPaddedShiftsRemainder(t *testing.T) {
	seq, err := bitManipulation.StringToSequence("11")
	if err != nil {
		t.Fatal(err)
	}
	if v := seq.ReadPadded(3); v != 6 {
		t.Fatalf("ReadPadded(3) of 11 = %d, want 6", v)
	}
}

func TestStringToSequence(t *testing.T) {
	if _, err := bitManipulation.StringToSequence("0102"); err == nil {
		t.Fatal("expected error for non-binary digit")
	}
	seq, err := bitManipulation.StringToSequence("")
	if err != nil || seq.Len() != 0 {
		t.Fatalf("empty string gave %v, %v", seq, err)
	}
}

func TestRandomRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(789))
	values := make([]uint, 2000)
	widths := make([]int, len(values))
	seq := bitManipulation.NewSequence(0)
	for i := range values {
		widths[i] = 1 + rng.Intn(16)
		values[i] = uint(rng.Intn(1 << uint(widths[i])))
		seq.Append(values[i], widths[i])
	}
	for i := range values {
		v, err := seq.Read(widths[i])
		if err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		if v != values[i] {
			t.Fatalf("read %d: got %d, want %d", i, v, values[i])
		}
	}
	if seq.Remaining() != 0 {
		t.Fatalf("%d bits left over", seq.Remaining())
	}
}
