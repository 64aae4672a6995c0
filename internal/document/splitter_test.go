package document

import (
	"strings"
	"testing"
)

func TestSplitShortTextSingleChunk(t *testing.T) {
	s := NewSplitter(10000, 1000)

	input := strings.Repeat("a", 50)
	chunks := s.Split(input)

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != input {
		t.Errorf("expected chunk to equal input, got %q", chunks[0])
	}
}

func TestSplitEmptyText(t *testing.T) {
	s := NewSplitter(10000, 1000)

	if chunks := s.Split(""); len(chunks) != 0 {
		t.Errorf("expected no chunks for empty input, got %d", len(chunks))
	}
}

func TestSplitDeterministic(t *testing.T) {
	s := NewSplitter(100, 20)
	input := strings.Repeat("the quick brown fox jumps over the lazy dog ", 50)

	first := s.Split(input)
	second := s.Split(input)

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestSplitChunkSizes(t *testing.T) {
	s := NewSplitter(100, 20)
	input := strings.Repeat("x", 1000)

	chunks := s.Split(input)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if got := len([]rune(chunk)); got > 100 {
			t.Errorf("chunk %d exceeds chunk size: %d runes", i, got)
		}
	}
}

func TestSplitRoundTrip(t *testing.T) {
	s := NewSplitter(100, 20)
	input := strings.Repeat("pack my box with five dozen liquor jugs. ", 60)

	chunks := s.Split(input)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	// Dropping the overlap prefix from every chunk after the first must
	// reconstruct the input exactly.
	var b strings.Builder
	b.WriteString(chunks[0])
	for _, chunk := range chunks[1:] {
		runes := []rune(chunk)
		if len(runes) < s.Overlap() {
			t.Fatalf("chunk shorter than overlap: %d runes", len(runes))
		}
		b.WriteString(string(runes[s.Overlap():]))
	}

	if b.String() != input {
		t.Errorf("round trip did not reconstruct input: got %d chars, want %d", b.Len(), len(input))
	}
}

func TestSplitOverlapRepeatsPreviousTail(t *testing.T) {
	s := NewSplitter(10, 3)
	input := "abcdefghijklmnopqrst"

	chunks := s.Split(input)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1])
		tail := string(prev[len(prev)-3:])
		if !strings.HasPrefix(chunks[i], tail) {
			t.Errorf("chunk %d does not start with previous chunk's tail: %q vs %q", i, chunks[i], tail)
		}
	}
}

func TestNewSplitterDefaults(t *testing.T) {
	s := NewSplitter(0, -1)

	if s.ChunkSize() != DefaultChunkSize {
		t.Errorf("expected default chunk size %d, got %d", DefaultChunkSize, s.ChunkSize())
	}
	if s.Overlap() != DefaultChunkOverlap {
		t.Errorf("expected default overlap %d, got %d", DefaultChunkOverlap, s.Overlap())
	}

	// Overlap must never prevent the window from advancing.
	s = NewSplitter(50, 200)
	if s.Overlap() >= s.ChunkSize() {
		t.Errorf("overlap %d not smaller than chunk size %d", s.Overlap(), s.ChunkSize())
	}
}
