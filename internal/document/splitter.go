package document

const (
	// DefaultChunkSize is the default chunk size in runes. Deliberately
	// large: chunks land at roughly page granularity so a single chunk
	// carries enough context for generation.
	DefaultChunkSize = 10000

	// DefaultChunkOverlap is the default overlap between consecutive chunks.
	DefaultChunkOverlap = 1000
)

// Splitter produces fixed-size overlapping chunks from a text using a
// sliding window over runes. Splitting is deterministic: the same input
// always yields the same chunk sequence.
type Splitter struct {
	chunkSize int
	overlap   int
}

// NewSplitter returns a Splitter with the given chunk size and overlap.
// Non-positive sizes and overlaps that would prevent the window from
// advancing are replaced with the defaults.
func NewSplitter(chunkSize, overlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = DefaultChunkOverlap
		if overlap >= chunkSize {
			overlap = chunkSize / 10
		}
	}
	return &Splitter{chunkSize: chunkSize, overlap: overlap}
}

// ChunkSize returns the configured chunk size in runes.
func (s *Splitter) ChunkSize() int { return s.chunkSize }

// Overlap returns the configured overlap in runes.
func (s *Splitter) Overlap() int { return s.overlap }

// Split breaks text into chunks of at most chunkSize runes, with each chunk
// after the first repeating the last overlap runes of its predecessor.
// Dropping the first overlap runes of every chunk after the first and
// concatenating reconstructs the input exactly. Text shorter than the chunk
// size yields a single chunk equal to the input. Empty text yields no chunks.
func (s *Splitter) Split(text string) []string {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	if len(runes) <= s.chunkSize {
		return []string{text}
	}

	var chunks []string
	for i := 0; i < len(runes); i += s.chunkSize - s.overlap {
		end := i + s.chunkSize
		if end > len(runes) {
			end = len(runes)
		}

		chunks = append(chunks, string(runes[i:end]))

		if end >= len(runes) {
			break
		}
	}

	return chunks
}
