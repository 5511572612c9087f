package domain

// TaggedToken is a token paired with its normalized (stemmed) form.
type TaggedToken struct {
	Word string
	Stem string
}

// Sentence is a single input sentence. Its identity is its position in the
// input sequence, so it carries no id of its own.
type Sentence struct {
	Text   string
	Tokens []TaggedToken
}

// Bigram is an ordered pair of consecutive normalized forms.
type Bigram [2]string

// BigramEntry is one position of a fixed bigram vocabulary.
type BigramEntry struct {
	Bigram Bigram
	Weight float64
}

// WordVectors is a pretrained word-vector lookup.
type WordVectors interface {
	Contains(term string) bool
	Vector(term string) []float64
	Dimension() int
}

// FrequencyTable exposes the relative frequency of vocabulary terms.
type FrequencyTable interface {
	Frequency(term string) (float64, bool)
}

// SmoothingResource is everything the smoothed-aggregate strategy needs from a
// pretrained model: vectors, frequencies and the precomputed unit direction
// that is removed from every sentence vector.
type SmoothingResource interface {
	WordVectors
	FrequencyTable
	DominantDirection() []float64
}

// Reducer projects a batch of vectors into a lower-dimensional space.
// Implementations are fitted elsewhere and must not change between calls.
type Reducer interface {
	Transform(batch [][]float64) ([][]float64, error)
	Dimension() int
}

// SentenceRecord is a kept sentence stored next to its vector.
type SentenceRecord struct {
	Index int
	Text  string
}

// SearchResult represents a matching sentence with a similarity score.
type SearchResult struct {
	Record SentenceRecord
	Score  float64
}

// Summarizer picks representative sentences from a representation and
// returns their original indices in input order.
type Summarizer interface {
	Summarize(rep Representation, maxSentences int) ([]int, error)
}
