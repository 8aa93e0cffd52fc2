package keyword

// defaultStopwords are common English words excluded from keyword extraction
// unless the configuration overrides the list.
var defaultStopwords = []string{
	"a", "about", "after", "all", "also", "an", "and", "any", "are", "as", "at",
	"be", "because", "been", "but", "by", "can", "could", "did", "do", "does",
	"for", "from", "had", "has", "have", "he", "her", "here", "his", "how",
	"i", "if", "in", "into", "is", "it", "its", "just", "like", "more", "most",
	"no", "not", "of", "on", "only", "or", "other", "our", "out", "over",
	"she", "so", "some", "such", "than", "that", "the", "their", "them", "then",
	"there", "these", "they", "this", "to", "too", "under", "up", "very",
	"was", "we", "were", "what", "when", "where", "which", "who", "why",
	"will", "with", "would", "you", "your",
}

// DefaultStopwords returns a copy of the default English stop-word list.
func DefaultStopwords() []string {
	out := make([]string, len(defaultStopwords))
	copy(out, defaultStopwords)
	return out
}
