package search

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps during a search.
type SearchMonitor interface {
	Start(query string)
	AfterQueryEmbedding(vector []float32)
	AfterExpansion(terms []string)
	AfterScoring(candidates int)
	Finish(results []ScoredResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                  {}
func (n *noopMonitor) AfterQueryEmbedding(_ []float32) {}
func (n *noopMonitor) AfterExpansion(_ []string)       {}
func (n *noopMonitor) AfterScoring(_ int)              {}
func (n *noopMonitor) Finish(_ []ScoredResult)         {}
