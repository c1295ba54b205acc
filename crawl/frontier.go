package crawl

import (
	"container/heap"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/fwojciec/poiscout"
)

// Compile-time interface verification.
var _ poiscout.Frontier = (*Frontier)(nil)

// Frontier is an in-memory priority queue of crawl candidates with an exact
// visited set. Higher priority pops first; equal priorities pop in insertion
// order. Push never deduplicates - the same URL may sit in the queue more
// than once, possibly at different priorities - so callers resolve
// duplicates at pop time via Visited.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu      sync.Mutex
	queue   *urlHeap
	seq     uint64
	visited mapset.Set[string]
}

// NewFrontier creates an empty Frontier.
func NewFrontier() *Frontier {
	h := &urlHeap{}
	heap.Init(h)
	return &Frontier{
		queue:   h,
		visited: mapset.NewThreadUnsafeSet[string](),
	}
}

// Push adds a candidate to the frontier.
func (f *Frontier) Push(u poiscout.ScoredURL) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	heap.Push(f.queue, queuedURL{ScoredURL: u, seq: f.seq})
}

// Pop removes and returns the highest-priority candidate.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (poiscout.ScoredURL, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queue.Len() == 0 {
		return poiscout.ScoredURL{}, false
	}
	q, _ := heap.Pop(f.queue).(queuedURL)
	return q.ScoredURL, true
}

// Len returns the number of queued candidates, counting duplicates.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

// MarkVisited records that url has been fully processed.
// Marking a URL twice is a no-op.
func (f *Frontier) MarkVisited(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visited.Add(url)
}

// Visited returns true if url has been marked visited.
func (f *Frontier) Visited(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visited.Contains(url)
}

// queuedURL pairs a candidate with its insertion sequence number so that
// equal priorities pop first-in first-out.
type queuedURL struct {
	poiscout.ScoredURL
	seq uint64
}

// urlHeap implements heap.Interface for the candidate priority queue.
// Higher priority candidates are popped first.
type urlHeap []queuedURL

func (h urlHeap) Len() int { return len(h) }

// Less returns true if i pops before j (max-heap, FIFO on ties).
func (h urlHeap) Less(i, j int) bool {
	if h[i].Priority != h[j].Priority {
		return h[i].Priority > h[j].Priority
	}
	return h[i].seq < h[j].seq
}

func (h urlHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *urlHeap) Push(x any) {
	q, _ := x.(queuedURL)
	*h = append(*h, q)
}

func (h *urlHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
