package crawl

import (
	"container/heap"
	"strings"
	"sync"

	"github.com/fwojciec/cannibal"
	"github.com/fwojciec/cannibal/bloom"
)

// Compile-time interface verification.
var _ cannibal.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory breadth-first URL frontier. Links pop
// shallowest first and, within a depth, in the order they were pushed,
// so a crawl over unchanged pages visits them in the same order.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Set
	queue *linkHeap
	seq   uint64
}

// NewFrontier creates a new Frontier sized for n expected URLs.
func NewFrontier(n uint) *Frontier {
	h := &linkHeap{}
	heap.Init(h)
	return &Frontier{
		seen:  bloom.NewSet(n),
		queue: h,
	}
}

// Push adds a link to the frontier.
// Returns false if the URL has already been seen.
// URL fragments are stripped before deduplication - URLs differing only by fragment
// are considered duplicates.
func (f *Frontier) Push(link cannibal.DiscoveredLink) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	link.URL = stripFragment(link.URL)
	if !f.seen.Add(link.URL) {
		return false
	}

	f.seq++
	heap.Push(f.queue, queuedLink{DiscoveredLink: link, seq: f.seq})
	return true
}

// Pop returns the shallowest queued link.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (cannibal.DiscoveredLink, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queue.Len() == 0 {
		return cannibal.DiscoveredLink{}, false
	}
	item, _ := heap.Pop(f.queue).(queuedLink)
	return item.DiscoveredLink, true
}

// Len returns the number of URLs in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

// Seen returns true if the URL has been processed or queued.
// URL fragments are stripped before checking.
func (f *Frontier) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Contains(stripFragment(rawURL))
}

func stripFragment(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}

type queuedLink struct {
	cannibal.DiscoveredLink
	seq uint64
}

// linkHeap implements heap.Interface ordered by depth, then push order.
type linkHeap []queuedLink

func (h linkHeap) Len() int { return len(h) }

func (h linkHeap) Less(i, j int) bool {
	if h[i].Depth != h[j].Depth {
		return h[i].Depth < h[j].Depth
	}
	return h[i].seq < h[j].seq
}

func (h linkHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *linkHeap) Push(x any) {
	link, _ := x.(queuedLink)
	*h = append(*h, link)
}

func (h *linkHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
