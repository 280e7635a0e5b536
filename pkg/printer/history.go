package printer

import (
	"sync"

	"github.com/samber/lo"
)

func NewHistory() *History {
	return &History{max: 10}
}

// History keeps the most recent jobs for the status surfaces.
type History struct {
	mu    sync.Mutex
	max   int
	items []*Job
}

func (h *History) Add(j *Job) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.items = append(h.items, j)
	if len(h.items) > h.max {
		h.items = h.items[1:]
	}
}

func (h *History) Jobs() []*Job {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]*Job, len(h.items))
	copy(out, h.items)
	return out
}

func (h *History) Curr() *Job {
	h.mu.Lock()
	defer h.mu.Unlock()

	j, _ := lo.Last(h.items)
	return j
}

func (h *History) Prev() *Job {
	h.mu.Lock()
	defer h.mu.Unlock()

	j, _ := lo.Nth(h.items, -2)
	return j
}
