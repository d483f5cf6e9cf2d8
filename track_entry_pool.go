// Copyright 2016, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package spindle

import (
	"github.com/tbogdala/groggy"
)

// TrackEntryPool is a TrackEntryFactory that recycles entries from
// fixed-size pages. Each page keeps an explicit free-list of cell indices;
// a freed entry's cell is pushed back for reuse. Hosts that churn through
// queued animations use it to avoid per-entry allocations.
type TrackEntryPool struct {
	pageSize int
	pages    []*trackEntryPage
}

type trackEntryPage struct {
	entries []TrackEntry
	free    []int
}

// NewTrackEntryPool creates a pool whose pages hold pageSize entries each.
func NewTrackEntryPool(pageSize int) *TrackEntryPool {
	p := new(TrackEntryPool)
	p.pageSize = pageSize
	p.pages = append(p.pages, newTrackEntryPage(pageSize))
	return p
}

func newTrackEntryPage(size int) *trackEntryPage {
	page := new(trackEntryPage)
	page.entries = make([]TrackEntry, size)
	page.free = make([]int, size)
	for i := range page.free {
		page.free[i] = size - 1 - i
	}
	return page
}

func (page *trackEntryPage) newEntry(state *AnimationState, animation *Animation) *TrackEntry {
	i := page.free[len(page.free)-1]
	page.free = page.free[:len(page.free)-1]

	entry := &page.entries[i]
	*entry = TrackEntry{}
	entry.state = state
	entry.Animation = animation
	entry.LastTime = -1
	entry.TimeScale = 1
	entry.Mix = 1
	return entry
}

func (page *trackEntryPage) owns(entry *TrackEntry) (int, bool) {
	for i := range page.entries {
		if &page.entries[i] == entry {
			return i, true
		}
	}
	return 0, false
}

// NewEntry returns an entry from the first page with a free cell, growing
// the pool by one page when all are full.
func (p *TrackEntryPool) NewEntry(state *AnimationState, animation *Animation) *TrackEntry {
	for _, page := range p.pages {
		if len(page.free) > 0 {
			return page.newEntry(state, animation)
		}
	}

	page := newTrackEntryPage(p.pageSize)
	p.pages = append(p.pages, page)
	return page.newEntry(state, animation)
}

// FreeEntry returns an entry's cell to its page's free-list.
func (p *TrackEntryPool) FreeEntry(entry *TrackEntry) {
	for _, page := range p.pages {
		if i, ok := page.owns(entry); ok {
			page.entries[i] = TrackEntry{}
			page.free = append(page.free, i)
			return
		}
	}
	groggy.Logsf("ERROR", "TrackEntryPool was asked to free an entry it does not own.")
}
