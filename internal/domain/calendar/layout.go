package calendar

import (
	"sort"
	"time"
)

// DefaultColumnPadPct is the horizontal gap, in percent of the day column,
// left between side-by-side events.
const DefaultColumnPadPct = 4.0

// LayoutDay partitions one day's events into side-by-side columns so that no
// two overlapping events share a column, and sizes each column as a
// percentage of the day width. The returned slice is parallel to events:
// slot i describes events[i].
//
// The algorithm is a sweep over events sorted by start time (ties broken by
// input order). Events whose interval has ended release their column; when
// the active set drains, the accumulated cluster is finalized with a column
// count equal to the maximum concurrency observed inside that cluster — not
// the day's global maximum. Each new event takes the lowest free column.
func LayoutDay(events []Event, padPct float64) []LayoutSlot {
	slots := make([]LayoutSlot, len(events))
	if len(events) == 0 {
		return slots
	}
	if padPct < 0 {
		padPct = 0
	}

	order := make([]int, len(events))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return events[order[a]].Start.Before(events[order[b]].Start)
	})

	type active struct {
		end    time.Time
		column int
	}

	var (
		actives  []active
		usedCols = map[int]bool{}
		cluster  []int // indices into events
		maxConc  int
	)

	finalize := func() {
		if maxConc < 1 {
			maxConc = 1
		}
		for _, idx := range cluster {
			slots[idx].Columns = maxConc
		}
		cluster = cluster[:0]
		maxConc = 0
	}

	release := func(sweep time.Time) {
		kept := actives[:0]
		for _, a := range actives {
			if a.end.After(sweep) {
				kept = append(kept, a)
			} else {
				delete(usedCols, a.column)
			}
		}
		actives = kept
		if len(actives) == 0 && len(cluster) > 0 {
			finalize()
		}
	}

	lowestFree := func() int {
		c := 0
		for usedCols[c] {
			c++
		}
		return c
	}

	for _, idx := range order {
		ev := events[idx]
		release(ev.Start)

		col := lowestFree()
		usedCols[col] = true
		actives = append(actives, active{end: ev.End(), column: col})
		slots[idx].Column = col
		cluster = append(cluster, idx)

		if col+1 > maxConc {
			maxConc = col + 1
		}
		if len(actives) > maxConc {
			maxConc = len(actives)
		}
	}
	if len(cluster) > 0 {
		finalize()
	}

	for i := range slots {
		cols := slots[i].Columns
		if cols < 1 {
			cols = 1
			slots[i].Columns = 1
		}
		width := (100 - float64(cols-1)*padPct) / float64(cols)
		slots[i].WidthPct = width
		slots[i].LeftPct = float64(slots[i].Column) * (width + padPct)
	}
	return slots
}
