package classify

import "strings"

// phoneAccumulator collects "-"-bearing fragments and collapses them into a
// single "A & B" string at the instant the second number arrives. Numbers
// seen after the collapse are dropped.
type phoneAccumulator struct {
	nums      []string
	joined    string
	collapsed bool
}

func (p *phoneAccumulator) add(s string) {
	if p.collapsed {
		return
	}
	p.nums = append(p.nums, s)
	if len(p.nums) == 2 {
		p.joined = strings.Join(p.nums, " & ")
		p.collapsed = true
	}
}

func (p *phoneAccumulator) value() string {
	if p.collapsed {
		return p.joined
	}
	return strings.Join(p.nums, " & ")
}

// cityTracker is overwritten on every match, so only the last matching
// fragment in the sequence survives. Its final value, possibly empty, is
// recorded exactly once per classification run.
type cityTracker struct {
	city string
}

func (c *cityTracker) set(s string) { c.city = s }

func (c *cityTracker) value() string { return c.city }

// stateWindow drops the earliest entry immediately after an append grows the
// list to two, so at most one value from before the latest match survives.
type stateWindow struct {
	vals []string
}

func (w *stateWindow) add(s string) {
	w.vals = append(w.vals, s)
	if len(w.vals) == 2 {
		w.vals = w.vals[1:]
	}
}

func (w *stateWindow) values() []string { return w.vals }
