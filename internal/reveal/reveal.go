// Package reveal fades sections in the first time they scroll into view.
package reveal

import "github.com/Zachkp/portfolio/internal/dom"

const (
	// AnimateClass is added to a section once it has been seen.
	AnimateClass = "animate"

	// Threshold is the fraction of a section that must be visible.
	Threshold = 0.1
)

// Entry is one intersection observation for a section.
type Entry struct {
	ID             string  `json:"id"`
	IsIntersecting bool    `json:"isIntersecting"`
	Ratio          float64 `json:"ratio"`
}

// Animator latches each section's reveal. Once revealed, a section stays
// revealed for the life of the page.
type Animator struct {
	revealed map[string]bool
}

func New() *Animator {
	return &Animator{revealed: make(map[string]bool)}
}

// Prepare hides every section and declares its transition up front.
func (a *Animator) Prepare(ids []string) []dom.Op {
	ops := make([]dom.Op, 0, 3*len(ids))
	for _, id := range ids {
		sel := dom.ID(id)
		ops = append(ops,
			dom.StyleOp(sel, "opacity", "0"),
			dom.StyleOp(sel, "transform", "translateY(20px)"),
			dom.StyleOp(sel, "transition", "all 0.6s ease-out"),
		)
	}
	return ops
}

// OnIntersect adds the animate class to sections crossing the threshold for
// the first time and clears the hidden state Prepare set inline, leaving the
// section fully opaque and untransformed. Entries that leave the viewport
// produce nothing.
func (a *Animator) OnIntersect(entries []Entry) []dom.Op {
	var ops []dom.Op
	for _, e := range entries {
		if !e.IsIntersecting || e.Ratio < Threshold || a.revealed[e.ID] {
			continue
		}
		a.revealed[e.ID] = true
		ops = append(ops, Show(e.ID)...)
	}
	return ops
}

// Revealed reports whether the section has been revealed.
func (a *Animator) Revealed(id string) bool {
	return a.revealed[id]
}

// Show is the animate state of one section.
func Show(id string) []dom.Op {
	sel := dom.ID(id)
	return []dom.Op{
		dom.AddClassOp(sel, AnimateClass),
		dom.StyleOp(sel, "opacity", "1"),
		dom.StyleOp(sel, "transform", "none"),
	}
}
