// Package wizard orchestrates the CV authoring flow: section navigation,
// template choice, generation, save, and export.
package wizard

// Navigator tracks which section is active during step-by-step editing.
// Movement is strictly sequential; there is no direct-jump operation.
type Navigator struct {
	index int
	last  int
}

// NewNavigator creates a navigator over sectionCount sections, starting at 0.
func NewNavigator(sectionCount int) *Navigator {
	last := sectionCount - 1
	if last < 0 {
		last = 0
	}
	return &Navigator{last: last}
}

// Index returns the current section index.
func (n *Navigator) Index() int {
	return n.index
}

// Next advances one section, clamped to the last index.
func (n *Navigator) Next() int {
	if n.index < n.last {
		n.index++
	}
	return n.index
}

// Previous steps back one section, clamped to 0.
func (n *Navigator) Previous() int {
	if n.index > 0 {
		n.index--
	}
	return n.index
}

// IsFirst reports whether the current section is the first one.
func (n *Navigator) IsFirst() bool {
	return n.index == 0
}

// IsLast reports whether the current section is the last one.
func (n *Navigator) IsLast() bool {
	return n.index == n.last
}
