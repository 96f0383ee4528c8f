package ui

// Base tracks a panel's outer size and keyboard focus. Embed it in panel
// models and override SetSize when the panel must react to resizing.
type Base struct {
	width, height int
	focused       bool
}

// Focus gives the panel keyboard focus.
func (b *Base) Focus() { b.focused = true }

// Blur removes keyboard focus.
func (b *Base) Blur() { b.focused = false }

// Focused reports whether the panel has keyboard focus.
func (b Base) Focused() bool { return b.focused }

// SetSize sets the outer panel size.
func (b *Base) SetSize(width, height int) {
	b.width = width
	b.height = height
}

// Width returns the outer width.
func (b Base) Width() int { return b.width }

// Height returns the outer height.
func (b Base) Height() int { return b.height }

// InnerWidth is the width inside the panel border.
func (b Base) InnerWidth() int {
	return max(b.width-BorderWidth, 0)
}

// ContentHeight is the height left for rows once overhead lines are taken.
func (b Base) ContentHeight(overhead int) int {
	return max(b.height-overhead, 0)
}
