package toasts

// Containers allocates one stacking container per position and keeps the
// toast IDs of each in creation order. It is not safe for concurrent use;
// the Manager serialises access.
type Containers struct {
	order  []Position
	stacks map[Position][]ID
}

// NewContainers returns an empty allocator.
func NewContainers() *Containers {
	return &Containers{
		stacks: make(map[Position][]ID),
	}
}

// Ensure allocates the container for pos if needed and reports whether it
// was created by this call.
func (c *Containers) Ensure(pos Position) bool {
	if _, ok := c.stacks[pos]; ok {
		return false
	}
	c.stacks[pos] = []ID{}
	c.order = append(c.order, pos)
	return true
}

// Append adds id at the end of the container for pos.
func (c *Containers) Append(pos Position, id ID) {
	c.Ensure(pos)
	c.stacks[pos] = append(c.stacks[pos], id)
}

// Remove drops id from the container for pos, keeping the order of the rest.
func (c *Containers) Remove(pos Position, id ID) bool {
	stack := c.stacks[pos]
	for i, candidate := range stack {
		if candidate == id {
			c.stacks[pos] = append(stack[:i:i], stack[i+1:]...)
			return true
		}
	}
	return false
}

// IDs returns a copy of the stacking order for pos.
func (c *Containers) IDs(pos Position) []ID {
	stack := c.stacks[pos]
	out := make([]ID, len(stack))
	copy(out, stack)
	return out
}

// Positions returns the allocated positions in allocation order.
func (c *Containers) Positions() []Position {
	out := make([]Position, len(c.order))
	copy(out, c.order)
	return out
}
