package cart

import (
	"fmt"

	"food-corner/internal/models"
)

// ValidationError reports a bad field on a cart mutation or a submission.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Line is one cart entry: the menu item snapshot taken when the line was
// first set, the chosen quantity and an optional modifier label.
type Line struct {
	Item     models.MenuItem
	Quantity int
	Modifier string
}

// Cart holds a customer's in-progress selection. It keeps at most one line
// per menu item and remembers insertion order. Pure in-memory state; callers
// that share a cart across goroutines must serialize access themselves.
type Cart struct {
	lines map[int64]*Line
	order []int64
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{lines: make(map[int64]*Line)}
}

// SetLine records the quantity and modifier for a menu item. Setting an item
// that is already in the cart updates the existing line in place; a duplicate
// line is never appended. Negative quantities clamp to zero. The modifier
// must be one of the item's modifier labels or empty, even while the
// quantity is zero.
func (c *Cart) SetLine(item models.MenuItem, quantity int, modifier string) error {
	if modifier != "" && !item.HasModifier(modifier) {
		return &ValidationError{Field: "modifier", Message: fmt.Sprintf("%q is not offered for %s", modifier, item.Name)}
	}
	if quantity < 0 {
		quantity = 0
	}

	if line, ok := c.lines[item.ID]; ok {
		line.Quantity = quantity
		line.Modifier = modifier
		return nil
	}

	c.lines[item.ID] = &Line{Item: item, Quantity: quantity, Modifier: modifier}
	c.order = append(c.order, item.ID)
	return nil
}

// SubmittableLines returns the lines with quantity above zero, in the order
// the items were first added. Zero-quantity lines stay in the cart but never
// appear here.
func (c *Cart) SubmittableLines() []Line {
	var lines []Line
	for _, id := range c.order {
		line := c.lines[id]
		if line.Quantity > 0 {
			lines = append(lines, *line)
		}
	}
	return lines
}

// Total returns the cart total over the submittable lines.
func (c *Cart) Total() float64 {
	total := 0.0
	for _, line := range c.SubmittableLines() {
		total += line.Item.Price * float64(line.Quantity)
	}
	return total
}

// Clear resets the cart to empty.
func (c *Cart) Clear() {
	c.lines = make(map[int64]*Line)
	c.order = nil
}

// RemoveLines deletes the given lines from the cart. A line whose quantity
// or modifier no longer matches the snapshot stays put, so edits made while
// a submission was in flight survive for the next one.
func (c *Cart) RemoveLines(lines []Line) {
	for _, line := range lines {
		current, ok := c.lines[line.Item.ID]
		if !ok || current.Quantity != line.Quantity || current.Modifier != line.Modifier {
			continue
		}
		delete(c.lines, line.Item.ID)
		for i, id := range c.order {
			if id == line.Item.ID {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
	}
}
