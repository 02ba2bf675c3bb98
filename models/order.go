package models

import "sort"

// Order maps an item name to the requested quantity.
// Quantities are always >= 1; an item that drops to zero is removed.
type Order map[string]int

// OrderLine is one item of an order, used for display
type OrderLine struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

// NewOrder returns an empty order
func NewOrder() Order {
	return Order{}
}

// Increment adds one unit of an item
func (o Order) Increment(item string) {
	o[item]++
}

// Decrement removes one unit of an item. Absent items are left alone.
func (o Order) Decrement(item string) {
	qty, ok := o[item]
	if !ok {
		return
	}
	if qty <= 1 {
		delete(o, item)
		return
	}
	o[item] = qty - 1
}

// Clear removes every item
func (o Order) Clear() {
	for item := range o {
		delete(o, item)
	}
}

// IsEmpty reports whether no item has a positive quantity
func (o Order) IsEmpty() bool {
	for _, qty := range o {
		if qty > 0 {
			return false
		}
	}
	return true
}

// Lines returns the items with a positive quantity sorted by name
func (o Order) Lines() []OrderLine {
	lines := make([]OrderLine, 0, len(o))
	for item, qty := range o {
		if qty > 0 {
			lines = append(lines, OrderLine{Item: item, Quantity: qty})
		}
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].Item < lines[j].Item
	})
	return lines
}

// Clone returns an independent copy
func (o Order) Clone() Order {
	c := make(Order, len(o))
	for item, qty := range o {
		c[item] = qty
	}
	return c
}
