package inventory

// ItemSlot pairs a shared item definition with the quantity one owner still holds.
//
// Invariant: Quantity >= 0.
type ItemSlot struct {
	Item     *ItemDef
	Quantity int
}

// NewSlot returns a slot holding quantity units of def. Negative quantities are stored as 0.
func NewSlot(def *ItemDef, quantity int) *ItemSlot {
	if quantity < 0 {
		quantity = 0
	}
	return &ItemSlot{Item: def, Quantity: quantity}
}

// Empty reports whether no units remain.
func (s *ItemSlot) Empty() bool { return s.Quantity <= 0 }

// Consume removes one unit.
//
// Postcondition: returns true and decrements Quantity when a unit was available;
// returns false and leaves the slot unchanged otherwise.
func (s *ItemSlot) Consume() bool {
	if s.Quantity <= 0 {
		return false
	}
	s.Quantity--
	return true
}

// CloneSlots copies each slot so the result can be mutated independently of
// slots; the item definitions stay shared.
func CloneSlots(slots []*ItemSlot) []*ItemSlot {
	out := make([]*ItemSlot, len(slots))
	for i, s := range slots {
		out[i] = &ItemSlot{Item: s.Item, Quantity: s.Quantity}
	}
	return out
}
