package dagset

// Order identifies the active iteration order of a StaticSet.
// Exactly one order is active per set instance.
type Order uint8

const (
	// OrderDesc iterates ids descending. This is the SpanSet's native
	// storage order and the default.
	OrderDesc Order = iota
	// OrderAsc iterates ids ascending.
	OrderAsc
	// OrderCustom follows an explicit IdList's traversal order.
	OrderCustom
	// OrderCustomReversed follows an explicit IdList back to front.
	OrderCustomReversed
)

func (o Order) String() string {
	switch o {
	case OrderDesc:
		return "desc"
	case OrderAsc:
		return "asc"
	case OrderCustom:
		return "custom"
	case OrderCustomReversed:
		return "custom-reversed"
	default:
		return "unknown"
	}
}
