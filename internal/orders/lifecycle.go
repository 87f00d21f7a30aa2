package orders

import "github.com/cargodesk/cargodesk-backend/pkg/enums"

// stockEffect names the inventory side effect of a status transition.
type stockEffect int

const (
	// effectNone covers transitions with no inventory movement, e.g.
	// shipped to delivered.
	effectNone stockEffect = iota
	// effectReduce fires on the first departure from the warehouse.
	effectReduce
	// effectReturn fires when a departed item comes back on warehouse:
	// replenish the linked stock row, or materialize one if the item was
	// never mirrored.
	effectReturn
	// effectArrive fires when an item enters the on-warehouse status
	// without ever having departed: materialize if not yet linked.
	effectArrive
)

// transitionEffect maps an explicit old/new status pair to its inventory
// side effect. Transitions are never inferred; callers only consult this
// when the update payload carries a status different from the stored one.
func transitionEffect(oldStatus, newStatus enums.OrderItemStatus) stockEffect {
	switch {
	case !oldStatus.Departed() && newStatus.Departed():
		return effectReduce
	case oldStatus.Departed() && newStatus == enums.OrderItemStatusOnWarehouse:
		return effectReturn
	case newStatus == enums.OrderItemStatusOnWarehouse:
		return effectArrive
	default:
		return effectNone
	}
}
