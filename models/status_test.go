package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderTransitions(t *testing.T) {
	// Forward path.
	assert.True(t, CanTransitionOrder(OrderPending, OrderInProgress))
	assert.True(t, CanTransitionOrder(OrderInProgress, OrderServed))
	assert.True(t, CanTransitionOrder(OrderServed, OrderCompleted))

	// Cancellation is reachable from every non-terminal state.
	assert.True(t, CanTransitionOrder(OrderPending, OrderCanceled))
	assert.True(t, CanTransitionOrder(OrderInProgress, OrderCanceled))
	assert.True(t, CanTransitionOrder(OrderServed, OrderCanceled))

	// No skipping forward, no going back.
	assert.False(t, CanTransitionOrder(OrderPending, OrderServed))
	assert.False(t, CanTransitionOrder(OrderPending, OrderCompleted))
	assert.False(t, CanTransitionOrder(OrderServed, OrderInProgress))

	// Terminal states stay terminal.
	assert.False(t, CanTransitionOrder(OrderCompleted, OrderCanceled))
	assert.False(t, CanTransitionOrder(OrderCanceled, OrderPending))
	assert.False(t, CanTransitionOrder(OrderCanceled, OrderInProgress))
}

func TestOrderTransitionSameStatusIsNoOp(t *testing.T) {
	for _, status := range []string{OrderPending, OrderInProgress, OrderServed, OrderCompleted, OrderCanceled} {
		assert.True(t, CanTransitionOrder(status, status), "status %q", status)
	}
}

func TestOrderItemTransitions(t *testing.T) {
	assert.True(t, CanTransitionOrderItem(OrderPending, OrderInProgress))
	assert.True(t, CanTransitionOrderItem(OrderInProgress, OrderServed))
	assert.True(t, CanTransitionOrderItem(OrderServed, OrderCompleted))

	// The kitchen may complete an item without a served step.
	assert.True(t, CanTransitionOrderItem(OrderInProgress, OrderCompleted))

	// Items are never canceled individually.
	assert.False(t, CanTransitionOrderItem(OrderPending, OrderCanceled))
	assert.False(t, CanTransitionOrderItem(OrderInProgress, OrderCanceled))
	assert.False(t, ValidOrderItemStatus(OrderCanceled))

	assert.False(t, CanTransitionOrderItem(OrderPending, OrderCompleted))
	assert.False(t, CanTransitionOrderItem(OrderCompleted, OrderInProgress))
}

func TestCheckOrderTransitionErrors(t *testing.T) {
	assert.NoError(t, CheckOrderTransition(OrderPending, OrderInProgress))

	err := CheckOrderTransition(OrderPending, "burnt")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown order status")

	err = CheckOrderTransition(OrderCompleted, OrderCanceled)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot move")

	err = CheckOrderItemTransition(OrderPending, OrderCanceled)
	assert.Error(t, err)
}

func TestValidVocabularies(t *testing.T) {
	assert.True(t, ValidTableStatus(TableCleaning))
	assert.False(t, ValidTableStatus("closed"))

	assert.True(t, ValidTableSize(TableSizeBooth))
	assert.False(t, ValidTableSize("huge"))

	assert.True(t, ValidCourseType(CourseDrink))
	assert.False(t, ValidCourseType("snack"))

	assert.True(t, ValidStaffRole(RoleKitchen))
	assert.False(t, ValidStaffRole("owner"))
}
