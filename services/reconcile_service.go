package services

import (
	"context"

	"dinehall/localqueue"
	"dinehall/models"
	"dinehall/utils"
)

// ReconcileService replays queued public orders once an authenticated
// staff session is available. Replay is operator-triggered only; there is
// no background sync loop.
type ReconcileService struct {
	Orders *OrderService
	Queue  *localqueue.Queue
}

func NewReconcileService(orders *OrderService, queue *localqueue.Queue) *ReconcileService {
	return &ReconcileService{Orders: orders, Queue: queue}
}

// List enumerates the restaurant's queued orders from the index.
func (rs *ReconcileService) List(ctx context.Context, restaurantID string) ([]localqueue.IndexEntry, error) {
	return rs.Queue.List(ctx, restaurantID)
}

// Replay re-inserts one queued order through the authenticated order path,
// preserving the originally queued status and item snapshots, with no
// server assigned. The queue entry and its index row are removed only
// after the insert succeeded; on failure both stay for a later retry.
func (rs *ReconcileService) Replay(ctx context.Context, restaurantID string, localID int64) (*models.Order, error) {
	entry, err := rs.Queue.Get(ctx, restaurantID, localID)
	if err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(entry.Items))
	for _, item := range entry.Items {
		status := item.Status
		if !models.ValidOrderItemStatus(status) {
			status = models.OrderPending
		}
		items = append(items, models.OrderItem{
			MenuItemID:      item.MenuItemID,
			Name:            item.Name,
			Price:           item.Price,
			Quantity:        item.Quantity,
			SpecialRequests: item.SpecialRequests,
			Status:          status,
			CourseType:      item.CourseType,
		})
	}

	order, err := rs.Orders.CreateOrderPrepriced(ctx, restaurantID, entry.TableID, nil, entry.Status, items)
	if err != nil {
		return nil, err
	}

	if err := rs.Queue.Remove(ctx, restaurantID, localID); err != nil {
		// The order made it into the store; a stale queue entry is the
		// lesser problem and will show up on the next listing.
		utils.ErrorLogger.Printf("replayed order %d but could not dequeue %d: %v",
			order.ID, localID, err)
	}

	utils.InfoLogger.Printf("Pending order %d replayed as order %d", localID, order.ID)
	return order, nil
}
