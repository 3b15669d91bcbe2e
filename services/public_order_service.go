package services

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"dinehall/localqueue"
	"dinehall/models"
	"dinehall/utils"
)

// PublicOrderService is the unauthenticated intake behind the QR code on a
// table. It is the one place that trades consistency for diner experience:
// when the shared store cannot take the write, the order is parked in the
// durable local queue and the diner still gets a confirmation. Rejections
// (bad table, occupied table, bad cart) are surfaced, never queued.
type PublicOrderService struct {
	DB     *gorm.DB
	Orders *OrderService
	Tables *TableService
	Queue  *localqueue.Queue
}

func NewPublicOrderService(db *gorm.DB, orders *OrderService, tables *TableService, queue *localqueue.Queue) *PublicOrderService {
	return &PublicOrderService{DB: db, Orders: orders, Tables: tables, Queue: queue}
}

type PublicOrderInput struct {
	RestaurantID   string
	TableID        uint
	Items          []OrderItemInput
	IdempotencyKey *string
}

type PublicOrderResult struct {
	OrderID     int64   `json:"order_id"`
	TotalAmount float64 `json:"total_amount"`
	// Queued is set when the order is waiting in the local queue instead
	// of the shared store. The diner-facing message does not change.
	Queued bool `json:"queued"`
}

// PlaceOrder runs the public ordering contract:
//
//  1. the (table, restaurant) pair must exist          -> not found
//  2. the table must be available                      -> conflict
//  3. totals come from the live catalog, never the cart
//  4. order + items are created pending (saga path)
//  5. the table is flipped to occupied with the order attached
//
// A failure in step 5 leaves the created order in place: the table shows
// available while an order references it. Closing that window needs a
// transactional guarantee the store does not give this layer, so it is
// documented behavior rather than silently compensated.
func (ps *PublicOrderService) PlaceOrder(ctx context.Context, in PublicOrderInput) (*PublicOrderResult, error) {
	if len(in.Items) == 0 {
		return nil, utils.Validationf("order must contain at least one item")
	}
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, utils.Validationf("quantity must be positive for menu item %d", item.MenuItemID)
		}
	}

	table, err := ps.Tables.GetTable(ctx, in.RestaurantID, in.TableID)
	if err != nil {
		if rejection(err) {
			return nil, err
		}
		return ps.enqueueFallback(ctx, in, nil)
	}
	if table.Status != models.TableAvailable {
		return nil, utils.Conflictf("table %q is not available", table.Name)
	}

	order, err := ps.Orders.CreateOrder(ctx, CreateOrderInput{
		RestaurantID:   in.RestaurantID,
		TableID:        in.TableID,
		Items:          in.Items,
		IdempotencyKey: in.IdempotencyKey,
	})
	if err != nil {
		if rejection(err) {
			return nil, err
		}
		snapshot := ps.snapshotCart(ctx, in)
		return ps.enqueueFallback(ctx, in, snapshot)
	}

	if err := ps.Tables.MarkOccupied(ctx, in.RestaurantID, in.TableID, order.ID); err != nil {
		// Known inconsistency window: the order exists but the table was
		// not updated. Surfaced in the log, not rolled back.
		utils.ErrorLogger.Printf("public order %d created but table %d not updated: %v",
			order.ID, in.TableID, err)
	}

	return &PublicOrderResult{
		OrderID:     int64(order.ID),
		TotalAmount: order.TotalAmount,
	}, nil
}

// rejection reports whether the error must reach the diner instead of
// being downgraded into the queue fallback.
func rejection(err error) bool {
	switch utils.KindOf(err) {
	case utils.KindNotFound, utils.KindValidation, utils.KindConflict:
		return true
	}
	return false
}

// snapshotCart resolves what it still can from the catalog so the queued
// payload carries the prices the diner was shown. During a full outage the
// lookup itself may fail; the cart is then queued without prices and the
// replay recomputes nothing — the operator sees the raw quantities.
func (ps *PublicOrderService) snapshotCart(ctx context.Context, in PublicOrderInput) []localqueue.PendingItem {
	items := make([]localqueue.PendingItem, 0, len(in.Items))

	menu, err := ps.Orders.lookupMenuItems(ctx, in.RestaurantID, in.Items)
	for _, item := range in.Items {
		pending := localqueue.PendingItem{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			Status:     models.OrderPending,
			CourseType: models.CourseMain,
		}
		if err == nil {
			mi := menu[item.MenuItemID]
			pending.Name = mi.Name
			pending.Price = mi.Price
			pending.CourseType = mi.CourseType
		}
		pending.SpecialRequests = item.SpecialRequests
		items = append(items, pending)
	}
	return items
}

func (ps *PublicOrderService) enqueueFallback(ctx context.Context, in PublicOrderInput, items []localqueue.PendingItem) (*PublicOrderResult, error) {
	if items == nil {
		items = ps.snapshotCart(ctx, in)
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	totalAmount, _ := total.Float64()

	entry := localqueue.PendingLocalOrder{
		LocalID:      localqueue.NewLocalID(),
		RestaurantID: in.RestaurantID,
		TableID:      in.TableID,
		Status:       models.OrderPending,
		TotalAmount:  totalAmount,
		Items:        items,
	}
	if err := ps.Queue.Enqueue(ctx, entry); err != nil {
		// Both the store and the local queue failed; nothing left to
		// absorb the order.
		return nil, utils.StoreUnavailable("order could not be accepted", err)
	}

	utils.InfoLogger.Printf("Public order queued locally (id=%d, table=%d, total=%.2f)",
		entry.LocalID, in.TableID, totalAmount)

	return &PublicOrderResult{
		OrderID:     entry.LocalID,
		TotalAmount: totalAmount,
		Queued:      true,
	}, nil
}

// PublicMenu lists the orderable items for the scanned restaurant.
func (ps *PublicOrderService) PublicMenu(ctx context.Context, restaurantID string) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := ps.DB.WithContext(ctx).
		Where("restaurant_id = ? AND available = ?", restaurantID, true).
		Order("category").
		Find(&items).Error
	if err != nil {
		return nil, utils.StoreUnavailable("could not load menu", err)
	}
	return items, nil
}
