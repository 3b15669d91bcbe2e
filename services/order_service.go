package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"dinehall/models"
	"dinehall/utils"
)

// OrderService owns every write to Order and OrderItem records. It never
// touches the table row: after a create, the caller sequences
// SetCurrentOrder and the occupied status write itself.
type OrderService struct {
	DB *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db}
}

type OrderItemInput struct {
	MenuItemID      uint   `json:"menu_item_id"`
	Quantity        int    `json:"quantity"`
	SpecialRequests string `json:"special_requests"`
}

type CreateOrderInput struct {
	RestaurantID   string
	TableID        uint
	ServerID       *uint
	Items          []OrderItemInput
	SpecialNotes   string
	IsHighPriority bool
	IdempotencyKey *string
}

// CreateOrder inserts the order row and its items as one logical unit.
// Item prices, names and course types are snapshotted from the live menu
// at this moment; caller-supplied prices are never trusted. If the item
// insert fails the already-inserted order row is deleted again, so a
// zero-item order is never left visible.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, utils.Validationf("order must contain at least one item")
	}
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, utils.Validationf("quantity must be positive for menu item %d", item.MenuItemID)
		}
	}

	if in.IdempotencyKey != nil && *in.IdempotencyKey != "" {
		if existing, err := s.findByIdempotencyKey(ctx, in.RestaurantID, *in.IdempotencyKey); err == nil {
			return existing, nil
		}
	}

	menu, err := s.lookupMenuItems(ctx, in.RestaurantID, in.Items)
	if err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(in.Items))
	for _, item := range in.Items {
		mi := menu[item.MenuItemID]
		items = append(items, models.OrderItem{
			MenuItemID:      item.MenuItemID,
			Name:            mi.Name,
			Price:           mi.Price,
			Quantity:        item.Quantity,
			SpecialRequests: item.SpecialRequests,
			Status:          models.OrderPending,
			CourseType:      mi.CourseType,
		})
	}

	order := models.Order{
		RestaurantID:   in.RestaurantID,
		TableID:        in.TableID,
		ServerID:       in.ServerID,
		Status:         models.OrderPending,
		SpecialNotes:   in.SpecialNotes,
		IsHighPriority: in.IsHighPriority,
		IdempotencyKey: in.IdempotencyKey,
		TotalAmount:    itemsTotal(items),
	}

	if err := s.createWithItems(ctx, &order, items); err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateOrderPrepriced inserts an order whose item snapshots were taken
// earlier. This is the replay path for queued public orders: the prices
// the diner saw are preserved, not re-resolved.
func (s *OrderService) CreateOrderPrepriced(ctx context.Context, restaurantID string, tableID uint, serverID *uint, status string, items []models.OrderItem) (*models.Order, error) {
	if len(items) == 0 {
		return nil, utils.Validationf("order must contain at least one item")
	}
	if status == "" {
		status = models.OrderPending
	}
	if !models.ValidOrderStatus(status) {
		return nil, utils.Validationf("unknown order status %q", status)
	}

	order := models.Order{
		RestaurantID: restaurantID,
		TableID:      tableID,
		ServerID:     serverID,
		Status:       status,
		TotalAmount:  itemsTotal(items),
	}
	if err := s.createWithItems(ctx, &order, items); err != nil {
		return nil, err
	}
	return &order, nil
}

// createWithItems is the order+items saga. The store gateway gives this
// layer no cross-collection transaction, so the pairing is protected by an
// explicit compensating delete instead.
func (s *OrderService) createWithItems(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	var saga Saga

	saga.Add(SagaStep{
		Name: "insert-order",
		Run: func(ctx context.Context) error {
			return s.DB.WithContext(ctx).Create(order).Error
		},
		Undo: func(ctx context.Context) error {
			return s.DB.WithContext(ctx).Delete(&models.Order{}, order.ID).Error
		},
	})

	saga.Add(SagaStep{
		Name: "insert-items",
		Run: func(ctx context.Context) error {
			for i := range items {
				items[i].OrderID = order.ID
			}
			return s.DB.WithContext(ctx).Create(&items).Error
		},
	})

	if err := saga.Run(ctx); err != nil {
		// PartialFailure stays inside this boundary.
		return utils.StoreUnavailable("order could not be created", err)
	}

	order.Items = items
	utils.InfoLogger.Printf("Order %d created with %d items (table=%d, total=%.2f)",
		order.ID, len(items), order.TableID, order.TotalAmount)
	return nil
}

// UpdateOrderStatus validates the move against the order machine and
// bumps updated_at. Item statuses are not cascaded.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, restaurantID string, orderID uint, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, utils.Validationf("unknown order status %q", status)
	}

	order, err := s.getOrderRow(ctx, restaurantID, orderID)
	if err != nil {
		return nil, err
	}

	// Known status, but not reachable from where the order is now.
	if err := models.CheckOrderTransition(order.Status, status); err != nil {
		return nil, utils.Conflictf("%v", err)
	}

	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if err := s.DB.WithContext(ctx).Model(order).Updates(updates).Error; err != nil {
		return nil, utils.StoreUnavailable("could not update order status", err)
	}

	utils.InfoLogger.Printf("Order %d status changed to %s", orderID, status)
	return s.GetOrder(ctx, restaurantID, orderID)
}

// UpdateOrderItemStatus moves one item through the kitchen machine.
// Entering in-progress stamps started_at once; repeating the same target
// status later leaves the timestamp untouched. Entering completed stamps
// completed_at.
func (s *OrderService) UpdateOrderItemStatus(ctx context.Context, restaurantID string, itemID uint, status string) (*models.OrderItem, error) {
	if !models.ValidOrderItemStatus(status) {
		return nil, utils.Validationf("unknown order item status %q", status)
	}

	var item models.OrderItem
	err := s.DB.WithContext(ctx).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.id = ? AND orders.restaurant_id = ?", itemID, restaurantID).
		First(&item).Error
	if err != nil {
		return nil, utils.WrapDB(err, "order item %d not found", itemID)
	}

	if err := models.CheckOrderItemTransition(item.Status, status); err != nil {
		return nil, utils.Conflictf("%v", err)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": now,
	}
	if status == models.OrderInProgress && item.StartedAt == nil {
		updates["started_at"] = now
	}
	if status == models.OrderCompleted && item.CompletedAt == nil {
		updates["completed_at"] = now
	}

	if err := s.DB.WithContext(ctx).Model(&item).Updates(updates).Error; err != nil {
		return nil, utils.StoreUnavailable("could not update order item", err)
	}

	err = s.DB.WithContext(ctx).First(&item, itemID).Error
	if err != nil {
		return nil, utils.WrapDB(err, "order item %d not found", itemID)
	}
	return &item, nil
}

// FetchOrders lists a restaurant's orders with nested items, newest first.
// The live menu join only enriches fields that do not affect money; a menu
// row deleted since the order was placed marks the item instead of failing
// the fetch.
func (s *OrderService) FetchOrders(ctx context.Context, restaurantID string) ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.WithContext(ctx).
		Preload("Items").
		Where("restaurant_id = ?", restaurantID).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, utils.StoreUnavailable("could not fetch orders", err)
	}

	if err := s.enrichItems(ctx, restaurantID, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder loads one order with items and enrichment.
func (s *OrderService) GetOrder(ctx context.Context, restaurantID string, orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.DB.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND restaurant_id = ?", orderID, restaurantID).
		First(&order).Error
	if err != nil {
		return nil, utils.WrapDB(err, "order %d not found", orderID)
	}

	wrapped := []models.Order{order}
	if err := s.enrichItems(ctx, restaurantID, wrapped); err != nil {
		return nil, err
	}
	return &wrapped[0], nil
}

func (s *OrderService) getOrderRow(ctx context.Context, restaurantID string, orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.DB.WithContext(ctx).
		Where("id = ? AND restaurant_id = ?", orderID, restaurantID).
		First(&order).Error
	if err != nil {
		return nil, utils.WrapDB(err, "order %d not found", orderID)
	}
	return &order, nil
}

func (s *OrderService) findByIdempotencyKey(ctx context.Context, restaurantID, key string) (*models.Order, error) {
	var order models.Order
	err := s.DB.WithContext(ctx).
		Preload("Items").
		Where("restaurant_id = ? AND idempotency_key = ?", restaurantID, key).
		First(&order).Error
	if err != nil {
		return nil, utils.WrapDB(err, "no order for idempotency key")
	}
	return &order, nil
}

// lookupMenuItems batch-resolves the referenced menu rows for snapshotting.
func (s *OrderService) lookupMenuItems(ctx context.Context, restaurantID string, items []OrderItemInput) (map[uint]models.MenuItem, error) {
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.MenuItemID)
	}

	var rows []models.MenuItem
	err := s.DB.WithContext(ctx).
		Where("id IN ? AND restaurant_id = ?", ids, restaurantID).
		Find(&rows).Error
	if err != nil {
		return nil, utils.StoreUnavailable("could not resolve menu items", err)
	}

	menu := make(map[uint]models.MenuItem, len(rows))
	for _, row := range rows {
		menu[row.ID] = row
	}
	for _, item := range items {
		if _, ok := menu[item.MenuItemID]; !ok {
			return nil, utils.Validationf("unknown menu item %d", item.MenuItemID)
		}
	}
	return menu, nil
}

func (s *OrderService) enrichItems(ctx context.Context, restaurantID string, orders []models.Order) error {
	idSet := make(map[uint]bool)
	for _, order := range orders {
		for _, item := range order.Items {
			idSet[item.MenuItemID] = true
		}
	}
	if len(idSet) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	var rows []models.MenuItem
	err := s.DB.WithContext(ctx).
		Where("id IN ? AND restaurant_id = ?", ids, restaurantID).
		Find(&rows).Error
	if err != nil {
		return utils.StoreUnavailable("could not enrich order items", err)
	}

	menu := make(map[uint]models.MenuItem, len(rows))
	for _, row := range rows {
		menu[row.ID] = row
	}

	for oi := range orders {
		for ii := range orders[oi].Items {
			item := &orders[oi].Items[ii]
			if mi, ok := menu[item.MenuItemID]; ok {
				item.PreparationTime = mi.PreparationTime
				item.Available = mi.Available
			} else {
				item.MenuMissing = true
			}
		}
	}
	return nil
}

func itemsTotal(items []models.OrderItem) float64 {
	total := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	f, _ := total.Float64()
	return f
}
