package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dinehall/events"
	"dinehall/models"
	"dinehall/services"
	"dinehall/utils"
)

type OrderController struct {
	Orders *services.OrderService
	Tables *services.TableService
}

func NewOrderController(orders *services.OrderService, tables *services.TableService) *OrderController {
	return &OrderController{Orders: orders, Tables: tables}
}

func (oc *OrderController) GetAllOrders(c *gin.Context) {
	orders, err := oc.Orders.FetchOrders(c.Request.Context(), restaurantID(c))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	orderID, ok := uintParam(c, "order_id")
	if !ok {
		utils.RespondAppError(c, utils.Validationf("invalid order id"))
		return
	}
	order, err := oc.Orders.GetOrder(c.Request.Context(), restaurantID(c), orderID)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// CreateOrder is the staff-side order entry. After the order exists the
// table is attached and occupied here, not inside the order service.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req struct {
		TableID        uint                      `json:"table_id" binding:"required"`
		ServerID       *uint                     `json:"server_id"`
		Items          []services.OrderItemInput `json:"items" binding:"required"`
		SpecialNotes   string                    `json:"special_notes"`
		IsHighPriority bool                      `json:"is_high_priority"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	rid := restaurantID(c)
	ctx := c.Request.Context()

	order, err := oc.Orders.CreateOrder(ctx, services.CreateOrderInput{
		RestaurantID:   rid,
		TableID:        req.TableID,
		ServerID:       req.ServerID,
		Items:          req.Items,
		SpecialNotes:   req.SpecialNotes,
		IsHighPriority: req.IsHighPriority,
	})
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	if _, err := oc.Tables.SetCurrentOrder(ctx, rid, req.TableID, &order.ID); err != nil {
		utils.ErrorLogger.Printf("order %d created but table %d not linked: %v", order.ID, req.TableID, err)
	} else if _, err := oc.Tables.UpdateStatus(ctx, rid, req.TableID, models.TableOccupied); err != nil {
		utils.ErrorLogger.Printf("order %d created but table %d not occupied: %v", order.ID, req.TableID, err)
	}

	events.Broadcast(rid, events.EventOrderCreate, order)
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := uintParam(c, "order_id")
	if !ok {
		utils.RespondAppError(c, utils.Validationf("invalid order id"))
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.UpdateOrderStatus(c.Request.Context(), restaurantID(c), orderID, req.Status)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	events.Broadcast(restaurantID(c), events.EventOrderUpdate, order)
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

func (oc *OrderController) UpdateOrderItemStatus(c *gin.Context) {
	itemID, ok := uintParam(c, "item_id")
	if !ok {
		utils.RespondAppError(c, utils.Validationf("invalid order item id"))
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, err := oc.Orders.UpdateOrderItemStatus(c.Request.Context(), restaurantID(c), itemID, req.Status)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	events.Broadcast(restaurantID(c), events.EventOrderUpdate, item)
	utils.RespondJSON(c, http.StatusOK, "Order item status updated", item)
}
