package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dinehall/events"
	"dinehall/services"
	"dinehall/utils"
)

// PublicOrderController serves the diner-facing flow behind a scanned
// table code. No authentication: the URL itself carries the scope.
type PublicOrderController struct {
	Public *services.PublicOrderService
}

func NewPublicOrderController(public *services.PublicOrderService) *PublicOrderController {
	return &PublicOrderController{Public: public}
}

// GetPublicMenu lists the restaurant's orderable items.
func (pc *PublicOrderController) GetPublicMenu(c *gin.Context) {
	rid := c.Param("restaurant_id")
	if rid == "" {
		utils.RespondAppError(c, utils.Validationf("restaurant id is required"))
		return
	}

	items, err := pc.Public.PublicMenu(c.Request.Context(), rid)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu", items)
}

// PlaceOrder accepts a cart for a (restaurant, table) pair. Backend
// outages are absorbed by the local queue; the diner always gets a
// confirmation with an order id unless the cart itself is rejected.
func (pc *PublicOrderController) PlaceOrder(c *gin.Context) {
	rid := c.Param("restaurant_id")
	tableID, ok := uintParam(c, "table_id")
	if rid == "" || !ok {
		utils.RespondAppError(c, utils.Validationf("invalid restaurant or table id"))
		return
	}

	var req struct {
		Items          []services.OrderItemInput `json:"items" binding:"required"`
		IdempotencyKey *string                   `json:"idempotency_key"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	result, err := pc.Public.PlaceOrder(c.Request.Context(), services.PublicOrderInput{
		RestaurantID:   rid,
		TableID:        tableID,
		Items:          req.Items,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	if result.Queued {
		events.Broadcast(rid, events.EventOrderQueued, result)
	} else {
		events.Broadcast(rid, events.EventOrderCreate, result)
	}
	utils.RespondJSON(c, http.StatusCreated, "Order placed", result)
}
