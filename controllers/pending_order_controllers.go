package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"dinehall/events"
	"dinehall/services"
	"dinehall/utils"
)

// PendingOrderController exposes the operator-triggered recovery of
// public orders that landed in the local queue during an outage.
type PendingOrderController struct {
	Reconcile *services.ReconcileService
}

func NewPendingOrderController(reconcile *services.ReconcileService) *PendingOrderController {
	return &PendingOrderController{Reconcile: reconcile}
}

func (pc *PendingOrderController) ListPendingOrders(c *gin.Context) {
	entries, err := pc.Reconcile.List(c.Request.Context(), restaurantID(c))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Pending local orders", entries)
}

func (pc *PendingOrderController) ReplayPendingOrder(c *gin.Context) {
	localID, err := strconv.ParseInt(c.Param("local_id"), 10, 64)
	if err != nil {
		utils.RespondAppError(c, utils.Validationf("invalid local order id"))
		return
	}

	order, replayErr := pc.Reconcile.Replay(c.Request.Context(), restaurantID(c), localID)
	if replayErr != nil {
		utils.RespondAppError(c, replayErr)
		return
	}

	events.Broadcast(restaurantID(c), events.EventOrderReplay, order)
	utils.RespondJSON(c, http.StatusOK, "Pending order replayed", order)
}
