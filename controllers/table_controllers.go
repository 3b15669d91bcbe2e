package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dinehall/events"
	"dinehall/models"
	"dinehall/services"
	"dinehall/utils"
)

type TableController struct {
	Tables *services.TableService
}

func NewTableController(tables *services.TableService) *TableController {
	return &TableController{Tables: tables}
}

func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		Name         string `json:"name" binding:"required"`
		Capacity     int    `json:"capacity" binding:"required"`
		Size         string `json:"size"`
		Status       string `json:"status"`
		CombinedWith []uint `json:"combined_with"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Tables.CreateTable(c.Request.Context(), restaurantID(c), services.TableSpec{
		Name:         req.Name,
		Capacity:     req.Capacity,
		Size:         req.Size,
		Status:       req.Status,
		CombinedWith: req.CombinedWith,
	})
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	events.Broadcast(table.RestaurantID, events.EventTableCreate, table)
	utils.RespondJSON(c, http.StatusCreated, "Table created", table)
}

func (tc *TableController) GetAllTables(c *gin.Context) {
	tables, err := tc.Tables.ListTables(c.Request.Context(), restaurantID(c))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

func (tc *TableController) GetTableByID(c *gin.Context) {
	tableID, ok := uintParam(c, "table_id")
	if !ok {
		utils.RespondAppError(c, utils.Validationf("invalid table id"))
		return
	}
	table, err := tc.Tables.GetTable(c.Request.Context(), restaurantID(c), tableID)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

func (tc *TableController) UpdateTableStatus(c *gin.Context) {
	tableID, ok := uintParam(c, "table_id")
	if !ok {
		utils.RespondAppError(c, utils.Validationf("invalid table id"))
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Tables.UpdateStatus(c.Request.Context(), restaurantID(c), tableID, req.Status)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	events.Broadcast(table.RestaurantID, events.EventTableUpdate, table)
	utils.RespondJSON(c, http.StatusOK, "Table status updated", table)
}

func (tc *TableController) AssignServer(c *gin.Context) {
	tableID, ok := uintParam(c, "table_id")
	if !ok {
		utils.RespondAppError(c, utils.Validationf("invalid table id"))
		return
	}
	var req struct {
		ServerID *uint `json:"server_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Tables.AssignServer(c.Request.Context(), restaurantID(c), tableID, req.ServerID)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	events.Broadcast(table.RestaurantID, events.EventTableUpdate, table)
	utils.RespondJSON(c, http.StatusOK, "Server assigned", table)
}

func (tc *TableController) DeleteTable(c *gin.Context) {
	tableID, ok := uintParam(c, "table_id")
	if !ok {
		utils.RespondAppError(c, utils.Validationf("invalid table id"))
		return
	}
	if err := tc.Tables.DeleteTable(c.Request.Context(), restaurantID(c), tableID); err != nil {
		utils.RespondAppError(c, err)
		return
	}

	events.Broadcast(restaurantID(c), events.EventTableDelete, gin.H{"table_id": tableID})
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"table_id": tableID})
}

// FindTablesByStatus lists tables filtered by ?status=, default available.
func (tc *TableController) FindTablesByStatus(c *gin.Context) {
	status := c.Query("status")
	if status == "" {
		status = models.TableAvailable
	}
	if !models.ValidTableStatus(status) {
		utils.RespondAppError(c, utils.Validationf("unknown table status %q", status))
		return
	}

	tables, err := tc.Tables.ListTables(c.Request.Context(), restaurantID(c))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	filtered := make([]models.Table, 0, len(tables))
	for _, table := range tables {
		if table.Status == status {
			filtered = append(filtered, table)
		}
	}
	utils.RespondJSON(c, http.StatusOK, "Tables with status: "+status, filtered)
}
