package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"dinehall/controllers"
	"dinehall/localqueue"
	"dinehall/models"
	"dinehall/services"
	"dinehall/utils"
)

func setupPublicStack(t *testing.T, name string) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(
		&models.Staff{}, &models.Table{}, &models.MenuItem{},
		&models.Order{}, &models.OrderItem{},
	))

	queue, err := localqueue.Open(filepath.Join(t.TempDir(), "pending_orders.db"))
	assert.NoError(t, err)

	orders := services.NewOrderService(db)
	tables := services.NewTableService(db)
	public := services.NewPublicOrderService(db, orders, tables, queue)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	ctrl := controllers.NewPublicOrderController(public)
	router.GET("/public/:restaurant_id/menu", ctrl.GetPublicMenu)
	router.POST("/public/:restaurant_id/tables/:table_id/orders", ctrl.PlaceOrder)
	return router, db
}

func seedPublicData(t *testing.T, db *gorm.DB, tableStatus string) (models.Table, models.MenuItem) {
	t.Helper()
	table := models.Table{RestaurantID: testRestaurant, Name: "T1", Capacity: 4, Status: tableStatus, Size: models.TableSizeMedium}
	assert.NoError(t, db.Create(&table).Error)
	menu := models.MenuItem{RestaurantID: testRestaurant, Name: "Margherita", Price: 12.50, Category: "Pizza", CourseType: models.CourseMain, Available: true}
	assert.NoError(t, db.Create(&menu).Error)
	return table, menu
}

func TestGetPublicMenu(t *testing.T) {
	utils.InitLogger()
	router, db := setupPublicStack(t, "publicctrl_menu")
	seedPublicData(t, db, models.TableAvailable)

	req, _ := http.NewRequest("GET", "/public/"+testRestaurant+"/menu", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].([]interface{})
	assert.Len(t, data, 1)
}

func TestPlacePublicOrder(t *testing.T) {
	utils.InitLogger()
	router, db := setupPublicStack(t, "publicctrl_place")
	table, menu := seedPublicData(t, db, models.TableAvailable)

	payload, _ := json.Marshal(map[string]interface{}{
		"items": []map[string]interface{}{
			{"menu_item_id": menu.ID, "quantity": 2},
		},
	})
	url := fmt.Sprintf("/public/%s/tables/%d/orders", testRestaurant, table.ID)
	req, _ := http.NewRequest("POST", url, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Order placed", response["message"])
	data := response["data"].(map[string]interface{})
	assert.Equal(t, 25.00, data["total_amount"])
	assert.Equal(t, false, data["queued"])
	assert.Greater(t, data["order_id"].(float64), 0.0)
}

func TestPlacePublicOrderConflict(t *testing.T) {
	utils.InitLogger()
	router, db := setupPublicStack(t, "publicctrl_conflict")
	table, menu := seedPublicData(t, db, models.TableOccupied)

	payload, _ := json.Marshal(map[string]interface{}{
		"items": []map[string]interface{}{
			{"menu_item_id": menu.ID, "quantity": 1},
		},
	})
	url := fmt.Sprintf("/public/%s/tables/%d/orders", testRestaurant, table.ID)
	req, _ := http.NewRequest("POST", url, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPlacePublicOrderQueuedOnOutage(t *testing.T) {
	utils.InitLogger()
	router, db := setupPublicStack(t, "publicctrl_queued")
	table, menu := seedPublicData(t, db, models.TableAvailable)

	assert.NoError(t, db.Migrator().DropTable(&models.Order{}))

	payload, _ := json.Marshal(map[string]interface{}{
		"items": []map[string]interface{}{
			{"menu_item_id": menu.ID, "quantity": 2},
		},
	})
	url := fmt.Sprintf("/public/%s/tables/%d/orders", testRestaurant, table.ID)
	req, _ := http.NewRequest("POST", url, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// The diner still gets a confirmation; the order waits in the queue.
	assert.Equal(t, http.StatusCreated, w.Code)
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, true, data["queued"])
	assert.Equal(t, 25.00, data["total_amount"])
}
