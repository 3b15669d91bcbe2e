package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"dinehall/controllers"
	"dinehall/models"
	"dinehall/services"
	"dinehall/utils"
)

func setupOrderRouter(t *testing.T, name string) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(
		&models.Staff{}, &models.Table{}, &models.MenuItem{},
		&models.Order{}, &models.OrderItem{},
	))

	orders := services.NewOrderService(db)
	tables := services.NewTableService(db)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(fakeAuth(testRestaurant))

	ctrl := controllers.NewOrderController(orders, tables)
	router.GET("/orders", ctrl.GetAllOrders)
	router.POST("/orders", ctrl.CreateOrder)
	router.PATCH("/orders/:order_id/status", ctrl.UpdateOrderStatus)
	return router, db
}

func TestCreateOrderOccupiesTable(t *testing.T) {
	utils.InitLogger()
	router, db := setupOrderRouter(t, "orderctrl_create")

	table := models.Table{RestaurantID: testRestaurant, Name: "T1", Capacity: 4, Status: models.TableAvailable, Size: models.TableSizeMedium}
	assert.NoError(t, db.Create(&table).Error)
	menu := models.MenuItem{RestaurantID: testRestaurant, Name: "Margherita", Price: 12.50, Category: "Pizza", CourseType: models.CourseMain, Available: true}
	assert.NoError(t, db.Create(&menu).Error)

	payload, _ := json.Marshal(map[string]interface{}{
		"table_id": table.ID,
		"items": []map[string]interface{}{
			{"menu_item_id": menu.ID, "quantity": 2},
		},
	})
	req, _ := http.NewRequest("POST", "/orders", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, 25.00, data["total_amount"])

	// The controller sequences the table writes after the order exists.
	var got models.Table
	assert.NoError(t, db.First(&got, table.ID).Error)
	assert.Equal(t, models.TableOccupied, got.Status)
	assert.NotNil(t, got.CurrentOrder)
}

func TestUpdateOrderStatusConflict(t *testing.T) {
	utils.InitLogger()
	router, db := setupOrderRouter(t, "orderctrl_conflict")

	menu := models.MenuItem{RestaurantID: testRestaurant, Name: "Margherita", Price: 12.50, Category: "Pizza", CourseType: models.CourseMain, Available: true}
	assert.NoError(t, db.Create(&menu).Error)

	order, err := services.NewOrderService(db).CreateOrder(context.Background(), services.CreateOrderInput{
		RestaurantID: testRestaurant,
		TableID:      1,
		Items:        []services.OrderItemInput{{MenuItemID: menu.ID, Quantity: 1}},
	})
	assert.NoError(t, err)

	payload, _ := json.Marshal(map[string]string{"status": "completed"})
	url := fmt.Sprintf("/orders/%d/status", order.ID)
	req, _ := http.NewRequest("PATCH", url, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}
