package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"dinehall/controllers"
	"dinehall/models"
	"dinehall/utils"
)

// memoryMenuCache is an in-process stand-in for the redis cache.
type memoryMenuCache struct {
	entries map[string][]models.MenuItem
}

func newMemoryMenuCache() *memoryMenuCache {
	return &memoryMenuCache{entries: make(map[string][]models.MenuItem)}
}

func (m *memoryMenuCache) Get(ctx context.Context, restaurantID string) ([]models.MenuItem, bool) {
	items, ok := m.entries[restaurantID]
	return items, ok
}

func (m *memoryMenuCache) Set(ctx context.Context, restaurantID string, items []models.MenuItem) {
	m.entries[restaurantID] = items
}

func (m *memoryMenuCache) Invalidate(ctx context.Context, restaurantID string) {
	delete(m.entries, restaurantID)
}

func setupMenuRouter(t *testing.T, name string) (*gin.Engine, *gorm.DB, *memoryMenuCache) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.MenuItem{}))

	cache := newMemoryMenuCache()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(fakeAuth(testRestaurant))

	ctrl := controllers.NewMenuController(db, cache)
	router.GET("/menu", ctrl.GetAllMenuItems)
	router.DELETE("/menu/:menu_id", ctrl.DeleteMenuItem)
	return router, db, cache
}

func listMenu(t *testing.T, router *gin.Engine) []interface{} {
	t.Helper()
	req, _ := http.NewRequest("GET", "/menu", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data, _ := response["data"].([]interface{})
	return data
}

func TestMenuListPopulatesCache(t *testing.T) {
	utils.InitLogger()
	router, db, cache := setupMenuRouter(t, "menuctrl_cache")

	item := models.MenuItem{RestaurantID: testRestaurant, Name: "Margherita", Price: 12.50, Category: "Pizza", CourseType: models.CourseMain, Available: true}
	assert.NoError(t, db.Create(&item).Error)

	assert.Len(t, listMenu(t, router), 1)
	cached, ok := cache.Get(context.Background(), testRestaurant)
	assert.True(t, ok)
	assert.Len(t, cached, 1)

	// A direct row delete is invisible while the cache entry lives.
	assert.NoError(t, db.Delete(&item).Error)
	assert.Len(t, listMenu(t, router), 1)
}

func TestMenuDeleteInvalidatesCache(t *testing.T) {
	utils.InitLogger()
	router, db, cache := setupMenuRouter(t, "menuctrl_invalidate")

	item := models.MenuItem{RestaurantID: testRestaurant, Name: "Calzone", Price: 14.00, Category: "Pizza", CourseType: models.CourseMain, Available: true}
	assert.NoError(t, db.Create(&item).Error)

	assert.Len(t, listMenu(t, router), 1)

	req, _ := http.NewRequest("DELETE", "/menu/"+strconv.Itoa(int(item.ID)), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	_, ok := cache.Get(context.Background(), testRestaurant)
	assert.False(t, ok)
	assert.Empty(t, listMenu(t, router))
}
