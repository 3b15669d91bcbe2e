package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"dinehall/models"
	"dinehall/services"
	"dinehall/utils"
)

type MenuController struct {
	DB    *gorm.DB
	Cache services.MenuCache
}

func NewMenuController(db *gorm.DB, cache services.MenuCache) *MenuController {
	if cache == nil {
		cache = services.NoopMenuCache{}
	}
	return &MenuController{DB: db, Cache: cache}
}

func (mc *MenuController) GetAllMenuItems(c *gin.Context) {
	rid := restaurantID(c)

	if items, ok := mc.Cache.Get(c.Request.Context(), rid); ok {
		utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
		return
	}

	var items []models.MenuItem
	if err := mc.DB.Where("restaurant_id = ?", rid).Order("category").Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	mc.Cache.Set(c.Request.Context(), rid, items)
	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

func (mc *MenuController) GetMenuItemByID(c *gin.Context) {
	itemID, ok := uintParam(c, "menu_id")
	if !ok {
		utils.RespondAppError(c, utils.Validationf("invalid menu item id"))
		return
	}

	var item models.MenuItem
	err := mc.DB.Where("id = ? AND restaurant_id = ?", itemID, restaurantID(c)).First(&item).Error
	if err != nil {
		utils.RespondAppError(c, utils.WrapDB(err, "menu item %d not found", itemID))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item detail", item)
}

func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	var req struct {
		Name            string  `json:"name" binding:"required"`
		Description     string  `json:"description"`
		Price           float64 `json:"price"`
		Category        string  `json:"category"`
		CourseType      string  `json:"course_type"`
		PreparationTime int     `json:"preparation_time"`
		Available       *bool   `json:"available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Price < 0 {
		utils.RespondAppError(c, utils.Validationf("price cannot be negative"))
		return
	}
	if req.PreparationTime < 0 {
		utils.RespondAppError(c, utils.Validationf("preparation time cannot be negative"))
		return
	}
	if req.CourseType == "" {
		req.CourseType = models.CourseMain
	}
	if !models.ValidCourseType(req.CourseType) {
		utils.RespondAppError(c, utils.Validationf("unknown course type %q", req.CourseType))
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	item := models.MenuItem{
		RestaurantID:    restaurantID(c),
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Category:        req.Category,
		CourseType:      req.CourseType,
		PreparationTime: req.PreparationTime,
		Available:       available,
	}
	if err := mc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	mc.Cache.Invalidate(c.Request.Context(), item.RestaurantID)
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	itemID, ok := uintParam(c, "menu_id")
	if !ok {
		utils.RespondAppError(c, utils.Validationf("invalid menu item id"))
		return
	}

	var item models.MenuItem
	err := mc.DB.Where("id = ? AND restaurant_id = ?", itemID, restaurantID(c)).First(&item).Error
	if err != nil {
		utils.RespondAppError(c, utils.WrapDB(err, "menu item %d not found", itemID))
		return
	}

	var req struct {
		Name            *string  `json:"name"`
		Description     *string  `json:"description"`
		Price           *float64 `json:"price"`
		Category        *string  `json:"category"`
		CourseType      *string  `json:"course_type"`
		PreparationTime *int     `json:"preparation_time"`
		Available       *bool    `json:"available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			utils.RespondAppError(c, utils.Validationf("price cannot be negative"))
			return
		}
		item.Price = *req.Price
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.CourseType != nil {
		if !models.ValidCourseType(*req.CourseType) {
			utils.RespondAppError(c, utils.Validationf("unknown course type %q", *req.CourseType))
			return
		}
		item.CourseType = *req.CourseType
	}
	if req.PreparationTime != nil {
		item.PreparationTime = *req.PreparationTime
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := mc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	mc.Cache.Invalidate(c.Request.Context(), item.RestaurantID)
	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	itemID, ok := uintParam(c, "menu_id")
	if !ok {
		utils.RespondAppError(c, utils.Validationf("invalid menu item id"))
		return
	}

	var item models.MenuItem
	err := mc.DB.Where("id = ? AND restaurant_id = ?", itemID, restaurantID(c)).First(&item).Error
	if err != nil {
		utils.RespondAppError(c, utils.WrapDB(err, "menu item %d not found", itemID))
		return
	}
	if err := mc.DB.Delete(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	mc.Cache.Invalidate(c.Request.Context(), item.RestaurantID)
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", gin.H{"menu_id": itemID})
}

// GetMenuByCategory groups the catalog for display.
func (mc *MenuController) GetMenuByCategory(c *gin.Context) {
	var items []models.MenuItem
	if err := mc.DB.Where("restaurant_id = ?", restaurantID(c)).Order("category").Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	grouped := make(map[string][]models.MenuItem)
	for _, item := range items {
		grouped[item.Category] = append(grouped[item.Category], item)
	}
	utils.RespondJSON(c, http.StatusOK, "Menu by category", grouped)
}
