package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"dinehall/models"
	"dinehall/utils"
)

type StaffController struct {
	DB *gorm.DB
}

func NewStaffController(db *gorm.DB) *StaffController {
	return &StaffController{DB: db}
}

// Register creates a staff account. Without a restaurant_id a new
// restaurant is minted and the account becomes its admin.
func (sc *StaffController) Register(c *gin.Context) {
	var req struct {
		Name         string `json:"name" binding:"required"`
		Email        string `json:"email" binding:"required,email"`
		Password     string `json:"password" binding:"required"`
		Role         string `json:"role"`
		RestaurantID string `json:"restaurant_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.RestaurantID == "" {
		req.RestaurantID = uuid.NewString()
		req.Role = models.RoleAdmin
	}
	if req.Role == "" {
		req.Role = models.RoleServer
	}
	if !models.ValidStaffRole(req.Role) {
		utils.RespondAppError(c, utils.Validationf("unknown role %q", req.Role))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	staff := models.Staff{
		RestaurantID: req.RestaurantID,
		Name:         req.Name,
		Email:        req.Email,
		Password:     string(hashed),
		Role:         req.Role,
	}
	if err := sc.DB.Create(&staff).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New staff registered: %s (role=%s)", staff.Email, staff.Role)
	utils.RespondJSON(c, http.StatusCreated, "Staff registered", gin.H{
		"staff_id":      staff.ID,
		"restaurant_id": staff.RestaurantID,
	})
}

// Login returns a JWT scoped to the staff member's restaurant.
func (sc *StaffController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var staff models.Staff
	if err := sc.DB.Where("email = ?", req.Email).First(&staff).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(req.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(staff.ID, staff.RestaurantID, staff.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"role":  staff.Role,
	})
}

func (sc *StaffController) GetProfile(c *gin.Context) {
	staffIDValue, exists := c.Get("staff_id")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("staff id not found in context"))
		return
	}
	staffID, _ := staffIDValue.(uint)

	var staff models.Staff
	if err := sc.DB.First(&staff, staffID).Error; err != nil {
		utils.RespondAppError(c, utils.WrapDB(err, "staff %d not found", staffID))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Profile data", staff)
}

func (sc *StaffController) GetAllStaff(c *gin.Context) {
	var staff []models.Staff
	if err := sc.DB.Where("restaurant_id = ?", restaurantID(c)).Order("role").Find(&staff).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of staff", staff)
}

func (sc *StaffController) UpdateStaffRole(c *gin.Context) {
	staffID, ok := uintParam(c, "staff_id")
	if !ok {
		utils.RespondAppError(c, utils.Validationf("invalid staff id"))
		return
	}

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.ValidStaffRole(req.Role) {
		utils.RespondAppError(c, utils.Validationf("unknown role %q", req.Role))
		return
	}

	var staff models.Staff
	if err := sc.DB.Where("id = ? AND restaurant_id = ?", staffID, restaurantID(c)).First(&staff).Error; err != nil {
		utils.RespondAppError(c, utils.WrapDB(err, "staff %d not found", staffID))
		return
	}

	staff.Role = req.Role
	if err := sc.DB.Save(&staff).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Staff role updated", staff)
}

func (sc *StaffController) DeleteStaff(c *gin.Context) {
	staffID, ok := uintParam(c, "staff_id")
	if !ok {
		utils.RespondAppError(c, utils.Validationf("invalid staff id"))
		return
	}

	var staff models.Staff
	if err := sc.DB.Where("id = ? AND restaurant_id = ?", staffID, restaurantID(c)).First(&staff).Error; err != nil {
		utils.RespondAppError(c, utils.WrapDB(err, "staff %d not found", staffID))
		return
	}
	if err := sc.DB.Delete(&staff).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Staff deleted", gin.H{"staff_id": staffID})
}
