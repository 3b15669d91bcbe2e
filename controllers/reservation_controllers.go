package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"dinehall/models"
	"dinehall/utils"
)

type ReservationController struct {
	DB *gorm.DB
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{DB: db}
}

func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	var reservations []models.Reservation
	err := rc.DB.Where("restaurant_id = ?", restaurantID(c)).Order("date").Find(&reservations).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of reservations", reservations)
}

func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var req struct {
		CustomerName    string    `json:"customer_name" binding:"required"`
		Date            time.Time `json:"date" binding:"required"`
		PartySize       int       `json:"party_size" binding:"required"`
		TableIDs        []uint    `json:"table_ids"`
		SpecialRequests string    `json:"special_requests"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.PartySize <= 0 {
		utils.RespondAppError(c, utils.Validationf("party size must be positive"))
		return
	}

	reservation := models.Reservation{
		RestaurantID:    restaurantID(c),
		CustomerName:    req.CustomerName,
		Date:            req.Date,
		PartySize:       req.PartySize,
		TableIDs:        req.TableIDs,
		SpecialRequests: req.SpecialRequests,
		Status:          models.ReservationConfirmed,
	}
	if err := rc.DB.Create(&reservation).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Reservation created", reservation)
}

func (rc *ReservationController) UpdateReservationStatus(c *gin.Context) {
	reservationID, ok := uintParam(c, "reservation_id")
	if !ok {
		utils.RespondAppError(c, utils.Validationf("invalid reservation id"))
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.ValidReservationStatus(req.Status) {
		utils.RespondAppError(c, utils.Validationf("unknown reservation status %q", req.Status))
		return
	}

	var reservation models.Reservation
	err := rc.DB.Where("id = ? AND restaurant_id = ?", reservationID, restaurantID(c)).First(&reservation).Error
	if err != nil {
		utils.RespondAppError(c, utils.WrapDB(err, "reservation %d not found", reservationID))
		return
	}

	reservation.Status = req.Status
	if err := rc.DB.Save(&reservation).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation status updated", reservation)
}

func (rc *ReservationController) DeleteReservation(c *gin.Context) {
	reservationID, ok := uintParam(c, "reservation_id")
	if !ok {
		utils.RespondAppError(c, utils.Validationf("invalid reservation id"))
		return
	}

	var reservation models.Reservation
	err := rc.DB.Where("id = ? AND restaurant_id = ?", reservationID, restaurantID(c)).First(&reservation).Error
	if err != nil {
		utils.RespondAppError(c, utils.WrapDB(err, "reservation %d not found", reservationID))
		return
	}
	if err := rc.DB.Delete(&reservation).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation deleted", gin.H{"reservation_id": reservationID})
}
