package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/food-order-bot/feed"
	"github.com/yeremiapane/food-order-bot/models"
	"github.com/yeremiapane/food-order-bot/utils"
)

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

var validStatuses = map[string]bool{
	models.OrderStatusPending:   true,
	models.OrderStatusPreparing: true,
	models.OrderStatusDelivered: true,
	models.OrderStatusCancelled: true,
}

// GetAllOrders -> semua order, bisa difilter ?status=
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	query := oc.DB.
		Preload("Customer").
		Preload("Address").
		Preload("OrderItems").
		Preload("OrderItems.Menu").
		Order("created_at DESC")

	if status := c.Query("status"); status != "" {
		if !validStatuses[status] {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid status filter"))
			return
		}
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> detail order termasuk item dan customer
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var order models.Order
	if err := oc.DB.
		Preload("Customer").
		Preload("Address").
		Preload("OrderItems").
		Preload("OrderItems.Menu").
		First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrderStatus -> dipakai dashboard staff, broadcast ke feed
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !validStatuses[body.Status] {
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown order status"))
		return
	}

	var order models.Order
	if err := oc.DB.Preload("OrderItems").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	order.Status = body.Status
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order %d status changed to %s", order.ID, order.Status)
	feed.BroadcastOrderUpdate(order)

	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// DeleteOrder -> khusus admin
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	roleInterface, _ := c.Get("role")
	if roleInterface != "admin" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, id).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"order_id": id})
}
