package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/food-order-bot/models"
	"github.com/yeremiapane/food-order-bot/utils"
)

type CustomerController struct {
	DB *gorm.DB
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{DB: db}
}

// GetAllCustomers -> daftar pelanggan bot untuk dashboard
func (cc *CustomerController) GetAllCustomers(c *gin.Context) {
	var customers []models.Customer
	if err := cc.DB.Preload("Addresses").Find(&customers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of customers", customers)
}

// GetCustomerByID -> detail pelanggan + riwayat order
func (cc *CustomerController) GetCustomerByID(c *gin.Context) {
	idStr := c.Param("customer_id")
	id, _ := strconv.Atoi(idStr)

	var customer models.Customer
	if err := cc.DB.Preload("Addresses").First(&customer, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var orders []models.Order
	if err := cc.DB.
		Preload("OrderItems").
		Preload("OrderItems.Menu").
		Where("customer_id = ?", customer.ID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Customer detail", gin.H{
		"customer": customer,
		"orders":   orders,
	})
}
