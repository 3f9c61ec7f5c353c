package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/food-order-bot/models"
	"github.com/yeremiapane/food-order-bot/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetAllMenus -> semua menu yang tersedia
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	var menus []models.Menu
	if err := mc.DB.Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", menus)
}

// GetMenuByCategory -> filter menu per kategori (query ?category_id=)
func (mc *MenuController) GetMenuByCategory(c *gin.Context) {
	catStr := c.Query("category_id")
	catID, err := strconv.Atoi(catStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var menus []models.Menu
	if err := mc.DB.Where("category_id = ?", catID).Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menus by category", menus)
}

// CreateMenu
func (mc *MenuController) CreateMenu(c *gin.Context) {
	var body struct {
		CategoryID  uint    `json:"category_id" binding:"required"`
		Name        string  `json:"name" binding:"required"`
		Price       float64 `json:"price" binding:"required"`
		Description string  `json:"description"`
		ImageUrl    *string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	menu := models.Menu{
		CategoryID:  body.CategoryID,
		Name:        body.Name,
		Price:       body.Price,
		Description: body.Description,
		ImageUrl:    body.ImageUrl,
		Available:   true,
	}
	if err := mc.DB.Create(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Menu created", menu)
}

// GetMenuByID -> detail 1 menu
func (mc *MenuController) GetMenuByID(c *gin.Context) {
	idStr := c.Param("menu_id")
	id, _ := strconv.Atoi(idStr)

	var menu models.Menu
	if err := mc.DB.First(&menu, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu detail", menu)
}

// UpdateMenu
func (mc *MenuController) UpdateMenu(c *gin.Context) {
	idStr := c.Param("menu_id")
	id, _ := strconv.Atoi(idStr)

	var menu models.Menu
	if err := mc.DB.First(&menu, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var body struct {
		Name        *string  `json:"name"`
		Price       *float64 `json:"price"`
		Description *string  `json:"description"`
		Available   *bool    `json:"available"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Name != nil {
		menu.Name = *body.Name
	}
	if body.Price != nil {
		menu.Price = *body.Price
	}
	if body.Description != nil {
		menu.Description = *body.Description
	}
	if body.Available != nil {
		menu.Available = *body.Available
	}

	if err := mc.DB.Save(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu updated", menu)
}

// DeleteMenu
func (mc *MenuController) DeleteMenu(c *gin.Context) {
	idStr := c.Param("menu_id")
	id, _ := strconv.Atoi(idStr)

	if err := mc.DB.Delete(&models.Menu{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu deleted", gin.H{"menu_id": id})
}
