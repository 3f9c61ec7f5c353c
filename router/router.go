package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/food-order-bot/controllers"
	"github.com/yeremiapane/food-order-bot/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.CORSMiddlewares())

	// 50 request per detik per IP untuk seluruh API
	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	userController := controllers.NewUserController(db)
	categoryController := controllers.NewMenuCategoryController(db)
	menuController := controllers.NewMenuController(db)
	orderController := controllers.NewOrderController(db)
	customerController := controllers.NewCustomerController(db)

	// Public
	r.POST("/register", middlewares.NewStrictRateLimiter(), userController.Register)
	r.POST("/login", middlewares.NewStrictRateLimiter(), userController.Login)
	r.GET("/menus", menuController.GetAllMenus)
	r.GET("/menus/category", menuController.GetMenuByCategory)
	r.GET("/menus/:menu_id", menuController.GetMenuByID)
	r.GET("/categories", categoryController.GetAllCategories)

	// Butuh login (admin/staff)
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware())
	{
		admin.POST("/logout", userController.Logout)
		admin.GET("/profile", userController.GetProfile)
		admin.GET("/users", userController.GetAllUsers)

		admin.POST("/categories", categoryController.CreateCategory)
		admin.PATCH("/categories/:cat_id", categoryController.UpdateCategory)
		admin.DELETE("/categories/:cat_id", categoryController.DeleteCategory)

		admin.POST("/menus", menuController.CreateMenu)
		admin.PATCH("/menus/:menu_id", menuController.UpdateMenu)
		admin.DELETE("/menus/:menu_id", menuController.DeleteMenu)

		admin.GET("/orders", orderController.GetAllOrders)
		admin.GET("/orders/:order_id", orderController.GetOrderByID)
		admin.PATCH("/orders/:order_id/status", middlewares.RequireRole("staff"), orderController.UpdateOrderStatus)
		admin.DELETE("/orders/:order_id", orderController.DeleteOrder)

		admin.GET("/customers", customerController.GetAllCustomers)
		admin.GET("/customers/:customer_id", customerController.GetCustomerByID)
	}

	// Feed order live untuk dashboard
	r.GET("/ws/feed", middlewares.AuthMiddleware(), controllers.FeedWebSocket)

	return r
}
