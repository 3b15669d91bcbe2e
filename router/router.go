package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"dinehall/controllers"
	"dinehall/localqueue"
	"dinehall/middlewares"
	"dinehall/models"
	"dinehall/services"
)

// SetupRouter wires the services and the route table. The public group is
// the diner-facing surface reached through a scanned table code; the
// authenticated group is the staff application.
func SetupRouter(db *gorm.DB, queue *localqueue.Queue, cache services.MenuCache) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware())
	r.Use(middlewares.LoggerMiddleware())

	// 50 requests per second per IP across the whole API. Must be
	// attached before any route: gin snapshots the handler chain at
	// registration time.
	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	tableSvc := services.NewTableService(db)
	orderSvc := services.NewOrderService(db)
	publicSvc := services.NewPublicOrderService(db, orderSvc, tableSvc, queue)
	reconcileSvc := services.NewReconcileService(orderSvc, queue)

	staffCtrl := controllers.NewStaffController(db)
	tableCtrl := controllers.NewTableController(tableSvc)
	menuCtrl := controllers.NewMenuController(db, cache)
	orderCtrl := controllers.NewOrderController(orderSvc, tableSvc)
	publicCtrl := controllers.NewPublicOrderController(publicSvc)
	pendingCtrl := controllers.NewPendingOrderController(reconcileSvc)
	reservationCtrl := controllers.NewReservationController(db)
	reportCtrl := controllers.NewReportController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Login and registration, strictly rate limited.
	authPublic := r.Group("/")
	authPublic.Use(middlewares.NewStrictRateLimiter())
	{
		authPublic.POST("/register", staffCtrl.Register)
		authPublic.POST("/login", staffCtrl.Login)
	}

	// Diner-facing ordering, no session required. The (restaurant, table)
	// pair in the path is the only scope.
	public := r.Group("/public/:restaurant_id")
	{
		public.GET("/menu", publicCtrl.GetPublicMenu)
		public.POST("/tables/:table_id/orders", publicCtrl.PlaceOrder)
	}

	// Staff application.
	staff := r.Group("/staff")
	staff.Use(middlewares.AuthMiddleware())
	{
		staff.GET("/events/ws", controllers.EventsHandler)
		staff.GET("/profile", staffCtrl.GetProfile)

		staff.GET("/tables", tableCtrl.GetAllTables)
		staff.GET("/tables/by-status", tableCtrl.FindTablesByStatus)
		staff.POST("/tables", tableCtrl.CreateTable)
		staff.GET("/tables/:table_id", tableCtrl.GetTableByID)
		staff.PATCH("/tables/:table_id/status", tableCtrl.UpdateTableStatus)
		staff.PATCH("/tables/:table_id/server", tableCtrl.AssignServer)
		staff.DELETE("/tables/:table_id", tableCtrl.DeleteTable)

		staff.GET("/menu", menuCtrl.GetAllMenuItems)
		staff.GET("/menu/by-category", menuCtrl.GetMenuByCategory)
		staff.POST("/menu", menuCtrl.CreateMenuItem)
		staff.GET("/menu/:menu_id", menuCtrl.GetMenuItemByID)
		staff.PATCH("/menu/:menu_id", menuCtrl.UpdateMenuItem)
		staff.DELETE("/menu/:menu_id", menuCtrl.DeleteMenuItem)

		staff.GET("/orders", orderCtrl.GetAllOrders)
		staff.POST("/orders", orderCtrl.CreateOrder)
		staff.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		staff.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
		staff.PATCH("/order-items/:item_id/status", orderCtrl.UpdateOrderItemStatus)

		staff.GET("/pending-orders", pendingCtrl.ListPendingOrders)
		staff.POST("/pending-orders/:local_id/replay", pendingCtrl.ReplayPendingOrder)

		staff.GET("/reservations", reservationCtrl.GetAllReservations)
		staff.POST("/reservations", reservationCtrl.CreateReservation)
		staff.PATCH("/reservations/:reservation_id/status", reservationCtrl.UpdateReservationStatus)
		staff.DELETE("/reservations/:reservation_id", reservationCtrl.DeleteReservation)

		// Staff administration and reports, manager/admin only.
		admin := staff.Group("/")
		admin.Use(middlewares.RequireRoles(models.RoleManager, models.RoleAdmin))
		{
			admin.GET("/members", staffCtrl.GetAllStaff)
			admin.PATCH("/members/:staff_id/role", staffCtrl.UpdateStaffRole)
			admin.DELETE("/members/:staff_id", staffCtrl.DeleteStaff)

			admin.GET("/reports/summary", reportCtrl.GetAnalyticsSummary)
			admin.GET("/reports/popular-items", reportCtrl.GetPopularItems)
			admin.GET("/reports/daily-sales", reportCtrl.GetDailySales)
		}
	}

	return r
}
