package routes

import (
	"log/slog"
	"net/http"

	"takeout/configs"
	"takeout/controllers"
	"takeout/entity"
	"takeout/middlewares"
	"takeout/services"
	"takeout/ws"

	"github.com/gin-gonic/gin"
)

// Deps คือ service ที่ main ประกอบไว้แล้ว (sweep ใช้ OrderService ตัวเดียวกัน)
type Deps struct {
	Cfg       *configs.Config
	Log       *slog.Logger
	Orders    *services.OrderService
	Cart      *services.CartService
	Addresses *services.AddressBookService
	Hub       *ws.OrderHub
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.Use(middlewares.RequestLogger(d.Log))
	r.Use(middlewares.CORSMiddleware(d.Cfg.CORSOrigins))
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	// Controllers
	cartCtrl := controllers.NewCartController(d.Cart)
	addrCtrl := controllers.NewAddressBookController(d.Addresses)
	orderCtrl := controllers.NewOrderController(d.Orders)
	adminCtrl := controllers.NewAdminOrderController(d.Orders)

	secret := d.Cfg.JWTSecret

	// Customer
	u := r.Group("/user", middlewares.AuthMiddleware(secret, entity.RoleCustomer))
	{
		cart := u.Group("/shoppingCart")
		cart.POST("/add", cartCtrl.Add)
		cart.GET("/list", cartCtrl.List)
		cart.POST("/sub", cartCtrl.Sub)
		cart.DELETE("/clean", cartCtrl.Clean)

		u.POST("/addressBook", addrCtrl.Add)
		u.GET("/addressBook/list", addrCtrl.List)

		o := u.Group("/order")
		o.POST("/submit", orderCtrl.Submit)
		o.PUT("/payment", orderCtrl.Payment)
		o.GET("/orderDetail/:id", orderCtrl.Detail)
		o.GET("/historyOrders", orderCtrl.History)
		o.PUT("/cancel/:id", orderCtrl.Cancel)
		o.POST("/repetition/:id", orderCtrl.Repetition)
		o.GET("/reminder/:id", orderCtrl.Reminder)
		o.GET("/qrcode/:id", orderCtrl.QRCode)
	}

	// Staff
	a := r.Group("/admin/order", middlewares.AuthMiddleware(secret, entity.RoleStaff))
	{
		a.GET("/details/:id", adminCtrl.Details)
		a.GET("/conditionSearch", adminCtrl.ConditionSearch)
		a.GET("/statistics", adminCtrl.Statistics)
		a.PUT("/confirm", adminCtrl.Confirm)
		a.PUT("/rejection", adminCtrl.Rejection)
		a.PUT("/cancel", adminCtrl.Cancel)
		a.PUT("/delivery/:id", adminCtrl.Delivery)
		a.PUT("/complete/:id", adminCtrl.Complete)
	}

	// WebSocket แจ้ง order ใหม่/เร่งให้หน้าจอพนักงาน
	if d.Hub != nil {
		r.GET("/ws/orders", middlewares.WSAuthMiddleware(secret, entity.RoleStaff), d.Hub.HandleWebSocket)
	}
}
