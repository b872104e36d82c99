package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	api := router.Group("/api")
	{
		api.POST("/orders", handler.CreateOrder)
		api.GET("/orders", handler.GetOrders)
		api.GET("/orders/:id", handler.GetOrder)
		api.PUT("/orders/:id/status", handler.UpdateOrderStatus)
		api.POST("/orders/:id/advance", handler.AdvanceOrderStep)
		api.POST("/orders/:id/report", handler.CreateReport)
		api.GET("/orders/:id/report", handler.GetReport)

		api.POST("/pricing/property", handler.PriceProperty)
		api.POST("/pricing/order", handler.PriceOrder)

		api.GET("/evaluators", handler.GetEvaluators)
		api.GET("/cities", handler.GetCities)
		api.GET("/sales", handler.GetSalesData)

		api.GET("/notifications", handler.GetNotifications)
		api.POST("/notifications/read", handler.MarkNotificationRead)
		api.POST("/notifications/read-all", handler.MarkAllNotificationsRead)
		api.DELETE("/notifications", handler.ClearNotifications)

		api.GET("/users", handler.GetUsers)
		api.POST("/users", handler.CreateUser)
		api.PUT("/users/:id", handler.UpdateUser)
		api.DELETE("/users/:id", handler.DeleteUser)

		api.GET("/archive", handler.GetArchivedOrders)
		api.GET("/archive/revenue", handler.GetArchivedRevenue)

		api.GET("/events/:channel", handler.StreamEvents)
	}
}
