package api

import (
	"errors"
	"net/http"
	"strconv"

	"evaluo/server/config"
	"evaluo/server/internal/bus"
	"evaluo/server/internal/database"
	"evaluo/server/internal/evaluators"
	"evaluo/server/internal/models"
	"evaluo/server/internal/notifications"
	"evaluo/server/internal/orders"
	"evaluo/server/internal/pricing"
	"evaluo/server/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	store         *orders.Store
	users         *users.Service
	notifications *notifications.Store
	directory     *evaluators.Directory
	bus           *bus.Bus
	archive       *database.Archive
	archivePath   string
	logger        *logrus.Logger
}

func NewHandler(store *orders.Store, userService *users.Service, notificationStore *notifications.Store, directory *evaluators.Directory, eventBus *bus.Bus, archive *database.Archive, archivePath string, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		store:         store,
		users:         userService,
		notifications: notificationStore,
		directory:     directory,
		bus:           eventBus,
		archive:       archive,
		archivePath:   archivePath,
		logger:        logger,
	}
}

type CreateOrderRequest struct {
	UserID       string               `json:"user_id" binding:"required"`
	Properties   []models.Property    `json:"properties" binding:"required"`
	AgentContact *models.AgentContact `json:"agent_contact"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CreateReportRequest struct {
	Comments string `json:"comments"`
	ImageURL string `json:"image_url"`
	VideoURL string `json:"video_url"`
}

type PricePropertyRequest struct {
	City        string      `json:"city"`
	Zone        models.Zone `json:"zone"`
	RushBooking bool        `json:"rush_booking"`
	Latitude    *float64    `json:"latitude"`
	Longitude   *float64    `json:"longitude"`
}

type PriceOrderRequest struct {
	PropertyTotals []float64 `json:"property_totals"`
	SurgeActive    bool      `json:"surge_active"`
}

type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
	Role  string `json:"role"`
}

type UpdateUserRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type UserIDRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

type MarkReadRequest struct {
	UserID         string `json:"user_id" binding:"required"`
	NotificationID string `json:"notification_id" binding:"required"`
}

// respondError maps domain errors to their HTTP shape
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case orders.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, orders.ErrOrderNotFound), errors.Is(err, users.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, orders.ErrOrderComplete), errors.Is(err, users.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.WithError(err).Error("Unexpected handler error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse create order request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}

	order, err := h.store.CreateOrder(req.UserID, req.Properties, req.AgentContact)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

func (h *Handler) GetOrders(c *gin.Context) {
	userID := c.Query("user_id")
	c.JSON(http.StatusOK, h.store.GetOrders(userID))
}

func (h *Handler) GetOrder(c *gin.Context) {
	order := h.store.GetOrder(c.Param("id"))
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse status update request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}

	order, err := h.store.UpdateStatus(c.Param("id"), req.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *Handler) AdvanceOrderStep(c *gin.Context) {
	order, err := h.store.AdvanceStep(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) CreateReport(c *gin.Context) {
	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse report request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}

	report, err := h.store.CreateReport(c.Param("id"), req.Comments, req.ImageURL, req.VideoURL)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, report)
}

func (h *Handler) GetReport(c *gin.Context) {
	report := h.store.GetReportForOrder(c.Param("id"))
	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no report for this order"})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) PriceProperty(c *gin.Context) {
	var req PricePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse property quote request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}

	zone := req.Zone
	if zone == "" && req.Latitude != nil && req.Longitude != nil {
		zone = pricing.ResolveZone(req.City, *req.Latitude, *req.Longitude)
	}
	if zone == "" {
		zone = models.ZoneA
	}

	c.JSON(http.StatusOK, pricing.PriceProperty(req.City, zone, req.RushBooking))
}

func (h *Handler) PriceOrder(c *gin.Context) {
	var req PriceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse order quote request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}

	c.JSON(http.StatusOK, pricing.PriceOrder(req.PropertyTotals, req.SurgeActive))
}

func (h *Handler) GetEvaluators(c *gin.Context) {
	c.JSON(http.StatusOK, h.directory.All())
}

func (h *Handler) GetCities(c *gin.Context) {
	c.JSON(http.StatusOK, config.SupportedCities)
}

func (h *Handler) GetSalesData(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.SalesData())
}

func (h *Handler) GetNotifications(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"notifications": h.notifications.List(userID),
		"unread":        h.notifications.UnreadCount(userID),
	})
}

func (h *Handler) MarkNotificationRead(c *gin.Context) {
	var req MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and notification_id are required"})
		return
	}

	marked := h.notifications.MarkRead(req.UserID, req.NotificationID)
	c.JSON(http.StatusOK, gin.H{"marked": marked})
}

func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	var req UserIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	flipped := h.notifications.MarkAllRead(req.UserID)
	c.JSON(http.StatusOK, gin.H{"marked": flipped})
}

func (h *Handler) ClearNotifications(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}
	h.notifications.ClearAll(userID)
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}

func (h *Handler) GetUsers(c *gin.Context) {
	c.JSON(http.StatusOK, h.users.GetUsers())
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse create user request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}

	user, err := h.users.CreateUser(req.Name, req.Email, req.Role)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}

	user, err := h.users.UpdateUser(c.Param("id"), req.Name, req.Role)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	if err := h.users.DeleteUser(c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) GetArchivedOrders(c *gin.Context) {
	if h.archive == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "archive is not configured"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}

	archived, err := h.archive.ListOrders(limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list archived orders")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list archived orders"})
		return
	}

	c.JSON(http.StatusOK, archived)
}

func (h *Handler) GetArchivedRevenue(c *gin.Context) {
	if h.archivePath == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "archive is not configured"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}

	summary, err := database.RevenueByUser(h.archivePath, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to summarize archived revenue")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to summarize revenue"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
