package api

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"trovacasa/server/internal/database"
	"trovacasa/server/internal/models"
	"trovacasa/server/internal/queue"
)

type Handler struct {
	db     *database.Database
	queue  *queue.PropertyEventQueue
	logger *logrus.Logger
}

type CreatePropertyRequest struct {
	Price              float64              `json:"price" binding:"required,gt=0"`
	SurfaceArea        float64              `json:"surface_area" binding:"required,gt=0"`
	NumRooms           int                  `json:"num_rooms" binding:"required,gt=0"`
	NumFloors          int                  `json:"num_floors"`
	PropertyType       models.PropertyType  `json:"property_type" binding:"required"`
	InsertionType      models.InsertionType `json:"insertion_type" binding:"required"`
	Condition          models.Condition     `json:"condition"`
	HasElevator        bool                 `json:"has_elevator"`
	HasAirConditioning bool                 `json:"has_air_conditioning"`
	HasConcierge       bool                 `json:"has_concierge"`
	IsFurnished        bool                 `json:"is_furnished"`
	EnergyClass        string               `json:"energy_class"`
	City               string               `json:"city" binding:"required"`
	Province           string               `json:"province"`
	PostalCode         string               `json:"postal_code"`
	Address            string               `json:"address"`
	Latitude           float64              `json:"latitude" binding:"min=-90,max=90"`
	Longitude          float64              `json:"longitude" binding:"min=-180,max=180"`
}

type CreateSavedSearchRequest struct {
	UserID          int64                 `json:"user_id" binding:"required"`
	MinPrice        *float64              `json:"min_price"`
	MaxPrice        *float64              `json:"max_price"`
	MinSurfaceArea  *float64              `json:"min_surface_area"`
	MaxSurfaceArea  *float64              `json:"max_surface_area"`
	MinRooms        *int                  `json:"min_rooms"`
	MaxRooms        *int                  `json:"max_rooms"`
	PropertyType    *models.PropertyType  `json:"property_type"`
	InsertionType   *models.InsertionType `json:"insertion_type"`
	Condition       *models.Condition     `json:"condition"`
	RequireElevator  bool                  `json:"require_elevator"`
	RequireAirCond   bool                  `json:"require_air_conditioning"`
	RequireConcierge bool                  `json:"require_concierge"`
	RequireFurnished bool                  `json:"require_furnished"`
	EnergyClass      *string               `json:"energy_class"`
	City             *string               `json:"city"`
	Province         *string               `json:"province"`
	PostalCode       *string               `json:"postal_code"`
	CenterLatitude   *float64              `json:"center_latitude"`
	CenterLongitude  *float64              `json:"center_longitude"`
	RadiusMeters     *float64              `json:"radius_meters"`
}

func NewHandler(db *database.Database, eventQueue *queue.PropertyEventQueue, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		db:     db,
		queue:  eventQueue,
		logger: logger,
	}
}

// CreateProperty persists a new listing and hands it to the notification
// queue. The queue push happens after the transaction committed and never
// delays or fails the response.
func (h *Handler) CreateProperty(c *gin.Context) {
	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	property := &models.Property{
		Price:              req.Price,
		SurfaceArea:        req.SurfaceArea,
		NumRooms:           req.NumRooms,
		NumFloors:          req.NumFloors,
		PropertyType:       req.PropertyType,
		InsertionType:      req.InsertionType,
		Condition:          req.Condition,
		HasElevator:        req.HasElevator,
		HasAirConditioning: req.HasAirConditioning,
		HasConcierge:       req.HasConcierge,
		IsFurnished:        req.IsFurnished,
		EnergyClass:        req.EnergyClass,
		City:               req.City,
		Province:           req.Province,
		PostalCode:         req.PostalCode,
		Address:            req.Address,
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
		CreatedAt:          time.Now(),
	}

	if err := h.db.CreateProperty(c.Request.Context(), property); err != nil {
		h.logger.WithError(err).Error("Failed to create property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create property"})
		return
	}

	if err := h.queue.Push(property); err != nil {
		// Dropped notifications are tolerable; the listing itself is saved.
		h.logger.WithError(err).WithField("property_id", property.ID).Warn("Could not enqueue property for notification")
	}

	c.JSON(http.StatusCreated, property)
}

func (h *Handler) GetProperties(c *gin.Context) {
	city := c.Query("city")

	var minPrice, maxPrice *float64
	if raw := c.Query("min_price"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_price"})
			return
		}
		minPrice = &value
	}
	if raw := c.Query("max_price"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max_price"})
			return
		}
		maxPrice = &value
	}

	properties, err := h.db.GetProperties(c.Request.Context(), city, minPrice, maxPrice)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list properties")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list properties"})
		return
	}

	c.JSON(http.StatusOK, properties)
}

func (h *Handler) GetProperty(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property id"})
		return
	}

	property, err := h.db.GetPropertyByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}

	c.JSON(http.StatusOK, property)
}

func (h *Handler) CreateSavedSearch(c *gin.Context) {
	var req CreateSavedSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	search := &models.SavedSearch{
		UserID:                 req.UserID,
		MinPrice:               req.MinPrice,
		MaxPrice:               req.MaxPrice,
		MinSurfaceArea:         req.MinSurfaceArea,
		MaxSurfaceArea:         req.MaxSurfaceArea,
		MinRooms:               req.MinRooms,
		MaxRooms:               req.MaxRooms,
		PropertyType:           req.PropertyType,
		InsertionType:          req.InsertionType,
		Condition:              req.Condition,
		RequireElevator:        req.RequireElevator,
		RequireAirConditioning: req.RequireAirCond,
		RequireConcierge:       req.RequireConcierge,
		RequireFurnished:       req.RequireFurnished,
		EnergyClass:            req.EnergyClass,
		City:                   req.City,
		Province:               req.Province,
		PostalCode:             req.PostalCode,
		CenterLatitude:         req.CenterLatitude,
		CenterLongitude:        req.CenterLongitude,
		RadiusMeters:           req.RadiusMeters,
		CreatedAt:              time.Now(),
	}

	if err := h.db.CreateSavedSearch(c.Request.Context(), search); err != nil {
		h.logger.WithError(err).Error("Failed to create saved search")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create saved search"})
		return
	}

	c.JSON(http.StatusCreated, search)
}

func (h *Handler) GetSavedSearches(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return
	}

	searches, err := h.db.GetSavedSearchesByUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list saved searches")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list saved searches"})
		return
	}

	c.JSON(http.StatusOK, searches)
}
