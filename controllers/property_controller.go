package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"propertyhub-backend/models"
	"propertyhub-backend/services"
	"propertyhub-backend/utils"
)

type PropertyController struct {
	PropertySvc *services.PropertyService
	BookingSvc  *services.BookingService
}

func NewPropertyController(ps *services.PropertyService, bs *services.BookingService) *PropertyController {
	return &PropertyController{PropertySvc: ps, BookingSvc: bs}
}

func filterFromQuery(c *gin.Context) services.PropertyFilter {
	f := services.PropertyFilter{
		Query:  strings.TrimSpace(c.Query("q")),
		Type:   strings.TrimSpace(c.Query("type")),
		Status: strings.TrimSpace(c.Query("status")),
	}
	if v, err := strconv.ParseBool(c.Query("featured")); err == nil {
		f.Featured = &v
	}
	if v, err := strconv.ParseFloat(c.Query("minPrice"), 64); err == nil {
		f.MinPrice = v
	}
	if v, err := strconv.ParseFloat(c.Query("maxPrice"), 64); err == nil {
		f.MaxPrice = v
	}
	if v, err := strconv.Atoi(c.Query("minBedrooms")); err == nil {
		f.MinBedrooms = v
	}
	return f
}

// GET /api/properties and GET /api/admin/properties
func (ctrl *PropertyController) ListProperties(c *gin.Context) {
	list, err := ctrl.PropertySvc.List(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// GET /api/properties/featured
func (ctrl *PropertyController) FeaturedProperties(c *gin.Context) {
	list, err := ctrl.PropertySvc.Featured(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// GET /api/properties/:id
func (ctrl *PropertyController) GetProperty(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	p, err := ctrl.PropertySvc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, p)
}

// GET /api/properties/:id/quote?start=YYYY-MM-DD&end=YYYY-MM-DD
func (ctrl *PropertyController) QuoteStay(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	q, err := ctrl.BookingSvc.Quote(c.Request.Context(), id, c.Query("start"), c.Query("end"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, q)
}

// GET /api/amenities
func (ctrl *PropertyController) ListAmenities(c *gin.Context) {
	utils.JSONSuccess(c, http.StatusOK, models.Amenities)
}

// POST /api/admin/properties
func (ctrl *PropertyController) CreateProperty(c *gin.Context) {
	var in services.PropertyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	p, err := ctrl.PropertySvc.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, p)
}

// PUT /api/admin/properties/:id
func (ctrl *PropertyController) UpdateProperty(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in services.PropertyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	p, err := ctrl.PropertySvc.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, p)
}

// DELETE /api/admin/properties/:id
func (ctrl *PropertyController) DeleteProperty(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := ctrl.PropertySvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"id": id})
}

// GET /api/admin/properties/stats
func (ctrl *PropertyController) PropertyStats(c *gin.Context) {
	st, err := ctrl.PropertySvc.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, st)
}
