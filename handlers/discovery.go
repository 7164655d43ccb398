package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"hairbook/models"
	"hairbook/services/discovery"
	"hairbook/utils"

	"github.com/gin-gonic/gin"
)

// DiscoveryHandler exposes the stylist search endpoint.
type DiscoveryHandler struct {
	Service discovery.DiscoveryService
}

// NewDiscoveryHandler creates a DiscoveryHandler.
func NewDiscoveryHandler(svc discovery.DiscoveryService) *DiscoveryHandler {
	return &DiscoveryHandler{Service: svc}
}

// SearchHandler answers "find stylists near X". Query params: location,
// radius_km (geo mode when > 0), offset, limit.
func (h *DiscoveryHandler) SearchHandler(c *gin.Context) {
	query := discovery.SearchQuery{
		Location: c.Query("location"),
	}
	if v := c.Query("radius_km"); v != "" {
		radius, err := strconv.ParseFloat(v, 64)
		if err != nil || radius < 0 {
			utils.JSONError(c, http.StatusBadRequest, "invalid radius_km", "")
			return
		}
		query.RadiusKm = radius
	}
	if v := c.Query("offset"); v != "" {
		query.Offset, _ = strconv.Atoi(v)
	}
	if v := c.Query("limit"); v != "" {
		query.Limit, _ = strconv.Atoi(v)
	}

	results, err := h.Service.Search(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, discovery.ErrUnresolvableLocation) {
			// A geocoder miss degrades to an empty, flagged result.
			c.JSON(http.StatusOK, gin.H{
				"results": []models.StylistSummary{},
				"warning": "query location could not be resolved",
			})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "search failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}
