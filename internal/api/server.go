package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/estensen/marketplace-api/internal/address"
	"github.com/estensen/marketplace-api/internal/aggregator"
)

const notFoundBody = "The requested resource could not be found"

// Server represents the API server with necessary dependencies.
type Server struct {
	Aggregator aggregator.Aggregator
	Logger     logrus.FieldLogger
}

// NewServer initializes a new API server instance.
func NewServer(agg aggregator.Aggregator, logger logrus.FieldLogger) *Server {
	return &Server{
		Aggregator: agg,
		Logger:     logger,
	}
}

// AllListingsHandler handles GET /all-listings.
func (s *Server) AllListingsHandler(c *gin.Context) {
	listings, err := s.Aggregator.ActiveListings(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listings)
}

// CollectionDataHandler handles GET /collection-data/:id.
func (s *Server) CollectionDataHandler(c *gin.Context) {
	contract := address.Normalize(c.Param("id"))

	stats, err := s.Aggregator.CollectionStats(c.Request.Context(), contract)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ListingsByOwnerHandler handles GET /listings/:owner.
func (s *Server) ListingsByOwnerHandler(c *gin.Context) {
	owner := address.Normalize(c.Param("owner"))

	listings, err := s.Aggregator.ListingsByOwner(c.Request.Context(), owner)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listings)
}

// PurchasesHandler handles GET /purchases/:address.
func (s *Server) PurchasesHandler(c *gin.Context) {
	buyer := address.Normalize(c.Param("address"))

	purchases, err := s.Aggregator.PurchasesByBuyer(c.Request.Context(), buyer)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, purchases)
}

// NotFoundHandler answers every unrouted request.
func (s *Server) NotFoundHandler(c *gin.Context) {
	c.String(http.StatusNotFound, notFoundBody)
}

// respondError maps lookups with no result to 400 and every other
// failure to 500.
func (s *Server) respondError(c *gin.Context, err error) {
	if aggregator.IsNotFound(err) {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	s.Logger.WithFields(logrus.Fields{
		"path":       c.Request.URL.Path,
		"request_id": c.GetString(requestIDKey),
	}).WithError(err).Error("Error serving request")
	c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}
