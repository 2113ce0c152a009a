package api

import (
	"github.com/gin-gonic/gin"
)

// NewRouter builds the public route table.
func NewRouter(server *Server) *gin.Engine {
	router := gin.New()
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	router.Use(
		RequestID(),
		RequestLogger(server.Logger),
		Metrics(),
		Recovery(server.Logger),
	)

	router.GET("/all-listings", server.AllListingsHandler)
	router.GET("/collection-data/:id", server.CollectionDataHandler)
	router.GET("/listings/:owner", server.ListingsByOwnerHandler)
	router.GET("/purchases/:address", server.PurchasesHandler)

	router.NoRoute(server.NotFoundHandler)

	return router
}
