package server

import (
	"net/http"
	"strings"

	collectiondomain "github.com/collectpay/collectpay/internal/collection/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) BatchUpsertCollections(c *gin.Context) {
	var req collectiondomain.BatchUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.collectionSvc.BatchUpsert(c.Request.Context(), scopeFromContext(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":  len(resp.Saved),
		"data":   resp.Saved,
		"errors": resp.Errors,
	})
}

func (s *Server) ListCollections(c *gin.Context) {
	collections, err := s.collectionSvc.List(c.Request.Context(), scopeFromContext(c), collectiondomain.ListRequest{
		AppID: strings.TrimSpace(c.Query("appId")),
		Tag:   strings.TrimSpace(c.Query("tag")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(collections), "data": collections})
}

func (s *Server) ListCollectionsByApp(c *gin.Context) {
	collections, err := s.collectionSvc.ListByApp(c.Request.Context(), scopeFromContext(c), strings.TrimSpace(c.Param("appId")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(collections), "data": collections})
}

// PickPrimaryCollection serves /collections/sc, the gateway's "success
// collect" slot, backed by the primary tag pool.
func (s *Server) PickPrimaryCollection(c *gin.Context) {
	s.pickCollection(c, collectiondomain.TagPrimary)
}

// PickRetryCollection serves /collections/rt from the retry tag pool.
func (s *Server) PickRetryCollection(c *gin.Context) {
	s.pickCollection(c, collectiondomain.TagRetry)
}

func (s *Server) pickCollection(c *gin.Context, tag string) {
	picked, err := s.collectionSvc.PickRandom(c.Request.Context(), scopeFromContext(c), strings.TrimSpace(c.Query("appId")), tag)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": picked})
}

func (s *Server) DeleteCollection(c *gin.Context) {
	collectionID := strings.TrimSpace(c.Param("collectionId"))
	appID := strings.TrimSpace(c.Query("appId"))

	if err := s.collectionSvc.Delete(c.Request.Context(), scopeFromContext(c), appID, collectionID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"collectionId": collectionID, "appId": appID, "deleted": true}})
}
