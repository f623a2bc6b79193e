package server

import (
	"net/http"
	"strings"

	spenddomain "github.com/collectpay/collectpay/internal/spend/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) UpsertSpend(c *gin.Context) {
	var req spenddomain.UpsertSpendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	spend, err := s.spendSvc.Upsert(c.Request.Context(), scopeFromContext(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": spend})
}

func (s *Server) ListSpends(c *gin.Context) {
	spends, err := s.spendSvc.List(c.Request.Context(), scopeFromContext(c), spendQuery(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(spends), "data": spends})
}

// ReconcileSpends reports the spend-vs-receipts outer join per IST day.
func (s *Server) ReconcileSpends(c *gin.Context) {
	rows, err := s.spendSvc.Reconcile(c.Request.Context(), scopeFromContext(c), spendQuery(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(rows), "data": rows})
}

func (s *Server) DeleteSpend(c *gin.Context) {
	spendID := strings.TrimSpace(c.Param("spendId"))
	if err := s.spendSvc.Delete(c.Request.Context(), scopeFromContext(c), spendID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"spendId": spendID, "deleted": true}})
}

func spendQuery(c *gin.Context) spenddomain.ListSpendsRequest {
	return spenddomain.ListSpendsRequest{
		AppID:     strings.TrimSpace(c.Query("appId")),
		Filter:    strings.TrimSpace(c.Query("filter")),
		StartDate: strings.TrimSpace(c.Query("startDate")),
		EndDate:   strings.TrimSpace(c.Query("endDate")),
	}
}
