package server

import (
	"net/http"
	"strconv"
	"strings"

	dashboarddomain "github.com/collectpay/collectpay/internal/dashboard/domain"
	paymentdomain "github.com/collectpay/collectpay/internal/payment/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) DashboardOverview(c *gin.Context) {
	overview, err := s.dashboardSvc.Overview(c.Request.Context(), scopeFromContext(c), dashboardQuery(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": overview})
}

func (s *Server) DashboardTransactions(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	resp, err := s.dashboardSvc.Transactions(c.Request.Context(), scopeFromContext(c),
		paymentdomain.ListPaymentsRequest{
			AppID:  strings.TrimSpace(c.Query("appId")),
			Status: strings.TrimSpace(c.Query("ptStatus")),
			Page:   page,
			Limit:  limit,
		},
		strings.TrimSpace(c.Query("filter")),
		strings.TrimSpace(c.Query("startDate")),
		strings.TrimSpace(c.Query("endDate")),
	)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":      resp.Count,
		"data":       resp.Data,
		"page":       resp.Page,
		"limit":      resp.Limit,
		"totalPages": resp.TotalPages,
	})
}

func (s *Server) DashboardDailySales(c *gin.Context) {
	day, err := s.dashboardSvc.DailySales(c.Request.Context(), scopeFromContext(c),
		strings.TrimSpace(c.Query("appId")), strings.TrimSpace(c.Query("date")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": day})
}

func (s *Server) DashboardPerformance(c *gin.Context) {
	perf, err := s.dashboardSvc.Performance(c.Request.Context(), scopeFromContext(c), dashboardQuery(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": perf})
}

func (s *Server) DashboardPerformanceHourly(c *gin.Context) {
	perf, err := s.dashboardSvc.PerformanceHourly(c.Request.Context(), scopeFromContext(c), dashboardQuery(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": perf})
}

func dashboardQuery(c *gin.Context) dashboarddomain.Query {
	return dashboarddomain.Query{
		AppID:     strings.TrimSpace(c.Query("appId")),
		Filter:    strings.TrimSpace(c.Query("filter")),
		StartDate: strings.TrimSpace(c.Query("startDate")),
		EndDate:   strings.TrimSpace(c.Query("endDate")),
	}
}
