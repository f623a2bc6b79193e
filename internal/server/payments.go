package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/collectpay/collectpay/internal/access"
	paymentdomain "github.com/collectpay/collectpay/internal/payment/domain"
	"github.com/gin-gonic/gin"
)

// PaymentWebhook ingests one gateway delivery. Redeliveries of the same
// uuid update the stored row instead of duplicating it.
func (s *Server) PaymentWebhook(c *gin.Context) {
	var req paymentdomain.UpsertPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.metrics.ObserveWebhook(req.PtStatus, "rejected")
		AbortWithError(c, invalidRequestError())
		return
	}

	payment, created, err := s.paymentSvc.Upsert(c.Request.Context(), req)
	if err != nil {
		s.metrics.ObserveWebhook(req.PtStatus, "rejected")
		AbortWithError(c, err)
		return
	}

	outcome := "updated"
	status := http.StatusOK
	if created {
		outcome = "created"
		status = http.StatusCreated
	}
	s.metrics.ObserveWebhook(payment.PtStatus, outcome)

	c.JSON(status, gin.H{"data": payment})
}

func (s *Server) ListWebhookPayments(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	resp, err := s.paymentSvc.List(c.Request.Context(), access.Unrestricted(), paymentdomain.ListPaymentsRequest{
		AppID:  strings.TrimSpace(c.Query("appId")),
		Status: strings.TrimSpace(c.Query("ptStatus")),
		Page:   page,
		Limit:  limit,
	})
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

func (s *Server) GetWebhookPayment(c *gin.Context) {
	payment, err := s.paymentSvc.GetByUUID(c.Request.Context(), access.Unrestricted(), c.Param("uuid"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": payment})
}
