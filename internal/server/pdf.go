package server

import (
	"io"
	"net/http"
	"strings"

	paymentdomain "github.com/collectpay/collectpay/internal/payment/domain"
	"github.com/collectpay/collectpay/internal/providers/pdf"
	"github.com/collectpay/collectpay/internal/timerange"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentsPDF streams a transactions report for the caller's scope.
func (s *Server) PaymentsPDF(c *gin.Context) {
	scope := scopeFromContext(c)

	resp, err := s.dashboardSvc.Transactions(c.Request.Context(), scope,
		paymentdomain.ListPaymentsRequest{
			AppID:  strings.TrimSpace(c.Query("appId")),
			Status: strings.TrimSpace(c.Query("ptStatus")),
			Limit:  pdf.MaxReportRows,
		},
		strings.TrimSpace(c.Query("filter")),
		strings.TrimSpace(c.Query("startDate")),
		strings.TrimSpace(c.Query("endDate")),
	)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var totalAmount, successAmount float64
	for _, payment := range resp.Data {
		totalAmount += payment.Amount
		if payment.PtStatus == paymentdomain.StatusSuccess {
			successAmount += payment.Amount
		}
	}

	now := s.clock.Now().In(timerange.IST)
	reader, err := s.pdfProvider.GeneratePaymentsReport(c.Request.Context(), pdf.ReportData{
		Title:         "Payments Report",
		GeneratedAt:   now.Format("2006-01-02 15:04 MST"),
		TotalCount:    resp.Count,
		TotalAmount:   totalAmount,
		SuccessAmount: successAmount,
		Payments:      resp.Data,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc, err := io.ReadAll(reader)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	filename := "payments-" + now.Format("20060102-1504") + ".pdf"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", doc)

	s.log.Debug("payments pdf generated",
		zap.Int64("rows", resp.Count),
		zap.Int("bytes", len(doc)),
	)
}
