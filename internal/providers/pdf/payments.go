// Package pdf renders the downloadable payments report.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"go.uber.org/fx"

	paymentdomain "github.com/collectpay/collectpay/internal/payment/domain"
	"github.com/collectpay/collectpay/internal/timerange"
)

// MaxReportRows caps how many transactions a single report renders.
const MaxReportRows = 1000

type ReportData struct {
	Title         string
	GeneratedAt   string
	TotalCount    int64
	TotalAmount   float64
	SuccessAmount float64
	Payments      []paymentdomain.Payment
}

type Provider interface {
	GeneratePaymentsReport(ctx context.Context, data ReportData) (io.Reader, error)
}

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) GeneratePaymentsReport(ctx context.Context, data ReportData) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	title := data.Title
	if title == "" {
		title = "Payments Report"
	}
	m.AddRow(16,
		text.NewCol(8, title, props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
		text.NewCol(4, "Generated "+data.GeneratedAt, props.Text{
			Size:  9,
			Align: align.Right,
			Top:   6,
		}),
	)

	// Summary block
	m.AddRow(18,
		text.NewCol(4, fmt.Sprintf("Transactions: %d", data.TotalCount), props.Text{Size: 10, Top: 4}),
		text.NewCol(4, fmt.Sprintf("Total amount: %.2f", data.TotalAmount), props.Text{Size: 10, Top: 4}),
		text.NewCol(4, fmt.Sprintf("Success amount: %.2f", data.SuccessAmount), props.Text{Size: 10, Top: 4}),
	)

	// Table header
	m.AddRow(8,
		text.NewCol(3, "UUID", props.Text{Style: fontstyle.Bold, Size: 8}),
		text.NewCol(2, "App", props.Text{Style: fontstyle.Bold, Size: 8}),
		text.NewCol(2, "Status", props.Text{Style: fontstyle.Bold, Size: 8}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right}),
		text.NewCol(3, "Date (IST)", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right}),
	)

	rows := data.Payments
	if len(rows) > MaxReportRows {
		rows = rows[:MaxReportRows]
	}
	for _, payment := range rows {
		m.AddRow(6,
			text.NewCol(3, payment.UUID, props.Text{Size: 7}),
			text.NewCol(2, payment.AppID, props.Text{Size: 7}),
			text.NewCol(2, payment.PtStatus, props.Text{Size: 7}),
			text.NewCol(2, fmt.Sprintf("%.2f", payment.Amount), props.Text{Size: 7, Align: align.Right}),
			text.NewCol(3, payment.TransactionDate.In(timerange.IST).Format("2006-01-02 15:04"), props.Text{Size: 7, Align: align.Right}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate payments report: %w", err)
	}
	return bytes.NewReader(doc.GetBytes()), nil
}

var Module = fx.Module("providers.pdf",
	fx.Provide(New),
)
