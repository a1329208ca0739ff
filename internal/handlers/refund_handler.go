package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/zija9452/dashboard-frontend-sub001/internal/pagination"
)

// Refund is an illustrative refund/invoice row. The refunds page is not wired
// to a real backend endpoint yet, so this handler serves a fixed dataset with
// the same list/search/paginate behavior the live pages have.
type Refund struct {
	ID            int             `json:"id"`
	InvoiceNo     string          `json:"invoice_no"`
	Customer      string          `json:"customer"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	RefundAmount  decimal.Decimal `json:"refund_amount"`
	PaymentStatus string          `json:"payment_status"`
	IssuedAt      string          `json:"issued_at"`
}

type RefundHandler struct {
	refunds  []Refund
	pageSize int
	log      *logrus.Logger
}

func NewRefundHandler(logger *logrus.Logger) *RefundHandler {
	return &RefundHandler{
		refunds:  sampleRefunds(),
		pageSize: 10,
		log:      logger,
	}
}

// List filters client-side by substring match on invoice number, customer and
// payment status, then slices the requested page. Asking for a page past the
// end renders the last page.
func (h *RefundHandler) List(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "Refund.List")

	term := c.Query("search")
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(h.pageSize)))
	if err != nil || pageSize <= 0 {
		pageSize = h.pageSize
	}

	filtered := make([]Refund, 0, len(h.refunds))
	for _, r := range h.refunds {
		if pagination.Matches(term, r.InvoiceNo, r.Customer, r.PaymentStatus) {
			filtered = append(filtered, r)
		}
	}

	totalPages := pagination.Pages(len(filtered), pageSize)
	page = pagination.Clamp(page, totalPages)
	lo, hi := pagination.Bounds(page, pageSize, len(filtered))

	handlerLogger.Debugf("Serving refunds page %d/%d (%d rows, search %q)", page, totalPages, hi-lo, term)
	c.JSON(http.StatusOK, gin.H{
		"items":       filtered[lo:hi],
		"total_items": len(filtered),
		"total_pages": totalPages,
		"page":        page,
		"page_size":   pageSize,
	})
}

func sampleRefunds() []Refund {
	amount := func(s string) decimal.Decimal {
		d, _ := decimal.NewFromString(s)
		return d
	}
	return []Refund{
		{ID: 1, InvoiceNo: "INV-1001", Customer: "Walk-in", TotalAmount: amount("249.99"), RefundAmount: amount("249.99"), PaymentStatus: "refunded", IssuedAt: "2025-11-02"},
		{ID: 2, InvoiceNo: "INV-1002", Customer: "Acme Retail", TotalAmount: amount("1200.00"), RefundAmount: amount("350.00"), PaymentStatus: "partial", IssuedAt: "2025-11-05"},
		{ID: 3, InvoiceNo: "INV-1003", Customer: "J. Moreno", TotalAmount: amount("89.50"), RefundAmount: amount("0.00"), PaymentStatus: "pending", IssuedAt: "2025-11-07"},
		{ID: 4, InvoiceNo: "INV-1004", Customer: "Walk-in", TotalAmount: amount("15.75"), RefundAmount: amount("15.75"), PaymentStatus: "refunded", IssuedAt: "2025-11-09"},
		{ID: 5, InvoiceNo: "INV-1005", Customer: "Northside Cafe", TotalAmount: amount("540.20"), RefundAmount: amount("120.00"), PaymentStatus: "partial", IssuedAt: "2025-11-12"},
		{ID: 6, InvoiceNo: "INV-1006", Customer: "K. Patel", TotalAmount: amount("310.00"), RefundAmount: amount("310.00"), PaymentStatus: "refunded", IssuedAt: "2025-11-15"},
		{ID: 7, InvoiceNo: "INV-1007", Customer: "Acme Retail", TotalAmount: amount("78.30"), RefundAmount: amount("0.00"), PaymentStatus: "rejected", IssuedAt: "2025-11-18"},
		{ID: 8, InvoiceNo: "INV-1008", Customer: "Walk-in", TotalAmount: amount("442.10"), RefundAmount: amount("442.10"), PaymentStatus: "refunded", IssuedAt: "2025-11-21"},
		{ID: 9, InvoiceNo: "INV-1009", Customer: "L. Okafor", TotalAmount: amount("66.00"), RefundAmount: amount("20.00"), PaymentStatus: "partial", IssuedAt: "2025-11-24"},
		{ID: 10, InvoiceNo: "INV-1010", Customer: "Northside Cafe", TotalAmount: amount("925.45"), RefundAmount: amount("0.00"), PaymentStatus: "pending", IssuedAt: "2025-11-27"},
		{ID: 11, InvoiceNo: "INV-1011", Customer: "Walk-in", TotalAmount: amount("33.25"), RefundAmount: amount("33.25"), PaymentStatus: "refunded", IssuedAt: "2025-11-29"},
		{ID: 12, InvoiceNo: "INV-1012", Customer: "K. Patel", TotalAmount: amount("150.00"), RefundAmount: amount("75.00"), PaymentStatus: "partial", IssuedAt: "2025-12-01"},
	}
}
