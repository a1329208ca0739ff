package handlers

import (
	"time"

	"github.com/zija9452/dashboard-frontend-sub001/internal/forwarder"
)

// Routes is the per-resource mapping table: which backend path each
// browser-facing route forwards to, with its timeout and body quirks.
// Ordinary routes leave Timeout zero and take the forwarder default.
type Routes struct {
	Brand           forwarder.Route
	Category        forwarder.Route
	Products        forwarder.Route
	ProductsView    forwarder.Route
	StockView       forwarder.Route
	StockAdjust     forwarder.Route
	StockReport     forwarder.Route
	Customers       forwarder.Route
	Vendors         forwarder.Route
	VendorsView     forwarder.Route
	Expenses        forwarder.Route
	WalkinInvoice   forwarder.Route
	CustomerInvoice forwarder.Route
	// CustomerInvoiceUpdate remaps the dashboard's field names to the ones the
	// backend's edit endpoint expects.
	CustomerInvoiceUpdate forwarder.Route
}

func NewRoutes(reportTimeout time.Duration) Routes {
	return Routes{
		Brand:         forwarder.Route{Path: "brand/"},
		Category:      forwarder.Route{Path: "category/"},
		Products:      forwarder.Route{Path: "products/"},
		ProductsView:  forwarder.Route{Path: "products/view-product"},
		StockView:     forwarder.Route{Path: "stock/viewstock"},
		StockAdjust:   forwarder.Route{Path: "stock/adjuststock"},
		StockReport:   forwarder.Route{Path: "stock/report", Timeout: reportTimeout, Multipart: true},
		Customers:     forwarder.Route{Path: "customers/"},
		Vendors:       forwarder.Route{Path: "vendors/"},
		VendorsView:   forwarder.Route{Path: "vendors/viewvendor"},
		Expenses:      forwarder.Route{Path: "expenses/"},
		WalkinInvoice: forwarder.Route{Path: "walkin-invoice/"},
		CustomerInvoice: forwarder.Route{
			Path: "customerinvoice/",
		},
		CustomerInvoiceUpdate: forwarder.Route{
			Path: "customerinvoice/",
			Remap: map[string]string{
				"customer":     "e_name",
				"total_amount": "e_amount",
			},
		},
	}
}
