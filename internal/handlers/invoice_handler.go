package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/zija9452/dashboard-frontend-sub001/internal/forwarder"
)

// InvoiceHandler covers both invoice families. Walk-in invoices are plain
// relays; the customer invoice update route carries a field remap because the
// backend's edit endpoint predates the dashboard's field names.
type InvoiceHandler struct {
	routes Routes
	fwd    *forwarder.Forwarder
	log    *logrus.Logger
}

func NewInvoiceHandler(routes Routes, fwd *forwarder.Forwarder, logger *logrus.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		routes: routes,
		fwd:    fwd,
		log:    logger,
	}
}

func (h *InvoiceHandler) WalkinList(c *gin.Context) {
	h.fwd.Relay(c, h.routes.WalkinInvoice)
}

func (h *InvoiceHandler) WalkinCreate(c *gin.Context) {
	h.fwd.Relay(c, h.routes.WalkinInvoice)
}

func (h *InvoiceHandler) WalkinGet(c *gin.Context) {
	h.fwd.Relay(c, h.routes.WalkinInvoice.WithID(c.Param("id")))
}

func (h *InvoiceHandler) WalkinDelete(c *gin.Context) {
	h.fwd.Relay(c, h.routes.WalkinInvoice.WithID(c.Param("id")))
}

func (h *InvoiceHandler) CustomerList(c *gin.Context) {
	h.fwd.Relay(c, h.routes.CustomerInvoice)
}

func (h *InvoiceHandler) CustomerCreate(c *gin.Context) {
	h.fwd.Relay(c, h.routes.CustomerInvoice)
}

func (h *InvoiceHandler) CustomerGet(c *gin.Context) {
	h.fwd.Relay(c, h.routes.CustomerInvoice.WithID(c.Param("id")))
}

// CustomerUpdate forwards through the remapping route: the dashboard sends
// customer / total_amount, the backend expects e_name / e_amount.
func (h *InvoiceHandler) CustomerUpdate(c *gin.Context) {
	h.log.WithField("handler", "Invoice.CustomerUpdate").Debug("Forwarding customer invoice update with field remap")
	h.fwd.Relay(c, h.routes.CustomerInvoiceUpdate.WithID(c.Param("id")))
}

func (h *InvoiceHandler) CustomerDelete(c *gin.Context) {
	h.fwd.Relay(c, h.routes.CustomerInvoice.WithID(c.Param("id")))
}
