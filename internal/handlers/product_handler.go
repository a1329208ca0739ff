package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/zija9452/dashboard-frontend-sub001/internal/backend"
	"github.com/zija9452/dashboard-frontend-sub001/internal/forwarder"
)

type ProductHandler struct {
	routes  Routes
	fwd     *forwarder.Forwarder
	backend *backend.Client
	log     *logrus.Logger
}

func NewProductHandler(routes Routes, fwd *forwarder.Forwarder, client *backend.Client, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		routes:  routes,
		fwd:     fwd,
		backend: client,
		log:     logger,
	}
}

// List forwards to the backend's product view endpoint; search_string and
// paging query parameters pass through untouched, the backend filters and
// slices.
func (h *ProductHandler) List(c *gin.Context) {
	h.log.WithField("handler", "Product.List").Debug("Forwarding product list request")
	h.fwd.Relay(c, h.routes.ProductsView)
}

func (h *ProductHandler) Create(c *gin.Context) {
	h.fwd.Relay(c, h.routes.Products)
}

func (h *ProductHandler) Update(c *gin.Context) {
	h.fwd.Relay(c, h.routes.Products.WithID(c.Param("id")))
}

func (h *ProductHandler) Delete(c *gin.Context) {
	h.fwd.Relay(c, h.routes.Products.WithID(c.Param("id")))
}

// LookupBarcode resolves a scanned barcode through the typed backend client
// (exact match, retried) so the adjustment page gets either one product or a
// clean not-found.
func (h *ProductHandler) LookupBarcode(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "Product.LookupBarcode")

	code := strings.TrimSpace(c.Query("code"))
	if code == "" {
		handlerLogger.Warn("Barcode lookup without code parameter")
		forwarder.WriteEnvelope(c, http.StatusBadRequest, "barcode code parameter is required")
		return
	}

	product, err := h.backend.LookupBarcode(c.Request.Context(), forwarder.CookieFrom(c), code)
	if err != nil {
		handlerLogger.Warnf("Barcode lookup failed for %q: %v", code, err)
		forwarder.WriteEnvelope(c, http.StatusNotFound, err.Error())
		return
	}

	c.JSON(http.StatusOK, product)
}
