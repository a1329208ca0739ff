package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/zija9452/dashboard-frontend-sub001/internal/adjustment"
	"github.com/zija9452/dashboard-frontend-sub001/internal/forwarder"
	"github.com/zija9452/dashboard-frontend-sub001/internal/labels"
)

type StockHandler struct {
	routes Routes
	fwd    *forwarder.Forwarder
	log    *logrus.Logger
}

func NewStockHandler(routes Routes, fwd *forwarder.Forwarder, logger *logrus.Logger) *StockHandler {
	return &StockHandler{
		routes: routes,
		fwd:    fwd,
		log:    logger,
	}
}

// View forwards the stock list request. The backend receives search_string
// and paging parameters verbatim and returns the filtered, sliced page.
func (h *StockHandler) View(c *gin.Context) {
	h.log.WithField("handler", "Stock.View").Debug("Forwarding stock view request")
	h.fwd.Relay(c, h.routes.StockView)
}

// AdjustLineRequest is one line of the batch the adjustment page submits.
type AdjustLineRequest struct {
	ProductID    int    `json:"product_id" binding:"required"`
	ProductName  string `json:"product_name"`
	CurrentStock int    `json:"current_stock"`
	Action       string `json:"action" binding:"required"`
	Quantity     int    `json:"quantity" binding:"required"`
	Reason       string `json:"reason"`
}

// Adjust validates the whole batch client-side, then forwards it as one array
// payload. A rejected batch never reaches the network, and a failed forward
// changes nothing server-side, so the page keeps its lines for retry either way.
func (h *StockHandler) Adjust(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "Stock.Adjust")

	var lines []AdjustLineRequest
	if err := c.ShouldBindJSON(&lines); err != nil {
		handlerLogger.Warnf("Failed to bind adjustment batch: %v", err)
		forwarder.WriteEnvelope(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	sess := adjustment.NewSession()
	for _, line := range lines {
		err := sess.Add(adjustment.Line{
			ProductID:    line.ProductID,
			ProductName:  line.ProductName,
			CurrentStock: line.CurrentStock,
			Action:       adjustment.Action(line.Action),
			Quantity:     line.Quantity,
			Reason:       line.Reason,
		})
		if err != nil {
			handlerLogger.Warnf("Rejected adjustment batch: %v", err)
			forwarder.WriteEnvelope(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	if err := sess.Validate(); err != nil {
		handlerLogger.Warnf("Adjustment batch failed validation: %v", err)
		forwarder.WriteEnvelope(c, http.StatusBadRequest, err.Error())
		return
	}

	payload, err := sess.Payload()
	if err != nil {
		handlerLogger.Errorf("Failed to marshal adjustment payload: %v", err)
		forwarder.WriteEnvelope(c, http.StatusInternalServerError, "failed to build adjustment payload")
		return
	}

	res, envErr := h.fwd.Do(c.Request.Context(), h.routes.StockAdjust, forwarder.Request{
		Method: http.MethodPost,
		Body:   bytes.NewReader(payload),
		Cookie: forwarder.CookieFrom(c),
	})
	if envErr != nil {
		c.JSON(envErr.Status, envErr)
		return
	}

	processed := adjustment.ProcessedCount(res.Body, sess.Len())
	handlerLogger.Infof("Adjustment batch applied: %d of %d lines", processed, sess.Len())
	c.JSON(http.StatusOK, gin.H{
		"message":   fmt.Sprintf("%d stock adjustments applied", processed),
		"processed": processed,
	})
}

// Report relays the multipart report upload with the long timeout; the
// backend answers with a base64-encoded PDF that passes through untouched.
func (h *StockHandler) Report(c *gin.Context) {
	h.log.WithField("handler", "Stock.Report").Debug("Forwarding stock report request")
	h.fwd.Relay(c, h.routes.StockReport)
}

// LabelRequest is one product row the page wants a shelf label for.
type LabelRequest struct {
	ProductName string `json:"product_name" binding:"required"`
	Barcode     string `json:"barcode" binding:"required"`
	Price       string `json:"price"`
	Branch      string `json:"branch"`
}

// Labels renders ZPL label text for the submitted rows and serves it as a
// plain-text download. No backend call: the page already has the row data.
func (h *StockHandler) Labels(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "Stock.Labels")

	var reqs []LabelRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		handlerLogger.Warnf("Failed to bind label request: %v", err)
		forwarder.WriteEnvelope(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(reqs) == 0 {
		forwarder.WriteEnvelope(c, http.StatusBadRequest, "no labels requested")
		return
	}

	ls := make([]labels.Label, 0, len(reqs))
	for _, r := range reqs {
		price, err := decimal.NewFromString(r.Price)
		if err != nil {
			price = decimal.Zero
		}
		ls = append(ls, labels.Label{
			ProductName: r.ProductName,
			Barcode:     r.Barcode,
			Price:       price,
			Branch:      r.Branch,
		})
	}

	handlerLogger.Infof("Rendering %d ZPL labels", len(ls))
	c.Header("Content-Disposition", `attachment; filename="labels.zpl"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(labels.Batch(ls)))
}
