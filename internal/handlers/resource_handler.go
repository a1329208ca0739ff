package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/zija9452/dashboard-frontend-sub001/internal/forwarder"
)

// ResourceHandler covers the resources whose dashboard pages are plain CRUD
// relays: brand, category, customers, vendors, expenses. Each method forwards
// the request to the resource's backend route and relays the result; nothing
// resource-specific happens on this side.
type ResourceHandler struct {
	name  string
	route forwarder.Route
	// viewRoute is the list endpoint when the backend exposes it under a
	// different path than the mutation endpoints (e.g. vendors/viewvendor).
	viewRoute forwarder.Route
	fwd       *forwarder.Forwarder
	log       *logrus.Logger
}

func NewResourceHandler(name string, route forwarder.Route, fwd *forwarder.Forwarder, logger *logrus.Logger) *ResourceHandler {
	return &ResourceHandler{
		name:      name,
		route:     route,
		viewRoute: route,
		fwd:       fwd,
		log:       logger,
	}
}

// WithViewRoute overrides the route List forwards to.
func (h *ResourceHandler) WithViewRoute(route forwarder.Route) *ResourceHandler {
	h.viewRoute = route
	return h
}

func (h *ResourceHandler) List(c *gin.Context) {
	h.log.WithField("handler", h.name+".List").Debug("Forwarding list request")
	h.fwd.Relay(c, h.viewRoute)
}

func (h *ResourceHandler) Get(c *gin.Context) {
	h.log.WithField("handler", h.name+".Get").Debug("Forwarding get request")
	h.fwd.Relay(c, h.route.WithID(c.Param("id")))
}

func (h *ResourceHandler) Create(c *gin.Context) {
	h.log.WithField("handler", h.name+".Create").Debug("Forwarding create request")
	h.fwd.Relay(c, h.route)
}

func (h *ResourceHandler) Update(c *gin.Context) {
	h.log.WithField("handler", h.name+".Update").Debug("Forwarding update request")
	h.fwd.Relay(c, h.route.WithID(c.Param("id")))
}

func (h *ResourceHandler) Delete(c *gin.Context) {
	h.log.WithField("handler", h.name+".Delete").Debug("Forwarding delete request")
	h.fwd.Relay(c, h.route.WithID(c.Param("id")))
}

// Register mounts the standard verb set under the given group.
func (h *ResourceHandler) Register(g *gin.RouterGroup) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
