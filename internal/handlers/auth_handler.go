package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/zija9452/dashboard-frontend-sub001/internal/backend"
	"github.com/zija9452/dashboard-frontend-sub001/internal/forwarder"
)

const sessionMaxAge = 24 * 60 * 60 // seconds

type AuthHandler struct {
	backend      *backend.Client
	cookieName   string
	secureCookie bool
	log          *logrus.Logger
}

func NewAuthHandler(client *backend.Client, cookieName string, secureCookie bool, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		backend:      client,
		cookieName:   cookieName,
		secureCookie: secureCookie,
		log:          logger,
	}
}

// LoginRequest is what the login page submits: credentials plus the role the
// operator signs in as.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// Login exchanges credentials for a backend-issued session cookie and
// re-emits that cookie to the browser: httpOnly, SameSite=Lax, Secure in
// production, 24-hour expiry. The backend's response body is relayed as-is.
func (h *AuthHandler) Login(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "Auth.Login")

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Warnf("Failed to bind login request: %v", err)
		forwarder.WriteEnvelope(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	handlerLogger.Infof("Processing login for user %q (role %s)", req.Username, req.Role)

	credentials, err := json.Marshal(req)
	if err != nil {
		forwarder.WriteEnvelope(c, http.StatusInternalServerError, "failed to encode credentials")
		return
	}

	result, err := h.backend.SessionLogin(c.Request.Context(), credentials)
	if err != nil {
		var loginErr *backend.LoginError
		if errors.As(err, &loginErr) {
			env := forwarder.Normalize(loginErr.Status, loginErr.Body)
			c.JSON(env.Status, env)
			return
		}
		handlerLogger.Errorf("Login failed: %v", err)
		forwarder.WriteEnvelope(c, http.StatusBadGateway, "failed to reach backend")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, result.SessionCookie.Value, sessionMaxAge, "/", "", h.secureCookie, true)

	handlerLogger.Infof("Login successful for user %q", req.Username)
	c.Data(http.StatusOK, "application/json", result.Body)
}

// Logout tears the session down by expiring the cookie. The backend keeps its
// own session records; the dashboard only ever held the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.log.WithField("handler", "Auth.Logout").Info("Clearing session cookie")

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
