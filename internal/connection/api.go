package connection

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HTTPHandler handles SAML and OIDC connection HTTP requests.
type HTTPHandler struct {
	svc    Service
	logger *zap.Logger
}

// NewHTTPHandler creates a new connection HTTP handler.
func NewHTTPHandler(svc Service, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{svc: svc, logger: logger}
}

// RegisterRoutes registers connection routes on the API group.
func (h *HTTPHandler) RegisterRoutes(rg *gin.RouterGroup) {
	saml := rg.Group("/saml-connections")
	{
		saml.GET("", h.listSAMLConnections)
		saml.POST("", h.createSAMLConnection)
		saml.GET("/:id", h.getSAMLConnection)
		saml.PUT("/:id", h.updateSAMLConnection)
		saml.DELETE("/:id", h.deleteSAMLConnection)
	}

	oidc := rg.Group("/oidc-connections")
	{
		oidc.GET("", h.listOIDCConnections)
		oidc.POST("", h.createOIDCConnection)
		oidc.GET("/:id", h.getOIDCConnection)
		oidc.PUT("/:id", h.updateOIDCConnection)
		oidc.DELETE("/:id", h.deleteOIDCConnection)
	}
}

func (h *HTTPHandler) listSAMLConnections(c *gin.Context) {
	conns, err := h.svc.ListSAMLConnections(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, conns)
}

func (h *HTTPHandler) getSAMLConnection(c *gin.Context) {
	conn, err := h.svc.GetSAMLConnection(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, conn)
}

func (h *HTTPHandler) createSAMLConnection(c *gin.Context) {
	var p SAMLPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	conn, err := h.svc.CreateSAMLConnection(c.Request.Context(), p)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, conn)
}

func (h *HTTPHandler) updateSAMLConnection(c *gin.Context) {
	var p SAMLPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	conn, err := h.svc.UpdateSAMLConnection(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, conn)
}

func (h *HTTPHandler) deleteSAMLConnection(c *gin.Context) {
	if err := h.svc.DeleteSAMLConnection(c.Request.Context(), c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "SAML Connection deleted successfully"})
}

func (h *HTTPHandler) listOIDCConnections(c *gin.Context) {
	conns, err := h.svc.ListOIDCConnections(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, conns)
}

func (h *HTTPHandler) getOIDCConnection(c *gin.Context) {
	conn, err := h.svc.GetOIDCConnection(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, conn)
}

func (h *HTTPHandler) createOIDCConnection(c *gin.Context) {
	var p OIDCPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	conn, err := h.svc.CreateOIDCConnection(c.Request.Context(), p)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, conn)
}

func (h *HTTPHandler) updateOIDCConnection(c *gin.Context) {
	var p OIDCPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	conn, err := h.svc.UpdateOIDCConnection(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, conn)
}

func (h *HTTPHandler) deleteOIDCConnection(c *gin.Context) {
	if err := h.svc.DeleteOIDCConnection(c.Request.Context(), c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OIDC Connection deleted successfully"})
}

func (h *HTTPHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidMetadata):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("connection service error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
