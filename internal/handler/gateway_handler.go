package handler

import (
	"errors"
	"io"
	"log"
	"net/http"

	"glacier_storefront/internal/gateway"
	"glacier_storefront/internal/middleware"
	"glacier_storefront/internal/repository"
	"glacier_storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// GatewayHandler adapts HTTP requests onto the gateway dispatch table.
// All client traffic flows through Route; the handler only owns body
// reading, error classification and the envelope shape.
type GatewayHandler struct {
	router *gateway.Router
}

// NewGatewayHandler creates a new GatewayHandler
func NewGatewayHandler(router *gateway.Router) *GatewayHandler {
	return &GatewayHandler{router: router}
}

// Dispatch handles wildcard routes like /product/*endpoint
func (h *GatewayHandler) Dispatch(svc string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.dispatch(c, svc, c.Param("endpoint"))
	}
}

// DispatchEndpoint handles exact routes that carry their own middleware
// chain, like the JWT-guarded order endpoints
func (h *GatewayHandler) DispatchEndpoint(svc, endpoint string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.dispatch(c, svc, endpoint)
	}
}

func (h *GatewayHandler) dispatch(c *gin.Context, svc, endpoint string) {
	var body []byte
	if c.Request.Body != nil {
		var err error
		body, err = io.ReadAll(c.Request.Body)
		if err != nil {
			h.writeError(c, http.StatusBadRequest, "failed to read request body")
			return
		}
	}

	req := gateway.Request{
		Body:   body,
		UserID: c.GetString(middleware.AuthUserKey),
	}
	result, err := h.router.Route(c.Request.Context(), svc, endpoint, c.Request.Method, req)
	if err != nil {
		h.classify(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result, "status": http.StatusOK})
}

// classify maps an error from the dispatcher or a controller to an HTTP
// status. Routing and unexpected errors are logged as system faults;
// business errors pass through verbatim without logging.
func (h *GatewayHandler) classify(c *gin.Context, err error) {
	var routingErr *gateway.RoutingError
	if errors.As(err, &routingErr) {
		log.Printf("gateway routing error: %v", routingErr)
		h.writeError(c, http.StatusNotFound, routingErr.Error())
		return
	}

	var validationErr *gateway.ValidationError
	if errors.As(err, &validationErr) {
		h.writeError(c, http.StatusBadRequest, validationErr.Error())
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidUser),
		errors.Is(err, service.ErrInvalidCredentials):
		h.writeError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrDuplicateAccount):
		h.writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrOrderNotFound):
		h.writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrEmptyOrder),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrUnknownProduct),
		errors.Is(err, service.ErrTotalMismatch),
		errors.Is(err, service.ErrMissingUser):
		h.writeError(c, http.StatusBadRequest, err.Error())
	default:
		log.Printf("gateway internal error: %v", err)
		h.writeError(c, http.StatusInternalServerError, "internal server error")
	}
}

func (h *GatewayHandler) writeError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message, "status": status})
}

// RegisterRoutes mounts the gateway surface on a router group. The order
// service sits behind the JWT middleware; its /all listing additionally
// requires the admin role.
func (h *GatewayHandler) RegisterRoutes(rg *gin.RouterGroup, jwtMW, adminMW gin.HandlerFunc) {
	rg.Any("/auth/*endpoint", h.Dispatch("auth"))
	rg.Any("/product/*endpoint", h.Dispatch("product"))
	rg.Any("/catalog/*endpoint", h.Dispatch("catalog"))
	rg.Any("/ai/*endpoint", h.Dispatch("ai"))

	orderGroup := rg.Group("/order")
	orderGroup.Use(jwtMW)
	orderGroup.POST("/create", h.DispatchEndpoint("order", "/create"))
	orderGroup.POST("/my-orders", h.DispatchEndpoint("order", "/my-orders"))
	orderGroup.POST("/all", adminMW, h.DispatchEndpoint("order", "/all"))
}
