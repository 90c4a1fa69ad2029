package api

import (
	"net/http"
	"time"

	models "IntelPull/internal/domain/models"
	"IntelPull/internal/usecase"
	xhttp "IntelPull/pkg/http"
	xlogger "IntelPull/pkg/logger"

	"github.com/labstack/echo/v4"
)

// IntelligenceEchoHandler exposes the intelligence pipeline over Echo.
type IntelligenceEchoHandler struct {
	logger *xlogger.Logger
	uc     *usecase.IntelligenceUseCase
}

func NewIntelligenceEchoHandler(logger *xlogger.Logger, uc *usecase.IntelligenceUseCase) *IntelligenceEchoHandler {
	return &IntelligenceEchoHandler{logger: logger, uc: uc}
}

func (h *IntelligenceEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/intelligence", h.Get)
	g.POST("/intelligence", h.Get)
	e.GET("/health", h.Health)
}

// Get answers one intelligence query. The response is always an envelope;
// total pipeline failure still comes back as HTTP 200 with success=false.
func (h *IntelligenceEchoHandler) Get(c echo.Context) error {
	req := &models.IntelligenceHTTPRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		if errs, ok := verr.([]xhttp.ValidationError); ok {
			return xhttp.ValidationErrorResponse(c, errs)
		}
		return xhttp.BadRequestResponse(c, "invalid request")
	}

	start := time.Now()
	resp := h.uc.GetIntelligence(c.Request().Context(), req.ToRequest())

	h.logger.Debug("intelligence request served",
		xlogger.String("ticker", req.Ticker),
		xlogger.String("category", req.Category),
		xlogger.Bool("success", resp.Success),
		xlogger.Duration("duration_ms", time.Since(start)),
	)

	return c.JSON(http.StatusOK, resp)
}

// Health reports liveness.
func (h *IntelligenceEchoHandler) Health(c echo.Context) error {
	return xhttp.DataResponse(c, map[string]interface{}{
		"status": "ok",
		"time":   models.FormatTime(time.Now()),
	})
}
