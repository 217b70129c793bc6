package api

import (
	"net/http"

	"github.com/itcambridge/StockAnalysis-Backend/internal/domain/models"
	"github.com/itcambridge/StockAnalysis-Backend/internal/usecase"
	xhttp "github.com/itcambridge/StockAnalysis-Backend/pkg/http"
	xlogger "github.com/itcambridge/StockAnalysis-Backend/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Reference rates served by the interest-rates endpoint. Static until a
// rates provider is wired in.
var referenceRates = models.InterestRates{
	FedFundsRate: 5.33,
	TenYearYield: 4.25,
	TwoYearYield: 4.89,
	DefaultRate:  2.1,
}

// AnalysisHandler serves the enrichment pipeline and public endpoints.
type AnalysisHandler struct {
	logger   *xlogger.Logger
	analyzer *usecase.Analyzer
}

func NewAnalysisHandler(logger *xlogger.Logger, analyzer *usecase.Analyzer) *AnalysisHandler {
	return &AnalysisHandler{logger: logger, analyzer: analyzer}
}

func (h *AnalysisHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Health)
	g := e.Group("/api")
	g.GET("/analyze/:symbol", h.Analyze)
	g.GET("/interest-rates", h.InterestRates)
}

func (h *AnalysisHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "running",
		"message": "Backend is up and running",
	})
}

func (h *AnalysisHandler) Analyze(c echo.Context) error {
	symbol := c.Param("symbol")
	if symbol == "" {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("symbol is required"))
	}

	result, err := h.analyzer.Analyze(c.Request().Context(), symbol)
	if err != nil {
		h.logger.Warn("analyze failed",
			xlogger.String("symbol", symbol),
			xlogger.Error(err),
		)
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, result)
}

func (h *AnalysisHandler) InterestRates(c echo.Context) error {
	return xhttp.SuccessResponse(c, referenceRates)
}
