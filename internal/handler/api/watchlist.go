package api

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/itcambridge/StockAnalysis-Backend/internal/domain/models"
	domrepo "github.com/itcambridge/StockAnalysis-Backend/internal/domain/repository"
	mid "github.com/itcambridge/StockAnalysis-Backend/internal/middleware"
	xhttp "github.com/itcambridge/StockAnalysis-Backend/pkg/http"
	xlogger "github.com/itcambridge/StockAnalysis-Backend/pkg/logger"

	"github.com/labstack/echo/v4"
)

// WatchlistHandler serves the per-user tracked-stock list.
type WatchlistHandler struct {
	logger   *xlogger.Logger
	store    domrepo.WatchlistStore
	verifier domrepo.TokenVerifier
}

func NewWatchlistHandler(logger *xlogger.Logger, store domrepo.WatchlistStore, verifier domrepo.TokenVerifier) *WatchlistHandler {
	return &WatchlistHandler{logger: logger, store: store, verifier: verifier}
}

func (h *WatchlistHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/watchlist", mid.RequireAuth(h.verifier, h.logger))
	g.GET("", h.Get)
	g.POST("", h.Add)
	g.DELETE("/:index", h.Remove)
}

func (h *WatchlistHandler) Get(c echo.Context) error {
	entries, err := h.store.Get(c.Request().Context(), mid.UserID(c))
	if err != nil {
		h.logger.Error("watchlist get error", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.SuccessResponse(c, entries)
}

func (h *WatchlistHandler) Add(c echo.Context) error {
	req := &models.WatchlistAddRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	entry, err := json.Marshal(req.Entry)
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("entry is not valid JSON"))
	}

	if err := h.store.Append(c.Request().Context(), mid.UserID(c), entry); err != nil {
		h.logger.Error("watchlist append error", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.CreatedResponse(c, req.Entry)
}

func (h *WatchlistHandler) Remove(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("index must be an integer"))
	}

	if err := h.store.RemoveAt(c.Request().Context(), mid.UserID(c), index); err != nil {
		if errors.Is(err, domrepo.ErrIndexOutOfRange) {
			return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("no watchlist entry at index %d", index))
		}
		h.logger.Error("watchlist remove error", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.NoContentResponse(c)
}
