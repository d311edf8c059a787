package api

import (
	"QAmp/internal/domain/models"
	"QAmp/internal/usecase"
	xhttp "QAmp/pkg/http"
	xlogger "QAmp/pkg/logger"

	"github.com/labstack/echo/v4"
)

// EstimateEchoHandler exposes the estimation engine over HTTP.
type EstimateEchoHandler struct {
	logger *xlogger.Logger
	est    *usecase.BatchEstimator
}

func NewEstimateEchoHandler(logger *xlogger.Logger, est *usecase.BatchEstimator) *EstimateEchoHandler {
	return &EstimateEchoHandler{logger: logger, est: est}
}

func (h *EstimateEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/estimate", h.Estimate)
	g.POST("/fetch_timeseries", h.FetchTimeseries)
	e.GET("/healthz", h.Health)
}

type estimateResponse struct {
	Status  string                               `json:"status"`
	Results map[string]models.InstrumentOutcome `json:"results"`
}

// Results are keyed by ticker; every requested ticker has an entry.

func (h *EstimateEchoHandler) Estimate(c echo.Context) error {
	req := &models.EstimateRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	results, err := h.est.EstimateBatch(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("estimate usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()).WithError(err))
	}
	return xhttp.SuccessResponse(c, estimateResponse{Status: "ok", Results: results})
}

type timeseriesResponse struct {
	Status  string                          `json:"status"`
	Tickers []string                        `json:"tickers"`
	Returns map[string]models.SeriesOutcome `json:"returns"`
}

func (h *EstimateEchoHandler) FetchTimeseries(c echo.Context) error {
	req := &models.TimeseriesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	results, err := h.est.Timeseries(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("timeseries usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()).WithError(err))
	}
	return xhttp.SuccessResponse(c, timeseriesResponse{
		Status:  "ok",
		Tickers: req.Tickers,
		Returns: results,
	})
}

func (h *EstimateEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}
