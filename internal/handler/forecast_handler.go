package handler

import (
	"fmt"
	"net/http"
	"time"

	"finhealth/internal/forecast"
	"finhealth/internal/logger"
	"finhealth/internal/service"
	"finhealth/pkg/response"

	"github.com/gin-gonic/gin"
)

type ForecastHandler struct {
	forecastService service.ForecastService
	location        *time.Location
	guard           gin.HandlerFunc
}

// NewForecastHandler serves the report endpoints. guard runs before every route when set;
// loc is the timezone query dates are read in.
func NewForecastHandler(forecastService service.ForecastService, loc *time.Location, guard gin.HandlerFunc) *ForecastHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ForecastHandler{forecastService: forecastService, location: loc, guard: guard}
}

func (h *ForecastHandler) RegisterRoutes(router *gin.RouterGroup) {
	workspace := router.Group("/api/workspaces/:workspaceId")
	if h.guard != nil {
		workspace.Use(h.guard)
	}
	{
		workspace.GET("/forecast", h.GetForecast)
		workspace.GET("/budgets/summary", h.GetBudgetSummary)
		workspace.GET("/strategic-report", h.GetStrategicReport)
	}
}

// @Summary      Get Forecast Report
// @Description  Month-end projection, health score, budget alerts, trends and recommendations for one workspace
// @Tags         Forecast
// @Produce      json
// @Param        workspaceId path  string true  "Workspace ID (UUID)"
// @Param        month       query string false "Month (YYYY-MM), defaults to the current month"
// @Param        start       query string false "Window start (YYYY-MM-DD), requires end"
// @Param        end         query string false "Window end (YYYY-MM-DD), requires start"
// @Success      200 {object} response.Response{data=model.ForecastReport}
// @Failure      400 {object} response.Response "Invalid workspace, period or option"
// @Failure      401 {object} response.Response "Unauthorized"
// @Failure      403 {object} response.Response "Workspace not granted"
// @Failure      502 {object} response.Response "Ledger data failed integrity checks"
// @Failure      500 {object} response.Response "Internal server error"
// @Security     BearerAuth
// @Router       /api/workspaces/{workspaceId}/forecast [get]
func (h *ForecastHandler) GetForecast(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	report, err := h.forecastService.BuildReport(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.JSON(c, http.StatusOK, report)
}

// @Summary      Get Budget Summary
// @Description  Spent, remaining and severity for every budget of the month
// @Tags         Forecast
// @Produce      json
// @Param        workspaceId path  string true  "Workspace ID (UUID)"
// @Param        month       query string false "Month (YYYY-MM), defaults to the current month"
// @Param        start       query string false "Window start (YYYY-MM-DD), requires end"
// @Param        end         query string false "Window end (YYYY-MM-DD), requires start"
// @Success      200 {object} response.Response{data=model.BudgetSummaryReport}
// @Failure      400 {object} response.Response "Invalid workspace, period or option"
// @Failure      401 {object} response.Response "Unauthorized"
// @Failure      403 {object} response.Response "Workspace not granted"
// @Failure      502 {object} response.Response "Ledger data failed integrity checks"
// @Failure      500 {object} response.Response "Internal server error"
// @Security     BearerAuth
// @Router       /api/workspaces/{workspaceId}/budgets/summary [get]
func (h *ForecastHandler) GetBudgetSummary(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	summary, err := h.forecastService.BudgetSummary(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.JSON(c, http.StatusOK, summary)
}

// @Summary      Get Strategic Report
// @Description  Forecast report plus generated narrative. The numeric report is returned even when the narrative is unavailable.
// @Tags         Forecast
// @Produce      json
// @Param        workspaceId path  string true  "Workspace ID (UUID)"
// @Param        month       query string false "Month (YYYY-MM), defaults to the current month"
// @Param        start       query string false "Window start (YYYY-MM-DD), requires end"
// @Param        end         query string false "Window end (YYYY-MM-DD), requires start"
// @Success      200 {object} response.Response{data=model.StrategicReport}
// @Failure      400 {object} response.Response "Invalid workspace, period or option"
// @Failure      401 {object} response.Response "Unauthorized"
// @Failure      403 {object} response.Response "Workspace not granted"
// @Failure      502 {object} response.Response "Ledger data failed integrity checks"
// @Failure      500 {object} response.Response "Internal server error"
// @Security     BearerAuth
// @Router       /api/workspaces/{workspaceId}/strategic-report [get]
func (h *ForecastHandler) GetStrategicReport(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	report, err := h.forecastService.StrategicReport(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.JSON(c, http.StatusOK, report)
}

// bindRequest reads the path workspace and the query options
func (h *ForecastHandler) bindRequest(c *gin.Context) (forecast.ReportRequest, bool) {
	options := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if len(values) > 1 {
			h.fail(c, fmt.Errorf("%w: %s given more than once", forecast.ErrUnknownOption, key))
			return forecast.ReportRequest{}, false
		}
		options[key] = values[0]
	}

	req, err := forecast.ParseRequest(c.Param("workspaceId"), options, h.location)
	if err != nil {
		h.fail(c, err)
		return forecast.ReportRequest{}, false
	}
	return req, true
}

// fail maps engine errors to status codes. Only input errors expose their message.
func (h *ForecastHandler) fail(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	case forecast.IsInputError(err):
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
	case forecast.IsIntegrityError(err):
		c.JSON(http.StatusBadGateway, response.Error(http.StatusBadGateway, "Ledger data failed integrity checks"))
	default:
		logger.FromContext(c.Request.Context()).Error().Err(err).Str("path", c.Request.URL.Path).Msg("report request failed")
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to compute report"))
	}
}
