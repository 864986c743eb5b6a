package handler

import (
	"bytes"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"porttariff/internal/domain"
	"porttariff/internal/export"
	"porttariff/internal/service"
)

const exportFilename = "port-dues.xlsx"

// TariffHandler handles due calculation endpoints.
type TariffHandler struct {
	calculator service.CalculatorService
}

// NewTariffHandler creates a new TariffHandler.
func NewTariffHandler(calculator service.CalculatorService) *TariffHandler {
	return &TariffHandler{calculator: calculator}
}

// Calculate handles POST /calculate-tariffs
// @Summary Calculate port dues
// @Description Calculate the requested dues for a vessel call. An empty requested_dues list calculates every supported due.
// @Tags tariffs
// @Accept json
// @Produce json
// @Param request body CalculateTariffsRequest true "Vessel particulars and dues"
// @Success 200 {object} Response{data=CalculateTariffsResponse} "Calculated dues"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 500 {object} ErrorResponseBody "No results could be parsed"
// @Failure 502 {object} ErrorResponseBody "Generative text service unavailable"
// @Failure 503 {object} ErrorResponseBody "Tariff rules unavailable"
// @Router /calculate-tariffs [post]
func (h *TariffHandler) Calculate(c *gin.Context) {
	var req CalculateTariffsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	results, err := h.calculate(c, req.VesselInfo, req.RequestedDues, req.Debug)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, CalculateTariffsResponse{Results: results})
}

// Query handles POST /calculate-tariffs/query
// @Summary Calculate dues from a free-text request
// @Description Resolve a request such as "calculate pilotage and towage" against the supported dues and calculate the matches. When nothing matches, matched is false and message lists the supported dues.
// @Tags tariffs
// @Accept json
// @Produce json
// @Param request body QueryTariffsRequest true "Vessel particulars and free-text request"
// @Success 200 {object} Response{data=QueryTariffsResponse} "Resolution and calculated dues"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 500 {object} ErrorResponseBody "No results could be parsed"
// @Failure 502 {object} ErrorResponseBody "Generative text service unavailable"
// @Router /calculate-tariffs/query [post]
func (h *TariffHandler) Query(c *gin.Context) {
	var req QueryTariffsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	resolution := h.calculator.ResolveRequest(req.Query)
	if !resolution.Matched {
		RespondOK(c, QueryTariffsResponse{
			Matched:   false,
			Message:   resolution.Message,
			Available: domain.CatalogNames(),
		})
		return
	}

	dueNames := domain.DueNames(resolution.Dues)
	results, err := h.calculate(c, req.VesselInfo, dueNames, false)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, QueryTariffsResponse{Matched: true, Dues: dueNames, Results: results})
}

// Export handles POST /calculate-tariffs/export
// @Summary Calculate port dues as a spreadsheet
// @Description Same as /calculate-tariffs but returns an XLSX workbook with one row per due.
// @Tags tariffs
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param request body CalculateTariffsRequest true "Vessel particulars and dues"
// @Success 200 {file} file "XLSX workbook"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 500 {object} ErrorResponseBody "No results could be parsed"
// @Router /calculate-tariffs/export [post]
func (h *TariffHandler) Export(c *gin.Context) {
	var req CalculateTariffsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	results, err := h.calculate(c, req.VesselInfo, req.RequestedDues, req.Debug)
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteResults(&buf, req.VesselInfo, results); err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

// ListDues handles GET /dues
// @Summary List supported dues
// @Tags tariffs
// @Produce json
// @Success 200 {object} Response{data=DuesResponse} "Supported dues"
// @Router /dues [get]
func (h *TariffHandler) ListDues(c *gin.Context) {
	RespondOK(c, DuesResponse{Dues: domain.CatalogNames()})
}

func (h *TariffHandler) calculate(c *gin.Context, vesselInfo string, dueNames []string, debug bool) (*domain.ResultSet, error) {
	requestID, _ := c.Get("request_id")
	name, port := vesselSummary(vesselInfo)
	log.Printf("[%s] calculating dues: vessel=%q port=%q dues=%v", requestID, name, port, dueNames)

	return h.calculator.Calculate(c.Request.Context(), &service.CalculateInput{
		VesselInfo:    vesselInfo,
		RequestedDues: dueNames,
		Debug:         debug,
	})
}

// vesselSummary picks the vessel name and port out of a free-text vessel
// description, for logging.
func vesselSummary(info string) (name, port string) {
	for _, line := range strings.Split(info, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.Trim(key, " \t*-•"))
		value = strings.TrimSpace(value)
		switch {
		case name == "" && (key == "vessel name" || key == "name"):
			name = value
		case port == "" && key == "port":
			port = value
		}
	}
	return name, port
}
