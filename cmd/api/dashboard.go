package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/vtfinance/billing_dashboard/internal/billing/export"
	"github.com/vtfinance/billing_dashboard/internal/billing/metrics"
	"github.com/vtfinance/billing_dashboard/internal/response"
)

type GetDashboardResponse = response.APIResponse[metrics.Dashboard]
type GetDetailsResponse = response.APIResponse[[]metrics.OverdueOrder]

// @Summary		Dashboard series
// @Description	Returns every derived billing series for the requested window.
// @Tags			Dashboard
// @Produce		json
// @Param			start_date	query		string					false	"Window start (YYYY-MM-DD)"
// @Param			end_date	query		string					false	"Window end (YYYY-MM-DD)"
// @Success		200			{object}	GetDashboardResponse	"Successfully computed dashboard series"
// @Router			/dashboard [get]
func (app *application) handleGetDashboard(w http.ResponseWriter, r *http.Request) {
	window := parseWindow(r)

	data := app.metrics.Dashboard(r.Context(), window)

	response := &GetDashboardResponse{
		Success: true,
		Data:    data,
		Message: "Successfully computed dashboard series",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Overdue order details
// @Description	Lists the overdue orders behind one aging bucket.
// @Tags			Dashboard
// @Produce		json
// @Param			bucket		query		string				true	"Aging bucket label from the overdue chart"
// @Success		200			{object}	GetDetailsResponse	"Successfully listed overdue orders"
// @Failure		400			{object}	response.ErrorResponse	"Missing bucket parameter"
// @Router			/dashboard/details/overdue [get]
func (app *application) handleGetOverdueDetails(w http.ResponseWriter, r *http.Request) {
	window := parseWindow(r)
	bucket := r.URL.Query().Get("bucket")
	if bucket == "" {
		writeJSONError(w, http.StatusBadRequest, "missing bucket parameter")
		return
	}

	data := app.metrics.OverdueDetails(r.Context(), window, bucket)

	response := &GetDetailsResponse{
		Success: true,
		Data:    data,
		Message: "Successfully listed overdue orders",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Debtor order details
// @Description	Lists the overdue orders behind one company in the debtor rankings.
// @Tags			Dashboard
// @Produce		json
// @Param			company		query		string				true	"Company name from the ranking"
// @Success		200			{object}	GetDetailsResponse	"Successfully listed debtor orders"
// @Failure		400			{object}	response.ErrorResponse	"Missing company parameter"
// @Router			/dashboard/details/debtors [get]
func (app *application) handleGetDebtorDetails(w http.ResponseWriter, r *http.Request) {
	window := parseWindow(r)
	company := r.URL.Query().Get("company")
	if company == "" {
		writeJSONError(w, http.StatusBadRequest, "missing company parameter")
		return
	}

	data := app.metrics.DebtorDetails(r.Context(), window, company)

	response := &GetDetailsResponse{
		Success: true,
		Data:    data,
		Message: "Successfully listed debtor orders",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Overdue details spreadsheet
// @Description	Streams the overdue order details as an xlsx workbook.
// @Tags			Dashboard
// @Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param			bucket		query		string	true	"Aging bucket label from the overdue chart"
// @Success		200
// @Router			/dashboard/details/overdue/export [get]
func (app *application) handleExportOverdueDetails(w http.ResponseWriter, r *http.Request) {
	window := parseWindow(r)
	bucket := r.URL.Query().Get("bucket")
	if bucket == "" {
		writeJSONError(w, http.StatusBadRequest, "missing bucket parameter")
		return
	}

	rows := app.metrics.OverdueDetails(r.Context(), window, bucket)

	filename := fmt.Sprintf("vencidos_%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := export.WriteOverdueReport(w, rows); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to export overdue orders: "+err.Error())
	}
}
