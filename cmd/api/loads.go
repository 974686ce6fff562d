package main

import (
	"net/http"
	"strconv"

	"github.com/vtfinance/billing_dashboard/internal/response"
	"github.com/vtfinance/billing_dashboard/internal/store"
)

type GetLoadHistoryResponse = response.APIResponse[[]store.LoadRun]

// @Summary		Get load history
// @Description	Get a list of the latest reload runs.
// @Tags			Loads
// @Produce		json
// @Param			limit	query		int						false	"Limit the number of results"	default(10)
// @Success		200		{object}	GetLoadHistoryResponse	"Successfully retrieved latest load runs"
// @Failure		500		{object}	response.ErrorResponse	"Failed to get load history"
// @Router			/loads/history [get]
func (app *application) handleGetLoadHistory(w http.ResponseWriter, r *http.Request) {
	limitParam := r.URL.Query().Get("limit")
	limit := 10
	if limitParam != "" {
		if l, err := strconv.Atoi(limitParam); err == nil {
			limit = l
		}
	}

	ctx := r.Context()
	data, err := app.store.LoadRuns.GetLatest(ctx, limit)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to get load history: "+err.Error())
		return
	}

	response := &GetLoadHistoryResponse{
		Success: true,
		Data:    data,
		Message: "Successfully retrieved latest load runs",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
