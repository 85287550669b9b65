package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/performance"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/handler/http/response"
)

const defaultHistoryDays = 30

type PerformanceHandler interface {
	History(w http.ResponseWriter, r *http.Request)
}

type performanceHandlerImpl struct {
	performanceService performance.PerformanceService
}

func NewPerformanceHandler(performanceService performance.PerformanceService) PerformanceHandler {
	return &performanceHandlerImpl{performanceService: performanceService}
}

// History implements PerformanceHandler.
func (h *performanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	days, ok := getIntQueryParam(r, "days", defaultHistoryDays)
	if !ok {
		response.BadRequest(w, "days must be a number", nil)
		return
	}

	result, err := h.performanceService.History(r.Context(), days)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
