package http

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/payslip"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayslipHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Document(w http.ResponseWriter, r *http.Request)
}

type payslipHandlerImpl struct {
	payslipService payslip.PayslipService
}

func NewPayslipHandler(payslipService payslip.PayslipService) PayslipHandler {
	return &payslipHandlerImpl{payslipService: payslipService}
}

// List implements PayslipHandler.
func (h *payslipHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.payslipService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: int64(len(result.Payslips))})
}

// Document implements PayslipHandler.
func (h *payslipHandlerImpl) Document(w http.ResponseWriter, r *http.Request) {
	doc, err := h.payslipService.Document(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", doc.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(doc.Content)
}
