package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"expertdesk-backend/internal/service"
)

// ExpertHandler exposes the read-only per-expert views: available balance and
// the dispute-derived risk signal.
type ExpertHandler struct {
	balanceSvc service.BalanceService
	riskSvc    service.RiskService
}

func NewExpertHandler(balanceSvc service.BalanceService, riskSvc service.RiskService) *ExpertHandler {
	return &ExpertHandler{
		balanceSvc: balanceSvc,
		riskSvc:    riskSvc,
	}
}

func (h *ExpertHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	expertID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid expert id"})
		return
	}

	balance, err := h.balanceSvc.AvailableBalance(r.Context(), expertID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balance)
}

func (h *ExpertHandler) GetRisk(w http.ResponseWriter, r *http.Request) {
	expertID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid expert id"})
		return
	}

	report, err := h.riskSvc.Risk(r.Context(), expertID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}
