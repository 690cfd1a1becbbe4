package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"expertdesk-backend/internal/security"
)

// NewRouter wires the settlement engine's public contracts onto HTTP routes.
// All routes require an authenticated actor; admin-only transitions are
// enforced inside the services.
func NewRouter(
	tm security.TokenManager,
	expertHandler *ExpertHandler,
	withdrawalHandler *WithdrawalHandler,
	bookingHandler *BookingHandler,
) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(tm))

	api.HandleFunc("/experts/{id:[0-9]+}/balance", expertHandler.GetBalance).Methods(http.MethodGet)
	api.HandleFunc("/experts/{id:[0-9]+}/risk", expertHandler.GetRisk).Methods(http.MethodGet)

	api.HandleFunc("/withdrawals", withdrawalHandler.Request).Methods(http.MethodPost)
	api.HandleFunc("/withdrawals/{id:[0-9]+}/allocation", withdrawalHandler.GetAllocation).Methods(http.MethodGet)
	api.HandleFunc("/withdrawals/{id:[0-9]+}/approve", withdrawalHandler.Approve).Methods(http.MethodPost)
	api.HandleFunc("/withdrawals/{id:[0-9]+}/reject", withdrawalHandler.Reject).Methods(http.MethodPost)
	api.HandleFunc("/withdrawals/{id:[0-9]+}/pay", withdrawalHandler.MarkPaid).Methods(http.MethodPost)

	api.HandleFunc("/bookings", bookingHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id:[0-9]+}", bookingHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id:[0-9]+}/confirm", bookingHandler.Confirm).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id:[0-9]+}/reject", bookingHandler.Reject).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id:[0-9]+}/cancel", bookingHandler.Cancel).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id:[0-9]+}/complete", bookingHandler.Complete).Methods(http.MethodPost)

	return r
}
