package router

import (
	"net/http"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/smartwings/booking-system/internal/handlers"
	"github.com/smartwings/booking-system/internal/ws"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(h *handlers.Handler, hub *ws.Hub) http.Handler {
	r := mux.NewRouter()

	// API routes
	api := r.PathPrefix("/api").Subrouter()

	// Booking sessions
	api.HandleFunc("/sessions", h.StartSession).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/sessions/{id}", h.EndSession).Methods(http.MethodDelete, http.MethodOptions)
	api.HandleFunc("/sessions/{id}/search", h.SearchFlights).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/sessions/{id}/select/{offerId}", h.SelectOffer).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/sessions/{id}/passengers", h.SubmitPassengers).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/sessions/{id}/summary", h.GetSummary).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/sessions/{id}/payment", h.SubmitPayment).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/sessions/{id}/booking", h.GetBooking).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/sessions/{id}/ticket", h.GetTicketPDF).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/sessions/{id}/ticket/email", h.EmailTicket).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/sessions/{id}/confirmation/qr", h.GetConfirmationQR).Methods(http.MethodGet, http.MethodOptions)

	// Flight status board
	api.HandleFunc("/status", h.GetStatusBoard).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/status/{flight}", h.UpdateStatus).Methods(http.MethodPut, http.MethodOptions)
	api.HandleFunc("/status/ws", hub.HandleWebSocket)

	// Support
	api.HandleFunc("/chat", h.Chat).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/contact", h.SubmitContact).Methods(http.MethodPost, http.MethodOptions)

	// User slot
	api.HandleFunc("/users/login", h.Login).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/users/current", h.CurrentUser).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/users/logout", h.Logout).Methods(http.MethodPost, http.MethodOptions)

	// Health check
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	cors := gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins([]string{"*"}),
		gorillahandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)
	return cors(r)
}
