package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/smartwings/booking-system/internal/booking"
	"github.com/smartwings/booking-system/internal/chat"
	"github.com/smartwings/booking-system/internal/confirmation"
	"github.com/smartwings/booking-system/internal/contact"
	"github.com/smartwings/booking-system/internal/models"
	"github.com/smartwings/booking-system/internal/service"
	"github.com/smartwings/booking-system/internal/session"
	"github.com/smartwings/booking-system/internal/status"
	"github.com/smartwings/booking-system/internal/ticket"
)

// Handler contains HTTP handlers for the API
type Handler struct {
	bookingService service.BookingService
	bot            *chat.Bot
	contactService *contact.Service
	feed           *status.Feed
	users          *session.UserStore
	validate       *validator.Validate
	log            logrus.FieldLogger
}

// NewHandler creates a new Handler instance
func NewHandler(bookingService service.BookingService, bot *chat.Bot, contactService *contact.Service, feed *status.Feed, users *session.UserStore, log logrus.FieldLogger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	v := validator.New()
	// Report field names as they appear on the wire.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Handler{
		bookingService: bookingService,
		bot:            bot,
		contactService: contactService,
		feed:           feed,
		users:          users,
		validate:       v,
		log:            log,
	}
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondFieldError(w http.ResponseWriter, status int, field, message string) {
	respondJSON(w, status, map[string]string{"error": message, "field": field})
}

// respondServiceError maps domain errors onto HTTP statuses. Validation
// and guard failures are the user's to fix; everything else is a 500.
func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	var formErr *booking.FormValidationError
	var guardErr *booking.GuardViolation
	var notFound *booking.NotFoundError
	var contactErr *contact.ValidationError

	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		respondError(w, http.StatusNotFound, "Session not found")
	case errors.As(err, &notFound):
		respondError(w, http.StatusNotFound, notFound.Error())
	case errors.As(err, &formErr):
		respondFieldError(w, http.StatusBadRequest, formErr.Field, formErr.Message)
	case errors.As(err, &guardErr):
		respondError(w, http.StatusBadRequest, guardErr.Message)
	case errors.As(err, &contactErr):
		respondFieldError(w, http.StatusBadRequest, contactErr.Field, contactErr.Message)
	case errors.Is(err, ticket.ErrNotConfirmed):
		respondError(w, http.StatusConflict, "Booking is not confirmed yet")
	case errors.Is(err, ticket.ErrInvalidEmail):
		respondError(w, http.StatusBadRequest, "Please enter a valid email address")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusRequestTimeout, "Request cancelled")
	default:
		h.log.WithError(err).Error("request failed")
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// SearchRequest is the POST /api/sessions/{id}/search payload. Dates
// are wire strings in YYYY-MM-DD form.
type SearchRequest struct {
	From      string `json:"from" validate:"required"`
	To        string `json:"to" validate:"required"`
	Departure string `json:"departure" validate:"required"`
	Return    string `json:"return,omitempty"`
	TripType  string `json:"tripType"`
	Adults    int    `json:"adults"`
	Children  int    `json:"children"`
	Infants   int    `json:"infants"`
	Class     string `json:"class"`
}

// PassengersRequest is the POST /api/sessions/{id}/passengers payload.
type PassengersRequest struct {
	Passengers []models.Passenger `json:"passengers" validate:"required"`
}

// EmailTicketRequest is the POST /api/sessions/{id}/ticket/email payload.
type EmailTicketRequest struct {
	Email string `json:"email" validate:"required"`
}

// ChatRequest is the POST /api/chat payload.
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

// StatusUpdateRequest is the PUT /api/status/{flight} payload.
type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

// LoginRequest is the POST /api/users/login payload.
type LoginRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			respondFieldError(w, http.StatusBadRequest, verrs[0].Field(), "please fill in all required fields")
			return false
		}
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// StartSession handles POST /api/sessions
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	id, err := h.bookingService.StartSession(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"sessionId": id})
}

// EndSession handles DELETE /api/sessions/{id}
func (h *Handler) EndSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	if err := h.bookingService.EndSession(r.Context(), sessionID); err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// SearchFlights handles POST /api/sessions/{id}/search
func (h *Handler) SearchFlights(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req SearchRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	departure, err := time.Parse("2006-01-02", req.Departure)
	if err != nil {
		respondFieldError(w, http.StatusBadRequest, "departure", "please enter a valid date")
		return
	}

	params := models.SearchParams{
		Origin:      req.From,
		Destination: req.To,
		Departure:   departure,
		TripType:    models.TripType(req.TripType),
		Adults:      req.Adults,
		Children:    req.Children,
		Infants:     req.Infants,
		Class:       models.TravelClass(req.Class),
	}
	if req.Return != "" {
		ret, err := time.Parse("2006-01-02", req.Return)
		if err != nil {
			respondFieldError(w, http.StatusBadRequest, "return", "please enter a valid date")
			return
		}
		params.Return = &ret
	}

	offers, err := h.bookingService.SearchFlights(r.Context(), sessionID, params)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"flights": offers})
}

// SelectOffer handles POST /api/sessions/{id}/select/{offerId}
func (h *Handler) SelectOffer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	passengers, err := h.bookingService.SelectOffer(r.Context(), vars["id"], vars["offerId"])
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"passengers": passengers})
}

// SubmitPassengers handles POST /api/sessions/{id}/passengers
func (h *Handler) SubmitPassengers(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req PassengersRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	summary, err := h.bookingService.SubmitPassengers(r.Context(), sessionID, req.Passengers)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// GetSummary handles GET /api/sessions/{id}/summary
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	summary, err := h.bookingService.GetSummary(r.Context(), sessionID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// SubmitPayment handles POST /api/sessions/{id}/payment
func (h *Handler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var card models.PaymentCard
	if err := json.NewDecoder(r.Body).Decode(&card); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	conf, err := h.bookingService.SubmitPayment(r.Context(), sessionID, card)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, conf)
}

// GetBooking handles GET /api/sessions/{id}/booking
func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	record, err := h.bookingService.GetBooking(r.Context(), sessionID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, record)
}

// GetTicketPDF handles GET /api/sessions/{id}/ticket
func (h *Handler) GetTicketPDF(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	pdf, err := h.bookingService.TicketPDF(r.Context(), sessionID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=e-ticket.pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// EmailTicket handles POST /api/sessions/{id}/ticket/email
func (h *Handler) EmailTicket(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req EmailTicketRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.bookingService.EmailTicket(r.Context(), sessionID, req.Email); err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

// GetConfirmationQR handles GET /api/sessions/{id}/confirmation/qr.
// When image encoding fails the endpoint degrades to a plain-text
// rendering of the confirmation code.
func (h *Handler) GetConfirmationQR(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	png, err := h.bookingService.ConfirmationImage(r.Context(), sessionID)
	if err != nil {
		var notFound *booking.NotFoundError
		if errors.Is(err, session.ErrSessionNotFound) || errors.As(err, &notFound) || errors.Is(err, ticket.ErrNotConfirmed) {
			h.respondServiceError(w, err)
			return
		}
		record, recErr := h.bookingService.GetBooking(r.Context(), sessionID)
		if recErr != nil || !record.Confirmed() {
			h.respondServiceError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(confirmation.FallbackText(record.Confirmation.Code)))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// GetStatusBoard handles GET /api/status
func (h *Handler) GetStatusBoard(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{"statuses": h.feed.Snapshot()})
}

// UpdateStatus handles PUT /api/status/{flight}
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	flight := mux.Vars(r)["flight"]

	var req StatusUpdateRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if !h.feed.Update(flight, req.Status) {
		respondError(w, http.StatusNotFound, "Flight not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"flight": flight, "status": req.Status})
}

// Chat handles POST /api/chat
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"reply": h.bot.Respond(req.Message)})
}

// SubmitContact handles POST /api/contact
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var sub contact.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ref, err := h.contactService.Submit(r.Context(), sub)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"referenceId": ref})
}

// Login handles POST /api/users/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	user := &models.User{
		ID:        uuid.New().String(),
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		CreatedAt: time.Now(),
	}
	if err := h.users.Save(user); err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// CurrentUser handles GET /api/users/current
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := h.users.Current()
	if !ok {
		respondError(w, http.StatusNotFound, "No user signed in")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// Logout handles POST /api/users/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Clear(); err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// Health handles GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
