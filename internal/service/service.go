package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/smartwings/booking-system/internal/confirmation"
	"github.com/smartwings/booking-system/internal/models"
	"github.com/smartwings/booking-system/internal/session"
	"github.com/smartwings/booking-system/internal/ticket"
)

// BookingService defines the booking service interface
type BookingService interface {
	StartSession(ctx context.Context) (string, error)
	EndSession(ctx context.Context, sessionID string) error
	SearchFlights(ctx context.Context, sessionID string, params models.SearchParams) ([]models.FlightOffer, error)
	SelectOffer(ctx context.Context, sessionID, offerID string) ([]models.Passenger, error)
	SubmitPassengers(ctx context.Context, sessionID string, passengers []models.Passenger) (*models.PricingSummary, error)
	GetSummary(ctx context.Context, sessionID string) (*models.PricingSummary, error)
	SubmitPayment(ctx context.Context, sessionID string, card models.PaymentCard) (*models.Confirmation, error)
	GetBooking(ctx context.Context, sessionID string) (*models.BookingRecord, error)
	TicketPDF(ctx context.Context, sessionID string) ([]byte, error)
	EmailTicket(ctx context.Context, sessionID, email string) error
	ConfirmationImage(ctx context.Context, sessionID string) ([]byte, error)
}

// bookingServiceImpl implements BookingService
type bookingServiceImpl struct {
	sessions *session.Manager
	sender   *ticket.EmailSender
	log      logrus.FieldLogger
}

// NewBookingService creates a new BookingService
func NewBookingService(sessions *session.Manager, sender *ticket.EmailSender, log logrus.FieldLogger) BookingService {
	return &bookingServiceImpl{
		sessions: sessions,
		sender:   sender,
		log:      log,
	}
}

func (s *bookingServiceImpl) StartSession(ctx context.Context) (string, error) {
	sess := s.sessions.Start()
	s.log.WithField("sessionId", sess.ID).Info("session started")
	return sess.ID, nil
}

func (s *bookingServiceImpl) EndSession(ctx context.Context, sessionID string) error {
	if err := s.sessions.End(sessionID); err != nil {
		return err
	}
	s.log.WithField("sessionId", sessionID).Info("session ended")
	return nil
}

func (s *bookingServiceImpl) SearchFlights(ctx context.Context, sessionID string, params models.SearchParams) ([]models.FlightOffer, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	reqCtx, cancel := sess.RequestContext(ctx)
	defer cancel()
	return sess.Wizard.SubmitSearch(reqCtx, params)
}

func (s *bookingServiceImpl) SelectOffer(ctx context.Context, sessionID, offerID string) ([]models.Passenger, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	reqCtx, cancel := sess.RequestContext(ctx)
	defer cancel()
	return sess.Wizard.SelectOffer(reqCtx, offerID)
}

func (s *bookingServiceImpl) SubmitPassengers(ctx context.Context, sessionID string, passengers []models.Passenger) (*models.PricingSummary, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	reqCtx, cancel := sess.RequestContext(ctx)
	defer cancel()
	return sess.Wizard.SubmitPassengers(reqCtx, passengers)
}

func (s *bookingServiceImpl) GetSummary(ctx context.Context, sessionID string) (*models.PricingSummary, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	reqCtx, cancel := sess.RequestContext(ctx)
	defer cancel()
	return sess.Wizard.Summary(reqCtx)
}

func (s *bookingServiceImpl) SubmitPayment(ctx context.Context, sessionID string, card models.PaymentCard) (*models.Confirmation, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	reqCtx, cancel := sess.RequestContext(ctx)
	defer cancel()
	conf, err := sess.Wizard.SubmitPayment(reqCtx, card)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"sessionId":        sessionID,
		"confirmationCode": conf.Code,
	}).Info("booking confirmed")
	return conf, nil
}

func (s *bookingServiceImpl) GetBooking(ctx context.Context, sessionID string) (*models.BookingRecord, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Wizard.Record(), nil
}

func (s *bookingServiceImpl) TicketPDF(ctx context.Context, sessionID string) ([]byte, error) {
	record, err := s.GetBooking(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return ticket.GeneratePDF(record)
}

func (s *bookingServiceImpl) EmailTicket(ctx context.Context, sessionID, email string) error {
	record, err := s.GetBooking(ctx, sessionID)
	if err != nil {
		return err
	}
	return s.sender.Send(ctx, email, record)
}

func (s *bookingServiceImpl) ConfirmationImage(ctx context.Context, sessionID string) ([]byte, error) {
	record, err := s.GetBooking(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !record.Confirmed() {
		return nil, ticket.ErrNotConfirmed
	}
	payload := confirmation.CodePayload{
		ConfirmationCode: record.Confirmation.Code,
		FlightNumber:     record.Confirmation.FlightNumber,
		Date:             record.Confirmation.Date,
	}
	if len(record.Passengers) > 0 {
		p := record.Passengers[0]
		payload.PassengerName = p.FirstName + " " + p.LastName
	}
	return confirmation.CodeImage(payload)
}
