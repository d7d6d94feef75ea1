// Package ticket implements the delivery boundary for finalized
// bookings: a downloadable e-ticket PDF and an email dispatch that is
// logged only.
package ticket

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/smartwings/booking-system/internal/models"
)

var ErrNotConfirmed = errors.New("booking is not confirmed")

// GeneratePDF renders the e-ticket for a confirmed booking.
func GeneratePDF(record *models.BookingRecord) ([]byte, error) {
	if !record.Confirmed() {
		return nil, ErrNotConfirmed
	}
	conf := record.Confirmation

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 12, "SmartWings E-Ticket")
	pdf.Ln(16)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Confirmation "+conf.Code)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(45, 7, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
	}

	row("Flight", conf.FlightNumber)
	row("Route", conf.Route)
	row("Date", conf.Date)
	row("Departure", conf.DepartureTime)
	row("Arrival", conf.ArrivalTime)
	row("Passengers", strconv.Itoa(conf.Passengers))
	row("Total Paid", fmt.Sprintf("$%d", conf.TotalPaid))
	pdf.Ln(6)

	if len(record.Passengers) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Passengers")
		pdf.Ln(9)
		pdf.SetFont("Helvetica", "", 11)
		for i, p := range record.Passengers {
			line := fmt.Sprintf("%d. %s %s (%s)", i+1, p.FirstName, p.LastName, p.Type)
			pdf.Cell(0, 6, line)
			pdf.Ln(7)
		}
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, "Please arrive at the airport at least two hours before departure.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render ticket: %w", err)
	}
	return buf.Bytes(), nil
}
