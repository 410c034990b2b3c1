package email

import (
	"fmt"
	"strings"

	"github.com/seva/internal/model"
)

// RoomBookingReceived acknowledges a new guest-house request.
func RoomBookingReceived(b *model.RoomBooking) (subject, body string) {
	subject = "Room Booking Received"
	body = fmt.Sprintf("Dear Devotee,\n\n"+
		"We have received your room booking request.\n"+
		"Reference ID: %s\n"+
		"Check-in: %s\n"+
		"Check-out: %s\n\n"+
		"We will review your request and confirm shortly.",
		b.ID, b.CheckInDate, b.CheckOutDate)
	return subject, body
}

// RoomBookingDecision tells the devotee the request was approved or rejected.
func RoomBookingDecision(b *model.RoomBooking, fullName string) (subject, body string) {
	status := string(b.Status)
	closing := "Please contact us for more information."
	if b.Status == model.RoomApproved {
		closing = "We look forward to hosting you."
	}
	subject = "Room Booking " + status
	body = fmt.Sprintf("Dear %s,\n\n"+
		"Your room booking (ID: %s) has been %s.\n"+
		"Check-in: %s\n"+
		"Check-out: %s\n\n%s",
		fullName, b.ID, strings.ToLower(status), b.CheckInDate, b.CheckOutDate, closing)
	return subject, body
}

func SevaConfirmed(b *model.SevaBooking) (subject, body string) {
	subject = "Seva Booking Confirmed - " + b.SevaTitle
	body = fmt.Sprintf("Dear %s,\n\n"+
		"Your Seva booking has been confirmed.\n\n"+
		"Seva: %s\n"+
		"Date: %s\n"+
		"Amount: %s\n"+
		"Reference ID: %s\n\n"+
		"Thank you for your devotion.",
		b.DevoteeName, b.SevaTitle, b.SevaDate.Format("2006-01-02"), b.AmountPaid.StringFixed(2), b.PaymentID)
	return subject, body
}
