package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type SevaCategory string

const (
	CategorySode         SevaCategory = "SODE"
	CategoryUdupiParyaya SevaCategory = "UDUPI_PARYAYA"
)

func (c SevaCategory) Valid() bool {
	return c == CategorySode || c == CategoryUdupiParyaya
}

// Seva is a bookable ritual service. Amount is in rupees.
type Seva struct {
	ID           string          `json:"id"`
	TitleEnglish string          `json:"titleEnglish"`
	TitleKannada string          `json:"titleKannada"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	ImageURL     string          `json:"imageUrl"`
	Category     SevaCategory    `json:"category"`
	IsActive     bool            `json:"isActive"`
}

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingFailed    BookingStatus = "FAILED"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

// SevaBooking is one devotee's seva reservation and its payment session.
// OrderID is set once at initiation; PaymentID and Signature only on a verified completion.
type SevaBooking struct {
	ID                  string          `json:"id"`
	UserID              string          `json:"userId"`
	SevaID              string          `json:"sevaId"`
	SevaTitle           string          `json:"sevaTitle,omitempty"`
	SevaDate            time.Time       `json:"sevaDate"`
	Status              BookingStatus   `json:"status"`
	PaymentStatus       PaymentStatus   `json:"paymentStatus"`
	OrderID             string          `json:"razorpayOrderId"`
	PaymentID           string          `json:"razorpayPaymentId,omitempty"`
	Signature           string          `json:"razorpaySignature,omitempty"`
	AmountPaid          decimal.Decimal `json:"amountPaid"`
	PrasadaDeliveryMode string          `json:"prasadaDeliveryMode,omitempty"`
	DevoteeName         string          `json:"devoteeName,omitempty"`
	DevoteeRashi        string          `json:"devoteeRashi,omitempty"`
	DevoteeNakshatra    string          `json:"devoteeNakshatra,omitempty"`
	DevoteeGothra       string          `json:"devoteeGothra,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
}
