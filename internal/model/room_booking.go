package model

import "time"

type RoomBookingStatus string

const (
	RoomPending  RoomBookingStatus = "PENDING"
	RoomApproved RoomBookingStatus = "APPROVED"
	RoomRejected RoomBookingStatus = "REJECTED"
)

// RoomBooking is a guest-house request. UserID holds the devotee's phone number.
type RoomBooking struct {
	ID                 string            `json:"id"`
	UserID             string            `json:"userId"`
	UserName           string            `json:"userName,omitempty"`
	CheckInDate        Date              `json:"checkInDate"`
	CheckOutDate       Date              `json:"checkOutDate"`
	NumberOfGuests     int               `json:"numberOfGuests"`
	NumberOfRooms      int               `json:"numberOfRooms"`
	ConsentDataStorage bool              `json:"consentDataStorage"`
	Status             RoomBookingStatus `json:"status"`
	CreatedAt          time.Time         `json:"createdAt"`
}
