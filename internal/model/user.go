package model

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is a devotee account keyed by phone number.
type User struct {
	ID                    string    `json:"id"`
	PhoneNumber           string    `json:"phoneNumber"`
	FullName              string    `json:"fullName"`
	Email                 string    `json:"email"`
	Gothra                string    `json:"gothra"`
	Rashi                 string    `json:"rashi"`
	Nakshatra             string    `json:"nakshatra"`
	Address               string    `json:"address"`
	City                  string    `json:"city"`
	State                 string    `json:"state"`
	Pincode               string    `json:"pincode"`
	Role                  Role      `json:"role"`
	ConsentDataStorage    bool      `json:"consentDataStorage"`
	ConsentCommunications bool      `json:"consentCommunications"`
	FCMToken              string    `json:"fcmToken,omitempty"`
	IsVolunteer           bool      `json:"isVolunteer"`
	VolunteerRequest      bool      `json:"volunteerRequest"`
	IsAdmin               bool      `json:"isAdmin"`
	CreatedAt             time.Time `json:"createdAt"`
}

// ProfileUpdate carries a registration or profile edit. Nil fields are left unchanged.
type ProfileUpdate struct {
	FullName              *string `json:"fullName"`
	Email                 *string `json:"email"`
	Gothra                *string `json:"gothra"`
	Rashi                 *string `json:"rashi"`
	Nakshatra             *string `json:"nakshatra"`
	Address               *string `json:"address"`
	City                  *string `json:"city"`
	State                 *string `json:"state"`
	Pincode               *string `json:"pincode"`
	ConsentDataStorage    *bool   `json:"consentDataStorage"`
	ConsentCommunications *bool   `json:"consentCommunications"`
	FCMToken              *string `json:"fcmToken"`
	VolunteerRequest      *bool   `json:"volunteerRequest"`
}

// Apply copies every non-nil field of p onto u.
func (p ProfileUpdate) Apply(u *User) {
	setStr := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	setBool := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	setStr(&u.FullName, p.FullName)
	setStr(&u.Email, p.Email)
	setStr(&u.Gothra, p.Gothra)
	setStr(&u.Rashi, p.Rashi)
	setStr(&u.Nakshatra, p.Nakshatra)
	setStr(&u.Address, p.Address)
	setStr(&u.City, p.City)
	setStr(&u.State, p.State)
	setStr(&u.Pincode, p.Pincode)
	setBool(&u.ConsentDataStorage, p.ConsentDataStorage)
	setBool(&u.ConsentCommunications, p.ConsentCommunications)
	setStr(&u.FCMToken, p.FCMToken)
	setBool(&u.VolunteerRequest, p.VolunteerRequest)
}
