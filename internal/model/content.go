package model

import "time"

type Event struct {
	ID               int64  `json:"id"`
	Title            string `json:"title"`
	Date             Date   `json:"date"`
	Tithi            string `json:"tithi"`
	Description      string `json:"description"`
	ImageURL         string `json:"imageURL"`
	Category         string `json:"category"`
	NotificationSent bool   `json:"notificationSent"`
}

// Guru is one entry of the guru parampara (lineage), ordered by OrderIndex.
type Guru struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	NameKannada        string   `json:"nameKannada"`
	OrderIndex         int      `json:"orderIndex"`
	AshramaGuru        string   `json:"ashramaGuru"`
	AshramaShishya     string   `json:"ashramaShishya"`
	PhotoURL           string   `json:"photoURL"`
	Period             string   `json:"period"`
	PoorvashramaName   string   `json:"poorvashramaName"`
	Aaradhane          string   `json:"aaradhane"`
	Peetarohana        string   `json:"peetarohana"`
	KeyWorks           string   `json:"keyWorks"`
	Description        string   `json:"description"`
	VrindavanaLocation string   `json:"vrindavanaLocation"`
	VrindavanaMapLink  string   `json:"vrindavanaMapLink"`
	VrindavanaLat      *float64 `json:"vrindavanaLat"`
	VrindavanaLong     *float64 `json:"vrindavanaLong"`
	IsBhootarajaru     bool     `json:"isBhootarajaru"`
	StartYear          *int     `json:"startYear"`
	EndYear            *int     `json:"endYear"`
	ShortHighlight     string   `json:"shortHighlight"`
	AshramaGuruID      *int64   `json:"ashramaGuruId"`
	AshramaShishyaID   *int64   `json:"ashramaShishyaId"`
}

type Branch struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	City      string   `json:"city"`
	State     string   `json:"state"`
	Pincode   string   `json:"pincode"`
	Phone     string   `json:"phone"`
	MapLink   string   `json:"mapLink"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// FlashUpdate is a ticker message shown while active and before its expiry date.
type FlashUpdate struct {
	ID         int64  `json:"id"`
	Message    string `json:"message"`
	Link       string `json:"link"`
	IsActive   bool   `json:"isActive"`
	ExpiryDate Date   `json:"expiryDate"`
}

// Timing is the darshan and prasada schedule of one location.
type Timing struct {
	ID          int64  `json:"id"`
	Location    string `json:"location"`
	DarshanTime string `json:"darshanTime"`
	PrasadaTime string `json:"prasadaTime"`
	IsActive    bool   `json:"isActive"`
}

type Album struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CoverImage  string `json:"coverImage"`
}

type MediaType string

const (
	MediaPhoto MediaType = "PHOTO"
	MediaVideo MediaType = "VIDEO"
)

type MediaItem struct {
	ID      int64     `json:"id"`
	AlbumID int64     `json:"albumId"`
	Type    MediaType `json:"type"`
	URL     string    `json:"url"`
}

// DailyAlankara is the deity decoration photo of the day.
type DailyAlankara struct {
	ID         int64     `json:"id"`
	ImageURL   string    `json:"imageUrl"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type Volunteer struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	Name             string    `json:"name"`
	PhoneNumber      string    `json:"phoneNumber"`
	Email            string    `json:"email"`
	HobbiesOrTalents string    `json:"hobbiesOrTalents"`
	PastExperience   string    `json:"pastExperience"`
	CreatedAt        time.Time `json:"createdAt"`
}
