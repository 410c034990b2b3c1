package model

import "time"

type OpportunityStatus string

const (
	OpportunityOpen   OpportunityStatus = "OPEN"
	OpportunityClosed OpportunityStatus = "CLOSED"
)

func (s OpportunityStatus) Valid() bool {
	return s == OpportunityOpen || s == OpportunityClosed
}

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationApproved ApplicationStatus = "APPROVED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationApproved, ApplicationRejected:
		return true
	}
	return false
}

// VolunteerOpportunity is a posted call for volunteers. ApplicationCount is kept by the apply path.
type VolunteerOpportunity struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	RequiredSkills   string            `json:"requiredSkills"`
	ImageURL         string            `json:"imageUrl"`
	ApplicationCount int               `json:"applicationCount"`
	Status           OpportunityStatus `json:"status"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// VolunteerApplication links a user to an opportunity; the title and applicant fields are read-side joins.
type VolunteerApplication struct {
	ID               string            `json:"id"`
	UserID           string            `json:"userId"`
	OpportunityID    string            `json:"opportunityId"`
	OpportunityTitle string            `json:"opportunityTitle"`
	ApplicantName    string            `json:"applicantName"`
	ApplicantPhone   string            `json:"applicantPhone"`
	Status           ApplicationStatus `json:"status"`
	AppliedAt        time.Time         `json:"appliedAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}
