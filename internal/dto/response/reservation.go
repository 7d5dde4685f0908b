package response

import (
	"time"

	"prebook/internal/data/entity"
)

type ReservationResponse struct {
	ID              string                   `json:"id"`
	CustomerName    string                   `json:"customer_name"`
	Gender          entity.Gender            `json:"gender"`
	Age             int                      `json:"age"`
	Phone           string                   `json:"phone"`
	DesiredService  entity.ServiceID         `json:"desired_service"`
	ReferralSource  string                   `json:"referral_source,omitempty"`
	DesiredSlots    []entity.Slot            `json:"desired_slots"`
	PriorExperience string                   `json:"prior_experience,omitempty"`
	FrontPhotoURL   *string                  `json:"front_photo_url"`
	ClosedPhotoURL  *string                  `json:"closed_photo_url"`
	Status          entity.ReservationStatus `json:"status"`
	SelectedSlot    *entity.Slot             `json:"selected_slot,omitempty"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

// SubmitResponse is what the customer form gets back after a successful submit.
type SubmitResponse struct {
	Submitted   bool                `json:"submitted"`
	Message     string              `json:"message"`
	Reservation ReservationResponse `json:"reservation"`
}

type BookedSlotsResponse struct {
	Slots []entity.BookedSlot `json:"slots"`
}

func ReservationToResponse(r *entity.Reservation) ReservationResponse {
	slots := r.DesiredSlots
	if slots == nil {
		slots = []entity.Slot{}
	}
	return ReservationResponse{
		ID:              r.ID.String(),
		CustomerName:    r.CustomerName,
		Gender:          r.Gender,
		Age:             r.Age,
		Phone:           r.Phone,
		DesiredService:  r.DesiredService,
		ReferralSource:  r.ReferralSource,
		DesiredSlots:    slots,
		PriorExperience: r.PriorExperience,
		FrontPhotoURL:   r.FrontPhotoURL,
		ClosedPhotoURL:  r.ClosedPhotoURL,
		Status:          r.Status,
		SelectedSlot:    r.SelectedSlot,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
