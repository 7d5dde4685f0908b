package request

import (
	"errors"

	"prebook/internal/data/entity"
)

var (
	ErrTooManySlots  = errors.New("at most 3 desired slots can be selected")
	ErrDuplicateSlot = errors.New("slot is already selected")
)

// Photo is an uploaded reference photograph held in memory until submit.
type Photo struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReservationDraft is the state of one appointment-request form.
type ReservationDraft struct {
	TermsAgreed     bool             `json:"terms_agreed"`
	CustomerName    string           `json:"customer_name" validate:"required,max=50"`
	Gender          entity.Gender    `json:"gender" validate:"required,oneof=female male"`
	Age             int              `json:"age" validate:"required,gt=0,max=120"`
	Phone           string           `json:"phone" validate:"required,phone"`
	DesiredService  entity.ServiceID `json:"desired_service" validate:"required,oneof=natural combo shadow recommend retouch brownline removal"`
	ReferralSource  string           `json:"referral_source" validate:"max=200"`
	DesiredSlots    []entity.Slot    `json:"desired_slots" validate:"required,min=1,max=3,dive"`
	PriorExperience string           `json:"prior_experience" validate:"max=1000"`
	FrontPhoto      *Photo           `json:"-"`
	ClosedPhoto     *Photo           `json:"-"`

	// Submitted flips to true once the request has been stored.
	Submitted bool `json:"-"`
}

// SelectService switches the treatment and drops every selected slot, since availability
// depends on the treatment.
func (d *ReservationDraft) SelectService(id entity.ServiceID) {
	d.DesiredService = id
	d.DesiredSlots = []entity.Slot{}
}

// AddSlot appends a candidate slot. The cap and duplicates are rejected here so that no
// caller can push the draft past what submit accepts.
func (d *ReservationDraft) AddSlot(slot entity.Slot) error {
	if d.HasSlot(slot) {
		return ErrDuplicateSlot
	}
	if len(d.DesiredSlots) >= entity.MaxDesiredSlots {
		return ErrTooManySlots
	}
	d.DesiredSlots = append(d.DesiredSlots, slot)
	return nil
}

// RemoveSlot drops every slot equal to slot and keeps the rest in order.
func (d *ReservationDraft) RemoveSlot(slot entity.Slot) {
	kept := make([]entity.Slot, 0, len(d.DesiredSlots))
	for _, s := range d.DesiredSlots {
		if !s.Equal(slot) {
			kept = append(kept, s)
		}
	}
	d.DesiredSlots = kept
}

func (d *ReservationDraft) HasSlot(slot entity.Slot) bool {
	for _, s := range d.DesiredSlots {
		if s.Equal(slot) {
			return true
		}
	}
	return false
}
