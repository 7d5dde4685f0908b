package entity

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusRejected  ReservationStatus = "rejected"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

type Gender string

const (
	GenderFemale Gender = "female"
	GenderMale   Gender = "male"
)

// MaxDesiredSlots is how many candidate slots one request may carry.
const MaxDesiredSlots = 3

// Slot is a candidate appointment, date as YYYY-MM-DD and time as HH:MM.
type Slot struct {
	Date string `json:"date" validate:"required,slotdate"`
	Time string `json:"time" validate:"required,slottime"`
}

func (s Slot) Equal(other Slot) bool {
	return s.Date == other.Date && s.Time == other.Time
}

type Reservation struct {
	Base
	CustomerName    string            `db:"customer_name"`
	Gender          Gender            `db:"gender"`
	Age             int               `db:"age"`
	Phone           string            `db:"phone"`
	DesiredService  ServiceID         `db:"desired_service"`
	ReferralSource  string            `db:"referral_source"`
	DesiredSlots    []Slot            `db:"desired_slots"`
	PriorExperience string            `db:"prior_experience"`
	FrontPhotoURL   *string           `db:"front_photo_url"`
	ClosedPhotoURL  *string           `db:"closed_photo_url"`
	Status          ReservationStatus `db:"status"`
	SelectedSlot    *Slot             `db:"selected_slot"`
}

// BookedSlot is one desired slot of an existing reservation, flattened for availability.
type BookedSlot struct {
	Date         string            `json:"date"`
	Time         string            `json:"time"`
	Status       ReservationStatus `json:"status"`
	SelectedSlot *Slot             `json:"selected_slot"`
	ServiceType  ServiceID         `json:"service_type"`
}

func (b BookedSlot) Slot() Slot {
	return Slot{Date: b.Date, Time: b.Time}
}

// Blocks reports whether this booked slot makes s unavailable to a new request:
// a pending request holds every slot it offered, a confirmed one only the slot staff chose.
func (b BookedSlot) Blocks(s Slot) bool {
	switch b.Status {
	case ReservationStatusPending:
		return b.Slot().Equal(s)
	case ReservationStatusConfirmed:
		return b.SelectedSlot != nil && b.SelectedSlot.Equal(s)
	default:
		return false
	}
}

// FlattenBookedSlots expands every reservation's desired slots into BookedSlot records.
func FlattenBookedSlots(reservations []*Reservation) []BookedSlot {
	slots := make([]BookedSlot, 0, len(reservations))
	for _, r := range reservations {
		for _, s := range r.DesiredSlots {
			slots = append(slots, BookedSlot{
				Date:         s.Date,
				Time:         s.Time,
				Status:       r.Status,
				SelectedSlot: r.SelectedSlot,
				ServiceType:  r.DesiredService,
			})
		}
	}
	return slots
}
