package entity

import "testing"

func TestBookedSlot_Blocks(t *testing.T) {
	want := Slot{Date: "2024-05-01", Time: "14:00"}
	other := Slot{Date: "2024-05-01", Time: "15:00"}

	tests := []struct {
		name   string
		booked BookedSlot
		want   bool
	}{
		{
			name:   "pending holds its desired slot",
			booked: BookedSlot{Date: "2024-05-01", Time: "14:00", Status: ReservationStatusPending},
			want:   true,
		},
		{
			name:   "pending on another time",
			booked: BookedSlot{Date: "2024-05-01", Time: "15:00", Status: ReservationStatusPending},
			want:   false,
		},
		{
			name:   "confirmed on the selected slot",
			booked: BookedSlot{Date: "2024-05-01", Time: "14:00", Status: ReservationStatusConfirmed, SelectedSlot: &want},
			want:   true,
		},
		{
			name:   "confirmed elsewhere frees its other candidates",
			booked: BookedSlot{Date: "2024-05-01", Time: "14:00", Status: ReservationStatusConfirmed, SelectedSlot: &other},
			want:   false,
		},
		{
			name:   "confirmed without selection",
			booked: BookedSlot{Date: "2024-05-01", Time: "14:00", Status: ReservationStatusConfirmed},
			want:   false,
		},
		{
			name:   "rejected never blocks",
			booked: BookedSlot{Date: "2024-05-01", Time: "14:00", Status: ReservationStatusRejected},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.booked.Blocks(want); got != tt.want {
				t.Errorf("Blocks() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFlattenBookedSlots(t *testing.T) {
	selected := Slot{Date: "2024-05-02", Time: "11:00"}
	reservations := []*Reservation{
		{
			DesiredService: ServiceCombo,
			Status:         ReservationStatusConfirmed,
			SelectedSlot:   &selected,
			DesiredSlots: []Slot{
				{Date: "2024-05-01", Time: "10:00"},
				{Date: "2024-05-02", Time: "11:00"},
			},
		},
		{
			DesiredService: ServiceRetouch,
			Status:         ReservationStatusPending,
			DesiredSlots:   []Slot{{Date: "2024-05-03", Time: "12:00"}},
		},
		{Status: ReservationStatusPending},
	}

	got := FlattenBookedSlots(reservations)
	if len(got) != 3 {
		t.Fatalf("FlattenBookedSlots() returned %d slots, want 3", len(got))
	}
	if got[0].ServiceType != ServiceCombo || got[0].SelectedSlot == nil || *got[0].SelectedSlot != selected {
		t.Errorf("first slot = %+v, want combo with selected slot", got[0])
	}
	if got[2].Date != "2024-05-03" || got[2].Status != ReservationStatusPending || got[2].ServiceType != ServiceRetouch {
		t.Errorf("last slot = %+v", got[2])
	}
}

func TestServiceID_Valid(t *testing.T) {
	for _, s := range ServiceTypes() {
		if !s.ID.Valid() {
			t.Errorf("%s should be valid", s.ID)
		}
	}
	if ServiceID("tattoo").Valid() {
		t.Error("unknown service reported valid")
	}
	if len(ServiceTypes()) != 7 {
		t.Errorf("catalog has %d services, want 7", len(ServiceTypes()))
	}
}
