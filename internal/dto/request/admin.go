package request

type StaffLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type ListReservationsRequest struct {
	PaginatedRequest
	Status string `json:"status" validate:"omitempty,oneof=pending confirmed rejected cancelled"`
}

type ConfirmReservationRequest struct {
	Date string `json:"date" validate:"required,slotdate"`
	Time string `json:"time" validate:"required,slottime"`
}

type RenderTemplateRequest struct {
	Variables     map[string]string `json:"variables"`
	ReservationID string            `json:"reservation_id" validate:"omitempty,uuid"`
}
