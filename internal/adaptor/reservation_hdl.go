package adaptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"prebook/internal/data/entity"
	"prebook/internal/dto/request"
	"prebook/internal/dto/response"
	"prebook/internal/usecase"
	"prebook/pkg/utils"

	"go.uber.org/zap"
)

const submitFailedMessage = "failed to submit reservation request"

// errPhotoTooLarge is returned while reading a multipart photo over the size limit.
var errPhotoTooLarge = errors.New("photo is too large")

type ReservationHandler struct {
	service       usecase.ReservationService
	maxPhotoBytes int64
	log           *zap.Logger
}

func NewReservationHandler(service usecase.ReservationService, maxPhotoBytes int64, log *zap.Logger) *ReservationHandler {
	if maxPhotoBytes <= 0 {
		maxPhotoBytes = 10 << 20
	}
	return &ReservationHandler{
		service:       service,
		maxPhotoBytes: maxPhotoBytes,
		log:           log.With(zap.String("handler", "reservation")),
	}
}

// GetServices handles GET /api/services
func (h *ReservationHandler) GetServices(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "Services retrieved successfully", entity.ServiceTypes())
}

// GetBookedSlots handles GET /api/slots/booked?service=
func (h *ReservationHandler) GetBookedSlots(w http.ResponseWriter, r *http.Request) {
	service := entity.ServiceID(r.URL.Query().Get("service"))
	if service != "" && !service.Valid() {
		utils.ResponseBadRequest(w, "Unknown service type", nil)
		return
	}

	slots := h.service.LoadBookedSlots(r.Context(), service)
	utils.ResponseSuccess(w, "Booked slots retrieved successfully", response.BookedSlotsResponse{Slots: slots})
}

// Submit handles POST /api/reservations (multipart form)
func (h *ReservationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	// two photos plus a megabyte for the text fields
	limit := 2*h.maxPhotoBytes + 1<<20
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(limit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.ResponseTooLarge(w, "Request is too large")
			return
		}
		utils.ResponseBadRequest(w, "Invalid multipart form", nil)
		return
	}
	defer r.MultipartForm.RemoveAll()

	draft, err := h.parseDraft(r)
	if err != nil {
		if errors.Is(err, errPhotoTooLarge) {
			utils.ResponseTooLarge(w, err.Error())
			return
		}
		h.log.Warn("Invalid reservation form", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	reservation, err := h.service.Submit(r.Context(), draft)
	if err != nil {
		handleServiceError(w, h.log, err, "submit reservation", submitFailedMessage)
		return
	}

	utils.ResponseCreated(w, "Reservation request submitted successfully", response.SubmitResponse{
		Submitted:   draft.Submitted,
		Message:     "예약 신청이 완료되었습니다. 확인 후 연락드리겠습니다.",
		Reservation: *reservation,
	})
}

func (h *ReservationHandler) parseDraft(r *http.Request) (*request.ReservationDraft, error) {
	draft := &request.ReservationDraft{
		CustomerName:    strings.TrimSpace(r.FormValue("customer_name")),
		Gender:          entity.Gender(r.FormValue("gender")),
		Phone:           strings.TrimSpace(r.FormValue("phone")),
		ReferralSource:  strings.TrimSpace(r.FormValue("referral_source")),
		PriorExperience: strings.TrimSpace(r.FormValue("prior_experience")),
	}

	draft.TermsAgreed, _ = strconv.ParseBool(r.FormValue("terms_agreed"))
	draft.Age = utils.ParseInt(r.FormValue("age"), 0)
	draft.SelectService(entity.ServiceID(r.FormValue("desired_service")))

	// slots and photos are not looked at until the terms are agreed
	if !draft.TermsAgreed {
		return draft, nil
	}

	if raw := r.FormValue("desired_slots"); raw != "" {
		var slots []entity.Slot
		if err := json.Unmarshal([]byte(raw), &slots); err != nil {
			return nil, fmt.Errorf("invalid desired_slots: %w", err)
		}
		for _, slot := range slots {
			if err := draft.AddSlot(slot); err != nil {
				return nil, err
			}
		}
	}

	var err error
	if draft.FrontPhoto, err = h.readPhoto(r, "front_photo"); err != nil {
		return nil, err
	}
	if draft.ClosedPhoto, err = h.readPhoto(r, "closed_photo"); err != nil {
		return nil, err
	}

	return draft, nil
}

// readPhoto returns nil when the field is absent.
func (h *ReservationHandler) readPhoto(r *http.Request, field string) (*request.Photo, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", field, err)
	}
	defer file.Close()

	return h.readPart(file, header, field)
}

func (h *ReservationHandler) readPart(file multipart.File, header *multipart.FileHeader, field string) (*request.Photo, error) {
	if header.Size > h.maxPhotoBytes {
		return nil, fmt.Errorf("%w: %s", errPhotoTooLarge, field)
	}

	data, err := io.ReadAll(io.LimitReader(file, h.maxPhotoBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", field, err)
	}
	if int64(len(data)) > h.maxPhotoBytes {
		return nil, fmt.Errorf("%w: %s", errPhotoTooLarge, field)
	}

	return &request.Photo{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
