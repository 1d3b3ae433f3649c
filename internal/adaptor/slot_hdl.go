package adaptor

import (
	"net/http"

	"mobile-booking/internal/dto/request"
	"mobile-booking/internal/usecase"
	"mobile-booking/pkg/utils"

	"go.uber.org/zap"
)

type SlotHandler struct {
	service usecase.SlotService
	log     *zap.Logger
}

func NewSlotHandler(service usecase.SlotService, log *zap.Logger) *SlotHandler {
	return &SlotHandler{
		service: service,
		log:     log.With(zap.String("handler", "slot")),
	}
}

// ListAvailable handles GET /api/slots?date=YYYY-MM-DD
func (h *SlotHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		utils.ResponseBadRequest(w, "Query parameter date is required", nil)
		return
	}

	slots, err := h.service.ListAvailable(r.Context(), date)
	if err != nil {
		handleServiceError(w, h.log, err, "list slots")
		return
	}

	utils.ResponseSuccess(w, "success", slots)
}

// CreateSlot handles POST /api/admin/slots
func (h *SlotHandler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSlotRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	slot, err := h.service.CreateSlot(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create slot")
		return
	}

	utils.ResponseCreated(w, "Slot created", slot)
}
