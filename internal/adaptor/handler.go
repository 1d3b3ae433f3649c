package adaptor

import (
	"encoding/json"
	"net/http"

	"mobile-booking/internal/apperror"
	"mobile-booking/internal/data/entity"
	"mobile-booking/internal/usecase"
	"mobile-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Booking *BookingHandler
	Slot    *SlotHandler
	Pricing *PricingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Booking: NewBookingHandler(service.Booking, log),
		Slot:    NewSlotHandler(service.Slot, log),
		Pricing: NewPricingHandler(service.Pricing, service.Catalog, log),
	}
}

// actorFrom reads the identity the auth middleware stored on the request.
func actorFrom(r *http.Request) (usecase.Actor, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return usecase.Actor{}, false
	}
	role, _ := utils.GetRoleFromContext(r.Context())
	return usecase.Actor{ID: userID, Role: entity.ActorRole(role)}, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

// handleServiceError maps the error code to a status. Internal details stay
// in the log.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	appErr, ok := apperror.As(err)
	if !ok {
		appErr = apperror.Internal(err)
	}

	fields := []zap.Field{
		zap.Error(err),
		zap.String("operation", operation),
		zap.String("code", string(appErr.Code)),
	}

	switch appErr.Code {
	case apperror.CodeValidation:
		log.Warn(operation+" validation failed", append(fields, zap.String("fields", utils.FormatValidationErrors(appErr.Fields)))...)
		utils.ResponseBadRequest(w, appErr.Message, appErr.Fields)

	case apperror.CodeNotFound:
		log.Warn(operation+" failed - not found", fields...)
		utils.ResponseNotFound(w, appErr.Message)

	case apperror.CodeSlotUnavailable, apperror.CodeTimeSlotUnavailable:
		log.Info(operation+" failed - slot taken", fields...)
		utils.ResponseConflict(w, appErr.Message, map[string]string{"code": string(appErr.Code)})

	case apperror.CodeInvalidTransition:
		log.Warn(operation+" failed - invalid transition", fields...)
		utils.ResponseUnprocessable(w, appErr.Message, map[string]string{"code": string(appErr.Code)})

	case apperror.CodeDependencyFailure:
		log.Error(operation+" failed - dependency unavailable", fields...)
		utils.ResponseServiceUnavailable(w, appErr.Message)

	default:
		log.Error("Failed to "+operation, fields...)
		utils.ResponseInternalError(w, "Internal server error")
	}
}
