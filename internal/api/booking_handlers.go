package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"parkease/internal/apperrors"
	"parkease/internal/auth"
	"parkease/internal/service"
)

type BookingHandler struct {
	Service *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, err)
		return
	}

	booking, slot, err := h.Service.CreateBooking(r.Context(), auth.UserIDFromContext(r.Context()), service.CreateBookingInput{
		SlotID:        req.SlotID,
		VehicleNumber: req.VehicleNumber,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Booking successful!",
		"booking": toBookingResponse(booking),
		"slot":    slot,
	})
}

func (h *BookingHandler) MyBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Service.MyBookings(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponses(bookings))
}

func (h *BookingHandler) AllBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Service.AllBookings(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponses(bookings))
}

func (h *BookingHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	bookingID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	booking, err := h.Service.CheckIn(r.Context(), bookingID, auth.UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Check-in successful",
		"booking": toBookingResponse(booking),
	})
}

func (h *BookingHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	bookingID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	booking, fee, err := h.Service.CheckOut(r.Context(), bookingID, auth.UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Check-out successful",
		"booking":     toBookingResponse(booking),
		"duration":    service.FormatDuration(fee.ActualDuration),
		"fee_details": fee,
	})
}

func (h *BookingHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	bookingID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req ProcessPaymentRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, booking, err := h.Service.ProcessPayment(r.Context(), bookingID, auth.UserIDFromContext(r.Context()), req.Method)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": result.Message,
		"success": result.Success,
		"payment": PaymentResponse{
			Amount:        booking.Payment.Amount,
			Method:        booking.Payment.Method,
			Status:        booking.Payment.Status,
			TransactionID: booking.Payment.TransactionID,
			PaidAt:        booking.Payment.PaidAt,
		},
	})
}

func (h *BookingHandler) FeeDetails(w http.ResponseWriter, r *http.Request) {
	bookingID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	ctx := r.Context()
	booking, fee, err := h.Service.FeeDetails(ctx, bookingID, auth.UserIDFromContext(ctx), auth.IsAdmin(ctx))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"booking": toBookingResponse(booking),
		"duration": map[string]interface{}{
			"minutes":   fee.ActualDuration,
			"formatted": service.FormatDuration(fee.ActualDuration),
		},
		"fee":     fee,
		"pricing": h.Service.Pricing(),
	})
}

func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return 0, apperrors.Validation("invalid booking id")
	}
	return id, nil
}

// decodeStrict rejects unknown fields so malformed payloads fail at
// the boundary instead of silently defaulting inside business logic.
func decodeStrict(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return apperrors.Validation("invalid request body: " + err.Error())
	}
	return nil
}
