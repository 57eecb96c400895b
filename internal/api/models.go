package api

import (
	"time"

	"parkease/internal/db"
)

type CreateBookingRequest struct {
	SlotID        int       `json:"slot_id"`
	VehicleNumber string    `json:"vehicle_number"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
}

type ProcessPaymentRequest struct {
	Method string `json:"method"`
}

type RegisterRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Phone         string `json:"phone"`
	VehicleNumber string `json:"vehicle_number"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	VehicleNumber string `json:"vehicle_number,omitempty"`
}

type SlotRequest struct {
	SlotNumber  string  `json:"slot_number"`
	IsAvailable bool    `json:"is_available"`
	City        string  `json:"city"`
	Area        string  `json:"area"`
	Address     string  `json:"address"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	PlaceType   string  `json:"place_type"`
	Section     string  `json:"section"`
}

type PaymentResponse struct {
	Amount        float64    `json:"amount"`
	Method        string     `json:"method"`
	Status        string     `json:"status"`
	TransactionID string     `json:"transaction_id,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
}

type BookingResponse struct {
	ID              int             `json:"id"`
	SlotID          int             `json:"slot_id"`
	VehicleNumber   string          `json:"vehicle_number"`
	StartTime       time.Time       `json:"start_time"`
	EndTime         time.Time       `json:"end_time"`
	ActualEntryTime *time.Time      `json:"actual_entry_time,omitempty"`
	ActualExitTime  *time.Time      `json:"actual_exit_time,omitempty"`
	ActualDuration  *int            `json:"actual_duration,omitempty"`
	ParkingStatus   string          `json:"parking_status"`
	Status          string          `json:"status"`
	Payment         PaymentResponse `json:"payment"`
	CreatedAt       time.Time       `json:"created_at"`
}

func toUserResponse(user *db.User) UserResponse {
	return UserResponse{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Role:          user.Role,
		VehicleNumber: user.VehicleNumber,
	}
}

func toBookingResponse(booking *db.Booking) BookingResponse {
	return BookingResponse{
		ID:              booking.ID,
		SlotID:          booking.SlotID,
		VehicleNumber:   booking.VehicleNumber,
		StartTime:       booking.StartTime,
		EndTime:         booking.EndTime,
		ActualEntryTime: booking.ActualEntryTime,
		ActualExitTime:  booking.ActualExitTime,
		ActualDuration:  booking.ActualDuration,
		ParkingStatus:   booking.ParkingStatus,
		Status:          booking.Status,
		Payment: PaymentResponse{
			Amount:        booking.Payment.Amount,
			Method:        booking.Payment.Method,
			Status:        booking.Payment.Status,
			TransactionID: booking.Payment.TransactionID,
			PaidAt:        booking.Payment.PaidAt,
		},
		CreatedAt: booking.CreatedAt,
	}
}

func toBookingResponses(bookings []db.Booking) []BookingResponse {
	responses := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, toBookingResponse(&bookings[i]))
	}
	return responses
}
