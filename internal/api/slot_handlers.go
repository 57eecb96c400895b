package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"parkease/internal/apperrors"
	"parkease/internal/db"
	"parkease/internal/repository"
)

type SlotHandler struct {
	Slots repository.SlotRepository
}

func NewSlotHandler(slots repository.SlotRepository) *SlotHandler {
	return &SlotHandler{Slots: slots}
}

func (h *SlotHandler) ListSlots(w http.ResponseWriter, r *http.Request) {
	filter := repository.SlotFilter{
		City:          r.URL.Query().Get("city"),
		Area:          r.URL.Query().Get("area"),
		AvailableOnly: r.URL.Query().Get("available") == "true",
	}
	slots, err := h.Slots.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	if slots == nil {
		slots = []db.Slot{}
	}
	writeJSON(w, http.StatusOK, slots)
}

func (h *SlotHandler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	var req SlotRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.SlotNumber == "" {
		writeError(w, apperrors.Validation("slot number is required"))
		return
	}

	slot := db.Slot{
		SlotNumber:  req.SlotNumber,
		IsAvailable: true,
		City:        req.City,
		Area:        req.Area,
		Address:     req.Address,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		PlaceType:   req.PlaceType,
		Section:     req.Section,
	}
	if err := h.Slots.Create(r.Context(), &slot); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, slot)
}

func (h *SlotHandler) UpdateSlot(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, apperrors.Validation("invalid slot id"))
		return
	}

	var req SlotRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, err)
		return
	}

	slot, err := h.Slots.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, apperrors.NotFound("slot not found"))
			return
		}
		writeError(w, err)
		return
	}

	slot.SlotNumber = req.SlotNumber
	slot.IsAvailable = req.IsAvailable
	slot.City = req.City
	slot.Area = req.Area
	slot.Address = req.Address
	slot.Latitude = req.Latitude
	slot.Longitude = req.Longitude
	slot.PlaceType = req.PlaceType
	slot.Section = req.Section

	if err := h.Slots.Update(r.Context(), slot); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, slot)
}
