// Package slot holds the booking ledger rules for a doctor's reserved time slots.
// The functions here are pure; persistence is the doctor repository's job.
package slot

import (
	"errors"
	"medibook-service/internal/app/models"
)

var ErrSlotAlreadyBooked = errors.New("slot already booked")

// IsAvailable reports whether timeLabel is still free on dateKey.
func IsAvailable(slots models.SlotsBooked, dateKey, timeLabel string) bool {
	for _, booked := range slots[dateKey] {
		if booked == timeLabel {
			return false
		}
	}
	return true
}

// Reserve appends timeLabel under dateKey, creating the key if needed. Like append,
// it returns the map to keep using, which is only newly allocated when slots was nil.
// A taken slot yields ErrSlotAlreadyBooked and leaves slots untouched.
func Reserve(slots models.SlotsBooked, dateKey, timeLabel string) (models.SlotsBooked, error) {
	if !IsAvailable(slots, dateKey, timeLabel) {
		return slots, ErrSlotAlreadyBooked
	}
	if slots == nil {
		slots = models.SlotsBooked{}
	}
	slots[dateKey] = append(slots[dateKey], timeLabel)
	return slots, nil
}

// Release removes timeLabel from dateKey. Releasing a slot that is not held is a no-op.
// A date left without labels is dropped from the map.
func Release(slots models.SlotsBooked, dateKey, timeLabel string) bool {
	labels, ok := slots[dateKey]
	if !ok {
		return false
	}

	for i, booked := range labels {
		if booked != timeLabel {
			continue
		}
		remaining := make([]string, 0, len(labels)-1)
		remaining = append(remaining, labels[:i]...)
		remaining = append(remaining, labels[i+1:]...)
		if len(remaining) == 0 {
			delete(slots, dateKey)
		} else {
			slots[dateKey] = remaining
		}
		return true
	}
	return false
}

// Rebuild derives the ledger from appointments, counting only those still holding a
// slot. Appointments are expected oldest first so label order matches booking order.
func Rebuild(appointments []models.Appointment) models.SlotsBooked {
	slots := models.SlotsBooked{}
	for i := range appointments {
		if !appointments[i].HoldsSlot() {
			continue
		}
		slots, _ = Reserve(slots, appointments[i].SlotDate, appointments[i].SlotTime)
	}
	return slots
}
