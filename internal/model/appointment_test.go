package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAppointmentStatus(t *testing.T) {
	assert.True(t, AppointmentStatusScheduled.Valid())
	assert.True(t, AppointmentStatusCompleted.Valid())
	assert.True(t, AppointmentStatusCancelled.Valid())
	assert.False(t, AppointmentStatus("pending").Valid())

	assert.False(t, AppointmentStatusScheduled.Terminal())
	assert.True(t, AppointmentStatusCompleted.Terminal())
	assert.True(t, AppointmentStatusCancelled.Terminal())

	assert.True(t, AppointmentStatusScheduled.Active())
	assert.True(t, AppointmentStatusCompleted.Active())
	assert.False(t, AppointmentStatusCancelled.Active())
}

func TestSlotKeyCovers(t *testing.T) {
	doctorID := uuid.New()
	slot := &AvailabilitySlot{
		DoctorID:  doctorID,
		Date:      "2024-01-10",
		StartTime: "09:00",
		EndTime:   "10:00",
	}

	tests := []struct {
		name string
		key  SlotKey
		want bool
	}{
		{"start of interval", SlotKey{doctorID, "2024-01-10", "09:00"}, true},
		{"inside interval", SlotKey{doctorID, "2024-01-10", "09:30"}, true},
		{"end is exclusive", SlotKey{doctorID, "2024-01-10", "10:00"}, false},
		{"before interval", SlotKey{doctorID, "2024-01-10", "08:59"}, false},
		{"wrong date", SlotKey{doctorID, "2024-01-11", "09:30"}, false},
		{"wrong doctor", SlotKey{uuid.New(), "2024-01-10", "09:30"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.key.Covers(slot))
		})
	}
}

func TestAppointmentSlotKey(t *testing.T) {
	a := &Appointment{
		DoctorID: uuid.New(),
		Date:     "2024-01-10",
		Time:     "09:30",
	}
	key := a.SlotKey()
	assert.Equal(t, a.DoctorID, key.DoctorID)
	assert.Equal(t, "2024-01-10", key.Date)
	assert.Equal(t, "09:30", key.Time)
}
