package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// TimeOfDay is seconds since midnight. It travels as "HH:MM:SS".
type TimeOfDay int

// ParseTimeOfDay accepts "HH:MM" or "HH:MM:SS".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	var vals [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid time of day %q", s)
		}
		vals[i] = n
	}
	if vals[0] > 24 || vals[1] > 59 || vals[2] > 59 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	// 24:00 is the end of the day and nothing past it.
	if vals[0] == 24 && (vals[1] != 0 || vals[2] != 0) {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	return TimeOfDay(vals[0]*3600 + vals[1]*60 + vals[2]), nil
}

// MustTimeOfDay is ParseTimeOfDay for literals.
func MustTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t TimeOfDay) Hour() int   { return int(t) / 3600 }
func (t TimeOfDay) Minute() int { return int(t) % 3600 / 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), int(t)%60)
}

// Display renders a 12-hour label such as "9:05 AM".
func (t TimeOfDay) Display() string {
	h := t.Hour()
	ampm := "AM"
	if h >= 12 {
		ampm = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, t.Minute(), ampm)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*t = 0
		return nil
	}
	v, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Slot is a bookable interval offered by a doctor.
type Slot struct {
	Date      string    `json:"date"`
	StartTime TimeOfDay `json:"startTime"`
	EndTime   TimeOfDay `json:"endTime"`
}

// Key identifies a slot within a doctor's offer.
func (s Slot) Key() string {
	return s.Date + "T" + s.StartTime.String()
}

// AvailableSlotsResponse is the body of GET /patient/doctors/{id}/available-slots.
type AvailableSlotsResponse struct {
	AvailableSlots []Slot `json:"availableSlots"`
}

// DisplaySlot is a slot prepared for rendering.
type DisplaySlot struct {
	Slot
	Display string `json:"display"`
}

// SlotGroup holds the slots of one calendar date in offer order.
type SlotGroup struct {
	Date  string        `json:"date"`
	Label string        `json:"label"`
	Slots []DisplaySlot `json:"slots"`
}
