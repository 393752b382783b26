package booking

import (
	"sort"
	"time"

	"doclink/models"
	"doclink/utils"
)

// GroupSlots groups raw slots by calendar date for display. Slots dated today
// whose start time is at or before now are dropped. Dates come back in
// ascending order and slots keep their offer order within a date.
func GroupSlots(raw []models.Slot, now time.Time) []models.SlotGroup {
	today := utils.Today(now)
	cutoff := models.TimeOfDay(utils.SecondsSinceMidnight(now))

	byDate := make(map[string]*models.SlotGroup)
	var dates []string
	for _, s := range raw {
		if s.Date == "" {
			continue
		}
		if s.Date == today && s.StartTime <= cutoff {
			continue
		}
		g, ok := byDate[s.Date]
		if !ok {
			g = &models.SlotGroup{Date: s.Date, Label: utils.DateLabel(s.Date, now)}
			byDate[s.Date] = g
			dates = append(dates, s.Date)
		}
		g.Slots = append(g.Slots, models.DisplaySlot{Slot: s, Display: slotLabel(s)})
	}

	sort.Strings(dates)
	groups := make([]models.SlotGroup, 0, len(dates))
	for _, d := range dates {
		groups = append(groups, *byDate[d])
	}
	return groups
}

func slotLabel(s models.Slot) string {
	if s.EndTime == 0 {
		return s.StartTime.Display()
	}
	return s.StartTime.Display() + " - " + s.EndTime.Display()
}

// findSlot looks a slot up by date and start time in grouped slots.
func findSlot(groups []models.SlotGroup, date string, start models.TimeOfDay) (models.Slot, bool) {
	for _, g := range groups {
		if g.Date != date {
			continue
		}
		for _, s := range g.Slots {
			if s.StartTime == start {
				return s.Slot, true
			}
		}
	}
	return models.Slot{}, false
}

func hasDate(groups []models.SlotGroup, date string) bool {
	for _, g := range groups {
		if g.Date == date {
			return true
		}
	}
	return false
}
