package availability

import (
	"sort"
	"strconv"
	"time"
)

// Slot mirrors one catalog entry: a reusable wall-clock interval.
type Slot struct {
	ID        int
	StartTime string // "HH:MM"
	EndTime   string // "HH:MM"
}

// TemplateEntry is an enabled weekly-template row for one doctor.
type TemplateEntry struct {
	Weekday int // time.Weekday numbering, Sunday = 0
	SlotID  int
}

// Block is a punctual (date, slot) removal.
type Block struct {
	Date   time.Time
	SlotID int
}

// Booking is an active (CONFIRMED or RESCHEDULED) appointment occupying a
// (date, slot).
type Booking struct {
	Date   time.Time
	SlotID int
}

// DaySlot is one cell of the availability grid.
type DaySlot struct {
	Date      time.Time
	SlotID    int
	StartTime string
	EndTime   string
	Available bool
}

// Grid derives a doctor's availability over the inclusive date range
// [start, end]. For every date, each slot the weekly template enables on that
// weekday yields one DaySlot; the cell is unavailable when a block or an
// active booking matches the exact (date, slot). Template-eligible cells are
// always reported, positive or negative, so callers can render a full grid.
//
// Output is ordered by date, then slot start time. The function is a pure
// read: identical inputs always produce identical output.
func Grid(start, end time.Time, slots []Slot, entries []TemplateEntry, blocks []Block, booked []Booking) []DaySlot {
	if end.Before(start) {
		return nil
	}

	slotByID := make(map[int]Slot, len(slots))
	for _, s := range slots {
		slotByID[s.ID] = s
	}

	entriesByWeekday := make(map[int][]TemplateEntry)
	for _, e := range entries {
		entriesByWeekday[e.Weekday] = append(entriesByWeekday[e.Weekday], e)
	}

	blocked := make(map[string]bool, len(blocks))
	for _, b := range blocks {
		blocked[dayKey(b.Date, b.SlotID)] = true
	}

	taken := make(map[string]bool, len(booked))
	for _, b := range booked {
		taken[dayKey(b.Date, b.SlotID)] = true
	}

	var grid []DaySlot
	for d := truncateDay(start); !d.After(truncateDay(end)); d = d.AddDate(0, 0, 1) {
		dayEntries := entriesByWeekday[int(d.Weekday())]
		cells := make([]DaySlot, 0, len(dayEntries))
		for _, e := range dayEntries {
			slot, ok := slotByID[e.SlotID]
			if !ok {
				continue
			}
			key := dayKey(d, e.SlotID)
			cells = append(cells, DaySlot{
				Date:      d,
				SlotID:    slot.ID,
				StartTime: slot.StartTime,
				EndTime:   slot.EndTime,
				Available: !blocked[key] && !taken[key],
			})
		}
		sort.Slice(cells, func(i, j int) bool {
			if cells[i].StartTime != cells[j].StartTime {
				return cells[i].StartTime < cells[j].StartTime
			}
			return cells[i].SlotID < cells[j].SlotID
		})
		grid = append(grid, cells...)
	}

	return grid
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func dayKey(date time.Time, slotID int) string {
	return date.Format("2006-01-02") + "#" + strconv.Itoa(slotID)
}
