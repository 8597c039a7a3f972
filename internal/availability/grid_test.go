package availability

import (
	"testing"
	"time"
)

var catalog = []Slot{
	{ID: 1, StartTime: "09:00", EndTime: "09:30"},
	{ID: 2, StartTime: "09:30", EndTime: "10:00"},
	{ID: 3, StartTime: "10:00", EndTime: "10:30"},
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGrid_TemplateWeekdayMatching(t *testing.T) {
	// 2026-09-07 is a Monday, 2026-09-08 a Tuesday.
	monday := date(2026, 9, 7)
	tuesday := date(2026, 9, 8)

	entries := []TemplateEntry{
		{Weekday: int(time.Monday), SlotID: 1},
		{Weekday: int(time.Monday), SlotID: 2},
		{Weekday: int(time.Tuesday), SlotID: 3},
	}

	grid := Grid(monday, tuesday, catalog, entries, nil, nil)
	if len(grid) != 3 {
		t.Fatalf("expected 3 cells, got %d", len(grid))
	}
	if !grid[0].Date.Equal(monday) || grid[0].SlotID != 1 {
		t.Errorf("cell 0 = (%s, %d), want (monday, 1)", grid[0].Date, grid[0].SlotID)
	}
	if !grid[1].Date.Equal(monday) || grid[1].SlotID != 2 {
		t.Errorf("cell 1 = (%s, %d), want (monday, 2)", grid[1].Date, grid[1].SlotID)
	}
	if !grid[2].Date.Equal(tuesday) || grid[2].SlotID != 3 {
		t.Errorf("cell 2 = (%s, %d), want (tuesday, 3)", grid[2].Date, grid[2].SlotID)
	}
	for i, cell := range grid {
		if !cell.Available {
			t.Errorf("cell %d should be available with no blocks or bookings", i)
		}
	}
}

func TestGrid_BlockWinsOverTemplate(t *testing.T) {
	monday := date(2026, 9, 7)
	entries := []TemplateEntry{
		{Weekday: int(time.Monday), SlotID: 1},
		{Weekday: int(time.Monday), SlotID: 2},
	}
	blocks := []Block{{Date: monday, SlotID: 1}}

	grid := Grid(monday, monday, catalog, entries, blocks, nil)
	if len(grid) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(grid))
	}
	if grid[0].Available {
		t.Error("blocked slot must be unavailable regardless of template")
	}
	if !grid[1].Available {
		t.Error("unblocked slot should remain available")
	}
}

func TestGrid_ActiveBookingMarksUnavailable(t *testing.T) {
	monday := date(2026, 9, 7)
	nextMonday := date(2026, 9, 14)
	entries := []TemplateEntry{{Weekday: int(time.Monday), SlotID: 2}}
	booked := []Booking{{Date: monday, SlotID: 2}}

	grid := Grid(monday, nextMonday, catalog, entries, nil, booked)
	if len(grid) != 2 {
		t.Fatalf("expected 2 cells (two Mondays), got %d", len(grid))
	}
	if grid[0].Available {
		t.Error("booked (date, slot) must be unavailable")
	}
	if !grid[1].Available {
		t.Error("same slot one week later should be available")
	}
}

func TestGrid_BookingOnOtherSlotDoesNotLeak(t *testing.T) {
	monday := date(2026, 9, 7)
	entries := []TemplateEntry{
		{Weekday: int(time.Monday), SlotID: 1},
		{Weekday: int(time.Monday), SlotID: 2},
	}
	booked := []Booking{{Date: monday, SlotID: 1}}

	grid := Grid(monday, monday, catalog, entries, nil, booked)
	if grid[0].Available {
		t.Error("slot 1 is booked")
	}
	if !grid[1].Available {
		t.Error("slot 2 should be unaffected by slot 1's booking")
	}
}

func TestGrid_OrderedByDateThenStartTime(t *testing.T) {
	monday := date(2026, 9, 7)
	// Entries deliberately out of order.
	entries := []TemplateEntry{
		{Weekday: int(time.Monday), SlotID: 3},
		{Weekday: int(time.Monday), SlotID: 1},
		{Weekday: int(time.Tuesday), SlotID: 2},
	}

	grid := Grid(monday, date(2026, 9, 8), catalog, entries, nil, nil)
	if len(grid) != 3 {
		t.Fatalf("expected 3 cells, got %d", len(grid))
	}
	if grid[0].StartTime != "09:00" || grid[1].StartTime != "10:00" {
		t.Errorf("Monday cells out of order: %s then %s", grid[0].StartTime, grid[1].StartTime)
	}
	if !grid[2].Date.After(grid[1].Date) {
		t.Error("Tuesday cell should come after Monday cells")
	}
}

func TestGrid_EmptyAndInvalidRanges(t *testing.T) {
	monday := date(2026, 9, 7)
	entries := []TemplateEntry{{Weekday: int(time.Monday), SlotID: 1}}

	if got := Grid(monday, monday.AddDate(0, 0, -1), catalog, entries, nil, nil); got != nil {
		t.Errorf("end before start should yield nil, got %d cells", len(got))
	}
	// Range covering only days the template does not enable.
	if got := Grid(date(2026, 9, 8), date(2026, 9, 13), catalog, entries, nil, nil); len(got) != 0 {
		t.Errorf("no template days in range should yield empty grid, got %d cells", len(got))
	}
}

func TestGrid_UnknownSlotIDSkipped(t *testing.T) {
	monday := date(2026, 9, 7)
	entries := []TemplateEntry{
		{Weekday: int(time.Monday), SlotID: 99},
		{Weekday: int(time.Monday), SlotID: 1},
	}

	grid := Grid(monday, monday, catalog, entries, nil, nil)
	if len(grid) != 1 || grid[0].SlotID != 1 {
		t.Fatalf("entries referencing unknown slots should be skipped, got %+v", grid)
	}
}

func TestGrid_Deterministic(t *testing.T) {
	monday := date(2026, 9, 7)
	entries := []TemplateEntry{
		{Weekday: int(time.Monday), SlotID: 1},
		{Weekday: int(time.Monday), SlotID: 2},
	}
	blocks := []Block{{Date: monday, SlotID: 2}}

	first := Grid(monday, monday.AddDate(0, 0, 13), catalog, entries, blocks, nil)
	second := Grid(monday, monday.AddDate(0, 0, 13), catalog, entries, blocks, nil)
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("cell %d differs between identical runs", i)
		}
	}
}
