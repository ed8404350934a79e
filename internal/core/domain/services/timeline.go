package services

import "storefront/internal/core/domain/model/order"

// TimelineEntry is the display classification of one progression step
// relative to the order's current status and observed history.
type TimelineEntry struct {
	Status      order.Status
	Title       string
	Description string
	Completed   bool
	Current     bool
}

// Timeline is the classified progression for one order. When the current
// status is off-path, OffPath is set and Message carries the standalone
// description that replaces the linear progression display.
type Timeline struct {
	Entries []TimelineEntry
	OffPath bool
	Message string
}

// ClassifyTimeline derives, for each status in the canonical progression,
// whether it is completed, current, or pending.
//
// A step counts as completed when it appears in the observed history or when
// it precedes the current status in the progression. An off-path current
// status has no progression index, so only explicit history entries mark
// steps completed in that case.
func ClassifyTimeline(current order.Status, history []order.HistoryEntry) Timeline {
	seen := make(map[order.Status]bool, len(history))
	for _, entry := range history {
		seen[entry.Status()] = true
	}

	currentIndex := current.ProgressionIndex()

	progression := order.Progression()
	entries := make([]TimelineEntry, 0, len(progression))
	for i, status := range progression {
		entries = append(entries, TimelineEntry{
			Status:      status,
			Title:       status.Title(),
			Description: status.Description(),
			Completed:   seen[status] || (currentIndex >= 0 && i < currentIndex),
			Current:     status == current,
		})
	}

	timeline := Timeline{Entries: entries}
	if current.IsOffPath() {
		timeline.OffPath = true
		timeline.Message = current.Description()
	}
	return timeline
}
