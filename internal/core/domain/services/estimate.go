package services

import (
	"fmt"
	"time"

	"storefront/internal/pkg/errs"
)

// EstimateStatus distinguishes an exact delivery date from a projected range.
type EstimateStatus string

const (
	// EstimateDelivered means the order has been delivered; Date is exact.
	EstimateDelivered EstimateStatus = "delivered"

	// EstimateProjected means the order is in transit; RangeStart/RangeEnd
	// bound the expected delivery window.
	EstimateProjected EstimateStatus = "estimated"
)

// DeliveryEstimate is a display-ready delivery date or date range.
type DeliveryEstimate struct {
	Status     EstimateStatus
	Date       time.Time
	RangeStart time.Time
	RangeEnd   time.Time
	Formatted  string
}

// Estimator computes delivery estimates from shipment timestamps using
// calendar-day arithmetic. It is pure and safe for concurrent use.
type Estimator struct {
	minDays int
	maxDays int
}

// NewEstimator creates an estimator projecting delivery between minDays and
// maxDays calendar days after shipment.
func NewEstimator(minDays, maxDays int) (Estimator, error) {
	if minDays <= 0 || maxDays < minDays {
		return Estimator{}, errs.NewValueIsInvalidError("estimator day window")
	}
	return Estimator{minDays: minDays, maxDays: maxDays}, nil
}

// Estimate turns the optional shipment timestamps into a delivery estimate.
//
// deliveredAt takes precedence over shippedAt even when both are present.
// When neither is set there is no estimate to give; the second return value
// is false (distinct from an error).
func (e Estimator) Estimate(shippedAt, deliveredAt *time.Time) (DeliveryEstimate, bool) {
	if deliveredAt != nil {
		return DeliveryEstimate{
			Status:    EstimateDelivered,
			Date:      *deliveredAt,
			Formatted: formatDate(*deliveredAt),
		}, true
	}

	if shippedAt != nil {
		// AddDate handles month and year rollover for calendar-day arithmetic.
		minDate := shippedAt.AddDate(0, 0, e.minDays)
		maxDate := shippedAt.AddDate(0, 0, e.maxDays)
		return DeliveryEstimate{
			Status:     EstimateProjected,
			RangeStart: minDate,
			RangeEnd:   maxDate,
			Formatted:  formatRange(minDate, maxDate),
		}, true
	}

	return DeliveryEstimate{}, false
}

func formatDate(t time.Time) string {
	return t.Format("2 Jan 2006")
}

// formatRange renders a date range, collapsing shared parts:
// same day "2 Apr 2026", same month "2-6 Apr 2026",
// same year "30 Mar - 3 Apr 2026", otherwise both dates in full.
func formatRange(from, to time.Time) string {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()

	switch {
	case fy == ty && fm == tm && fd == td:
		return formatDate(from)
	case fy == ty && fm == tm:
		return fmt.Sprintf("%d-%d %s %d", fd, td, from.Format("Jan"), fy)
	case fy == ty:
		return fmt.Sprintf("%s - %s %d", from.Format("2 Jan"), to.Format("2 Jan"), fy)
	default:
		return fmt.Sprintf("%s - %s", formatDate(from), formatDate(to))
	}
}
