package services_test

import (
	"testing"
	"time"

	"storefront/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEstimator(t *testing.T) services.Estimator {
	t.Helper()
	e, err := services.NewEstimator(3, 7)
	require.NoError(t, err)
	return e
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestNewEstimator(t *testing.T) {
	t.Run("rejects_invalid_windows", func(t *testing.T) {
		_, err := services.NewEstimator(0, 7)
		require.Error(t, err)

		_, err = services.NewEstimator(7, 3)
		require.Error(t, err)
	})
}

func TestEstimator_Estimate_DeliveredTakesPrecedence(t *testing.T) {
	e := newEstimator(t)
	shipped := date(2026, time.April, 1)
	delivered := date(2026, time.April, 4)

	estimate, ok := e.Estimate(&shipped, &delivered)

	require.True(t, ok)
	assert.Equal(t, services.EstimateDelivered, estimate.Status)
	assert.Equal(t, delivered, estimate.Date)
	assert.Equal(t, "4 Apr 2026", estimate.Formatted)
}

func TestEstimator_Estimate_ProjectedRange(t *testing.T) {
	e := newEstimator(t)
	shipped := date(2026, time.April, 1)

	estimate, ok := e.Estimate(&shipped, nil)

	require.True(t, ok)
	assert.Equal(t, services.EstimateProjected, estimate.Status)
	assert.Equal(t, date(2026, time.April, 4), estimate.RangeStart)
	assert.Equal(t, date(2026, time.April, 8), estimate.RangeEnd)
	assert.Equal(t, "4-8 Apr 2026", estimate.Formatted)
}

func TestEstimator_Estimate_NoTimestamps(t *testing.T) {
	e := newEstimator(t)

	_, ok := e.Estimate(nil, nil)

	assert.False(t, ok, "no shipment data means no estimate, not an error")
}

func TestEstimator_Estimate_MonthRollover(t *testing.T) {
	e := newEstimator(t)
	// Shipped on the last day of March: the window must roll into April.
	shipped := date(2026, time.March, 31)

	estimate, ok := e.Estimate(&shipped, nil)

	require.True(t, ok)
	assert.Equal(t, date(2026, time.April, 3), estimate.RangeStart)
	assert.Equal(t, date(2026, time.April, 7), estimate.RangeEnd)
	assert.Equal(t, "3-7 Apr 2026", estimate.Formatted)
}

func TestEstimator_Estimate_CrossMonthRange(t *testing.T) {
	e := newEstimator(t)
	shipped := date(2026, time.March, 27)

	estimate, ok := e.Estimate(&shipped, nil)

	require.True(t, ok)
	assert.Equal(t, "30 Mar - 3 Apr 2026", estimate.Formatted)
}

func TestEstimator_Estimate_YearRollover(t *testing.T) {
	e := newEstimator(t)
	// Shipped on the last day of the year: the window crosses into January.
	shipped := date(2026, time.December, 31)

	estimate, ok := e.Estimate(&shipped, nil)

	require.True(t, ok)
	assert.Equal(t, date(2027, time.January, 3), estimate.RangeStart)
	assert.Equal(t, date(2027, time.January, 7), estimate.RangeEnd)
	assert.Equal(t, "3-7 Jan 2027", estimate.Formatted)
}

func TestEstimator_Estimate_CrossYearRange(t *testing.T) {
	e := newEstimator(t)
	shipped := date(2026, time.December, 26)

	estimate, ok := e.Estimate(&shipped, nil)

	require.True(t, ok)
	assert.Equal(t, "29 Dec 2026 - 2 Jan 2027", estimate.Formatted)
}

func TestEstimator_Estimate_SameDayRangeCollapses(t *testing.T) {
	e, err := services.NewEstimator(2, 2)
	require.NoError(t, err)
	shipped := date(2026, time.April, 1)

	estimate, ok := e.Estimate(&shipped, nil)

	require.True(t, ok)
	assert.Equal(t, "3 Apr 2026", estimate.Formatted)
}
