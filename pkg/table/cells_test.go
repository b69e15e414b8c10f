package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComparisonChangeIsCurrentMinusPrevious(t *testing.T) {
	cell := NewComparison(85.5, 80.0)
	assert.InDelta(t, 5.5, cell.Change, 1e-9)
	assert.Equal(t, TrendUp, cell.Trend())

	cell = NewComparison(60, 75)
	assert.InDelta(t, -15, cell.Change, 1e-9)
	assert.Equal(t, TrendDown, cell.Trend())

	cell = NewComparison(70, 70)
	assert.Zero(t, cell.Change)
	assert.Equal(t, TrendFlat, cell.Trend())
}

func TestChangePercentZeroPrevious(t *testing.T) {
	cell := NewComparison(42, 0)
	assert.Zero(t, cell.ChangePercent())
}

func TestChangePercent(t *testing.T) {
	cell := NewComparison(110, 100)
	assert.InDelta(t, 10, cell.ChangePercent(), 1e-9)
}

func TestProgressPercentageAndBands(t *testing.T) {
	assert.Equal(t, ProgressHigh, NewProgress(100, 80).Band())
	assert.Equal(t, ProgressMedium, NewProgress(100, 50).Band())
	assert.Equal(t, ProgressLow, NewProgress(100, 49).Band())
}

func TestProgressZeroCapacity(t *testing.T) {
	cell := NewProgress(0, 10)
	assert.Zero(t, cell.Percentage)
	assert.Equal(t, ProgressLow, cell.Band())
}
