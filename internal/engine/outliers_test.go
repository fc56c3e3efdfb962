package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restock-engine/internal/host"
)

func TestDeltaOutliersSplitsOverAndUnderStocked(t *testing.T) {
	f := newFixture(t)
	e := f.engine(t)

	// Product 1 understocked: no storage, minimum target of 2 boxes.
	// Product 2 overstocked: 1000 units on hand against the same minimum.
	f.inventory.Splits[2] = host.UnitSplit{Boxed: 1000}

	top, bottom := e.DeltaOutliers(10, 1)
	require.Len(t, top, 1)
	require.Len(t, bottom, 1)
	assert.Equal(t, 1, top[0].ID)
	assert.Equal(t, 2, bottom[0].ID)
}

func TestDeltaOutliersHonorsMinDeltaAndDisplay(t *testing.T) {
	f := newFixture(t)
	e := f.engine(t)

	// Product 1 sits exactly at target: delta 0, below the minimum.
	f.inventory.Splits[1] = host.UnitSplit{Boxed: 20}
	// Product 2 understocked but not displayed.
	f.display.Displayed[2] = false

	top, bottom := e.DeltaOutliers(10, 1)
	assert.Empty(t, top)
	assert.Empty(t, bottom)
}

func TestOutlierReportRendersPlaceholders(t *testing.T) {
	f := newFixture(t)
	e := f.engine(t)
	f.display.Displayed[1] = false
	f.display.Displayed[2] = false

	report := e.OutlierReport(10, 1)
	assert.Contains(t, report, "[no positive deltas]")
	assert.Contains(t, report, "[no negative deltas]")
}
