package solo

import (
	"testing"
	"time"

	"solo/core"
	"solo/pkg/number"

	"github.com/stretchr/testify/assert"
)

func TestAccrueIndex(t *testing.T) {
	begin := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	index := core.Index{
		Borrow:    number.Decimal("1"),
		Supply:    number.Decimal("1"),
		UpdatedAt: begin,
	}

	borrowRate := number.Decimal("0.000001")
	supplyRate := number.Decimal("0.0000008")

	next := AccrueIndex(index, borrowRate, supplyRate, begin.Add(100*time.Second))
	assert.Equal(t, "1.0001", next.Borrow.String())
	assert.Equal(t, "1.00008", next.Supply.String())
	assert.Equal(t, begin.Add(100*time.Second), next.UpdatedAt)
}

func TestAccrueIndexNoElapsed(t *testing.T) {
	begin := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	index := core.Index{
		Borrow:    number.Decimal("1.5"),
		Supply:    number.Decimal("1.4"),
		UpdatedAt: begin,
	}

	next := AccrueIndex(index, number.Decimal("0.01"), number.Decimal("0.01"), begin)
	assert.Equal(t, "1.5", next.Borrow.String())
	assert.Equal(t, "1.4", next.Supply.String())

	// a clock behind the index never rolls it back
	next = AccrueIndex(index, number.Decimal("0.01"), number.Decimal("0.01"), begin.Add(-time.Minute))
	assert.Equal(t, "1.5", next.Borrow.String())
}

func TestAccrueIndexMonotone(t *testing.T) {
	begin := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	index := core.Index{
		Borrow:    number.Decimal("1"),
		Supply:    number.Decimal("1"),
		UpdatedAt: begin,
	}

	rate := number.Decimal("0.0000000000000000001")

	// below precision the borrow side still ticks up, the supply side
	// never overstates
	next := AccrueIndex(index, rate, rate, begin.Add(time.Second))
	assert.True(t, next.Borrow.GreaterThan(index.Borrow))
	assert.True(t, next.Supply.Equal(index.Supply))
}
