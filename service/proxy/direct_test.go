package proxy

import (
	"testing"

	"solo/pkg/number"

	"github.com/stretchr/testify/assert"
)

func testCandidate(marketID uint64, value string) candidate {
	return candidate{marketID: marketID, value: number.Decimal(value)}
}

func TestOrderCandidates(t *testing.T) {
	candidates := []candidate{
		testCandidate(1, "100"),
		testCandidate(2, "500"),
		testCandidate(3, "50"),
	}

	// no preference: highest value first
	orderCandidates(candidates, nil)
	assert.Equal(t, uint64(2), candidates[0].marketID)
	assert.Equal(t, uint64(1), candidates[1].marketID)
	assert.Equal(t, uint64(3), candidates[2].marketID)

	// a preferred market outranks any value
	orderCandidates(candidates, []uint64{3})
	assert.Equal(t, uint64(3), candidates[0].marketID)
	assert.Equal(t, uint64(2), candidates[1].marketID)
}

func TestFilterByRatio(t *testing.T) {
	candidates := []candidate{
		testCandidate(1, "90"),
		testCandidate(2, "9"),
		testCandidate(3, "1"),
	}
	total := number.Decimal("100")

	kept := filterByRatio(candidates, total, number.Decimal("0.05"))
	assert.Len(t, kept, 2)
	assert.Equal(t, uint64(1), kept[0].marketID)
	assert.Equal(t, uint64(2), kept[1].marketID)

	// zero ratio keeps everything
	kept = filterByRatio(candidates, total, number.Decimal("0"))
	assert.Len(t, kept, 3)
}
