package number

import (
	"testing"

	"github.com/bmizerany/assert"
)

func TestCeil(t *testing.T) {
	data := map[string]string{
		"0.10304":     "0.11",
		"0.100000001": "0.11",
		"0.108":       "0.11",
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			c := Ceil(Decimal(k), 2)
			assert.Equal(t, v, c.String(), "should be ceil")
		})
	}
}

func TestFloor(t *testing.T) {
	data := map[string]string{
		"0.10304":     "0.1",
		"0.119999999": "0.11",
		"0.108":       "0.1",
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			f := Floor(Decimal(k), 2)
			assert.Equal(t, v, f.String(), "should be floor")
		})
	}
}

func TestRoundAwayFromZero(t *testing.T) {
	data := map[string]string{
		"0.101":  "0.11",
		"-0.101": "-0.11",
		"0.1":    "0.1",
		"-0.1":   "-0.1",
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			r := RoundAwayFromZero(Decimal(k), 2)
			assert.Equal(t, v, r.String(), "should round away from zero")
		})
	}
}

// the down/up pair must stay asymmetric: the protocol rounds partial
// quotients in its own favor
func TestGetPartialAsymmetry(t *testing.T) {
	target := Decimal("100")
	num := Decimal("1")
	den := Decimal("3")

	down := GetPartial(target, num, den, 4)
	up := GetPartialRoundUp(target, num, den, 4)

	assert.Equal(t, "33.3333", down.String(), "partial rounds down")
	assert.Equal(t, "33.3334", up.String(), "partial round up rounds up")
	assert.T(t, up.GreaterThan(down), "round up must exceed round down on inexact quotients")
}

func TestGetPartialExact(t *testing.T) {
	target := Decimal("100")
	num := Decimal("1")
	den := Decimal("4")

	down := GetPartial(target, num, den, 4)
	up := GetPartialRoundUp(target, num, den, 4)

	assert.Equal(t, down.String(), up.String(), "exact quotients agree in both directions")
	assert.Equal(t, "25", down.String())
}
