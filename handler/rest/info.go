package rest

import (
	"net/http"

	"solo/core"
	"solo/handler/render"
)

func infoHandler(system *core.System) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, render.H{
			"version":            system.Version,
			"margin_ratio":       system.MarginRatio,
			"base_spread":        system.BaseSpread,
			"expiry_ramp_time":   system.ExpiryRampTime,
			"min_borrowed_value": system.MinBorrowedValue,
		})
	}
}
