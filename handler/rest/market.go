package rest

import (
	"errors"
	"net/http"
	"strings"

	"solo/core"
	"solo/handler/render"
	"solo/handler/views"

	"github.com/go-chi/chi"
)

func allMarketsHandler(marketStore core.IMarketStore, marketService core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		markets, err := marketStore.All(ctx)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		marketViews := make([]*views.Market, 0, len(markets))
		for _, m := range markets {
			marketViews = append(marketViews, &views.Market{
				Market:    *m,
				ExcessWei: marketService.ExcessWei(ctx, m),
			})
		}

		render.JSON(w, marketViews)
	}
}

func marketHandler(marketStore core.IMarketStore, marketService core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		symbol := strings.ToUpper(chi.URLParam(r, "symbol"))
		market, err := marketStore.FindBySymbol(ctx, symbol)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if market.ID == 0 {
			render.NotFoundRequest(w, errors.New("market not found"))
			return
		}

		render.JSON(w, &views.Market{
			Market:    *market,
			ExcessWei: marketService.ExcessWei(ctx, market),
		})
	}
}
