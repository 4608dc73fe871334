package rest

import (
	"net/http"
	"strconv"
	"time"

	"solo/core"
	"solo/handler/param"
	"solo/handler/render"
	"solo/handler/views"
	"solo/pkg/solo"

	"github.com/go-chi/chi"
)

func accountParam(r *http.Request) (core.Account, error) {
	number, err := strconv.ParseUint(chi.URLParam(r, "number"), 10, 64)
	if err != nil {
		return core.Account{}, err
	}

	return core.Account{
		Owner:  chi.URLParam(r, "owner"),
		Number: number,
	}, nil
}

func accountHandler(
	accountStore core.IAccountStore,
	expiryStore core.IExpiryStore,
	marketService core.IMarketService,
	accountService core.IAccountService,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		account, err := accountParam(r)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		cache, err := marketService.BuildCache(ctx, time.Now(), []core.Account{account})
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		values, err := accountService.AccountValues(ctx, account, cache)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		collateralized, err := accountService.IsCollateralized(ctx, account, cache, true)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		state, err := accountStore.FindState(ctx, account)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		balances, err := accountStore.FindBalances(ctx, account)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		expiries, err := expiryStore.FindByAccount(ctx, account)
		if err != nil {
			render.BadRequest(w, err)
			return
		}
		expiresAt := make(map[uint64]uint32, len(expiries))
		for _, e := range expiries {
			expiresAt[e.MarketID] = e.ExpiresAt
		}

		legs := make([]views.BalanceLeg, 0, len(balances))
		for _, b := range balances {
			if b.Principal.IsZero() {
				continue
			}

			market, err := cache.Get(b.MarketID)
			if err != nil {
				render.BadRequest(w, err)
				return
			}

			wei := solo.ParToWei(b.Principal, market.Index())
			legs = append(legs, views.BalanceLeg{
				MarketID:  b.MarketID,
				Symbol:    market.Symbol,
				Principal: b.Principal,
				Wei:       wei,
				Value:     wei.Abs().Mul(market.Price),
				ExpiresAt: expiresAt[b.MarketID],
			})
		}

		render.JSON(w, &views.Account{
			Owner:          account.Owner,
			Number:         account.Number,
			Status:         state.Status.String(),
			SupplyValue:    values.SupplyValue,
			BorrowValue:    values.BorrowValue,
			Collateralized: collateralized,
			Legs:           legs,
		})
	}
}

func liquidationsHandler(eventStore core.IEventStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		account, err := accountParam(r)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		var params struct {
			Limit int `json:"limit"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		limit := params.Limit
		if limit <= 0 || limit > 500 {
			limit = 100
		}

		events, err := eventStore.ListLiquidations(ctx, account, limit)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, events)
	}
}

func liquidatableHandler(accountService core.IAccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		accounts, err := accountService.ListLiquidatable(ctx)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, accounts)
	}
}
