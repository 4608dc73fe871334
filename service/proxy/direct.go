package proxy

import (
	"context"
	"fmt"
	"sort"
	"time"

	"solo/core"
	"solo/pkg/solo"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

// DirectRequest direct liquidation of one account, market pairs chosen
// by the proxy
type DirectRequest struct {
	Caller string       `json:"caller"`
	Solid  core.Account `json:"solid"`
	Liquid core.Account `json:"liquid"`
	// preferred markets are tried first, in the order given
	PreferredHeldMarketIDs []uint64 `json:"preferred_held_market_ids,omitempty"`
	PreferredOwedMarketIDs []uint64 `json:"preferred_owed_market_ids,omitempty"`
	// legs worth less than this fraction of their side's total are
	// skipped, dust positions are not worth a liquidation each
	MinValueRatio decimal.Decimal `json:"min_value_ratio"`
}

type candidate struct {
	marketID uint64
	wei      decimal.Decimal
	value    decimal.Decimal
}

// LiquidateDirect liquidates held/owed pairs of the liquid account,
// largest legs first, until the account is collateralized again or no
// pair remains.
func (p *Proxy) LiquidateDirect(ctx context.Context, req *DirectRequest) ([]*core.LiquidationEvent, error) {
	log := logger.FromContext(ctx).WithField("proxy", p.name)

	if err := p.authorize(ctx, req.Solid, req.Caller); err != nil {
		return nil, err
	}

	events := make([]*core.LiquidationEvent, 0, 2)
	for {
		cache, err := p.marketService.BuildCache(ctx, time.Now(), []core.Account{req.Liquid})
		if err != nil {
			return nil, err
		}

		collateralized, err := p.accountService.IsCollateralized(ctx, req.Liquid, cache, true)
		if err != nil {
			return nil, err
		}

		if collateralized {
			break
		}

		held, owed, err := p.selectPair(ctx, req, cache)
		if err != nil {
			return nil, err
		}

		if held == nil || owed == nil {
			if err := solo.RequireCode(
				len(events) > 0,
				core.ErrUnliquidatable,
				fmt.Sprintf("proxy/no-pair account=%s", req.Liquid),
			); err != nil {
				return nil, err
			}
			break
		}

		if err := p.whitelisted(ctx, held.marketID); err != nil {
			return nil, err
		}

		event, err := p.liquidateService.Liquidate(ctx, &core.LiquidationRequest{
			Caller:       req.Caller,
			Solid:        req.Solid,
			Liquid:       req.Liquid,
			HeldMarketID: held.marketID,
			OwedMarketID: owed.marketID,
			Amount:       core.MaxAmount(),
		})
		if err != nil {
			return nil, err
		}

		log.Infoln("direct liquidation", req.Liquid, "held", held.marketID, "owed", owed.marketID)
		events = append(events, event)
	}

	return events, nil
}

// selectPair the most valuable held and owed legs above the ratio
// cutoff, preferred markets winning over value
func (p *Proxy) selectPair(ctx context.Context, req *DirectRequest, cache *core.MarketCache) (held, owed *candidate, err error) {
	balances, err := p.accountStore.FindBalances(ctx, req.Liquid)
	if err != nil {
		return nil, nil, err
	}

	var helds, oweds []candidate
	heldTotal, owedTotal := decimal.Zero, decimal.Zero

	for _, b := range balances {
		if b.Principal.IsZero() {
			continue
		}

		market, err := cache.Get(b.MarketID)
		if err != nil {
			return nil, nil, err
		}

		wei := solo.ParToWei(b.Principal, market.Index())
		value := wei.Abs().Mul(market.Price)
		c := candidate{marketID: b.MarketID, wei: wei, value: value}

		if wei.Sign() > 0 {
			helds = append(helds, c)
			heldTotal = heldTotal.Add(value)
		} else {
			oweds = append(oweds, c)
			owedTotal = owedTotal.Add(value)
		}
	}

	helds = filterByRatio(helds, heldTotal, req.MinValueRatio)
	oweds = filterByRatio(oweds, owedTotal, req.MinValueRatio)

	orderCandidates(helds, req.PreferredHeldMarketIDs)
	orderCandidates(oweds, req.PreferredOwedMarketIDs)

	if len(helds) == 0 || len(oweds) == 0 {
		return nil, nil, nil
	}

	return &helds[0], &oweds[0], nil
}

func filterByRatio(candidates []candidate, total, minRatio decimal.Decimal) []candidate {
	if !minRatio.IsPositive() || !total.IsPositive() {
		return candidates
	}

	kept := candidates[:0]
	for _, c := range candidates {
		if c.value.Div(total).GreaterThanOrEqual(minRatio) {
			kept = append(kept, c)
		}
	}

	return kept
}

func orderCandidates(candidates []candidate, preferred []uint64) {
	rank := func(id uint64) int {
		for i, p := range preferred {
			if p == id {
				return i
			}
		}
		return len(preferred)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		ri, rj := rank(candidates[i].marketID), rank(candidates[j].marketID)
		if ri != rj {
			return ri < rj
		}
		return candidates[i].value.GreaterThan(candidates[j].value)
	})
}
