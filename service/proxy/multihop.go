package proxy

import (
	"context"
	"fmt"

	"solo/core"
	"solo/pkg/solo"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

// TradeHop one requested hop of a multi hop liquidation route
type TradeHop struct {
	TraderType      core.TraderType `json:"trader_type"`
	OutputMarketID  uint64          `json:"output_market_id"`
	MinOutputAmount decimal.Decimal `json:"min_output_amount"`
	Data            []byte          `json:"data,omitempty"`
}

// MultiHopRequest liquidation with the recovered collateral routed
// through an arbitrary trader chain back into the owed token
type MultiHopRequest struct {
	Caller       string       `json:"caller"`
	Solid        core.Account `json:"solid"`
	Liquid       core.Account `json:"liquid"`
	HeldMarketID uint64       `json:"held_market_id"`
	OwedMarketID uint64       `json:"owed_market_id"`
	Amount       core.Amount  `json:"amount"`
	Hops         []TradeHop   `json:"hops"`
}

// LiquidateMultiHop liquidates and routes the seized collateral hop by
// hop; every hop and the liquidation itself share one transaction.
func (p *Proxy) LiquidateMultiHop(ctx context.Context, req *MultiHopRequest) (*core.LiquidationEvent, error) {
	log := logger.FromContext(ctx).WithField("proxy", p.name)

	if err := p.authorize(ctx, req.Solid, req.Caller); err != nil {
		return nil, err
	}
	if err := p.whitelisted(ctx, req.HeldMarketID); err != nil {
		return nil, err
	}

	if err := solo.RequireCode(
		len(req.Hops) > 0,
		core.ErrInvalidAmount,
		fmt.Sprintf("proxy/empty-route account=%s", req.Liquid),
	); err != nil {
		return nil, err
	}

	if err := solo.RequireCode(
		req.Hops[len(req.Hops)-1].OutputMarketID == req.OwedMarketID,
		core.ErrAmountBoundsViolated,
		fmt.Sprintf("proxy/route-end market=%d want=%d",
			req.Hops[len(req.Hops)-1].OutputMarketID, req.OwedMarketID),
	); err != nil {
		return nil, err
	}

	steps := make([]core.TradeStep, 0, len(req.Hops))
	for _, hop := range req.Hops {
		trader, err := p.trader(hop.TraderType)
		if err != nil {
			return nil, err
		}

		steps = append(steps, core.TradeStep{
			Trader:          trader,
			OutputMarketID:  hop.OutputMarketID,
			MinOutputAmount: hop.MinOutputAmount,
			Data:            hop.Data,
		})
	}

	event, err := p.liquidateService.Liquidate(ctx, &core.LiquidationRequest{
		Caller:       req.Caller,
		Solid:        req.Solid,
		Liquid:       req.Liquid,
		HeldMarketID: req.HeldMarketID,
		OwedMarketID: req.OwedMarketID,
		Amount:       req.Amount,
		Trades:       steps,
	})
	if err != nil {
		return nil, err
	}

	log.Infoln("multi hop liquidation", req.Liquid, "hops", len(req.Hops))
	return event, nil
}
