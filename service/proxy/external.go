package proxy

import (
	"context"

	"solo/core"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

// ExternalRequest liquidation followed by selling the recovered
// collateral through an external liquidity source, all or nothing
type ExternalRequest struct {
	Caller       string       `json:"caller"`
	Solid        core.Account `json:"solid"`
	Liquid       core.Account `json:"liquid"`
	HeldMarketID uint64       `json:"held_market_id"`
	OwedMarketID uint64       `json:"owed_market_id"`
	Amount       core.Amount  `json:"amount"`
	// the sale must return at least this much of the owed token
	MinOutputAmount decimal.Decimal `json:"min_output_amount"`
	OrderData       []byte          `json:"order_data,omitempty"`
}

// LiquidateWithExternalLiquidity liquidates and immediately sells the
// seized collateral back into the owed token. The trade runs inside
// the engine's transaction, so a failed or underfilled sale rolls the
// liquidation back as well.
func (p *Proxy) LiquidateWithExternalLiquidity(ctx context.Context, req *ExternalRequest) (*core.LiquidationEvent, error) {
	log := logger.FromContext(ctx).WithField("proxy", p.name)

	if err := p.authorize(ctx, req.Solid, req.Caller); err != nil {
		return nil, err
	}
	if err := p.whitelisted(ctx, req.HeldMarketID); err != nil {
		return nil, err
	}

	trader, err := p.trader(core.TraderTypeExternalLiquidity)
	if err != nil {
		return nil, err
	}

	event, err := p.liquidateService.Liquidate(ctx, &core.LiquidationRequest{
		Caller:       req.Caller,
		Solid:        req.Solid,
		Liquid:       req.Liquid,
		HeldMarketID: req.HeldMarketID,
		OwedMarketID: req.OwedMarketID,
		Amount:       req.Amount,
		Trades: []core.TradeStep{
			{
				Trader:          trader,
				OutputMarketID:  req.OwedMarketID,
				MinOutputAmount: req.MinOutputAmount,
				Data:            req.OrderData,
			},
		},
	})
	if err != nil {
		return nil, err
	}

	log.Infoln("external liquidity liquidation", req.Liquid, "held", event.HeldWei, "owed", event.OwedWei)
	return event, nil
}
