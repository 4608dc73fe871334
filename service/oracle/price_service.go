package oracle

import (
	"context"
	"fmt"
	"time"

	"solo/core"
	"solo/pkg/resthttp"
	"solo/pkg/solo"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

// PriceService price service
type PriceService struct {
	Config *core.Config
}

// New new oracle price service
func New(config *core.Config) core.IPriceOracleService {
	return &PriceService{Config: config}
}

// GetPrice current oracle price of the market, must be positive
func (s *PriceService) GetPrice(ctx context.Context, market *core.Market) (decimal.Decimal, error) {
	if err := solo.RequireCode(
		market.Price.IsPositive(),
		core.ErrInvalidPrice,
		fmt.Sprintf("oracle/invalid-price market=%d", market.ID),
	); err != nil {
		return decimal.Zero, err
	}

	return market.Price, nil
}

// PullPriceTicker pull price ticker
func (s *PriceService) PullPriceTicker(ctx context.Context, symbol string, t time.Time) (*core.PriceTicker, error) {
	url := fmt.Sprintf("%s/api/v2/tickers/%s?ts=%d", s.Config.PriceOracle.EndPoint, symbol, t.UTC().Unix())
	logger.FromContext(ctx).Debugln("pull price:", url)

	resp, err := resthttp.Request(ctx).Get(url)
	if err != nil {
		return nil, err
	}

	var ticker core.PriceTicker
	if err := resthttp.ParseResponse(resp, &ticker); err != nil {
		return nil, err
	}

	if !ticker.Price.IsPositive() {
		return nil, core.ErrInvalidPrice
	}

	return &ticker, nil
}

// PullAllPriceTickers pull all price tickers
func (s *PriceService) PullAllPriceTickers(ctx context.Context, t time.Time) ([]*core.PriceTicker, error) {
	url := fmt.Sprintf("%s/api/tickers?ts=%d", s.Config.PriceOracle.EndPoint, t.UTC().Unix())

	resp, err := resthttp.Request(ctx).Get(url)
	if err != nil {
		return nil, err
	}

	var tickers []*core.PriceTicker
	if err := resthttp.ParseResponse(resp, &tickers); err != nil {
		return nil, err
	}

	return tickers, nil
}
