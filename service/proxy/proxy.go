package proxy

import (
	"context"
	"fmt"

	"solo/core"
	"solo/pkg/solo"
)

// Proxy policy layer in front of the liquidate engine. Picks targets
// and trade routes, enforces proxy level authorization; the engine
// owns the math and the transaction.
type Proxy struct {
	name             string
	system           *core.System
	accountStore     core.IAccountStore
	operatorStore    core.IOperatorStore
	marketService    core.IMarketService
	accountService   core.IAccountService
	liquidateService core.ILiquidateService
	registry         core.ILiquidatorRegistry
	traders          map[core.TraderType]core.Trader
}

// New new liquidation proxy
func New(
	name string,
	system *core.System,
	accountStore core.IAccountStore,
	operatorStore core.IOperatorStore,
	marketService core.IMarketService,
	accountService core.IAccountService,
	liquidateService core.ILiquidateService,
	registry core.ILiquidatorRegistry,
	traders map[core.TraderType]core.Trader,
) *Proxy {
	return &Proxy{
		name:             name,
		system:           system,
		accountStore:     accountStore,
		operatorStore:    operatorStore,
		marketService:    marketService,
		accountService:   accountService,
		liquidateService: liquidateService,
		registry:         registry,
		traders:          traders,
	}
}

// authorize the caller must act for the solid account owner
func (p *Proxy) authorize(ctx context.Context, solid core.Account, caller string) error {
	if p.system.IsGlobalOperator(caller) {
		return nil
	}

	ok, err := p.operatorStore.IsOperator(ctx, solid.Owner, caller)
	if err != nil {
		return err
	}

	return solo.RequireCode(
		ok,
		core.ErrUnauthorized,
		fmt.Sprintf("proxy/unauthorized caller=%s solid=%s", caller, solid),
	)
}

// whitelisted the registry must allow this proxy to liquidate the market
func (p *Proxy) whitelisted(ctx context.Context, marketID uint64) error {
	if p.registry == nil {
		return nil
	}

	ok, err := p.registry.IsWhitelisted(ctx, marketID, p.name)
	if err != nil {
		return err
	}

	return solo.RequireCode(
		ok,
		core.ErrAssetNotWhitelisted,
		fmt.Sprintf("proxy/not-whitelisted market=%d proxy=%s", marketID, p.name),
	)
}

func (p *Proxy) trader(t core.TraderType) (core.Trader, error) {
	trader, ok := p.traders[t]
	if err := solo.RequireCode(
		ok,
		core.ErrUnknown,
		fmt.Sprintf("proxy/no-trader type=%s proxy=%s", t, p.name),
	); err != nil {
		return nil, err
	}

	return trader, nil
}
