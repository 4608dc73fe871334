package liquidate

import (
	"context"
	"fmt"
	"time"

	"solo/core"
	"solo/pkg/solo"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	uuidutil "github.com/fox-one/pkg/uuid"
	"github.com/shopspring/decimal"
)

type liquidateService struct {
	db             *db.DB
	system         *core.System
	guard          *solo.Guard
	marketStore    core.IMarketStore
	accountStore   core.IAccountStore
	expiryStore    core.IExpiryStore
	operatorStore  core.IOperatorStore
	eventStore     core.IEventStore
	marketService  core.IMarketService
	accountService core.IAccountService
	callback       core.ILiquidationCallback
}

// New new liquidate service
func New(
	database *db.DB,
	system *core.System,
	guard *solo.Guard,
	marketStore core.IMarketStore,
	accountStore core.IAccountStore,
	expiryStore core.IExpiryStore,
	operatorStore core.IOperatorStore,
	eventStore core.IEventStore,
	marketService core.IMarketService,
	accountService core.IAccountService,
	callback core.ILiquidationCallback,
) core.ILiquidateService {
	return &liquidateService{
		db:             database,
		system:         system,
		guard:          guard,
		marketStore:    marketStore,
		accountStore:   accountStore,
		expiryStore:    expiryStore,
		operatorStore:  operatorStore,
		eventStore:     eventStore,
		marketService:  marketService,
		accountService: accountService,
		callback:       callback,
	}
}

// authorized the caller acts for the account owner: the owner itself,
// a local operator of the owner, or a global operator
func (s *liquidateService) authorized(ctx context.Context, owner, caller string) (bool, error) {
	if s.system.IsGlobalOperator(caller) {
		return true, nil
	}

	return s.operatorStore.IsOperator(ctx, owner, caller)
}

func (s *liquidateService) Liquidate(ctx context.Context, req *core.LiquidationRequest) (*core.LiquidationEvent, error) {
	ctx, release, err := s.guard.Enter(ctx, "liquidate/reentered")
	if err != nil {
		return nil, err
	}
	defer release()

	var event *core.LiquidationEvent
	if err := s.db.Tx(func(tx *db.DB) error {
		event, err = s.liquidate(ctx, tx, req)
		return err
	}); err != nil {
		return nil, err
	}

	return event, nil
}

// liquidate the liquidation state transition, steps in order:
// authorize, check eligibility, bound by collateral, resolve the
// spread adjusted exchange amounts, notify, apply symmetric balance
// updates, record the event. Everything commits or nothing does.
func (s *liquidateService) liquidate(ctx context.Context, tx *db.DB, req *core.LiquidationRequest) (*core.LiquidationEvent, error) {
	log := logger.FromContext(ctx).WithField("event", "liquidate")

	ok, err := s.authorized(ctx, req.Solid.Owner, req.Caller)
	if err != nil {
		return nil, err
	}

	if err := solo.RequireCode(
		ok,
		core.ErrUnauthorized,
		fmt.Sprintf("liquidate/unauthorized caller=%s solid=%s", req.Caller, req.Solid),
	); err != nil {
		return nil, err
	}

	if err := solo.RequireCode(
		req.HeldMarketID != req.OwedMarketID,
		core.ErrInvalidAmount,
		fmt.Sprintf("liquidate/markets-equal id=%d", req.HeldMarketID),
	); err != nil {
		return nil, err
	}

	at := req.At
	if at.IsZero() {
		at = time.Now()
	}

	cache, err := s.marketService.BuildCache(ctx, at, []core.Account{req.Solid, req.Liquid}, req.HeldMarketID, req.OwedMarketID)
	if err != nil {
		return nil, err
	}

	heldMarket, err := cache.Get(req.HeldMarketID)
	if err != nil {
		return nil, err
	}
	owedMarket, err := cache.Get(req.OwedMarketID)
	if err != nil {
		return nil, err
	}

	// eligibility; the Liquidating status is sticky across calls
	state, err := s.accountStore.FindState(ctx, req.Liquid)
	if err != nil {
		return nil, err
	}

	if !req.Forced && state.Status != core.AccountStatusLiquidating {
		collateralized, err := s.accountService.IsCollateralized(ctx, req.Liquid, cache, true)
		if err != nil {
			return nil, err
		}

		if err := solo.RequireCode(
			!collateralized,
			core.ErrUnliquidatable,
			fmt.Sprintf("liquidate/unliquidatable account=%s", req.Liquid),
		); err != nil {
			return nil, err
		}

		state.Status = core.AccountStatusLiquidating
	}

	heldBalance, err := s.accountStore.FindBalance(ctx, req.Liquid, req.HeldMarketID)
	if err != nil {
		return nil, err
	}
	owedBalance, err := s.accountStore.FindBalance(ctx, req.Liquid, req.OwedMarketID)
	if err != nil {
		return nil, err
	}

	maxHeldWei := solo.ParToWei(heldBalance.Principal, heldMarket.Index())
	if err := solo.RequireCode(
		maxHeldWei.Sign() >= 0,
		core.ErrInvalidCollateral,
		fmt.Sprintf("liquidate/negative-collateral account=%s market=%d", req.Liquid, req.HeldMarketID),
	); err != nil {
		return nil, err
	}

	owedWeiBalance := solo.ParToWei(owedBalance.Principal, owedMarket.Index())
	if err := solo.RequireCode(
		owedWeiBalance.IsNegative(),
		core.ErrInvalidBorrow,
		fmt.Sprintf("liquidate/owed-not-borrowed account=%s market=%d", req.Liquid, req.OwedMarketID),
	); err != nil {
		return nil, err
	}

	prices := req.Prices
	if prices == nil {
		spread := solo.SpreadForPair(s.system.BaseSpread, heldMarket, owedMarket)
		prices = solo.SpreadAdjustedPrices(heldMarket, owedMarket, spread)
	}

	owedWei := solo.ResolveOwedWei(req.Amount, owedWeiBalance)
	if err := solo.RequireCode(
		owedWei.IsPositive(),
		core.ErrInvalidAmount,
		fmt.Sprintf("liquidate/zero-amount account=%s", req.Liquid),
	); err != nil {
		return nil, err
	}

	heldWei, owedWei, clamped := solo.LiquidationAmounts(owedWei, maxHeldWei, prices)
	if clamped {
		log.Infoln("partial liquidation, collateral bound:", heldWei)
	}

	// best effort notification, a misbehaving callback cannot block
	// its own liquidation
	if s.callback != nil {
		if err := s.callback.OnLiquidate(ctx, req.Liquid, req.HeldMarketID, heldWei.Neg(), req.OwedMarketID, owedWei); err != nil {
			log.WithError(err).Infoln("liquidation callback failed, ignored")
		}
	}

	solidHeld, err := s.transfer(ctx, tx, heldBalance, req.Solid, heldMarket, heldWei.Neg())
	if err != nil {
		return nil, err
	}
	solidOwed, err := s.transfer(ctx, tx, owedBalance, req.Solid, owedMarket, owedWei)
	if err != nil {
		return nil, err
	}

	if len(req.Trades) > 0 {
		if err := s.settleTrades(ctx, tx, req, heldWei, solidHeld, solidOwed, heldMarket, owedMarket); err != nil {
			return nil, err
		}
	}

	if err := s.marketStore.Update(ctx, tx, heldMarket); err != nil {
		return nil, err
	}
	if err := s.marketStore.Update(ctx, tx, owedMarket); err != nil {
		return nil, err
	}

	if err := s.settleStatus(ctx, tx, req.Liquid, state, heldBalance, owedBalance); err != nil {
		return nil, err
	}

	if owedBalance.Principal.IsZero() {
		if err := s.clearExpiry(ctx, tx, req.Liquid, req.OwedMarketID); err != nil {
			return nil, err
		}
	}

	event := &core.LiquidationEvent{
		TraceID:      uuidutil.New(),
		SolidOwner:   req.Solid.Owner,
		SolidNumber:  req.Solid.Number,
		LiquidOwner:  req.Liquid.Owner,
		LiquidNumber: req.Liquid.Number,
		HeldMarketID: req.HeldMarketID,
		OwedMarketID: req.OwedMarketID,
		HeldWei:      heldWei,
		OwedWei:      owedWei,
		HeldPrice:    prices.HeldPrice,
		OwedPrice:    prices.OwedPrice,
		CreatedAt:    at,
	}
	if err := s.eventStore.CreateLiquidation(ctx, tx, event); err != nil {
		return nil, err
	}

	log.Infoln("liquidated", req.Liquid, "held", heldWei, "owed", owedWei)
	return event, nil
}

func (s *liquidateService) Vaporize(ctx context.Context, req *core.VaporizationRequest) (*core.VaporizationEvent, error) {
	ctx, release, err := s.guard.Enter(ctx, "vaporize/reentered")
	if err != nil {
		return nil, err
	}
	defer release()

	var event *core.VaporizationEvent
	if err := s.db.Tx(func(tx *db.DB) error {
		event, err = s.vaporize(ctx, tx, req)
		return err
	}); err != nil {
		return nil, err
	}

	return event, nil
}

// vaporize settles a borrow of an account that has no collateral left.
//
// The owed market's own excess is consumed first; whatever debt
// remains is repaid by the solid account, compensated out of the held
// market's excess at the spread adjusted rate.
func (s *liquidateService) vaporize(ctx context.Context, tx *db.DB, req *core.VaporizationRequest) (*core.VaporizationEvent, error) {
	log := logger.FromContext(ctx).WithField("event", "vaporize")

	ok, err := s.authorized(ctx, req.Solid.Owner, req.Caller)
	if err != nil {
		return nil, err
	}

	if err := solo.RequireCode(
		ok,
		core.ErrUnauthorized,
		fmt.Sprintf("vaporize/unauthorized caller=%s solid=%s", req.Caller, req.Solid),
	); err != nil {
		return nil, err
	}

	if err := solo.RequireCode(
		req.HeldMarketID != req.OwedMarketID,
		core.ErrInvalidAmount,
		fmt.Sprintf("vaporize/markets-equal id=%d", req.HeldMarketID),
	); err != nil {
		return nil, err
	}

	at := time.Now()
	cache, err := s.marketService.BuildCache(ctx, at, []core.Account{req.Solid, req.Vapor}, req.HeldMarketID, req.OwedMarketID)
	if err != nil {
		return nil, err
	}

	heldMarket, err := cache.Get(req.HeldMarketID)
	if err != nil {
		return nil, err
	}
	owedMarket, err := cache.Get(req.OwedMarketID)
	if err != nil {
		return nil, err
	}

	state, err := s.accountStore.FindState(ctx, req.Vapor)
	if err != nil {
		return nil, err
	}

	if state.Status != core.AccountStatusVaporizing {
		vaporizable, err := s.accountService.IsVaporizable(ctx, req.Vapor, cache)
		if err != nil {
			return nil, err
		}

		if err := solo.RequireCode(
			vaporizable,
			core.ErrUnvaporizable,
			fmt.Sprintf("vaporize/unvaporizable account=%s", req.Vapor),
		); err != nil {
			return nil, err
		}

		state.Status = core.AccountStatusVaporizing
	}

	owedBalance, err := s.accountStore.FindBalance(ctx, req.Vapor, req.OwedMarketID)
	if err != nil {
		return nil, err
	}

	owedWeiBalance := solo.ParToWei(owedBalance.Principal, owedMarket.Index())
	if err := solo.RequireCode(
		owedWeiBalance.IsNegative(),
		core.ErrInvalidBorrow,
		fmt.Sprintf("vaporize/owed-not-borrowed account=%s market=%d", req.Vapor, req.OwedMarketID),
	); err != nil {
		return nil, err
	}

	owedWei := solo.ResolveOwedWei(req.Amount, owedWeiBalance)
	if err := solo.RequireCode(
		owedWei.IsPositive(),
		core.ErrInvalidAmount,
		fmt.Sprintf("vaporize/zero-amount account=%s", req.Vapor),
	); err != nil {
		return nil, err
	}

	// same token step: the owed market's excess repays the debt
	// directly, no counterparty involved
	sameTokenWei := decimal.Zero
	if excess := s.marketService.ExcessWei(ctx, owedMarket); excess.IsPositive() {
		sameTokenWei = decimal.Min(excess, owedWei)

		oldPar := owedBalance.Principal
		owedBalance.Principal = solo.WeiToPar(owedWeiBalance.Add(sameTokenWei), owedMarket.Index())
		solo.ApplyParDelta(owedMarket, oldPar, owedBalance.Principal)

		if err := s.accountStore.SaveBalance(ctx, tx, owedBalance); err != nil {
			return nil, err
		}

		owedWeiBalance = owedWeiBalance.Add(sameTokenWei)
		log.Infoln("vaporize same token repayment", sameTokenWei)
	}

	remainingWei := owedWei.Sub(sameTokenWei)
	heldWei := decimal.Zero

	if remainingWei.IsPositive() {
		spread := solo.SpreadForPair(s.system.BaseSpread, heldMarket, owedMarket)
		prices := solo.SpreadAdjustedPrices(heldMarket, owedMarket, spread)

		// the held market's excess backs the compensation; the step
		// shrinks when the pool runs short
		heldExcess := s.marketService.ExcessWei(ctx, heldMarket)
		heldWei, remainingWei, _ = solo.LiquidationAmounts(remainingWei, decimal.Max(heldExcess, decimal.Zero), prices)

		if remainingWei.IsPositive() {
			oldPar := owedBalance.Principal
			owedBalance.Principal = solo.WeiToPar(owedWeiBalance.Add(remainingWei), owedMarket.Index())
			parDelta := owedBalance.Principal.Sub(oldPar)
			solo.ApplyParDelta(owedMarket, oldPar, owedBalance.Principal)

			if err := s.accountStore.SaveBalance(ctx, tx, owedBalance); err != nil {
				return nil, err
			}

			// the solid account pays the remaining debt ...
			solidOwed, err := s.accountStore.FindBalance(ctx, req.Solid, req.OwedMarketID)
			if err != nil {
				return nil, err
			}

			oldPar = solidOwed.Principal
			solidOwed.Principal = solidOwed.Principal.Sub(parDelta)
			solo.ApplyParDelta(owedMarket, oldPar, solidOwed.Principal)

			if err := s.accountStore.SaveBalance(ctx, tx, solidOwed); err != nil {
				return nil, err
			}

			// ... and is made whole from the held market's excess
			solidHeld, err := s.accountStore.FindBalance(ctx, req.Solid, req.HeldMarketID)
			if err != nil {
				return nil, err
			}

			oldPar = solidHeld.Principal
			solidHeldWei := solo.ParToWei(solidHeld.Principal, heldMarket.Index())
			solidHeld.Principal = solo.WeiToPar(solidHeldWei.Add(heldWei), heldMarket.Index())
			solo.ApplyParDelta(heldMarket, oldPar, solidHeld.Principal)

			if err := s.accountStore.SaveBalance(ctx, tx, solidHeld); err != nil {
				return nil, err
			}
		}
	}

	if err := s.marketStore.Update(ctx, tx, heldMarket); err != nil {
		return nil, err
	}
	if err := s.marketStore.Update(ctx, tx, owedMarket); err != nil {
		return nil, err
	}

	if err := s.settleStatus(ctx, tx, req.Vapor, state, owedBalance); err != nil {
		return nil, err
	}

	if owedBalance.Principal.IsZero() {
		if err := s.clearExpiry(ctx, tx, req.Vapor, req.OwedMarketID); err != nil {
			return nil, err
		}
	}

	event := &core.VaporizationEvent{
		TraceID:        uuidutil.New(),
		SolidOwner:     req.Solid.Owner,
		SolidNumber:    req.Solid.Number,
		VaporOwner:     req.Vapor.Owner,
		VaporNumber:    req.Vapor.Number,
		HeldMarketID:   req.HeldMarketID,
		OwedMarketID:   req.OwedMarketID,
		SameTokenWei:   sameTokenWei,
		HeldWei:        heldWei,
		OwedWei:        remainingWei,
		ExcessConsumed: heldWei,
		CreatedAt:      at,
	}
	if err := s.eventStore.CreateVaporization(ctx, tx, event); err != nil {
		return nil, err
	}

	log.Infoln("vaporized", req.Vapor, "same token", sameTokenWei, "held", heldWei, "owed", remainingWei)
	return event, nil
}

// settleTrades sells recovered collateral through the request's trade
// chain: the first hop spends held tokens, the last hop must land in
// the owed market, and the final output is credited to the solid
// account. Token flows through traders move tokens in and out of the
// protocol, so both markets' total balances shift with them.
func (s *liquidateService) settleTrades(ctx context.Context, tx *db.DB, req *core.LiquidationRequest, heldWei decimal.Decimal, solidHeld, solidOwed *core.Balance, heldMarket, owedMarket *core.Market) error {
	log := logger.FromContext(ctx).WithField("event", "liquidate")

	input := heldWei
	inputMarketID := req.HeldMarketID
	sold := decimal.Zero

	for i, step := range req.Trades {
		result, err := step.Trader.Trade(ctx, &core.TradeRequest{
			InputMarketID:   inputMarketID,
			OutputMarketID:  step.OutputMarketID,
			InputAmount:     input,
			MinOutputAmount: step.MinOutputAmount,
			Data:            step.Data,
		})
		if err != nil {
			return err
		}

		// trader output is never trusted, validate against the bounds
		ok := result.InputAmount.IsPositive() &&
			!result.InputAmount.GreaterThan(input) &&
			result.OutputAmount.GreaterThanOrEqual(step.MinOutputAmount)
		if err := solo.RequireCode(
			ok,
			core.ErrAmountBoundsViolated,
			fmt.Sprintf("liquidate/trade-bounds hop=%d type=%s in=%s out=%s min=%s",
				i, step.Trader.Type(), result.InputAmount, result.OutputAmount, step.MinOutputAmount),
		); err != nil {
			return err
		}

		if i == 0 {
			sold = result.InputAmount
		}

		input = result.OutputAmount
		inputMarketID = step.OutputMarketID
		log.Infoln("trade hop", i, step.Trader.Type(), "output", input)
	}

	if err := solo.RequireCode(
		inputMarketID == req.OwedMarketID,
		core.ErrAmountBoundsViolated,
		fmt.Sprintf("liquidate/trade-path-end market=%d want=%d", inputMarketID, req.OwedMarketID),
	); err != nil {
		return err
	}

	if err := s.adjust(ctx, tx, solidHeld, heldMarket, sold.Neg()); err != nil {
		return err
	}
	heldMarket.TotalBalance = heldMarket.TotalBalance.Sub(sold)

	if err := s.adjust(ctx, tx, solidOwed, owedMarket, input); err != nil {
		return err
	}
	owedMarket.TotalBalance = owedMarket.TotalBalance.Add(input)

	return nil
}

// adjust applies a wei delta to a balance already loaded in this
// transaction, keeping the market totals in step
func (s *liquidateService) adjust(ctx context.Context, tx *db.DB, balance *core.Balance, market *core.Market, weiDelta decimal.Decimal) error {
	index := market.Index()

	wei := solo.ParToWei(balance.Principal, index)
	oldPar := balance.Principal
	balance.Principal = solo.WeiToPar(wei.Add(weiDelta), index)
	solo.ApplyParDelta(market, oldPar, balance.Principal)

	return s.accountStore.SaveBalance(ctx, tx, balance)
}

// transfer moves weiDelta on the liquid side balance and mirrors the
// exact opposite par delta on the solid account, so the two legs
// conserve principal. Returns the solid side row so later settlement
// steps reuse it instead of rereading outside the transaction.
func (s *liquidateService) transfer(ctx context.Context, tx *db.DB, from *core.Balance, to core.Account, market *core.Market, weiDelta decimal.Decimal) (*core.Balance, error) {
	index := market.Index()

	fromWei := solo.ParToWei(from.Principal, index)
	oldPar := from.Principal
	from.Principal = solo.WeiToPar(fromWei.Add(weiDelta), index)
	parDelta := from.Principal.Sub(oldPar)
	solo.ApplyParDelta(market, oldPar, from.Principal)

	if err := s.accountStore.SaveBalance(ctx, tx, from); err != nil {
		return nil, err
	}

	mirror, err := s.accountStore.FindBalance(ctx, to, market.ID)
	if err != nil {
		return nil, err
	}

	oldPar = mirror.Principal
	mirror.Principal = mirror.Principal.Sub(parDelta)
	solo.ApplyParDelta(market, oldPar, mirror.Principal)

	if err := s.accountStore.SaveBalance(ctx, tx, mirror); err != nil {
		return nil, err
	}

	return mirror, nil
}

// settleStatus drops the account back to Normal once no borrow
// remains, otherwise keeps the sticky status. Store reads cannot see
// this transaction's writes yet, so rows updated in this call are
// passed in and take precedence over their stored versions.
func (s *liquidateService) settleStatus(ctx context.Context, tx *db.DB, account core.Account, state *core.AccountState, updated ...*core.Balance) error {
	balances, err := s.accountStore.FindBalances(ctx, account)
	if err != nil {
		return err
	}

	principals := make(map[uint64]decimal.Decimal, len(balances))
	for _, b := range balances {
		principals[b.MarketID] = b.Principal
	}
	for _, b := range updated {
		principals[b.MarketID] = b.Principal
	}

	remaining := false
	for _, principal := range principals {
		if principal.IsNegative() {
			remaining = true
			break
		}
	}

	if !remaining {
		state.Status = core.AccountStatusNormal
	}

	return s.accountStore.SaveState(ctx, tx, state)
}

func (s *liquidateService) clearExpiry(ctx context.Context, tx *db.DB, account core.Account, marketID uint64) error {
	expiry, err := s.expiryStore.Find(ctx, account, marketID)
	if err != nil {
		return err
	}

	if expiry.ExpiresAt == 0 {
		return nil
	}

	expiry.ExpiresAt = 0
	return s.expiryStore.Save(ctx, tx, expiry)
}
