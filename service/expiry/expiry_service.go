package expiry

import (
	"context"
	"fmt"
	"time"

	"solo/core"
	"solo/pkg/solo"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
)

type expiryService struct {
	db               *db.DB
	system           *core.System
	accountStore     core.IAccountStore
	expiryStore      core.IExpiryStore
	operatorStore    core.IOperatorStore
	marketService    core.IMarketService
	liquidateService core.ILiquidateService
}

// New new expiry service
func New(
	database *db.DB,
	system *core.System,
	accountStore core.IAccountStore,
	expiryStore core.IExpiryStore,
	operatorStore core.IOperatorStore,
	marketService core.IMarketService,
	liquidateService core.ILiquidateService,
) core.IExpiryService {
	return &expiryService{
		db:               database,
		system:           system,
		accountStore:     accountStore,
		expiryStore:      expiryStore,
		operatorStore:    operatorStore,
		marketService:    marketService,
		liquidateService: liquidateService,
	}
}

func (s *expiryService) GetExpiry(ctx context.Context, account core.Account, marketID uint64) (uint32, error) {
	expiry, err := s.expiryStore.Find(ctx, account, marketID)
	if err != nil {
		return 0, err
	}

	return expiry.ExpiresAt, nil
}

// SetExpiry sets or unsets (zero) the expiration of a borrow.
//
// The owner and its operators may set anything; an approved sender is
// additionally held to its minimum time delta, and may only move an
// expiration closer, never further out.
func (s *expiryService) SetExpiry(ctx context.Context, caller string, account core.Account, marketID uint64, expiresAt uint32) error {
	expiry, err := s.expiryStore.Find(ctx, account, marketID)
	if err != nil {
		return err
	}

	authorized, err := s.operatorStore.IsOperator(ctx, account.Owner, caller)
	if err != nil {
		return err
	}

	if !authorized && expiresAt > 0 {
		approval, err := s.expiryStore.FindApprovedSender(ctx, account.Owner, caller)
		if err != nil {
			return err
		}

		if approval != nil {
			minExpiry := uint32(time.Now().Unix()) + approval.MinTimeDelta
			earlier := expiry.ExpiresAt == 0 || expiresAt < expiry.ExpiresAt
			authorized = expiresAt >= minExpiry && earlier
		}
	}

	if err := solo.RequireCode(
		authorized,
		core.ErrUnauthorized,
		fmt.Sprintf("expiry/unauthorized caller=%s account=%s", caller, account),
	); err != nil {
		return err
	}

	if expiresAt > 0 {
		balance, err := s.accountStore.FindBalance(ctx, account, marketID)
		if err != nil {
			return err
		}

		if err := solo.RequireCode(
			balance.Principal.IsNegative(),
			core.ErrInvalidBorrow,
			fmt.Sprintf("expiry/not-borrowed account=%s market=%d", account, marketID),
		); err != nil {
			return err
		}
	}

	expiry.ExpiresAt = expiresAt
	return s.db.Tx(func(tx *db.DB) error {
		return s.expiryStore.Save(ctx, tx, expiry)
	})
}

func (s *expiryService) SpreadAdjustedPrices(cache *core.MarketCache, heldMarketID, owedMarketID uint64, expiresAt uint32) (*core.Prices, error) {
	heldMarket, err := cache.Get(heldMarketID)
	if err != nil {
		return nil, err
	}
	owedMarket, err := cache.Get(owedMarketID)
	if err != nil {
		return nil, err
	}

	spread := solo.SpreadForPair(s.system.BaseSpread, heldMarket, owedMarket)
	ramped := solo.RampedSpread(spread, expiresAt, cache.Time(), s.system.ExpiryRampTime)

	return solo.SpreadAdjustedPrices(heldMarket, owedMarket, ramped), nil
}

// Expire forces an expired borrow closed at the ramped spread.
//
// The request carries the expiration it saw; a mismatch with the
// record means the expiry moved underneath the caller and the closing
// must not proceed at the stale discount.
func (s *expiryService) Expire(ctx context.Context, req *core.ExpireRequest) (*core.LiquidationEvent, error) {
	log := logger.FromContext(ctx).WithField("event", "expire")

	expiry, err := s.expiryStore.Find(ctx, req.Liquid, req.OwedMarketID)
	if err != nil {
		return nil, err
	}

	if err := solo.RequireCode(
		expiry.ExpiresAt > 0 && expiry.ExpiresAt == req.ExpiresAt,
		core.ErrExpiryMismatch,
		fmt.Sprintf("expire/mismatch account=%s market=%d want=%d have=%d",
			req.Liquid, req.OwedMarketID, req.ExpiresAt, expiry.ExpiresAt),
	); err != nil {
		return nil, err
	}

	now := time.Now()
	if err := solo.RequireCode(
		now.Unix() >= int64(expiry.ExpiresAt),
		core.ErrExpiryMismatch,
		fmt.Sprintf("expire/not-expired account=%s market=%d at=%d",
			req.Liquid, req.OwedMarketID, expiry.ExpiresAt),
	); err != nil {
		return nil, err
	}

	cache, err := s.marketService.BuildCache(ctx, now, []core.Account{req.Solid, req.Liquid}, req.HeldMarketID, req.OwedMarketID)
	if err != nil {
		return nil, err
	}

	prices, err := s.SpreadAdjustedPrices(cache, req.HeldMarketID, req.OwedMarketID, expiry.ExpiresAt)
	if err != nil {
		return nil, err
	}

	log.Infoln("expiring", req.Liquid, "market", req.OwedMarketID, "owed price", prices.OwedPrice)

	return s.liquidateService.Liquidate(ctx, &core.LiquidationRequest{
		Caller:       req.Caller,
		Solid:        req.Solid,
		Liquid:       req.Liquid,
		HeldMarketID: req.HeldMarketID,
		OwedMarketID: req.OwedMarketID,
		Amount:       req.Amount,
		Prices:       prices,
		Forced:       true,
		At:           now,
	})
}
