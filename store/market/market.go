package market

import (
	"context"

	"solo/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type marketStore struct {
	db *db.DB
}

// New new market store
func New(db *db.DB) core.IMarketStore {
	return &marketStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Market{})
		if err := tx.AutoMigrate(core.Market{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *marketStore) Save(ctx context.Context, tx *db.DB, market *core.Market) error {
	return tx.Update().Create(market).Error
}

func (s *marketStore) Find(ctx context.Context, id uint64) (*core.Market, error) {
	var market core.Market
	if err := s.db.View().Where("id=?", id).First(&market).Error; err != nil {
		// missing market surfaces as a zero ID, callers require on it
		if gorm.IsRecordNotFoundError(err) {
			return &core.Market{}, nil
		}
		return nil, err
	}

	return &market, nil
}

func (s *marketStore) FindBySymbol(ctx context.Context, symbol string) (*core.Market, error) {
	var market core.Market
	if err := s.db.View().Where("symbol=?", symbol).First(&market).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.Market{}, nil
		}
		return nil, err
	}

	return &market, nil
}

func (s *marketStore) All(ctx context.Context) ([]*core.Market, error) {
	var markets []*core.Market
	if err := s.db.View().Find(&markets).Error; err != nil {
		return nil, err
	}
	return markets, nil
}

func (s *marketStore) Update(ctx context.Context, tx *db.DB, market *core.Market) error {
	version := market.Version
	market.Version++

	if err := tx.Update().Model(core.Market{}).Where("id=? and version=?", market.ID, version).Updates(marketColumns(market)).Error; err != nil {
		return err
	}

	return nil
}

// gorm skips zero valued struct fields on Updates; every mutable
// column is named so writes back to zero (rates, caps, totals, the
// isolation flag) persist
func marketColumns(market *core.Market) map[string]interface{} {
	return map[string]interface{}{
		"price":            market.Price,
		"borrow_index":     market.BorrowIndex,
		"supply_index":     market.SupplyIndex,
		"index_updated_at": market.IndexUpdatedAt,
		"borrow_rate":      market.BorrowRate,
		"supply_rate":      market.SupplyRate,
		"margin_premium":   market.MarginPremium,
		"spread_premium":   market.SpreadPremium,
		"isolation_mode":   market.IsolationMode,
		"borrow_cap":       market.BorrowCap,
		"supply_cap":       market.SupplyCap,
		"total_supply_par": market.TotalSupplyPar,
		"total_borrow_par": market.TotalBorrowPar,
		"total_balance":    market.TotalBalance,
		"version":          market.Version,
	}
}
