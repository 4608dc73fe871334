package account

import (
	"context"

	"solo/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type accountStore struct {
	db *db.DB
}

// New new account store
func New(db *db.DB) core.IAccountStore {
	return &accountStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Balance{})
		if err := tx.AutoMigrate(core.Balance{}).Error; err != nil {
			return err
		}

		if err := db.Update().Model(core.AccountState{}).AutoMigrate(core.AccountState{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *accountStore) FindBalance(ctx context.Context, account core.Account, marketID uint64) (*core.Balance, error) {
	var balance core.Balance
	err := s.db.View().
		Where("owner=? and account_number=? and market_id=?", account.Owner, account.Number, marketID).
		First(&balance).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			// implicit zero balance, created on first write
			return &core.Balance{
				Owner:         account.Owner,
				AccountNumber: account.Number,
				MarketID:      marketID,
			}, nil
		}
		return nil, err
	}

	return &balance, nil
}

func (s *accountStore) FindBalances(ctx context.Context, account core.Account) ([]*core.Balance, error) {
	var balances []*core.Balance
	err := s.db.View().
		Where("owner=? and account_number=?", account.Owner, account.Number).
		Find(&balances).Error
	if err != nil {
		return nil, err
	}

	return balances, nil
}

func (s *accountStore) MarketIDsWithBalances(ctx context.Context, accounts ...core.Account) ([]uint64, error) {
	ids := make([]uint64, 0, 8)
	seen := make(map[uint64]bool)

	for _, account := range accounts {
		balances, err := s.FindBalances(ctx, account)
		if err != nil {
			return nil, err
		}

		for _, b := range balances {
			if b.Principal.IsZero() || seen[b.MarketID] {
				continue
			}
			seen[b.MarketID] = true
			ids = append(ids, b.MarketID)
		}
	}

	return ids, nil
}

func (s *accountStore) SaveBalance(ctx context.Context, tx *db.DB, balance *core.Balance) error {
	if balance.ID == 0 {
		err := tx.Update().
			Where("owner=? and account_number=? and market_id=?", balance.Owner, balance.AccountNumber, balance.MarketID).
			FirstOrCreate(balance).Error
		if err != nil {
			return err
		}
	}

	version := balance.Version
	balance.Version++

	return tx.Update().Model(core.Balance{}).
		Where("id=? and version=?", balance.ID, version).
		Updates(balanceColumns(balance)).Error
}

// gorm skips zero valued struct fields on Updates; the mutable
// columns are named explicitly so writes back to zero persist
func balanceColumns(balance *core.Balance) map[string]interface{} {
	return map[string]interface{}{
		"principal": balance.Principal,
		"version":   balance.Version,
	}
}

func (s *accountStore) FindState(ctx context.Context, account core.Account) (*core.AccountState, error) {
	var state core.AccountState
	err := s.db.View().
		Where("owner=? and account_number=?", account.Owner, account.Number).
		First(&state).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.AccountState{
				Owner:         account.Owner,
				AccountNumber: account.Number,
				Status:        core.AccountStatusNormal,
			}, nil
		}
		return nil, err
	}

	return &state, nil
}

func (s *accountStore) SaveState(ctx context.Context, tx *db.DB, state *core.AccountState) error {
	if state.ID == 0 {
		err := tx.Update().
			Where("owner=? and account_number=?", state.Owner, state.AccountNumber).
			FirstOrCreate(state).Error
		if err != nil {
			return err
		}
	}

	version := state.Version
	state.Version++

	return tx.Update().Model(core.AccountState{}).
		Where("id=? and version=?", state.ID, version).
		Updates(stateColumns(state)).Error
}

// the drop back to Normal writes status zero and must not be skipped
func stateColumns(state *core.AccountState) map[string]interface{} {
	return map[string]interface{}{
		"status":  state.Status,
		"version": state.Version,
	}
}

func (s *accountStore) AccountsWithBorrows(ctx context.Context) ([]core.Account, error) {
	var balances []*core.Balance
	err := s.db.View().
		Where("principal < 0").
		Find(&balances).Error
	if err != nil {
		return nil, err
	}

	accounts := make([]core.Account, 0, len(balances))
	seen := make(map[core.Account]bool)
	for _, b := range balances {
		account := b.Account()
		if seen[account] {
			continue
		}
		seen[account] = true
		accounts = append(accounts, account)
	}

	return accounts, nil
}
