package expiry

import (
	"context"

	"solo/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type expiryStore struct {
	db *db.DB
}

// New new expiry store
func New(db *db.DB) core.IExpiryStore {
	return &expiryStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		if err := db.Update().Model(core.Expiry{}).AutoMigrate(core.Expiry{}).Error; err != nil {
			return err
		}

		if err := db.Update().Model(core.ApprovedSender{}).AutoMigrate(core.ApprovedSender{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *expiryStore) Find(ctx context.Context, account core.Account, marketID uint64) (*core.Expiry, error) {
	var expiry core.Expiry
	err := s.db.View().
		Where("owner=? and account_number=? and market_id=?", account.Owner, account.Number, marketID).
		First(&expiry).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			// zero means unset
			return &core.Expiry{
				Owner:         account.Owner,
				AccountNumber: account.Number,
				MarketID:      marketID,
			}, nil
		}
		return nil, err
	}

	return &expiry, nil
}

func (s *expiryStore) FindByAccount(ctx context.Context, account core.Account) ([]*core.Expiry, error) {
	var expiries []*core.Expiry
	err := s.db.View().
		Where("owner=? and account_number=? and expires_at > 0", account.Owner, account.Number).
		Find(&expiries).Error
	if err != nil {
		return nil, err
	}

	return expiries, nil
}

func (s *expiryStore) ListDue(ctx context.Context, now uint32, limit int) ([]*core.Expiry, error) {
	var expiries []*core.Expiry
	err := s.db.View().
		Where("expires_at > 0 and expires_at <= ?", now).
		Order("expires_at").
		Limit(limit).
		Find(&expiries).Error
	if err != nil {
		return nil, err
	}

	return expiries, nil
}

func (s *expiryStore) Save(ctx context.Context, tx *db.DB, expiry *core.Expiry) error {
	if expiry.ID == 0 {
		err := tx.Update().
			Where("owner=? and account_number=? and market_id=?", expiry.Owner, expiry.AccountNumber, expiry.MarketID).
			FirstOrCreate(expiry).Error
		if err != nil {
			return err
		}
	}

	version := expiry.Version
	expiry.Version++

	return tx.Update().Model(core.Expiry{}).
		Where("id=? and version=?", expiry.ID, version).
		Updates(expiryColumns(expiry)).Error
}

// gorm skips zero valued struct fields on Updates; clearing an expiry
// writes expires_at zero and must not be skipped
func expiryColumns(expiry *core.Expiry) map[string]interface{} {
	return map[string]interface{}{
		"expires_at": expiry.ExpiresAt,
		"version":    expiry.Version,
	}
}

func (s *expiryStore) FindApprovedSender(ctx context.Context, owner, sender string) (*core.ApprovedSender, error) {
	var approval core.ApprovedSender
	err := s.db.View().
		Where("owner=? and sender=?", owner, sender).
		First(&approval).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}

	return &approval, nil
}

func (s *expiryStore) SaveApprovedSender(ctx context.Context, tx *db.DB, approval *core.ApprovedSender) error {
	return tx.Update().
		Where("owner=? and sender=?", approval.Owner, approval.Sender).
		Assign(core.ApprovedSender{MinTimeDelta: approval.MinTimeDelta}).
		FirstOrCreate(approval).Error
}
