package event

import (
	"context"

	"solo/core"

	"github.com/fox-one/pkg/store/db"
)

type eventStore struct {
	db *db.DB
}

// New new event store
func New(db *db.DB) core.IEventStore {
	return &eventStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		if err := db.Update().Model(core.LiquidationEvent{}).AutoMigrate(core.LiquidationEvent{}).Error; err != nil {
			return err
		}

		if err := db.Update().Model(core.VaporizationEvent{}).AutoMigrate(core.VaporizationEvent{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *eventStore) CreateLiquidation(ctx context.Context, tx *db.DB, event *core.LiquidationEvent) error {
	return tx.Update().Create(event).Error
}

func (s *eventStore) CreateVaporization(ctx context.Context, tx *db.DB, event *core.VaporizationEvent) error {
	return tx.Update().Create(event).Error
}

func (s *eventStore) ListLiquidations(ctx context.Context, account core.Account, limit int) ([]*core.LiquidationEvent, error) {
	var events []*core.LiquidationEvent
	err := s.db.View().
		Where("liquid_owner=? and liquid_number=?", account.Owner, account.Number).
		Order("id desc").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	return events, nil
}
