package operator

import (
	"context"

	"solo/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type operatorStore struct {
	db *db.DB
}

// New new operator store
func New(db *db.DB) core.IOperatorStore {
	return &operatorStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		return db.Update().Model(core.OperatorPair{}).AutoMigrate(core.OperatorPair{}).Error
	})
}

func (s *operatorStore) Save(ctx context.Context, tx *db.DB, pair *core.OperatorPair) error {
	return tx.Update().
		Where("owner=? and operator=?", pair.Owner, pair.Operator).
		FirstOrCreate(pair).Error
}

func (s *operatorStore) Delete(ctx context.Context, tx *db.DB, owner, operator string) error {
	return tx.Update().
		Where("owner=? and operator=?", owner, operator).
		Delete(core.OperatorPair{}).Error
}

func (s *operatorStore) IsOperator(ctx context.Context, owner, operator string) (bool, error) {
	if owner == operator {
		return true, nil
	}

	var pair core.OperatorPair
	err := s.db.View().
		Where("owner=? and operator=?", owner, operator).
		First(&pair).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return false, nil
		}
		return false, err
	}

	return pair.ID > 0, nil
}
