package cmd

import (
	"time"

	"solo/core"
	"solo/pkg/solo"
	accountservice "solo/service/account"
	expiryservice "solo/service/expiry"
	liquidateservice "solo/service/liquidate"
	marketservice "solo/service/market"
	"solo/service/oracle"
	"solo/service/proxy"
	accountstore "solo/store/account"
	eventstore "solo/store/event"
	expirystore "solo/store/expiry"
	marketstore "solo/store/market"
	operatorstore "solo/store/operator"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
	"github.com/go-redis/redis"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
}

func provideConfig() *core.Config {
	return &cfg
}

func provideSystem() *core.System {
	return &core.System{
		GlobalOperators:  cfg.Engine.GlobalOperators,
		MarginRatio:      cfg.Engine.MarginRatio,
		BaseSpread:       cfg.Engine.BaseSpread,
		ExpiryRampTime:   cfg.Engine.ExpiryRampTime,
		MinBorrowedValue: cfg.Engine.MinBorrowedValue,
		Location:         cfg.App.Location,
		Version:          rootCmd.Version,
	}
}

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

func provideMarketStore(db *db.DB) core.IMarketStore {
	return marketstore.Cache(marketstore.New(db), time.Second)
}

func provideAccountStore(db *db.DB) core.IAccountStore {
	return accountstore.New(db)
}

func provideExpiryStore(db *db.DB) core.IExpiryStore {
	return expirystore.New(db)
}

func provideOperatorStore(db *db.DB) core.IOperatorStore {
	return operatorstore.New(db)
}

func provideEventStore(db *db.DB) core.IEventStore {
	return eventstore.New(db)
}

func providePriceService() core.IPriceOracleService {
	return oracle.New(provideConfig())
}

func provideMarketService(marketStore core.IMarketStore, accountStore core.IAccountStore) core.IMarketService {
	return marketservice.New(marketStore, accountStore)
}

func provideAccountService(system *core.System, accountStore core.IAccountStore, marketService core.IMarketService) core.IAccountService {
	return accountservice.New(system, accountStore, marketService, provideRedis())
}

func provideGuard() *solo.Guard {
	return &solo.Guard{}
}

func provideLiquidateService(
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
) core.ILiquidateService {
	return liquidateservice.New(
		database,
		system,
		guard,
		marketStore,
		accountStore,
		expiryStore,
		operatorStore,
		eventStore,
		marketService,
		accountService,
		nil,
	)
}

func provideExpiryService(
	database *db.DB,
	system *core.System,
	accountStore core.IAccountStore,
	expiryStore core.IExpiryStore,
	operatorStore core.IOperatorStore,
	marketService core.IMarketService,
	liquidateService core.ILiquidateService,
) core.IExpiryService {
	return expiryservice.New(
		database,
		system,
		accountStore,
		expiryStore,
		operatorStore,
		marketService,
		liquidateService,
	)
}

func provideProxy(
	system *core.System,
	accountStore core.IAccountStore,
	operatorStore core.IOperatorStore,
	marketService core.IMarketService,
	accountService core.IAccountService,
	liquidateService core.ILiquidateService,
) *proxy.Proxy {
	return proxy.New(
		"solo-proxy",
		system,
		accountStore,
		operatorStore,
		marketService,
		accountService,
		liquidateService,
		nil,
		nil,
	)
}
