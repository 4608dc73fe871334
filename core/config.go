package core

import (
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Config solo config
type Config struct {
	App         App         `json:"app"`
	DB          db.Config   `json:"db"`
	Redis       Redis       `json:"redis"`
	PriceOracle PriceOracle `json:"price_oracle"`
	Engine      Engine      `json:"engine"`
	Liquidator  Liquidator  `json:"liquidator"`
}

// App app config
type App struct {
	Location string `json:"location"`
	Port     int    `json:"port"`
}

// Redis redis config
type Redis struct {
	Addr string `json:"addr"`
	DB   int    `json:"db"`
}

// PriceOracle price oracle config
type PriceOracle struct {
	EndPoint string `json:"end_point"`
}

// Liquidator liquidator worker config
type Liquidator struct {
	Caller        string          `json:"caller"`
	SolidOwner    string          `json:"solid_owner"`
	SolidNumber   uint64          `json:"solid_number"`
	MinValueRatio decimal.Decimal `json:"min_value_ratio"`
}

// Engine risk parameters
type Engine struct {
	GlobalOperators  []string        `json:"global_operators"`
	MarginRatio      decimal.Decimal `json:"margin_ratio"`
	BaseSpread       decimal.Decimal `json:"base_spread"`
	ExpiryRampTime   int64           `json:"expiry_ramp_time"`
	MinBorrowedValue decimal.Decimal `json:"min_borrowed_value"`
}
