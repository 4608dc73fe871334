package config

import (
	"fmt"

	"solo/core"
	"solo/pkg/solo"

	"github.com/asaskevich/govalidator"
	configUtil "github.com/fox-one/pkg/config"
	"github.com/shopspring/decimal"
)

// Load load config file and validate it
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("SOLO")
	if err := configUtil.LoadYaml(configFile, config); err != nil {
		return err
	}

	defaults(config)
	return validate(config)
}

func defaults(config *core.Config) {
	if config.App.Location == "" {
		config.App.Location = "UTC"
	}

	if config.App.Port == 0 {
		config.App.Port = 9000
	}

	if config.Engine.MinBorrowedValue.IsZero() {
		config.Engine.MinBorrowedValue = decimal.New(5, 0)
	}

	if config.Engine.ExpiryRampTime == 0 {
		config.Engine.ExpiryRampTime = 3600
	}
}

func validate(config *core.Config) error {
	if config.PriceOracle.EndPoint != "" && !govalidator.IsURL(config.PriceOracle.EndPoint) {
		return fmt.Errorf("config: invalid price oracle endpoint %q", config.PriceOracle.EndPoint)
	}

	if config.Engine.MarginRatio.IsNegative() || config.Engine.MarginRatio.GreaterThan(solo.MarginRatioMax) {
		return fmt.Errorf("config: margin ratio %s out of range", config.Engine.MarginRatio)
	}

	if config.Engine.BaseSpread.IsNegative() || config.Engine.BaseSpread.GreaterThan(solo.SpreadMax) {
		return fmt.Errorf("config: base spread %s out of range", config.Engine.BaseSpread)
	}

	return nil
}
