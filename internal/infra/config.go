package infra

import (
	"fmt"
	"os"

	"auction_go/internal/domain"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultRefreshIntervalSec matches the auction module's block cadence
	// closely enough for "several seconds stale" freshness.
	DefaultRefreshIntervalSec = 6

	// DefaultEvaluateIntervalSec is the order evaluation cadence.
	DefaultEvaluateIntervalSec = 5

	// DefaultBidBuffer is the dispatch channel capacity.
	DefaultBidBuffer = 64
)

// Config holds every application setting. Sensitive or deployment-specific
// values can be overridden through environment variables after loading.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Chain struct {
		LCDURL             string `yaml:"lcd_url"`
		RefreshIntervalSec int    `yaml:"refresh_interval_sec"`
	} `yaml:"chain"`

	Engine struct {
		EvaluateIntervalSec int `yaml:"evaluate_interval_sec"`
		BidBuffer           int `yaml:"bid_buffer"`
	} `yaml:"engine"`

	PriceFeed struct {
		WSURL string `yaml:"ws_url"`
		// Products maps exchange product ids to chain denoms,
		// e.g. "SOMM-USD" -> "usomm".
		Products map[string]string `yaml:"products"`
	} `yaml:"price_feed"`

	Orders []OrderConfig `yaml:"orders"`

	Storage struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"storage"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// OrderConfig declares one standing order in the config file.
type OrderConfig struct {
	SaleDenom          string `yaml:"sale_denom"`
	MaximumUsommIn     uint64 `yaml:"maximum_usomm_in"`
	MinimumUsdValueOut uint64 `yaml:"minimum_usd_value_out"`
	FeeToken           string `yaml:"fee_token"`
}

// LoadConfig reads and parses the config file, applies environment
// overrides and defaults, then validates.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrConfigNotFound, path)
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	overrideWithEnv(&cfg)
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overwrites settings when environment variables are present.
func overrideWithEnv(cfg *Config) {
	if url := os.Getenv("AUCTION_LCD_URL"); url != "" {
		cfg.Chain.LCDURL = url
	}
	if url := os.Getenv("AUCTION_PRICE_FEED_WS_URL"); url != "" {
		cfg.PriceFeed.WSURL = url
	}
	if path := os.Getenv("AUCTION_STORAGE_PATH"); path != "" {
		cfg.Storage.Path = path
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Chain.RefreshIntervalSec == 0 {
		cfg.Chain.RefreshIntervalSec = DefaultRefreshIntervalSec
	}
	if cfg.Engine.EvaluateIntervalSec == 0 {
		cfg.Engine.EvaluateIntervalSec = DefaultEvaluateIntervalSec
	}
	if cfg.Engine.BidBuffer == 0 {
		cfg.Engine.BidBuffer = DefaultBidBuffer
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	for i := range cfg.Orders {
		if cfg.Orders[i].FeeToken == "" {
			cfg.Orders[i].FeeToken = domain.DenomUsomm.String()
		}
	}
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	if c.Chain.LCDURL == "" || (!hasPrefix(c.Chain.LCDURL, "http://") && !hasPrefix(c.Chain.LCDURL, "https://")) {
		return &domain.ConfigError{Field: "chain.lcd_url", Err: fmt.Errorf("invalid URL: %q", c.Chain.LCDURL)}
	}
	if c.Chain.RefreshIntervalSec <= 0 {
		return &domain.ConfigError{Field: "chain.refresh_interval_sec", Err: fmt.Errorf("must be positive")}
	}
	if c.Engine.EvaluateIntervalSec <= 0 {
		return &domain.ConfigError{Field: "engine.evaluate_interval_sec", Err: fmt.Errorf("must be positive")}
	}

	if len(c.PriceFeed.Products) > 0 {
		if !hasPrefix(c.PriceFeed.WSURL, "ws://") && !hasPrefix(c.PriceFeed.WSURL, "wss://") {
			return &domain.ConfigError{Field: "price_feed.ws_url", Err: fmt.Errorf("invalid URL: %q", c.PriceFeed.WSURL)}
		}
		for product, denom := range c.PriceFeed.Products {
			if _, err := domain.NewDenom(denom); err != nil {
				return &domain.ConfigError{Field: "price_feed.products." + product, Err: err}
			}
		}
	}

	for i, order := range c.Orders {
		if _, err := domain.NewDenom(order.SaleDenom); err != nil {
			return &domain.ConfigError{Field: fmt.Sprintf("orders[%d].sale_denom", i), Err: err}
		}
		if _, err := domain.NewDenom(order.FeeToken); err != nil {
			return &domain.ConfigError{Field: fmt.Sprintf("orders[%d].fee_token", i), Err: err}
		}
		if order.MaximumUsommIn == 0 {
			return &domain.ConfigError{Field: fmt.Sprintf("orders[%d].maximum_usomm_in", i), Err: fmt.Errorf("must be positive")}
		}
	}

	return nil
}

// OrderBook converts the declared orders into an order book keyed by sale
// denom. Validate has already checked the denoms.
func (c *Config) OrderBook() (domain.OrderBook, error) {
	book := make(domain.OrderBook, len(c.Orders))
	for _, oc := range c.Orders {
		saleDenom, err := domain.NewDenom(oc.SaleDenom)
		if err != nil {
			return nil, err
		}
		feeToken, err := domain.NewDenom(oc.FeeToken)
		if err != nil {
			return nil, err
		}
		book[saleDenom] = append(book[saleDenom], domain.Order{
			SaleDenom:          saleDenom,
			MaximumUsommIn:     oc.MaximumUsommIn,
			MinimumUsdValueOut: oc.MinimumUsdValueOut,
			FeeToken:           feeToken,
		})
	}
	return book, nil
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[0:len(prefix)] == prefix
}
