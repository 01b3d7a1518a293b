package config

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	tokenTelegramENV  = "TELEGRAM_TOKEN"
	databaseDSN       = "DATABASE_DSN"
	feedSeedENV       = "FEED_SEED"
)

// Config ...
type Config struct {
	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`
	DB string `yaml:"db_dsn"`

	Jaeger struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"jaeger"`

	Session struct {
		// Порядок инструментов фиксирован: кто раньше в списке,
		// тот первым претендует на свободный кеш в тике.
		Instruments    []string `yaml:"instruments"`
		Ticks          int      `yaml:"ticks"`
		SMAWindow      int      `yaml:"sma_window"`
		Slippage       float64  `yaml:"slippage"`
		InitialBalance float64  `yaml:"initial_balance"`

		// sell only once the price clears cost basis by this factor, e.g. 1.01 => +1%
		ExitMargin float64 `yaml:"exit_margin"`
		// forecast-drop liquidation when price < SMA * this factor, e.g. 0.97
		ForecastDrop float64 `yaml:"forecast_drop"`
		// exercise/forecast checks run every N ticks (2 => every 10 simulated minutes)
		ExerciseEvery int `yaml:"exercise_every"`
	} `yaml:"session"`

	Options struct {
		Maturity      float64 `yaml:"maturity"`        // years, fixed at issue
		RiskFreeRate  float64 `yaml:"risk_free_rate"`
		Volatility    float64 `yaml:"volatility"`
		CallStrikePct float64 `yaml:"call_strike_pct"` // 1.05 => OTM call
		PutStrikePct  float64 `yaml:"put_strike_pct"`  // 0.95 => OTM put
	} `yaml:"options"`

	Feed struct {
		Mode  string `yaml:"mode"` // random | ws
		Seed  int64  `yaml:"seed"`
		WSURL string `yaml:"ws_url"`
	} `yaml:"feed"`
}

// Default carries the reference session constants; yaml/env override them.
func Default() *Config {
	config := &Config{}

	config.Session.Instruments = []string{"AAPL", "GOOGL", "AMZN", "MSFT", "TSLA"}
	config.Session.Ticks = intFromEnv("SESSION_TICKS", 72)
	config.Session.SMAWindow = 10
	config.Session.Slippage = 0.01
	config.Session.InitialBalance = floatFromEnv("INITIAL_BALANCE", 100000.0)
	config.Session.ExitMargin = 1.01
	config.Session.ForecastDrop = 0.97
	config.Session.ExerciseEvery = 2

	config.Options.Maturity = 0.1
	config.Options.RiskFreeRate = 0.01
	config.Options.Volatility = 0.2
	config.Options.CallStrikePct = 1.05
	config.Options.PutStrikePct = 0.95

	config.Feed.Mode = getenvDefault("FEED_MODE", "random")
	config.Feed.Seed = int64FromEnv(feedSeedENV, 1)

	return config
}

func NewConfig() (*Config, error) {
	config := Default()

	configFileName := os.Getenv(configFilePathENV)
	if configFileName == "" {
		configFileName = "values_local.yaml"
	}
	file, err := os.Open("configs/" + configFileName)
	if err == nil {
		defer func() {
			_ = file.Close()
		}()
		decoder := yaml.NewDecoder(file)
		if err = decoder.Decode(config); err != nil {
			return nil, errors.Wrap(err, "decode config file")
		}
	}

	token := os.Getenv(tokenTelegramENV)
	if token != "" {
		config.Telegram.Token = token
	}

	dsn := os.Getenv(databaseDSN)
	if dsn != "" {
		config.DB = dsn
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	if len(c.Session.Instruments) == 0 {
		return errors.New("config: instruments list is empty")
	}
	if c.Session.Ticks <= 0 {
		return errors.New("config: ticks must be positive")
	}
	if c.Session.SMAWindow <= 0 {
		return errors.New("config: sma_window must be positive")
	}
	if c.Session.Slippage < 0 || c.Session.Slippage >= 1 {
		return errors.New("config: slippage must be in [0, 1)")
	}
	if c.Session.InitialBalance < 0 {
		return errors.New("config: initial_balance must be non-negative")
	}
	if c.Session.ExerciseEvery <= 0 {
		return errors.New("config: exercise_every must be positive")
	}
	if c.Options.Volatility < 0 {
		return errors.New("config: volatility must be non-negative")
	}
	if c.Feed.Mode == "ws" && c.Feed.WSURL == "" {
		return errors.New("config: ws feed requires ws_url")
	}
	return nil
}

func intFromEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func int64FromEnv(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func floatFromEnv(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
