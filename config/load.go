package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"
)

const maxCommissionLevel = 10

func DefaultConfigs() Configs {
	return Configs{
		Env:      "local",
		LogLevel: "info",
		Database: DatabaseConfigs{
			Host:     "localhost",
			Port:     "3306",
			Database: "sponsornet",
			User:     "root",
			LogLevel: "error",
		},
		ApiServer: APIServerConfigs{
			ServerConfigs: ServerConfigs{Port: "8080"},
			MaxLimit:      50,
			DefaultLimit:  10,
		},
		Auth: AuthConfigs{
			AccessToken: TokenConfigs{
				Name:       "access_token",
				Expiration: 24 * time.Hour,
			},
		},
		Redis: RedisConfigs{
			LockTTL: 10 * time.Minute,
		},
		Commission: CommissionConfigs{
			LevelPercents: DefaultLevelPercents(),
			ScheduleDays:  365,
			RunAt:         "00:05",
		},
		Withdrawal: WithdrawalConfigs{
			MinAmount:  decimal.NewFromInt(10),
			FeePercent: decimal.NewFromInt(5),
		},
		SnowFlake: SnowFlakeConfigs{NodeID: 1},
	}
}

// Load reads the configs from the TOML file at path, if any, then overrides
// them by environment variables.
func Load(path string) (Configs, error) {
	cfg := DefaultConfigs()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Configs{}, fmt.Errorf("cannot decode config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Configs{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Configs{}, err
	}

	return cfg, nil
}

func (c Configs) Validate() error {
	if c.Auth.TokenSecret == "" {
		return errors.New("auth token secret is required")
	}

	n := len(c.Commission.LevelPercents)
	if n == 0 || n > maxCommissionLevel {
		return fmt.Errorf("commission levels must be between 1 and %d", maxCommissionLevel)
	}

	for i, p := range c.Commission.LevelPercents {
		if p.IsNegative() {
			return fmt.Errorf("commission percent of level %d is negative", i+1)
		}
	}

	if c.Commission.ScheduleDays <= 0 {
		return errors.New("commission schedule days must be positive")
	}

	if _, err := time.Parse("15:04", c.Commission.RunAt); err != nil {
		return fmt.Errorf("invalid commission run_at %q", c.Commission.RunAt)
	}

	if c.Withdrawal.MinAmount.IsNegative() {
		return errors.New("withdrawal min amount is negative")
	}

	if c.Withdrawal.FeePercent.IsNegative() || c.Withdrawal.FeePercent.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		return errors.New("withdrawal fee percent must be in [0, 100)")
	}

	if c.ApiServer.DefaultLimit <= 0 || c.ApiServer.DefaultLimit > c.ApiServer.MaxLimit {
		return errors.New("api default limit must be in (0, max_limit]")
	}

	return nil
}

func applyEnv(cfg *Configs) error {
	strs := map[string]*string{
		"ENV":               &cfg.Env,
		"LOG_LEVEL":         &cfg.LogLevel,
		"DB_HOST":           &cfg.Database.Host,
		"DB_PORT":           &cfg.Database.Port,
		"DB_DATABASE":       &cfg.Database.Database,
		"DB_USER":           &cfg.Database.User,
		"DB_PASSWORD":       &cfg.Database.Password,
		"DB_LOG_LEVEL":      &cfg.Database.LogLevel,
		"API_HOST":          &cfg.ApiServer.Host,
		"API_PORT":          &cfg.ApiServer.Port,
		"API_CERT":          &cfg.ApiServer.Cert,
		"API_KEY":           &cfg.ApiServer.Key,
		"TOKEN_SECRET":      &cfg.Auth.TokenSecret,
		"ACCESS_TOKEN_NAME": &cfg.Auth.AccessToken.Name,
		"REDIS_ADDR":        &cfg.Redis.Addr,
		"KAFKA_ADDR":        &cfg.Kafka.Addr,
		"COMMISSION_RUN_AT": &cfg.Commission.RunAt,
	}
	for key, value := range strs {
		if v, ok := os.LookupEnv(key); ok {
			*value = v
		}
	}

	if v, ok := os.LookupEnv("API_ALLOWED_ORIGINS"); ok {
		cfg.ApiServer.AllowedOrigins = splitList(v)
	}

	durations := map[string]*time.Duration{
		"ACCESS_TOKEN_EXPIRATION": &cfg.Auth.AccessToken.Expiration,
		"REDIS_LOCK_TTL":          &cfg.Redis.LockTTL,
	}
	for key, value := range durations {
		if v, ok := os.LookupEnv(key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", key, err)
			}
			*value = d
		}
	}

	ints := map[string]*int{
		"API_MAX_LIMIT":            &cfg.ApiServer.MaxLimit,
		"API_DEFAULT_LIMIT":        &cfg.ApiServer.DefaultLimit,
		"COMMISSION_SCHEDULE_DAYS": &cfg.Commission.ScheduleDays,
	}
	for key, value := range ints {
		if v, ok := os.LookupEnv(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", key, err)
			}
			*value = n
		}
	}

	if v, ok := os.LookupEnv("SNOWFLAKE_NODE_ID"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid SNOWFLAKE_NODE_ID: %w", err)
		}
		cfg.SnowFlake.NodeID = n
	}

	decimals := map[string]*decimal.Decimal{
		"WITHDRAWAL_MIN_AMOUNT":  &cfg.Withdrawal.MinAmount,
		"WITHDRAWAL_FEE_PERCENT": &cfg.Withdrawal.FeePercent,
	}
	for key, value := range decimals {
		if v, ok := os.LookupEnv(key); ok {
			d, err := decimal.NewFromString(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", key, err)
			}
			*value = d
		}
	}

	if v, ok := os.LookupEnv("COMMISSION_LEVEL_PERCENTS"); ok {
		percents := []decimal.Decimal{}
		for _, s := range splitList(v) {
			d, err := decimal.NewFromString(s)
			if err != nil {
				return fmt.Errorf("invalid COMMISSION_LEVEL_PERCENTS: %w", err)
			}
			percents = append(percents, d)
		}
		cfg.Commission.LevelPercents = percents
	}

	return nil
}

func splitList(s string) []string {
	result := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}

	return result
}
