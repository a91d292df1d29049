package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Configs struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`

	Database   DatabaseConfigs   `toml:"database"`
	ApiServer  APIServerConfigs  `toml:"api_server"`
	Auth       AuthConfigs       `toml:"auth"`
	Redis      RedisConfigs      `toml:"redis"`
	Kafka      KafkaConfigs      `toml:"kafka"`
	Commission CommissionConfigs `toml:"commission"`
	Withdrawal WithdrawalConfigs `toml:"withdrawal"`
	SnowFlake  SnowFlakeConfigs  `toml:"snowflake"`
}

type DatabaseConfigs struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	LogLevel string `toml:"log_level"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
	Cert string `toml:"cert"`
	Key  string `toml:"key"`
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type APIServerConfigs struct {
	ServerConfigs

	AllowedOrigins []string `toml:"allowed_origins"`
	MaxLimit       int      `toml:"max_limit"`
	DefaultLimit   int      `toml:"default_limit"`
}

type AuthConfigs struct {
	TokenSecret string       `toml:"token_secret"`
	AccessToken TokenConfigs `toml:"access_token"`
}

type TokenConfigs struct {
	Name       string        `toml:"name"`
	Expiration time.Duration `toml:"expiration"`
}

type RedisConfigs struct {
	Addr string `toml:"addr"`

	// LockTTL bounds how long a crashed run can keep the daily commission
	// lock.
	LockTTL time.Duration `toml:"lock_ttl"`
}

type KafkaConfigs struct {
	Addr string `toml:"addr"`
}

type CommissionConfigs struct {
	// LevelPercents[i] is the percent of the NFT price owed to the sponsor at
	// level i+1.
	LevelPercents []decimal.Decimal `toml:"level_percents"`

	// ScheduleDays is the number of daily installments of an obligation.
	ScheduleDays int `toml:"schedule_days"`

	// RunAt is the time of day (UTC, "15:04") the cron process triggers the
	// daily run.
	RunAt string `toml:"run_at"`
}

func (c CommissionConfigs) MaxLevel() int {
	return len(c.LevelPercents)
}

type WithdrawalConfigs struct {
	MinAmount  decimal.Decimal `toml:"min_amount"`
	FeePercent decimal.Decimal `toml:"fee_percent"`
}

type SnowFlakeConfigs struct {
	NodeID int64 `toml:"node_id"`
}

func DefaultLevelPercents() []decimal.Decimal {
	return []decimal.Decimal{
		decimal.NewFromInt(10),
		decimal.NewFromInt(5),
		decimal.NewFromInt(3),
		decimal.NewFromInt(2),
		decimal.NewFromInt(1),
		decimal.RequireFromString("0.5"),
		decimal.RequireFromString("0.5"),
		decimal.RequireFromString("0.5"),
		decimal.RequireFromString("0.5"),
		decimal.RequireFromString("0.5"),
	}
}
