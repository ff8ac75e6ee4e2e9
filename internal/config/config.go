package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	"fundpool/internal/loancalc"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	// InterestModel prices new loans; existing loans keep the model they
	// were created with.
	InterestModel loancalc.Model
	// GracePeriodDays after a scheduled date before an installment is
	// considered overdue.
	GracePeriodDays int
	// DefaultOverdueThreshold is how many simultaneously overdue
	// installments flip a loan to DEFAULTED.
	DefaultOverdueThreshold int
	// LateFeeDailyRatePercent charged on the overdue amount per day past
	// grace (0.05 means 0.05%/day).
	LateFeeDailyRatePercent decimal.Decimal
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func Load() *Config {
	c := &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "fundpool"),
		MySQLUser: getenv("MYSQL_USER", "fundpool"),
		MySQLPass: getenv("MYSQL_PASS", "fundpool"),

		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:      getenvInt("REDIS_DB", 0),
		IdempTTLSecs: getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),

		InterestModel:           loancalc.ModelAmortizing,
		GracePeriodDays:         getenvInt("GRACE_PERIOD_DAYS", 5),
		DefaultOverdueThreshold: getenvInt("DEFAULT_OVERDUE_THRESHOLD", 3),
		LateFeeDailyRatePercent: decimal.RequireFromString("0.05"),
	}
	if v := os.Getenv("INTEREST_MODEL"); v != "" {
		if m, err := loancalc.ParseModel(v); err == nil {
			c.InterestModel = m
		}
	}
	if v := os.Getenv("LATE_FEE_DAILY_RATE"); v != "" {
		if r, err := decimal.NewFromString(v); err == nil && !r.IsNegative() {
			c.LateFeeDailyRatePercent = r
		}
	}
	return c
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.GracePeriodDays < 0 {
		return errors.New("GRACE_PERIOD_DAYS must be >= 0")
	}
	if c.DefaultOverdueThreshold < 1 {
		return errors.New("DEFAULT_OVERDUE_THRESHOLD must be >= 1")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
