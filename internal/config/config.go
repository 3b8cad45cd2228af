package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
	Payroll    PayrollConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// AttendanceConfig holds the shift rules used to classify attendance records.
type AttendanceConfig struct {
	ShiftStart         string // "HH:MM" local time
	ShiftEnd           string // "HH:MM" local time
	StandardShiftHours float64
	LateGraceMinutes   int
	Timezone           string
}

// PayrollConfig holds the rates used by the payroll calculator.
type PayrollConfig struct {
	StandardMonthlyHours decimal.Decimal
	OvertimeMultiplier   decimal.Decimal
	TaxRate              decimal.Decimal
	SocialSecurityRate   decimal.Decimal
	HealthInsuranceRate  decimal.Decimal
	BatchWorkers         int
}

func Load() (*Config, error) {
	// .env is optional; real deployments configure via the environment.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hrops"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Attendance rules
	shiftHours, err := strconv.ParseFloat(getEnv("STANDARD_SHIFT_HOURS", "8"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid STANDARD_SHIFT_HOURS: %w", err)
	}
	graceMinutes, err := strconv.Atoi(getEnv("LATE_GRACE_MINUTES", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid LATE_GRACE_MINUTES: %w", err)
	}

	config.Attendance = AttendanceConfig{
		ShiftStart:         getEnv("SHIFT_START", "09:00"),
		ShiftEnd:           getEnv("SHIFT_END", "17:00"),
		StandardShiftHours: shiftHours,
		LateGraceMinutes:   graceMinutes,
		Timezone:           getEnv("ATTENDANCE_TIMEZONE", "Asia/Jakarta"),
	}

	// Payroll rates
	monthlyHours, err := getEnvDecimal("STANDARD_MONTHLY_HOURS", "176")
	if err != nil {
		return nil, err
	}
	overtimeMultiplier, err := getEnvDecimal("OVERTIME_MULTIPLIER", "1.5")
	if err != nil {
		return nil, err
	}
	taxRate, err := getEnvDecimal("TAX_RATE", "0.15")
	if err != nil {
		return nil, err
	}
	ssRate, err := getEnvDecimal("SOCIAL_SECURITY_RATE", "0.14")
	if err != nil {
		return nil, err
	}
	hiRate, err := getEnvDecimal("HEALTH_INSURANCE_RATE", "0.05")
	if err != nil {
		return nil, err
	}
	batchWorkers, err := strconv.Atoi(getEnv("PAYROLL_BATCH_WORKERS", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_BATCH_WORKERS: %w", err)
	}

	config.Payroll = PayrollConfig{
		StandardMonthlyHours: monthlyHours,
		OvertimeMultiplier:   overtimeMultiplier,
		TaxRate:              taxRate,
		SocialSecurityRate:   ssRate,
		HealthInsuranceRate:  hiRate,
		BatchWorkers:         batchWorkers,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.Parse("15:04", c.Attendance.ShiftStart); err != nil {
		return fmt.Errorf("SHIFT_START must be HH:MM: %w", err)
	}
	if _, err := time.Parse("15:04", c.Attendance.ShiftEnd); err != nil {
		return fmt.Errorf("SHIFT_END must be HH:MM: %w", err)
	}
	if _, err := time.LoadLocation(c.Attendance.Timezone); err != nil {
		return fmt.Errorf("invalid ATTENDANCE_TIMEZONE: %w", err)
	}
	if c.Attendance.StandardShiftHours <= 0 {
		return fmt.Errorf("STANDARD_SHIFT_HOURS must be positive")
	}
	if !c.Payroll.StandardMonthlyHours.IsPositive() {
		return fmt.Errorf("STANDARD_MONTHLY_HOURS must be positive")
	}
	if c.Payroll.BatchWorkers < 1 {
		return fmt.Errorf("PAYROLL_BATCH_WORKERS must be at least 1")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDecimal(key, fallback string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(getEnv(key, fallback))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}
