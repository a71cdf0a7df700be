// Package config provides application configuration loaded from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	App      AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
	IdleTimeout  int // seconds
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// AppConfig holds application-level settings, including the approval
// policy knobs that vary between deployments.
type AppConfig struct {
	Dev        bool
	Migrations bool

	// CrossStructureSignup allows employees to register for formations
	// owned by a structure other than their own. Off by default.
	CrossStructureSignup bool
	// PromoteDRHOnApproval grants staff (back-office) access to DRH
	// accounts when their account is approved. On by default.
	PromoteDRHOnApproval bool

	// Bootstrap admin account created by the seed step.
	AdminEmail    string
	AdminUsername string
	AdminPassword string
}

// DSN returns the PostgreSQL connection string in key=value format.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Load reads configuration from environment variables.
// It uses sensible defaults for local development.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getEnvInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "tms"),
			Password: getEnv("DB_PASSWORD", "tms123"),
			DBName:   getEnv("DB_NAME", "tms"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		App: AppConfig{
			Dev:                  getEnvBool("DEV", true),
			Migrations:           getEnvBool("MIGRATIONS", true),
			CrossStructureSignup: getEnvBool("CROSS_STRUCTURE_SIGNUP", false),
			PromoteDRHOnApproval: getEnvBool("PROMOTE_DRH_ON_APPROVAL", true),
			AdminEmail:           getEnv("ADMIN_EMAIL", "admin@tms.local"),
			AdminUsername:        getEnv("ADMIN_USERNAME", "admin"),
			AdminPassword:        getEnv("ADMIN_PASSWORD", ""),
		},
	}
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvBool returns the boolean value of an environment variable or a default.
// Accepts "1", "true", "yes" as true; everything else is false.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "1" || value == "true" || value == "yes"
}
