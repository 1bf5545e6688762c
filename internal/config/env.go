package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Env struct {
	AppAddr string
	GinMode string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSeed     bool

	// SeedAdminPassword, when set, seeds an "admin" operator.
	SeedAdminPassword string

	CORSAllowedOrigins []string

	JWTSecret    string
	AuthRequired bool

	// PendingTTL bounds how long a confirmation token stays redeemable.
	PendingTTL           time.Duration
	PendingSweepInterval time.Duration

	// TripsPages lists UI pages that show the trips list (used as a
	// status-query hint by the agent).
	TripsPages []string
}

// LoadEnv reads configuration from environment variables and an optional
// movi.yaml (./ or ./configs). Environment wins over the file.
func LoadEnv() Env {
	v := viper.New()

	v.SetDefault("app_addr", ":8080")
	v.SetDefault("gin_mode", "")
	v.SetDefault("db_host", "127.0.0.1")
	v.SetDefault("db_port", 3306)
	v.SetDefault("db_user", "root")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "movi")
	v.SetDefault("db_seed", false)
	v.SetDefault("seed_admin_password", "")
	v.SetDefault("cors_allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")
	v.SetDefault("jwt_secret", "super-secret-key-change-me")
	v.SetDefault("auth_required", false)
	v.SetDefault("pending_ttl", "10m")
	v.SetDefault("pending_sweep_interval", "1m")
	v.SetDefault("trips_pages", "busDashboard,trips,dailyTrips")

	v.SetConfigName("movi")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("warning: gagal membaca config file: %v", err)
		}
	} else {
		log.Printf("config file dipakai: %s", v.ConfigFileUsed())
	}

	return Env{
		AppAddr:              strings.TrimSpace(v.GetString("app_addr")),
		GinMode:              strings.TrimSpace(v.GetString("gin_mode")),
		DBHost:               strings.TrimSpace(v.GetString("db_host")),
		DBPort:               v.GetInt("db_port"),
		DBUser:               strings.TrimSpace(v.GetString("db_user")),
		DBPassword:           v.GetString("db_password"),
		DBName:               strings.TrimSpace(v.GetString("db_name")),
		DBSeed:               v.GetBool("db_seed"),
		SeedAdminPassword:    v.GetString("seed_admin_password"),
		CORSAllowedOrigins:   splitList(v.GetString("cors_allowed_origins")),
		JWTSecret:            v.GetString("jwt_secret"),
		AuthRequired:         v.GetBool("auth_required"),
		PendingTTL:           positiveDuration(v.GetDuration("pending_ttl"), 10*time.Minute),
		PendingSweepInterval: positiveDuration(v.GetDuration("pending_sweep_interval"), time.Minute),
		TripsPages:           splitList(v.GetString("trips_pages")),
	}
}

func splitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func positiveDuration(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}
