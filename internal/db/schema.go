package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"movi/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

var tableDDL = []struct {
	name string
	ddl  string
}{
	{"stops", `
CREATE TABLE IF NOT EXISTS stops (
	stop_id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	latitude DOUBLE NULL,
	longitude DOUBLE NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	{"paths", `
CREATE TABLE IF NOT EXISTS paths (
	path_id BIGINT AUTO_INCREMENT PRIMARY KEY,
	path_name VARCHAR(255) NOT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	{"path_stops", `
CREATE TABLE IF NOT EXISTS path_stops (
	path_id BIGINT NOT NULL,
	stop_id BIGINT NOT NULL,
	stop_order INT NOT NULL,
	PRIMARY KEY (path_id, stop_order)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	{"routes", `
CREATE TABLE IF NOT EXISTS routes (
	route_id BIGINT AUTO_INCREMENT PRIMARY KEY,
	path_id BIGINT NULL,
	route_display_name VARCHAR(255) NOT NULL,
	shift_time VARCHAR(16) NULL,
	direction VARCHAR(32) NULL,
	start_point VARCHAR(255) NULL,
	end_point VARCHAR(255) NULL,
	status VARCHAR(32) NOT NULL DEFAULT 'active'
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	{"daily_trips", `
CREATE TABLE IF NOT EXISTS daily_trips (
	trip_id BIGINT AUTO_INCREMENT PRIMARY KEY,
	display_name VARCHAR(255) NOT NULL,
	route_id BIGINT NULL,
	scheduled_date DATE NULL,
	KEY idx_daily_trips_date (scheduled_date)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	{"vehicles", `
CREATE TABLE IF NOT EXISTS vehicles (
	vehicle_id BIGINT AUTO_INCREMENT PRIMARY KEY,
	license_plate VARCHAR(64) NOT NULL,
	type VARCHAR(32) NULL,
	capacity INT NOT NULL DEFAULT 0
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	{"drivers", `
CREATE TABLE IF NOT EXISTS drivers (
	driver_id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	phone_number VARCHAR(64) NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	{"deployments", `
CREATE TABLE IF NOT EXISTS deployments (
	deployment_id BIGINT AUTO_INCREMENT PRIMARY KEY,
	trip_id BIGINT NOT NULL,
	vehicle_id BIGINT NOT NULL,
	driver_id BIGINT NOT NULL,
	UNIQUE KEY uniq_deployment_trip (trip_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	{"bookings", `
CREATE TABLE IF NOT EXISTS bookings (
	booking_id BIGINT AUTO_INCREMENT PRIMARY KEY,
	trip_id BIGINT NOT NULL,
	passenger_name VARCHAR(255) NOT NULL,
	status VARCHAR(16) NOT NULL DEFAULT 'confirmed',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_bookings_trip_status (trip_id, status)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	{"operators", `
CREATE TABLE IF NOT EXISTS operators (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	username VARCHAR(100) NOT NULL,
	password_hash VARCHAR(255) NOT NULL,
	role VARCHAR(32) NOT NULL DEFAULT 'dispatcher',
	status VARCHAR(16) NOT NULL DEFAULT 'active',
	UNIQUE KEY uniq_operator_username (username)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
}

// EnsureSchema creates missing tables. Existing tables are left untouched.
func EnsureSchema(ctx context.Context, conn *sql.DB) error {
	if conn == nil {
		return fmt.Errorf("db tidak tersedia")
	}
	for _, t := range tableDDL {
		if HasTable(ctx, conn, t.name) {
			continue
		}
		if _, err := conn.ExecContext(ctx, t.ddl); err != nil {
			return fmt.Errorf("create table %s: %w", t.name, err)
		}
		log.Printf("[SCHEMA] table=%s created", t.name)
	}
	return nil
}

// Seed inserts a demo trip for today ("Bulk - 00:01") with a vehicle,
// driver, deployment and a few confirmed bookings, plus an admin operator.
// It is a no-op when the trip already exists for today.
func Seed(ctx context.Context, conn *sql.DB, adminPassword string) error {
	today := utils.Today()

	var existing int64
	err := conn.QueryRowContext(ctx,
		`SELECT trip_id FROM daily_trips WHERE display_name=? AND scheduled_date=? LIMIT 1`,
		"Bulk - 00:01", today,
	).Scan(&existing)
	if err == nil {
		log.Printf("[SCHEMA] seed skipped, trip_id=%d", existing)
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `INSERT INTO daily_trips (display_name, scheduled_date) VALUES (?, ?)`, "Bulk - 00:01", today)
	if err != nil {
		return err
	}
	tripID, _ := res.LastInsertId()

	if _, err := tx.ExecContext(ctx, `INSERT INTO daily_trips (display_name, scheduled_date) VALUES (?, ?)`, "NoShow - BTS - 13:00", today); err != nil {
		return err
	}

	res, err = tx.ExecContext(ctx, `INSERT INTO vehicles (license_plate, type, capacity) VALUES (?, ?, ?)`, "KA-01-AB-1234", "Bus", 40)
	if err != nil {
		return err
	}
	vehicleID, _ := res.LastInsertId()

	res, err = tx.ExecContext(ctx, `INSERT INTO drivers (name, phone_number) VALUES (?, ?)`, "Amit", "0800")
	if err != nil {
		return err
	}
	driverID, _ := res.LastInsertId()

	if _, err := tx.ExecContext(ctx, `INSERT INTO deployments (trip_id, vehicle_id, driver_id) VALUES (?, ?, ?)`, tripID, vehicleID, driverID); err != nil {
		return err
	}
	for _, name := range []string{"Asha", "Ravi", "Meera"} {
		if _, err := tx.ExecContext(ctx, `INSERT INTO bookings (trip_id, passenger_name, status) VALUES (?, ?, 'confirmed')`, tripID, name); err != nil {
			return err
		}
	}

	if adminPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT IGNORE INTO operators (username, password_hash, role, status) VALUES ('admin', ?, 'admin', 'active')`,
			string(hash),
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Printf("[SCHEMA] seed inserted trip_id=%d date=%s", tripID, today)
	return nil
}
