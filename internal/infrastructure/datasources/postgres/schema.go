package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// schemaStatements create the club tables; each one is safe to re-run.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		city VARCHAR(100) NOT NULL,
		bike_model VARCHAR(100) NOT NULL,
		vin VARCHAR(17) NOT NULL,
		avatar_url VARCHAR(500) NOT NULL DEFAULT '',
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		is_verified BOOLEAN NOT NULL DEFAULT FALSE,
		is_captain BOOLEAN NOT NULL DEFAULT FALSE,
		safety_rating SMALLINT CHECK (safety_rating BETWEEN 1 AND 5),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_users_city ON users (city)`,
	`CREATE INDEX IF NOT EXISTS idx_users_created_at ON users (created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS rides (
		id UUID PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		type VARCHAR(20) NOT NULL CHECK (type IN ('Flagship', 'Chapter', 'Micro')),
		description TEXT,
		route_start VARCHAR(255) NOT NULL,
		route_end VARCHAR(255) NOT NULL,
		route_map_link VARCHAR(500),
		date_time TIMESTAMPTZ NOT NULL,
		captain_id UUID NOT NULL REFERENCES users(id),
		status VARCHAR(30) NOT NULL CHECK (status IN ('Pending Approval', 'Upcoming', 'Ongoing', 'Completed', 'Cancelled', 'Rejected')),
		rejection_reason TEXT,
		thumbnail_url VARCHAR(500),
		distance_km NUMERIC(8,2) NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_rides_status_date ON rides (status, date_time)`,
	`CREATE INDEX IF NOT EXISTS idx_rides_captain ON rides (captain_id)`,

	`CREATE TABLE IF NOT EXISTS ride_participants (
		ride_id UUID NOT NULL REFERENCES rides(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (ride_id, user_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ride_participants_user ON ride_participants (user_id)`,

	`CREATE TABLE IF NOT EXISTS ride_photos (
		id UUID PRIMARY KEY,
		ride_id UUID NOT NULL REFERENCES rides(id) ON DELETE CASCADE,
		uploader_user_id UUID NOT NULL REFERENCES users(id),
		photo_url VARCHAR(1000) NOT NULL,
		caption VARCHAR(280),
		uploaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ride_photos_ride ON ride_photos (ride_id, uploaded_at DESC)`,

	`CREATE TABLE IF NOT EXISTS achievements (
		id UUID PRIMARY KEY,
		name VARCHAR(100) NOT NULL UNIQUE,
		description TEXT NOT NULL,
		icon_name VARCHAR(100) NOT NULL,
		criteria_details JSONB
	)`,
	`CREATE TABLE IF NOT EXISTS user_achievements (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		achievement_id UUID NOT NULL REFERENCES achievements(id),
		date_earned TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, achievement_id)
	)`,

	`CREATE TABLE IF NOT EXISTS system_alerts (
		id UUID PRIMARY KEY,
		type VARCHAR(100) NOT NULL,
		message TEXT NOT NULL,
		details_url VARCHAR(500),
		severity VARCHAR(20) NOT NULL CHECK (severity IN ('Low', 'Medium', 'High', 'Critical')),
		status VARCHAR(20) NOT NULL CHECK (status IN ('New', 'Investigating', 'ActionRequired', 'Resolved', 'Dismissed')),
		resolved_by_user_id UUID REFERENCES users(id),
		resolved_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_system_alerts_status ON system_alerts (status)`,
}

// CreateSchema applies every statement in one transaction.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}

	for i, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}
	return nil
}
