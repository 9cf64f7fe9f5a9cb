package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "open sqlite")
	return db
}

// newClubDB returns a sqlite database with the full club schema.
func newClubDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := newTestDB(t)
	createUserTable(t, db)
	createRideTables(t, db)
	createAchievementTables(t, db)
	createAlertTable(t, db)
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		city TEXT NOT NULL,
		bike_model TEXT NOT NULL,
		vin TEXT NOT NULL,
		avatar_url TEXT NOT NULL DEFAULT '',
		is_admin BOOLEAN NOT NULL DEFAULT false,
		is_verified BOOLEAN NOT NULL DEFAULT false,
		is_captain BOOLEAN NOT NULL DEFAULT false,
		safety_rating INTEGER,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createRideTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE rides (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		description TEXT,
		route_start TEXT NOT NULL,
		route_end TEXT NOT NULL,
		route_map_link TEXT,
		date_time DATETIME NOT NULL,
		captain_id TEXT NOT NULL REFERENCES users(id),
		status TEXT NOT NULL,
		rejection_reason TEXT,
		thumbnail_url TEXT,
		distance_km REAL NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE ride_participants (
		ride_id TEXT NOT NULL REFERENCES rides(id),
		user_id TEXT NOT NULL REFERENCES users(id),
		joined_at DATETIME NOT NULL,
		PRIMARY KEY (ride_id, user_id)
	);`)
	mustExec(t, db, `CREATE TABLE ride_photos (
		id TEXT PRIMARY KEY,
		ride_id TEXT NOT NULL REFERENCES rides(id),
		uploader_user_id TEXT NOT NULL REFERENCES users(id),
		photo_url TEXT NOT NULL,
		caption TEXT,
		uploaded_at DATETIME NOT NULL
	);`)
}

func createAchievementTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE achievements (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL,
		icon_name TEXT NOT NULL,
		criteria_details TEXT
	);`)
	mustExec(t, db, `CREATE TABLE user_achievements (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		achievement_id TEXT NOT NULL REFERENCES achievements(id),
		date_earned DATETIME NOT NULL,
		UNIQUE (user_id, achievement_id)
	);`)
}

func createAlertTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE system_alerts (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		message TEXT NOT NULL,
		details_url TEXT,
		severity TEXT NOT NULL,
		status TEXT NOT NULL,
		resolved_by_user_id TEXT,
		resolved_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func seedUser(t *testing.T, db *gorm.DB, name, email, city string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	now := time.Now().UTC()
	mustExec(t, db, `INSERT INTO users (id, name, email, password_hash, city, bike_model, vin, is_admin, is_verified, is_captain, created_at, updated_at)
		VALUES (?, ?, ?, 'hash', ?, 'Royal Enfield Classic 350', '1HGCM82633A004352', false, false, false, ?, ?)`,
		id, name, email, city, now, now)
	return id
}

func seedRide(t *testing.T, db *gorm.DB, captainID uuid.UUID, name, status string, at time.Time, distance float64) uuid.UUID {
	t.Helper()
	id := uuid.New()
	now := time.Now().UTC()
	mustExec(t, db, `INSERT INTO rides (id, name, type, route_start, route_end, date_time, captain_id, status, distance_km, created_at, updated_at)
		VALUES (?, ?, 'Chapter', 'Start Point', 'End Point', ?, ?, ?, ?, ?, ?)`,
		id, name, at.UTC(), captainID, status, distance, now, now)
	return id
}

func seedParticipant(t *testing.T, db *gorm.DB, rideID, userID uuid.UUID) {
	t.Helper()
	mustExec(t, db, `INSERT INTO ride_participants (ride_id, user_id, joined_at) VALUES (?, ?, ?)`, rideID, userID, time.Now().UTC())
}

func seedAchievement(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	mustExec(t, db, `INSERT INTO achievements (id, name, description, icon_name, criteria_details) VALUES (?, ?, 'desc', 'award', '{"rides":1}')`, id, name)
	return id
}
