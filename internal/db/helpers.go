package db

import (
	"context"
	"database/sql"
	"fmt"
)

// QueryRower is satisfied by *sql.DB, *sql.Tx and *sql.Conn.
type QueryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// NullIfEmpty helps store optional strings as NULL.
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func HasTable(ctx context.Context, q QueryRower, table string) bool {
	var name sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)
	if err != nil {
		return false
	}
	return name.Valid && name.String != ""
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS rides (
		id             VARCHAR(64)  NOT NULL PRIMARY KEY,
		owner_id       VARCHAR(64)  NOT NULL,
		kind           VARCHAR(16)  NOT NULL,
		poster_name    VARCHAR(128) NOT NULL,
		origin         VARCHAR(128) NOT NULL,
		destination    VARCHAR(128) NOT NULL,
		ride_time      CHAR(5)      NOT NULL,
		seats          INT          NOT NULL DEFAULT 1,
		phone          VARCHAR(32)  NOT NULL,
		ride_date      CHAR(10)     NOT NULL,
		is_recurring   TINYINT(1)   NOT NULL DEFAULT 0,
		recurring_days VARCHAR(32)  NULL,
		notes          TEXT         NULL,
		created_at     DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_rides_date (ride_date),
		INDEX idx_rides_owner (owner_id)
	) CHARACTER SET utf8mb4`,
	`CREATE TABLE IF NOT EXISTS email_ride_requests (
		id                   VARCHAR(64)  NOT NULL PRIMARY KEY,
		subject              VARCHAR(255) NOT NULL,
		body                 TEXT         NOT NULL,
		sender_name          VARCHAR(128) NOT NULL,
		sender_email         VARCHAR(255) NOT NULL,
		detected_origin      VARCHAR(128) NOT NULL DEFAULT '',
		detected_destination VARCHAR(128) NOT NULL DEFAULT '',
		detected_time        CHAR(5)      NULL,
		received_at          DATETIME     NOT NULL,
		INDEX idx_email_received (received_at)
	) CHARACTER SET utf8mb4`,
}

// EnsureSchema creates the board tables when missing.
func EnsureSchema(ctx context.Context, e Execer) error {
	for _, stmt := range schema {
		if _, err := e.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
