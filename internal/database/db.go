package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the three tables the service owns. Statements are
// idempotent so this runs on every boot. DATETIME(6) keeps sub-second
// precision on loan and payment dates.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            CHAR(36)     NOT NULL PRIMARY KEY,
			email         VARCHAR(255) NOT NULL,
			password_hash VARCHAR(128) NOT NULL,
			salt          VARCHAR(64)  NOT NULL,
			UNIQUE KEY uq_users_email (email)
		)`,
		`CREATE TABLE IF NOT EXISTS loans (
			id     CHAR(36)    NOT NULL PRIMARY KEY,
			amount BIGINT      NOT NULL,
			term   INT         NOT NULL,
			rate   DOUBLE      NOT NULL,
			date   DATETIME(6) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS payments (
			id      BIGINT      NOT NULL AUTO_INCREMENT PRIMARY KEY,
			loan_id CHAR(36)    NOT NULL,
			date    DATETIME(6) NOT NULL,
			amount  DOUBLE      NOT NULL,
			status  ENUM('made','missed') NOT NULL,
			KEY idx_payments_loan (loan_id, date),
			CONSTRAINT fk_payments_loan FOREIGN KEY (loan_id) REFERENCES loans (id)
		)`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("schema exec failed: %w", err)
		}
	}
	return nil
}
