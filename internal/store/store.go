// Package store reads contract and notification records from PostgreSQL.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"contract-compliance/internal/dates"
	"contract-compliance/internal/model"
)

// ErrNotFound is returned when a contract does not exist or is not eligible
// (not approved, or archived).
var ErrNotFound = errors.New("contract not found")

// eligible restricts every contract query to approved, unarchived, dated rows.
const eligible = `c.approval_status = 'approved' AND c.archived_at IS NULL AND c.end_date IS NOT NULL`

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// ListExpiringContracts returns eligible contracts whose end date is within [from, to].
func (db *DB) ListExpiringContracts(ctx context.Context, from, to time.Time) ([]model.ContractRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT c.id::text, c.full_name, c.identification_number, COALESCE(c.company_name, ''), c.end_date
		 FROM contracts c
		 WHERE `+eligible+` AND c.end_date BETWEEN $1 AND $2
		 ORDER BY c.end_date, c.id`,
		dates.Format(from), dates.Format(to),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expiring contracts: %w", err)
	}
	defer rows.Close()

	var contracts []model.ContractRecord
	for rows.Next() {
		var c model.ContractRecord
		var endDate time.Time
		if err := rows.Scan(&c.ID, &c.FullName, &c.IdentificationNumber, &c.CompanyName, &endDate); err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		c.EndDate = dates.On(endDate)
		contracts = append(contracts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list expiring contracts: %w", err)
	}
	return contracts, nil
}

// RenewalHistory returns the start date and executed renewal count of an eligible contract.
func (db *DB) RenewalHistory(ctx context.Context, contractID string) (model.RenewalHistory, error) {
	var startDate time.Time
	var renewals int
	err := db.pool.QueryRow(ctx,
		`SELECT c.start_date, COUNT(r.id)
		 FROM contracts c
		 LEFT JOIN contract_renewals r ON r.contract_id = c.id
		 WHERE c.id::text = $1 AND `+eligible+`
		 GROUP BY c.id, c.start_date`,
		contractID,
	).Scan(&startDate, &renewals)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.RenewalHistory{}, ErrNotFound
		}
		return model.RenewalHistory{}, fmt.Errorf("failed to get renewal history for %s: %w", contractID, err)
	}
	return model.RenewalHistory{
		ContractID: contractID,
		StartDate:  dates.On(startDate),
		Renewals:   renewals,
	}, nil
}

// NotificationDays returns the lead times of the latest notification settings row.
// No row means no notifications are configured.
func (db *DB) NotificationDays(ctx context.Context) ([]int, error) {
	var days []int32
	err := db.pool.QueryRow(ctx,
		`SELECT days_before_expiration FROM notification_settings ORDER BY updated_at DESC LIMIT 1`,
	).Scan(&days)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []int{}, nil
		}
		return nil, fmt.Errorf("failed to get notification settings: %w", err)
	}

	out := make([]int, len(days))
	for i, d := range days {
		out[i] = int(d)
	}
	return out, nil
}
