// Package pgstore implements source.Source directly on the stock service's
// PostgreSQL table, for deployments where the database is reachable and the
// HTTP service is not.
package pgstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/JonMunkholm/stockview/internal/config"
	"github.com/JonMunkholm/stockview/internal/source"
	"github.com/JonMunkholm/stockview/internal/stock"
)

// DBTX is the subset of pgx used by the store.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
}

// Store reads and writes one stock table.
type Store struct {
	db    DBTX
	table string // sanitized identifier
}

var _ source.Source = (*Store)(nil)

// New wraps an existing connection or transaction.
func New(db DBTX, table string) *Store {
	return &Store{db: db, table: pgx.Identifier{table}.Sanitize()}
}

// Connect opens a pool configured from cfg and verifies it with a ping.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	slog.Info("connected to stock database", "table", cfg.Table)
	return pool, nil
}

// Ping checks the connection when the underlying handle supports it.
func (s *Store) Ping(ctx context.Context) error {
	p, ok := s.db.(source.Pinger)
	if !ok {
		return nil
	}
	if err := p.Ping(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

// FetchAll returns every row of the table.
func (s *Store) FetchAll(ctx context.Context) ([]stock.Record, error) {
	query := fmt.Sprintf(`SELECT id::text, medicinename, dosage, brandname,
		purchaseprice, mrp, totalqty, purchasedate, expirydate, time::text
		FROM %s ORDER BY id`, s.table)

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query stock: %w", err)
	}
	defer rows.Close()

	var records []stock.Record
	for rows.Next() {
		var (
			id, name, dosage, brand, tm pgtype.Text
			price, mrp, qty             pgtype.Numeric
			purchased, expires          pgtype.Date
		)
		if err := rows.Scan(&id, &name, &dosage, &brand, &price, &mrp, &qty, &purchased, &expires, &tm); err != nil {
			return nil, fmt.Errorf("scan stock row: %w", err)
		}
		records = append(records, stock.Record{
			ID:            stock.ID(id.String),
			MedicineName:  name.String,
			Dosage:        dosage.String,
			BrandName:     brand.String,
			PurchasePrice: amountFromNumeric(price),
			MRP:           amountFromNumeric(mrp),
			TotalQty:      amountFromNumeric(qty),
			PurchaseDate:  dateFromPG(purchased),
			ExpiryDate:    dateFromPG(expires),
			Time:          tm.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read stock rows: %w", err)
	}
	return records, nil
}

// Update writes the payload fields of record id.
func (s *Store) Update(ctx context.Context, id stock.ID, p stock.Payload) error {
	query := fmt.Sprintf(`UPDATE %s SET brandname = $2, purchaseprice = $3, mrp = $4,
		totalqty = $5, purchasedate = $6, expirydate = $7 WHERE id::text = $1`, s.table)

	tag, err := s.db.Exec(ctx, query,
		id.String(),
		pgtype.Text{String: p.BrandName, Valid: p.BrandName != ""},
		numericFromAmount(p.PurchasePrice),
		numericFromAmount(p.MRP),
		numericFromAmount(p.TotalQty),
		dateToPG(p.PurchaseDate),
		dateToPG(p.ExpiryDate),
	)
	if err != nil {
		return fmt.Errorf("update stock %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update stock %s: %w", id, source.ErrNotFound)
	}
	return nil
}

// Delete removes record id.
func (s *Store) Delete(ctx context.Context, id stock.ID) error {
	tag, err := s.db.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id::text = $1`, s.table), id.String())
	if err != nil {
		return fmt.Errorf("delete stock %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete stock %s: %w", id, source.ErrNotFound)
	}
	return nil
}

func amountFromNumeric(n pgtype.Numeric) stock.Amount {
	if !n.Valid || n.NaN || n.Int == nil {
		return stock.Amount{}
	}
	return stock.AmountOf(decimal.NewFromBigInt(n.Int, n.Exp))
}

func numericFromAmount(a stock.Amount) pgtype.Numeric {
	if !a.Valid {
		return pgtype.Numeric{}
	}
	return pgtype.Numeric{Int: a.Decimal.Coefficient(), Exp: a.Decimal.Exponent(), Valid: true}
}

func dateFromPG(d pgtype.Date) stock.Date {
	if !d.Valid {
		return stock.Date{}
	}
	return stock.DateOf(d.Time)
}

func dateToPG(d stock.Date) pgtype.Date {
	if !d.Valid {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: d.StartOfDay(), Valid: true}
}
