package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meltemk/skyticket/internal/domain"
)

type TicketRepository interface {
	// AppendAll writes the primary entry and its guardian-linked clones
	// as one transaction; the ledger never sees a partial booking.
	AppendAll(ctx context.Context, entries []domain.TicketLedgerEntry) error
	ListByPNRAndPurchaser(ctx context.Context, pnr, purchaserEmail string) ([]domain.TicketLedgerEntry, error)
	ListByPNR(ctx context.Context, pnr string) ([]domain.TicketLedgerEntry, error)
	ListByAccount(ctx context.Context, email string) ([]domain.TicketLedgerEntry, error)
	PNRExists(ctx context.Context, pnr string) (bool, error)
	// DeleteByPNR removes every entry sharing the pnr, guardian-linked
	// clones included. Returns the number of entries removed.
	DeleteByPNR(ctx context.Context, pnr string) (int64, error)
}

type PGTicketRepository struct {
	db *pgxpool.Pool
}

func NewTicketRepository(db *pgxpool.Pool) TicketRepository {
	return &PGTicketRepository{db: db}
}

func (r *PGTicketRepository) AppendAll(ctx context.Context, entries []domain.TicketLedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, entry := range entries {
		details, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `INSERT INTO purchased_tickets (pnr, purchaser_email, associated_user_email, is_child_ticket, details)
			VALUES ($1, $2, $3, $4, $5)`,
			entry.PNRString(), entry.PurchaserEmail, entry.AssociatedUserEmail, entry.IsChildTicket, details); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PGTicketRepository) ListByPNRAndPurchaser(ctx context.Context, pnr, purchaserEmail string) ([]domain.TicketLedgerEntry, error) {
	rows, err := r.db.Query(ctx, `SELECT details FROM purchased_tickets WHERE pnr=$1 AND purchaser_email=$2 ORDER BY id`,
		domain.NormalizePNR(pnr), purchaserEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (r *PGTicketRepository) ListByPNR(ctx context.Context, pnr string) ([]domain.TicketLedgerEntry, error) {
	rows, err := r.db.Query(ctx, `SELECT details FROM purchased_tickets WHERE pnr=$1 ORDER BY id`, domain.NormalizePNR(pnr))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (r *PGTicketRepository) ListByAccount(ctx context.Context, email string) ([]domain.TicketLedgerEntry, error) {
	rows, err := r.db.Query(ctx, `SELECT details FROM purchased_tickets WHERE purchaser_email=$1 OR associated_user_email=$1 ORDER BY id`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (r *PGTicketRepository) PNRExists(ctx context.Context, pnr string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM purchased_tickets WHERE pnr=$1)`, domain.NormalizePNR(pnr)).Scan(&exists)
	return exists, err
}

func (r *PGTicketRepository) DeleteByPNR(ctx context.Context, pnr string) (int64, error) {
	cmd, err := r.db.Exec(ctx, `DELETE FROM purchased_tickets WHERE pnr=$1`, domain.NormalizePNR(pnr))
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func scanEntries(rows pgx.Rows) ([]domain.TicketLedgerEntry, error) {
	entries := make([]domain.TicketLedgerEntry, 0)
	for rows.Next() {
		var details []byte
		if err := rows.Scan(&details); err != nil {
			return nil, err
		}
		var entry domain.TicketLedgerEntry
		if err := json.Unmarshal(details, &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

var _ TicketRepository = (*PGTicketRepository)(nil)
