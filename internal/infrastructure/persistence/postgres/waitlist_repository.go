package postgres

import (
	"context"
	"database/sql"

	"github.com/onoja123/Modi-backend/internal/domain/waitlist"
)

type WaitlistRepository struct {
	db *PostgresDB

	stmtCreate     *sql.Stmt
	stmtGetByEmail *sql.Stmt
}

func NewWaitlistRepository(db *PostgresDB) (*WaitlistRepository, error) {
	r := &WaitlistRepository{db: db}

	var err error
	r.stmtCreate, err = db.sqlDB().PrepareContext(
		context.Background(),
		`INSERT INTO waitlist (id, email) VALUES ($1, $2)`,
	)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	r.stmtGetByEmail, err = db.sqlDB().PrepareContext(
		context.Background(),
		`SELECT id, email, created_at FROM waitlist WHERE email = $1`,
	)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	return r, nil
}

func (r *WaitlistRepository) Close() error {
	var firstErr error
	closeStmt := func(s *sql.Stmt) {
		if s == nil {
			return
		}
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	closeStmt(r.stmtCreate)
	closeStmt(r.stmtGetByEmail)

	return firstErr
}

func (r *WaitlistRepository) Create(ctx context.Context, e waitlist.Entry) error {
	_, err := r.stmtCreate.ExecContext(ctx, e.ID, e.Email)
	return err
}

func (r *WaitlistRepository) GetByEmail(ctx context.Context, email string) (waitlist.Entry, error) {
	var e waitlist.Entry
	err := r.stmtGetByEmail.QueryRowContext(ctx, email).Scan(&e.ID, &e.Email, &e.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return waitlist.Entry{}, waitlist.ErrNotFound
		}
		return waitlist.Entry{}, err
	}
	return e, nil
}
