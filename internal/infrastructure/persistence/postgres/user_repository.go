package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/onoja123/Modi-backend/internal/domain/user"
)

const userColumns = `id, fullname, email, password_hash, status, user_type,
	about, goals, preference, image, otp_code, otp_expires_at,
	password_changed_at, is_admin, created_at, updated_at`

type UserRepository struct {
	db *PostgresDB

	stmtCreate     *sql.Stmt
	stmtGetByID    *sql.Stmt
	stmtGetByEmail *sql.Stmt
	stmtGetByOTP   *sql.Stmt
	stmtExists     *sql.Stmt
	stmtUpdate     *sql.Stmt
	stmtUpsert     *sql.Stmt
	stmtDelete     *sql.Stmt
}

func NewUserRepository(db *PostgresDB) (*UserRepository, error) {
	r := &UserRepository{db: db}

	prepare := func(dst **sql.Stmt, query string) error {
		stmt, err := db.sqlDB().PrepareContext(context.Background(), query)
		if err != nil {
			return err
		}
		*dst = stmt
		return nil
	}

	steps := []struct {
		dst   **sql.Stmt
		query string
	}{
		{&r.stmtCreate, `INSERT INTO users
			(id, fullname, email, password_hash, status, user_type, about, goals,
			 preference, image, otp_code, otp_expires_at, password_changed_at, is_admin)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`},
		{&r.stmtGetByID, `SELECT ` + userColumns + ` FROM users WHERE id = $1`},
		{&r.stmtGetByEmail, `SELECT ` + userColumns + ` FROM users WHERE email = $1`},
		{&r.stmtGetByOTP, `SELECT ` + userColumns + ` FROM users
			WHERE otp_code = $1 AND otp_expires_at >= $2`},
		{&r.stmtExists, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`},
		{&r.stmtUpdate, `UPDATE users SET
			fullname = $2, email = $3, password_hash = $4, status = $5, user_type = $6,
			about = $7, goals = $8, preference = $9, image = $10, otp_code = $11,
			otp_expires_at = $12, password_changed_at = $13, updated_at = now()
			WHERE id = $1`},
		{&r.stmtUpsert, `INSERT INTO users (id, fullname, email, status, image)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (email) DO UPDATE SET
				fullname = EXCLUDED.fullname, image = EXCLUDED.image, updated_at = now()
			RETURNING ` + userColumns},
		{&r.stmtDelete, `DELETE FROM users WHERE id = $1`},
	}

	for _, s := range steps {
		if err := prepare(s.dst, s.query); err != nil {
			_ = r.Close()
			return nil, err
		}
	}

	return r, nil
}

func (r *UserRepository) Close() error {
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
	closeStmt(r.stmtGetByID)
	closeStmt(r.stmtGetByEmail)
	closeStmt(r.stmtGetByOTP)
	closeStmt(r.stmtExists)
	closeStmt(r.stmtUpdate)
	closeStmt(r.stmtUpsert)
	closeStmt(r.stmtDelete)

	return firstErr
}

func (r *UserRepository) Create(ctx context.Context, u user.User) error {
	about, goals, preference, err := marshalLists(u)
	if err != nil {
		return err
	}
	_, err = r.stmtCreate.ExecContext(ctx,
		u.ID, u.Fullname, u.Email, u.PasswordHash, string(u.Status), string(u.Type),
		about, goals, preference, u.Image,
		nullableInt(u.OTP.Code), nullableTime(u.OTP.ExpiresAt),
		nullableTime(u.PasswordChangedAt), u.IsAdmin,
	)
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return scanUser(r.stmtGetByID.QueryRowContext(ctx, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return scanUser(r.stmtGetByEmail.QueryRowContext(ctx, email))
}

func (r *UserRepository) GetByOTPCode(ctx context.Context, code int, now time.Time) (user.User, error) {
	return scanUser(r.stmtGetByOTP.QueryRowContext(ctx, code, now))
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.stmtExists.QueryRowContext(ctx, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *UserRepository) Update(ctx context.Context, u user.User) error {
	about, goals, preference, err := marshalLists(u)
	if err != nil {
		return err
	}
	res, err := r.stmtUpdate.ExecContext(ctx,
		u.ID, u.Fullname, u.Email, u.PasswordHash, string(u.Status), string(u.Type),
		about, goals, preference, u.Image,
		nullableInt(u.OTP.Code), nullableTime(u.OTP.ExpiresAt),
		nullableTime(u.PasswordChangedAt),
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpsertByEmail(ctx context.Context, email, fullname, image string) (user.User, error) {
	row := r.stmtUpsert.QueryRowContext(ctx, uuid.New(), fullname, email, string(user.StatusActive), image)
	return scanUser(row)
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.stmtDelete.ExecContext(ctx, id)
	return err
}

type userRow interface {
	Scan(dest ...any) error
}

func scanUser(row userRow) (user.User, error) {
	var (
		u          user.User
		status     string
		userType   string
		about      []byte
		goals      []byte
		preference []byte
		otpCode    sql.NullInt64
		otpExpires sql.NullTime
		pwChanged  sql.NullTime
	)

	err := row.Scan(
		&u.ID, &u.Fullname, &u.Email, &u.PasswordHash, &status, &userType,
		&about, &goals, &preference, &u.Image, &otpCode, &otpExpires,
		&pwChanged, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}

	u.Status = user.Status(status)
	u.Type = user.Type(userType)

	if err := unmarshalList(about, &u.About); err != nil {
		return user.User{}, err
	}
	if err := unmarshalList(goals, &u.Goals); err != nil {
		return user.User{}, err
	}
	if err := unmarshalList(preference, &u.Preference); err != nil {
		return user.User{}, err
	}

	if otpCode.Valid {
		code := int(otpCode.Int64)
		u.OTP.Code = &code
	}
	if otpExpires.Valid {
		t := otpExpires.Time
		u.OTP.ExpiresAt = &t
	}
	if pwChanged.Valid {
		t := pwChanged.Time
		u.PasswordChangedAt = &t
	}

	return u, nil
}

// List fields are stored as jsonb so the document-style string arrays survive
// the relational mapping without a separate table.
func marshalLists(u user.User) ([]byte, []byte, []byte, error) {
	about, err := marshalList(u.About)
	if err != nil {
		return nil, nil, nil, err
	}
	goals, err := marshalList(u.Goals)
	if err != nil {
		return nil, nil, nil, err
	}
	preference, err := marshalList(u.Preference)
	if err != nil {
		return nil, nil, nil, err
	}
	return about, goals, preference, nil
}

func marshalList(v []string) ([]byte, error) {
	if v == nil {
		v = []string{}
	}
	return json.Marshal(v)
}

func unmarshalList(b []byte, dst *[]string) error {
	if len(b) == 0 {
		*dst = []string{}
		return nil
	}
	return json.Unmarshal(b, dst)
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return *v
}
