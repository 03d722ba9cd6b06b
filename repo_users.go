package credit

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// users is keyed by the natural CPF key, so the queries are written directly
// against bun rather than going through a surrogate-key generic repository.
type users struct {
	db *bun.DB
}

var _ Users = (*users)(nil)

func NewUsersRepository(db *bun.DB) Users {
	return &users{db: db}
}

func (r *users) GetByCPF(ctx context.Context, cpf string) (*User, error) {
	user := &User{}
	err := r.db.NewSelect().
		Model(user).
		Where("usr.cpf = ?", cpf).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to query user by CPF")
	}

	return user, nil
}

func (r *users) GetByEmail(ctx context.Context, email string) (*User, error) {
	user := &User{}
	err := r.db.NewSelect().
		Model(user).
		Where("usr.email = ?", email).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to query user by email")
	}

	return user, nil
}

func (r *users) Create(ctx context.Context, user *User) (*User, error) {
	return r.CreateTx(ctx, r.db, user)
}

// CreateTx inserts the user. A unique-constraint failure from the database
// is mapped to the matching conflict error; this is the guard that closes
// the register race two concurrent check-then-insert calls cannot.
func (r *users) CreateTx(ctx context.Context, tx bun.IDB, user *User) (*User, error) {
	if _, err := tx.NewInsert().Model(user).Exec(ctx); err != nil {
		if IsUniqueViolation(err) {
			if strings.Contains(err.Error(), "email") {
				return nil, ErrEmailRegistered
			}
			return nil, ErrCPFRegistered
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to insert user")
	}

	return user, nil
}
