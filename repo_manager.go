package credit

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/uptrace/bun"
)

// Users is the storage interface for user records.
type Users interface {
	GetByCPF(ctx context.Context, cpf string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) (*User, error)
	CreateTx(ctx context.Context, tx bun.IDB, user *User) (*User, error)
}

// Debts is the storage interface for debt records.
type Debts interface {
	ListByOwner(ctx context.Context, ownerCPF string) ([]*Debt, error)
	Create(ctx context.Context, debt *Debt) (*Debt, error)
	CreateTx(ctx context.Context, tx bun.IDB, debt *Debt) (*Debt, error)
}

// RepositoryManager exposes all repositories
type RepositoryManager interface {
	Users() Users
	Debts() Debts
	RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error
	CreateTables(ctx context.Context) error
	Validate() error
	MustValidate()
}

type mngr struct {
	db    *bun.DB
	users Users
	debts Debts
}

// NewRepositoryManager wires the bun-backed repositories.
func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &mngr{
		db:    db,
		users: NewUsersRepository(db),
		debts: NewDebtsRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.users == nil {
		return errors.New("repository users should be initialized")
	}

	if m.debts == nil {
		return errors.New("repository debts should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Users() Users {
	return m.users
}

func (m mngr) Debts() Debts {
	return m.debts
}

// CreateTables bootstraps the schema. The unique constraints declared on the
// models are the authoritative guard against concurrent duplicate
// registrations; application-level lookups only provide friendlier errors.
func (m mngr) CreateTables(ctx context.Context) error {
	models := []any{
		(*User)(nil),
		(*Debt)(nil),
	}

	for _, model := range models {
		if _, err := m.db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
	}

	return nil
}
