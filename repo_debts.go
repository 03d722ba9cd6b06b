package credit

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type debts struct {
	db *bun.DB
}

var _ Debts = (*debts)(nil)

func NewDebtsRepository(db *bun.DB) Debts {
	return &debts{db: db}
}

func (r *debts) ListByOwner(ctx context.Context, ownerCPF string) ([]*Debt, error) {
	var records []*Debt
	err := r.db.NewSelect().
		Model(&records).
		Where("dbt.owner_cpf = ?", ownerCPF).
		Order("dbt.due_date ASC").
		Scan(ctx)

	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list debts")
	}

	return records, nil
}

func (r *debts) Create(ctx context.Context, debt *Debt) (*Debt, error) {
	return r.CreateTx(ctx, r.db, debt)
}

func (r *debts) CreateTx(ctx context.Context, tx bun.IDB, debt *Debt) (*Debt, error) {
	if debt.ID == uuid.Nil {
		debt.ID = uuid.New()
	}

	if _, err := tx.NewInsert().Model(debt).Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to insert debt")
	}

	return debt, nil
}
