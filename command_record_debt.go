package credit

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// RecordDebtMessage is the payload an administrator submits to record a debt
// against a user.
type RecordDebtMessage struct {
	Amount   float64 `json:"amount"`
	DueDate  string  `json:"due_date"`
	OwnerCPF string  `json:"owner_cpf"`
}

func (e RecordDebtMessage) Type() string { return "debt.record" }

// Validate will run validation rules
func (e RecordDebtMessage) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Amount, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&e.DueDate, validation.Required, validation.Date(DateLayout)),
		validation.Field(
			&e.OwnerCPF,
			validation.Required,
			validation.Match(cpfPattern).Error("must be exactly 11 digits"),
		),
	)
}

// RecordDebtHandler persists debts. The owner must exist; which admin
// recorded the debt is deliberately not tracked.
type RecordDebtHandler struct {
	repo RepositoryManager
}

func NewRecordDebtHandler(repo RepositoryManager) *RecordDebtHandler {
	return &RecordDebtHandler{repo: repo}
}

func (h *RecordDebtHandler) Execute(ctx context.Context, event RecordDebtMessage) (*Debt, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during debt recording",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RecordDebtHandler) execute(ctx context.Context, event RecordDebtMessage) (*Debt, error) {
	if err := event.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid debt payload").
			WithCode(goerrors.CodeBadRequest).
			WithMetadata(map[string]any{"fields": ValidationErrorMap(err)})
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	if _, err := h.repo.Users().GetByCPF(ctx, event.OwnerCPF); err != nil {
		if goerrors.IsNotFound(err) {
			return nil, ErrDebtOwnerNotFound
		}
		return nil, err
	}

	dueDate, err := time.Parse(DateLayout, event.DueDate)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid due date").
			WithCode(goerrors.CodeBadRequest)
	}

	debt := &Debt{
		Amount:   event.Amount,
		DueDate:  dueDate,
		OwnerCPF: event.OwnerCPF,
	}

	err = h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		created, err := h.repo.Debts().CreateTx(ctx, tx, debt)
		if err != nil {
			return err
		}
		debt = created
		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "debt recording transaction failed")
	}

	return debt, nil
}
