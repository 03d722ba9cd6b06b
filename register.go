package credit

import (
	"context"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

var cpfPattern = regexp.MustCompile(`^\d{11}$`)

// RegisterUserMessage is the registration payload.
type RegisterUserMessage struct {
	CPF       string `json:"cpf"`
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func (e RegisterUserMessage) Type() string { return "user.register" }

// Validate will run validation rules
func (e RegisterUserMessage) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(
			&e.CPF,
			validation.Required,
			validation.Match(cpfPattern).Error("must be exactly 11 digits"),
		),
		validation.Field(&e.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&e.BirthDate, validation.Required, validation.Date(DateLayout)),
		validation.Field(&e.Email, validation.Required, is.Email),
		validation.Field(&e.Password, validation.Required),
	)
}

// RegisterUserHandler creates user records: duplicate checks, admin-domain
// derivation, password hashing, one atomic insert.
type RegisterUserHandler struct {
	repo        RepositoryManager
	adminDomain string
}

// NewRegisterUserHandler returns a handler granting the admin role to emails
// ending in adminDomain.
func NewRegisterUserHandler(repo RepositoryManager, adminDomain string) *RegisterUserHandler {
	if adminDomain == "" {
		adminDomain = DefaultAdminDomain
	}
	return &RegisterUserHandler{repo: repo, adminDomain: adminDomain}
}

func (h *RegisterUserHandler) Execute(ctx context.Context, event RegisterUserMessage) (*User, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during user registration",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RegisterUserHandler) execute(ctx context.Context, event RegisterUserMessage) (*User, error) {
	if err := event.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid registration payload").
			WithCode(goerrors.CodeBadRequest).
			WithMetadata(map[string]any{"fields": ValidationErrorMap(err)})
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	// Friendly pre-checks. The unique constraints remain the authoritative
	// guard: a concurrent duplicate racing past these lookups still fails on
	// insert with the same conflict error.
	if _, err := h.repo.Users().GetByCPF(ctx, event.CPF); err == nil {
		return nil, ErrCPFRegistered
	} else if !goerrors.IsNotFound(err) {
		return nil, err
	}

	if _, err := h.repo.Users().GetByEmail(ctx, event.Email); err == nil {
		return nil, ErrEmailRegistered
	} else if !goerrors.IsNotFound(err) {
		return nil, err
	}

	hash, err := HashPassword(event.Password)
	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	birthDate, err := time.Parse(DateLayout, event.BirthDate)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid birth date").
			WithCode(goerrors.CodeBadRequest)
	}

	user := &User{
		CPF:          event.CPF,
		Name:         event.Name,
		BirthDate:    birthDate,
		Email:        event.Email,
		PasswordHash: hash,
		IsAdmin:      IsAdminEmail(event.Email, h.adminDomain),
	}

	err = h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		created, err := h.repo.Users().CreateTx(ctx, tx, user)
		if err != nil {
			return err
		}
		user = created
		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "user registration transaction failed")
	}

	return user, nil
}

// IsAdminEmail reports whether the email grants the admin role. This is a
// strict suffix match: "root@admin.example.com.evil.com" does not qualify
// for the "@admin.example.com" domain.
func IsAdminEmail(email, adminDomain string) bool {
	if adminDomain == "" {
		return false
	}
	return strings.HasSuffix(email, adminDomain)
}

// ValidationErrorMap flattens an ozzo validation error into a field -> message
// map for transport in error metadata.
func ValidationErrorMap(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}

	if verrs, ok := err.(validation.Errors); ok {
		for field, ferr := range verrs {
			if ferr != nil {
				out[field] = ferr.Error()
			}
		}
		return out
	}

	out["payload"] = err.Error()
	return out
}
