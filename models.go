package credit

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DateLayout is the wire format for birth and due dates.
const DateLayout = "2006-01-02"

// User is the user model, keyed by CPF (the Brazilian national identifier,
// exactly 11 digits). The admin flag is derived once at registration from
// the configured admin email domain and never mutated afterwards.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	CPF           string     `bun:"cpf,pk" json:"cpf"`
	Name          string     `bun:"name,notnull" json:"name"`
	BirthDate     time.Time  `bun:"birth_date,notnull" json:"birth_date"`
	Email         string     `bun:"email,notnull,unique" json:"email"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	IsAdmin       bool       `bun:"is_admin" json:"is_admin"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Admin is the role predicate. Keep role checks behind this so a future
// multi-role model stays a localized change.
func (u *User) Admin() bool {
	return u != nil && u.IsAdmin
}

// UserResponse is the public view of a user. The password hash has no
// serializable representation anywhere in the API.
type UserResponse struct {
	CPF       string `json:"cpf"`
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"`
}

// Public returns the user's public view.
func (u *User) Public() UserResponse {
	return UserResponse{
		CPF:       u.CPF,
		Name:      u.Name,
		BirthDate: u.BirthDate.Format(DateLayout),
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
	}
}

// Debt is a debt recorded by an administrator against a user.
type Debt struct {
	bun.BaseModel `bun:"table:debts,alias:dbt"`
	ID            uuid.UUID  `bun:"id,pk,type:uuid" json:"id"`
	Amount        float64    `bun:"amount,notnull" json:"amount"`
	DueDate       time.Time  `bun:"due_date,notnull" json:"due_date"`
	OwnerCPF      string     `bun:"owner_cpf,notnull" json:"owner_cpf"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

// DebtResponse is the public view of a debt.
type DebtResponse struct {
	ID       uuid.UUID `json:"id"`
	Amount   float64   `json:"amount"`
	DueDate  string    `json:"due_date"`
	OwnerCPF string    `json:"owner_cpf"`
}

// Public returns the debt's public view.
func (d *Debt) Public() DebtResponse {
	return DebtResponse{
		ID:       d.ID,
		Amount:   d.Amount,
		DueDate:  d.DueDate.Format(DateLayout),
		OwnerCPF: d.OwnerCPF,
	}
}
