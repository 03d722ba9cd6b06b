package credit

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
)

// TokenResponse is the login response body.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// MessageResponse carries a human message with no further structure.
type MessageResponse struct {
	Message string `json:"message"`
}

// ScoreResponse is the credit score body.
type ScoreResponse struct {
	Score int `json:"score"`
}

// LoginRequest payload
type LoginRequest struct {
	CPF      string `json:"cpf" form:"cpf"`
	Password string `json:"password" form:"password"`
}

// GetIdentifier returns the identifier
func (r LoginRequest) GetIdentifier() string {
	return r.CPF
}

// GetPassword will return the password
func (r LoginRequest) GetPassword() string {
	return r.Password
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CPF, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// AuthControllerRoutes names the mounted paths.
type AuthControllerRoutes struct {
	Register string
	Login    string
	Logout   string
	Debts    string
	Score    string
}

// AuthController exposes the credit API over fiber.
type AuthController struct {
	Logger Logger
	Repo   RepositoryManager
	Auther Authenticator
	Routes *AuthControllerRoutes

	register *RegisterUserHandler
	debts    *RecordDebtHandler
}

// NewAuthController wires the handlers the routes dispatch to.
func NewAuthController(auther Authenticator, repo RepositoryManager, adminDomain string) *AuthController {
	return &AuthController{
		Logger: defLogger{},
		Repo:   repo,
		Auther: auther,
		Routes: &AuthControllerRoutes{
			Register: "/register",
			Login:    "/login",
			Logout:   "/logout",
			Debts:    "/debts",
			Score:    "/score",
		},
		register: NewRegisterUserHandler(repo, adminDomain),
		debts:    NewRecordDebtHandler(repo),
	}
}

func (a *AuthController) WithLogger(logger Logger) *AuthController {
	a.Logger = logger
	return a
}

// RegisterRoutes mounts the API onto the app.
func RegisterRoutes(app *fiber.App, controller *AuthController) {
	app.Get("/", controller.Root)

	app.Post(controller.Routes.Register, controller.Register)
	app.Post(controller.Routes.Login, controller.Login)
	app.Post(controller.Routes.Logout, Protected(controller.Auther), controller.Logout)

	app.Get(controller.Routes.Debts, Protected(controller.Auther), controller.ListDebts)
	app.Post(controller.Routes.Debts, AdminOnly(controller.Auther), controller.CreateDebt)

	app.Get(controller.Routes.Score, Protected(controller.Auther), controller.Score)
}

// Root is the unauthenticated welcome route.
func (a *AuthController) Root(c *fiber.Ctx) error {
	return c.JSON(MessageResponse{Message: "Welcome to the Credit System API"})
}

// Register creates a user and returns its public view, never the hash.
func (a *AuthController) Register(c *fiber.Ctx) error {
	payload := new(RegisterUserMessage)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("register parse payload", "error", err)
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse request body").
			WithCode(goerrors.CodeBadRequest)
	}

	user, err := a.register.Execute(c.UserContext(), *payload)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(user.Public())
}

// Login exchanges credentials for a bearer token.
func (a *AuthController) Login(c *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("login parse payload", "error", err)
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse request body").
			WithCode(goerrors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid login payload").
			WithCode(goerrors.CodeBadRequest).
			WithMetadata(map[string]any{"fields": ValidationErrorMap(err)})
	}

	token, err := a.Auther.Login(c.UserContext(), payload.CPF, payload.Password)
	if err != nil {
		return err
	}

	return c.JSON(TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Logout is a stateless no-op: the token stays valid until expiry and the
// client discards it. Requires a valid token for parity with the original
// contract.
func (a *AuthController) Logout(c *fiber.Ctx) error {
	return c.JSON(MessageResponse{Message: "Successfully logged out"})
}

// ListDebts returns the caller's own debts.
func (a *AuthController) ListDebts(c *fiber.Ctx) error {
	user, err := UserFromFiber(c)
	if err != nil {
		return err
	}

	records, err := a.Repo.Debts().ListByOwner(c.UserContext(), user.CPF)
	if err != nil {
		return err
	}

	out := make([]DebtResponse, 0, len(records))
	for _, d := range records {
		out = append(out, d.Public())
	}

	return c.JSON(out)
}

// CreateDebt records a debt against a user. Admin only; the owner must
// exist.
func (a *AuthController) CreateDebt(c *fiber.Ctx) error {
	payload := new(RecordDebtMessage)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("create debt parse payload", "error", err)
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse request body").
			WithCode(goerrors.CodeBadRequest)
	}

	debt, err := a.debts.Execute(c.UserContext(), *payload)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(debt.Public())
}

// Score derives the caller's credit score from their recorded debts.
func (a *AuthController) Score(c *fiber.Ctx) error {
	user, err := UserFromFiber(c)
	if err != nil {
		return err
	}

	records, err := a.Repo.Debts().ListByOwner(c.UserContext(), user.CPF)
	if err != nil {
		return err
	}

	return c.JSON(ScoreResponse{Score: ComputeScore(records)})
}
