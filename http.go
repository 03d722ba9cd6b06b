package credit

import (
	stderrors "errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

// LocalsUserKey is the fiber Locals key the middleware stores the resolved
// user under.
const LocalsUserKey = "user"

// AuthScheme is the expected Authorization header scheme.
const AuthScheme = "Bearer"

// ErrorResponse is the uniform JSON error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Message  string            `json:"message"`
	TextCode string            `json:"text_code,omitempty"`
	Fields   map[string]string `json:"fields,omitempty"`
}

// ExtractBearerToken pulls the raw token from the Authorization header.
// A missing header and a wrong scheme both read as "no credentials".
func ExtractBearerToken(c *fiber.Ctx) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", ErrInvalidToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], AuthScheme) || parts[1] == "" {
		return "", ErrInvalidToken
	}

	return parts[1], nil
}

// Protected resolves the bearer token into a user and stores it in Locals
// and in the request context before calling the next handler. Failures reach
// the app error handler as 401s.
func Protected(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := ExtractBearerToken(c)
		if err != nil {
			return err
		}

		user, err := auth.Authenticate(c.UserContext(), raw)
		if err != nil {
			return err
		}

		c.Locals(LocalsUserKey, user)
		c.SetUserContext(WithContext(c.UserContext(), user))

		return c.Next()
	}
}

// AdminOnly is Protected plus the admin guard. A valid non-admin token fails
// with 403, observably distinct from the 401 an invalid token produces.
func AdminOnly(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := ExtractBearerToken(c)
		if err != nil {
			return err
		}

		user, err := auth.AuthenticateAdmin(c.UserContext(), raw)
		if err != nil {
			return err
		}

		c.Locals(LocalsUserKey, user)
		c.SetUserContext(WithContext(c.UserContext(), user))

		return c.Next()
	}
}

// UserFromFiber returns the user the middleware resolved for this request.
func UserFromFiber(c *fiber.Ctx) (*User, error) {
	user, ok := c.Locals(LocalsUserKey).(*User)
	if !ok || user == nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}

// NewErrorHandler maps rich errors onto HTTP statuses and the uniform JSON
// body. Internal errors are logged with their metadata but surface as a
// generic message: callers never see internals.
func NewErrorHandler(logger Logger) fiber.ErrorHandler {
	if logger == nil {
		logger = defLogger{}
	}

	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if stderrors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(ErrorResponse{
				Error: ErrorBody{Message: fiberErr.Message},
			})
		}

		var richErr *errors.Error
		if !errors.As(err, &richErr) {
			richErr = errors.Wrap(err, errors.CategoryInternal, "an unexpected server error occurred").
				WithCode(errors.CodeInternal)
		}

		status := richErr.Code
		if status == 0 {
			status = statusForCategory(richErr.Category)
		}

		if richErr.Category == errors.CategoryInternal || richErr.Category == errors.CategoryOperation {
			logger.Error(
				"request failed",
				"error", richErr.Message,
				"category", richErr.Category,
				"details", print.MaybePrettyJSON(richErr.Metadata),
			)
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
				Error: ErrorBody{Message: "internal server error"},
			})
		}

		body := ErrorBody{
			Message:  richErr.Message,
			TextCode: richErr.TextCode,
		}

		if fields, ok := richErr.Metadata["fields"].(map[string]string); ok {
			body.Fields = fields
		}

		return c.Status(status).JSON(ErrorResponse{Error: body})
	}
}

func statusForCategory(category errors.Category) int {
	switch category {
	case errors.CategoryAuth:
		return fiber.StatusUnauthorized
	case errors.CategoryAuthz:
		return fiber.StatusForbidden
	case errors.CategoryValidation, errors.CategoryBadInput:
		return fiber.StatusBadRequest
	case errors.CategoryConflict:
		return fiber.StatusConflict
	case errors.CategoryNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
