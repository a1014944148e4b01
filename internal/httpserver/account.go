package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/hr_notify/internal/logging"
	"github.com/Skotchmaster/hr_notify/internal/middleware/auth"
	"github.com/Skotchmaster/hr_notify/internal/service"
	"github.com/Skotchmaster/hr_notify/internal/transport"
	"github.com/Skotchmaster/hr_notify/internal/validation"
)

type AccountHTTP struct {
	Svc *service.AccountService
}

func (h *AccountHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account_register")

	var req transport.RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	err := h.Svc.Register(ctx, validation.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, transport.Success)
}

func (h *AccountHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account_login")

	var req transport.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, validation.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, transport.LoginResponse{
		Success: true,
		Token:   "Bearer " + res.Token,
	})
}

func (h *AccountHTTP) Current(c echo.Context) error {
	caller, ok := auth.AccountFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	account, err := h.Svc.CurrentUser(c.Request().Context(), caller.ID)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, transport.NewProfile(account))
}

func (h *AccountHTTP) List(c echo.Context) error {
	caller, ok := auth.AccountFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	accounts, err := h.Svc.ListAccounts(c.Request().Context(), caller)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, transport.NewAccountSummaries(accounts))
}

func (h *AccountHTTP) Activate(c echo.Context) error {
	if err := h.Svc.Activate(c.Request().Context(), c.Param("token")); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, transport.Success)
}

func (h *AccountHTTP) ResendActivation(c echo.Context) error {
	ctx := c.Request().Context()

	var req transport.ResendActivationRequest
	if err := bindJSON(c, &req); err != nil {
		logging.FromContext(ctx).Warn("resend_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.ResendActivation(ctx, req.Email); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, transport.Success)
}

// writeServiceError maps service errors onto the fixed response bodies.
// Operation failures keep the 404 the web client already handles.
func writeServiceError(c echo.Context, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, verr.Errors)
	case errors.Is(err, service.ErrEmailExists):
		return c.JSON(http.StatusBadRequest, transport.EmailExists)
	case errors.Is(err, service.ErrEmailNotFound):
		return c.JSON(http.StatusNotFound, transport.EmailNotFound)
	case errors.Is(err, service.ErrPasswordIncorrect):
		return c.JSON(http.StatusNotFound, transport.PwdIncorrect)
	case errors.Is(err, service.ErrNotActive):
		return c.JSON(http.StatusNotFound, transport.NotActive)
	case errors.Is(err, service.ErrAccountNotFound):
		return c.JSON(http.StatusNotFound, transport.UserNotFound)
	case errors.Is(err, service.ErrNotStaff):
		return c.JSON(http.StatusUnauthorized, transport.Unauthorized)
	case errors.Is(err, service.ErrActivationFailed):
		return c.JSON(http.StatusNotFound, transport.ActivationFail)
	case errors.Is(err, service.ErrAlreadyActive):
		return c.JSON(http.StatusNotFound, transport.IsActive)
	case errors.Is(err, service.ErrOperationFailed):
		return c.JSON(http.StatusNotFound, transport.NotSuccess)
	default:
		return err
	}
}

// bindJSON decodes the body as JSON whatever Content-Type the client sent.
func bindJSON(c echo.Context, v any) error {
	c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return new(echo.DefaultBinder).BindBody(c, v)
}
