package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prodmanag/backend/internal/events"
	"github.com/prodmanag/backend/internal/logging"
	"github.com/prodmanag/backend/internal/models"
	"github.com/prodmanag/backend/internal/repo"
	"github.com/prodmanag/backend/internal/service"
	"github.com/prodmanag/backend/internal/transport"
)

type AuthHTTP struct {
	Svc      *service.AuthService
	Producer events.Publisher
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "validation failed", "error", err)
		return err
	}

	user := models.User{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}
	token, err := h.Svc.Register(ctx, &user, req.Password)
	if err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			l.Warn("register_error", "status", 400, "reason", "user already exists")
			return echo.NewHTTPError(http.StatusBadRequest, "user already exists")
		}
		l.Error("register_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "server error")
	}

	publish(c, h.Producer, events.TopicUserEvents, user.ID, map[string]any{
		"type":   "user_registered",
		"userID": user.ID,
		"email":  user.Email,
	})

	l.Info("register_success", "userID", user.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"msg":   "User registration successful",
		"token": token,
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "validation failed", "error", err)
		return err
	}

	token, user, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repo.ErrInvalidCredentials) {
			l.Warn("login_failed", "status", 400, "reason", "invalid credentials")
			return echo.NewHTTPError(http.StatusBadRequest, "invalid credentials")
		}
		l.Error("login_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "server error")
	}

	publish(c, h.Producer, events.TopicUserEvents, user.ID, map[string]any{
		"type":   "user_logged_in",
		"userID": user.ID,
		"email":  user.Email,
	})

	l.Info("login_success", "userID", user.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"msg":   "Login successful",
		"token": token,
	})
}
