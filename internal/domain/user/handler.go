package user

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicore/clinicore/internal/platform/auth"
	"github.com/clinicore/clinicore/pkg/pagination"
)

type Handler struct {
	svc          *Service
	secret       []byte
	cookieSecure bool
}

func NewHandler(svc *Service, secret []byte, cookieSecure bool) *Handler {
	return &Handler{svc: svc, secret: secret, cookieSecure: cookieSecure}
}

// RegisterRoutes mounts the account endpoints. Signup and login are public;
// everything else sits behind the session gate.
func (h *Handler) RegisterRoutes(api *echo.Group, gate echo.MiddlewareFunc) {
	api.POST("/user/signup", h.Signup)
	api.POST("/user/login", h.Login)

	g := api.Group("/user", gate)
	g.POST("/logout", h.Logout)
	g.GET("/profile", h.Profile)
	g.GET("/doctors", h.ListDoctors)
	g.GET("/:id", h.GetByID)
}

type signupRequest struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *Handler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	u, err := h.svc.Signup(c.Request().Context(), req.Fullname, req.Email, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return echo.NewHTTPError(http.StatusConflict, "person already exists")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := auth.IssueToken(h.secret, u.ID, u.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to issue session")
	}
	auth.SetSessionCookie(c, token, h.cookieSecure)

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "user registered successfully",
		"user":    u.Summarize(),
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	u, err := h.svc.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "server error")
	}

	token, err := auth.IssueToken(h.secret, u.ID, u.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to issue session")
	}
	auth.SetSessionCookie(c, token, h.cookieSecure)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "login successful",
		"user":    u.Summarize(),
	})
}

func (h *Handler) Logout(c echo.Context) error {
	auth.ClearSessionCookie(c, h.cookieSecure)
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out successfully"})
}

// Profile returns the identity the session gate attached to the request.
func (h *Handler) Profile(c echo.Context) error {
	identity := auth.IdentityFromContext(c.Request().Context())
	if identity == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"user": identity})
}

func (h *Handler) ListDoctors(c echo.Context) error {
	pg := pagination.FromContext(c)
	doctors, total, err := h.svc.ListDoctors(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	summaries := make([]Summary, 0, len(doctors))
	for _, d := range doctors {
		summaries = append(summaries, d.Summarize())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(summaries, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetByID(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	u, err := h.svc.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"user": u})
}
