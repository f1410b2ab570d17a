package handler

import (
	"errors"
	"net/http"
	"time"

	"jobboard-service/internal/library"
	"jobboard-service/internal/model"
	"jobboard-service/pkg/database"
	"jobboard-service/pkg/jwtutil"
	"jobboard-service/pkg/logger"
	"jobboard-service/pkg/validate"
	"jobboard-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RegisterRequest defines the payload for user registration
type RegisterRequest struct {
	Name                 string `json:"name" validate:"required,max=255"`
	Email                string `json:"email" validate:"required,email,max=255"`
	Username             string `json:"username" validate:"required,max=255"`
	Password             string `json:"password" validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

// LoginRequest defines the payload for user login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register creates a new user account and issues a token
func Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RegisterCounter.Inc()

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if err := validate.Struct(&req); err != nil {
		prometheus.RecordAuthError("invalid_registration")
		return validate.BadRequest(c, err)
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		prometheus.RecordAuthError("password_hash_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	user := model.User{
		Name:            req.Name,
		Email:           req.Email,
		Username:        req.Username,
		Password:        string(hashedPassword),
		IsOnboarding:    true,
		OnboardingStage: "welcome",
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	userLib := library.NewUserLibrary(database.GetDB())
	if err := userLib.Create(&user); err != nil {
		if errors.Is(err, library.ErrDuplicate) {
			log.Warn("User already exists", zap.String("email", req.Email), zap.String("username", req.Username))
			prometheus.RecordAuthError("duplicate_user")
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{
				"errors": echo.Map{"email": "The email or username has already been taken."},
			})
		}
		log.Error("Failed to create user", zap.Error(err))
		prometheus.RecordAuthError("user_creation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	// Generate a token for the new user
	token, err := jwtutil.GenerateToken(user.Email, user.Username, user.ID)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	prometheus.IncreaseActiveTokens()
	prometheus.OnboardingUsersGauge.Inc()

	log.Info("User registered", zap.String("email", user.Email), zap.String("username", user.Username))
	return c.JSON(http.StatusCreated, echo.Map{
		"user":    user,
		"token":   token,
		"message": "Registration successful, please verify your email.",
	})
}

// Login authenticates a user and issues a token
func Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if err := validate.Struct(&req); err != nil {
		prometheus.RecordAuthError("invalid_login")
		return validate.BadRequest(c, err)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	userLib := library.NewUserLibrary(database.GetDB())
	user, err := userLib.GetByEmail(req.Email)
	if err != nil {
		log.Warn("User not found", zap.String("email", req.Email))
		prometheus.RecordAuthError("user_not_found")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		log.Warn("Invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := jwtutil.GenerateToken(user.Email, user.Username, user.ID)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	prometheus.IncreaseActiveTokens()

	log.Info("User logged in", zap.String("email", user.Email))
	return c.JSON(http.StatusOK, echo.Map{
		"user":    user,
		"token":   token,
		"message": "User logged in successfully",
	})
}

// GetAuthenticatedUser returns the current user's record
func GetAuthenticatedUser(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthenticated"})
	}
	return c.JSON(http.StatusOK, user)
}

// Logout ends the current session. Tokens are stateless, so revocation is
// the client discarding its copy; the endpoint keeps the original contract.
func Logout(c echo.Context) error {
	log := logger.FromContext(c)

	if _, ok := currentUserID(c); !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthenticated"})
	}

	prometheus.DecreaseActiveTokens()
	log.Info("User logged out")
	return c.JSON(http.StatusOK, echo.Map{"message": "User logged out successfully"})
}

// LogoutAll ends every session for the current user
func LogoutAll(c echo.Context) error {
	log := logger.FromContext(c)

	if _, ok := currentUserID(c); !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthenticated"})
	}

	prometheus.DecreaseActiveTokens()
	log.Info("All user tokens revoked")
	return c.JSON(http.StatusOK, echo.Map{"message": "All user tokens revoked successfully"})
}
