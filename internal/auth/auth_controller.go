package auth

import (
	"net/http"
	"time"

	"github.com/cricboard/cricboard/config"
	"github.com/cricboard/cricboard/internal/middleware"
	"github.com/cricboard/cricboard/pkg/responses"
	"github.com/cricboard/cricboard/pkg/token"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AuthController handles registration, login and token refresh.
type AuthController struct {
	repo      AuthRepository
	appConfig *config.Config
}

// NewAuthController creates a new auth controller
func NewAuthController(repo AuthRepository, appConfig *config.Config) *AuthController {
	return &AuthController{repo: repo, appConfig: appConfig}
}

func hashPassword(p string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(p), 14)
	return string(bytes), err
}

func checkPassword(hash, pass string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pass)) == nil
}

func (ac *AuthController) issueTokens(userID uint) (access, refresh string, err error) {
	access, err = token.GenerateJWT(userID, ac.appConfig.JWT.AccessTokenSecret, ac.appConfig.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		return "", "", err
	}
	refreshExpiryMinutes := ac.appConfig.JWT.RefreshTokenExpiryDays * 24 * 60
	refresh, err = token.GenerateJWT(userID, ac.appConfig.JWT.RefreshTokenSecret, refreshExpiryMinutes)
	if err != nil {
		return "", "", err
	}
	rt := &RefreshToken{
		UserID:    userID,
		Token:     refresh,
		ExpiresAt: time.Now().Add(time.Duration(refreshExpiryMinutes) * time.Minute),
	}
	if err := ac.repo.SaveRefreshToken(rt); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// Register godoc
// @Summary Register a new organizer account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration payload"
// @Success 201 {object} responses.SuccessResponse
// @Router /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	existing, err := ac.repo.GetUserByEmail(req.Email)
	if err != nil {
		responses.InternalServerError(c, "Failed to check existing users")
		return
	}
	if existing != nil {
		responses.Conflict(c, "An account with this email already exists")
		return
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		responses.InternalServerError(c, "Failed to hash password")
		return
	}

	user := &User{Name: req.Name, Email: req.Email, Password: hashed}
	if err := ac.repo.CreateUser(user); err != nil {
		responses.InternalServerError(c, "Failed to create user")
		return
	}

	access, refresh, err := ac.issueTokens(user.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to issue tokens")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Account created", AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         toUserResponse(user),
	})
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login payload"
// @Success 200 {object} responses.SuccessResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	user, err := ac.repo.GetUserByEmail(req.Email)
	if err != nil {
		responses.InternalServerError(c, "Failed to look up user")
		return
	}
	if user == nil || !checkPassword(user.Password, req.Password) {
		responses.Unauthorized(c, "Invalid email or password")
		return
	}

	access, refresh, err := ac.issueTokens(user.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to issue tokens")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Logged in", AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         toUserResponse(user),
	})
}

// RefreshToken godoc
// @Summary Exchange a refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RefreshTokenRequest true "Refresh payload"
// @Success 200 {object} responses.SuccessResponse
// @Router /auth/refresh-token [post]
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	claims, err := token.ValidateJWT(req.RefreshToken, ac.appConfig.JWT.RefreshTokenSecret)
	if err != nil {
		responses.Unauthorized(c, "Invalid refresh token: "+err.Error())
		return
	}

	stored, err := ac.repo.GetRefreshToken(req.RefreshToken)
	if err != nil {
		responses.InternalServerError(c, "Failed to look up refresh token")
		return
	}
	if stored == nil {
		responses.Unauthorized(c, "Refresh token is revoked or expired")
		return
	}

	// Rotate: revoke the presented token before issuing a new pair.
	if err := ac.repo.RevokeRefreshToken(req.RefreshToken); err != nil {
		responses.InternalServerError(c, "Failed to rotate refresh token")
		return
	}

	user, err := ac.repo.GetUserByID(claims.UserID)
	if err != nil || user == nil {
		responses.Unauthorized(c, "User no longer exists")
		return
	}

	access, refresh, err := ac.issueTokens(user.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to issue tokens")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Token refreshed", AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         toUserResponse(user),
	})
}

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.SuccessResponse
// @Router /auth/me [get]
func (ac *AuthController) GetProfile(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	user, err := ac.repo.GetUserByID(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load profile")
		return
	}
	if user == nil {
		responses.NotFound(c, "User")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", toUserResponse(user))
}

// Logout godoc
// @Summary Revoke all refresh tokens for the authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.SuccessResponse
// @Router /auth/logout [post]
func (ac *AuthController) Logout(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	if err := ac.repo.RevokeUserRefreshTokens(userID); err != nil {
		responses.InternalServerError(c, "Failed to revoke tokens")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Logged out", nil)
}
