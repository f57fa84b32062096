package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/session"
	"storefront/internal/store"
)

const passwordCost = 12

type RegisterRequest struct {
	Name        string `json:"name" binding:"required,min=2"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Password    string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a user-role account. Roles are only ever raised by an admin.
func Register(users UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/auth/register"
		defer handlePanic(c, route)

		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), passwordCost)
		if err != nil {
			log.Println("[AUTH] [ERROR] register password hash failed:", err)
			respondInternalError(c, route, "password hash failed", err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		created, err := users.Create(ctx, models.User{
			Name:         strings.TrimSpace(req.Name),
			Email:        req.Email,
			PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
			PasswordHash: string(hash),
			Role:         models.RoleUser,
		})
		if errors.Is(err, store.ErrDuplicate) {
			log.Println("[AUTH] [ERROR] register email exists:", req.Email)
			respondWithError(c, http.StatusBadRequest, route, "User with this email already exists")
			return
		}
		if err != nil {
			respondInternalError(c, route, "An error occurred during registration", err)
			return
		}

		log.Println("[AUTH] [INFO] user registered:", created.Email)
		c.JSON(http.StatusCreated, gin.H{
			"message": "User registered successfully",
			"userId":  created.ID.Hex(),
		})
	}
}

func Login(users UserRepository, sessions SessionIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/auth/login"
		defer handlePanic(c, route)

		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		user, err := users.FindByEmail(ctx, req.Email)
		if errors.Is(err, store.ErrNotFound) {
			log.Println("[AUTH] [ERROR] login unknown email")
			respondWithError(c, http.StatusUnauthorized, route, "invalid credentials")
			return
		}
		if err != nil {
			respondInternalError(c, route, "db error", err)
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			log.Println("[AUTH] [ERROR] login invalid credentials for user")
			respondWithError(c, http.StatusUnauthorized, route, "invalid credentials")
			return
		}

		if user.Role == models.RoleBlocked {
			log.Println("[AUTH] [ERROR] blocked account login:", user.Email)
			respondWithError(c, http.StatusForbidden, route, "account is blocked")
			return
		}

		token, expires, err := sessions.Issue(user)
		if err != nil {
			log.Println("[AUTH] [ERROR] login token generation failed:", err)
			respondInternalError(c, route, "token generation failed", err)
			return
		}

		setSessionCookie(c, token, int(time.Until(expires).Seconds()))
		log.Println("[AUTH] [INFO] user login succeeded:", user.Email)
		c.JSON(http.StatusOK, gin.H{
			"token":     token,
			"expiresAt": expires,
			"user": gin.H{
				"id":    user.ID.Hex(),
				"name":  user.Name,
				"email": user.Email,
				"role":  user.Role,
			},
		})
	}
}

func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		setSessionCookie(c, "", -1)
		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
	}
}

// CurrentSession echoes the verified claims of the caller.
func CurrentSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.ClaimsFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		body := gin.H{
			"user": gin.H{
				"id":    claims.UserID,
				"name":  claims.Name,
				"email": claims.Email,
				"role":  claims.Role,
			},
		}
		if claims.ExpiresAt != nil {
			body["expiresAt"] = claims.ExpiresAt.Time
		}
		c.JSON(http.StatusOK, body)
	}
}

func setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, value, maxAge, "/", "", config.AppEnv.IsProduction(), true)
}

func adminEmail(c *gin.Context) string {
	if claims, ok := middleware.ClaimsFrom(c); ok {
		return claims.Email
	}
	return "unknown"
}
