package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/models"
	"storefront/internal/store"
)

type createUserRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"omitempty,oneof=user admin blocked"`
}

type updateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user admin blocked"`
}

func ListUsers(users UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/user"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		list, err := users.List(ctx)
		if err != nil {
			respondInternalError(c, route, "Internal server error", err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// CreateUser lets an admin add an account with any role.
func CreateUser(users UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/admin/user"
		defer handlePanic(c, route)

		var req createUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		role := models.RoleUser
		if req.Role != "" {
			role = models.Role(req.Role)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), passwordCost)
		if err != nil {
			respondInternalError(c, route, "password hash failed", err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		created, err := users.Create(ctx, models.User{
			Name:         strings.TrimSpace(req.Name),
			Email:        req.Email,
			PasswordHash: string(hash),
			Role:         role,
		})
		if errors.Is(err, store.ErrDuplicate) {
			respondWithError(c, http.StatusConflict, route, "User with this email already exists")
			return
		}
		if err != nil {
			respondInternalError(c, route, "An unexpected error occurred", err)
			return
		}

		log.Printf("[USER] [INFO] %s created %s with role %s", adminEmail(c), created.Email, created.Role)
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "User created successfully",
			"userId":  created.ID.Hex(),
		})
	}
}

func UpdateUserRole(users UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/admin/user/:id"
		defer handlePanic(c, route)

		id, ok := parseObjectIDParam(c, "id")
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "Invalid user ID format")
			return
		}

		var req updateRoleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		err := users.UpdateRole(ctx, id, models.Role(req.Role))
		switch {
		case errors.Is(err, store.ErrInvalidRole):
			respondWithError(c, http.StatusBadRequest, route, "Invalid role")
			return
		case errors.Is(err, store.ErrNotFound):
			respondWithError(c, http.StatusNotFound, route, "User not found")
			return
		case err != nil:
			respondInternalError(c, route, "An unexpected error occurred", err)
			return
		}

		log.Printf("[USER] [INFO] %s set role of %s to %s", adminEmail(c), id.Hex(), req.Role)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "User role updated successfully",
			"userId":  id.Hex(),
			"newRole": req.Role,
		})
	}
}

func DeleteUser(users UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/admin/user/:id"
		defer handlePanic(c, route)

		id, ok := parseObjectIDParam(c, "id")
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "Invalid user ID format")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		err := users.Delete(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, route, "User not found")
			return
		}
		if err != nil {
			respondInternalError(c, route, "An unexpected error occurred", err)
			return
		}

		log.Printf("[USER] [INFO] %s deleted user %s", adminEmail(c), id.Hex())
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "User deleted successfully",
			"userId":  id.Hex(),
		})
	}
}
