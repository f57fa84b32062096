package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/models"
	"storefront/internal/store"
)

type bankAccountRequest struct {
	Name          string `json:"name" binding:"required"`
	AccountName   string `json:"accountName" binding:"required"`
	AccountNumber string `json:"accountNumber" binding:"required"`
	IBAN          string `json:"iban" binding:"required"`
	PhoneNumber   string `json:"phoneNumber" binding:"required"`
	Instructions  string `json:"instructions"`
}

func ListBankAccounts(accounts BankAccountRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/accounts"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		list, err := accounts.List(ctx)
		if err != nil {
			respondInternalError(c, route, "Failed to fetch bank accounts", err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func CreateBankAccount(accounts BankAccountRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/admin/accounts"
		defer handlePanic(c, route)

		var req bankAccountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		created, err := accounts.Create(ctx, models.BankAccount{
			Name:          strings.TrimSpace(req.Name),
			AccountName:   strings.TrimSpace(req.AccountName),
			AccountNumber: strings.TrimSpace(req.AccountNumber),
			IBAN:          strings.TrimSpace(req.IBAN),
			PhoneNumber:   strings.TrimSpace(req.PhoneNumber),
			Instructions:  strings.TrimSpace(req.Instructions),
		})
		if err != nil {
			respondInternalError(c, route, "Failed to create bank account", err)
			return
		}

		log.Println("[ACCOUNT] [INFO] bank account created:", created.Name)
		c.JSON(http.StatusCreated, created)
	}
}

func DeleteBankAccount(accounts BankAccountRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/admin/accounts/:id"
		defer handlePanic(c, route)

		id, ok := parseObjectIDParam(c, "id")
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "Invalid ID format")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		err := accounts.Delete(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, route, "Account not found")
			return
		}
		if err != nil {
			respondInternalError(c, route, "Failed to delete account", err)
			return
		}

		log.Println("[ACCOUNT] [INFO] bank account deleted:", id.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
	}
}
