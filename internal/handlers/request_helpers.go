package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/config"
	"storefront/internal/middleware"
)

const requestTimeout = 5 * time.Second

// Pinger reports whether the database can be reached.
type Pinger interface {
	Ping(ctx context.Context) error
}

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		log.Printf("[%s] panic recovered: %v (request %s)", route, r, middleware.RequestIDFrom(c))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func ensureDBConnection(ctx context.Context, db Pinger) error {
	return db.Ping(ctx)
}

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	log.Printf("[%s] returning error %d: %s (request %s)", route, status, message, middleware.RequestIDFrom(c))
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// respondInternalError logs err and answers 500. The underlying error is only
// echoed back outside production.
func respondInternalError(c *gin.Context, route string, message string, err error) {
	log.Printf("[%s] returning error %d: %s: %v (request %s)", route, http.StatusInternalServerError, message, err, middleware.RequestIDFrom(c))
	body := gin.H{"error": message}
	if !config.AppEnv.IsProduction() {
		body["details"] = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, body)
}

func parseObjectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
