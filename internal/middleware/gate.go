package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/models"
	"storefront/internal/session"
)

const (
	LoginPath        = "/auth/login"
	UnauthorizedPath = "/unauthorized"

	adminAPIPrefix = "/api/admin"
	adminUIPrefix  = "/admin"

	claimsKey = "claims"
	roleKey   = "role"
)

// Area is the part of the site a request path falls in.
type Area int

const (
	AreaPublic Area = iota
	AreaAdminAPI
	AreaAdminUI
)

// Verdict is the gate's decision for one request.
type Verdict int

const (
	Allow Verdict = iota
	RejectUnauthorized
	RedirectLogin
	RedirectUnauthorized
)

func hasSegmentPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// Classify maps a request path to its area. Matching is by whole path
// segment, so /administrator is public.
func Classify(path string) Area {
	switch {
	case hasSegmentPrefix(path, adminAPIPrefix):
		return AreaAdminAPI
	case hasSegmentPrefix(path, adminUIPrefix):
		return AreaAdminUI
	default:
		return AreaPublic
	}
}

// Decide is the single admin-access rule. role is ignored when
// authenticated is false.
func Decide(path string, role models.Role, authenticated bool) Verdict {
	isAdmin := authenticated && role.IsAdmin()

	switch Classify(path) {
	case AreaAdminAPI:
		if !isAdmin {
			return RejectUnauthorized
		}
	case AreaAdminUI:
		if !authenticated {
			return RedirectLogin
		}
		if !isAdmin {
			return RedirectUnauthorized
		}
	}
	return Allow
}

// SessionResolver turns a raw session token into claims.
type SessionResolver interface {
	Resolve(raw string) (*session.Claims, error)
}

// Gate resolves the session of every request and enforces Decide before any
// route handler runs. Resolution failures count as no session.
func Gate(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		var claims *session.Claims
		if raw := session.TokenFromRequest(c.Request); raw != "" {
			resolved, err := resolver.Resolve(raw)
			if err != nil {
				log.Println("[GATE] [WARN] session rejected:", err)
			} else {
				claims = resolved
			}
		}

		var role models.Role
		if claims != nil {
			role = claims.Role
			c.Set(claimsKey, claims)
			c.Set(roleKey, role)
		}

		path := c.Request.URL.Path
		switch Decide(path, role, claims != nil) {
		case RejectUnauthorized:
			log.Printf("[GATE] [INFO] rejected %s %s role=%q", c.Request.Method, path, role)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		case RedirectLogin:
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		case RedirectUnauthorized:
			c.Redirect(http.StatusFound, UnauthorizedPath)
			c.Abort()
			return
		}

		c.Next()
	}
}

// ClaimsFrom returns the claims the gate stored for this request, if any.
func ClaimsFrom(c *gin.Context) (*session.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*session.Claims)
	return claims, ok
}
