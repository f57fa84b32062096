package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"storefront/internal/models"
	"storefront/internal/store"
)

// websiteInfoRequest binds from JSON or from a multipart form. In the
// multipart case logo and favicon may be sent as files instead of URLs, so
// the form binder skips them and brandingFromForm fills them in.
type websiteInfoRequest struct {
	Title        string   `json:"title" form:"title" binding:"required"`
	Description  string   `json:"description" form:"description" binding:"required"`
	Keywords     []string `json:"keywords" form:"keywords" binding:"required,min=1"`
	Favicon      string   `json:"favicon" form:"-" binding:"omitempty,url|startswith=/"`
	Logo         string   `json:"logo" form:"-"`
	FooterName   string   `json:"footerName" form:"footerName" binding:"required"`
	ContactEmail string   `json:"contactEmail" form:"contactEmail" binding:"required,email"`
	PhoneNumber  string   `json:"phoneNumber" form:"phoneNumber" binding:"required"`
	Address      string   `json:"address" form:"address" binding:"required"`
}

func GetWebsiteInfo(info WebsiteInfoRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/public/website-info"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		current, err := info.Get(ctx)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Website info not found"})
			return
		}
		if err != nil {
			respondInternalError(c, route, "Internal server error", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": current})
	}
}

// SaveWebsiteInfo replaces the site settings document, creating it on first
// save. Uploaded branding files replace the previously uploaded ones.
func SaveWebsiteInfo(info WebsiteInfoRepository, publicDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/admin/website-info"
		defer handlePanic(c, route)

		var req websiteInfoRequest
		if err := c.ShouldBind(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		previous, err := info.Get(ctx)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			respondInternalError(c, route, "Internal server error", err)
			return
		}

		var files []brandingUpload
		if strings.HasPrefix(c.ContentType(), "multipart/") {
			files, err = brandingFromForm(c, &req)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, err.Error())
				return
			}
			if err := binding.Validator.ValidateStruct(&req); err != nil {
				respondValidationError(c, err)
				return
			}
		}

		hasFavicon := strings.TrimSpace(req.Favicon) != ""
		for _, f := range files {
			hasFavicon = hasFavicon || f.field == "favicon"
		}
		if !hasFavicon {
			respondValidationError(c, missingFieldError("favicon"))
			return
		}

		var uploaded []string
		discardUploads := func() {
			for _, url := range uploaded {
				if err := removeBrandingFile(url, publicDir); err != nil {
					log.Println("[SETTINGS] [WARN] upload not cleaned up:", err)
				}
			}
		}
		for _, f := range files {
			url, err := storeBrandingFile(f.file, publicDir)
			if err != nil {
				discardUploads()
				respondWithError(c, http.StatusBadRequest, route, err.Error())
				return
			}
			*f.target = url
			uploaded = append(uploaded, url)
		}

		next := models.WebsiteInfo{
			Title:        strings.TrimSpace(req.Title),
			Description:  strings.TrimSpace(req.Description),
			Keywords:     splitKeywords(req.Keywords),
			Favicon:      strings.TrimSpace(req.Favicon),
			Logo:         strings.TrimSpace(req.Logo),
			FooterName:   strings.TrimSpace(req.FooterName),
			ContactEmail: strings.TrimSpace(req.ContactEmail),
			PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
			Address:      strings.TrimSpace(req.Address),
		}

		if err := info.Save(ctx, next); err != nil {
			discardUploads()
			respondInternalError(c, route, "Internal server error", err)
			return
		}

		for _, old := range []string{previous.Logo, previous.Favicon} {
			if old != "" && old != next.Logo && old != next.Favicon {
				if err := removeBrandingFile(old, publicDir); err != nil {
					log.Println("[SETTINGS] [WARN] old branding file not removed:", err)
				}
			}
		}

		log.Println("[SETTINGS] [INFO] website info saved by", adminEmail(c))
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Website information updated successfully"})
	}
}

// splitKeywords accepts repeated values as well as comma separated ones.
func splitKeywords(values []string) models.StringList {
	out := make(models.StringList, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}
