package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	publicURLPrefix = "/public/"
	brandingDir     = "uploads/branding"
	maxBrandingSize = 2 << 20
)

var brandingExtensions = map[string]struct{}{
	".ico":  {},
	".png":  {},
	".svg":  {},
	".jpg":  {},
	".jpeg": {},
	".webp": {},
}

type brandingUpload struct {
	field  string
	file   *multipart.FileHeader
	target *string
}

// brandingFromForm collects the logo and favicon parts of a multipart form.
// A field sent as a file is returned for storing; a field sent as text is
// copied into req as a URL.
func brandingFromForm(c *gin.Context, req *websiteInfoRequest) ([]brandingUpload, error) {
	var files []brandingUpload
	for _, field := range []struct {
		name   string
		target *string
	}{{"logo", &req.Logo}, {"favicon", &req.Favicon}} {
		file, err := c.FormFile(field.name)
		switch {
		case err == nil:
			files = append(files, brandingUpload{field: field.name, file: file, target: field.target})
		case errors.Is(err, http.ErrMissingFile):
			*field.target = c.PostForm(field.name)
		default:
			return nil, err
		}
	}
	return files, nil
}

func storeBrandingFile(file *multipart.FileHeader, publicDir string) (string, error) {
	extension := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := brandingExtensions[extension]; !ok {
		return "", fmt.Errorf("unsupported image type: %q", extension)
	}
	if file.Size > maxBrandingSize {
		return "", fmt.Errorf("image file too large (max 2MB)")
	}

	dir := filepath.Join(publicDir, filepath.FromSlash(brandingDir))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("[UPLOAD] failed to create directory %s: %v", dir, err)
		return "", err
	}

	filename := primitive.NewObjectID().Hex() + extension
	fullPath := filepath.Join(dir, filename)

	in, err := file.Open()
	if err != nil {
		return "", err
	}
	defer in.Close()

	out, err := os.Create(fullPath)
	if err != nil {
		log.Printf("[UPLOAD] failed to create file %s: %v", fullPath, err)
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		log.Printf("[UPLOAD] failed to save file %s: %v", fullPath, err)
		out.Close()
		_ = os.Remove(fullPath)
		return "", err
	}

	log.Printf("[UPLOAD] stored %s as %s", file.Filename, fullPath)
	return publicURLPrefix + brandingDir + "/" + filename, nil
}

// removeBrandingFile deletes a file previously written by storeBrandingFile.
// URLs outside the branding upload directory are left alone.
func removeBrandingFile(publicURL, publicDir string) error {
	trimmed := strings.TrimSpace(publicURL)
	if !strings.HasPrefix(trimmed, publicURLPrefix) {
		return nil
	}

	cleanRel := strings.TrimPrefix(path.Clean("/"+strings.TrimPrefix(trimmed, publicURLPrefix)), "/")
	if !strings.HasPrefix(cleanRel, brandingDir+"/") {
		return fmt.Errorf("refusing to delete non-upload path: %s", publicURL)
	}

	cleanBase := filepath.Clean(publicDir)
	target := filepath.Clean(filepath.Join(cleanBase, filepath.FromSlash(cleanRel)))
	if !strings.HasPrefix(target, cleanBase+string(os.PathSeparator)) {
		return fmt.Errorf("refusing to delete path outside public root: %s", publicURL)
	}

	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
