package handlers

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/config"
	"backend/internal/models"
)

const (
	maxUploadFiles = 10
	maxUploadSize  = 5 << 20
)

// uploadedImageRef builds the canonical image reference for a stored upload.
// Uploads live under the public root, which the router serves at /public, so
// the URL carries that prefix; the relative path is kept in publicId for
// later cleanup.
func uploadedImageRef(baseURL, relPath, filename string) models.Image {
	return models.Image{
		URL:      strings.TrimRight(baseURL, "/") + "/public/" + relPath,
		Alt:      strings.TrimSuffix(filename, filepath.Ext(filename)),
		PublicID: relPath,
	}
}

/*
POST /products/upload
- multipart field "images", up to 10 files, 5MB each
- responds with image refs ready to be attached to a product
*/
func UploadProductImages() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /products/upload"
		defer handlePanic(c, route)

		form, err := c.MultipartForm()
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "Invalid multipart form")
			return
		}

		files := form.File["images"]
		if len(files) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "No images uploaded")
			return
		}
		if len(files) > maxUploadFiles {
			respondWithError(c, http.StatusBadRequest, route, fmt.Sprintf("Too many files (max %d)", maxUploadFiles))
			return
		}

		publicRoot := config.AppEnv.PublicDir

		images := make([]models.Image, 0, len(files))
		saved := make([]string, 0, len(files))
		for _, file := range files {
			relPath, err := saveUploadedImage(publicRoot, file)
			if err != nil {
				// roll back files already written for this request
				for _, rel := range saved {
					if delErr := safeDeleteUpload(publicRoot, rel); delErr != nil {
						log.Println("[UPLOAD] [WARN] rollback failed:", delErr)
					}
				}
				respondWithError(c, http.StatusBadRequest, route, err.Error())
				return
			}
			saved = append(saved, relPath)
			images = append(images, uploadedImageRef(config.AppEnv.PublicBaseURL, relPath, file.Filename))
		}

		c.JSON(http.StatusCreated, gin.H{"images": images})
	}
}

func saveUploadedImage(publicRoot string, file *multipart.FileHeader) (string, error) {
	extension := strings.ToLower(filepath.Ext(file.Filename))
	if extension == "" {
		return "", fmt.Errorf("image file extension is required")
	}
	allowedExtensions := map[string]struct{}{
		".jpg":  {},
		".jpeg": {},
		".png":  {},
		".webp": {},
	}
	if _, ok := allowedExtensions[extension]; !ok {
		return "", fmt.Errorf("unsupported image type: %s", extension)
	}
	if file.Size > maxUploadSize {
		return "", fmt.Errorf("image file too large (max 5MB)")
	}

	filename := primitive.NewObjectID().Hex() + extension

	dir := filepath.Join(publicRoot, "uploads", "products")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("[UPLOAD] saveUploadedImage: failed to create directory %s: %v", dir, err)
		return "", err
	}

	fullPath := filepath.Join(dir, filename)

	out, err := os.Create(fullPath)
	if err != nil {
		log.Printf("[UPLOAD] saveUploadedImage: failed to create file %s: %v", fullPath, err)
		return "", err
	}
	defer out.Close()

	in, err := file.Open()
	if err != nil {
		log.Printf("[UPLOAD] saveUploadedImage: failed to open upload %s: %v", file.Filename, err)
		return "", err
	}
	defer in.Close()

	if _, err := io.Copy(out, in); err != nil {
		log.Printf("[UPLOAD] saveUploadedImage: failed to save file %s: %v", fullPath, err)
		return "", err
	}

	return filepath.ToSlash(filepath.Join("uploads", "products", filename)), nil
}
