// Package uploads stores the admin-managed site images (hero, about,
// gallery) and produces a thumbnail for each.
package uploads

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"pulsefit/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
)

const uploadDir = "./static/siteimg"

func ensureDirExists(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

func processImageUpload(file *multipart.FileHeader) (string, string, error) {
	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open image file: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src)
	if err != nil {
		return "", "", fmt.Errorf("failed to decode image: %w", err)
	}

	uniqueID := utils.GetUUID()
	fileName := uniqueID + ".jpg"

	originalPath := filepath.Join(uploadDir, fileName)
	thumbDir := filepath.Join(uploadDir, "thumb")
	thumbnailPath := filepath.Join(thumbDir, fileName)

	if err := ensureDirExists(uploadDir); err != nil {
		return "", "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := ensureDirExists(thumbDir); err != nil {
		return "", "", fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	if err := imaging.Save(img, originalPath); err != nil {
		return "", "", fmt.Errorf("failed to save original image: %w", err)
	}

	thumbImg := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumbImg, thumbnailPath); err != nil {
		return "", "", fmt.Errorf("failed to save thumbnail: %w", err)
	}

	return "/siteimg/" + fileName, "/siteimg/thumb/" + fileName, nil
}

// UploadSiteImage accepts a multipart "image" field and returns the
// stored paths; the admin then references them from site settings.
func UploadSiteImage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	files := r.MultipartForm.File["image"]
	if len(files) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "missing image")
		return
	}

	path, thumb, err := processImageUpload(files[0])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"path":      path,
		"thumbnail": thumb,
	})
}
