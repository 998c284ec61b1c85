package handlers

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/secondplate/restaurant-service/internal/domain"
	"github.com/secondplate/restaurant-service/internal/upload"
	apperrors "github.com/secondplate/restaurant-service/pkg/util"
)

// Multipart field names for restaurant images. Fixed contract with the
// frontend; absence of either part is valid.
const (
	fieldLogoImage = "logoImage"
	fieldMapImage  = "mapImage"
)

var imageFields = []struct {
	field string
	kind  domain.AssetKind
}{
	{fieldLogoImage, domain.AssetKindLogo},
	{fieldMapImage, domain.AssetKindMap},
}

// collectImageUploads stages the logoImage/mapImage parts into temp files
// and builds the ordered upload batch. The size limit is enforced here, per
// file, before any remote call happens; oversized parts yield 413 and any
// already-staged temp files are the orchestrator's to clean only once the
// batch is handed over, so stage failures remove them directly.
func collectImageUploads(c *fiber.Ctx, tempDir string, maxBytes int64, folder string) ([]upload.Request, error) {
	var requests []upload.Request

	for _, img := range imageFields {
		fh, err := c.FormFile(img.field)
		if err != nil {
			continue // part absent
		}
		if fh.Size > maxBytes {
			removeStaged(requests)
			return nil, apperrors.NewFileTooLarge(img.field, maxBytes)
		}

		path, err := stageFile(c, fh, tempDir)
		if err != nil {
			removeStaged(requests)
			return nil, fmt.Errorf("stage %s: %w", img.field, err)
		}

		requests = append(requests, upload.Request{
			Kind:        img.kind,
			TempPath:    path,
			Folder:      folder,
			Ext:         filepath.Ext(fh.Filename),
			ContentType: fh.Header.Get("Content-Type"),
		})
	}

	return requests, nil
}

func stageFile(c *fiber.Ctx, fh *multipart.FileHeader, tempDir string) (string, error) {
	path := filepath.Join(tempDir, uuid.NewString()+filepath.Ext(fh.Filename))
	if err := c.SaveFile(fh, path); err != nil {
		return "", err
	}
	return path, nil
}

func removeStaged(requests []upload.Request) {
	for _, req := range requests {
		_ = os.Remove(req.TempPath)
	}
}
