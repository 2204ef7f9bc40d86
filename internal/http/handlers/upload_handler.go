package handlers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	applog "technest/internal/log"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

type UploadHandler struct {
	MediaDir string
}

// Image serves POST /api/upload: saves a multipart image under
// MediaDir/<category>/ and returns its public URL.
func (h *UploadHandler) Image(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "missing image file")
	}
	if fh.Size > 5<<20 {
		return fail(c, fiber.StatusBadRequest, "file too large (max 5MB)")
	}
	if !allowedImageTypes[fh.Header.Get("Content-Type")] {
		return fail(c, fiber.StatusBadRequest, "only JPG, PNG and WEBP images are allowed")
	}

	category := c.FormValue("category")
	if category == "" {
		category = "products"
	}
	// Category names come from the client; keep them to a single clean
	// path segment.
	category = filepath.Base(filepath.Clean(category))
	if category == "." || category == ".." || strings.ContainsAny(category, `/\`) {
		return fail(c, fiber.StatusBadRequest, "invalid category")
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	name := fmt.Sprintf("%s%s", uuid.NewString(), ext)

	dir := filepath.Join(h.MediaDir, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		applog.Error(c, "upload.mkdir", err, nil)
		return fail(c, fiber.StatusInternalServerError, "failed to save file")
	}
	if err := c.SaveFile(fh, filepath.Join(dir, name)); err != nil {
		applog.Error(c, "upload.save", err, nil)
		return fail(c, fiber.StatusInternalServerError, "failed to save file")
	}

	url := fmt.Sprintf("/assets/%s/%s", category, name)
	applog.Info(c, "upload.image", map[string]any{"url": url})
	return ok(c, fiber.Map{"url": url})
}
