package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/gega19/barber-app-backoffice-sub001/internal/httperr"
	"github.com/gega19/barber-app-backoffice-sub001/internal/httpresp"
	"github.com/gega19/barber-app-backoffice-sub001/internal/storage"
)

const maxUploadBytes = 10 << 20

type UploadHandler struct {
	uploader *storage.Uploader
}

func NewUploadHandler(uploader *storage.Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

func (h *UploadHandler) PaymentProof(c *gin.Context) {
	h.upload(c, "payment-proofs")
}

func (h *UploadHandler) Avatar(c *gin.Context) {
	h.upload(c, "avatars")
}

func (h *UploadHandler) PromotionImage(c *gin.Context) {
	h.upload(c, "promotions")
}

func (h *UploadHandler) upload(c *gin.Context, folder string) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Attach the image under the 'file' field.")
		return
	}

	if fileHeader.Size > maxUploadBytes {
		httperr.BadRequest(c, "file_too_large", "Images are limited to 10MB.")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "upload_failed", "Could not read the upload.")
		return
	}
	defer f.Close()

	encoded, err := storage.ReencodeWebP(f)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "The file is not a supported image.")
		return
	}

	url, err := h.uploader.Upload(c.Request.Context(), folder, "image/webp", encoded)
	if err != nil {
		httperr.Internal(c, "upload_failed", "Could not store the image.")
		return
	}

	httpresp.Created(c, gin.H{"url": url})
}
