package httpserver

import (
	"errors"
	"net/http"

	"github.com/bryanwahyu/udyamsakhi/internal/application/uploads"
	"github.com/bryanwahyu/udyamsakhi/internal/apperr"
)

// multipart overhead on top of the file itself
const multipartSlack = 64 << 10

func (r *Router) handleUpload(w http.ResponseWriter, req *http.Request) error {
	const op = "http.upload"
	limit := r.opt.MaxUploadBytes
	if limit <= 0 {
		limit = 5 << 20
	}
	req.Body = http.MaxBytesReader(w, req.Body, limit+multipartSlack)
	if err := req.ParseMultipartForm(limit); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return apperr.Validationf(op, "file too large (max %d bytes)", limit)
		}
		return apperr.Wrap(apperr.KindValidation, op, "expected multipart form with a file field", err)
	}
	defer func() { _ = req.MultipartForm.RemoveAll() }()

	f, hdr, err := req.FormFile("file")
	if err != nil {
		return apperr.Wrap(apperr.KindValidation, op, "missing file field", err)
	}
	defer f.Close()

	obj, err := r.svc.Uploads.Upload(req.Context(), userID(req), uploads.File{
		Name:        hdr.Filename,
		ContentType: hdr.Header.Get("Content-Type"),
		Size:        hdr.Size,
		Body:        f,
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, obj)
	return nil
}
