package uploads

import (
	"bufio"
	"context"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bryanwahyu/udyamsakhi/internal/apperr"
	"github.com/bryanwahyu/udyamsakhi/internal/domain/storage"
	"github.com/bryanwahyu/udyamsakhi/internal/logger"
)

type Service struct {
	Store        storage.ObjectStore
	MaxBytes     int64
	AllowedTypes []string
}

// File is one uploaded part as received from the client.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Upload validates size and type and stores the file under
// <userID>/<uuid><ext>.
func (s *Service) Upload(ctx context.Context, userID string, f File) (storage.Object, error) {
	const op = "uploads.Upload"
	if f.Size <= 0 {
		return storage.Object{}, apperr.Validation(op, "file is empty")
	}
	if f.Size > s.MaxBytes {
		return storage.Object{}, apperr.Validationf(op, "file too large (max %d bytes)", s.MaxBytes)
	}

	// sniff the real type; the declared one is used only when the bytes say
	// nothing (octet-stream). Sniffed text never takes the declared type.
	br := bufio.NewReaderSize(f.Body, 512)
	head, err := br.Peek(512)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return storage.Object{}, apperr.Wrap(apperr.KindValidation, op, "unreadable file", err)
	}
	ctype := mediaType(http.DetectContentType(head))
	if ctype == "application/octet-stream" {
		ctype = mediaType(f.ContentType)
	}
	if !s.allowed(ctype) {
		return storage.Object{}, apperr.Validationf(op, "file type %q not allowed", ctype)
	}

	key := userID + "/" + uuid.NewString() + extension(f.Name, ctype)
	obj, err := s.Store.Put(ctx, key, br, f.Size, ctype)
	if err != nil {
		return storage.Object{}, apperr.Wrap(apperr.KindInternal, op, "upload failed", err)
	}
	logger.FromContext(ctx).Info("file uploaded",
		zap.String("key", obj.Key),
		zap.Int64("size", obj.Size),
		zap.String("content_type", ctype),
	)
	return obj, nil
}

func (s *Service) allowed(ctype string) bool {
	for _, t := range s.AllowedTypes {
		if strings.EqualFold(t, ctype) {
			return true
		}
	}
	return false
}

func mediaType(v string) string {
	mt, _, err := mime.ParseMediaType(v)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(v))
	}
	return mt
}

// extension keeps the client's extension when it agrees with the type,
// otherwise picks a canonical one.
func extension(name, ctype string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext != "" && mediaType(mime.TypeByExtension(ext)) == ctype {
		return ext
	}
	switch ctype {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "application/pdf":
		return ".pdf"
	}
	if exts, _ := mime.ExtensionsByType(ctype); len(exts) > 0 {
		return exts[0]
	}
	return ""
}
