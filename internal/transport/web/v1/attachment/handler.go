package attachment

import (
	"context"
	"errors"
	"mime"
	"mime/multipart"
	"net/http"
	"path"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/EgorLis/svgicon/internal/domain"
	"github.com/EgorLis/svgicon/internal/transport/web/logx"
	"github.com/EgorLis/svgicon/internal/transport/web/mw"
	v1 "github.com/EgorLis/svgicon/internal/transport/web/v1"
)

// Events — реакция на сохранение вложения (сброс кеша иконок для SVG).
type Events interface {
	OnAttachmentSaved(ctx context.Context, id domain.AttachmentID) (bool, error)
}

type Handler struct {
	Log    *zap.Logger
	Media  domain.MediaStore
	Index  domain.MediaIndex
	Events Events
}

type uploadResponse struct {
	Attachment  domain.Attachment `json:"attachment"`
	Invalidated bool              `json:"invalidated"`
}

// Upload — multipart с полем file. Файл кладётся в медиатеку,
// затем срабатывает событие сохранения вложения.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	const op = "attachment.upload"
	reqID := mw.RequestIDFromCtx(r.Context())

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		logx.Error(h.Log, reqID, op, "parse form", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		logx.Error(h.Log, reqID, op, "missing file", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	defer file.Close()

	name := path.Base(strings.ReplaceAll(header.Filename, `\`, "/"))
	if name == "." || name == "/" {
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	mt := detectMime(header, name)

	res, err := h.Media.Put(r.Context(), file, name, mt)
	if err != nil {
		logx.Error(h.Log, reqID, op, "storage put", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	att, err := h.Index.CreateAttachment(r.Context(), domain.Attachment{
		FileName:   name,
		MIME:       mt,
		StorageKey: res.StorageKey,
		SizeBytes:  res.Size,
		SHA256:     res.SHA256,
	})
	if err != nil {
		logx.Error(h.Log, reqID, op, "create attachment", err)
		_ = h.Media.Delete(r.Context(), res.StorageKey)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}
	att.URL = h.Media.URL(att.StorageKey)

	invalidated, err := h.Events.OnAttachmentSaved(r.Context(), att.ID)
	if err != nil {
		// вложение уже сохранено; кеш доживёт до TTL
		logx.Error(h.Log, reqID, op, "attachment saved hook", err, zap.Int64("attachment_id", att.ID))
	}

	logx.Info(h.Log, reqID, op, "ok",
		zap.Int64("attachment_id", att.ID), zap.String("mime", att.MIME), zap.Bool("invalidated", invalidated))
	v1.WriteOKData(w, r, uploadResponse{Attachment: att, Invalidated: invalidated})
}

// Delete удаляет вложение и файл. Кеш иконок не сбрасывается:
// источник без файла пропускается при разборе.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "attachment.delete"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	att, err := h.Index.DeleteAttachment(r.Context(), id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logx.Error(h.Log, reqID, op, "delete attachment", err, zap.Int64("attachment_id", id))
		}
		v1.WriteDomainError(w, r, err)
		return
	}

	// файл удаляем после записи; если не вышло — останется сиротой в хранилище
	if err := h.Media.Delete(r.Context(), att.StorageKey); err != nil {
		logx.Error(h.Log, reqID, op, "storage delete", err, zap.String("key", att.StorageKey))
	}

	logx.Info(h.Log, reqID, op, "ok", zap.Int64("attachment_id", id))
	v1.WriteOKResponse(w, r, map[string]bool{strconv.FormatInt(id, 10): true})
}

// Content-Type из формы; для .svg без внятного типа — по расширению
func detectMime(h *multipart.FileHeader, name string) string {
	ct := h.Header.Get("Content-Type")
	if mt, _, err := mime.ParseMediaType(ct); err == nil && mt != "application/octet-stream" {
		return mt
	}
	if byExt := mime.TypeByExtension(path.Ext(name)); byExt != "" {
		if mt, _, err := mime.ParseMediaType(byExt); err == nil {
			return mt
		}
	}
	return "application/octet-stream"
}
