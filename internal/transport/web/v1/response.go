package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/EgorLis/svgicon/internal/domain"
	"github.com/EgorLis/svgicon/internal/transport/web/mw"
)

// MapDomainError решает HTTP-статус + error.code/text для конверта
func MapDomainError(err error) (httpStatus int, env Envelope) {
	switch {
	case errors.Is(err, domain.ErrBadParams):
		return http.StatusBadRequest, fail(domain.ErrCodeBadParams, "bad params")
	case errors.Is(err, domain.ErrUnauth):
		return http.StatusUnauthorized, fail(domain.ErrCodeUnauth, "unauthorized")
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, fail(domain.ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, fail(domain.ErrCodeMethodNotAllowed, "method not allowed")
	case errors.Is(err, domain.ErrUnsupportedMedia):
		return http.StatusUnsupportedMediaType, fail(domain.ErrCodeUnsupportedMedia, "unsupported media type")
	default:
		// Таймауты/отмены/инфраструктура — как 500
		return http.StatusInternalServerError, fail(domain.ErrCodeUnexpected, "unexpected")
	}
}

// WriteEnvelope пишет конверт; req_id в теле только у ошибок. Для HEAD — без тела
func WriteEnvelope(w http.ResponseWriter, r *http.Request, status int, env Envelope) {
	reqID := mw.RequestIDFromCtx(r.Context())
	if env.Error != nil {
		env.ReqID = reqID
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(mw.HeaderRequestID, reqID)
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_ = json.NewEncoder(w).Encode(env)
}

// Шорткаты успеха
func WriteOKData(w http.ResponseWriter, r *http.Request, data any) {
	WriteEnvelope(w, r, http.StatusOK, okData(data))
}
func WriteOKResponse(w http.ResponseWriter, r *http.Request, resp any) {
	WriteEnvelope(w, r, http.StatusOK, okResponse(resp))
}

// Шорткат ошибок
func WriteDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status, env := MapDomainError(err)
	WriteEnvelope(w, r, status, env)
}

// WriteRaw отдаёт готовое тело (разметка, js) с указанным типом
func WriteRaw(w http.ResponseWriter, r *http.Request, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body)
}
