package web

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/EgorLis/svgicon/internal/auth/token"
	"github.com/EgorLis/svgicon/internal/domain"
	"github.com/EgorLis/svgicon/internal/field"
	"github.com/EgorLis/svgicon/internal/icons"
	"github.com/EgorLis/svgicon/internal/infra/cache/memory"
	"github.com/EgorLis/svgicon/internal/infra/storage/local"
)

// memIndex — медиатека в памяти
type memIndex struct {
	mu     sync.Mutex
	nextID domain.AttachmentID
	rows   map[domain.AttachmentID]domain.Attachment
}

func newMemIndex() *memIndex {
	return &memIndex{rows: make(map[domain.AttachmentID]domain.Attachment)}
}

func (m *memIndex) QueryAttachments(_ context.Context, q domain.MediaQuery) ([]domain.Attachment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Attachment, 0)
	for _, a := range m.rows {
		if a.MIME == q.PostMimeType && a.Status == q.PostStatus {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memIndex) AttachmentByID(_ context.Context, id domain.AttachmentID) (domain.Attachment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.rows[id]
	if !ok {
		return domain.Attachment{}, domain.ErrNotFound
	}
	return a, nil
}

func (m *memIndex) CreateAttachment(_ context.Context, a domain.Attachment) (domain.Attachment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	a.ID = m.nextID
	a.PostType, a.Status, a.CreatedAt = "attachment", "inherit", time.Now()
	m.rows[a.ID] = a
	return a, nil
}

func (m *memIndex) DeleteAttachment(_ context.Context, id domain.AttachmentID) (domain.Attachment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.rows[id]
	if !ok {
		return domain.Attachment{}, domain.ErrNotFound
	}
	delete(m.rows, id)
	return a, nil
}

type testEnv struct {
	handler http.Handler
	tokens  *token.Manager
	index   *memIndex
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	themeDir := t.TempDir()
	sprite := filepath.Join(themeDir, "sprite.svg")
	require.NoError(t, os.WriteFile(sprite,
		[]byte(`<svg><symbol id="icon-home"></symbol><symbol id="icon-star-filled"></symbol></svg>`), 0o644))

	idx := newMemIndex()
	media := local.New(t.TempDir(), "http://media.test/uploads", nil)
	cache := memory.New()
	lib := icons.NewLibrary(nil, icons.Deps{
		Cache: cache,
		Discovery: &icons.Discoverer{
			Index:       idx,
			MediaURL:    media.URL,
			CustomPaths: icons.StaticPaths(sprite),
		},
		Index:  idx,
		Media:  media,
		Custom: local.New("", "", nil),
	})
	reg, err := field.NewRegistry(field.SvgIcon{})
	require.NoError(t, err)
	tm := token.New("secret", "svgicon", time.Hour)

	h := NewHandler(zap.NewNop(), Deps{
		Cache:  cache,
		Media:  media,
		Index:  idx,
		Icons:  lib,
		Fields: reg,
		Tokens: tm,
	})
	return &testEnv{handler: h, tokens: tm, index: idx}
}

func (e *testEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeIcons(t *testing.T, rec *httptest.ResponseRecorder) []domain.IconEntry {
	t.Helper()
	var env struct {
		Data []domain.IconEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env.Data
}

func uploadRequest(t *testing.T, name, contentType, body, bearer string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mpw := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="`+name+`"`)
	if contentType != "" {
		hdr.Set("Content-Type", contentType)
	}
	part, err := mpw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, mpw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/attachments", &buf)
	req.Header.Set("Content-Type", mpw.FormDataContentType())
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	return req
}

func TestIcons_ListScriptSprite(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, httptest.NewRequest(http.MethodGet, "/v1/icons", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, []domain.IconEntry{
		{ID: "icon-home", Label: "Home"},
		{ID: "icon-star-filled", Label: "Star filled"},
	}, decodeIcons(t, rec))

	rec = env.do(t, httptest.NewRequest(http.MethodGet, "/v1/icons/data.js", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "javascript")
	assert.Contains(t, rec.Body.String(), `var svg_icon_format_data = [{"id":"icon-home"`)

	rec = env.do(t, httptest.NewRequest(http.MethodGet, "/v1/icons/sprite", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<svg style="display:none;"><symbol id="icon-home">`)
}

func TestFields_RenderAndSettings(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, httptest.NewRequest(http.MethodGet, "/v1/fields/svg_icon?name=icon&value=icon-home&allow_clear=1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="icon-home" name="icon"`)
	assert.Contains(t, rec.Body.String(), `data-allow-clear="1"`)

	req := httptest.NewRequest(http.MethodGet, "/v1/fields/svg_icon/settings", nil)
	req.Header.Set("Accept-Language", "fr")
	rec = env.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Afficher le bouton de suppression ?")

	rec = env.do(t, httptest.NewRequest(http.MethodGet, "/v1/fields/color_picker", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, httptest.NewRequest(http.MethodGet, "/v1/fields", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"svg_icon"`)
}

func TestAttachments_RequireAdmin(t *testing.T) {
	env := newTestEnv(t)

	req := uploadRequest(t, "brand-logo.svg", "image/svg+xml", "<svg></svg>", "")
	req.Header.Set("X-Request-ID", "rid-401")
	rec := env.do(t, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":{"code":1001,"text":"unauthorized"},"req_id":"rid-401"}`, rec.Body.String())

	rec = env.do(t, uploadRequest(t, "brand-logo.svg", "image/svg+xml", "<svg></svg>", "garbage"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAttachments_UploadInvalidatesIcons(t *testing.T) {
	env := newTestEnv(t)
	tok, _, err := env.tokens.Issue(context.Background(), "admin")
	require.NoError(t, err)

	// прогреваем кеш
	rec := env.do(t, httptest.NewRequest(http.MethodGet, "/v1/icons", nil))
	require.Len(t, decodeIcons(t, rec), 2)

	// PNG не сбрасывает кеш
	rec = env.do(t, uploadRequest(t, "photo.png", "image/png", "png-bytes", string(tok)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"invalidated":false`)

	// SVG без Content-Type определяется по расширению и сбрасывает кеш
	rec = env.do(t, uploadRequest(t, "brand-logo.svg", "", "<svg></svg>", string(tok)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"invalidated":true`)

	rec = env.do(t, httptest.NewRequest(http.MethodGet, "/v1/icons", nil))
	got := decodeIcons(t, rec)
	require.Len(t, got, 3)
	assert.Equal(t, "2", got[0].ID)
	assert.Equal(t, "Brand logo", got[0].Label)
	assert.Contains(t, got[0].URL, "http://media.test/uploads/")

	// удаление не сбрасывает кеш, но пропавший файл пропускается
	req := httptest.NewRequest(http.MethodDelete, "/v1/attachments/2", nil)
	req.Header.Set("Authorization", "Bearer "+string(tok))
	rec = env.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, httptest.NewRequest(http.MethodGet, "/v1/icons", nil))
	assert.Len(t, decodeIcons(t, rec), 2)

	req = httptest.NewRequest(http.MethodDelete, "/v1/attachments/2", nil)
	req.Header.Set("Authorization", "Bearer "+string(tok))
	rec = env.do(t, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, httptest.NewRequest(http.MethodGet, "/v1/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, httptest.NewRequest(http.MethodGet, "/v1/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ready")
}

func TestUploads_NoDirectoryListing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "2026", "10"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2026", "10", "logo.svg"), []byte("<svg/>"), 0o644))

	h := NewHandler(zap.NewNop(), Deps{Uploads: Uploads(dir)})

	for _, p := range []string{"/uploads/", "/uploads/2026/", "/uploads/2026/10"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, p, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, p)
		assert.NotContains(t, rec.Body.String(), "logo.svg", p)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/2026/10/logo.svg", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<svg/>", rec.Body.String())
}
