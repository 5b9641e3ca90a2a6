package domain

import (
	"time"
)

// MIME-тип, по которому отбираются SVG во вложениях
const MIMETypeSVG = "image/svg+xml"

// Базовые идентификаторы
type AttachmentID = int64

// Происхождение SVG-источника
type Provenance string

const (
	ProvenanceMedia  Provenance = "media"  // загружен в медиатеку
	ProvenanceCustom Provenance = "custom" // путь объявлен темой/конфигом
)

// Вложение медиатеки (без тела файла)
type Attachment struct {
	ID        AttachmentID `json:"id"`
	FileName  string       `json:"file_name"`
	MIME      string       `json:"mime"`
	PostType  string       `json:"post_type"`
	Status    string       `json:"status"`
	CreatedAt time.Time    `json:"created"`

	SizeBytes int64  `json:"size_bytes"`
	SHA256    []byte `json:"-"`

	// Где лежит контент (локально/S3/MinIO)
	StorageKey string `json:"storage_key"`
	URL        string `json:"url,omitempty"`
}

// SvgSource — один файл-кандидат. Неизменяемый, порядок в списке значим.
type SvgSource struct {
	Provenance Provenance   `json:"type"`
	Path       string       `json:"file"`
	ID         AttachmentID `json:"id,omitempty"`
	URL        string       `json:"file_url,omitempty"`
}

// IconEntry — элемент списка иконок для виджета выбора.
// Для media ID — десятичный id вложения, для custom — слаг.
type IconEntry struct {
	ID       string `json:"id"`
	Label    string `json:"text"`
	URL      string `json:"url,omitempty"`
	Disabled bool   `json:"disabled"`
}
