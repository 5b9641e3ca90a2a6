package domain

import "context"

// Аргументы выборки вложений. Могут быть переопределены хуком до выполнения.
type MediaQuery struct {
	PostType     string
	PostsPerPage int // <= 0 — без лимита
	PostStatus   string
	PostMimeType string
}

// Запрос по умолчанию: все SVG-вложения в статусе inherit, без пагинации
func DefaultMediaQuery() MediaQuery {
	return MediaQuery{
		PostType:     "attachment",
		PostsPerPage: -1,
		PostStatus:   "inherit",
		PostMimeType: MIMETypeSVG,
	}
}

type MediaIndex interface {
	QueryAttachments(ctx context.Context, q MediaQuery) ([]Attachment, error)
	AttachmentByID(ctx context.Context, id AttachmentID) (Attachment, error)
	CreateAttachment(ctx context.Context, a Attachment) (Attachment, error)
	DeleteAttachment(ctx context.Context, id AttachmentID) (Attachment, error)
}
