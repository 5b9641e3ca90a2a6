package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/EgorLis/svgicon/internal/domain"
)

var attachmentColumns = []string{
	"id", "post_type", "post_status", "mime_type", "file_name",
	"storage_key", "size_bytes", "content_sha256", "created_at",
}

var _ domain.MediaIndex = (*PGRepo)(nil)

// queryAttachments переводит аргументы выборки в SQL.
// Пустые поля фильтра не ограничивают выборку; PostsPerPage <= 0 — без LIMIT.
func (r *PGRepo) queryAttachments(q domain.MediaQuery) sq.SelectBuilder {
	sb := r.qb().Select(attachmentColumns...).From(r.table("attachments"))
	if q.PostType != "" {
		sb = sb.Where(sq.Eq{"post_type": q.PostType})
	}
	if q.PostStatus != "" {
		sb = sb.Where(sq.Eq{"post_status": q.PostStatus})
	}
	if q.PostMimeType != "" {
		sb = sb.Where(sq.Eq{"mime_type": q.PostMimeType})
	}
	sb = sb.OrderBy("created_at DESC", "id DESC")
	if q.PostsPerPage > 0 {
		sb = sb.Limit(uint64(q.PostsPerPage))
	}
	return sb
}

func (r *PGRepo) QueryAttachments(ctx context.Context, q domain.MediaQuery) ([]domain.Attachment, error) {
	sqlStr, args, err := r.queryAttachments(q).ToSql()
	if err != nil {
		return nil, err
	}
	r.logSQL("QueryAttachments", sqlStr, args)

	start := time.Now()
	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		r.logDone("QueryAttachments", start, err)
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Attachment, 0)
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			r.logDone("QueryAttachments", start, err)
			return nil, err
		}
		out = append(out, a)
	}
	err = rows.Err()
	r.logDone("QueryAttachments", start, err)
	return out, err
}

func (r *PGRepo) AttachmentByID(ctx context.Context, id domain.AttachmentID) (domain.Attachment, error) {
	sqlStr, args, err := r.qb().Select(attachmentColumns...).
		From(r.table("attachments")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.Attachment{}, err
	}
	r.logSQL("AttachmentByID", sqlStr, args)

	start := time.Now()
	a, err := scanAttachment(r.pool.QueryRow(ctx, sqlStr, args...))
	r.logDone("AttachmentByID", start, err)
	return a, notFound(err)
}

func (r *PGRepo) CreateAttachment(ctx context.Context, a domain.Attachment) (domain.Attachment, error) {
	if a.PostType == "" {
		a.PostType = "attachment"
	}
	if a.Status == "" {
		a.Status = "inherit"
	}
	sqlStr, args, err := r.qb().Insert(r.table("attachments")).
		Columns("post_type", "post_status", "mime_type", "file_name", "storage_key", "size_bytes", "content_sha256").
		Values(a.PostType, a.Status, a.MIME, a.FileName, a.StorageKey, a.SizeBytes, a.SHA256).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return domain.Attachment{}, err
	}
	r.logSQL("CreateAttachment", sqlStr, args)

	start := time.Now()
	out, err := scanAttachment(r.pool.QueryRow(ctx, sqlStr, args...))
	r.logDone("CreateAttachment", start, err)
	return out, err
}

// DeleteAttachment удаляет запись и возвращает её, чтобы вызывающий мог убрать файл.
func (r *PGRepo) DeleteAttachment(ctx context.Context, id domain.AttachmentID) (domain.Attachment, error) {
	sqlStr, args, err := r.qb().Delete(r.table("attachments")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return domain.Attachment{}, err
	}
	r.logSQL("DeleteAttachment", sqlStr, args)

	start := time.Now()
	out, err := scanAttachment(r.pool.QueryRow(ctx, sqlStr, args...))
	r.logDone("DeleteAttachment", start, err)
	return out, notFound(err)
}

func scanAttachment(row pgx.Row) (domain.Attachment, error) {
	var a domain.Attachment
	err := row.Scan(
		&a.ID, &a.PostType, &a.Status, &a.MIME, &a.FileName,
		&a.StorageKey, &a.SizeBytes, &a.SHA256, &a.CreatedAt,
	)
	return a, err
}

func joinColumns() string { return strings.Join(attachmentColumns, ", ") }

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}
