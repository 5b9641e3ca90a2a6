package icons

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgorLis/svgicon/internal/domain"
)

type fakeQuerier struct {
	got  domain.MediaQuery
	atts []domain.Attachment
	err  error
}

func (f *fakeQuerier) QueryAttachments(_ context.Context, q domain.MediaQuery) ([]domain.Attachment, error) {
	f.got = q
	return f.atts, f.err
}

func TestDiscover_MediaFirstThenCustom(t *testing.T) {
	idx := &fakeQuerier{atts: []domain.Attachment{
		{ID: 10, StorageKey: "2026/10/a.svg"},
		{ID: 11, StorageKey: "2026/10/b.svg", URL: "https://static.test/b.svg"},
	}}
	d := &Discoverer{
		Index:       idx,
		MediaURL:    func(k string) string { return "http://cdn.test/" + k },
		CustomPaths: StaticPaths("theme/sprite.svg", "theme/sprite.svg"),
	}

	got, err := d.Discover(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultMediaQuery(), idx.got)
	assert.Equal(t, []domain.SvgSource{
		{Provenance: domain.ProvenanceMedia, Path: "2026/10/a.svg", ID: 10, URL: "http://cdn.test/2026/10/a.svg"},
		{Provenance: domain.ProvenanceMedia, Path: "2026/10/b.svg", ID: 11, URL: "https://static.test/b.svg"},
		{Provenance: domain.ProvenanceCustom, Path: "theme/sprite.svg"},
		{Provenance: domain.ProvenanceCustom, Path: "theme/sprite.svg"},
	}, got)
}

func TestDiscover_FilterQuery(t *testing.T) {
	idx := &fakeQuerier{}
	d := &Discoverer{
		Index: idx,
		FilterQuery: func(q domain.MediaQuery) domain.MediaQuery {
			q.PostsPerPage = 5
			return q
		},
	}

	got, err := d.Discover(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 5, idx.got.PostsPerPage)
	assert.Equal(t, domain.MIMETypeSVG, idx.got.PostMimeType)
}

func TestDiscover_NoIndexNoPaths(t *testing.T) {
	got, err := (&Discoverer{}).Discover(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDiscover_IndexError(t *testing.T) {
	d := &Discoverer{Index: &fakeQuerier{err: errors.New("boom")}}
	_, err := d.Discover(context.Background())
	assert.ErrorContains(t, err, "boom")
}
