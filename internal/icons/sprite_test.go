package icons

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgorLis/svgicon/internal/domain"
)

func TestHideRoot(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "no style attribute",
			in:   `<svg xmlns="http://www.w3.org/2000/svg"><symbol id="a"/></svg>`,
			want: `<svg style="display:none;" xmlns="http://www.w3.org/2000/svg"><symbol id="a"/></svg>`,
		},
		{
			name: "existing style",
			in:   `<svg width="0" style="position:absolute"></svg>`,
			want: `<svg width="0" style="display:none; position:absolute"></svg>`,
		},
		{
			name: "xml prolog and nested style untouched",
			in:   `<?xml version="1.0"?>` + "\n" + `<svg><g style="fill:red"></g></svg>`,
			want: `<?xml version="1.0"?>` + "\n" + `<svg style="display:none;"><g style="fill:red"></g></svg>`,
		},
		{
			name: "data-style is not style",
			in:   `<svg data-style="x"></svg>`,
			want: `<svg style="display:none;" data-style="x"></svg>`,
		},
		{
			name: "no svg root",
			in:   `<symbol id="a"></symbol>`,
			want: `<symbol id="a"></symbol>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(HideRoot([]byte(tt.in))))
		})
	}
}

func TestRenderSprite(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.svg", `<svg><symbol id="icon-a"/></svg>`)
	b := writeFile(t, dir, "b.svg", `<svg style="width:0"><symbol id="icon-b"/></svg>`)

	f := newFixture(t,
		domain.SvgSource{Provenance: domain.ProvenanceCustom, Path: a},
		domain.SvgSource{Provenance: domain.ProvenanceCustom, Path: filepath.Join(dir, "missing.svg")},
		domain.SvgSource{Provenance: domain.ProvenanceCustom, Path: b},
	)

	var buf bytes.Buffer
	require.NoError(t, f.lib.RenderSprite(context.Background(), &buf))
	assert.Equal(t,
		`<svg style="display:none;"><symbol id="icon-a"/></svg>`+
			`<svg style="display:none; width:0"><symbol id="icon-b"/></svg>`,
		buf.String())
}

func TestRenderSprite_NoSources(t *testing.T) {
	f := newFixture(t)
	var buf bytes.Buffer
	require.NoError(t, f.lib.RenderSprite(context.Background(), &buf))
	assert.Empty(t, buf.String())
}
