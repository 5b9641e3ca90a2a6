package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgorLis/svgicon/internal/domain"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeSprite(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "sprite.svg")
	require.NoError(t, os.WriteFile(p, []byte(`<svg><symbol id="icon-arrow-left"/></svg>`), 0o644))
	return p
}

func TestIconsCmd_JSON(t *testing.T) {
	sprite := writeSprite(t)
	out, err := runRoot(t, "icons", "--path", sprite, "--path", "/nope/missing.svg")
	require.NoError(t, err)

	var got []domain.IconEntry
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []domain.IconEntry{{ID: "icon-arrow-left", Label: "Arrow left"}}, got)
}

func TestIconsCmd_ScriptAndSprite(t *testing.T) {
	sprite := writeSprite(t)

	out, err := runRoot(t, "icons", "-p", sprite, "-f", "js")
	require.NoError(t, err)
	assert.Equal(t, `var svg_icon_format_data = [{"id":"icon-arrow-left","text":"Arrow left","disabled":false}];`+"\n", out)

	out, err = runRoot(t, "icons", "-p", sprite, "-f", "sprite")
	require.NoError(t, err)
	assert.Equal(t, `<svg style="display:none;"><symbol id="icon-arrow-left"/></svg>`, out)
}

func TestIconsCmd_UnknownFormat(t *testing.T) {
	_, err := runRoot(t, "icons", "-f", "xml")
	assert.ErrorContains(t, err, `unknown format "xml"`)
}

func TestTokenCmd_RequiresSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")
	_, err := runRoot(t, "token")
	assert.ErrorContains(t, err, "AUTH_JWT_SECRET")
}

func TestTokenCmd_Issues(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cr3t")
	out, err := runRoot(t, "token", "--subject", "ops")
	require.NoError(t, err)
	assert.NotEmpty(t, bytes.TrimSpace([]byte(out)))
}
