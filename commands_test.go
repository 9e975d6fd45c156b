package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("TIMEZONE", "UTC")
	t.Cleanup(func() { logger = zap.NewNop() })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	t.Setenv("LAT", "")
	t.Setenv("LON", "")
	outputPath, watch = "", false

	out, err := execute(t, "render", "--attr", "datetime=2023-03-21T12:00:00Z,longitude=0,latitude=0,width=128,height=128")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `<svg width="128" height="128"`))
	assert.Contains(t, out, "light-dawn")

	path := filepath.Join(t.TempDir(), "clock.svg")
	_, err = execute(t, "render", "-o", path)
	require.NoError(t, err)
	dat, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(dat), "</svg>"))
	outputPath = ""
}

func TestSunCommand(t *testing.T) {
	t.Setenv("LAT", "0")
	t.Setenv("LON", "0")
	t.Setenv("PLACE", "Null Island")
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	out, err := execute(t, "sun", "--date", "2023-03-21")
	require.NoError(t, err)
	assert.Contains(t, out, "Null Island\nTUE 2023-03-21 UTC+00:00\n")
	assert.Contains(t, out, "dawn  05:45-06:10")

	_, err = execute(t, "sun", "--date", "someday")
	assert.ErrorContains(t, err, "invalid --date")
	summaryDate = ""
}

func TestBotCommandNeedsToken(t *testing.T) {
	t.Setenv("TG_BOT_TOKEN", "")
	t.Setenv("LAT", "")
	t.Setenv("LON", "")

	_, err := execute(t, "bot")
	assert.ErrorContains(t, err, "TG_BOT_TOKEN")
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "face.svg")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	err := writeFileAtomic(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "<svg></svg>")
		return err
	})
	require.NoError(t, err)
	dat, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<svg></svg>", string(dat))

	err = writeFileAtomic(path, func(w io.Writer) error { return errors.New("no ink") })
	assert.ErrorContains(t, err, "no ink")
	dat, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<svg></svg>", string(dat))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
