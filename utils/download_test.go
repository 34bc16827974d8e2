package utils

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 8, 8))))
	return buf.Bytes()
}

func TestUtils_ShouldDownloadImage(t *testing.T) {
	data := pngBytes(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/face.png":
			w.Write(data)
		case "/notes.txt":
			w.Write([]byte("hello there"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	name, err := DownloadImage(context.Background(), srv.URL+"/face.png")
	require.NoError(t, err)
	defer os.Remove(name)

	assert.Equal(t, ".png", filepath.Ext(name))
	got, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	_, err = DownloadImage(context.Background(), srv.URL+"/notes.txt")
	assert.Error(t, err)

	_, err = DownloadImage(context.Background(), srv.URL+"/missing.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestUtils_ShouldBeValidUrl(t *testing.T) {
	assert.True(t, IsValidUrl("https://github.com/esimov/facebench/"))
	assert.False(t, IsValidUrl("sample.jpg"))
	assert.False(t, IsValidUrl("/tmp/sample.jpg"))
}

func TestUtils_ShouldDetectValidFileType(t *testing.T) {
	dir := t.TempDir()

	img := filepath.Join(dir, "sample.png")
	require.NoError(t, os.WriteFile(img, pngBytes(t), 0644))
	ftype, err := DetectContentType(img)
	require.NoError(t, err)
	assert.Equal(t, "image/png", ftype)

	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	ftype, err = DetectContentType(empty)
	require.NoError(t, err)
	assert.False(t, strings.Contains(ftype, "image"))

	_, err = DetectContentType(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
