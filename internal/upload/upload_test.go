package upload

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/wallfeed/wallfeed/internal/errors"
)

// makeFileHeader builds a parsed multipart file header carrying the given
// mimetype and content.
func makeFileHeader(t *testing.T, filename, mimeType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", mimeType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	files := req.MultipartForm.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func TestSaver_SaveWritesFile(t *testing.T) {
	dir := t.TempDir()
	saver, err := NewSaver(dir, 5*1024*1024)
	require.NoError(t, err)

	file := makeFileHeader(t, "photo.png", "image/png", []byte("png-bytes"))

	filename, err := saver.Save(file)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(filename, ".png"), "filename %q", filename)
	data, err := os.ReadFile(filepath.Join(dir, filename))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestSaver_ExtensionFallback(t *testing.T) {
	saver, err := NewSaver(t.TempDir(), 5*1024*1024)
	require.NoError(t, err)

	// Unlisted image subtype with no usable extension falls back to .jpg.
	file := makeFileHeader(t, "picture", "image/x-icon", []byte("data"))

	filename, err := saver.Save(file)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(filename, ".jpg"), "filename %q", filename)
}

func TestSaver_RejectsNonImage(t *testing.T) {
	saver, err := NewSaver(t.TempDir(), 5*1024*1024)
	require.NoError(t, err)

	file := makeFileHeader(t, "notes.txt", "text/plain", []byte("hello"))

	_, err = saver.Save(file)
	assert.ErrorIs(t, err, apperrors.ErrNotAnImage)
}

func TestSaver_RejectsOversized(t *testing.T) {
	saver, err := NewSaver(t.TempDir(), 4)
	require.NoError(t, err)

	file := makeFileHeader(t, "big.png", "image/png", []byte("way too large"))

	_, err = saver.Save(file)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestSaver_SaveAllStopsOnInvalid(t *testing.T) {
	saver, err := NewSaver(t.TempDir(), 5*1024*1024)
	require.NoError(t, err)

	files := []*multipart.FileHeader{
		makeFileHeader(t, "a.png", "image/png", []byte("a")),
		makeFileHeader(t, "b.txt", "text/plain", []byte("b")),
	}

	_, err = saver.SaveAll(files)
	assert.ErrorIs(t, err, apperrors.ErrNotAnImage)
}
