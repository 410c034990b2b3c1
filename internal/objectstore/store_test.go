package objectstore

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func pngBytes() []byte {
	return append(append([]byte{}, pngHeader...), bytes.Repeat([]byte("x"), 2048)...)
}

func TestStore_SaveOpenDelete(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	ctx := context.Background()

	key, err := s.Save(ctx, "Daily Alankara.png", bytes.NewReader(pngBytes()))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, "_Daily_Alankara.png"), key)

	_, err = os.Stat(filepath.Join(dir, key+".gz"))
	require.NoError(t, err, "stored compressed")

	rc, err := s.Open(key)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, pngBytes(), got)

	require.NoError(t, s.Delete(ctx, key))
	_, err = s.Open(key)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, s.Delete(ctx, key), "deleting twice is fine")
}

func TestStore_Rejects(t *testing.T) {
	s := New(t.TempDir())
	ctx := context.Background()

	_, err := s.Save(ctx, "run.sh", strings.NewReader("#!/bin/sh"))
	assert.ErrorIs(t, err, ErrBlockedType)

	_, err = s.Save(ctx, "photo.jpg", strings.NewReader("not a jpeg"))
	assert.ErrorIs(t, err, ErrContentMismatch)
}

func TestStore_KeyCannotEscapeDir(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	key, err := s.Save(context.Background(), "../../etc/passwd.png", bytes.NewReader(pngBytes()))
	require.NoError(t, err)
	assert.NotContains(t, key, "/")
	assert.Equal(t, filepath.Join(dir, key+".gz"), s.path("../"+key))
}

func TestKeySafeName(t *testing.T) {
	assert.Equal(t, "Sode_Mutt.jpg", keySafeName(" Sode Mutt.jpg "))
	assert.Equal(t, "quoted.jpg", keySafeName(`"quoted".jpg`))
	assert.Equal(t, "ph.jpg", keySafeName("pह्h.jpg"))
	assert.Equal(t, "", keySafeName("..."))
}

func multipartBody(t *testing.T, field, name string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestHandler_UploadAndServe(t *testing.T) {
	h := NewHandler(New(t.TempDir()), 1<<20, "https://temple.example.org/")

	body, ct := multipartBody(t, "file", "a.png", pngBytes())
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.Upload(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"url":"https://temple.example.org/api/files/`)

	key := rec.Body.String()
	key = key[strings.Index(key, "/api/files/")+len("/api/files/"):]
	key = key[:strings.Index(key, `"`)]

	rec = httptest.NewRecorder()
	h.Serve(rec, httptest.NewRequest(http.MethodGet, "/api/files/"+key, nil), key)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, pngBytes(), rec.Body.Bytes())

	rec = httptest.NewRecorder()
	h.Serve(rec, httptest.NewRequest(http.MethodGet, "/api/files/missing.png", nil), "missing.png")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_UploadErrors(t *testing.T) {
	h := NewHandler(New(t.TempDir()), 1024, "")

	body, ct := multipartBody(t, "other", "a.png", pngBytes()[:100])
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.Upload(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body, ct = multipartBody(t, "file", "a.png", pngBytes())
	req = httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", ct)
	rec = httptest.NewRecorder()
	h.Upload(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "larger than the limit")

	body, ct = multipartBody(t, "file", "evil.exe", []byte("MZ"))
	req = httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", ct)
	rec = httptest.NewRecorder()
	h.Upload(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "not allowed")
}
