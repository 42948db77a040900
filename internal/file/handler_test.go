package file

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, f *fixture) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Route("/api/v1/file", NewHandler(f.svc).Routes)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func multipartUpload(t *testing.T, url, filename string, content []byte) *http.Response {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(url+"/api/v1/file/create", mw.FormDataContentType(), &body)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

// TestFileLifecycle covers the full upload → download → metadata → delete
// flow for a 45-byte cartina.pdf.
func TestFileLifecycle(t *testing.T) {
	f := newFixture(t, "pdf", "txt")
	srv := newTestServer(t, f)

	payload := bytes.Repeat([]byte("x"), 45)

	// Upload.
	resp := multipartUpload(t, srv.URL, "cartina.pdf", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created UploadResponse
	decodeBody(t, resp, &created)
	require.Positive(t, created.ID)

	// Download (poll: the object write races the response).
	var downloaded []byte
	var disposition string
	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("%s/api/v1/file/get/%d", srv.URL, created.ID))
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return false
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return false
		}
		downloaded = body
		disposition = resp.Header.Get("Content-Disposition")
		return true
	}, 2*time.Second, 10*time.Millisecond)

	require.Equal(t, payload, downloaded)
	require.Contains(t, disposition, "attachment; filename*=UTF-8''")
	require.Contains(t, disposition, "cartina.pdf")

	// Metadata.
	resp, err := http.Get(fmt.Sprintf("%s/api/v1/file/data/get/%d", srv.URL, created.ID))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var meta MetadataResponse
	decodeBody(t, resp, &meta)
	require.Equal(t, "cartina.pdf", meta.OriginalFileName)

	// Delete.
	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/api/v1/file/delete/%d", srv.URL, created.ID), nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Metadata is gone.
	resp, err = http.Get(fmt.Sprintf("%s/api/v1/file/data/get/%d", srv.URL, created.ID))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUploadUnsupportedFormatResponse(t *testing.T) {
	f := newFixture(t, "pdf")
	srv := newTestServer(t, f)

	resp := multipartUpload(t, srv.URL, "virus.exe", []byte("nope"))
	require.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)

	var body struct {
		ErrorMessage string `json:"errorMessage"`
	}
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body.ErrorMessage)
	require.Zero(t, f.store.count())
}

func TestUploadMissingFileField(t *testing.T) {
	f := newFixture(t)
	srv := newTestServer(t, f)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("other", "value"))
	require.NoError(t, mw.Close())

	resp, err := http.Post(srv.URL+"/api/v1/file/create", mw.FormDataContentType(), &body)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestDownloadNotFound(t *testing.T) {
	f := newFixture(t)
	srv := newTestServer(t, f)

	resp, err := http.Get(srv.URL + "/api/v1/file/get/9999")
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body struct {
		ErrorMessage string `json:"errorMessage"`
	}
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body.ErrorMessage)
}

func TestNonNumericIDIsNotFound(t *testing.T) {
	f := newFixture(t)
	srv := newTestServer(t, f)

	for _, path := range []string{
		"/api/v1/file/get/abc",
		"/api/v1/file/data/get/abc",
	} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode, "path=%s", path)
	}
}

func TestDeleteMissingFileReturnsOK(t *testing.T) {
	f := newFixture(t)
	srv := newTestServer(t, f)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/file/delete/9999", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
