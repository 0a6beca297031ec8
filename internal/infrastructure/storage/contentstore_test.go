package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skynet/internal/application/request/usecases"
	"skynet/internal/shared/config"
	"skynet/internal/shared/logger"
)

func testStore(t *testing.T, serverURL string, imageOnly bool) *ContentStore {
	t.Helper()
	return NewContentStore(&config.StorageConfig{
		BaseURL:           serverURL,
		APIKey:            "test-key",
		UploadFolder:      "solicitudes",
		MaxFileSizeBytes:  1 << 20,
		ImageOnly:         imageOnly,
		ImageMaxSizeBytes: 1 << 20,
	}, logger.NewNop())
}

func jpegFile(name, content string) usecases.UploadFile {
	return usecases.UploadFile{
		Name:        name,
		ContentType: "image/jpeg",
		Size:        int64(len(content)),
		Reader:      strings.NewReader(content),
	}
}

func TestContentStore_Upload(t *testing.T) {
	var gotFolder, gotAuth, gotFile, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotFolder = r.FormValue("folder")
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path

		f, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		gotFile = header.Filename

		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"public_id": "%s/%s"}`, r.FormValue("folder"), header.Filename)
	}))
	defer server.Close()

	store := testStore(t, server.URL, false)

	key, err := store.Upload(context.Background(), "SKY-20260831-ABC234", jpegFile("foto.jpg", "jpeg-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "solicitudes/SKY-20260831-ABC234/foto.jpg", key)
	assert.Equal(t, "solicitudes/SKY-20260831-ABC234", gotFolder)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "foto.jpg", gotFile)
	assert.Equal(t, "/image/upload", gotPath)
}

func TestContentStore_NonImagesGoToRawEndpoint(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `{"public_id": "solicitudes/x/informe.pdf"}`)
	}))
	defer server.Close()

	store := testStore(t, server.URL, false)

	file := usecases.UploadFile{
		Name:        "informe.pdf",
		ContentType: "application/pdf",
		Size:        100,
		Reader:      strings.NewReader("pdf"),
	}

	_, err := store.Upload(context.Background(), "SKY-20260831-ABC234", file)
	require.NoError(t, err)
	assert.Equal(t, "/raw/upload", gotPath)
}

func TestContentStore_RejectsUnknownExtension(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("store should not be contacted for unsupported types")
	}))
	defer server.Close()

	store := testStore(t, server.URL, false)

	file := usecases.UploadFile{
		Name:        "malware.exe",
		ContentType: "application/octet-stream",
		Size:        100,
		Reader:      strings.NewReader("mz"),
	}

	_, err := store.Upload(context.Background(), "SKY-20260831-ABC234", file)
	require.Error(t, err)

	var uerr *usecases.UploadError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, usecases.UploadReasonUnsupportedType, uerr.Reason)
}

func TestContentStore_AcceptsFileAtSizeLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"public_id": "solicitudes/x/exact.csv"}`)
	}))
	defer server.Close()

	store := testStore(t, server.URL, false)

	file := usecases.UploadFile{
		Name:        "exact.csv",
		ContentType: "text/csv",
		Size:        1 << 20,
		Reader:      strings.NewReader("a,b,c"),
	}

	_, err := store.Upload(context.Background(), "SKY-20260831-ABC234", file)
	assert.NoError(t, err, "a file exactly at the limit is accepted")

	file.Name = "over.csv"
	file.Size = 1<<20 + 1
	file.Reader = strings.NewReader("a,b,c")

	_, err = store.Upload(context.Background(), "SKY-20260831-ABC234", file)
	var uerr *usecases.UploadError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, usecases.UploadReasonFileTooLarge, uerr.Reason)
}

func TestContentStore_RejectsOversizedFileLocally(t *testing.T) {
	contacted := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contacted = true
	}))
	defer server.Close()

	store := testStore(t, server.URL, false)

	file := jpegFile("huge.jpg", "x")
	file.Size = 2 << 20

	_, err := store.Upload(context.Background(), "SKY-20260831-ABC234", file)
	require.Error(t, err)

	var uerr *usecases.UploadError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, usecases.UploadReasonFileTooLarge, uerr.Reason)
	assert.False(t, contacted, "oversized files never reach the store")
}

func TestContentStore_ImageOnlyRejectsOtherTypes(t *testing.T) {
	store := testStore(t, "http://unused.invalid", true)

	file := usecases.UploadFile{
		Name:        "doc.pdf",
		ContentType: "application/pdf",
		Size:        100,
		Reader:      strings.NewReader("pdf"),
	}

	_, err := store.Upload(context.Background(), "SKY-20260831-ABC234", file)
	require.Error(t, err)

	var uerr *usecases.UploadError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, usecases.UploadReasonUnsupportedType, uerr.Reason)
}

func TestContentStore_ImageOnlyAcceptsImages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"public_id": "solicitudes/x/foto.png"}`)
	}))
	defer server.Close()

	store := testStore(t, server.URL, true)

	file := usecases.UploadFile{
		Name:        "foto.png",
		ContentType: "image/png",
		Size:        100,
		Reader:      strings.NewReader("png"),
	}

	key, err := store.Upload(context.Background(), "SKY-20260831-ABC234", file)
	require.NoError(t, err)
	assert.Equal(t, "solicitudes/x/foto.png", key)
}

func TestContentStore_BackendFailureCarriesStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "store exploded", http.StatusInternalServerError)
	}))
	defer server.Close()

	store := testStore(t, server.URL, false)

	_, err := store.Upload(context.Background(), "SKY-20260831-ABC234", jpegFile("foto.jpg", "x"))
	require.Error(t, err)

	var uerr *usecases.UploadError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, usecases.UploadReasonBackendError, uerr.Reason)
	assert.Equal(t, http.StatusInternalServerError, uerr.Status)
}

func TestContentStore_UnreachableBackend(t *testing.T) {
	store := testStore(t, "http://127.0.0.1:1", false)

	_, err := store.Upload(context.Background(), "SKY-20260831-ABC234", jpegFile("foto.jpg", "x"))
	require.Error(t, err)

	var uerr *usecases.UploadError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, usecases.UploadReasonBackendError, uerr.Reason)
	assert.Equal(t, 0, uerr.Status)
}

func TestContentStore_EmptyKeyFromStore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	store := testStore(t, server.URL, false)

	_, err := store.Upload(context.Background(), "SKY-20260831-ABC234", jpegFile("foto.jpg", "x"))
	require.Error(t, err)

	var uerr *usecases.UploadError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, usecases.UploadReasonBackendError, uerr.Reason)
}

func TestContentStore_ReadFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("store should not be contacted when the file cannot be read")
	}))
	defer server.Close()

	store := testStore(t, server.URL, false)

	file := usecases.UploadFile{
		Name:        "broken.jpg",
		ContentType: "image/jpeg",
		Size:        10,
		Reader:      failingReader{},
	}

	_, err := store.Upload(context.Background(), "SKY-20260831-ABC234", file)
	require.Error(t, err)

	var uerr *usecases.UploadError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, usecases.UploadReasonBackendError, uerr.Reason)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("stream truncated")
}
