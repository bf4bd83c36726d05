package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ypbank/txfile/pkg/codec"
	"github.com/ypbank/txfile/pkg/record"
	"github.com/ypbank/txfile/pkg/storage"
)

// Handlers are exercised through a real router so URL params and
// middleware behave exactly as they do in production. Metrics are nil to
// keep the Prometheus default registry clean across tests.
func newTestRouter(t *testing.T, archive *storage.Archive, cfg ServerConfig) *chi.Mux {
	t.Helper()
	return NewRouter(NewServer(archive, cfg, nil), nil)
}

func openTestArchive(t *testing.T) *storage.Archive {
	t.Helper()
	a, err := storage.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func testRecords() []record.Record {
	return []record.Record{
		{
			ID:          1,
			Type:        record.Deposit,
			FromUserID:  0,
			ToUserID:    501,
			Amount:      2500,
			Timestamp:   1700000000,
			Status:      record.Success,
			Description: "salary",
		},
		{
			ID:          2,
			Type:        record.Transfer,
			FromUserID:  501,
			ToUserID:    502,
			Amount:      -120,
			Timestamp:   1700000100,
			Status:      record.Pending,
			Description: "rent share",
		},
	}
}

func encode(t *testing.T, f record.Format, records []record.Record) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, codec.WriteAll(&buf, f, records))
	return buf.Bytes()
}

func decodeResponse(t *testing.T, body []byte) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestHandleHealth(t *testing.T) {
	router := newTestRouter(t, nil, ServerConfig{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decodeResponse(t, rr.Body.Bytes())
	assert.True(t, resp.Success)
}

func TestHandleConvert_CSVToTXT(t *testing.T) {
	router := newTestRouter(t, nil, ServerConfig{})
	body := encode(t, record.FormatCSV, testRecords())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/convert?from=csv&to=txt", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rr.Header().Get("Content-Type"))

	got, err := codec.ReadAll(bytes.NewReader(rr.Body.Bytes()), record.FormatTXT)
	require.NoError(t, err)
	assert.Equal(t, testRecords(), got)
}

func TestHandleConvert_RoundTripThroughBinary(t *testing.T) {
	router := newTestRouter(t, nil, ServerConfig{})
	body := encode(t, record.FormatTXT, testRecords())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/convert?from=txt&to=binary", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/octet-stream", rr.Header().Get("Content-Type"))

	got, err := codec.ReadAll(bytes.NewReader(rr.Body.Bytes()), record.FormatBinary)
	require.NoError(t, err)
	assert.Equal(t, testRecords(), got)
}

func TestHandleConvert_UnknownFormat(t *testing.T) {
	router := newTestRouter(t, nil, ServerConfig{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/convert?from=json&to=csv", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	resp := decodeResponse(t, rr.Body.Bytes())
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "json")
}

func TestHandleConvert_MalformedInput(t *testing.T) {
	router := newTestRouter(t, nil, ServerConfig{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/convert?from=csv&to=txt",
		bytes.NewReader([]byte("not,a,valid,header\n")))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	resp := decodeResponse(t, rr.Body.Bytes())
	assert.False(t, resp.Success)
}

func compareRequest(t *testing.T, first, second []byte, format1, format2 string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file1", "first")
	require.NoError(t, err)
	_, err = part.Write(first)
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("format1", format1))

	part, err = mw.CreateFormFile("file2", "second")
	require.NoError(t, err)
	_, err = part.Write(second)
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("format2", format2))

	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/compare", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandleCompare_Identical(t *testing.T) {
	router := newTestRouter(t, nil, ServerConfig{})
	records := testRecords()

	req := compareRequest(t,
		encode(t, record.FormatCSV, records),
		encode(t, record.FormatBinary, records),
		"csv", "binary")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	resp := decodeResponse(t, rr.Body.Bytes())
	require.True(t, resp.Success)

	var cmp CompareResponse
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &cmp))
	assert.Equal(t, VerdictIdentical, cmp.Verdict)
}

func TestHandleCompare_CountMismatch(t *testing.T) {
	router := newTestRouter(t, nil, ServerConfig{})
	records := testRecords()

	req := compareRequest(t,
		encode(t, record.FormatTXT, records),
		encode(t, record.FormatTXT, records[:1]),
		"txt", "txt")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	resp := decodeResponse(t, rr.Body.Bytes())

	var cmp CompareResponse
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &cmp))
	assert.Equal(t, VerdictCountMismatch, cmp.Verdict)
}

func TestHandleCompare_Different(t *testing.T) {
	router := newTestRouter(t, nil, ServerConfig{})
	first := testRecords()
	second := testRecords()
	second[1].Amount = 999

	req := compareRequest(t,
		encode(t, record.FormatCSV, first),
		encode(t, record.FormatCSV, second),
		"csv", "csv")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	resp := decodeResponse(t, rr.Body.Bytes())

	var cmp CompareResponse
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &cmp))
	assert.Equal(t, VerdictDifferent, cmp.Verdict)
	assert.Equal(t, 1, cmp.Index)
	require.NotNil(t, cmp.First)
	require.NotNil(t, cmp.Second)
	assert.Equal(t, int64(-120), cmp.First.Amount)
	assert.Equal(t, int64(999), cmp.Second.Amount)
}

func TestHandleCompare_NotMultipart(t *testing.T) {
	router := newTestRouter(t, nil, ServerConfig{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/compare", bytes.NewReader([]byte("plain body")))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestArchiveEndpoints_ImportGetExport(t *testing.T) {
	archive := openTestArchive(t)
	router := newTestRouter(t, archive, ServerConfig{})
	records := testRecords()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/records?format=binary",
		bytes.NewReader(encode(t, record.FormatBinary, records)))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	resp := decodeResponse(t, rr.Body.Bytes())
	require.True(t, resp.Success)

	var imported ImportResponse
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &imported))
	assert.Equal(t, len(records), imported.Imported)
	assert.NotEmpty(t, imported.BatchID)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/records/2", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/records?format=csv", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rr.Header().Get("Content-Type"))

	got, err := codec.ReadAll(bytes.NewReader(rr.Body.Bytes()), record.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestHandleGetRecord_NotFound(t *testing.T) {
	archive := openTestArchive(t)
	router := newTestRouter(t, archive, ServerConfig{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/records/42", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandleGetRecord_InvalidID(t *testing.T) {
	archive := openTestArchive(t)
	router := newTestRouter(t, archive, ServerConfig{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/records/abc", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestArchiveEndpoints_NoArchiveConfigured(t *testing.T) {
	router := newTestRouter(t, nil, ServerConfig{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/records/1", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
