package api

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ypbank/txfile/pkg/codec"
	"github.com/ypbank/txfile/pkg/record"
	"github.com/ypbank/txfile/pkg/storage"
)

// maxCompareFileSize bounds the in-memory multipart form for compare calls.
const maxCompareFileSize = 64 << 20

// Server holds the API server state
type Server struct {
	archive *storage.Archive
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server. The archive may be nil when the
// server runs without one; archive endpoints then report unavailable.
func NewServer(archive *storage.Archive, config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		archive: archive,
		config:  config,
		metrics: metrics,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleConvert decodes the request body in the "from" format and responds
// with the same records encoded in the "to" format.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	from, err := record.ParseFormat(r.URL.Query().Get("from"))
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	to, err := record.ParseFormat(r.URL.Query().Get("to"))
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	records, err := codec.ReadAll(r.Body, from)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordConversion(from.String(), to.String(), false, time.Since(start))
		}
		status := http.StatusBadRequest
		if record.IsKind(err, record.KindIO) {
			status = http.StatusInternalServerError
		}
		sendError(w, err.Error(), status)
		return
	}

	var buf bytes.Buffer
	if err := codec.WriteAll(&buf, to, records); err != nil {
		if s.metrics != nil {
			s.metrics.RecordConversion(from.String(), to.String(), false, time.Since(start))
		}
		sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if s.metrics != nil {
		s.metrics.RecordConversion(from.String(), to.String(), true, time.Since(start))
	}

	w.Header().Set("Content-Type", contentTypeFor(to))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// handleCompare takes two files as a multipart form ("file1"/"file2" with
// "format1"/"format2" fields) and reports the comparison verdict.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxCompareFileSize); err != nil {
		sendError(w, "expected a multipart form with file1 and file2", http.StatusBadRequest)
		return
	}

	first, err := s.readComparePart(r, "file1", "format1")
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	second, err := s.readComparePart(r, "file2", "format2")
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := CompareResponse{}
	cmp := record.Compare(first, second)
	switch {
	case cmp.CountsDiffer:
		resp.Verdict = VerdictCountMismatch
	case cmp.Identical():
		resp.Verdict = VerdictIdentical
	default:
		resp.Verdict = VerdictDifferent
		resp.Index = cmp.Index
		f, sec := cmp.First, cmp.Second
		resp.First, resp.Second = &f, &sec
	}

	if s.metrics != nil {
		s.metrics.RecordComparison(resp.Verdict)
	}
	sendSuccess(w, resp)
}

func (s *Server) readComparePart(r *http.Request, fileField, formatField string) ([]record.Record, error) {
	f, err := record.ParseFormat(r.FormValue(formatField))
	if err != nil {
		return nil, err
	}

	file, _, err := r.FormFile(fileField)
	if err != nil {
		return nil, record.WrapIOError(err)
	}
	defer file.Close()

	return codec.ReadAll(file, f)
}

// handleGetRecord fetches one archived record by transaction id.
func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		sendError(w, "archive not configured", http.StatusServiceUnavailable)
		return
	}

	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		sendError(w, "invalid transaction id", http.StatusBadRequest)
		return
	}

	rec, err := s.archive.Get(id)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordArchiveOperation("get", false)
		}
		if err == storage.ErrNotFound {
			sendError(w, "record not found", http.StatusNotFound)
			return
		}
		sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if s.metrics != nil {
		s.metrics.RecordArchiveOperation("get", true)
	}
	sendSuccess(w, rec)
}

// handleImportRecords decodes the request body in the given format and
// imports it into the archive as one batch.
func (s *Server) handleImportRecords(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		sendError(w, "archive not configured", http.StatusServiceUnavailable)
		return
	}

	f, err := record.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	count, batchID, err := s.archive.ImportFrom(r.Body, f)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordArchiveOperation("import", false)
		}
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if s.metrics != nil {
		s.metrics.RecordArchiveOperation("import", true)
	}
	sendSuccess(w, ImportResponse{Imported: count, BatchID: batchID})
}

// handleExportRecords streams the whole archive in the requested format.
func (s *Server) handleExportRecords(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		sendError(w, "archive not configured", http.StatusServiceUnavailable)
		return
	}

	f, err := record.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := s.archive.ExportTo(&buf, f); err != nil {
		if s.metrics != nil {
			s.metrics.RecordArchiveOperation("export", false)
		}
		sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if s.metrics != nil {
		s.metrics.RecordArchiveOperation("export", true)
	}
	w.Header().Set("Content-Type", contentTypeFor(f))
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, &buf)
}

func contentTypeFor(f record.Format) string {
	switch f {
	case record.FormatCSV:
		return "text/csv; charset=utf-8"
	case record.FormatTXT:
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
