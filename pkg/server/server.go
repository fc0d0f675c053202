package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/quantalogic/lorem-ipsum-generator/pkg/generator"
	"github.com/quantalogic/lorem-ipsum-generator/pkg/models"
	"github.com/quantalogic/lorem-ipsum-generator/pkg/render"
	"github.com/quantalogic/lorem-ipsum-generator/pkg/utils"
)

// maxBodyBytes bounds request bodies; a generation request is a handful of fields.
const maxBodyBytes = 64 << 10

// Options configures a Server.
type Options struct {
	Logger *zap.Logger
	// WordBank defaults to the built-in lorem vocabulary.
	WordBank *utils.WordBank
	// Seed, when set, is used for requests that do not carry their own seed.
	Seed *int64
	// DefaultFormat applies when a request names no format. It is matched
	// case-insensitively; empty or unknown values mean JSON.
	DefaultFormat render.Format
}

// Server exposes the generator over HTTP.
type Server struct {
	logger        *zap.Logger
	wordBank      atomic.Pointer[utils.WordBank]
	idGen         *utils.IDGenerator
	seed          *int64
	defaultFormat render.Format
}

// NewServer builds a Server from opts.
func NewServer(opts Options) *Server {
	s := &Server{
		logger:        opts.Logger,
		idGen:         utils.NewIDGenerator(),
		seed:          opts.Seed,
		defaultFormat: render.FormatJSON,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if opts.DefaultFormat != "" {
		format, err := render.ParseFormat(string(opts.DefaultFormat))
		if err != nil {
			s.logger.Warn("Ignoring invalid default format", zap.Error(err))
		} else {
			s.defaultFormat = format
		}
	}

	wb := opts.WordBank
	if wb == nil {
		wb = utils.NewWordBank()
	}
	s.wordBank.Store(wb)
	return s
}

// NewRouter returns an http.Handler with default options.
func NewRouter() http.Handler {
	return NewServer(Options{}).Handler()
}

// SetWordBank swaps the vocabulary used by subsequent requests. In-flight
// requests keep the bank they started with.
func (s *Server) SetWordBank(wb *utils.WordBank) {
	if wb == nil {
		return
	}
	s.wordBank.Store(wb)
	s.logger.Info("Vocabulary updated", zap.Int("words", wb.Len()))
}

// WordBank returns the vocabulary currently in use.
func (s *Server) WordBank() *utils.WordBank {
	return s.wordBank.Load()
}

// Handler returns the routed and logged http.Handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/v1/generate", s.handleGenerate)
	mux.HandleFunc("/generate", s.handleGenerate)

	mux.HandleFunc("/v1/units", s.handleUnits)
	mux.HandleFunc("/units", s.handleUnits)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		// Only respond at root path; leave other paths to their handlers
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "lorem-ipsum-generator"})
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
	})

	return s.logRequests(mux)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var in models.GenerateRequest

	switch r.Method {
	case http.MethodGet:
		parsed, err := requestFromQuery(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		in = parsed
	case http.MethodPost:
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to read body: %v", err))
			return
		}
		if err := json.Unmarshal(body, &in); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
			return
		}
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	unit, err := generator.ParseUnit(in.Unit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	format := s.defaultFormat
	if in.Format != "" {
		if format, err = render.ParseFormat(in.Format); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	seed := time.Now().UnixNano()
	if in.Seed != nil {
		seed = *in.Seed
	} else if s.seed != nil {
		seed = *s.seed
	}

	gen, err := generator.NewLoremGeneratorWithSource(s.WordBank(), rand.New(rand.NewSource(seed)))
	if err != nil {
		s.logger.Error("Failed to create generator", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "generator unavailable")
		return
	}

	res, err := gen.Generate(r.Context(), generator.Request{
		Unit:              unit,
		Count:             generator.ParseCount(string(in.Count)),
		UseClassicOpening: in.ClassicFirst,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, generator.ErrInvalidUnit) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}

	s.logger.Debug("Generated text",
		zap.String("unit", string(res.Unit)),
		zap.Int("count", len(res.Items)),
		zap.Bool("classic_first", in.ClassicFirst),
		zap.Int64("seed", seed))

	if format != render.FormatJSON {
		out, err := render.Render(res, format)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		w.Header().Set("Content-Type", format.ContentType())
		_, _ = io.WriteString(w, out)
		return
	}

	text := render.Text(res)
	writeJSON(w, http.StatusOK, models.NewGeneration(s.idGen.GenerateID(), time.Now().Unix(), string(res.Unit), res.Items, text))
}

func (s *Server) handleUnits(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	list := models.UnitList{Object: "list"}
	for _, u := range generator.Units {
		list.Data = append(list.Data, models.UnitInfo{ID: string(u), Object: "unit", MaxCount: generator.MaxCount})
	}
	writeJSON(w, http.StatusOK, list)
}

// requestFromQuery reads the same fields as the JSON body from URL parameters.
func requestFromQuery(r *http.Request) (models.GenerateRequest, error) {
	q := r.URL.Query()
	in := models.GenerateRequest{
		Unit:         q.Get("unit"),
		Count:        models.CountParam(q.Get("count")),
		ClassicFirst: parseFlag(q.Get("classic_first")),
		Format:       q.Get("format"),
	}
	if raw := q.Get("seed"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return in, fmt.Errorf("invalid seed %q", raw)
		}
		in.Seed = &seed
	}
	return in, nil
}

// parseFlag treats checkbox values ("on") and the usual boolean spellings as true.
func parseFlag(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "yes":
		return true
	}
	b, _ := strconv.ParseBool(v)
	return b
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	errType := "invalid_request_error"
	if status >= http.StatusInternalServerError {
		errType = "server_error"
	}
	writeJSON(w, status, models.ErrorResponse{Error: models.ErrorDetail{
		Message: msg,
		Type:    errType,
	}})
}
