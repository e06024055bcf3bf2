package server

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/tartampluch/go-datediff/internal/calendar"
	"github.com/tartampluch/go-datediff/internal/config"
	"github.com/tartampluch/go-datediff/internal/datediff"
	"github.com/tartampluch/go-datediff/internal/engine"
)

// DiffServer exposes the date difference engine over HTTP.
// Requests share no mutable state, so handlers run fully in parallel.
type DiffServer struct {
	Port string

	// Clock stamps DTSTAMP in iCalendar responses.
	Clock engine.Clock
}

// diffResponse is the JSON body of a successful /diff request.
type diffResponse struct {
	Start  calendar.Date   `json:"start"`
	End    calendar.Date   `json:"end"`
	Result datediff.Result `json:"result"`
}

type errorResponse struct {
	Error string `json:"error"`
	Rule  string `json:"rule,omitempty"`
}

// NewDiffServer creates a server listening on port once started.
func NewDiffServer(port string) *DiffServer {
	return &DiffServer{
		Port:  port,
		Clock: engine.RealClock{},
	}
}

// ValidatePort checks that port is a decimal TCP port number.
func ValidatePort(port string) error {
	if port == "" {
		return errors.New(config.ErrPortRequired)
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("%s: %q", config.ErrPortNumber, port)
	}
	if n < config.MinPort || n > config.MaxPort {
		return fmt.Errorf("%s: %d", config.ErrPortRange, n)
	}
	return nil
}

// Handler returns the routes served by s.
func (s *DiffServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteDiff, s.handleDiff)
	mux.HandleFunc(config.RouteHealth, s.handleHealth)
	return mux
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *DiffServer) Start(ctx context.Context) error {
	if err := ValidatePort(s.Port); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// handleDiff computes the difference between the start and end query
// parameters and serves it as JSON or iCalendar.
func (s *DiffServer) handleDiff(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r) {
		return
	}

	q := r.URL.Query()
	rawStart, rawEnd := q.Get(config.QueryStart), q.Get(config.QueryEnd)
	if rawStart == "" || rawEnd == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: config.ErrMissingQuery})
		return
	}

	format := q.Get(config.QueryFormat)
	if format == "" {
		format = config.FormatJSON
	}
	if format != config.FormatJSON && format != config.FormatICS {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: fmt.Sprintf("%s: %q", config.ErrUnknownFormat, format),
		})
		return
	}

	log := slog.With(
		config.LogKeyComponent, config.CompServer,
		config.LogKeyStart, rawStart,
		config.LogKeyEnd, rawEnd,
	)

	var end calendar.Date
	start, err := datediff.Parse(rawStart)
	if err == nil {
		end, err = datediff.Parse(rawEnd)
	}
	if err == nil {
		s.serveDiff(w, r, log, format, start, end)
		return
	}

	resp := errorResponse{Error: err.Error()}
	var verr *calendar.ValidationError
	if errors.As(err, &verr) {
		resp.Rule = verr.Rule.String()
	}
	log.InfoContext(r.Context(), config.MsgDiffRejected,
		config.LogKeyRule, resp.Rule,
		config.LogKeyError, err,
	)
	writeJSON(w, http.StatusBadRequest, resp)
}

func (s *DiffServer) serveDiff(w http.ResponseWriter, r *http.Request, log *slog.Logger, format string, start, end calendar.Date) {
	res := datediff.Between(start, end)

	var (
		body        []byte
		contentType string
		err         error
	)
	switch format {
	case config.FormatICS:
		contentType = config.MimeTextCalendar
		body, err = engine.IntervalCalendar(start, end, res, s.now())
	default:
		contentType = config.MimeJSON
		body, err = marshalLine(diffResponse{Start: start, End: end, Result: res})
	}
	if errors.Is(err, engine.ErrYearRange) {
		log.InfoContext(r.Context(), config.MsgDiffRejected, config.LogKeyError, err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		log.ErrorContext(r.Context(), config.ErrEncodeResp, config.LogKeyError, err)
		http.Error(w, config.HTTPMsgInternalErr, http.StatusInternalServerError)
		return
	}

	log.DebugContext(r.Context(), config.MsgDiffComputed,
		config.LogKeyFormat, format,
		config.LogKeyTotalDays, res.TotalDays,
		config.LogKeyInverted, res.Inverted,
	)

	hash := sha256.Sum256(body)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	w.Header().Set(config.HeaderContentType, contentType)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPublic)
	w.Header().Set(config.HeaderETag, etag)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodGet {
		if _, err := w.Write(body); err != nil {
			log.ErrorContext(r.Context(), config.ErrWriteResp, config.LogKeyError, err)
		}
	}
}

func (s *DiffServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r) {
		return
	}
	w.Header().Set(config.HeaderContentType, config.MimeTextPlain)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlNoStore)
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodGet {
		_, _ = w.Write([]byte(config.HTTPMsgHealthy))
	}
}

func (s *DiffServer) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock.Now()
}

// allowMethod accepts GET and HEAD and answers 405 to anything else.
func allowMethod(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set(config.HeaderAllow, config.AllowedMethods)
	http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := marshalLine(v)
	if err != nil {
		slog.Error(config.ErrEncodeResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
		http.Error(w, config.HTTPMsgInternalErr, http.StatusInternalServerError)
		return
	}
	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlNoStore)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func marshalLine(v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append(body, '\n'), nil
}
