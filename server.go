package main

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"twentyfour/clock"
	"twentyfour/config"
)

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
  body { background: black; margin: 0; display: grid; place-items: center; min-height: 100vh; }
  #clock svg { width: min(96vw, 96vh); height: auto; }
</style>
</head>
<body>
<div id="clock">{{.SVG}}</div>
<script>
  const events = new EventSource({{.EventsURL}});
  events.onmessage = (e) => { document.getElementById("clock").innerHTML = e.data; };
</script>
</body>
</html>
`

type server struct {
	mu     sync.RWMutex
	cfg    config.Config
	place  Place
	ticker *Ticker
	page   *template.Template
}

func newServer(cfg config.Config, place Place, ticker *Ticker) *server {
	return &server{
		cfg:    cfg,
		place:  place,
		ticker: ticker,
		page:   template.Must(template.New("page").Parse(pageHTML)),
	}
}

// reload() swaps the defaults used for new faces
func (s *server) reload(cfg config.Config, place Place) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg, s.place = cfg, place
	logger.Info("Clock defaults reloaded", zap.String("place", place.Name))
}

func (s *server) defaults() (config.Config, Place) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg, s.place
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /clock.svg", s.handleSVG)
	mux.HandleFunc("GET /events", s.handleEvents)
	mux.HandleFunc("GET /sun.json", s.handleSun)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	return logRequests(mux)
}

// ListenAndServe() serves until ctx is done, then shuts down gracefully
func (s *server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP shutdown", zap.Error(err))
		}
	}()

	logger.Info("HTTP server listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *server) faceFromRequest(r *http.Request) (*clock.Face, Place, error) {
	cfg, place := s.defaults()
	face, err := newFace(cfg, place, time.Now())
	if err != nil {
		return nil, place, err
	}
	query := r.URL.Query()
	if err := applyAttributes(face, place, query.Get); err != nil {
		return nil, place, err
	}
	return face, place, nil
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	face, place, err := s.faceFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	title := "twentyfour"
	if place.Name != "" {
		title += " · " + place.Name
	}
	eventsURL := "/events"
	if r.URL.RawQuery != "" {
		eventsURL += "?" + r.URL.RawQuery
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = s.page.Execute(w, struct {
		Title     string
		SVG       template.HTML
		EventsURL string
	}{
		Title:     title,
		SVG:       template.HTML(face.SVG()),
		EventsURL: eventsURL,
	})
	if err != nil {
		logger.Error("Rendering page", zap.Error(err))
	}
}

func (s *server) handleSVG(w http.ResponseWriter, r *http.Request) {
	face, _, err := s.faceFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	if err := face.Render(w); err != nil {
		logger.Warn("Writing SVG", zap.Error(err))
	}
}

func (s *server) handleSun(w http.ResponseWriter, r *http.Request) {
	face, place, err := s.faceFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summarize(face, place.Name)); err != nil {
		logger.Warn("Writing sun summary", zap.Error(err))
	}
}

// handleEvents() streams the face as server-sent events, one frame per tick
func (s *server) handleEvents(w http.ResponseWriter, r *http.Request) {
	face, _, err := s.faceFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rc := http.NewResponseController(w)
	id := uuid.New()
	log := logger.With(zap.String("subscriber", id.String()))

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	var mu sync.Mutex
	frames := make(chan string, 1)
	face.Reset(time.Now())
	job, err := s.ticker.Every(face.Interval(), func() {
		mu.Lock()
		if face.Tick(time.Now()) {
			log.Debug("New day", zap.String("date", face.DateString()))
		}
		frame := face.SVG()
		mu.Unlock()
		select {
		case frames <- frame:
		default: // the client is behind, it gets the next one
		}
	})
	switch {
	case errors.Is(err, errStopped):
		frames <- face.SVG()
	case err != nil:
		log.Error("Cannot schedule clock", zap.Error(err))
		return
	}
	defer s.ticker.Cancel(job)
	log.Info("Subscriber connected", zap.Duration("interval", face.Interval()))
	defer log.Info("Subscriber disconnected")

	for {
		select {
		case <-r.Context().Done():
			return
		case frame := <-frames:
			if err := writeEvent(w, frame); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}

// writeEvent() writes one server-sent event, multi-line data is split into
// several data fields
func writeEvent(w http.ResponseWriter, data string) error {
	var b strings.Builder
	for _, line := range strings.Split(data, "\n") {
		b.WriteString("data: ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	_, err := w.Write([]byte(b.String()))
	return err
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("HTTP request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}
