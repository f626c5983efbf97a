package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Rorical/RoriFunc/internal/core"
)

// Server streams chat turns over HTTP.
type Server struct {
	StartTime time.Time
	Svr       *http.Server
	conf      *Conf
	svc       *core.Service
}

func NewServer(conf *Conf, svc *core.Service) *Server {
	if conf == nil {
		conf = ServerConfigs()
	}
	s := &Server{
		StartTime: time.Now().UTC(),
		conf:      conf,
		svc:       svc,
	}
	s.Svr = &http.Server{
		Handler:      s.routes(),
		Addr:         conf.Addr,
		ReadTimeout:  conf.TimeoutRead,
		WriteTimeout: conf.TimeoutWrite,
		IdleTimeout:  conf.TimeoutIdle,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.Svr.Handler
}

func secondsToTimeStr(seconds float64) string {
	duration := time.Duration(int64(seconds)) * time.Second
	timeValue := time.Time{}.Add(duration)
	return timeValue.Format("15:04:05")
}

// returns the current run time of the server
// as a HH:MM:SS formatted string.
func (s *Server) RunTime() string {
	return secondsToTimeStr(time.Since(s.StartTime).Seconds())
}

// Run serves until ctx is done, then shuts down with a grace period of ten
// seconds before forcing connections closed.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", s.Svr.Addr)
		if err := s.Svr.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Printf("shutting down server...")
	if err := s.Svr.Shutdown(shutdownCtx); err != nil {
		if closeErr := s.Svr.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			return fmt.Errorf("server shutdown failed: %w", closeErr)
		}
		return fmt.Errorf("server shutdown timed out: %w", err)
	}
	log.Printf("server run time: %s", s.RunTime())
	return nil
}
