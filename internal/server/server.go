// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/runtimejs/runtimectl/internal/artifact"
)

const (
	readHeaderTimeout = 10 * time.Second
	notFoundBody      = "Not found"
)

// Config defines what a [Server] serves and where.
type Config struct {
	Kernel string
	Initrd string

	// BootScript is optional. It is only served if set.
	BootScript string

	// Port to listen on. Zero means [artifact.DefaultPort].
	Port uint16

	Logger *slog.Logger
}

type route struct {
	path        string
	contentType string
}

// Server serves artifacts over HTTP.
type Server struct {
	routes map[string]route
	port   uint16
	logger *slog.Logger
}

// New creates a new [Server]. All configured files must exist. Otherwise an
// error wrapping [artifact.ErrNoArtifact] is returned.
func New(cfg Config) (*Server, error) {
	files := []struct {
		kind     string
		path     string
		endpoint string
		ctype    string
		optional bool
	}{
		{"kernel", cfg.Kernel, artifact.KernelEndpoint, artifact.BinaryContentType, false},
		{"initrd", cfg.Initrd, artifact.InitrdEndpoint, artifact.BinaryContentType, false},
		{"boot script", cfg.BootScript, artifact.BootScriptEndpoint, artifact.TextContentType, true},
	}

	routes := make(map[string]route, len(files))

	for _, file := range files {
		if file.path == "" && file.optional {
			continue
		}

		err := artifact.Stat(file.path).Require(file.kind)
		if err != nil {
			return nil, err
		}

		routes[file.endpoint] = route{
			path:        file.path,
			contentType: file.ctype,
		}
	}

	port := cfg.Port
	if port == 0 {
		port = artifact.DefaultPort
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		routes: routes,
		port:   port,
		logger: logger,
	}, nil
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return ":" + strconv.FormatUint(uint64(s.port), 10)
}

// Serve listens on the configured port and serves until the context is done.
// A bind failure is returned as error wrapping [ErrBind].
func (s *Server) Serve(ctx context.Context) error {
	var lc net.ListenConfig

	listener, err := lc.Listen(ctx, "tcp", s.Addr())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBind, err)
	}

	return s.ServeListener(ctx, listener)
}

// ServeListener serves on the given listener until the context is done. The
// listener is closed on return.
//
// Once the context is done, the listener and all connections are closed
// right away, including those still streaming an artifact.
func (s *Server) ServeListener(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	closeDone := make(chan struct{})

	go func() {
		defer close(closeDone)

		<-ctx.Done()

		_ = srv.Close()
	}()

	s.logger.Info("Listening", slog.String("addr", listener.Addr().String()))

	err := srv.Serve(listener)

	cancel()
	<-closeDone

	if !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}

	return nil
}

// ServeHTTP implements [http.Handler].
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	uri := r.URL.Path

	route, exists := s.routes[uri]
	if !exists {
		s.logger.Debug("Not found",
			slog.String("remote", r.RemoteAddr),
			slog.String("method", r.Method),
			slog.String("path", uri))

		w.Header().Set("Content-Type", artifact.TextContentType)
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, notFoundBody)

		return
	}

	s.logger.Info("Serving",
		slog.String("remote", r.RemoteAddr),
		slog.String("method", r.Method),
		slog.String("path", uri),
		slog.String("file", route.path))

	s.serveFile(w, route)
}

func (s *Server) serveFile(w http.ResponseWriter, route route) {
	file, err := os.Open(route.path)
	if err != nil {
		s.logger.Error("Failed to open artifact",
			slog.String("file", route.path),
			slog.Any("error", err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", route.contentType)

	if info, err := file.Stat(); err == nil {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	}

	w.WriteHeader(http.StatusOK)

	// Errors here are usually clients going away. The response is already
	// started, so just log it.
	_, err = io.Copy(w, file)
	if err != nil {
		s.logger.Warn("Failed to stream artifact",
			slog.String("file", route.path),
			slog.Any("error", err))
	}
}
