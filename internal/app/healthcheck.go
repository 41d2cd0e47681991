package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// healthHandler responds OK to a liveness probe.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("health check endpoint hit", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// dotHandler serves the most recently compiled environment's graphviz DOT
// document as plain text.
func (a *App) dotHandler(dotStr string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a.logger.Debug("dot endpoint hit", "remote_addr", r.RemoteAddr)
		w.Header().Set("Content-Type", "text/vnd.graphviz")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, dotStr)
	}
}

// startServer starts the HTTP server exposing /dot and /health on port.
func (a *App) startServer(port int, dotStr string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)
	mux.HandleFunc("/dot", a.dotHandler(dotStr))

	addr := fmt.Sprintf(":%d", port)
	a.httpServer = &http.Server{Addr: addr, Handler: mux}

	go func() {
		a.logger.Info("server starting", "address", fmt.Sprintf("http://localhost%s", addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("server failed unexpectedly", "error", err)
		}
	}()
}

// closeServer gracefully shuts down the HTTP server started by startServer.
func (a *App) closeServer() error {
	if a.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a.logger.Info("shutting down server...")
	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("server shutdown failed", "error", err)
		return err
	}
	a.logger.Debug("server shut down gracefully")
	return nil
}
