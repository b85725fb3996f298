// Package adminapi serves the optional operator-facing HTTP surface:
// a JSON stats snapshot, a websocket that pushes a new snapshot on
// every SIGHUP-driven report, and a Prometheus /metrics endpoint. It is
// off by default and never fatal to start — a bind failure here must
// not take down the crack server itself.
package adminapi

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arbur/crackserver/internal/logging"
	"github.com/arbur/crackserver/internal/reporter"
	"github.com/arbur/crackserver/internal/stats"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server serves the admin HTTP surface on a single address.
type Server struct {
	http *http.Server
	ln   net.Listener
}

// Start binds addr and begins serving in a background goroutine. It
// registers GET /stats, GET /stats/ws, and GET /metrics against reg and
// rep. Start returns once the listener is bound so callers can log the
// actual address; serving errors after that point are logged but not
// returned.
func Start(addr string, reg *stats.Registry, rep *reporter.Reporter) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	r := mux.NewRouter()
	r.HandleFunc("/stats", statsHandler(reg)).Methods(http.MethodGet)
	r.HandleFunc("/stats/ws", wsHandler(reg, rep)).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	srv := &http.Server{Handler: r}
	s := &Server{http: srv, ln: ln}

	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			logging.Log.Errorf("admin HTTP server error: %v", err)
		}
	}()
	return s, nil
}

// Addr reports the bound address, useful when Start was given an
// ephemeral port.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Shutdown gracefully stops the admin server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func statsHandler(reg *stats.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(reg.Snapshot())
	}
}

// wsHandler upgrades to a websocket, pushes the current snapshot
// immediately so a client connecting between two dumps isn't left
// waiting, then pushes one more JSON snapshot each time the reporter
// dumps stats, until the client disconnects or a write fails.
func wsHandler(reg *stats.Registry, rep *reporter.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logging.Log.Debugf("websocket upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		updates := make(chan stats.Snapshot, 1)
		rep.Subscribe(updates)
		defer rep.Unsubscribe(updates)

		conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteJSON(reg.Snapshot()); err != nil {
			return
		}

		for snap := range updates {
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteJSON(snap); err != nil {
				return
			}
		}
	}
}
