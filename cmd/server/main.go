package main

import (
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/napolitain/forge-scheduler/internal/converter"
	"github.com/napolitain/forge-scheduler/internal/solver"
	"github.com/napolitain/forge-scheduler/internal/solver/forge"
)

var addr = flag.String("addr", ":8080", "HTTP listen address")

var log = logrus.New()

// maxMessageSize bounds one request frame
const maxMessageSize = 1 << 20

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// server answers solve requests over websocket
type server struct {
	log logrus.FieldLogger
}

// conn serializes writes: progress hooks fire from several goroutines
type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) send(msg converter.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(msg)
}

func newMux(s *server) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	return mux
}

// serveWs handles one client. Requests are solved one at a time; the
// connection's reader cancels the running solve when the client leaves,
// since r.Context() is not cancelled once the connection is hijacked.
func (s *server) serveWs(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer ws.Close()
	ws.SetReadLimit(maxMessageSize)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	c := &conn{ws: ws}
	reqs := make(chan converter.SolveRequest, 1)
	go s.readRequests(cancel, c, reqs)

	for req := range reqs {
		if err := s.solve(ctx, c, &req); err != nil {
			if ctx.Err() != nil {
				s.log.WithError(err).Info("solve cancelled, client gone")
				return
			}
			s.log.WithError(err).Warn("solve request failed")
			if err := c.send(converter.ErrorToMessage(err)); err != nil {
				return
			}
		}
	}
}

// readRequests decodes request frames until the connection fails, then
// cancels any running solve. At most one request waits behind the
// running one; further requests are refused.
func (s *server) readRequests(cancel context.CancelFunc, c *conn, reqs chan<- converter.SolveRequest) {
	defer cancel()
	defer close(reqs)

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.WithError(err).Debug("websocket read ended")
			}
			return
		}

		var req converter.SolveRequest
		if err := json.Unmarshal(data, &req); err != nil {
			if err := c.send(converter.ErrorToMessage(err)); err != nil {
				return
			}
			continue
		}

		select {
		case reqs <- req:
		default:
			if err := c.send(converter.ErrorToMessage(converter.ErrBusy)); err != nil {
				return
			}
		}
	}
}

// solve runs one request and streams progress, results and a summary
func (s *server) solve(ctx context.Context, c *conn, req *converter.SolveRequest) error {
	catalogs, err := converter.RequestToCatalogs(req)
	if err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"catalogs": len(catalogs),
		"horizon":  req.Horizon,
	}).Info("received solve request")

	opts := append(converter.RequestOptions(req),
		forge.WithLogger(s.log),
		forge.WithStepHook(func(st forge.StepStats) {
			// A failed write means the client left; its reader cancels ctx.
			_ = c.send(converter.StepToProgress(st))
		}),
	)

	outcomes, err := solver.SolveAll(ctx, catalogs, req.Horizon, opts...)
	if err != nil {
		return err
	}

	for _, o := range outcomes {
		if err := c.send(converter.OutcomeToResult(o)); err != nil {
			return err
		}
	}

	summary := converter.OutcomesToSummary(req.Horizon, outcomes)
	s.log.WithField("summary", summary.Payload).Info("solve request done")
	return c.send(summary)
}

func main() {
	flag.Parse()

	s := &server{log: log}

	log.Infof("websocket server listening on %s", *addr)
	if err := http.ListenAndServe(*addr, newMux(s)); err != nil {
		log.Fatalf("Failed to serve: %v", err)
	}
}
