// Package master parses the already loaded configuration, opens the
// listening socket (plain or TLS), builds the Circuit once, spawns the
// worker pool, and runs the accept loop that feeds it.
package master

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aaytec/rebound/internal/circuit"
	"github.com/aaytec/rebound/internal/config"
	"github.com/aaytec/rebound/internal/errorprovider"
	"github.com/aaytec/rebound/internal/metrics"
	"github.com/aaytec/rebound/internal/queue"
	"github.com/aaytec/rebound/internal/rerrors"
	"github.com/aaytec/rebound/internal/upstreamclient"
	"github.com/aaytec/rebound/internal/worker"
)

// Master owns the listening socket, the request queue, and the worker
// pool lifecycle.
type Master struct {
	cfg           *config.Config
	circuit       *circuit.Circuit
	queue         *queue.Queue[*worker.Job]
	client        *upstreamclient.Client
	errorProvider *errorprovider.Provider
	metrics       *metrics.Metrics
	logger        *zap.Logger

	server *http.Server
}

// Deps bundles the external collaborators Master doesn't construct
// itself: the ErrorProvider (backed by REBOUND_SITE_DIR /
// REBOUND_DEFAULT_ERROR_FILE) and the metrics registry, both wired once
// at process startup in cmd/rebound.
type Deps struct {
	ErrorProvider *errorprovider.Provider
	Metrics       *metrics.Metrics
	Logger        *zap.Logger
}

// New builds a Master from a parsed Config and its external dependencies.
// It does not yet open the listening socket; call Run for that.
func New(cfg *config.Config, deps Deps) *Master {
	rules := cfg.BuildRules()
	return &Master{
		cfg:           cfg,
		circuit:       circuit.Build(rules),
		queue:         queue.New[*worker.Job](),
		client:        upstreamclient.New(upstreamclient.Config{}),
		errorProvider: deps.ErrorProvider,
		metrics:       deps.Metrics,
		logger:        deps.Logger,
	}
}

// ServeHTTP implements http.Handler: it enqueues the request as a Job and
// blocks until a worker goroutine has written the response. Go's net/http
// contract requires the response to be written before ServeHTTP returns,
// so the accept goroutine cannot hand the connection off and move on the
// way an independent worker thread could.
func (m *Master) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	job := worker.NewJob(w, r, uuid.NewString())
	if err := m.queue.Push(job); err != nil {
		qerr := rerrors.Wrap(rerrors.QueueSendFailure, "push job "+job.RequestID, err)
		m.logger.Warn("master: queue send failed, dropping request",
			zap.String("request_id", job.RequestID), zap.Error(qerr))
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	m.metrics.SetQueueDepth(m.queue.Len())
	<-job.Done
}

// Run opens the listening socket (TLS if cfg.SSL is set), spawns
// cfg.WorkerCount() workers sharing the queue and Circuit, and serves
// until ctx is cancelled. On cancellation it closes the listener, closes
// the queue's send side, and waits for all workers to drain before
// returning.
func (m *Master) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return rerrors.Wrap(rerrors.BindFailure, "listen on "+addr, err)
	}

	if m.cfg.SSL != nil {
		cert, err := tls.LoadX509KeyPair(m.cfg.SSL.PubCert, m.cfg.SSL.PrivKey)
		if err != nil {
			ln.Close()
			return rerrors.Wrap(rerrors.TLSFailure, "load certificate/key pair", err)
		}
		ln = tls.NewListener(ln, &tls.Config{Certificates: []tls.Certificate{cert}})
	}

	m.server = &http.Server{Handler: m}

	group := m.startWorkers(ctx)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- m.server.Serve(ln)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil && err != http.ErrServerClosed {
			m.logger.Error("master: serve failed", zap.Error(err))
		}
	}

	m.server.Close()
	m.queue.Close()
	return group.Wait()
}

// startWorkers spawns cfg.WorkerCount() workers sharing the queue and
// Circuit, each running until the queue is closed and drained (Run closes
// the queue once ctx is cancelled).
func (m *Master) startWorkers(ctx context.Context) *errgroup.Group {
	group, groupCtx := errgroup.WithContext(ctx)
	for i := uint(0); i < m.cfg.WorkerCount(); i++ {
		w := &worker.Worker{
			ID:            fmt.Sprintf("worker-%d", i),
			Queue:         m.queue,
			Circuit:       m.circuit,
			Client:        m.client,
			ErrorProvider: m.errorProvider,
			Metrics:       m.metrics,
			Logger:        m.logger,
		}
		group.Go(func() error {
			w.Run(groupCtx)
			return nil
		})
	}
	return group
}
