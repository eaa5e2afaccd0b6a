package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/aaytec/rebound/internal/circuit"
	"github.com/aaytec/rebound/internal/circuitpath"
	"github.com/aaytec/rebound/internal/errorprovider"
	"github.com/aaytec/rebound/internal/metrics"
	"github.com/aaytec/rebound/internal/queue"
	"github.com/aaytec/rebound/internal/reqmodel"
	"github.com/aaytec/rebound/internal/rerrors"
	"github.com/aaytec/rebound/internal/rewrite"
	"github.com/aaytec/rebound/internal/upstreamclient"
)

// Worker owns its id, a read end of the shared queue, and references to
// the immutable Circuit, the shared UpstreamClient, and the ErrorProvider.
type Worker struct {
	ID            string
	Queue         *queue.Queue[*Job]
	Circuit       *circuit.Circuit
	Client        *upstreamclient.Client
	ErrorProvider *errorprovider.Provider
	Metrics       *metrics.Metrics
	Logger        *zap.Logger
}

// Run dequeues jobs until the queue is closed and drained. It never
// returns early on a single request's failure; per-request panics are
// recovered, logged, and answered with the ErrorProvider's response so
// the worker keeps serving.
func (w *Worker) Run(ctx context.Context) {
	for {
		job, ok := w.Queue.Pop()
		if !ok {
			return
		}
		w.handle(ctx, job)
	}
}

func (w *Worker) handle(ctx context.Context, job *Job) {
	defer close(job.Done)
	defer func() {
		if r := recover(); r != nil {
			w.Logger.Error("worker: recovered from panic",
				zap.String("worker_id", w.ID), zap.String("request_id", job.RequestID), zap.Any("panic", r))
			w.writeResponse(job, w.ErrorProvider.Provide())
		}
	}()

	inbound := reqmodel.FromHTTP(job.R)
	node := w.Circuit.Resolve(circuitpath.New(inbound.URI))

	if node.IsError() {
		ruleErr := rerrors.New(rerrors.RuleMiss, "no rule matched "+inbound.URI)
		w.Logger.Debug("worker: no rule matched",
			zap.String("worker_id", w.ID), zap.String("request_id", job.RequestID), zap.Error(ruleErr))
		w.Metrics.RecordRequest("", metrics.OutcomeRuleMiss)
		w.writeResponse(job, w.ErrorProvider.Provide())
		return
	}

	rulePattern := node.Rule.Pattern

	rewritten, ok := rewrite.Apply(inbound, node)
	if !ok {
		// node was resolved as Routable above, so this branch is
		// unreachable in practice; treated as a rule miss defensively.
		w.Metrics.RecordRequest(rulePattern, metrics.OutcomeRuleMiss)
		w.writeResponse(job, w.ErrorProvider.Provide())
		return
	}

	start := time.Now()
	resp, err := w.Client.Send(ctx, rewritten)
	w.Metrics.ObserveUpstreamDuration(rulePattern, time.Since(start))
	if err != nil {
		upErr := rerrors.Wrap(rerrors.UpstreamFailure, "send to rule "+rulePattern, err)
		w.Logger.Warn("worker: upstream request failed",
			zap.String("worker_id", w.ID), zap.String("request_id", job.RequestID),
			zap.String("rule", rulePattern), zap.Error(upErr))
		w.Metrics.RecordRequest(rulePattern, metrics.OutcomeUpstreamFailure)
		w.writeResponse(job, w.ErrorProvider.Provide())
		return
	}

	w.Metrics.RecordRequest(rulePattern, metrics.OutcomeOK)
	w.writeResponse(job, resp)
}

func (w *Worker) writeResponse(job *Job, resp *reqmodel.Response) {
	header := job.W.Header()
	for k, v := range resp.Headers {
		header.Set(k, v)
	}
	header.Set("X-Rebound-Request-Id", job.RequestID)
	job.W.WriteHeader(resp.Status)
	if _, err := job.W.Write(resp.Body); err != nil {
		respErr := rerrors.Wrap(rerrors.RespondFailure, "write response", err)
		w.Logger.Warn("worker: failed to write response",
			zap.String("worker_id", w.ID), zap.String("request_id", job.RequestID), zap.Error(respErr))
	}
}
