// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package campaign schedules and dispatches the entries of one campaign.
package campaign

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"github.com/babooppa6/gleamSolver/pkg/classify"
	"github.com/babooppa6/gleamSolver/pkg/common"
	"github.com/babooppa6/gleamSolver/pkg/entry"
	"github.com/babooppa6/gleamSolver/pkg/host"
	"github.com/babooppa6/gleamSolver/pkg/method"
	"github.com/babooppa6/gleamSolver/pkg/metrics"
	"github.com/babooppa6/gleamSolver/pkg/notify"
	"github.com/babooppa6/gleamSolver/pkg/policy"
)

const (
	DefaultMinDelay    = 1 * time.Second
	DefaultMaxDelay    = 3 * time.Second
	DefaultLoadTimeout = 60 * time.Second

	minStep = time.Millisecond
)

// Skip reasons reported in metrics and Report.Skipped.
const (
	SkipIneligible      = "ineligible"
	SkipUnauthenticated = "unauthenticated"
	SkipUnsupported     = "unsupported"
	SkipMode            = "mode"
	SkipAborted         = "aborted"
)

// ErrNotLoaded is returned when the host never finished loading.
var ErrNotLoaded = errors.New("campaign widget did not load")

// Config tunes the orchestrator.
type Config struct {
	// MinDelay and MaxDelay bound the random gap between two dispatches.
	MinDelay time.Duration
	MaxDelay time.Duration
	// LoadTimeout bounds the wait for the host to finish loading.
	LoadTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.MinDelay <= 0 && c.MaxDelay <= 0 {
		c.MinDelay, c.MaxDelay = DefaultMinDelay, DefaultMaxDelay
	}
	if c.MinDelay <= 0 {
		c.MinDelay = DefaultMinDelay
	}
	if c.MaxDelay < c.MinDelay {
		c.MaxDelay = c.MinDelay
	}
	if c.LoadTimeout <= 0 {
		c.LoadTimeout = DefaultLoadTimeout
	}
	return c
}

// Orchestrator enumerates eligible entries and dispatches them one by one
// after randomized, strictly increasing delays.
type Orchestrator struct {
	host       host.Host
	executor   *method.Executor
	classifier *classify.Classifier
	selector   *policy.Selector
	notifier   notify.Notifier
	rand       common.Rand
	log        *logrus.Entry

	mu  sync.RWMutex
	cfg Config
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRand sets the randomness used for ordering and jitter.
func WithRand(r common.Rand) Option {
	return func(o *Orchestrator) { o.rand = r }
}

// WithClassifier sets the classifier, for example one with disabled types.
func WithClassifier(c *classify.Classifier) Option {
	return func(o *Orchestrator) { o.classifier = c }
}

// WithLogger sets the base logger.
func WithLogger(log *logrus.Entry) Option {
	return func(o *Orchestrator) { o.log = log }
}

// NewOrchestrator creates an orchestrator.
func NewOrchestrator(h host.Host, executor *method.Executor, selector *policy.Selector, notifier notify.Notifier, cfg Config, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		host:       h,
		executor:   executor,
		classifier: classify.New(),
		selector:   selector,
		notifier:   notifier,
		cfg:        cfg.withDefaults(),
		log:        logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.rand == nil {
		o.rand = common.NewRand(0)
	}
	return o
}

// SetConfig replaces the schedule configuration for later runs.
func (o *Orchestrator) SetConfig(cfg Config) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cfg = cfg.withDefaults()
}

// Config returns the current schedule configuration.
func (o *Orchestrator) Config() Config {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.cfg
}

// Classifier returns the classifier used for routing.
func (o *Orchestrator) Classifier() *classify.Classifier {
	return o.classifier
}

// Prepare waits until the host reports it has loaded, then reveals hidden
// entries.
func (o *Orchestrator) Prepare(ctx context.Context) error {
	cfg := o.Config()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 250 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = cfg.LoadTimeout

	err := backoff.Retry(func() error {
		loaded, err := o.host.Loaded(ctx)
		if err != nil {
			return err
		}
		if !loaded {
			return ErrNotLoaded
		}
		return nil
	}, backoff.WithContext(b, ctx))
	if err != nil {
		return fmt.Errorf("waiting for host: %w", err)
	}

	if err := o.host.RevealHidden(ctx); err != nil {
		return fmt.Errorf("failed to reveal hidden entries: %w", err)
	}
	o.log.Info("host loaded, hidden entries revealed")
	return nil
}

// Plan returns n cumulative dispatch offsets. Every gap is drawn uniformly
// from [min, max] and at least one millisecond, so offsets strictly increase.
func (o *Orchestrator) Plan(n int) []time.Duration {
	cfg := o.Config()

	offsets := make([]time.Duration, n)
	var at time.Duration
	for i := range offsets {
		gap := cfg.MinDelay
		if span := cfg.MaxDelay - cfg.MinDelay; span > 0 {
			gap += time.Duration(o.rand.Int64N(int64(span) + 1))
		}
		if gap < minStep {
			gap = minStep
		}
		at += gap
		offsets[i] = at
	}
	return offsets
}

// Run performs one orchestration pass: it enumerates eligible entries,
// shuffles them and dispatches each after its planned delay. The pass stops
// dispatching once the campaign turns terminal.
func (o *Orchestrator) Run(ctx context.Context) (*Report, error) {
	scope := common.StartScope(ctx, "campaign.run")
	defer scope.Finish()
	ctx = scope.Ctx
	log := o.log.WithField("traceID", scope.TraceID)

	report := newReport()

	camp, err := o.host.Campaign(ctx)
	if err != nil {
		scope.TraceError(err)
		return nil, fmt.Errorf("failed to read campaign: %w", err)
	}
	if done, reason := camp.Terminal(); done {
		o.terminate(ctx, log, report, reason)
		metrics.Runs.WithLabelValues(OutcomeAborted).Inc()
		return report, nil
	}

	queue, err := o.eligible(ctx, report)
	if err != nil {
		scope.TraceError(err)
		return nil, err
	}

	o.rand.Shuffle(len(queue), func(i, j int) { queue[i], queue[j] = queue[j], queue[i] })
	report.Total = len(queue)
	scope.SetAttributes("entries", report.Total)
	log.Infof("scheduling %d eligible entries for campaign %s", report.Total, camp.ID)

	p := &pass{
		o:      o,
		log:    log,
		report: report,
		total:  len(queue),
		stop:   make(chan struct{}),
	}
	p.progress(ctx)

	var wg sync.WaitGroup
	for i, at := range o.Plan(len(queue)) {
		wg.Add(1)
		go func(e *entry.Entry, at time.Duration) {
			defer wg.Done()
			p.dispatchAt(ctx, scope, e, at)
		}(queue[i], at)
	}
	wg.Wait()

	outcome := OutcomeCompleted
	if report.Aborted {
		outcome = OutcomeAborted
	} else if ctx.Err() != nil {
		outcome = OutcomeCancelled
	}
	metrics.Runs.WithLabelValues(outcome).Inc()
	log.Infof("pass finished (%s): %d/%d processed", outcome, report.Processed, report.Total)

	return report, ctx.Err()
}

// eligible lists entries that can be entered and whose provider is linked.
func (o *Orchestrator) eligible(ctx context.Context, report *Report) ([]*entry.Entry, error) {
	auth, err := o.host.Authentications(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read authentications: %w", err)
	}
	entries, err := o.host.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}

	var queue []*entry.Entry
	for _, e := range entries {
		switch {
		case !e.Eligible():
			report.exclude(SkipIneligible)
		case !auth.Satisfies(e):
			report.exclude(SkipUnauthenticated)
		default:
			queue = append(queue, e)
		}
	}
	return queue, nil
}

func (o *Orchestrator) terminate(ctx context.Context, log *logrus.Entry, report *Report, reason string) {
	report.abort(reason)
	log.Warnf("campaign is over: %s", reason)
	if err := o.notifier.Upsert(context.WithoutCancel(ctx), notify.KeyTerminal, reason); err != nil {
		log.Errorf("failed to record terminal status: %v", err)
	}
}

// pass is the state shared by the dispatches of one Run.
type pass struct {
	o      *Orchestrator
	log    *logrus.Entry
	report *Report
	total  int

	abortOnce sync.Once
	stop      chan struct{}
}

func (p *pass) dispatchAt(ctx context.Context, scope *common.Scope, e *entry.Entry, at time.Duration) {
	t := time.NewTimer(at)
	defer t.Stop()

	select {
	case <-t.C:
	case <-p.stop:
		p.report.exclude(SkipAborted)
		return
	case <-ctx.Done():
		return
	}

	child := scope.NewChildScope("campaign.dispatch").WithField("entry_id", e.ID)
	defer child.Finish()

	p.dispatch(child.Ctx, child.Log, e)
	p.progress(ctx)
}

func (p *pass) dispatch(ctx context.Context, log *logrus.Entry, e *entry.Entry) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("dispatch of entry %s panicked: %v", e.ID, r)
			p.report.finish(e.ID, &method.Result{EntryID: e.ID, Error: fmt.Errorf("%w: %v", method.ErrHandlerPanic, r)})
		}
	}()

	select {
	case <-p.stop:
		p.report.exclude(SkipAborted)
		return
	default:
	}

	camp, err := p.o.host.Campaign(ctx)
	if err != nil {
		log.Errorf("failed to read campaign: %v", err)
		p.report.finish(e.ID, &method.Result{EntryID: e.ID, Error: err})
		return
	}
	if done, reason := camp.Terminal(); done {
		p.abortOnce.Do(func() {
			p.o.terminate(ctx, log, p.report, reason)
			close(p.stop)
		})
		p.report.exclude(SkipAborted)
		return
	}

	current, err := p.o.host.Entry(ctx, e.ID)
	if err != nil {
		log.Errorf("failed to re-read entry: %v", err)
		p.report.finish(e.ID, &method.Result{EntryID: e.ID, Error: err})
		return
	}
	if !current.Eligible() {
		p.report.skip(e.ID, SkipIneligible)
		return
	}

	mode := p.o.selector.Resolve(camp.Type)
	route := p.o.classifier.Classify(current)
	if !route.Supported() {
		log.Debugf("entry type %s is not supported", current.Type)
		p.report.skip(e.ID, SkipUnsupported)
		return
	}
	if !mode.Allows(route.Tier) {
		log.Infof("skipping %s entry under %s", route.Tier, mode)
		p.report.skip(e.ID, SkipMode)
		return
	}

	d := method.NewDispatch(current, route, mode)
	d.Log = log.WithFields(logrus.Fields{"entry_type": current.Type, "kind": route.Kind, "mode": mode})
	p.report.finish(e.ID, p.o.executor.Execute(ctx, d))
}

// progress publishes processed/total.
func (p *pass) progress(ctx context.Context) {
	processed := p.report.processed()

	ratio := 1.0
	if p.total > 0 {
		ratio = float64(processed) / float64(p.total)
	}
	metrics.Progress.Set(ratio)

	if err := p.o.notifier.Upsert(context.WithoutCancel(ctx), notify.KeyProgress, fmt.Sprintf("%d/%d", processed, p.total)); err != nil {
		p.log.Errorf("failed to record progress: %v", err)
	}
}
