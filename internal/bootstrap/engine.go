// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/babooppa6/gleamSolver/pkg/answer"
	"github.com/babooppa6/gleamSolver/pkg/campaign"
	"github.com/babooppa6/gleamSolver/pkg/classify"
	"github.com/babooppa6/gleamSolver/pkg/common"
	"github.com/babooppa6/gleamSolver/pkg/group"
	"github.com/babooppa6/gleamSolver/pkg/host"
	"github.com/babooppa6/gleamSolver/pkg/method"
	"github.com/babooppa6/gleamSolver/pkg/method/builtin"
	"github.com/babooppa6/gleamSolver/pkg/notify"
	"github.com/babooppa6/gleamSolver/pkg/policy"
	"github.com/babooppa6/gleamSolver/pkg/poll"
	"github.com/babooppa6/gleamSolver/pkg/profile"
)

// HubFactory builds the helper frame opener for a requester posting from
// parent.
type HubFactory func(parent group.Window) group.FrameOpener

// EngineOptions holds what the engine is built from.
type EngineOptions struct {
	SessionID string
	Profile   *profile.Profile
	Host      host.Host
	Notifier  notify.Notifier
	Hub       HubFactory
	// Rand defaults to a randomly seeded source.
	Rand common.Rand
}

// Engine is a wired solving session.
type Engine struct {
	Session      *campaign.Session
	Orchestrator *campaign.Orchestrator
	Selector     *policy.Selector
	Classifier   *classify.Classifier
	Registry     *method.Registry
	Groups       *group.Requester
}

// InitEngine builds the engine in dependency order:
// classifier and mode selector, group channel, handlers, orchestrator and
// finally the session owning them.
func InitEngine(ctx context.Context, opts EngineOptions) (*Engine, error) {
	p := opts.Profile
	log := logrus.WithField("session_id", opts.SessionID)

	rnd := opts.Rand
	if rnd == nil {
		rnd = common.NewRand(0)
	}

	classifier := classify.New()
	selector := policy.NewSelector()
	profile.Apply(p, selector, classifier)

	self := group.NewLocalWindow(p.Group.HostOrigin, 16)
	requester := group.NewRequester(self, opts.Hub(self), group.RequesterConfig{
		HubOrigin: p.Group.HubOrigin,
		Timeout:   p.Group.Timeout,
	}, log)

	deps := &builtin.Dependencies{
		Host:      opts.Host,
		Committer: method.NewCommitter(opts.Host, poll.New(p.Poll.Interval, p.Poll.Timeout)),
		Answers:   answer.New(answer.WithRepeatCap(p.Answers.RepeatCap), answer.WithRand(rnd)),
		Groups:    requester,
		Notifier:  opts.Notifier,
		Rand:      rnd,
	}

	executor, registry, err := InitHandlerExecutor(p, deps)
	if err != nil {
		_ = requester.Close()
		return nil, fmt.Errorf("failed to init handlers: %w", err)
	}

	orch := campaign.NewOrchestrator(opts.Host, executor, selector, opts.Notifier,
		ScheduleConfig(p),
		campaign.WithRand(rnd),
		campaign.WithClassifier(classifier),
		campaign.WithLogger(log),
	)

	session := campaign.NewSession(ctx, opts.SessionID, opts.Host, orch, selector, opts.Notifier)
	session.AddCloser(requester)

	log.Infof("engine initialized with %d handlers", registry.Count())

	return &Engine{
		Session:      session,
		Orchestrator: orch,
		Selector:     selector,
		Classifier:   classifier,
		Registry:     registry,
		Groups:       requester,
	}, nil
}

// Reload applies a new profile revision to a running engine. The handler
// set is fixed for the life of the engine.
func (e *Engine) Reload(p *profile.Profile) {
	profile.Apply(p, e.Selector, e.Classifier)
	e.Orchestrator.SetConfig(ScheduleConfig(p))
	logrus.Infof("profile reloaded for session %s", e.Session.ID())
}

// ScheduleConfig converts the profile's schedule.
func ScheduleConfig(p *profile.Profile) campaign.Config {
	return campaign.Config{
		MinDelay:    p.Schedule.MinDelay,
		MaxDelay:    p.Schedule.MaxDelay,
		LoadTimeout: p.Schedule.LoadTimeout,
	}
}
