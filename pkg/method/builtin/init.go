// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"context"

	"github.com/babooppa6/gleamSolver/pkg/answer"
	"github.com/babooppa6/gleamSolver/pkg/classify"
	"github.com/babooppa6/gleamSolver/pkg/common"
	"github.com/babooppa6/gleamSolver/pkg/group"
	"github.com/babooppa6/gleamSolver/pkg/host"
	"github.com/babooppa6/gleamSolver/pkg/method"
	"github.com/babooppa6/gleamSolver/pkg/notify"
)

// GroupChannel is the requester side of the group protocol.
type GroupChannel interface {
	Join(ctx context.Context, name, id string) (group.Status, error)
	Leave(ctx context.Context, name, id string) (bool, error)
}

// Dependencies holds dependencies needed by built-in handlers.
type Dependencies struct {
	Host      host.Host
	Committer *method.Committer
	Answers   *answer.Generator
	Groups    GroupChannel
	Notifier  notify.Notifier
	Rand      common.Rand
}

func (d *Dependencies) rand() common.Rand {
	if d.Rand == nil {
		d.Rand = common.NewRand(0)
	}
	return d.Rand
}

// RegisterHandlers registers built-in handler factories with dependencies.
func RegisterHandlers(deps *Dependencies) {
	method.RegisterHandlerType(string(classify.KindClick), func(config method.HandlerConfig) (method.Handler, error) {
		return NewClickHandler(config, deps), nil
	})

	method.RegisterHandlerType(string(classify.KindVideo), func(config method.HandlerConfig) (method.Handler, error) {
		return NewVideoHandler(config, deps), nil
	})

	method.RegisterHandlerType(string(classify.KindChoice), func(config method.HandlerConfig) (method.Handler, error) {
		return NewChoiceHandler(config, deps), nil
	})

	method.RegisterHandlerType(string(classify.KindQuestion), func(config method.HandlerConfig) (method.Handler, error) {
		return NewQuestionHandler(config, deps), nil
	})

	method.RegisterHandlerType(string(classify.KindMedia), func(config method.HandlerConfig) (method.Handler, error) {
		return NewMediaHandler(config, deps), nil
	})

	method.RegisterHandlerType(string(classify.KindGroup), func(config method.HandlerConfig) (method.Handler, error) {
		return NewGroupHandler(config, deps), nil
	})

	method.RegisterHandlerType(string(classify.KindUpload), func(config method.HandlerConfig) (method.Handler, error) {
		return NewUploadHandler(config), nil
	})
}

// DefaultConfigs enables every built-in handler with default parameters.
func DefaultConfigs() []method.HandlerConfig {
	kinds := []classify.Kind{
		classify.KindClick,
		classify.KindVideo,
		classify.KindChoice,
		classify.KindQuestion,
		classify.KindMedia,
		classify.KindGroup,
		classify.KindUpload,
	}

	configs := make([]method.HandlerConfig, 0, len(kinds))
	for _, k := range kinds {
		configs = append(configs, method.HandlerConfig{Kind: string(k), Enabled: true})
	}
	return configs
}

// base carries what every handler shares.
type base struct {
	config method.HandlerConfig
	kind   classify.Kind
	name   string
}

func (b *base) Kind() classify.Kind { return b.kind }

func (b *base) Name() string {
	if b.config.Name != "" {
		return b.config.Name
	}
	return b.name
}

func (b *base) Config() method.HandlerConfig { return b.config }

// Retract is not supported unless a handler overrides it.
func (b *base) Retract(ctx context.Context, d *method.Dispatch) error {
	return method.ErrRetractNotSupported
}
