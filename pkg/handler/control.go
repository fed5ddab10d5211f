// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package handler

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/babooppa6/gleamSolver/pkg/campaign"
	"github.com/babooppa6/gleamSolver/pkg/common"
	"github.com/babooppa6/gleamSolver/pkg/notify"
	"github.com/babooppa6/gleamSolver/pkg/policy"
)

// Session is the part of a solving session the control service drives.
type Session interface {
	Trigger(ctx context.Context) (*campaign.TriggerInfo, error)
	Mode(ctx context.Context) (policy.Mode, error)
	SetMode(value string) error
	Notifications(ctx context.Context) (*notify.Snapshot, error)
}

// Control serves the SolverControl service for one session.
type Control struct {
	UnimplementedSolverControlServer

	session Session
}

// NewControl creates the control service.
func NewControl(session Session) *Control {
	return &Control{session: session}
}

// Trigger starts an orchestration pass.
func (c *Control) Trigger(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	scope := common.StartScope(ctx, "Control.Trigger")
	defer scope.Finish()

	info, err := c.session.Trigger(scope.Ctx)
	if err != nil {
		scope.TraceError(err)
		logrus.Warnf("trigger rejected: %v", err)
		return nil, toStatus(err)
	}

	logrus.Infof("triggered run %d of session %s with %d pending entries", info.Run, info.SessionID, info.Pending)
	return structpb.NewStruct(map[string]interface{}{
		FieldSessionID: info.SessionID,
		FieldRun:       info.Run,
		FieldPending:   info.Pending,
	})
}

// GetMode returns the mode the next dispatch would use.
func (c *Control) GetMode(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	mode, err := c.session.Mode(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return wrapperspb.String(string(mode)), nil
}

// SetMode overrides the mode. An empty value restores the campaign default.
func (c *Control) SetMode(ctx context.Context, in *wrapperspb.StringValue) (*emptypb.Empty, error) {
	if err := c.session.SetMode(in.GetValue()); err != nil {
		return nil, toStatus(err)
	}
	return &emptypb.Empty{}, nil
}

// Notifications returns the notification set.
func (c *Control) Notifications(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	snap, err := c.session.Notifications(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	errs := make(map[string]interface{}, len(snap.Errors))
	for key, msgs := range snap.Errors {
		list := make([]interface{}, len(msgs))
		for i, m := range msgs {
			list[i] = m
		}
		errs[key] = list
	}

	return structpb.NewStruct(map[string]interface{}{
		FieldProgress: snap.Progress(),
		FieldTerminal: snap.Terminal(),
		FieldErrors:   errs,
	})
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, campaign.ErrRunInProgress):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, policy.ErrUnknownMode):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, campaign.ErrSessionClosed):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	default:
		return status.Errorf(codes.Internal, "%v", err)
	}
}

var _ Session = (*campaign.Session)(nil)
