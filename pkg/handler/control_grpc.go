// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// SolverControlServer is the server API for the SolverControl service.
type SolverControlServer interface {
	Trigger(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	GetMode(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
	SetMode(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
	Notifications(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// UnimplementedSolverControlServer can be embedded for forward compatibility.
type UnimplementedSolverControlServer struct{}

func (UnimplementedSolverControlServer) Trigger(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Trigger not implemented")
}

func (UnimplementedSolverControlServer) GetMode(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetMode not implemented")
}

func (UnimplementedSolverControlServer) SetMode(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SetMode not implemented")
}

func (UnimplementedSolverControlServer) Notifications(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Notifications not implemented")
}

// RegisterSolverControlServer registers srv on s.
func RegisterSolverControlServer(s grpc.ServiceRegistrar, srv SolverControlServer) {
	s.RegisterService(&SolverControlServiceDesc, srv)
}

func _SolverControl_Trigger_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SolverControlServer).Trigger(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: TriggerMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SolverControlServer).Trigger(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _SolverControl_GetMode_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SolverControlServer).GetMode(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetModeMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SolverControlServer).GetMode(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _SolverControl_SetMode_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SolverControlServer).SetMode(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SetModeMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SolverControlServer).SetMode(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _SolverControl_Notifications_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SolverControlServer).Notifications(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: NotificationsMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SolverControlServer).Notifications(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// SolverControlServiceDesc is the grpc.ServiceDesc for the SolverControl service.
// The messages are protobuf well-known types, so no generated code is needed.
var SolverControlServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SolverControlServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Trigger", Handler: _SolverControl_Trigger_Handler},
		{MethodName: "GetMode", Handler: _SolverControl_GetMode_Handler},
		{MethodName: "SetMode", Handler: _SolverControl_SetMode_Handler},
		{MethodName: "Notifications", Handler: _SolverControl_Notifications_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gleamsolver/control/v1/control.proto",
}

// SolverControlClient is the client API for the SolverControl service.
type SolverControlClient interface {
	Trigger(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetMode(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	SetMode(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error)
	Notifications(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type solverControlClient struct {
	cc grpc.ClientConnInterface
}

// NewSolverControlClient creates a client on cc.
func NewSolverControlClient(cc grpc.ClientConnInterface) SolverControlClient {
	return &solverControlClient{cc}
}

func (c *solverControlClient) Trigger(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, TriggerMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *solverControlClient) GetMode(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, GetModeMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *solverControlClient) SetMode(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, SetModeMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *solverControlClient) Notifications(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, NotificationsMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
