package handler

import (
	"context"
	"time"

	catalogv1 "github.com/fekuna/omnipos-catalog-service/api/catalog/v1"
)

var _ catalogv1.SystemServiceServer = (*GRPCHandler)(nil)

type GRPCHandler struct {
	catalogv1.UnimplementedSystemServiceServer
	now func() time.Time
}

func NewGRPCHandler() *GRPCHandler {
	return &GRPCHandler{now: time.Now}
}

func (h *GRPCHandler) HealthCheck(context.Context, *catalogv1.HealthCheckRequest) (*catalogv1.HealthCheckResponse, error) {
	return &catalogv1.HealthCheckResponse{Status: "ok", Timestamp: h.now().UTC()}, nil
}

func (h *GRPCHandler) Echo(_ context.Context, req *catalogv1.EchoRequest) (*catalogv1.EchoResponse, error) {
	return &catalogv1.EchoResponse{Message: "Echo: " + req.Message}, nil
}
