// Package rpc assembles the gRPC server: interceptors, the catalog services and
// the standard health service.
package rpc

import (
	catalogv1 "github.com/fekuna/omnipos-catalog-service/api/catalog/v1"
	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

type Services struct {
	Products   catalogv1.ProductServiceServer
	Categories catalogv1.CategoryServiceServer
	System     catalogv1.SystemServiceServer
}

// NewServer registers every service and marks them SERVING on the health service.
func NewServer(svc Services, tracker *apperror.Tracker, log logger.ZapLogger, opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			RecoveryInterceptor(log),
			ContextInterceptor(),
			LoggingInterceptor(log),
			ErrorInterceptor(tracker),
		),
	}, opts...)
	s := grpc.NewServer(opts...)

	catalogv1.RegisterProductServiceServer(s, svc.Products)
	catalogv1.RegisterCategoryServiceServer(s, svc.Categories)
	catalogv1.RegisterSystemServiceServer(s, svc.System)

	healthSrv := health.NewServer()
	for _, name := range []string{
		"",
		catalogv1.ProductService_ServiceDesc.ServiceName,
		catalogv1.CategoryService_ServiceDesc.ServiceName,
		catalogv1.SystemService_ServiceDesc.ServiceName,
	} {
		healthSrv.SetServingStatus(name, healthpb.HealthCheckResponse_SERVING)
	}
	healthpb.RegisterHealthServer(s, healthSrv)

	reflection.Register(s)

	return s
}
