package server

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/af-corp/model-catalog/internal/catalog"
)

// HealthService is the gRPC service name reported alongside the overall status.
const HealthService = "catalog.v1.ModelCatalog"

// NewGRPCServer returns a gRPC server exposing the standard health service.
func NewGRPCServer(hs *health.Server, opts ...grpc.ServerOption) *grpc.Server {
	s := grpc.NewServer(opts...)
	healthpb.RegisterHealthServer(s, hs)
	return s
}

// SyncHealth reports SERVING once a record set is loaded, NOT_SERVING before.
func SyncHealth(hs *health.Server, holder *catalog.Holder) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if _, ok := holder.Records(); ok {
		status = healthpb.HealthCheckResponse_SERVING
	}
	hs.SetServingStatus("", status)
	hs.SetServingStatus(HealthService, status)
}
