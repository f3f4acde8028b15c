package health

import (
	"context"
	"net/http"

	"connectrpc.com/grpchealth"
	"github.com/gin-gonic/gin"
)

// grpcChecker answers grpc.health.v1 checks from the dependency probes.
type grpcChecker struct {
	checker *Checker
	service string
}

func (g *grpcChecker) Check(ctx context.Context, req *grpchealth.CheckRequest) (*grpchealth.CheckResponse, error) {
	if req.Service != "" && req.Service != g.service {
		return &grpchealth.CheckResponse{Status: grpchealth.StatusUnknown}, nil
	}
	if g.checker.Check(ctx).Status != StatusHealthy {
		return &grpchealth.CheckResponse{Status: grpchealth.StatusNotServing}, nil
	}
	return &grpchealth.CheckResponse{Status: grpchealth.StatusServing}, nil
}

// GRPCHandler exposes the checker over the gRPC health protocol. service is
// the name clients may pass; an empty name checks the whole server.
func (c *Checker) GRPCHandler(service string) (string, http.Handler) {
	return grpchealth.NewHandler(&grpcChecker{checker: c, service: service})
}

// MountGRPC registers the gRPC health handler on a gin router.
func (c *Checker) MountGRPC(r gin.IRoutes, service string) {
	path, handler := c.GRPCHandler(service)
	r.POST(path+":method", gin.WrapH(handler))
}
