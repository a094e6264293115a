package health

import (
	"context"
	"net"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/eatshare/eats-back/internal/config"
	"github.com/eatshare/eats-back/internal/service"
)

const (
	// ServiceName is reported alongside the server-wide "" entry.
	ServiceName = "eats"

	pollInterval = 10 * time.Second
)

type (
	Pinger interface {
		Ping(ctx context.Context) error
	}

	// Checker answers health checks with the store's current reachability.
	Checker struct {
		*grpchealth.Server
		store  Pinger
		logger *zap.SugaredLogger
	}

	GRPCServer struct {
		server  *grpc.Server
		checker *Checker
	}
)

func NewChecker(store Pinger, logger *zap.SugaredLogger) *Checker {
	return &Checker{
		Server: grpchealth.NewServer(),
		store:  store,
		logger: logger,
	}
}

func (c *Checker) Check(ctx context.Context, req *grpc_health_v1.HealthCheckRequest) (*grpc_health_v1.HealthCheckResponse, error) {
	c.refresh(ctx)
	return c.Server.Check(ctx, req)
}

// Poll refreshes the status every interval until ctx is done, so Watch
// streams follow the store between Check calls.
func (c *Checker) Poll(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.refresh(ctx)
		}
	}
}

func (c *Checker) refresh(ctx context.Context) {
	status := grpc_health_v1.HealthCheckResponse_SERVING
	if err := c.store.Ping(ctx); err != nil {
		c.logger.Warnw("store ping failed", "error", err)
		status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}
	c.SetServingStatus("", status)
	c.SetServingStatus(ServiceName, status)
}

// Register mounts the checker on s.
func Register(s *grpc.Server, c *Checker) {
	grpc_health_v1.RegisterHealthServer(s, c)
}

func NewGRPCServer(lc fx.Lifecycle, cfg *config.Config, svc *service.General, logger *zap.SugaredLogger) *GRPCServer {
	instance := GRPCServer{
		server:  grpc.NewServer(),
		checker: NewChecker(svc, logger),
	}
	Register(instance.server, instance.checker)

	pollCtx, stopPoll := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			instance.checker.refresh(ctx)

			listen := net.JoinHostPort(cfg.Host, cfg.GRPCPort)
			lis, err := net.Listen("tcp", listen)
			if err != nil {
				return errors.Wrapf(err, "listen on %s", listen)
			}

			logger.Infof("Starting GRPC server on %s.", listen)
			go instance.checker.Poll(pollCtx, pollInterval)
			go func() {
				if err := instance.server.Serve(lis); err != nil {
					logger.Errorw("grpc server stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping GRPC server.")
			stopPoll()
			instance.checker.Shutdown()
			instance.server.GracefulStop()
			return nil
		},
	})

	return &instance
}
