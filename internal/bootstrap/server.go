package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Domenick1991/airport/api"
	"github.com/Domenick1991/airport/config"
	"github.com/gin-gonic/gin"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// Handlers groups the REST handlers mounted under /api.
type Handlers struct {
	Bookings *api.BookingHandler
	Flights  *api.FlightHandler
	Payments *api.PaymentHandler
	Baggage  *api.BaggageHandler
	Security *api.SecurityHandler
	Loyalty  *api.LoyaltyHandler
	Stats    *api.StatsHandler
}

type Servers struct {
	grpcServer *grpc.Server
	health     *health.Server
	httpServer *http.Server
	conn       *grpc.ClientConn
}

// NewRouter builds the gin engine with every REST group under /api.
func NewRouter(h Handlers, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	group := router.Group("/api")
	h.Bookings.Register(group.Group("/bookings"))
	h.Flights.Register(group.Group("/flights"))
	h.Flights.RegisterGates(group.Group("/gates"))
	h.Payments.Register(group.Group("/payments"))
	h.Baggage.Register(group.Group("/baggage"))
	h.Security.Register(group.Group("/security"))
	h.Loyalty.Register(group.Group("/loyalty"))
	h.Stats.Register(group.Group("/stats"))
	return router
}

// Run starts the gRPC health server and the HTTP server (REST API, gateway
// healthz and swagger) and blocks until ctx is cancelled or a server fails.
func Run(ctx context.Context, cfg *config.Config, h Handlers, logger *zap.Logger) error {
	s, err := newServers(cfg, h, logger)
	if err != nil {
		return err
	}
	defer s.conn.Close()

	errCh := make(chan error, 2)

	lis, err := net.Listen("tcp", cfg.GRPC.Address)
	if err != nil {
		return fmt.Errorf("listen gRPC %s: %w", cfg.GRPC.Address, err)
	}
	go func() { errCh <- s.grpcServer.Serve(lis) }()

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	logger.Info("airport servers started",
		zap.String("http", cfg.HTTP.Address),
		zap.String("grpc", cfg.GRPC.Address))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutting down servers")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.health.Shutdown()
		s.grpcServer.GracefulStop()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newServers(cfg *config.Config, h Handlers, logger *zap.Logger) (*Servers, error) {
	grpcSrv := grpc.NewServer()
	healthSrv := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcSrv, healthSrv)
	healthSrv.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	conn, err := grpc.NewClient(cfg.GRPC.Address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial gRPC %s: %w", cfg.GRPC.Address, err)
	}
	gateway := runtime.NewServeMux(runtime.WithHealthzEndpoint(grpc_health_v1.NewHealthClient(conn)))

	handler := http.NewServeMux()
	handler.Handle("/api/", NewRouter(h, logger))
	handler.Handle("/healthz", gateway)

	if cfg.HTTP.SwaggerDir != "" {
		fs := http.FileServer(http.Dir(cfg.HTTP.SwaggerDir))
		handler.Handle("/docs/", http.StripPrefix("/docs/", fs))
		handler.Handle("/swagger/", httpSwagger.Handler(httpSwagger.URL("/docs/airport.swagger.json")))
	}

	return &Servers{
		grpcServer: grpcSrv,
		health:     healthSrv,
		httpServer: &http.Server{Addr: cfg.HTTP.Address, Handler: handler},
		conn:       conn,
	}, nil
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
