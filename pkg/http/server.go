package http

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/franzxzx/roadnet/pkg/concurrent"
	http_router "github.com/franzxzx/roadnet/pkg/http/router"
	"github.com/franzxzx/roadnet/pkg/http/router/controllers"
	http_server "github.com/franzxzx/roadnet/pkg/http/server"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

func (s *Server) Use(
	ctx context.Context,
	log *zap.Logger,

	useRateLimit bool,
	routingService controllers.RoutingService,
	statusService controllers.StatusService,
	hub *controllers.Hub,
	pool *concurrent.Pool,

) (*Server, error) {
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("WEBSOCKET_PORT", 6666)

	viper.SetDefault("API_TIMEOUT", "1000s")

	config := http_server.Config{
		Port:          viper.GetInt("API_PORT"),
		WebsocketPort: viper.GetInt("WEBSOCKET_PORT"),
		Timeout:       viper.GetDuration("API_TIMEOUT"),
	}

	server := http_router.NewAPI(log, hub, pool)

	g := errgroup.Group{}

	g.Go(func() error {
		return server.Run(
			ctx, config, log,
			useRateLimit, routingService, statusService,
		)
	})

	return s, nil
}

// GracefulShutdown blocks until an interrupt or terminate signal arrives.
func GracefulShutdown() os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	return <-quit
}
