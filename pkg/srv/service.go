package srv

import (
	"context"
	"time"

	"github.com/sandevgo/faqbot/pkg/log"
)

const DefaultShutdownTimeout = 10 * time.Second

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

func StartServices(ctx context.Context, services []Service) {
	logger := log.FromCtx(ctx)
	for _, service := range services {
		go func(service Service) {
			if err := service.Start(ctx); err != nil {
				logger.Fatal().Err(err).Msgf("%T failed to start", service)
			}
		}(service)
	}
}

// ShutdownServices waits for ctx to end, then stops services in reverse start order.
// Each service gets a fresh deadline because ctx is already done at that point.
func ShutdownServices(ctx context.Context, services []Service, timeout time.Duration) {
	<-ctx.Done()
	logger := log.FromCtx(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	for i := len(services) - 1; i >= 0; i-- {
		if err := services[i].Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msgf("%T failed to shutdown", services[i])
		}
	}
}
