package app

import (
	apphttp "github.com/albertshemyakin2009-sys/noolix/internal/http"
	httpH "github.com/albertshemyakin2009-sys/noolix/internal/http/handlers"
	httpMW "github.com/albertshemyakin2009-sys/noolix/internal/http/middleware"
	"github.com/albertshemyakin2009-sys/noolix/internal/observability"
	"github.com/albertshemyakin2009-sys/noolix/internal/platform/logger"
)

func wireServer(log *logger.Logger, cfg Config, services Services, reposet Repos, metrics *observability.Metrics) *apphttp.Server {
	return apphttp.NewServer(apphttp.RouterConfig{
		Log:         log,
		ServiceName: cfg.Otel.ServiceName,
		CORSOrigins: cfg.CORSOrigins,
		Metrics:     metrics,
		RepairAuth:  httpMW.NewRepairAuth(log, cfg.RepairTokenSecret),

		HealthHandler: httpH.NewHealthHandler(cfg.StoreDriver),
		TopicHandler: httpH.NewTopicHandler(
			log,
			services.Repair,
			services.Canonicalizer,
			reposet.RepairRuns,
			cfg.StoreNamespace,
		),
	})
}
