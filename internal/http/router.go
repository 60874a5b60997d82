package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/albertshemyakin2009-sys/noolix/internal/http/handlers"
	httpMW "github.com/albertshemyakin2009-sys/noolix/internal/http/middleware"
	"github.com/albertshemyakin2009-sys/noolix/internal/observability"
	"github.com/albertshemyakin2009-sys/noolix/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins []string
	Metrics     *observability.Metrics

	RepairAuth *httpMW.RepairAuth

	HealthHandler *httpH.HealthHandler
	TopicHandler  *httpH.TopicHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = observability.DefaultServiceName
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(serviceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins...))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := r.Group("/api")
	{
		// Topics (public, read-only)
		if cfg.TopicHandler != nil {
			api.GET("/topics/canonical", cfg.TopicHandler.Canonical)
		}
	}

	repairGroup := api.Group("/topics/repair")
	{
		if cfg.RepairAuth != nil {
			repairGroup.Use(cfg.RepairAuth.Require())
		}
		if cfg.TopicHandler != nil {
			repairGroup.POST("", cfg.TopicHandler.Repair)
			repairGroup.GET("/runs", cfg.TopicHandler.ListRuns)
		}
	}

	return r
}
