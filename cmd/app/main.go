package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"itinerary/cmd/fx/config_fx"
	"itinerary/cmd/fx/controllers_fx"
	"itinerary/cmd/fx/db_fx"
	"itinerary/cmd/fx/distance_matrix_fx"
	"itinerary/cmd/fx/itinerary_fx"
	"itinerary/cmd/fx/journey_fx"
	"itinerary/cmd/fx/memcache_fx"
	poisfx "itinerary/cmd/fx/pois_fx"
	"itinerary/cmd/fx/prompt_fx"
	"itinerary/internal/api/controllers"
	"itinerary/internal/config"
	"itinerary/pkg/middleware"
)

func main() {
	app := fx.New(
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		config_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		distance_matrix_fx.Module,
		prompt_fx.Module,
		itinerary_fx.Module,
		poisfx.Module,
		journey_fx.Module,
		controllers_fx.Module,

		fx.Invoke(StartServer),
		fx.Provide(ProvideRouter),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg config.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("Starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("Failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	log *zap.Logger,
	poisController *controllers.POIsController,
	itineraryController *controllers.ItineraryController) *gin.Engine {

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(log.Named("http")))
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, poisController, itineraryController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	poisController *controllers.POIsController,
	itineraryController *controllers.ItineraryController) {

	poisgroup := r.Group("/pois")
	poisgroup.GET("/:id", poisController.GetPoiById)
	poisgroup.PUT("", poisController.UpsertPois)

	itineraryGroup := r.Group("/itineraries")
	itineraryGroup.POST("", itineraryController.ScheduleItinerary)
	itineraryGroup.GET("/:id", itineraryController.GetItineraryById)
	itineraryGroup.DELETE("/cache", itineraryController.ResetCache)
}
