package main

import (
	"context"
	"log"
	"time"

	"github.com/hoteldesk/frontdesk/config"
	"github.com/hoteldesk/frontdesk/internal/cache"
	"github.com/hoteldesk/frontdesk/internal/handler"
	"github.com/hoteldesk/frontdesk/internal/interval"
	"github.com/hoteldesk/frontdesk/internal/metrics"
	"github.com/hoteldesk/frontdesk/internal/middleware"
	"github.com/hoteldesk/frontdesk/internal/repository"
	"github.com/hoteldesk/frontdesk/internal/service"
	"github.com/hoteldesk/frontdesk/pkg/database"
	"github.com/hoteldesk/frontdesk/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// Optional infrastructure: both the cache and the publisher are nil
	// when not configured, and the services treat nil as "disabled".
	var availCache *cache.Availability
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		availCache = cache.NewAvailability(rdb, time.Duration(cfg.CacheTTLSeconds)*time.Second)
		log.Printf("availability cache enabled via redis at %s", cfg.RedisAddr)
	}

	var publisher service.EventPublisher
	if cfg.RabbitURL != "" {
		pub, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer pub.Close()
		publisher = pub
	}

	// Repositories
	roomRepo := repository.NewRoomRepository(db)
	roomTypeRepo := repository.NewRoomTypeRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	promotionRepo := repository.NewPromotionRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// The interval index is the in-process authority on room occupancy;
	// hydrate it from active bookings before taking traffic.
	idx := interval.New()
	if err := service.HydrateIndex(context.Background(), bookingRepo, idx); err != nil {
		log.Fatalf("failed to hydrate interval index: %v", err)
	}
	log.Printf("interval index hydrated with %d active bookings", idx.Len())

	// Services
	availabilitySvc := service.NewAvailabilityService(roomRepo, idx, availCache)
	bookingSvc := service.NewBookingService(bookingRepo, roomRepo, idx, availCache, publisher)
	pricingSvc := service.NewPricingService(serviceRepo)
	promotionSvc := service.NewPromotionService(promotionRepo)
	orderSvc := service.NewOrderService(orderRepo, serviceRepo, customerRepo, promotionRepo, publisher)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "frontdesk"})
	})

	metrics.Register()
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	handler.NewAvailabilityHandler(availabilitySvc).RegisterRoutes(e)
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e)
	handler.NewOrderHandler(orderSvc, pricingSvc).RegisterRoutes(e)
	handler.NewRoomHandler(roomRepo, roomTypeRepo).RegisterRoutes(e)
	handler.NewServiceHandler(serviceRepo).RegisterRoutes(e)
	handler.NewCustomerHandler(customerRepo).RegisterRoutes(e)
	handler.NewPromotionHandler(promotionSvc).RegisterRoutes(e)

	log.Printf("Front Desk Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
