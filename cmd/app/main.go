package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/ticketbooking/api"
	"github.com/zvrva/ticketbooking/config"
	"github.com/zvrva/ticketbooking/internal/bootstrap"
	"github.com/zvrva/ticketbooking/internal/cache"
	"github.com/zvrva/ticketbooking/internal/kafka"
	"github.com/zvrva/ticketbooking/internal/repository"
	"github.com/zvrva/ticketbooking/internal/service/airlines"
	"github.com/zvrva/ticketbooking/internal/service/airports"
	"github.com/zvrva/ticketbooking/internal/service/flights"
	"github.com/zvrva/ticketbooking/internal/service/routes"
	"github.com/zvrva/ticketbooking/internal/service/tickets"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	registryTTL := time.Duration(cfg.Cache.RegistryTTLSeconds) * time.Second
	redisCache := cache.NewRedisCache(cfg.Redis, registryTTL)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	airportRepo := repository.NewAirportRepository(pool)
	airlineRepo := repository.NewAirlineRepository(pool)
	routeRepo := repository.NewRouteRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)

	airlineService := airlines.NewAirlineService(airlineRepo, redisCache)
	airportService := airports.NewAirportService(airportRepo, airlineService, redisCache)
	routeService := routes.NewRouteService(routeRepo, airportService)
	flightService := flights.NewFlightService(flightRepo, routeService, airlineService)
	ticketService := tickets.NewTicketService(
		ticketRepo,
		flightService,
		tickets.WithProducer(producer, cfg.Kafka.TicketEventsTopic),
	)

	router := api.NewRouter(
		api.NewAirportHandler(airportService),
		api.NewAirlineHandler(airlineService),
		api.NewRouteHandler(routeService),
		api.NewFlightHandler(flightService),
		api.NewTicketHandler(ticketService),
	)

	if err := bootstrap.Run(ctx, cfg, router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
