package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/asset-portal/internal/auth"
	"github.com/ukydev/asset-portal/internal/config"
	"github.com/ukydev/asset-portal/internal/db"
	"github.com/ukydev/asset-portal/internal/handlers"
	"github.com/ukydev/asset-portal/internal/ingest"
	"github.com/ukydev/asset-portal/internal/middleware"
	"github.com/ukydev/asset-portal/internal/models"
)

func main() {
	cfg := config.Load()

	level, err := log.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&log.JSONFormatter{})

	client, err := db.ConnectMongo(cfg.Mongo.URI)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		client.Disconnect(ctx)
	}()
	log.Info("connected to MongoDB")

	database := client.Database(cfg.Mongo.Database)
	store := db.NewStore(database)
	users := &db.MongoUserCollection{Collection: database.Collection("users")}

	authService, err := auth.NewService()
	if err != nil {
		log.WithError(err).Fatal("failed to initialize auth service")
	}

	authHandler := handlers.NewAuthHandler(authService, users)
	assetHandler := handlers.NewAssetHandler(store, store, store)
	maintenanceHandler := handlers.NewMaintenanceHandler(store, store, store)
	vendorHandler := handlers.NewVendorHandler(store, store)
	reportHandler := handlers.NewReportHandler(store, store, store, store)
	exportHandler := handlers.NewExportHandler(reportHandler, store)

	authMiddleware := middleware.NewAuthMiddleware(authService)
	rateLimiter := middleware.NewRateLimitMiddleware()

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(rateLimiter.RateLimit(100, 60))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	router.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/register", authHandler.Register)
			r.Get("/profile", authHandler.GetProfile)
			r.Put("/profile", authHandler.UpdateProfile)
			r.Post("/change-password", authHandler.ChangePassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(authMiddleware.RequireRole(models.RoleAdmin))
			r.Get("/", authHandler.ListUsers)
			r.Delete("/{id}", authHandler.DeleteUser)
		})

		r.Route("/vehicles", func(r chi.Router) {
			r.Get("/", assetHandler.ListVehicles)
			r.Post("/", assetHandler.CreateVehicle)
			r.Get("/{id}", assetHandler.GetVehicle)
			r.Put("/{id}", assetHandler.UpdateVehicle)
			r.Delete("/{id}", assetHandler.DeleteVehicle)

			r.Get("/{id}/maintenance", maintenanceHandler.ListRecords)
			r.Post("/{id}/maintenance", maintenanceHandler.CreateRecord)
			r.Get("/{id}/maintenance/{recordID}", maintenanceHandler.GetRecord)
			r.Put("/{id}/maintenance/{recordID}", maintenanceHandler.UpdateRecord)
			r.Delete("/{id}/maintenance/{recordID}", maintenanceHandler.DeleteRecord)

			r.Get("/{id}/mileage", maintenanceHandler.ListMileage)
			r.Put("/{id}/mileage", maintenanceHandler.PutMileage)

			r.Get("/{id}/costs", reportHandler.GetVehicleCosts)
		})

		r.Route("/pcs", func(r chi.Router) {
			r.Get("/", assetHandler.ListPCs)
			r.Post("/", assetHandler.CreatePC)
			r.Get("/{id}", assetHandler.GetPC)
			r.Put("/{id}", assetHandler.UpdatePC)
			r.Delete("/{id}", assetHandler.DeletePC)
		})

		r.Route("/assets", func(r chi.Router) {
			r.Get("/", assetHandler.ListAssets)
			r.Post("/", assetHandler.CreateAsset)
			r.Get("/{id}", assetHandler.GetAsset)
			r.Put("/{id}", assetHandler.UpdateAsset)
			r.Delete("/{id}", assetHandler.DeleteAsset)
		})

		r.Route("/vendors", func(r chi.Router) {
			r.Get("/", vendorHandler.ListVendors)
			r.Post("/", vendorHandler.CreateVendor)
			r.Get("/{id}", vendorHandler.GetVendor)
			r.Put("/{id}", vendorHandler.UpdateVendor)
			r.Delete("/{id}", vendorHandler.DeleteVendor)
		})

		r.Get("/warnings", reportHandler.GetWarnings)
		r.Get("/costs", reportHandler.GetCostSummary)
		r.Get("/costs/vehicles", reportHandler.GetVehicleCostBreakdown)

		r.With(authMiddleware.RequirePermission("export_reports")).
			Get("/export/warnings.csv", exportHandler.ExportWarnings)
		r.With(authMiddleware.RequirePermission("export_reports")).
			Get("/export/costs.csv", exportHandler.ExportCosts)
	})

	if cfg.MQTT.Broker != "" {
		subscriber, err := ingest.NewSubscriber(cfg.MQTT.Broker, cfg.MQTT.ClientID, cfg.MQTT.Topic, store)
		if err != nil {
			log.WithError(err).Fatal("failed to connect to MQTT broker")
		}
		if err := subscriber.Start(); err != nil {
			log.WithError(err).Fatal("failed to start odometer ingest")
		}
		defer subscriber.Stop()
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.App.Port).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
