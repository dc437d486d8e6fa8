package main

import (
	"log"

	"printrelay/internal/config"
	"printrelay/internal/database"
	"printrelay/internal/handlers"
	"printrelay/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	if cfg.StripeSecretKey == "" {
		log.Fatal("STRIPE_SECRET_KEY is required")
	}
	if cfg.PrintfulAPIKey == "" {
		log.Fatal("PRINTFUL_API_KEY is required")
	}

	creds := &database.Credentials{
		Host:              cfg.DBHost,
		Port:              cfg.DBPort,
		User:              cfg.DBUser,
		Password:          cfg.DBPassword,
		DBName:            cfg.DBName,
		MigrationsDirPath: cfg.MigrationsPath,
	}

	db, err := database.NewDatabase(creds)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(creds); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	payments := services.NewStripeProvider(cfg.StripeSecretKey, cfg.BaseURL)
	printful := services.NewPrintfulClient(cfg.PrintfulAPIURL, cfg.PrintfulAPIKey)
	email := services.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.AdminEmail)

	h := handlers.NewHandler(db, payments, printful, email)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.CORSAllowOrigin == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = []string{cfg.CORSAllowOrigin}
	}
	r.Use(cors.New(corsConfig))

	r.LoadHTMLFiles("templates/index.html")

	r.GET("/", h.HomePage)
	r.POST("/checkout", h.HandleCheckout)
	r.GET("/success", h.HandleSuccess)
	r.GET("/cancel", h.HandleCancel)
	r.POST("/orders", h.CreateOrder)
	r.GET("/products", h.GetProducts)

	log.Printf("Server running on http://localhost:%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
