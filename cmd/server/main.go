package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	"parkease/internal/api"
	"parkease/internal/auth"
	"parkease/internal/config"
	"parkease/internal/repository"
	"parkease/internal/service"
)

func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	database, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := database.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	slotRepo := repository.NewPostgresSlotRepository(database)
	bookingRepo := repository.NewPostgresBookingRepository(database)
	userRepo := repository.NewPostgresUserRepository(database)

	feeService := service.NewFeeService(cfg.BaseFee, cfg.RatePer15Min)
	paymentSim := service.NewPaymentSimulator(cfg.PaymentSuccessRate, cfg.PaymentDelay)
	validator := service.NewHTTPSlotValidator(cfg.ValidatorURL, cfg.ValidatorTimeout)

	var notifier service.Notifier = service.LogNotifier{}
	if os.Getenv("SENDGRID_API_KEY") != "" || os.Getenv("TWILIO_ACCOUNT_SID") != "" {
		notifier = service.NewSenderNotifier()
	}

	bookingService := service.NewBookingService(bookingRepo, slotRepo, userRepo, feeService, paymentSim, validator, notifier)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiration)
	sweeper := service.NewSweeperService(bookingRepo, slotRepo, notifier)

	scheduler := sweeper.Start(cfg.SweepInterval)
	defer scheduler.Stop()

	authHandler := api.NewAuthHandler(authService)
	bookingHandler := api.NewBookingHandler(bookingService)
	slotHandler := api.NewSlotHandler(slotRepo)
	middleware := auth.NewMiddleware(authService)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")

	// Authenticated endpoints
	authed := r.PathPrefix("/api").Subrouter()
	authed.Use(middleware.Authenticate)
	authed.HandleFunc("/slots", slotHandler.ListSlots).Methods("GET")
	authed.HandleFunc("/bookings/create", bookingHandler.CreateBooking).Methods("POST")
	authed.HandleFunc("/bookings/my-bookings", bookingHandler.MyBookings).Methods("GET")
	authed.HandleFunc("/bookings/{id}/check-in", bookingHandler.CheckIn).Methods("POST")
	authed.HandleFunc("/bookings/{id}/check-out", bookingHandler.CheckOut).Methods("POST")
	authed.HandleFunc("/bookings/{id}/process-payment", bookingHandler.ProcessPayment).Methods("POST")
	authed.HandleFunc("/bookings/{id}/fee-details", bookingHandler.FeeDetails).Methods("GET")

	// Admin endpoints
	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(middleware.Authenticate, middleware.RequireAdmin)
	admin.HandleFunc("/bookings", bookingHandler.AllBookings).Methods("GET")
	admin.HandleFunc("/slots", slotHandler.CreateSlot).Methods("POST")
	admin.HandleFunc("/slots/{id}", slotHandler.UpdateSlot).Methods("PUT")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	log.Printf("Server running on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handlers.LoggingHandler(os.Stdout, cors(r))))
}
