package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/agroboost/AgroBoost-RentalService/internal/api/handlers"
	authHandler "github.com/agroboost/AgroBoost-RentalService/internal/api/handlers/auth"
	availabilityHandler "github.com/agroboost/AgroBoost-RentalService/internal/api/handlers/availability"
	calculatePriceHandler "github.com/agroboost/AgroBoost-RentalService/internal/api/handlers/calculate_price"
	cancelBookingHandler "github.com/agroboost/AgroBoost-RentalService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/agroboost/AgroBoost-RentalService/internal/api/handlers/create_booking"
	dashboardHandler "github.com/agroboost/AgroBoost-RentalService/internal/api/handlers/dashboard"
	getCalendarHandler "github.com/agroboost/AgroBoost-RentalService/internal/api/handlers/get_availability_calendar"
	getAvailableHoursHandler "github.com/agroboost/AgroBoost-RentalService/internal/api/handlers/get_available_hours"
	getBookingHandler "github.com/agroboost/AgroBoost-RentalService/internal/api/handlers/get_booking"
	getProviderBookingsHandler "github.com/agroboost/AgroBoost-RentalService/internal/api/handlers/get_provider_bookings"
	getProviderSettingsHandler "github.com/agroboost/AgroBoost-RentalService/internal/api/handlers/get_provider_settings"
	initiatePaymentHandler "github.com/agroboost/AgroBoost-RentalService/internal/api/handlers/initiate_payment"
	listBookingsHandler "github.com/agroboost/AgroBoost-RentalService/internal/api/handlers/list_bookings"
	maintenancesHandler "github.com/agroboost/AgroBoost-RentalService/internal/api/handlers/maintenances"
	notificationsHandler "github.com/agroboost/AgroBoost-RentalService/internal/api/handlers/notifications"
	paymentsHandler "github.com/agroboost/AgroBoost-RentalService/internal/api/handlers/payments"
	providersHandler "github.com/agroboost/AgroBoost-RentalService/internal/api/handlers/providers"
	servicesHandler "github.com/agroboost/AgroBoost-RentalService/internal/api/handlers/services"
	updateBookingStatusHandler "github.com/agroboost/AgroBoost-RentalService/internal/api/handlers/update_booking_status"
	updateProviderSettingsHandler "github.com/agroboost/AgroBoost-RentalService/internal/api/handlers/update_provider_settings"
	usersHandler "github.com/agroboost/AgroBoost-RentalService/internal/api/handlers/users"
	"github.com/agroboost/AgroBoost-RentalService/internal/api/middleware"
	"github.com/agroboost/AgroBoost-RentalService/internal/config"
	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/internal/infra/imagestore"
	"github.com/agroboost/AgroBoost-RentalService/internal/infra/session"
	availabilityRepo "github.com/agroboost/AgroBoost-RentalService/internal/infra/storage/availability"
	bookingRepo "github.com/agroboost/AgroBoost-RentalService/internal/infra/storage/booking"
	maintenanceRepo "github.com/agroboost/AgroBoost-RentalService/internal/infra/storage/maintenance"
	notificationRepo "github.com/agroboost/AgroBoost-RentalService/internal/infra/storage/notification"
	paymentRepo "github.com/agroboost/AgroBoost-RentalService/internal/infra/storage/payment"
	serviceRepo "github.com/agroboost/AgroBoost-RentalService/internal/infra/storage/service"
	settingsRepo "github.com/agroboost/AgroBoost-RentalService/internal/infra/storage/settings"
	userRepo "github.com/agroboost/AgroBoost-RentalService/internal/infra/storage/user"
	"github.com/agroboost/AgroBoost-RentalService/internal/integrations/paytech"
	"github.com/agroboost/AgroBoost-RentalService/internal/integrations/telegram"
	availabilityService "github.com/agroboost/AgroBoost-RentalService/internal/service/availability"
	bookingsService "github.com/agroboost/AgroBoost-RentalService/internal/service/bookings"
	catalogService "github.com/agroboost/AgroBoost-RentalService/internal/service/catalog"
	dashboardService "github.com/agroboost/AgroBoost-RentalService/internal/service/dashboard"
	maintenancesService "github.com/agroboost/AgroBoost-RentalService/internal/service/maintenances"
	notificationsService "github.com/agroboost/AgroBoost-RentalService/internal/service/notifications"
	paymentsService "github.com/agroboost/AgroBoost-RentalService/internal/service/payments"
	providersService "github.com/agroboost/AgroBoost-RentalService/internal/service/providers"
	settingsService "github.com/agroboost/AgroBoost-RentalService/internal/service/settings"
	usersService "github.com/agroboost/AgroBoost-RentalService/internal/service/users"
	calculatePriceUC "github.com/agroboost/AgroBoost-RentalService/internal/usecase/calculate_price"
	createBookingUC "github.com/agroboost/AgroBoost-RentalService/internal/usecase/create_booking"
	getCalendarUC "github.com/agroboost/AgroBoost-RentalService/internal/usecase/get_availability_calendar"
	getAvailableHoursUC "github.com/agroboost/AgroBoost-RentalService/internal/usecase/get_available_hours"
	initiatePaymentUC "github.com/agroboost/AgroBoost-RentalService/internal/usecase/initiate_payment"
	"github.com/agroboost/AgroBoost-RentalService/pkg/dbmetrics"
	"github.com/agroboost/AgroBoost-RentalService/pkg/logger"
	"github.com/agroboost/AgroBoost-RentalService/pkg/metrics"
	"github.com/agroboost/AgroBoost-RentalService/pkg/txmanager"
)

const configPath = "config.toml"

func main() {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting AgroBoost-RentalService...")
	log.Info("Configuration loaded from %s", configPath)

	var metricsCollector *metrics.Metrics
	stopCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// PostgreSQL
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// a nil collector records nothing
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Redis: sessions, OTP codes, session events
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		pingCancel()
		log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
	}
	pingCancel()
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	sessionStore := session.NewStore(redisClient)

	// Integrations
	paytechEnv := paytech.EnvTest
	if initiatePaymentUC.Mode(cfg.PayTech.Mode) == initiatePaymentUC.ModeLive {
		paytechEnv = paytech.EnvProd
	}
	paytechClient := paytech.NewClient(paytech.Config{
		BaseURL:    cfg.PayTech.BaseURL,
		APIKey:     cfg.PayTech.APIKey,
		APISecret:  cfg.PayTech.APISecret,
		Env:        paytechEnv,
		IPNURL:     cfg.PayTech.IPNURL,
		SuccessURL: cfg.PayTech.SuccessURL,
		CancelURL:  cfg.PayTech.CancelURL,
	}, time.Duration(cfg.PayTech.Timeout)*time.Second, log)
	log.Info("PayTech client initialized (mode=%s, base_url=%s, timeout=%ds)",
		cfg.PayTech.Mode, cfg.PayTech.BaseURL, cfg.PayTech.Timeout)

	// interfaces stay nil when no bot is configured
	var (
		pusher     notificationsService.Pusher
		codeSender usersService.CodeSender
	)
	if cfg.Telegram.BotToken != "" {
		bot, err := telegram.NewNotifier(cfg.Telegram.BotToken, log)
		if err != nil {
			log.Fatal("Failed to initialize telegram bot: %v", err)
		}
		pusher = bot
		codeSender = bot
		log.Info("Telegram notifications enabled")
	} else {
		log.Warn("Telegram bot token not set, notifications stay in-app only")
	}

	var (
		images     catalogService.ImageStore
		localStore *imagestore.LocalStore
	)
	if cfg.Cloudinary.Enabled() {
		cloud, err := imagestore.NewCloudinaryStore(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey,
			cfg.Cloudinary.APISecret, cfg.Cloudinary.Folder)
		if err != nil {
			log.Fatal("Failed to initialize cloudinary: %v", err)
		}
		images = cloud
		log.Info("Images stored on cloudinary (cloud=%s, folder=%s)", cfg.Cloudinary.CloudName, cfg.Cloudinary.Folder)
	} else {
		localStore, err = imagestore.NewLocalStore(cfg.Cloudinary.LocalDir, cfg.Cloudinary.LocalBaseURL)
		if err != nil {
			log.Fatal("Failed to initialize local image store: %v", err)
		}
		images = localStore
		log.Info("Images stored locally in %s", localStore.Dir())
	}

	// Repositories
	userRepository := userRepo.NewRepository(wrappedDB)
	serviceRepository := serviceRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	blockRepository := availabilityRepo.NewRepository(wrappedDB)
	maintenanceRepository := maintenanceRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)
	paymentRepository := paymentRepo.NewRepository(wrappedDB)
	notificationRepository := notificationRepo.NewRepository(wrappedDB)

	// Services
	tokens := usersService.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	userSvc := usersService.NewService(
		userRepository,
		sessionStore,
		tokens,
		codeSender,
		usersService.Options{
			OTPTTL:         cfg.Auth.OTPTTL(),
			OTPMaxAttempts: cfg.Auth.OTPMaxAttempts,
			OTPResend:      time.Duration(cfg.Auth.OTPResendSeconds) * time.Second,
			LogOTP:         cfg.Auth.ExposeOTPInDevLog,
		},
		log,
	)
	notificationSvc := notificationsService.NewService(notificationRepository, userRepository, pusher, log)
	catalogSvc := catalogService.NewService(serviceRepository, images, log)
	providerSvc := providersService.NewService(userRepository, serviceRepository, log)
	settingsSvc := settingsService.NewService(settingsRepository, serviceRepository, log)
	maintenanceSvc := maintenancesService.NewService(maintenanceRepository, serviceRepository, log)
	blockSvc := availabilityService.NewService(blockRepository, serviceRepository, log)
	bookingSvc := bookingsService.NewService(bookingRepository, notificationSvc, log)
	paymentSvc := paymentsService.NewService(
		paymentRepository,
		bookingRepository,
		paytechClient,
		notificationSvc,
		txMgr,
		log,
	)
	dashboardSvc := dashboardService.NewService(
		userRepository,
		serviceRepository,
		bookingRepository,
		maintenanceRepository,
		notificationRepository,
		log,
	)

	// Use cases
	location := cfg.App.Location()

	initiatePaymentUseCase := initiatePaymentUC.NewUseCase(
		bookingRepository,
		paymentRepository,
		paytechClient,
		initiatePaymentUC.Mode(cfg.PayTech.Mode),
		cfg.App.Currency,
		txMgr,
		metricsCollector,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		serviceRepository,
		blockRepository,
		maintenanceRepository,
		settingsSvc,
		initiatePaymentUseCase,
		notificationSvc,
		txMgr,
		metricsCollector,
		location,
		log,
	)
	getCalendarUseCase := getCalendarUC.NewUseCase(
		bookingRepository,
		serviceRepository,
		blockRepository,
		maintenanceRepository,
		settingsSvc,
		location,
		log,
	)
	getAvailableHoursUseCase := getAvailableHoursUC.NewUseCase(
		bookingRepository,
		serviceRepository,
		blockRepository,
		maintenanceRepository,
		settingsSvc,
		location,
		log,
	)
	calculatePriceUseCase := calculatePriceUC.NewUseCase(serviceRepository, log)

	// Handlers
	auth := authHandler.NewHandler(userSvc, log)
	users := usersHandler.NewHandler(userSvc, log)
	providers := providersHandler.NewHandler(providerSvc, log)
	services := servicesHandler.NewHandler(catalogSvc, log)
	maintenances := maintenancesHandler.NewHandler(maintenanceSvc, log)
	notifications := notificationsHandler.NewHandler(notificationSvc, log)
	payments := paymentsHandler.NewHandler(paymentSvc, log)
	blocks := availabilityHandler.NewHandler(blockSvc, log)
	dashboard := dashboardHandler.NewHandler(dashboardSvc, log)

	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	calculatePrice := calculatePriceHandler.NewHandler(calculatePriceUseCase, log)
	getCalendar := getCalendarHandler.NewHandler(getCalendarUseCase, log)
	getAvailableHours := getAvailableHoursHandler.NewHandler(getAvailableHoursUseCase, log)
	initiatePayment := initiatePaymentHandler.NewHandler(initiatePaymentUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getProviderBookings := getProviderBookingsHandler.NewHandler(bookingSvc, log)
	getProviderSettings := getProviderSettingsHandler.NewHandler(settingsSvc, log)
	updateProviderSettings := updateProviderSettingsHandler.NewHandler(settingsSvc, log)

	// Router
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", healthHandler(wrappedDB, redisClient)).Methods(http.MethodGet)

	if localStore != nil && strings.HasPrefix(cfg.Cloudinary.LocalBaseURL, "/") {
		prefix := strings.TrimRight(cfg.Cloudinary.LocalBaseURL, "/") + "/"
		r.PathPrefix(prefix).Handler(http.StripPrefix(prefix, http.FileServer(http.Dir(localStore.Dir())))).
			Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	limiter := middleware.NewRateLimiter(cfg.Auth.RateLimitPerMin, cfg.Auth.RateLimitBurst)
	go limiter.Run(stopCh)

	authPublic := api.PathPrefix("/auth").Subrouter()
	authPublic.Use(limiter.Middleware())
	authPublic.HandleFunc("/register", auth.Register).Methods(http.MethodPost)
	authPublic.HandleFunc("/login", auth.Login).Methods(http.MethodPost)
	authPublic.HandleFunc("/verify-otp", auth.VerifyOTP).Methods(http.MethodPost)
	authPublic.HandleFunc("/resend-otp", auth.ResendOTP).Methods(http.MethodPost)
	authPublic.HandleFunc("/forgot-password", auth.ForgotPassword).Methods(http.MethodPost)
	authPublic.HandleFunc("/reset-password", auth.ResetPassword).Methods(http.MethodPost)

	// --- Catalogue ---
	api.HandleFunc("/services", services.List).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}", services.Get).Methods(http.MethodGet)
	api.HandleFunc("/providers", providers.List).Methods(http.MethodGet)
	api.HandleFunc("/providers/{providerId}", providers.Get).Methods(http.MethodGet)
	api.HandleFunc("/providers/{providerId}/settings", getProviderSettings.Handle).Methods(http.MethodGet)

	// --- Disponibilités ---
	api.HandleFunc("/availability", blocks.List).Methods(http.MethodGet)
	api.HandleFunc("/availability/services/{serviceId}", getCalendar.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/services/{serviceId}/hours", getAvailableHours.Handle).Methods(http.MethodGet)

	// --- Devis ---
	api.HandleFunc("/bookings/quote", calculatePrice.Handle).Methods(http.MethodPost)

	// PayTech server-to-server notification
	api.HandleFunc("/payments/ipn", payments.IPN).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (Authorization: Bearer <token>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(userSvc, log))

	// --- Compte ---
	protected.HandleFunc("/auth/logout", auth.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/auth/profile", auth.GetProfile).Methods(http.MethodGet)
	protected.HandleFunc("/auth/profile", auth.UpdateProfile).Methods(http.MethodPut)
	protected.HandleFunc("/auth/password", auth.ChangePassword).Methods(http.MethodPut)

	// --- Réservations ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Paiements ---
	protected.HandleFunc("/payments", payments.List).Methods(http.MethodGet)
	protected.HandleFunc("/payments/initiate", initiatePayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/payments/bookings/{bookingId}/status", payments.BookingStatus).Methods(http.MethodGet)

	// --- Notifications ---
	protected.HandleFunc("/notifications", notifications.List).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/read-all", notifications.MarkAllRead).Methods(http.MethodPut)
	protected.HandleFunc("/notifications/{notificationId}/read", notifications.MarkRead).Methods(http.MethodPut)
	protected.HandleFunc("/notifications/{notificationId}", notifications.Delete).Methods(http.MethodDelete)

	// ============================================================
	// PROVIDER ROUTES (prestataire or admin)
	// ============================================================

	provider := protected.PathPrefix("").Subrouter()
	provider.Use(middleware.RequireRoles(domain.RoleProvider, domain.RoleAdmin))

	provider.HandleFunc("/services", services.Create).Methods(http.MethodPost)
	provider.HandleFunc("/services/{serviceId}", services.Update).Methods(http.MethodPut)
	provider.HandleFunc("/services/{serviceId}", services.Delete).Methods(http.MethodDelete)
	provider.HandleFunc("/services/{serviceId}/images", services.AddImages).Methods(http.MethodPost)
	provider.HandleFunc("/services/{serviceId}/images", services.RemoveImage).Methods(http.MethodDelete)

	provider.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPut)
	provider.HandleFunc("/providers/{providerId}/bookings", getProviderBookings.Handle).Methods(http.MethodGet)
	provider.HandleFunc("/providers/{providerId}/settings", updateProviderSettings.Handle).Methods(http.MethodPut)
	provider.HandleFunc("/providers/{providerId}/settings", updateProviderSettings.HandleDelete).Methods(http.MethodDelete)

	provider.HandleFunc("/availability", blocks.Create).Methods(http.MethodPost)
	provider.HandleFunc("/availability/{blockId}", blocks.Delete).Methods(http.MethodDelete)

	provider.HandleFunc("/maintenances", maintenances.List).Methods(http.MethodGet)
	provider.HandleFunc("/maintenances", maintenances.Create).Methods(http.MethodPost)
	provider.HandleFunc("/maintenances/{maintenanceId}", maintenances.Get).Methods(http.MethodGet)
	provider.HandleFunc("/maintenances/{maintenanceId}", maintenances.Update).Methods(http.MethodPut)
	provider.HandleFunc("/maintenances/{maintenanceId}", maintenances.Delete).Methods(http.MethodDelete)

	provider.HandleFunc("/dashboard/stats", dashboard.Stats).Methods(http.MethodGet)
	provider.HandleFunc("/dashboard/reports/bookings", dashboard.BookingsReport).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES
	// ============================================================

	admin := protected.PathPrefix("").Subrouter()
	admin.Use(middleware.RequireRoles(domain.RoleAdmin))

	admin.HandleFunc("/users", users.List).Methods(http.MethodGet)
	admin.HandleFunc("/users", users.Create).Methods(http.MethodPost)
	admin.HandleFunc("/users/{userId}", users.Get).Methods(http.MethodGet)
	admin.HandleFunc("/users/{userId}", users.Update).Methods(http.MethodPut)
	admin.HandleFunc("/users/{userId}", users.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/notifications", notifications.Send).Methods(http.MethodPost)

	// Session events from every instance
	eventsCtx, stopEvents := context.WithCancel(context.Background())
	defer stopEvents()
	events, err := sessionStore.Subscribe(eventsCtx)
	if err != nil {
		log.Fatal("Failed to subscribe to session events: %v", err)
	}
	go func() {
		for ev := range events {
			log.Info("Session %s: user_id=%d, token_id=%s", ev.Type, ev.UserID, ev.TokenID)
		}
	}()

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      middleware.CORS(cfg.Server.AllowedOrigins)(r),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// stops pool statistics and rate limiter cleanup
	close(stopCh)
	stopEvents()

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

func healthHandler(db *dbmetrics.DB, rdb *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := map[string]string{"database": "ok", "redis": "ok"}
		code := http.StatusOK
		if err := db.PingContext(ctx); err != nil {
			status["database"] = "unavailable"
			code = http.StatusServiceUnavailable
		}
		if err := rdb.Ping(ctx).Err(); err != nil {
			status["redis"] = "unavailable"
			code = http.StatusServiceUnavailable
		}
		handlers.RespondJSON(w, code, status)
	}
}
