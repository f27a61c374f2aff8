package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	advanceStatusHandler "github.com/m04kA/SMC-AvailabilityLedger/internal/api/handlers/advance_status"
	assignWasherHandler "github.com/m04kA/SMC-AvailabilityLedger/internal/api/handlers/assign_washer"
	cancelBookingHandler "github.com/m04kA/SMC-AvailabilityLedger/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-AvailabilityLedger/internal/api/handlers/create_booking"
	createStaffHandler "github.com/m04kA/SMC-AvailabilityLedger/internal/api/handlers/create_staff"
	deleteDayHandler "github.com/m04kA/SMC-AvailabilityLedger/internal/api/handlers/delete_day"
	exportBookingsHandler "github.com/m04kA/SMC-AvailabilityLedger/internal/api/handlers/export_bookings"
	getAvailabilityHandler "github.com/m04kA/SMC-AvailabilityLedger/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-AvailabilityLedger/internal/api/handlers/get_booking"
	getDashboardHandler "github.com/m04kA/SMC-AvailabilityLedger/internal/api/handlers/get_dashboard"
	getDateBookingsHandler "github.com/m04kA/SMC-AvailabilityLedger/internal/api/handlers/get_date_bookings"
	getServicesHandler "github.com/m04kA/SMC-AvailabilityLedger/internal/api/handlers/get_services"
	getSettingsHandler "github.com/m04kA/SMC-AvailabilityLedger/internal/api/handlers/get_settings"
	getShiftsHandler "github.com/m04kA/SMC-AvailabilityLedger/internal/api/handlers/get_shifts"
	getUserBookingsHandler "github.com/m04kA/SMC-AvailabilityLedger/internal/api/handlers/get_user_bookings"
	healthHandler "github.com/m04kA/SMC-AvailabilityLedger/internal/api/handlers/health"
	listOpenDatesHandler "github.com/m04kA/SMC-AvailabilityLedger/internal/api/handlers/list_open_dates"
	listStaffHandler "github.com/m04kA/SMC-AvailabilityLedger/internal/api/handlers/list_staff"
	putDayHandler "github.com/m04kA/SMC-AvailabilityLedger/internal/api/handlers/put_day"
	rateBookingHandler "github.com/m04kA/SMC-AvailabilityLedger/internal/api/handlers/rate_booking"
	recentBookingsHandler "github.com/m04kA/SMC-AvailabilityLedger/internal/api/handlers/recent_bookings"
	seedDaysHandler "github.com/m04kA/SMC-AvailabilityLedger/internal/api/handlers/seed_days"
	updateSettingsHandler "github.com/m04kA/SMC-AvailabilityLedger/internal/api/handlers/update_settings"
	updateStaffAvailabilityHandler "github.com/m04kA/SMC-AvailabilityLedger/internal/api/handlers/update_staff_availability"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/config"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/domain"
	availabilityCache "github.com/m04kA/SMC-AvailabilityLedger/internal/infra/cache/availability"
	userServiceClient "github.com/m04kA/SMC-AvailabilityLedger/internal/integrations/userservice"
	availabilityService "github.com/m04kA/SMC-AvailabilityLedger/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-AvailabilityLedger/internal/service/bookings"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/service/capacity"
	reportsService "github.com/m04kA/SMC-AvailabilityLedger/internal/service/reports"
	settingsService "github.com/m04kA/SMC-AvailabilityLedger/internal/service/settings"
	staffService "github.com/m04kA/SMC-AvailabilityLedger/internal/service/staff"
	"github.com/m04kA/SMC-AvailabilityLedger/internal/shifts"
	createBookingUC "github.com/m04kA/SMC-AvailabilityLedger/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/SMC-AvailabilityLedger/internal/usecase/get_availability"
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityLedger/pkg/metrics"
)

const (
	configPath           = "config.toml"
	startupTimeout       = 30 * time.Second
	rateLimitCleanupTick = time.Minute
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-AvailabilityLedger...")
	log.Info("Configuration loaded from %s (storage=%s)", configPath, cfg.Storage.Driver)

	location, err := time.LoadLocation(cfg.Ledger.Timezone)
	if err != nil {
		log.Fatal("Invalid ledger timezone %q: %v", cfg.Ledger.Timezone, err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаем хранилище
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), startupTimeout)
	store, err := openStorage(startupCtx, cfg, log, metricsCollector, stopCh)
	cancelStartup()
	if err != nil {
		log.Fatal("Failed to open storage: %v", err)
	}
	defer store.close()

	// Кеш доступности (опционально)
	// Интерфейсы остаются nil, если кеш выключен
	var (
		dayCache      *availabilityCache.Cache
		serviceCache  availabilityService.Cache
		guardCache    capacity.Cache
		redisPingFunc healthHandler.PingFunc
	)
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		dayCache = availabilityCache.New(redisClient, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
		serviceCache, guardCache, redisPingFunc = dayCache, dayCache, dayCache.Ping
		log.Info("Availability cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTLSeconds)
	}

	// Клиент UserService (опционально)
	var vehicleClient createBookingUC.UserServiceClient
	if cfg.UserService.Enabled {
		vehicleClient = userServiceClient.NewClient(
			cfg.UserService.URL,
			time.Duration(cfg.UserService.Timeout)*time.Second,
			log,
		)
		log.Info("Integration client initialized (UserService=%s timeout=%ds)",
			cfg.UserService.URL, cfg.UserService.Timeout)
	}

	schedule := shifts.Default()
	catalogue := domain.NewCatalogue(cfg.Services)

	// Инициализируем сервисы
	settingsSvc := settingsService.NewService(store.settings, log)
	availabilitySvc := availabilityService.NewService(
		store.days,
		serviceCache,
		settingsSvc,
		schedule,
		cfg.Ledger.PremiumPerSlot,
		log,
	)
	guard := capacity.NewGuard(
		store.days,
		store.tx,
		guardCache,
		metricsCollector,
		cfg.Ledger.MaxAttempts,
		log,
	)
	bookingSvc := bookingsService.NewService(
		store.bookings,
		store.washers,
		guard,
		store.tx,
		metricsCollector,
		log,
	)
	reportsSvc := reportsService.NewService(store.bookings, store.washers, log)
	staffSvc := staffService.NewService(store.washers, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		store.bookings,
		guard,
		catalogue,
		settingsSvc,
		schedule,
		vehicleClient,
		metricsCollector,
		location,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		availabilitySvc,
		settingsSvc,
		schedule,
		location,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	listOpenDates := listOpenDatesHandler.NewHandler(availabilitySvc, log)
	getServices := getServicesHandler.NewHandler(catalogue)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	getShifts := getShiftsHandler.NewHandler(schedule)

	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	rateBooking := rateBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)

	advanceStatus := advanceStatusHandler.NewHandler(bookingSvc, log)
	assignWasher := assignWasherHandler.NewHandler(bookingSvc, log)
	getDateBookings := getDateBookingsHandler.NewHandler(reportsSvc, log)
	recentBookings := recentBookingsHandler.NewHandler(reportsSvc, log)
	exportBookings := exportBookingsHandler.NewHandler(reportsSvc, log)
	getDashboard := getDashboardHandler.NewHandler(reportsSvc, log)
	seedDays := seedDaysHandler.NewHandler(availabilitySvc, log)
	putDay := putDayHandler.NewHandler(availabilitySvc, log)
	deleteDay := deleteDayHandler.NewHandler(availabilitySvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)
	listStaff := listStaffHandler.NewHandler(staffSvc, log)
	createStaff := createStaffHandler.NewHandler(staffSvc, log)
	updateStaffAvailability := updateStaffAvailabilityHandler.NewHandler(staffSvc, log)

	checks := map[string]healthHandler.Pinger{
		"storage": healthHandler.PingFunc(store.ping),
	}
	if redisPingFunc != nil {
		checks["redis"] = redisPingFunc
	}
	health := healthHandler.NewHandler(checks, log)

	auth := middleware.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.Issuer)

	// Ограничитель частоты для изменяющих маршрутов
	limit := func(h http.HandlerFunc) http.Handler { return h }
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		go limiter.RunCleanup(rateLimitCleanupTick, stopCh)
		limit = func(h http.HandlerFunc) http.Handler { return limiter.Limit(h) }
		log.Info("Rate limit enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", health.Live).Methods(http.MethodGet)
	r.HandleFunc("/readyz", health.Ready).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступность дня и открытые даты
	api.HandleFunc("/availability/{date}", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability", listOpenDates.Handle).Methods(http.MethodGet)

	// Каталог услуг, настройки и смены
	api.HandleFunc("/services", getServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/shifts", getShifts.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(auth.Auth)

	// --- Бронирования ---
	protected.Handle("/bookings", limit(createBooking.Handle)).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.Handle("/bookings/{bookingId}/cancel", limit(cancelBooking.Handle)).Methods(http.MethodPatch)
	protected.Handle("/bookings/{bookingId}/rating", limit(rateBooking.Handle)).Methods(http.MethodPost)

	// История бронирований пользователя
	protected.HandleFunc("/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// STAFF ROUTES (роль staff или admin)
	// ============================================================

	staff := protected.PathPrefix("").Subrouter()
	staff.Use(middleware.RequireRole(middleware.RoleStaff, middleware.RoleAdmin))

	// --- Управление бронированиями ---
	staff.HandleFunc("/bookings/{bookingId}/status", advanceStatus.Handle).Methods(http.MethodPatch)
	staff.HandleFunc("/bookings/{bookingId}/washer", assignWasher.Handle).Methods(http.MethodPatch)

	// --- Отчеты ---
	staff.HandleFunc("/admin/bookings/recent", recentBookings.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/admin/bookings/export", exportBookings.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/admin/bookings", getDateBookings.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/admin/dashboard", getDashboard.Handle).Methods(http.MethodGet)

	// --- Расписание ---
	staff.HandleFunc("/admin/availability/seed", seedDays.Handle).Methods(http.MethodPost)
	staff.HandleFunc("/admin/availability/{date}", putDay.Handle).Methods(http.MethodPut)
	staff.HandleFunc("/admin/availability/{date}", deleteDay.Handle).Methods(http.MethodDelete)

	// --- Сотрудники ---
	staff.HandleFunc("/admin/staff", listStaff.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/admin/staff", createStaff.Handle).Methods(http.MethodPost)
	staff.HandleFunc("/admin/staff/{washerId}/availability", updateStaffAvailability.Handle).Methods(http.MethodPatch)

	// --- Настройки ---
	staff.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPut)

	// CORS для браузерных клиентов
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Retry-After", "Content-Disposition"},
		AllowCredentials: true,
	}).Handler(r)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
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

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем фоновые задачи (статистика пула, очистка лимитера)
	close(stopCh)

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
