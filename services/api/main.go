package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seva/internal/config"
	"github.com/seva/internal/email"
	"github.com/seva/internal/handler"
	"github.com/seva/internal/jobs"
	"github.com/seva/internal/logger"
	"github.com/seva/internal/objectstore"
	"github.com/seva/internal/payment"
	"github.com/seva/internal/push"
	"github.com/seva/internal/repository"
	"github.com/seva/internal/service"
	"github.com/seva/internal/startup"
	"github.com/seva/internal/storage"
	"github.com/seva/internal/storage/memory"
	"github.com/seva/internal/ws"
)

func main() {
	logger.SetPrefix("api")
	migrate := flag.Bool("migrate", false, "run database migrations and exit")
	dev := flag.Bool("dev", false, "start with embedded PostgreSQL and in-memory OTP/push stores")
	flag.Parse()

	logger.Info("starting API service")
	cfg := config.Load()

	var embeddedDB *embeddedpostgres.EmbeddedPostgres
	if *dev {
		db, url, err := startup.StartEmbeddedPostgres()
		if err != nil {
			logger.Errorf("embedded postgres: %v", err)
			logger.Flush(2 * time.Second)
			os.Exit(1)
		}
		embeddedDB = db
		cfg.Database.URL = url
		defer func() {
			logger.Info("stopping embedded postgres...")
			if err := embeddedDB.Stop(); err != nil {
				logger.Errorf("embedded postgres stop: %v", err)
			}
		}()
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL())
	if err != nil {
		logger.Errorf("parse db config: %v", err)
		logger.Flush(2 * time.Second)
		os.Exit(1)
	}
	poolCfg.MaxConns = int32(cfg.DBMaxConnections())
	poolCfg.MinConns = 2

	pool := startup.ConnectDBWithRetry(poolCfg, 60*time.Second)
	defer pool.Close()

	if err := startup.Migrate(pool); err != nil {
		logger.Errorf("migrate: %v", err)
		logger.Flush(2 * time.Second)
		os.Exit(1)
	}
	logger.Info("database connected, migrations applied")
	if *migrate && !*dev {
		logger.Flush(2 * time.Second)
		return
	}

	var (
		otpStore  storage.OTPStore
		pushStore push.Store
	)
	if *dev {
		otpStore = memory.New()
		pushStore = push.NewMemoryStore()
		logger.Info("dev mode: OTP codes and push subscriptions kept in memory")
	} else {
		rdb := startup.ConnectRedisWithRetry(cfg.Redis.URL, 30*time.Second)
		otpStore = rdb
		pushStore = push.NewRedisStore(rdb.Raw())
	}
	defer otpStore.Close()

	if cfg.Push.VAPIDPublicKey == "" && !cfg.Production {
		if keys, err := push.EnsureVAPIDKeys(""); err == nil {
			cfg.Push.VAPIDPublicKey, cfg.Push.VAPIDPrivateKey = keys.PublicKey, keys.PrivateKey
		} else {
			logger.Errorf("push: %v", err)
		}
	}
	pushSvc := push.NewService(pushStore, cfg.Push.VAPIDPublicKey, cfg.Push.VAPIDPrivateKey, cfg.Push.Subscriber)

	notifier, err := service.NewNotifier(cfg.Jobs.NotifyWorkers, email.NewSender(&cfg.SMTP), pushSvc)
	if err != nil {
		logger.Errorf("notifier: %v", err)
		logger.Flush(2 * time.Second)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(pool)
	sevaRepo := repository.NewSevaRepository(pool)
	sevaBookingRepo := repository.NewSevaBookingRepository(pool)
	roomRepo := repository.NewRoomBookingRepository(pool)
	alankaraRepo := repository.NewAlankaraRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	guruRepo := repository.NewGuruRepository(pool)
	branchRepo := repository.NewBranchRepository(pool)
	contentRepo := repository.NewContentRepository(pool)
	volunteerRepo := repository.NewVolunteerRepository(pool)
	opportunityRepo := repository.NewVolunteerOpportunityRepository(pool)

	hubCtx, hubCancel := context.WithCancel(context.Background())
	hub := ws.NewHub(cfg.MaxWSConnections)
	var bgWg sync.WaitGroup
	bgWg.Add(1)
	go func() {
		defer bgWg.Done()
		hub.Run(hubCtx)
	}()

	objects := objectstore.New(cfg.Storage.UploadDir)
	gateway := payment.NewRazorpayClient(cfg.Razorpay.BaseURL, cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
	tokens := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.TokenTTL)

	authSvc := service.NewAuthService(service.NewAuthenticator(otpStore, cfg.OTP.TTL), userRepo, tokens, cfg.OTP.ExposeInResponse)
	sevaSvc := service.NewSevaBookingService(userRepo, sevaRepo, sevaBookingRepo, gateway,
		cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret, notifier)
	roomSvc := service.NewRoomBookingService(roomRepo, userRepo, notifier)
	historySvc := service.NewHistoryService(userRepo, sevaBookingRepo, roomRepo)
	alankaraSvc := service.NewAlankaraService(alankaraRepo, objects, hub, cfg.Jobs.AlankaraMaxAge)
	contentSvc := service.NewContentService(eventRepo, guruRepo, branchRepo, contentRepo, hub)
	searchSvc := service.NewSearchService(guruRepo, eventRepo, branchRepo)
	volunteerSvc := service.NewVolunteerService(userRepo, volunteerRepo, userRepo)
	opportunitySvc := service.NewVolunteerOpportunityService(userRepo, opportunityRepo)

	router := handler.NewRouter(handler.Handlers{
		Auth:        handler.NewAuthHandler(authSvc),
		Booking:     handler.NewBookingHandler(sevaSvc, roomSvc, historySvc),
		Content:     handler.NewContentHandler(contentSvc, searchSvc),
		Alankara:    handler.NewAlankaraHandler(alankaraSvc),
		User:        handler.NewUserHandler(volunteerSvc),
		Opportunity: handler.NewOpportunityHandler(opportunitySvc),
		Push:        handler.NewPushHandler(pushSvc),
		File:        handler.NewFileHandler(objectstore.NewHandler(objects, cfg.Storage.MaxUploadSize, cfg.Storage.PublicBaseURL)),
		Live:        handler.NewLiveHandler(hub, cfg.CORSAllowedOrigins),
		Config:      handler.NewConfigHandler(cfg, pushSvc.Enabled()),
	}, tokens, cfg.CORSAllowedOrigins)

	jobsCtx, jobsCancel := context.WithCancel(context.Background())
	for _, j := range []struct {
		every time.Duration
		job   jobs.Job
	}{
		{cfg.Jobs.CleanupInterval, jobs.NewAlankaraCleanup(alankaraSvc)},
		{cfg.Jobs.ReminderInterval, jobs.NewEventReminder(eventRepo, pushSvc)},
	} {
		bgWg.Add(1)
		go func(every time.Duration, job jobs.Job) {
			defer bgWg.Done()
			jobs.Every(jobsCtx, every, job)
		}(j.every, j.job)
	}

	srv := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	var srvWg sync.WaitGroup
	errCh := make(chan error, 1)
	srvWg.Add(1)
	go func() {
		defer srvWg.Done()
		logger.Infof("server listening on %s", cfg.ServerAddr)
		errCh <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logger.Errorf("server error: %v", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("server shutdown: %v", err)
	}
	logger.Info("server stopped accepting connections")
	jobsCancel()
	hubCancel()
	bgWg.Wait()
	logger.Info("hub and jobs stopped")
	srvWg.Wait()
	notifier.Close(10 * time.Second)
	logger.Info("notifications drained")
	logger.Flush(2 * time.Second)
}
