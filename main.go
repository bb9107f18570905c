package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron"
	"github.com/rs/cors"

	"lg/fitplan-go-api/internal/planner"
	"lg/fitplan-go-api/internal/store"
	"lg/fitplan-go-api/internal/store/postgres"
	"lg/fitplan-go-api/internal/store/seed"
	"lg/fitplan-go-api/internal/store/sqlite"
)

func main() {
	log.SetPrefix("lg/fitplan-go-api: ")
	log.SetFlags(0)

	// .env is optional in deployed environments
	_ = godotenv.Load()
	cfg := loadConfig()

	st, closeStore, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to open store: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	if n, err := seed.LoadDefaults(context.Background(), st.Exercises); err != nil {
		log.Printf("[main] seeding exercises failed: %v", err)
	} else if n > 0 {
		log.Printf("[main] seeded %d exercises", n)
	}

	var observers []planner.UseCaseObserver
	if cfg.logUseCases {
		observers = append(observers, planner.NewLogUseCaseObserver(os.Stderr))
	}
	h := newHandler(st, observers...)

	sweeper, err := startExpirySweep(cfg.expirySchedule, h.plans)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid PLAN_EXPIRY_SCHEDULE: %v\n", err)
		os.Exit(1)
	}
	if sweeper != nil {
		defer sweeper.Stop()
	}

	router := gin.Default()
	router.SetTrustedProxies(nil)
	h.registerRoutes(router)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              cfg.listenAddr,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[main] listening on %s (store: %s)", cfg.listenAddr, cfg.storeDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[main] shutdown: %v", err)
	}
}

// openStore connects the configured backend and returns it with a close func.
func openStore(cfg config) (store.Store, func(), error) {
	switch cfg.storeDriver {
	case "postgres":
		if cfg.dbURL == "" {
			return store.Store{}, nil, errors.New("DB_URL is not set")
		}
		pool, err := postgres.Connect(context.Background(), cfg.dbURL)
		if err != nil {
			return store.Store{}, nil, err
		}
		fmt.Println("DB pool ready!")
		return postgres.New(pool), pool.Close, nil
	case "sqlite":
		db, err := sqlite.OpenDB(cfg.sqlitePath)
		if err != nil {
			return store.Store{}, nil, err
		}
		return sqlite.New(db), func() { db.Close() }, nil
	default:
		return store.Store{}, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.storeDriver)
	}
}

// startExpirySweep deactivates plans past their end date on schedule.
// An empty schedule disables the sweep.
func startExpirySweep(schedule string, plans *planner.DailyPlanService) (*cron.Cron, error) {
	if schedule == "" {
		return nil, nil
	}
	c := cron.New()
	err := c.AddFunc(schedule, func() {
		n, err := plans.ExpirePlans(context.Background())
		if err != nil {
			log.Printf("[expirySweep] failed: %v", err)
			return
		}
		if n > 0 {
			log.Printf("[expirySweep] deactivated %d expired plan(s)", n)
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
