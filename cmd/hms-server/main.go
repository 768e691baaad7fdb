package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/hms/hms/internal/config"
	"github.com/hms/hms/internal/domain/admin"
	"github.com/hms/hms/internal/domain/billing"
	"github.com/hms/hms/internal/domain/department"
	"github.com/hms/hms/internal/domain/emergency"
	"github.com/hms/hms/internal/domain/laboratory"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/domain/pharmacy"
	"github.com/hms/hms/internal/domain/reports"
	"github.com/hms/hms/internal/domain/scheduling"
	"github.com/hms/hms/internal/domain/staff"
	"github.com/hms/hms/internal/platform/auth"
	"github.com/hms/hms/internal/platform/db"
	"github.com/hms/hms/internal/platform/middleware"
	"github.com/hms/hms/internal/platform/notification"
	"github.com/hms/hms/internal/platform/seed"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hms-server",
		Short: "Hospital administration API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL is required for migrations")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			count, err := db.NewMigrator(pool, dir).Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Printf("Applied %d migration(s).\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL is required for migrations")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			statuses, err := db.NewMigrator(pool, dir).Status(ctx)
			if err != nil {
				return fmt.Errorf("migration status: %w", err)
			}
			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				status, appliedAt := "pending", ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo dataset and print a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			var stores seed.Stores
			if cfg.Storage == config.StoragePostgres {
				pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
				if err != nil {
					return err
				}
				defer pool.Close()
				stores = pgStores(pool)
			} else {
				stores = memStores()
			}

			sum, err := seed.Demo(ctx, stores)
			if err != nil {
				return err
			}
			fmt.Printf("Seeded demo dataset (%s storage):\n", cfg.Storage)
			fmt.Printf("  patients:        %d\n", sum.Patients)
			fmt.Printf("  doctors:         %d\n", sum.Doctors)
			fmt.Printf("  departments:     %d\n", sum.Departments)
			fmt.Printf("  appointments:    %d\n", sum.Appointments)
			fmt.Printf("  emergency cases: %d\n", sum.Emergency)
			fmt.Printf("  medicines:       %d\n", sum.Medicines)
			fmt.Printf("  lab tests:       %d\n", sum.LabTests)
			fmt.Printf("  invoices:        %d\n", sum.Invoices)
			if cfg.Storage == config.StorageMemory {
				fmt.Println("Memory storage is per-process; `serve` seeds itself on boot.")
			}
			return nil
		},
	}
}

func memStores() seed.Stores {
	return seed.Stores{
		Patients:     patient.NewMemRepo(),
		Doctors:      staff.NewMemRepo(),
		Departments:  department.NewMemRepo(),
		Appointments: scheduling.NewMemRepo(),
		Emergency:    emergency.NewMemRepo(),
		Medicines:    pharmacy.NewMemRepo(),
		LabTests:     laboratory.NewMemRepo(),
		Invoices:     billing.NewMemRepo(),
	}
}

func pgStores(pool *pgxpool.Pool) seed.Stores {
	return seed.Stores{
		Patients:     patient.NewPGRepo(pool),
		Doctors:      staff.NewPGRepo(pool),
		Departments:  department.NewPGRepo(pool),
		Appointments: scheduling.NewPGRepo(pool),
		Emergency:    emergency.NewPGRepo(pool),
		Medicines:    pharmacy.NewPGRepo(pool),
		LabTests:     laboratory.NewPGRepo(pool),
		Invoices:     billing.NewPGRepo(pool),
	}
}

func runServer() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" || os.Getenv("ENV") == "" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	ctx := context.Background()

	var pool *pgxpool.Pool
	var stores seed.Stores
	var settingsRepo admin.Repository
	if cfg.Storage == config.StoragePostgres {
		pool, err = db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		logger.Info().Msg("connected to database")
		stores = pgStores(pool)
		settingsRepo = admin.NewPGRepo(pool)
	} else {
		stores = memStores()
		settingsRepo = admin.NewMemRepo()
		if cfg.SeedDemoData {
			sum, err := seed.Demo(ctx, stores)
			if err != nil {
				logger.Fatal().Err(err).Msg("failed to seed demo dataset")
			}
			logger.Info().
				Int("patients", sum.Patients).
				Int("doctors", sum.Doctors).
				Int("invoices", sum.Invoices).
				Msg("loaded demo dataset")
		}
	}

	hub := notification.NewHub(200)

	patientSvc := patient.NewService(stores.Patients, hub)
	staffSvc := staff.NewService(stores.Doctors, hub)
	departmentSvc := department.NewService(stores.Departments, hub)
	schedulingSvc := scheduling.NewService(stores.Appointments, hub)
	emergencySvc := emergency.NewService(stores.Emergency, hub)
	pharmacySvc := pharmacy.NewService(stores.Medicines, hub)
	laboratorySvc := laboratory.NewService(stores.LabTests, hub)
	billingSvc := billing.NewService(stores.Invoices, hub, decimal.NewFromFloat(cfg.TaxRate))
	adminSvc := admin.NewService(settingsRepo, hub)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	if cfg.IsDev() {
		e.Use(auth.DevAuthMiddleware())
	} else {
		e.Use(auth.JWTMiddleware(auth.JWTConfig{
			Issuer:     cfg.AuthIssuer,
			Audience:   cfg.AuthAudience,
			SigningKey: []byte(cfg.AuthSigningKey),
		}))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"storage": cfg.Storage,
			"version": "0.1.0",
		})
	})
	if pool != nil {
		e.GET("/health/db", db.HealthHandler(pool))
	}

	apiV1 := e.Group("/api/v1")

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))

	patient.NewHandler(patientSvc).RegisterRoutes(apiV1)
	staff.NewHandler(staffSvc).RegisterRoutes(apiV1)
	department.NewHandler(departmentSvc).RegisterRoutes(apiV1)
	scheduling.NewHandler(schedulingSvc).RegisterRoutes(apiV1)
	emergency.NewHandler(emergencySvc).RegisterRoutes(apiV1)
	pharmacy.NewHandler(pharmacySvc).RegisterRoutes(apiV1)
	laboratory.NewHandler(laboratorySvc).RegisterRoutes(apiV1)
	billing.NewHandler(billingSvc).RegisterRoutes(apiV1)
	admin.NewHandler(adminSvc).RegisterRoutes(apiV1)
	reports.NewHandler(patientSvc, staffSvc, schedulingSvc, departmentSvc,
		emergencySvc, pharmacySvc, laboratorySvc, billingSvc).RegisterRoutes(apiV1)
	hub.RegisterRoutes(apiV1)

	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("storage", cfg.Storage).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
