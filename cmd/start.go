package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"asset-verifier/core/config"
	"asset-verifier/core/database"
	"asset-verifier/core/loader"
	"asset-verifier/core/logger"
	"asset-verifier/core/middleware/auth"
	"asset-verifier/core/middleware/rayid"
	"asset-verifier/feature/assets"
	"asset-verifier/feature/integrity"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the verification server",
	Long:  `Starts the HTTP server verifying exports stored in the configured bucket.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to History Database (Optional)
		var (
			db    *gorm.DB
			store *assets.ReportStore
		)
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed, history disabled", zap.Error(err))
		} else {
			candidate := assets.NewReportStore(conn)
			if err := candidate.Migrate(); err != nil {
				logg.Warn("History migration failed, history disabled", zap.Error(err))
			} else {
				db = conn
				store = candidate
				logg.Info("Connected to history database", zap.String("driver", cfg.Database.Driver))
			}
		}

		// 4. Initialize Storage
		src, err := newSource(context.Background(), cfg, assets.SourceBucket, logg)
		if err != nil {
			logg.Fatal("Failed to initialize storage", zap.Error(err))
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
		})

		// 5. Initialize Feature Loader
		mgr := loader.NewManager()
		svc := assets.NewService(logg, store, cfg.Server.CacheTTL)
		mgr.Register(assets.NewFeature(svc, src, cfg.Verify))
		mgr.Register(integrity.NewFeature(src, logg, db, cfg.Verify))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 6. Load Features
		loaded, err := mgr.LoadAll(app)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		// 7. Start Server
		go func() {
			logg.Info("Starting server", zap.String("addr", cfg.Server.Addr()))
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
