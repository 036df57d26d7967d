package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"
	"github.com/honorguild/honorbot/honorbot"
	"github.com/honorguild/honorbot/honorbot/commands"
	"github.com/honorguild/honorbot/honorbot/config"
	"github.com/honorguild/honorbot/honorbot/database"
	"github.com/honorguild/honorbot/honorbot/database/repositories"
	"github.com/honorguild/honorbot/honorbot/handlers"
	"github.com/honorguild/honorbot/honorbot/logger"
	"github.com/honorguild/honorbot/honorbot/services"
	"github.com/honorguild/honorbot/internal/domain/honor"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"

	configPath         string
	shouldSyncCommands bool
)

var rootCmd = &cobra.Command{
	Use:           "honorbot",
	Short:         "Discord bot that keeps an honor ledger for a guild",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runBot,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "path to config")
	rootCmd.Flags().BoolVar(&shouldSyncCommands, "sync-commands", false, "Whether to sync commands to discord")
}

// Execute runs the CLI and exits non-zero on failure.
func Execute(v, c string) {
	version, commit = v, c
	rootCmd.Version = fmt.Sprintf("%s (%s)", version, commit)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command failed", slog.String("type", "sys"), slog.Any("error", err))
		os.Exit(1)
	}
}

// loadConfig also installs the logger, so it runs before anything logs.
func loadConfig() (*honorbot.Config, error) {
	logger.Setup(slog.LevelInfo, true)

	cfg, err := honorbot.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	logger.Setup(cfg.Log.Level, cfg.Log.Color)
	return cfg, nil
}

func openDatabase(ctx context.Context, cfg *honorbot.Config) (*database.DB, error) {
	start := time.Now()
	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err = db.Ping(ctx); err != nil {
		db.Close()
		return nil, err
	}
	logger.LogSystem("Database connected successfully",
		slog.String("driver", cfg.DB.Driver),
		logger.Since(start))
	return db, nil
}

func newHonorService(cfg *honorbot.Config, repo repositories.HonorRepository) (*honor.Service, error) {
	svc, err := honor.NewService(repo, cfg.Honor.Settings())
	if err != nil {
		return nil, fmt.Errorf("invalid [honor] configuration: %w", err)
	}
	return svc, nil
}

func runBot(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	slog.Info("Starting HonorBot",
		slog.String("type", "sys"),
		slog.String("version", version),
		slog.String("commit", commit))

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err = db.InitializeSchema(ctx); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	b := honorbot.New(*cfg, version, commit)
	b.DB = db
	b.HonorRepository = repositories.NewHonorRepository(db.BunDB())
	if b.Honor, err = newHonorService(cfg, b.HonorRepository); err != nil {
		return err
	}
	b.Reflector = services.NewReflector(b.Honor, config.ReflectTimeout)

	if cfg.Profanity.Enabled {
		b.Profanity, err = services.NewProfanityFilter(b.HonorRepository, services.ProfanityOptions{
			RemoteURL:  cfg.Profanity.RemoteURL,
			Timeout:    cfg.Profanity.Timeout(),
			CacheSize:  cfg.Profanity.CacheSize,
			RefreshTTL: config.BadWordRefreshTTL,
		})
		if err != nil {
			return fmt.Errorf("failed to create profanity filter: %w", err)
		}
		if err = b.Profanity.Seed(ctx, cfg.Profanity.SeedWords, "config"); err != nil {
			return fmt.Errorf("failed to seed bad words: %w", err)
		}
	}

	if cfg.Archive.Enabled() {
		s3Client, err := services.NewSpacesClient(ctx, cfg.Spaces.Key, cfg.Spaces.Secret, cfg.Spaces.Region, cfg.Spaces.Endpoint)
		if err != nil {
			return fmt.Errorf("failed to create spaces client: %w", err)
		}
		b.Archive = services.NewArchive(b.HonorRepository, s3Client, services.ArchiveOptions{
			Bucket:   cfg.Archive.Bucket,
			Prefix:   cfg.Archive.Prefix,
			Interval: cfg.Archive.Interval(),
			Timeout:  config.ArchiveTimeout,
		})
		if err = b.Archive.Start(); err != nil {
			return fmt.Errorf("failed to start ledger archive: %w", err)
		}
		defer func() {
			if err := b.Archive.Stop(); err != nil {
				logger.LogError("Failed to stop ledger archive", err)
			}
		}()
	}

	h := handler.New()

	// Profile and listings
	h.Command("/honor", handlers.WrapWithLogging("honor", commands.HonorHandler(b)))
	h.Command("/achievements", handlers.WrapWithLogging("achievements", commands.AchievementsHandler(b)))
	h.Command("/leaderboard", handlers.WrapWithLogging("leaderboard", commands.LeaderboardHandler(b)))
	h.Command("/history", handlers.WrapWithLogging("history", commands.HistoryHandler(b)))

	// Social awards
	h.Command("/thanks", handlers.WrapWithLogging("thanks", commands.ThanksHandler(b)))
	h.Command("/bless", handlers.WrapWithLogging("bless", commands.BlessHandler(b)))
	h.Command("/helped", handlers.WrapWithLogging("helped", commands.HelpedHandler(b)))
	h.Component("/helped/{helper}/{helped}", handlers.WrapComponentWithLogging("helped-confirm", commands.HelpConfirmHandler(b)))

	// Claims
	h.Command("/daily", handlers.WrapWithLogging("daily", commands.DailyHandler(b)))
	h.Command("/lootbox", handlers.WrapWithLogging("lootbox", commands.LootboxHandler(b)))

	// Community
	h.Command("/fixroles", handlers.WrapWithLogging("fixroles", commands.FixRolesHandler(b)))
	h.Command("/poll", handlers.WrapWithLogging("poll", commands.PollHandler(b)))
	h.Command("/report", handlers.WrapWithLogging("report", commands.ReportHandler(b)))
	h.Component("/report/add/{reporter}/{word}", handlers.WrapComponentWithLogging("report-add", commands.ReportAddHandler(b)))
	h.Component("/report/cancel/{reporter}/{word}", handlers.WrapComponentWithLogging("report-cancel", commands.ReportCancelHandler()))

	// Admin
	h.Command("/honor-adjust", handlers.WrapWithLogging("honor-adjust", commands.HonorAdjustHandler(b)))
	h.Route("/badword", func(r handler.Router) {
		r.Command("/add", handlers.WrapWithLogging("badword-add", commands.BadWordAddHandler(b)))
		r.Command("/remove", handlers.WrapWithLogging("badword-remove", commands.BadWordRemoveHandler(b)))
		r.Autocomplete("/remove", handlers.WrapAutocompleteWithLogging("badword-remove", commands.BadWordAutocomplete(b)))
	})

	if err = b.SetupBot(h,
		bot.NewListenerFunc(b.OnReady),
		bot.NewListenerFunc(b.OnGuildReady),
		bot.NewListenerFunc(b.OnGuildJoin),
		handlers.MessageHandler(b),
	); err != nil {
		return fmt.Errorf("failed to setup bot: %w", err)
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		b.Client.Close(ctx)
		b.Reflector.Wait()
	}()

	if shouldSyncCommands {
		slog.Info("Syncing commands",
			slog.String("type", "sys"),
			slog.Any("guild_ids", cfg.Bot.DevGuilds),
		)
		if err = handler.SyncCommands(b.Client, commands.Commands, cfg.Bot.DevGuilds); err != nil {
			slog.Error("Failed to sync commands",
				slog.String("type", "sys"),
				slog.Any("error", err),
				slog.String("component", "command_sync"),
				slog.String("status", "failed"),
			)
		}
	}

	gatewayCtx, gatewayCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer gatewayCancel()
	if err = b.Client.OpenGateway(gatewayCtx); err != nil {
		return fmt.Errorf("failed to open gateway: %w", err)
	}

	slog.Info("Bot is running. Press CTRL-C to exit.", slog.String("type", "sys"))
	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s
	slog.Info("Shutting down bot...", slog.String("type", "sys"))
	return nil
}
