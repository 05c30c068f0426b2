package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/chatme-bot/chatme/internal/profile"
	"github.com/chatme-bot/chatme/plugin/ai"
	"github.com/chatme-bot/chatme/plugin/ai/router"
	"github.com/chatme-bot/chatme/server"
	reminderservice "github.com/chatme-bot/chatme/server/service/reminder"
	"github.com/chatme-bot/chatme/server/timezone"
	"github.com/chatme-bot/chatme/store"
	"github.com/chatme-bot/chatme/store/db"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "chatme",
	Short: "A conversational reminder bot",
	RunE: func(_ *cobra.Command, _ []string) error {
		instanceProfile := &profile.Profile{
			Mode:     viper.GetString("mode"),
			Addr:     viper.GetString("addr"),
			Port:     viper.GetInt("port"),
			Data:     viper.GetString("data"),
			Driver:   viper.GetString("driver"),
			DSN:      viper.GetString("dsn"),
			Timezone: viper.GetString("timezone"),
			Version:  version,
		}
		instanceProfile.FromEnv()
		if err := instanceProfile.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return run(ctx, instanceProfile)
	},
}

func run(ctx context.Context, instanceProfile *profile.Profile) error {
	loc, err := timezone.Parse(instanceProfile.Timezone)
	if err != nil {
		return err
	}

	driver, err := db.NewDBDriver(instanceProfile)
	if err != nil {
		return fmt.Errorf("failed to create db driver: %w", err)
	}
	st := store.New(driver, instanceProfile)
	defer st.Close()
	if err := st.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate db: %w", err)
	}

	var llm ai.LLMService
	if instanceProfile.IsAIEnabled() {
		llm, err = ai.NewLLMService(instanceProfile)
		if err != nil {
			return fmt.Errorf("failed to create llm service: %w", err)
		}
	}

	var classifier *router.LLMClassifier
	if llm != nil {
		classifier = router.NewLLMClassifier(llm)
	}
	routerService := router.NewRouterService(router.NewRuleMatcher(), classifier)

	reminderService := reminderservice.NewService(st, llm, loc)

	channels := reminderservice.NewChannelRegistry()
	if instanceProfile.TelegramToken != "" {
		channels.Register(reminderservice.NewTelegramSender(instanceProfile.TelegramToken))
	} else {
		slog.Warn("no telegram token configured, reminder notices go to the log")
		channels.Register(reminderservice.NewLogSender())
	}
	dispatcher := reminderservice.NewDispatcher(st, channels, time.Minute)

	srv, err := server.NewServer(ctx, instanceProfile, st, reminderService, routerService, llm)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return srv.Start(groupCtx)
	})
	group.Go(func() error {
		if err := dispatcher.Start(groupCtx); err != nil {
			return err
		}
		<-groupCtx.Done()
		dispatcher.Stop()
		return nil
	})

	return group.Wait()
}

func init() {
	rootCmd.PersistentFlags().String("mode", "dev", `mode of the server, can be "prod" or "dev"`)
	rootCmd.PersistentFlags().String("addr", "", "binding address for the server")
	rootCmd.PersistentFlags().Int("port", 8230, "binding port for the server")
	rootCmd.PersistentFlags().String("data", "", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", `database driver, can be "sqlite" or "postgres"`)
	rootCmd.PersistentFlags().String("dsn", "", "database connection string")
	rootCmd.PersistentFlags().String("timezone", "", "IANA timezone for reminder computations")

	for _, flag := range []string{"mode", "addr", "port", "data", "driver", "dsn", "timezone"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(err)
		}
	}
	viper.SetEnvPrefix("chatme")
	viper.AutomaticEnv()
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	if err := rootCmd.Execute(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}
