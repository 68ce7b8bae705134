// calendarctl - административная утилита календаря доступности
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-CalendarService/internal/app"
	"github.com/m04kA/SMC-CalendarService/internal/config"
	"github.com/m04kA/SMC-CalendarService/pkg/logger"
)

type options struct {
	configPath string
	calendar   string
	logLevel   string
}

func main() {
	opts := &options{}

	root := &cobra.Command{
		Use:           "calendarctl",
		Short:         "Manage availability calendars from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "config.toml", "Path to config file")
	root.PersistentFlags().StringVarP(&opts.calendar, "calendar", "c", "", "Calendar slug (default from config)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level for command output")

	root.AddCommand(
		newMigrateCmd(opts),
		newImportCmd(opts),
		newApplyCmd(opts),
		newStatusCmd(opts),
		newPruneCmd(opts),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// load читает конфигурацию и создает логгер команды
func (o *options) load() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	if o.calendar == "" {
		o.calendar = cfg.Calendar.DefaultSlug
	}

	log, err := logger.New("", o.logLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// withApp собирает зависимости, выполняет fn и освобождает ресурсы
func (o *options) withApp(ctx context.Context, fn func(a *app.App) error) error {
	cfg, log, err := o.load()
	if err != nil {
		return err
	}
	defer log.Close()

	// Метрики в CLI не нужны
	a, err := app.New(ctx, cfg, log, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(a)
}
