package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hkato/wanidash/internal/infra/config"
	"github.com/hkato/wanidash/internal/infra/logging"
	"github.com/hkato/wanidash/internal/svc/dashboard"
)

const (
	appName = "wanidash"
	svcName = "dashboard"
)

type Config struct {
	config.EnvConfig

	Log       logging.LoggerConfig      `envPrefix:"LOG_"`
	WaniKani  dashboard.ClientConfig    `envPrefix:"WANIKANI_"`
	Translate dashboard.TranslateConfig `envPrefix:"TRANSLATE_"`

	// Token authenticates requests against the upstream API
	Token string `env:"WANIKANI_API_KEY" default:""`
}

func main() {
	var (
		cfg Config
		ctx = context.Background()

		configPrefix = strings.ToUpper(strings.Join([]string{appName, svcName}, "_"))
		loggerName   = strings.ToLower(strings.Join([]string{appName, svcName}, "."))
	)

	if err := config.Parse(ctx, &cfg, configPrefix); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", svcName, err)
		os.Exit(1)
	}

	logging.Configure(ctx, cfg.Log, loggerName)

	if err := run(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", svcName, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config) (err error) {
	defer func() {
		log := logging.GetLogger("cmd.dashboard")

		if err != nil {
			log.ErrorContext(ctx, "error", "err", err)

			return
		}

		log.DebugContext(ctx, "done")
	}()

	client := dashboard.NewClient(cfg.WaniKani, cfg.Token, nil)
	translator := dashboard.NewTranslator(cfg.Translate, nil)
	svc := dashboard.NewService(client, translator)

	report, err := svc.BuildReport(ctx)
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	if err := report.Render(os.Stdout); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	return nil
}
