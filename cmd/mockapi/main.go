package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/hkato/wanidash/internal/infra/config"
	"github.com/hkato/wanidash/internal/infra/logging"
	"github.com/hkato/wanidash/internal/infra/transport/http"
	"github.com/hkato/wanidash/internal/repo/account"
	"github.com/hkato/wanidash/internal/svc/mockapi"
)

const (
	appName = "wanidash"
	svcName = "mockapi"
)

type Config struct {
	config.EnvConfig

	Log     logging.LoggerConfig        `envPrefix:"LOG_"`
	HTTP    mockapi.HTTPTransportConfig `envPrefix:"HTTP_"`
	Account account.RepositoryConfig    `envPrefix:"ACCOUNT_"`
}

func main() {
	var (
		cfg Config
		ctx = context.Background()

		configPrefix = strings.ToUpper(strings.Join([]string{appName, svcName}, "_"))
		loggerName   = strings.ToLower(strings.Join([]string{appName, svcName}, "."))
	)

	if err := config.Parse(ctx, &cfg, configPrefix); err != nil {
		panic(err)
	}

	logging.Configure(ctx, cfg.Log, loggerName)

	if err := run(ctx, cfg); err != nil {
		panic(err)
	}
}

func run(ctx context.Context, cfg Config) (err error) {
	defer func() {
		log := logging.GetLogger("cmd.mockapi")

		if err != nil {
			log.ErrorContext(ctx, "error", "err", err)

			return
		}

		log.InfoContext(ctx, "shutdown")
	}()

	accountSvc, err := mockapi.NewAccountService(
		account.Factory(cfg.Account),
		mockapi.NewSessionRegistry(),
	)
	if err != nil {
		return fmt.Errorf("new account service: %w", err)
	}
	defer accountSvc.Close()

	httpTransport := mockapi.NewHTTPTransport(accountSvc, mockapi.NewReviewService(), cfg.HTTP)

	if err := http.ListenAndServe(ctx, httpTransport, cfg.HTTP.HTTPTransportConfig); err != nil {
		return fmt.Errorf("listen and serve: %w", err)
	}

	return nil
}
