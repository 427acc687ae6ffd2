// Command ledger_token signs a bearer token for a principal with the
// configured JWT_SECRET and JWT_ISSUER, for local development against the API.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/permissioned_ledger/internal/core/domain"
	"github.com/SscSPs/permissioned_ledger/internal/platform/config"
	"github.com/SscSPs/permissioned_ledger/internal/utils"
	"github.com/spf13/pflag"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	principal := pflag.StringP("principal", "p", "", "principal to put in the token subject")
	ttl := pflag.Duration("ttl", time.Hour, "token lifetime")
	pflag.Parse()

	if *principal == "" {
		pflag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	token, err := utils.GenerateJWT(domain.Principal(*principal), cfg.JWTSecret, *ttl, cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to sign token", slog.String("error", err.Error()))
		os.Exit(1)
	}
	fmt.Println(token)
}
