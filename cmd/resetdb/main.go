// Command resetdb drops the users, volunteers and admins collections and
// rebuilds their indexes. It reads the same configuration as the server.
//
//	resetdb [--force] [server config flags]
//
// --force is required when env is "prod".
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dalemusser/memberhub/internal/app/bootstrap"
	"github.com/dalemusser/memberhub/internal/app/system/indexes"
	"go.uber.org/zap"
)

var collections = []string{"users", "volunteers", "admins"}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	force := takeFlag("--force")

	if err := run(context.Background(), logger, force); err != nil {
		logger.Error("reset failed", zap.Error(err))
		os.Exit(1)
	}
}

// takeFlag removes name from os.Args so the config loader does not see a
// flag it does not know, and reports whether it was present.
func takeFlag(name string) bool {
	found := false
	args := os.Args[:1]
	for _, a := range os.Args[1:] {
		if a == name || a == "-"+name[2:] {
			found = true
			continue
		}
		args = append(args, a)
	}
	os.Args = args
	return found
}

func run(ctx context.Context, logger *zap.Logger, force bool) error {
	coreCfg, appCfg, err := bootstrap.LoadConfig(logger)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := bootstrap.ValidateConfig(coreCfg, appCfg, logger); err != nil {
		return err
	}
	if coreCfg.Env == "prod" && !force {
		return errors.New("refusing to reset a prod database without --force")
	}

	client, err := bootstrap.Connect(ctx, appCfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database(appCfg.MongoDatabase)
	for _, name := range collections {
		if err := db.Collection(name).Drop(ctx); err != nil {
			return fmt.Errorf("drop %s: %w", name, err)
		}
		logger.Info("dropped collection", zap.String("database", appCfg.MongoDatabase), zap.String("collection", name))
	}

	if err := indexes.EnsureAll(ctx, db); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}
	logger.Info("database reset complete", zap.String("database", appCfg.MongoDatabase))
	return nil
}
