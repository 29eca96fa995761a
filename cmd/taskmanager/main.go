package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"taskmanager/internal/avatar"
	"taskmanager/internal/config"
	"taskmanager/internal/storage/sqlite"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type options struct {
	addr      string
	dbPath    string
	mediaRoot string
}

// app bundles what every subcommand opens.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	store  *sqlite.Store
	media  *avatar.Media
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "taskmanager",
		Short:         "Task manager data layer: workers, positions, tasks and profiles",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.addr, "addr", "", "HTTP listen address (TM_ADDR)")
	flags.StringVar(&opts.dbPath, "db", "", "path to sqlite database file (TM_DB_PATH)")
	flags.StringVar(&opts.mediaRoot, "media", "", "directory avatars are stored in (TM_MEDIA_ROOT)")

	root.AddCommand(
		newServeCmd(opts),
		newSeedCmd(opts),
		newNormalizeAvatarsCmd(opts),
	)
	return root
}

func openApp(cmd *cobra.Command, opts *options) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if opts.addr != "" {
		cfg.Addr = opts.addr
	}
	if opts.dbPath != "" {
		cfg.DBPath = opts.dbPath
	}
	if opts.mediaRoot != "" {
		cfg.MediaRoot = opts.mediaRoot
	}

	logger := slog.New(slog.NewTextHandler(cmd.OutOrStdout(), &slog.HandlerOptions{Level: cfg.LogLevel}))

	store, err := sqlite.Open(cfg.DBPath, logger)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	media := avatar.NewMedia(cfg.MediaRoot)
	if err := media.EnsureDefault(); err != nil {
		_ = store.Close()
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, store: store, media: media}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Error("close database", slog.String("error", err.Error()))
	}
}
