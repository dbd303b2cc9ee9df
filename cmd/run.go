package main

import (
	"fmt"
	"os"

	"log/slog"

	"github.com/photobooksgallery/pbg-manager/app"
	"github.com/photobooksgallery/pbg-manager/config"
	"github.com/photobooksgallery/pbg-manager/log"
	"github.com/spf13/cobra"
)

func start(cmd *cobra.Command, args []string) error {
	if cmd == versionCmd {
		return nil
	}
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("cannot load a config %v", err.Error())
	}
	slog.SetDefault(log.New(os.Stderr, cfg.Logger))

	a = app.New(cfg, cmd.OutOrStdout())
	if err := a.Start(cmd.Context()); err != nil {
		return fmt.Errorf("cannot start the application %v", err.Error())
	}
	return nil
}

func stop(cmd *cobra.Command, args []string) {
	if a == nil {
		return
	}
	a.Stop(cmd.Context())
	a = nil
}
