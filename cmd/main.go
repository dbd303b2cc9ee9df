package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/photobooksgallery/pbg-manager/app"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:               "pbg-manager",
		Short:             "Back office for the PhotoBooksGallery storefront",
		SilenceUsage:      true,
		PersistentPreRunE: start,
		PersistentPostRun: stop,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the pbg-manager version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}

	cfgFile string
	version string

	a *app.App
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to configuration file (optional)")
	rootCmd.AddCommand(
		versionCmd,
		productCmd(),
		bannerCmd(),
		offerCmd(),
		pageCmd(),
		blockCmd(),
		uploadCmd(),
		draftsCmd(),
		arCmd(),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Default().Error("command failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
}
