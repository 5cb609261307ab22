package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"assetconv/config"
	"assetconv/logger"
	"assetconv/pipeline"
)

var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	rootCmd := &cobra.Command{
		Use:   "assetconv",
		Short: "Mirror an asset tree, re-encoding images to AVIF",
		Long: `assetconv rebuilds a target asset tree from a source tree: every
configured image extension is re-encoded to AVIF and everything else
is copied byte-for-byte with its directory structure preserved.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newConvertCommand(&configFlag))
	rootCmd.AddCommand(newInitCommand(&configFlag))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func newConvertCommand(configFlag *string) *cobra.Command {
	var (
		sourceFlag string
		targetFlag string
		quality    int
		alpha      int
		speed      int
		watch      bool
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Rebuild the target tree from the source tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ov := &config.Overrides{
				SourceDir: sourceFlag,
				TargetDir: targetFlag,
			}
			if cmd.Flags().Changed("quality") {
				ov.Quality = &quality
			}
			if cmd.Flags().Changed("quality-alpha") {
				ov.QualityAlpha = &alpha
			}
			if cmd.Flags().Changed("speed") {
				ov.Speed = &speed
			}

			cfg, path, exists, err := config.Load(*configFlag, ov)
			if err != nil {
				return err
			}

			console := logger.NewConsole(logger.FromConfig(cfg.Logging.Format, cfg.Logging.Level, cfg.Logging.Colors))
			if exists {
				console.Log("using config %s", path)
			}

			runner := pipeline.NewRunner(cfg, console)
			if _, err := runner.Run(cmd.Context()); err != nil {
				return err
			}

			if !watch {
				return nil
			}

			watcher, err := pipeline.NewWatcher(cfg, console, runner)
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			defer watcher.Close()
			return watcher.Start(cmd.Context())
		},
	}

	defaults := config.Default()
	cmd.Flags().StringVarP(&sourceFlag, "source", "s", "", "Source asset directory")
	cmd.Flags().StringVarP(&targetFlag, "target", "t", "", "Target asset directory (destroyed and rebuilt)")
	cmd.Flags().IntVar(&quality, "quality", defaults.Encoding.Quality, "Image quality (0-100, higher is better)")
	cmd.Flags().IntVar(&alpha, "quality-alpha", defaults.Encoding.QualityAlpha, "Alpha channel quality (0-100)")
	cmd.Flags().IntVar(&speed, "speed", defaults.Encoding.Speed, "Encoding speed (0-10, lower is better quality but slower)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep watching the source tree and rebuild on changes")

	return cmd
}

func newInitCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a sample configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := *configFlag
			if path == "" {
				path = config.DefaultConfigPath()
			}
			if err := config.WriteSample(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			console := logger.NewConsole(logger.DefaultOptions())
			console.Box("assetconv version information", fmt.Sprintf(
				"Version: %s\nBuild date: %s\nGit commit: %s",
				Version, BuildDate, GitCommit,
			))
		},
	}
}
