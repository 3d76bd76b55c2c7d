// Package blockdemo is a small ambient CLI that exercises the block
// engine end to end: it replays a scripted OSC 777;cx; transcript
// through one integrator pane and prints the resulting block table.
// It is not part of the engine's public contract — the core itself
// exposes no CLI surface.
package blockdemo

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	viperlib "github.com/spf13/viper"

	"github.com/cxterm/blockengine/internal/config"
	"github.com/cxterm/blockengine/internal/dispatch"
	"github.com/cxterm/blockengine/internal/integrator"
	"github.com/cxterm/blockengine/internal/log"
)

var (
	version       = "dev"
	cfgFile       string
	transcriptArg string
	cfg           config.Config

	viper = viperlib.New()
)

var rootCmd = &cobra.Command{
	Use:     "blockdemo",
	Short:   "Replay an OSC 777;cx; transcript through the block engine",
	Long:    `blockdemo feeds a scripted shell-integration transcript through one terminal-window integrator pane and prints the resulting block table.`,
	Version: version,
	RunE:    runDemo,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/blockengine/config.yaml)")
	rootCmd.Flags().StringVarP(&transcriptArg, "transcript", "t", "",
		"path to a transcript file, one OSC 777;cx; payload per line (required)")
	_ = rootCmd.MarkFlagRequired("transcript")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("max_blocks", defaults.MaxBlocks)
	viper.SetDefault("dispatch.max_queued", defaults.Dispatch.MaxQueued)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, _ := os.UserHomeDir()
		viper.AddConfigPath(filepath.Join(home, ".config", "blockengine"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viperlib.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Warn(log.CatConfig, "failed to read config", "error", err.Error())
		}
	} else {
		log.Info(log.CatConfig, "config loaded", "path", viper.ConfigFileUsed())
	}

	_ = viper.Unmarshal(&cfg)
}

// SetVersion sets the version string reported by --version.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runDemo(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	f, err := os.Open(transcriptArg)
	if err != nil {
		return fmt.Errorf("opening transcript: %w", err)
	}
	defer f.Close()

	outbox := dispatch.NewOutbox(cfg.Dispatch.MaxQueued)
	in := integrator.New(cfg.MaxBlocks, outbox)

	const pane integrator.PaneID = "demo"

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		payload := scanner.Text()
		if payload == "" {
			line++
			continue
		}
		in.HandleExtensionSequence(pane, payload, line)
		line++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading transcript: %w", err)
	}

	printBlockTable(cmd.OutOrStdout(), in, pane)
	printDispatchSummary(cmd.OutOrStdout(), outbox)

	return nil
}
