// @title        neuronwatch API
// @version      1.0
// @description  Read-only view of a cortex neuron stream: connection status, neuron table, heartbeat pulses and the recent event log.
// @BasePath     /
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "neuronwatch",
	Short: "neuronwatch - live monitor for a cortex neuron stream",
	Long: `neuronwatch keeps a live connection to a cortex's neuron stream, reconciles
snapshots and events into a neuron table and a capped event log, and serves
that state read-only over HTTP.`,
	SilenceUsage: true,
	// No RunE - shows help when no subcommand is given
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default configs/config.yml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("cortex-url", "", "cortex stream address, e.g. ws://127.0.0.1:4000/stream")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
