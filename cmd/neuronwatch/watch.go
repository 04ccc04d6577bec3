package main

import (
	"encoding/json"
	"io"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"neuronwatch"
	"neuronwatch/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Monitor the stream and print every log entry as a JSON line",
	RunE:  runWatch,
}

// entryPrinter writes one JSON document per line. Encode errors are logged,
// never fatal, so a broken pipe does not stop the monitor.
type entryPrinter struct {
	mu  sync.Mutex
	enc *json.Encoder
	log *logger.Logger
}

func newEntryPrinter(w io.Writer, log *logger.Logger) *entryPrinter {
	return &entryPrinter{enc: json.NewEncoder(w), log: logger.OrNop(log)}
}

func (p *entryPrinter) print(e neuronwatch.LogEntry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.enc.Encode(e); err != nil {
		p.log.Warnw("watch_write_failed", "id", e.ID, "err", err)
	}
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(viper.New(), configPath, cmd.Flags())
	if err != nil {
		return err
	}
	log := logger.Get(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	printer := newEntryPrinter(cmd.OutOrStdout(), log)
	monitor := newMonitor(cfg, log, printer.print)
	monitor.Run(ctx)
	return nil
}
