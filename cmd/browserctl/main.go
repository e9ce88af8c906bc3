// Command browserctl runs the kiosk browser control server. It listens on
// port 6090 by default and navigates by restarting the browser through the
// external restart loop.
package main

import (
	"log"

	"github.com/raysh454/browserctl/internal/config"
	"github.com/raysh454/browserctl/internal/display"
	"github.com/raysh454/browserctl/internal/handoff"
	"github.com/raysh454/browserctl/internal/history"
	"github.com/raysh454/browserctl/internal/logging"
	"github.com/raysh454/browserctl/internal/procsignal"
	"github.com/raysh454/browserctl/internal/server"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	cfg.ParseFlags()

	logger := logging.NewStdoutLogger("browser-control")

	querier := display.NewXQuerier(display.Config{
		Display: cfg.Display,
		Timeout: cfg.ToolTimeout,
	}, logger)
	killer := procsignal.NewPKiller(procsignal.Config{
		Timeout: cfg.ToolTimeout,
	}, logger)

	hand, err := handoff.NewFileHandoff(cfg.HandoffPath)
	if err != nil {
		log.Fatalf("Handoff setup: %v", err)
	}

	srvCfg := server.Config{
		ListenAddr:  cfg.ControlAddr,
		WindowClass: cfg.WindowClass,
		KillPattern: cfg.KillPattern,
		Windows:     querier,
		Procs:       killer,
		Handoff:     hand,
		Logger:      logger,
	}

	if cfg.HistoryPath != "" {
		journal, err := history.Open(cfg.HistoryPath, logger)
		if err != nil {
			log.Fatalf("Opening navigation journal: %v", err)
		}
		defer journal.Close()
		srvCfg.History = journal
	}

	s, err := server.NewServer(srvCfg)
	if err != nil {
		log.Fatalf("Server setup: %v", err)
	}

	logger.Info("browser control server listening",
		logging.Field{Key: "addr", Value: cfg.ControlAddr},
		logging.Field{Key: "display", Value: cfg.Display},
		logging.Field{Key: "handoff", Value: hand.Path()})

	if err := s.HTTPServer().ListenAndServe(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
