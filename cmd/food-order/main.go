package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"food-order/internal/app/api"
	"food-order/internal/common/logger"
	"food-order/internal/config"
	"food-order/internal/connections/rabbitmq"
	"food-order/internal/microservices/notificator"
)

func main() {
	mode := flag.String("mode", "api", "api | notification-subscriber")
	cfgPath := flag.String("config", "", "path to YAML config (default: config.yaml or deploy/config.example.yaml when present)")
	port := flag.Int("port", 0, "api: http port, overrides the config file")
	flag.Parse()

	lg := logger.New("bootstrap")
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	path := *cfgPath
	if path == "" {
		found, err := config.FindConfig()
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			lg.Error("config_lookup_failed", err, nil)
			os.Exit(1)
		}
		path = found
	}
	cfg, err := config.Load(path)
	if err != nil {
		lg.Error("config_load_failed", err, map[string]any{"path": path})
		os.Exit(2)
	}
	logger.SetLevel(cfg.Server.LogLevel)
	if *port != 0 {
		cfg.Server.Port = *port
	}

	switch *mode {
	case "api":
		if err := api.Run(ctx, cfg); err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}
	case "notification-subscriber":
		if !cfg.RabbitMQ.Enabled {
			fmt.Fprintln(os.Stderr, "notification-subscriber needs rabbitmq.enabled: true")
			os.Exit(2)
		}
		client, err := rabbitmq.Dial(cfg.RabbitMQ, false)
		if err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}
		defer client.Close()
		lg.Info("service_started", map[string]any{"service": "notification-subscriber"})
		if err := notificator.Start(ctx, client, cfg.RabbitMQ.Exchange); err != nil {
			lg.Error("fatal", err, nil)
			client.Close()
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "--mode must be one of: api | notification-subscriber")
		os.Exit(2)
	}
}
