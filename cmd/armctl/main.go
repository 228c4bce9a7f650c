package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/armkit/armctl/internal/api"
	"github.com/armkit/armctl/internal/config"
	"github.com/armkit/armctl/internal/gcode"
	"github.com/armkit/armctl/internal/logging"
	"github.com/armkit/armctl/internal/motion"
	"github.com/armkit/armctl/internal/transport/serialconsole"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "armctl: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to armctl config.toml")
	flag.Parse()

	logging.ConfigureRuntime()

	rtCfg := defaultRuntimeConfig()
	if *configPath != "" {
		loaded, err := loadRuntimeConfig(*configPath)
		if err != nil {
			return err
		}
		rtCfg = loaded
	}

	armCfg := config.Default()
	if rtCfg.ArmConfigPath != "" {
		loaded, err := config.Load(rtCfg.ArmConfigPath)
		if err != nil {
			return err
		}
		armCfg = loaded
	}

	// A violated limit invariant is fatal here, before any transport
	// accepts commands.
	registry, err := armCfg.Registry()
	if err != nil {
		return err
	}

	backend := motion.NewSimulator(registry.Len())
	coord := motion.NewCoordinator(registry, backend, log.With().Str("component", "motion").Logger())
	interp := gcode.NewInterpreter(coord, log.With().Str("component", "gcode").Logger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if rtCfg.SerialPort != "" {
		console, port, err := serialconsole.Open(rtCfg.SerialPort, rtCfg.SerialBaud, interp,
			log.With().Str("component", "serial").Logger())
		if err != nil {
			return fmt.Errorf("open serial port %s: %w", rtCfg.SerialPort, err)
		}
		defer port.Close()
		go func() {
			if err := console.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("serial console exited")
			}
		}()
		log.Info().Str("port", rtCfg.SerialPort).Int("baud", rtCfg.SerialBaud).Msg("serial console listening")
	}

	server := api.NewServer(coord, interp, log.With().Str("component", "api").Logger())
	return server.Run(rtCfg.ListenAddr)
}
