package main

import (
	"context"
	"flag"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/olivierh59500/starfield/internal/config"
	"github.com/olivierh59500/starfield/internal/display"
	"github.com/olivierh59500/starfield/internal/display/window"
)

func main() {
	log.SetPrefix("starfield: ")
	log.SetFlags(log.LstdFlags)

	def := config.Default()
	var (
		configPath  = flag.String("config", "", "JSON config file")
		backend     = flag.String("backend", def.Backend, "window or terminal")
		width       = flag.Int("width", def.Width, "window width")
		height      = flag.Int("height", def.Height, "window height")
		seed        = flag.Int64("seed", def.Seed, "random seed, 0 for time based")
		tps         = flag.Int("tps", def.TPS, "frames per second")
		logPath     = flag.String("log", "", "log file (terminal backend logs nowhere by default)")
		writeConfig = flag.String("write-config", "", "write the effective config to this file and exit")
	)
	flag.Parse()

	cfg := def
	if *configPath != "" {
		var err error
		if cfg, err = config.Read(*configPath); err != nil {
			log.Fatal(err)
		}
	}

	// Flags given on the command line win over the file, validation runs after
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Backend = *backend
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "seed":
			cfg.Seed = *seed
		case "tps":
			cfg.TPS = *tps
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	if *writeConfig != "" {
		if err := cfg.Save(*writeConfig); err != nil {
			log.Fatal(err)
		}
		log.Printf("config written to %s", *writeConfig)
		return
	}

	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else if cfg.Backend == config.BackendTerminal {
		log.SetOutput(io.Discard)
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	log.Printf("backend=%s size=%dx%d seed=%d", cfg.Backend, cfg.Width, cfg.Height, cfg.Seed)

	var err error
	switch cfg.Backend {
	case config.BackendTerminal:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		err = display.RunTerminal(ctx, cfg, rng)
		stop()
	default:
		err = window.Run(cfg, rng)
	}
	if err != nil {
		log.Fatal(err)
	}
}
