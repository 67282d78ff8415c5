//go:build !tinygo

package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/fopscorp/nixiewatch"
	"github.com/fopscorp/nixiewatch/internal/config"
	"github.com/fopscorp/nixiewatch/internal/hostlog"
	"github.com/fopscorp/nixiewatch/internal/hostsim"
	"github.com/fopscorp/nixiewatch/internal/motion"
)

var (
	configPath = flag.String("config", "", "YAML config file")
	bind       = flag.String("bind", "", "address for the preview and metrics server, overrides http.listen")
)

func main() {
	flag.Parse()

	cfg := &config.Config{}
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("config load failed: %v", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	config.Normalize(cfg)
	if *bind != "" {
		cfg.HTTP.Listen = *bind
	}

	logger, closeLog := hostlog.Open(cfg.Log)
	defer closeLog.Close()

	settings := cfg.Settings()
	opts := hostsim.Options{
		Settings:       settings,
		Logger:         logger,
		BatteryReading: cfg.Sim.BatteryReading,
		ChargeComplete: cfg.Sim.ChargeComplete,
		PreviewScale:   cfg.Sim.PreviewScale,
		Output:         os.Stdout,
	}
	if cfg.Sim.MotionBus != "" {
		sensor, closeBus, err := openSensor(cfg.Sim.MotionBus, settings)
		if err != nil {
			log.Fatalf("motion sensor: %v", err)
		}
		defer closeBus()
		opts.Sensor = sensor
	}

	sim, err := hostsim.New(opts)
	if err != nil {
		log.Fatalf("start simulator: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/display.bmp", http.StatusFound)
	})
	mux.Handle("/display.bmp", sim)
	mux.Handle("/metrics", sim.MetricsHandler())
	mux.HandleFunc("/shake", func(w http.ResponseWriter, req *http.Request) {
		sim.Shake()
		w.WriteHeader(http.StatusNoContent)
	})

	httpServer := http.Server{Addr: cfg.HTTP.Listen, Handler: mux}
	go func() {
		logger.Infof("http server listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Infof("http server died: %v", err)
			cancel()
		}
	}()

	// stdin is the host end of the serial link; an empty line shakes the watch
	go func() {
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			line := sc.Bytes()
			if len(line) == 0 {
				sim.Shake()
				continue
			}
			sim.Receive(append(line, '\n'))
		}
	}()

	if err := sim.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Infof("simulator stopped: %v", err)
	}

	tctx, c := context.WithTimeout(context.Background(), time.Second)
	defer c()
	_ = httpServer.Shutdown(tctx)
}

func openSensor(bus string, settings nixiewatch.Settings) (nixiewatch.MotionSensor, func(), error) {
	if _, err := host.Init(); err != nil {
		return nil, nil, err
	}
	b, err := i2creg.Open(bus)
	if err != nil {
		return nil, nil, err
	}
	s := motion.New(b, settings.Motion)
	if err := s.Configure(); err != nil {
		b.Close()
		return nil, nil, err
	}
	return s, func() { b.Close() }, nil
}
