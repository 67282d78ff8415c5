// Command nixiectl reads and sets the time of a nixie watch over its USB serial port.
//
//	nixiectl [flags] get
//	nixiectl [flags] set HH:MM
//	nixiectl [flags] sync
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/goburrow/serial"

	"github.com/fopscorp/nixiewatch/internal/config"
	"github.com/fopscorp/nixiewatch/internal/serialproto"
)

var (
	configPath = flag.String("config", "", "YAML config file")
	portFlag   = flag.String("port", "", "serial device, overrides serial.port")
	baudFlag   = flag.Int("baud", 0, "baud rate, overrides serial.baud_rate")
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: nixiectl [flags] get | set HH:MM | sync")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
	}

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
	if *portFlag != "" {
		cfg.Serial.Port = *portFlag
	}
	if *baudFlag != 0 {
		cfg.Serial.BaudRate = *baudFlag
	}

	port, err := serial.Open(&serial.Config{
		Address:  cfg.Serial.Port,
		BaudRate: cfg.Serial.BaudRate,
		DataBits: 8,
		StopBits: 1,
		Parity:   "N",
		Timeout:  time.Duration(cfg.Serial.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		log.Fatalf("open %s: %v", cfg.Serial.Port, err)
	}
	defer port.Close()

	c := newClient(port)
	var h, m uint8
	switch cmd := flag.Arg(0); cmd {
	case "get":
		h, m, err = c.get()
	case "set":
		if flag.NArg() != 2 {
			usage()
		}
		var wh, wm uint8
		wh, wm, err = serialproto.ParseReply([]byte(flag.Arg(1)))
		if err != nil {
			log.Fatalf("bad time %q: want HH:MM", flag.Arg(1))
		}
		h, m, err = c.set(wh, wm)
	case "sync":
		now := time.Now()
		h, m, err = c.set(uint8(now.Hour()), uint8(now.Minute()))
	default:
		log.Printf("unknown command %q", cmd)
		usage()
	}
	if err != nil {
		log.Fatalf("%s: %v", flag.Arg(0), err)
	}
	fmt.Printf("%02d:%02d\n", h, m)
}
