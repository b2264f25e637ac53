package main

import (
	"context"
	"flag"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/physic"

	"github.com/SeanoNET/PicoPixels/internal/config"
	"github.com/SeanoNET/PicoPixels/internal/led"
	"github.com/SeanoNET/PicoPixels/internal/render"
	"github.com/SeanoNET/PicoPixels/internal/render/effects"
	"github.com/SeanoNET/PicoPixels/internal/serialin"
	"github.com/SeanoNET/PicoPixels/internal/ws"
)

const panelHeight = 8

func main() {
	var (
		driver     = flag.String("driver", "spi", "display driver: spi | sim")
		modules    = flag.Int("modules", 4, "number of cascaded 8x8 modules")
		spiDev     = flag.String("spi-dev", "", "SPI port (empty picks the first)")
		spiSpeed   = flag.Int("spi-speed", 4000000, "SPI clock in Hz")
		serialDev  = flag.String("serial", "", "serial port to accept commands on (empty: stdin only)")
		serialBaud = flag.Int("baud", 115200, "serial baud rate")
		addr       = flag.String("addr", ":8080", "HTTP listen address for the web bridge (empty disables)")
		brightness = flag.Int("brightness", 5, "initial brightness 0-15")
		speedMS    = flag.Int("speed", 200, "initial frame interval in ms")
		text       = flag.String("text", "HELLO WORLD", "initial scroll text")
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		simOnly    = flag.Bool("sim-only", false, "force simulation (no hardware output)")
		debug      = flag.Bool("debug", false, "verbose logging")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// config.yaml overrides flags where set
	var cfgFile *config.Config
	if c, err := config.Load(*configPath); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
	} else {
		cfgFile = c
	}

	eDriver, eModules := *driver, *modules
	eSPIDev, eSPISpeed := *spiDev, *spiSpeed
	eSerialDev, eSerialBaud := *serialDev, *serialBaud
	eAddr := *addr
	runtime := render.DefaultConfig()
	runtime.Brightness = *brightness
	runtime.Interval = time.Duration(*speedMS) * time.Millisecond
	runtime.SetText(*text)

	if cfgFile != nil {
		if cfgFile.Driver != "" {
			eDriver = cfgFile.Driver
		}
		if cfgFile.Modules > 0 {
			eModules = cfgFile.Modules
		}
		if cfgFile.Addr != "" {
			eAddr = cfgFile.Addr
		}
		if cfgFile.SPI.Dev != "" {
			eSPIDev = cfgFile.SPI.Dev
		}
		if cfgFile.SPI.SpeedHz > 0 {
			eSPISpeed = cfgFile.SPI.SpeedHz
		}
		if cfgFile.Serial.Dev != "" {
			eSerialDev = cfgFile.Serial.Dev
		}
		if cfgFile.Serial.Baud > 0 {
			eSerialBaud = cfgFile.Serial.Baud
		}
		if cfgFile.Defaults.Brightness > 0 {
			runtime.Brightness = cfgFile.Defaults.Brightness
		}
		if cfgFile.Defaults.SpeedMS > 0 {
			runtime.Interval = time.Duration(cfgFile.Defaults.SpeedMS) * time.Millisecond
		}
		if cfgFile.Defaults.Text != "" {
			runtime.SetText(cfgFile.Defaults.Text)
		}
	}
	if *simOnly {
		eDriver = "sim"
	}

	// ---- Display driver (fall back to sim when hardware is absent) ----
	var drv render.Driver
	switch eDriver {
	case "spi":
		d, err := led.NewMAX7219(eSPIDev, eModules, physic.Frequency(eSPISpeed)*physic.Hertz)
		if err != nil {
			log.Warn().Err(err).Str("dev", eSPIDev).Msg("SPI init failed; falling back to sim")
			drv = led.NewSim(os.Stdout)
			eDriver = "sim"
		} else {
			drv = d
		}
	case "sim":
		drv = led.NewSim(os.Stdout)
	default:
		log.Warn().Str("driver", eDriver).Msg("unknown driver; using sim")
		drv = led.NewSim(os.Stdout)
		eDriver = "sim"
	}

	// ---- Engine ----
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	reg := effects.NewRegistry(rng, time.Now)
	eng, err := render.NewEngine(eModules*8, panelHeight, reg, drv, runtime, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("engine init failed")
	}

	requests := make(chan render.Request, 16)

	// ---- Web bridge ----
	if eAddr != "" {
		hub := ws.NewHub(requests, log.Logger)
		eng.OnCommit(hub.BroadcastFrame)
		mux := http.NewServeMux()
		hub.Routes(mux)
		srv := &http.Server{
			Addr:         eAddr,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		}
		go func() {
			log.Info().Str("addr", eAddr).Msg("web bridge listening")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatal().Err(err).Msg("web bridge crashed")
			}
		}()
	}

	// ---- Input sources ----
	if eSerialDev != "" {
		port, err := serialin.OpenPort(eSerialDev, eSerialBaud)
		if err != nil {
			log.Warn().Err(err).Str("dev", eSerialDev).Msg("serial open failed; continuing without it")
		} else {
			defer port.Close()
			go port.Feed(requests, log.Logger)
			log.Info().Str("dev", eSerialDev).Int("baud", eSerialBaud).Msg("serial input attached")
		}
	}
	go serialin.FeedReader(os.Stdin, os.Stdout, requests, log.Logger)

	// ---- Run ----
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		eng.Run(ctx, requests)
		close(done)
	}()

	// power-on self test, same as the firmware
	requests <- render.Request{Line: "test"}

	log.Info().
		Str("driver", eDriver).
		Int("width", eModules*8).
		Int("height", panelHeight).
		Msg("picopixels ready; type 'help' for commands")

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	s := <-ch
	log.Info().Str("signal", s.String()).Msg("shutting down")

	cancel()
	<-done
	eng.Blank()
	if err := drv.Close(); err != nil {
		log.Warn().Err(err).Msg("driver close failed")
	}
}
