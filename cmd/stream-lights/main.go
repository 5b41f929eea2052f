package main

import (
	"context"
	"fmt"
	"github.com/mcintyrehh/stream-lights/internal/lights"
	"github.com/mcintyrehh/stream-lights/internal/neopixel"
	"github.com/mcintyrehh/stream-lights/internal/tautulli"
	log "github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
	"os"
	"os/signal"
	"syscall"
)

var (
	app         = kingpin.New("stream-lights", "Show the number of active Plex streams on an LED strip.")
	clearOnExit = app.Flag("clear", "Clear the display on exit.").Short('c').Bool()
)

type colorFormatter struct {
	log.TextFormatter
}

func (f *colorFormatter) Format(entry *log.Entry) ([]byte, error) {
	var levelColor int
	switch entry.Level {
	case log.DebugLevel, log.TraceLevel:
		levelColor = 90 // dark grey
	case log.WarnLevel:
		levelColor = 33 // yellow
	case log.ErrorLevel, log.FatalLevel, log.PanicLevel:
		levelColor = 91 // bright red
	default:
		levelColor = 39 // default
	}
	return []byte(fmt.Sprintf("\x1b[%dm%s\x1b[0m\n", levelColor, entry.Message)), nil
}

func main() {
	log.SetFormatter(&colorFormatter{})

	if _, err := app.Parse(os.Args[1:]); err != nil {
		fmt.Printf("%v: Try --help\n", err.Error())
		os.Exit(1)
	}

	conf, err := readConfig()
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(conf.Level())

	if err := startLights(conf, *clearOnExit); err != nil {
		log.Fatal(err)
	}
}

func startLights(conf *Config, clearStrip bool) error {
	log.Info("stream-lights init")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalChan := make(chan os.Signal, 2)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signalChan)
	go func() {
		<-signalChan
		log.Info("Interrupted. Stopping after the current frame, interrupt again to abort.")
		cancel()

		// a second interrupt leaves the strip as it is, mid frame
		<-signalChan
		log.Warn("Aborting.")
		os.Exit(1)
	}()

	client, err := tautulli.NewClient(conf.Tautulli.Url, conf.Tautulli.ApiKey)
	if err != nil {
		return err
	}

	animation, err := conf.AnimationConfig()
	if err != nil {
		return err
	}

	strip, err := neopixel.Open(conf.StripConfig())
	if err != nil {
		return err
	}
	defer strip.Close()

	fmt.Println("Press Ctrl-C to quit.")
	if !clearStrip {
		fmt.Println(`Use "-c" argument to clear LEDs on exit`)
	}

	runner := lights.Runner{
		Poller:    tautulli.NewPoller(client),
		Display:   lights.NewAnimator(strip, animation),
		SkipDelay: conf.SkipDelayDuration(),
	}
	if err := runner.Run(ctx, clearStrip); err != nil {
		return err
	}

	log.Info("Done...")
	return nil
}
