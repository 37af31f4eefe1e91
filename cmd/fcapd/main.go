package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/lanikai/fcap"
	"github.com/lanikai/fcap/internal/logging"
	"github.com/lanikai/fcap/internal/middleware"
	"github.com/lanikai/fcap/internal/packet"
	"github.com/lanikai/fcap/internal/transport"
)

var log = logging.DefaultLogger.WithTag("fcapd")

func main() {
	flag.Parse()

	if flagHelp {
		help()
		os.Exit(0)
	}

	if flagVersion {
		printVersion()
		os.Exit(0)
	}

	if flagLogLevel != "" {
		level, err := logging.ParseLevel(flagLogLevel)
		if err != nil {
			log.Fatal(err)
		}
		logging.DefaultLogger.Level = level
	}

	udp, err := transport.NewUDPTransport(flagListenPort, flagPeerHost, flagPeerPort)
	if err != nil {
		log.Fatal(err)
	}
	defer udp.Close()

	app := &fcap.Application{
		Transports: []transport.Transport{udp},
		Middleware: middleware.Chain{},
		OnRequest:  handleRequest,
		OnResponse: handleResponse,
	}
	app.InitInstance()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	log.Info("listening on :%d, peer %s:%d", flagListenPort, flagPeerHost, flagPeerPort)

	ticker := time.NewTicker(flagPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-sig:
			log.Info("shutting down")
			return
		case <-ticker.C:
			if err := app.Poll(); err != nil {
				log.Error("poll: %s", err)
			}
		}
	}
}

// handleRequest is the reference implementation of a user request handler:
// it echoes the message ID of whatever it received back as an
// acknowledgement, demonstrating the Respond path.
func handleRequest(app *fcap.Application, ev *middleware.Event, res *packet.Packet) middleware.Code {
	log.Debug("request:\n%s", ev.Pkt.String())
	return middleware.Respond
}

func handleResponse(app *fcap.Application, ev *middleware.Event) middleware.Code {
	log.Debug("response:\n%s", ev.Pkt.String())
	return middleware.Continue
}
