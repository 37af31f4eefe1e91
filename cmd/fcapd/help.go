package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	flag "github.com/spf13/pflag"

	"github.com/lanikai/fcap/internal/transport"
)

var (
	flagListenPort   int
	flagPeerHost     string
	flagPeerPort     int
	flagPollInterval time.Duration
	flagLogLevel     string
	flagHelp         bool
	flagVersion      bool
)

func init() {
	flag.IntVarP(&flagListenPort, "listen-port", "l", transport.DefaultPort, "Local UDP port to bind")
	flag.StringVarP(&flagPeerHost, "peer-host", "p", "127.0.0.1", "Peer address to send requests to")
	flag.IntVarP(&flagPeerPort, "peer-port", "P", transport.DefaultPort, "Peer UDP port")
	flag.DurationVarP(&flagPollInterval, "poll-interval", "i", 10*time.Millisecond, "Dispatch tick interval")
	flag.StringVarP(&flagLogLevel, "log-level", "L", "", "Override LOGLEVEL (trace|debug|info|warn|error)")

	flag.BoolVarP(&flagHelp, "help", "h", false, "Print usage information and exit")
	flag.BoolVarP(&flagVersion, "version", "v", false, "Print version information and exit")
}

const helpString = `Reference dispatcher for the Field Capture Protocol

Usage: fcapd [OPTION]...

Network:
  -l, --listen-port=NUM  Local UDP port to bind (default: 1434)
  -p, --peer-host=HOST   Peer address to send requests to (default: 127.0.0.1)
  -P, --peer-port=NUM    Peer UDP port (default: 1434)
  -i, --poll-interval=DUR Dispatch tick interval (default: 10ms)

Logging:
  -L, --log-level=LEVEL  Override LOGLEVEL (trace|debug|info|warn|error)

Miscellaneous:
  -h, --help             Prints this help message and exits
  -v, --version          Prints version information and exits`

// help prints a banner and the usage string, then the caller exits.
func help() {
	r := color.New(color.FgRed)
	y := color.New(color.FgYellow)
	b := color.New(color.FgCyan)

	//  _____ ____    _    ____  ____
	// |  ___/ ___|  / \  |  _ \|  _ \
	// | |_ | |     / _ \ | |_) | | | |
	// |  _|| |___ / ___ \|  __/| |_| |
	// |_|   \____/_/   \_\_|   |____/

	r.Print(" _____ ")
	y.Print("____ ")
	b.Print("   _    ")
	y.Print("____ ")
	r.Println(" ____  ")

	r.Print("|  ___")
	y.Print("/ ___|")
	b.Print("  / \\  ")
	y.Print("|  _ \\")
	r.Println("|  _ \\ ")

	r.Print("| |_ ")
	y.Print("| |    ")
	b.Print(" / _ \\ ")
	y.Print("| |_) ")
	r.Println("| | | |")

	r.Print("|  _|")
	y.Print("| |___ ")
	b.Print("/ ___ \\")
	y.Print("|  __/")
	r.Println("| |_| |")

	r.Print("|_|   ")
	y.Print("\\____/")
	b.Print("_/   \\_\\")
	y.Print("_|   ")
	r.Println("|____/ ")

	fmt.Println()
	fmt.Println(helpString)
}
