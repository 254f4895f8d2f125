// Command fop1demo drives a cop1.Engine through the happy-path scenario:
// initialise without CLCW, transmit a handful of AD frames against an
// always-accepting lower layer, and print the engine's transfer/state
// notifications as its simulated peer acknowledges them.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/marrasen/go-fop1/clog"
	"github.com/marrasen/go-fop1/cop1"
)

var (
	frameCount = pflag.IntP("frames", "n", 5, "Number of AD frames to transmit.")
	window     = pflag.IntP("window", "w", 3, "FOP sliding window (K).")
	t1         = pflag.DurationP("t1", "t", 2*time.Second, "T1 initial timeout.")
	verbose    = pflag.BoolP("verbose", "v", false, "Enable debug logging on the engine.")
	help       = pflag.Bool("help", false, "Display help text.")
)

type printingObserver struct{}

func (printingObserver) TransferNotification(status cop1.NotificationStatus, f cop1.Frame) {
	fmt.Printf("transfer %-16s %v\n", status, f)
}

func (printingObserver) DirectiveNotification(status cop1.NotificationStatus, tag cop1.DirectiveTag, d cop1.Directive) {
	fmt.Printf("directive %-16s %v tag=%s\n", status, d, tag)
}

func (printingObserver) Alert(code cop1.AlertCode) {
	fmt.Printf("ALERT %s\n", code)
}

func (printingObserver) StateChanged(previous, current cop1.State) {
	fmt.Printf("state %s -> %s\n", previous, current)
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - FOP-1 sending-side engine demo\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()
	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	cfg := cop1.DefaultConfig()
	cfg.FOPSlidingWindow = *window
	cfg.T1Initial = *t1

	opt := cop1.NewOption().SetConfig(cfg).SetOutput(func(f cop1.Frame) bool {
		fmt.Printf("lower layer TX %v\n", f)
		return true
	})
	if *verbose {
		opt.SetLogLevel(clog.LevelDebug)
	}

	engine := cop1.NewEngine(opt)
	engine.RegisterObserver(printingObserver{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := engine.Start(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "start:", err)
		os.Exit(1)
	}
	defer engine.Dispose()

	if _, err := engine.Directive(cop1.DirInitADWithoutCLCW, 0); err != nil {
		fmt.Fprintln(os.Stderr, "init:", err)
		os.Exit(1)
	}

	for i := 0; i < *frameCount; i++ {
		payload := []byte(fmt.Sprintf("frame-%d", i))
		if err := engine.TransmitAD(payload); err != nil {
			fmt.Fprintln(os.Stderr, "transmit:", err)
			os.Exit(1)
		}
	}

	// Simulate the receiving end acknowledging the frames one at a time:
	// each CLCW advances N(R) by one.
	time.Sleep(50 * time.Millisecond)
	for nr := 1; nr <= *frameCount; nr++ {
		_ = engine.ReportCLCW(cop1.CLCW{NR: uint8(nr)})
		time.Sleep(20 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
}
