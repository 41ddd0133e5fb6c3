package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"
	"github.com/juju/loggo"

	"github.com/denismitr/autocleaner"
)

var logger = loggo.GetLogger("autocleaner.demo")

type options struct {
	sessions int
	maxTTL   time.Duration
	fast     time.Duration
	slow     time.Duration
	busy     int
	run      time.Duration
	logging  string
}

func parseOptions(args []string) (options, error) {
	var opts options

	fs := gnuflag.NewFlagSet("autocleaner", gnuflag.ContinueOnError)
	fs.IntVar(&opts.sessions, "sessions", 1000, "number of sessions to create")
	fs.DurationVar(&opts.maxTTL, "max-ttl", 2*time.Second, "upper bound of a random session ttl")
	fs.DurationVar(&opts.fast, "fast", 100*time.Millisecond, "sweep interval while the table is busy")
	fs.DurationVar(&opts.slow, "slow", 500*time.Millisecond, "sweep interval once the table is quiet")
	fs.IntVar(&opts.busy, "busy", 100, "session count above which the table is considered busy")
	fs.DurationVar(&opts.run, "run", 3*time.Second, "how long to run the demo")
	fs.StringVar(&opts.logging, "logging-config", "<root>=INFO", "loggo configuration")

	if err := fs.Parse(true, args); err != nil {
		return opts, err
	}

	if opts.sessions < 0 {
		return opts, errors.NotValidf("sessions %d", opts.sessions)
	}

	if opts.maxTTL <= 0 {
		return opts, errors.NotValidf("max-ttl %s", opts.maxTTL)
	}

	return opts, nil
}

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := loggo.ConfigureLoggers(opts.logging); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// Cancelling ctx closes the cleaner, so SIGINT/SIGTERM stop the sweeps.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	now := time.Now()
	table := make(autocleaner.SortedMap[string, autocleaner.Item[string]], opts.sessions)
	for i := 0; i < opts.sessions; i++ {
		id := fmt.Sprintf("session-%06d", i)
		user := fmt.Sprintf("user-%d", i%50)
		table[id] = autocleaner.NewItem(user, rand.N(opts.maxTTL)+1, now)
	}

	var total int
	cfg := autocleaner.NewDefaultConfig().
		WithOnCleaned(func(removed int) {
			total += removed
			logger.Infof("swept %s expired sessions (%s so far)",
				humanize.Comma(int64(removed)), humanize.Comma(int64(total)))
		})

	expired := autocleaner.ExpiredEntry[string, string](clock.WallClock)

	cleaner, err := autocleaner.New(ctx, table, expired, cfg)
	if err != nil {
		logger.Errorf("creating cleaner: %v", err)
		os.Exit(1)
	}
	defer func() {
		if err := cleaner.Close(); err != nil {
			logger.Warningf("closing cleaner: %v", err)
		}
	}()

	if err := cleaner.Start(autocleaner.Threshold(opts.busy, opts.fast, opts.slow)); err != nil {
		logger.Errorf("starting cleaner: %v", err)
		os.Exit(1)
	}

	logger.Infof("tracking %s sessions, sweeping every %s while above %d",
		humanize.Comma(int64(opts.sessions)), opts.fast, opts.busy)

	wait := time.NewTimer(opts.run)
	defer wait.Stop()

	select {
	case <-ctx.Done():
		logger.Infof("received shutdown signal")
	case <-wait.C:
	}

	remaining := cleaner.Collection()
	fmt.Printf("%s sessions remaining, cleaner running: %v\n",
		humanize.Comma(int64(remaining.Len())), cleaner.Running())
	for e := range remaining.All() {
		at, _ := e.Value.ExpiresAt()
		fmt.Printf("  %s %s expires %s\n", e.Key, e.Value.Value, humanize.Time(at))
	}
}
