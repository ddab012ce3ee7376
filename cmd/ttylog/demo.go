package main

import (
	"errors"
	"fmt"
	stdlog "log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/philipp01105/ttylog/compat"
	"github.com/philipp01105/ttylog/logger"
)

func newDemoCommand(options func() logger.Options) *cobra.Command {
	var (
		workers int
		events  int
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Emit sample events from several goroutines",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			opts := options()
			opts.Name = "demo"
			return runDemo(opts, workers, events)
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 3, "number of goroutines emitting events")
	cmd.Flags().IntVar(&events, "events", 4, "events per goroutine")
	return cmd
}

func runDemo(opts logger.Options, workers, events int) (err error) {
	log, err := logger.CreateLogger(opts)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, logger.Shutdown())
	}()

	log.Infof("starting %d workers", workers)

	var g errgroup.Group
	for w := range workers {
		wl := logger.GetLogger(fmt.Sprintf("worker.%d", w)).With(logger.Int("worker", w))
		g.Go(func() error {
			for i := range events {
				switch i % 4 {
				case 0:
					wl.Debug("tick", logger.Int("event", i))
				case 1:
					wl.Info("processed batch", logger.Duration("took", time.Duration(i)*time.Millisecond))
				case 2:
					wl.Warn("queue is filling up", logger.Int("depth", 100*i))
				default:
					wl.Trace("idle")
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if _, statErr := os.Stat("/does/not/exist"); statErr != nil {
		log.Exception(statErr, "stat failed")
	}

	// routed through the root channel while CaptureWarnings is set
	stdlog.Printf("message from the standard library logger")

	zl := compat.NewZapLogger(logger.Root(), opts.Level).Named("zap")
	zl.Info("zap entries share the output", zap.String("via", "compat"))

	log.Critical("demo finished")
	return nil
}
