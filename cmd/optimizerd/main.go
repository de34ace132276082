package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/morpho-org/morpho-optimizers-sub014/broker"
	"github.com/morpho-org/morpho-optimizers-sub014/config"
	"github.com/morpho-org/morpho-optimizers-sub014/events"
	"github.com/morpho-org/morpho-optimizers-sub014/execution"
	"github.com/morpho-org/morpho-optimizers-sub014/logging"
	"github.com/morpho-org/morpho-optimizers-sub014/metrics"
	"github.com/morpho-org/morpho-optimizers-sub014/pool"
	"github.com/morpho-org/morpho-optimizers-sub014/types"
	"github.com/morpho-org/morpho-optimizers-sub014/types/num"
)

type options struct {
	RootPath string   `short:"r" long:"root-path" description:"directory holding config.toml, defaults apply when missing"`
	Markets  []string `short:"m" long:"market" description:"market to create at startup, repeatable" default:"DAI"`

	ReserveFactor  uint64 `long:"reserve-factor" description:"reserve factor in basis points" default:"1000"`
	P2PIndexCursor uint64 `long:"p2p-index-cursor" description:"p2p index cursor in basis points" default:"5000"`
}

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

// evtLogger dumps every audit event to the application log, the daemon's
// stand-in for a real downstream consumer.
type evtLogger struct {
	log *logging.Logger
}

func (l *evtLogger) Push(evts ...events.Event) {
	for _, e := range evts {
		l.log.Debug("event",
			logging.Stringer("type", e.Type()),
			logging.String("market-id", e.MarketID()),
			logging.String("trace-id", e.TraceID()),
		)
	}
}

func (l *evtLogger) Types() []events.Type {
	return []events.Type{events.All}
}

func run() error {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		return err
	}

	log := logging.NewLoggerFromEnv("dev")
	defer log.AtExit()

	cfg := config.NewDefaultConfig()
	if opts.RootPath != "" {
		loaded, err := config.Read(opts.RootPath)
		if err != nil {
			log.Error("unable to read configuration", logging.Error(err))
			return err
		}
		cfg = *loaded
	}

	metrics.Start(cfg.Metrics)

	brk := broker.New(log, cfg.Broker)
	brk.Subscribe(&evtLogger{log: log})

	sim := pool.NewSimulator(log, cfg.Pool)
	eng := execution.New(log, cfg.Execution, sim, brk)

	params := types.MarketParams{
		ReserveFactor:  opts.ReserveFactor,
		P2PIndexCursor: opts.P2PIndexCursor,
	}
	assetParams := pool.AssetParams{
		SupplyGrowthPerStep: num.MustUintFromString(cfg.Pool.SupplyGrowthPerStep, 10),
		BorrowGrowthPerStep: num.MustUintFromString(cfg.Pool.BorrowGrowthPerStep, 10),
	}
	for _, mkt := range opts.Markets {
		sim.RegisterAsset(mkt, assetParams)
		if err := eng.CreateMarket(mkt, params); err != nil {
			log.Error("unable to create market",
				logging.String("market-id", mkt),
				logging.Error(err),
			)
			return err
		}
	}

	log.Info("optimizer daemon started",
		logging.Int("markets", len(opts.Markets)),
		logging.Duration("step-interval", cfg.Pool.StepInterval.Get()),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go accrueLoop(ctx, log, cfg.Pool.StepInterval.Get(), sim, eng, opts.Markets)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down")
	return nil
}

// accrueLoop drives the simulated pool and the index engine on a fixed
// interval until the context is cancelled.
func accrueLoop(ctx context.Context, log *logging.Logger, interval time.Duration, sim *pool.Simulator, eng *execution.Engine, mkts []string) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, mkt := range mkts {
				if err := sim.Step(mkt); err != nil {
					log.Error("pool accrual failed", logging.String("market-id", mkt), logging.Error(err))
					continue
				}
				if err := eng.UpdateMarketIndexes(ctx, mkt); err != nil {
					log.Error("index accrual failed", logging.String("market-id", mkt), logging.Error(err))
				}
			}
		}
	}
}
