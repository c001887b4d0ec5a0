package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arjunsk/cometbench/cmd/benchmark/lotsaa"
	payload "github.com/arjunsk/cometbench/pkg/a_payload"
	datagen "github.com/arjunsk/cometbench/pkg/b_datagen"
	sink "github.com/arjunsk/cometbench/pkg/c_sink"
	workload "github.com/arjunsk/cometbench/pkg/d_workload"
	"github.com/arjunsk/cometbench/pkg/y/config"
	"github.com/arjunsk/cometbench/pkg/y/logging"
)

var log = logging.New("[benchmark] ")

type Options struct {
	configPath string
	duration   time.Duration
	verbose    bool
}

func main() {
	options := &Options{}
	checkUsage(options)
	logging.SetVerbose(log, options.verbose)

	props, err := config.LoadFile(options.configPath)
	if err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	cfg, err := workload.ConfigFromProps(props)
	if err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	// 1. Fill into the sink
	dst := sink.New(sink.MBtree, cfg.TTL)
	res, err := workload.Run(ctx, cfg, dst, log)
	if err != nil {
		log.Error("%v", err)
		dst.Close()
		os.Exit(1)
	}
	fmt.Printf("%s sink_len=%d sink_bytes=%d\n", res, dst.Len(), dst.Bytes())
	dst.Close()

	// 2. Fill-only throughput
	if options.duration > 0 {
		if err := FillThroughput(cfg, options.duration); err != nil {
			log.Error("%v", err)
			os.Exit(1)
		}
	}
}

func checkUsage(options *Options) {
	var printInfo bool
	flag.BoolVar(&printInfo, "h", false, "help info?")

	flag.StringVar(&options.configPath, "config", "", "workload config (.yaml, .yml or .properties)")
	flag.DurationVar(&options.duration, "duration", 0, "also run a fill-only pass for this long")
	flag.BoolVar(&options.verbose, "v", false, "debug logging")

	flag.Parse()

	if printInfo || options.configPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: ./benchmark -config bench.yaml [options]\n")
		fmt.Fprintf(os.Stderr, "Available options:\n")
		flag.PrintDefaults()
		os.Exit(0)
	}
}

// FillThroughput measures raw generation speed, one generator and one
// buffer per thread.
func FillThroughput(cfg workload.Config, duration time.Duration) error {
	gens := make([]datagen.DataGenerator, cfg.Threads)
	bufs := make([][]byte, cfg.Threads)
	for i := range gens {
		gen, err := payload.Load(cfg.Props, cfg.GeneratorKey)
		if err != nil {
			return err
		}
		gens[i] = gen
		bufs[i] = make([]byte, cfg.ValueSize)
	}

	lotsaa.Output = os.Stdout
	fmt.Print("fill-only\t")
	lotsaa.Ops(duration, cfg.Threads, cfg.Seed, func(threadRand *rand.Rand, threadIdx int) int {
		return len(gens[threadIdx].Fill(threadRand, bufs[threadIdx]))
	})
	return nil
}
