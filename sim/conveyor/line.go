package conveyor

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	sim "github.com/factory-sim/factory-sim/sim"
)

// Default think-time jitter ranges. A producer takes defaultProduceMin to
// defaultProduceMax to make one item; a consumer takes defaultConsumeMin to
// defaultConsumeMax to use one up.
const (
	defaultProduceMin = 100 * time.Millisecond
	defaultProduceMax = 500 * time.Millisecond
	defaultConsumeMin = 200 * time.Millisecond
	defaultConsumeMax = 800 * time.Millisecond
)

// LineConfig holds everything needed to run the goroutine line.
type LineConfig struct {
	// Capacity is the buffer's slot count. Must be positive.
	Capacity int

	// Producers and Consumers are the goroutine counts. Both must be
	// positive: a line without one side deadlocks against the duration.
	Producers int
	Consumers int

	// Duration is how long the line runs before the stop signal fires.
	Duration time.Duration

	// Seed feeds each worker's think-time jitter stream.
	Seed int64

	// ProduceDelayMin/Max and ConsumeDelayMin/Max override the think-time
	// jitter ranges. Zero values fall back to the defaults above; tests
	// shrink them to keep runs fast.
	ProduceDelayMin, ProduceDelayMax time.Duration
	ConsumeDelayMin, ConsumeDelayMax time.Duration

	// Heartbeat, when set, is called once per worker loop pass. The line
	// command points it at the probe server's liveness state.
	Heartbeat func()
}

// Validate checks the line configuration before any goroutine starts.
func (c LineConfig) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("line capacity must be positive, got %d", c.Capacity)
	}
	if c.Producers <= 0 {
		return fmt.Errorf("producer count must be positive, got %d", c.Producers)
	}
	if c.Consumers <= 0 {
		return fmt.Errorf("consumer count must be positive, got %d", c.Consumers)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("line duration must be positive, got %v", c.Duration)
	}
	return nil
}

// LineResult is the end-of-run tally. Every produced item was either
// consumed or is still buffered: Produced == Consumed + Remaining.
type LineResult struct {
	Produced  int `json:"produced"`
	Consumed  int `json:"consumed"`
	Remaining int `json:"remaining"`
}

// LineSnapshot is the live state the probe server broadcasts while the
// line runs.
type LineSnapshot struct {
	Capacity int `json:"capacity"`
	Queued   int `json:"queued"`
	Produced int `json:"produced"`
	Consumed int `json:"consumed"`
}

// Line is a running set of producer and consumer goroutines around one
// Buffer. Tallies are atomic so Snapshot can read them mid-run.
type Line struct {
	cfg    LineConfig
	buffer *Buffer

	serial   atomic.Int64
	produced atomic.Int64
	consumed atomic.Int64

	wg sync.WaitGroup
}

// StartLine validates cfg and spawns its producers and consumers. The
// goroutines run until ctx is cancelled; Wait joins them. Each worker draws
// jitter from its own seeded stream, requested here before any goroutine
// starts because PartitionedRNG itself is not safe for concurrent use.
func StartLine(ctx context.Context, cfg LineConfig) (*Line, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid line config: %w", err)
	}

	buffer, err := NewBuffer(cfg.Capacity)
	if err != nil {
		return nil, err
	}
	line := &Line{cfg: cfg, buffer: buffer}

	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Seed))
	for i := 0; i < cfg.Producers; i++ {
		stream := rng.ForSubsystem(sim.SubsystemLineProducer(i))
		line.wg.Add(1)
		go line.produce(ctx, i, stream)
	}
	for i := 0; i < cfg.Consumers; i++ {
		stream := rng.ForSubsystem(sim.SubsystemLineConsumer(i))
		line.wg.Add(1)
		go line.consume(ctx, i, stream)
	}
	return line, nil
}

// Wait joins all workers and returns the final tally.
func (l *Line) Wait() LineResult {
	l.wg.Wait()
	return LineResult{
		Produced:  int(l.produced.Load()),
		Consumed:  int(l.consumed.Load()),
		Remaining: l.buffer.Len(),
	}
}

// Snapshot reads the live tallies. Safe to call while the line runs.
func (l *Line) Snapshot() LineSnapshot {
	return LineSnapshot{
		Capacity: l.buffer.Cap(),
		Queued:   l.buffer.Len(),
		Produced: int(l.produced.Load()),
		Consumed: int(l.consumed.Load()),
	}
}

// RunLine runs a line for cfg.Duration and returns the tally.
func RunLine(ctx context.Context, cfg LineConfig) (LineResult, error) {
	runCtx, cancel := context.WithTimeout(ctx, cfg.Duration)
	defer cancel()

	line, err := StartLine(runCtx, cfg)
	if err != nil {
		return LineResult{}, err
	}
	result := line.Wait()
	logrus.Infof("line finished: produced=%d consumed=%d remaining=%d",
		result.Produced, result.Consumed, result.Remaining)
	return result, nil
}

func (l *Line) produce(ctx context.Context, id int, rng *rand.Rand) {
	defer l.wg.Done()
	label := strconv.Itoa(id)
	min, max := l.cfg.ProduceDelayMin, l.cfg.ProduceDelayMax
	if max == 0 {
		min, max = defaultProduceMin, defaultProduceMax
	}
	for {
		if !sleepJitter(ctx, rng, min, max) {
			return
		}
		item := int(l.serial.Add(1))
		if !l.buffer.Put(ctx, item) {
			return
		}
		l.produced.Add(1)
		itemsProducedTotal.WithLabelValues(label).Inc()
		bufferDepth.Set(float64(l.buffer.Len()))
		logrus.Debugf("producer %d placed item %d (buffered: %d)", id, item, l.buffer.Len())
		l.heartbeat()
	}
}

func (l *Line) consume(ctx context.Context, id int, rng *rand.Rand) {
	defer l.wg.Done()
	label := strconv.Itoa(id)
	min, max := l.cfg.ConsumeDelayMin, l.cfg.ConsumeDelayMax
	if max == 0 {
		min, max = defaultConsumeMin, defaultConsumeMax
	}
	for {
		item, ok := l.buffer.Take(ctx)
		if !ok {
			return
		}
		l.consumed.Add(1)
		itemsConsumedTotal.WithLabelValues(label).Inc()
		bufferDepth.Set(float64(l.buffer.Len()))
		logrus.Debugf("consumer %d took item %d (buffered: %d)", id, item, l.buffer.Len())
		l.heartbeat()
		if !sleepJitter(ctx, rng, min, max) {
			return
		}
	}
}

func (l *Line) heartbeat() {
	if l.cfg.Heartbeat != nil {
		l.cfg.Heartbeat()
	}
}

// sleepJitter sleeps a uniform duration in [min, max], waking early when
// ctx is cancelled. Reports whether the full sleep completed.
func sleepJitter(ctx context.Context, rng *rand.Rand, min, max time.Duration) bool {
	d := min
	if max > min {
		d += time.Duration(rng.Int63n(int64(max - min + 1)))
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
