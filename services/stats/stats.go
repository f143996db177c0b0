package stats

import (
	"log"
	"sync"

	"github.com/shopspring/decimal"

	"tdbot/models"
	"tdbot/utils"
)

// Collector owns the process-wide usage counters. Counters are incremented
// synchronously during dispatch; Flush runs once per minute and folds the
// current minute into the rolling average. State is never persisted.
type Collector struct {
	mu               sync.Mutex
	totalLifetime    int64
	totalThisMinute  int64
	minutesPassed    int64
	averagePerMinute decimal.Decimal
	minuteCounts     map[string]int64
	lifetimeCounts   map[string]int64
	succeeded        int64
	failed           int64
}

// NewCollector initializes zeroed counters for every registered command name
func NewCollector(commandNames []string) *Collector {
	c := &Collector{
		averagePerMinute: decimal.Zero,
		minuteCounts:     make(map[string]int64, len(commandNames)),
		lifetimeCounts:   make(map[string]int64, len(commandNames)),
	}
	for _, name := range commandNames {
		c.minuteCounts[name] = 0
		c.lifetimeCounts[name] = 0
	}
	return c
}

// Register seeds zeroed counters for the given command names, so commands
// that were never invoked still show up in snapshots. Called once at startup
// with the registry's names; already-counted commands are left untouched.
func (c *Collector) Register(commandNames []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, name := range commandNames {
		if _, ok := c.minuteCounts[name]; !ok {
			c.minuteCounts[name] = 0
		}
		if _, ok := c.lifetimeCounts[name]; !ok {
			c.lifetimeCounts[name] = 0
		}
	}
}

// RecordDispatch counts one confirmed-dispatchable invocation of a command.
// Called before handler execution so a crashing handler still contributes to
// load accounting.
func (c *Collector) RecordDispatch(commandName string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.totalLifetime++
	c.totalThisMinute++
	c.minuteCounts[commandName]++
	c.lifetimeCounts[commandName]++
}

// RecordSuccess counts one handler that completed without error
func (c *Collector) RecordSuccess() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.succeeded++
}

// RecordFailure counts one handler that failed or panicked
func (c *Collector) RecordFailure() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failed++
}

// Flush folds the current minute into the rolling average and resets the
// per-minute counters. Lifetime counters are never reset.
func (c *Collector) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()

	utils.AssertInvariant(c.minutesPassed >= 0, "minutesPassed must not be negative")

	minutes := decimal.NewFromInt(c.minutesPassed)
	total := decimal.NewFromInt(c.totalThisMinute)
	c.averagePerMinute = c.averagePerMinute.Mul(minutes).
		Add(total).
		Div(minutes.Add(decimal.NewFromInt(1)))
	c.minutesPassed++

	c.totalThisMinute = 0
	for name := range c.minuteCounts {
		c.minuteCounts[name] = 0
	}

	log.Printf("📊 Stats flushed - %d minutes tracked, average %s/min",
		c.minutesPassed, c.averagePerMinute.StringFixed(2))
}

// Snapshot returns a copy of the current counters
func (c *Collector) Snapshot() models.UsageStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	minute := make(map[string]int64, len(c.minuteCounts))
	for name, count := range c.minuteCounts {
		minute[name] = count
	}
	lifetime := make(map[string]int64, len(c.lifetimeCounts))
	for name, count := range c.lifetimeCounts {
		lifetime[name] = count
	}

	return models.UsageStats{
		TotalLifetime:    c.totalLifetime,
		TotalThisMinute:  c.totalThisMinute,
		MinutesPassed:    c.minutesPassed,
		AveragePerMinute: c.averagePerMinute,
		CommandsMinute:   minute,
		CommandsLifetime: lifetime,
		Succeeded:        c.succeeded,
		Failed:           c.failed,
	}
}
