package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/fishtank/config"
)

// FeedEvent is one feed request as written to feeds.csv.
type FeedEvent struct {
	Tick     uint64  `csv:"tick"`
	X        float64 `csv:"x"`
	Y        float64 `csv:"y"`
	Accepted bool    `csv:"accepted"`
	Reason   string  `csv:"reason"`
}

// NewFeedEvent describes a feed request and the scene's answer to it.
func NewFeedEvent(tick uint64, x, y float64, err error) FeedEvent {
	ev := FeedEvent{Tick: tick, X: x, Y: y, Accepted: err == nil}
	if err != nil {
		ev.Reason = err.Error()
	}
	return ev
}

// csvFile is an output file that writes its header row once.
type csvFile struct {
	f             *os.File
	headerWritten bool
}

func createCSV(dir, name string) (*csvFile, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvFile{f: f}, nil
}

func (c *csvFile) write(records any) error {
	if !c.headerWritten {
		if err := gocsv.Marshal(records, c.f); err != nil {
			return err
		}
		c.headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, c.f)
}

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir       string
	telemetry *csvFile
	perf      *csvFile
	feeds     *csvFile
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	var err error
	if om.telemetry, err = createCSV(dir, "telemetry.csv"); err != nil {
		return nil, err
	}
	if om.perf, err = createCSV(dir, "perf.csv"); err != nil {
		om.Close()
		return nil, err
	}
	if om.feeds, err = createCSV(dir, "feeds.csv"); err != nil {
		om.Close()
		return nil, err
	}
	return om, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry writes a window stats record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	if err := om.telemetry.write([]WindowStats{stats}); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd uint64) error {
	if om == nil {
		return nil
	}
	if err := om.perf.write([]PerfStatsCSV{stats.ToCSV(windowEnd)}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteFeed appends a feed request to feeds.csv.
func (om *OutputManager) WriteFeed(ev FeedEvent) error {
	if om == nil {
		return nil
	}
	if err := om.feeds.write([]FeedEvent{ev}); err != nil {
		return fmt.Errorf("writing feed: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var errs []error
	for _, c := range []*csvFile{om.telemetry, om.perf, om.feeds} {
		if c != nil {
			errs = append(errs, c.f.Close())
		}
	}
	return errors.Join(errs...)
}
