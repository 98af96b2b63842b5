package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"sgbdecode/internal/bits"
	"sgbdecode/internal/logging"
	"sgbdecode/internal/metrics"
	"sgbdecode/internal/sgb"
	"sgbdecode/internal/tac"
)

// Application represents the main application
type Application struct {
	config  Config
	logger  *logrus.Logger
	out     io.Writer
	tacs    *tac.Table
	metrics *metrics.Collector

	archive *logging.Rotator
	server  *http.Server
	wg      sync.WaitGroup
}

// BCHResult is the parity of a message and, for a full transmission, whether
// the transmitted parity matches.
type BCHResult struct {
	BCH     string `json:"bch"`
	Matches *bool  `json:"matches,omitempty"`
}

// NewApplication creates a new application instance writing rendered
// results to out
func NewApplication(config Config, out io.Writer) (*Application, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	logger := logrus.New()
	if config.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	tacs := tac.Default()
	if config.TACFile != "" {
		var err error
		if tacs, err = tac.Load(config.TACFile); err != nil {
			return nil, fmt.Errorf("failed to load TAC table: %w", err)
		}
		logger.WithFields(logrus.Fields{
			"file":    config.TACFile,
			"entries": len(tacs.Entries()),
		}).Debug("Loaded TAC table")
	}

	collector, err := metrics.NewCollector(prometheus.NewRegistry())
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	return &Application{
		config:  config,
		logger:  logger,
		out:     out,
		tacs:    tacs,
		metrics: collector,
	}, nil
}

// Logger returns the application logger
func (app *Application) Logger() *logrus.Logger {
	return app.logger
}

// Metrics returns the decode metrics
func (app *Application) Metrics() *metrics.Collector {
	return app.metrics
}

// DecodeDetection decodes a detection message given as hex or bits
func (app *Application) DecodeDetection(input string) (*sgb.Detection, error) {
	start := time.Now()
	d, err := sgb.ParseDetection(strings.TrimSpace(input))
	app.metrics.Observe(metrics.KindDetection, time.Since(start), err)
	return d, err
}

// DecodeBeaconID decodes a 23 hex character beacon identifier
func (app *Application) DecodeBeaconID(input string) (*sgb.BeaconID, error) {
	start := time.Now()
	id, err := sgb.DecodeBeaconIDWith(strings.TrimSpace(input), app.tacs)
	app.metrics.Observe(metrics.KindBeaconID, time.Since(start), err)
	return id, err
}

// BCH computes the parity of a 202-bit message, or verifies a 250-bit
// transmission. Hex input carries 2 leading padding bits.
func (app *Application) BCH(input string) (*BCHResult, error) {
	b, err := parseMessage(strings.TrimSpace(input))
	if err != nil {
		return nil, err
	}

	switch b.Len() {
	case sgb.DetectionBits:
		parity, err := sgb.BCH(b)
		if err != nil {
			return nil, err
		}
		return &BCHResult{BCH: parity.String()}, nil
	case sgb.TransmittedBits:
		r := b.Reader()
		message := r.Read(sgb.DetectionBits)
		transmitted := r.Read(sgb.BCHBits)
		if err := r.Err(); err != nil {
			return nil, err
		}
		parity, err := sgb.BCH(message)
		if err != nil {
			return nil, err
		}
		ok := parity.Equal(transmitted)
		return &BCHResult{BCH: parity.String(), Matches: &ok}, nil
	default:
		return nil, fmt.Errorf("bch: %d bits, want %d or %d: %w",
			b.Len(), sgb.DetectionBits, sgb.TransmittedBits, bits.ErrInvalidLength)
	}
}

func parseMessage(s string) (bits.Bits, error) {
	if sgb.IsBitString(s) && (len(s) == sgb.DetectionBits || len(s) == sgb.TransmittedBits) {
		return bits.Parse(s)
	}
	b, err := bits.ParseHex(s)
	if err != nil {
		return bits.Bits{}, err
	}
	if b.Len() < 2 {
		return bits.Bits{}, fmt.Errorf("%d hex digits: %w", len(s), bits.ErrInvalidLength)
	}
	return b.Slice(2, b.Len())
}

// Print renders v to the application output in the configured format
func (app *Application) Print(v any) error {
	return Render(app.out, v, app.config.Format, app.config.Pretty)
}

// startMetricsServer serves the metrics endpoint until Close
func (app *Application) startMetricsServer() error {
	ln, err := net.Listen("tcp", app.config.MetricsAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", app.config.MetricsAddr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", app.metrics.Handler())
	app.server = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		if err := app.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.WithError(err).Error("Metrics server failed")
		}
	}()

	app.logger.WithField("addr", ln.Addr().String()).Info("Serving metrics")
	return nil
}

// openArchive starts the daily archive and drops expired files
func (app *Application) openArchive() error {
	var err error
	app.archive, err = logging.NewRotator(app.config.LogDir, app.config.LogRotateUTC, app.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize archive: %w", err)
	}
	if app.config.LogMaxDays > 0 {
		if _, err := app.archive.Cleanup(app.config.LogMaxDays); err != nil {
			app.logger.WithError(err).Warn("Failed to clean up archive")
		}
	}
	return nil
}

// Close stops the metrics server and closes the archive
func (app *Application) Close() error {
	if app.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.server.Shutdown(ctx); err != nil {
			app.logger.WithError(err).Warn("Metrics server shutdown failed")
		}
		app.server = nil
	}
	app.wg.Wait()

	if app.archive != nil {
		err := app.archive.Close()
		app.archive = nil
		return err
	}
	return nil
}
