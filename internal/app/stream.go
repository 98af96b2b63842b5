package app

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"sgbdecode/internal/bits"
	"sgbdecode/internal/metrics"
	"sgbdecode/internal/sgb"
)

// maxLineBytes bounds a single input line. Longer lines are skipped and
// counted as failures.
const maxLineBytes = 64 * 1024

// Summary counts the lines seen by Stream
type Summary struct {
	Lines   int
	Decoded int
	Failed  int
}

type inputLine struct {
	number  int
	text    string
	tooLong bool
}

// lineReader splits input into lines of at most maxLineBytes, draining the
// rest of any longer line. Its first read error is sticky.
type lineReader struct {
	br  *bufio.Reader
	err error
}

func newLineReader(in io.Reader) *lineReader {
	return &lineReader{br: bufio.NewReader(in)}
}

// next returns the following line without its newline. A final line with no
// newline is returned before the read error.
func (lr *lineReader) next() (string, bool, error) {
	if lr.err != nil {
		return "", false, lr.err
	}

	var buf []byte
	tooLong := false
	for {
		chunk, err := lr.br.ReadSlice('\n')
		if !tooLong {
			if len(buf)+len(chunk) > maxLineBytes+1 {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err != nil {
			lr.err = err
			if len(buf) == 0 && !tooLong {
				return "", false, err
			}
		}
		return strings.TrimSuffix(string(buf), "\n"), tooLong, nil
	}
}

// Stream decodes newline delimited messages from in until EOF or ctx is
// cancelled. Successes are written as JSON lines to the output and to the
// archive when configured; failures are logged and counted.
func (app *Application) Stream(ctx context.Context, in io.Reader) (Summary, error) {
	var summary Summary

	if app.config.LogDir != "" {
		if err := app.openArchive(); err != nil {
			return summary, err
		}
	}
	if app.config.MetricsAddr != "" {
		if err := app.startMetricsServer(); err != nil {
			return summary, err
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan inputLine, 100)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		lr := newLineReader(in)
		for n := 1; ; n++ {
			text, tooLong, err := lr.next()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					readErr <- err
				}
				return
			}
			select {
			case lines <- inputLine{number: n, text: text, tooLong: tooLong}:
			case <-ctx.Done():
				return
			}
		}
	}()

	app.logger.Info("Decoding stream")
	for {
		select {
		case <-ctx.Done():
			app.logger.Info("Received shutdown signal")
			app.logSummary(summary)
			return summary, nil
		case line, ok := <-lines:
			if !ok {
				app.logSummary(summary)
				select {
				case err := <-readErr:
					if err != nil {
						return summary, fmt.Errorf("failed to read input: %w", err)
					}
				default:
				}
				return summary, nil
			}

			if line.tooLong {
				summary.Lines++
				summary.Failed++
				err := fmt.Errorf("line longer than %d bytes: %w", maxLineBytes, bits.ErrInvalidLength)
				app.metrics.Failures.WithLabelValues(metrics.KindDetection, metrics.Reason(err)).Inc()
				app.logFailure(line.number, err)
				continue
			}

			text := strings.TrimSpace(line.text)
			if text == "" || strings.HasPrefix(text, "#") {
				continue
			}
			summary.Lines++

			if err := app.streamLine(text); err != nil {
				summary.Failed++
				app.logFailure(line.number, err)
				continue
			}
			summary.Decoded++
		}
	}
}

// streamLine decodes one message and writes it as a JSON line
func (app *Application) streamLine(text string) error {
	var v any
	var err error
	if isBeaconID(text) {
		v, err = app.DecodeBeaconID(text)
	} else {
		v, err = app.DecodeDetection(text)
	}
	if err != nil {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	data = append(data, '\n')

	if _, err := app.out.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if app.archive != nil {
		if _, err := app.archive.Write(data); err != nil {
			app.logger.WithError(err).Error("Failed to write to archive")
		}
	}
	return nil
}

func isBeaconID(s string) bool {
	if len(s) != sgb.BeaconIDHexLen {
		return false
	}
	_, err := bits.HexToBinary(s)
	return err == nil
}

func (app *Application) logFailure(number int, err error) {
	app.logger.WithFields(logrus.Fields{
		"line":   number,
		"reason": metrics.Reason(err),
	}).WithError(err).Warn("Failed to decode message")
}

func (app *Application) logSummary(s Summary) {
	app.logger.WithFields(logrus.Fields{
		"lines":   s.Lines,
		"decoded": s.Decoded,
		"failed":  s.Failed,
	}).Info("Stream finished")
}
