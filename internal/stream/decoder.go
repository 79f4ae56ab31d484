package stream

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
)

const maxLineBytes = 8 * 1024 * 1024

// Decoder reads events from a server-sent event transcript.
//
// "data:" lines accumulate until a blank line dispatches them as one event.
// Comment lines (":") and the event, id and retry fields are ignored. A line
// starting with "{" outside a data block is taken as a complete event, so
// newline-delimited JSON transcripts decode too. Events that are not valid
// JSON or fail envelope validation are skipped and counted.
type Decoder struct {
	scanner *bufio.Scanner
	data    []string
	skipped int
	logger  *slog.Logger
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader, logger *slog.Logger) *Decoder {
	if logger == nil {
		logger = slog.Default()
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)
	return &Decoder{scanner: sc, logger: logger}
}

// Skipped returns how many malformed events were dropped so far.
func (d *Decoder) Skipped() int { return d.skipped }

// Next returns the next valid event, or io.EOF at the end of input.
func (d *Decoder) Next() (Event, error) {
	for d.scanner.Scan() {
		line := strings.TrimSuffix(d.scanner.Text(), "\r")

		switch {
		case line == "":
			if ev, ok := d.dispatch(); ok {
				return ev, nil
			}
		case strings.HasPrefix(line, ":"):
		case strings.HasPrefix(line, "data:"):
			value := strings.TrimPrefix(line, "data:")
			d.data = append(d.data, strings.TrimPrefix(value, " "))
		case strings.HasPrefix(line, "{") && len(d.data) == 0:
			if ev, ok := d.parse([]byte(line)); ok {
				return ev, nil
			}
		}
	}

	if err := d.scanner.Err(); err != nil {
		return Event{}, err
	}
	if ev, ok := d.dispatch(); ok {
		return ev, nil
	}
	return Event{}, io.EOF
}

func (d *Decoder) dispatch() (Event, bool) {
	if len(d.data) == 0 {
		return Event{}, false
	}
	payload := strings.Join(d.data, "\n")
	d.data = d.data[:0]
	return d.parse([]byte(payload))
}

func (d *Decoder) parse(data []byte) (Event, bool) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Event{}, false
	}

	ev, err := ParseEvent(data)
	if err != nil {
		d.skipped++
		var invalid *InvalidEventError
		if errors.As(err, &invalid) {
			d.logger.Warn("skipping invalid stream event", slog.Any("errors", invalid.Result.Errors))
		} else {
			d.logger.Warn("skipping malformed stream event", slog.String("error", err.Error()))
		}
		return Event{}, false
	}
	return ev, true
}
