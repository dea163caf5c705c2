package printer

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/apperror"
)

// Defaults for network printers
const (
	DefaultPort    = 9100
	DefaultTimeout = 10 * time.Second
)

// Config describes the receipt printer. It is passed explicitly at
// construction; nothing is read from globals.
type Config struct {
	Enabled bool
	Host    string
	Port    int
	Timeout time.Duration
	Width   int
}

// Address returns host:port with defaults applied.
func (c Config) Address() string {
	port := c.Port
	if port <= 0 {
		port = DefaultPort
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(port))
}

// Validate reports a ConfigurationError when printing is enabled without a
// host.
func (c Config) Validate() error {
	if c.Enabled && c.Host == "" {
		return apperror.NewConfigurationError("printer is enabled but POS_PRINTER_HOST is not set")
	}
	return nil
}

// Outcome is the tri-state result of a print attempt.
type Outcome string

const (
	OutcomePrinted  Outcome = "printed"
	OutcomeDisabled Outcome = "disabled"
	OutcomeFailed   Outcome = "failed"
)

// Result is returned by every Send. Send never panics and never returns a
// bare error: failures are described here.
type Result struct {
	OK      bool    `json:"ok"`
	Outcome Outcome `json:"outcome"`
	Message string  `json:"message"`
	Err     error   `json:"-"`
}

// Status describes the sink for health and status endpoints.
type Status struct {
	Enabled    bool   `json:"enabled"`
	Configured bool   `json:"configured"`
	Reachable  bool   `json:"reachable"`
	Address    string `json:"address,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Sink is an output target for formatted pages.
type Sink interface {
	// Send prints the page, bounded by the configured timeout.
	Send(ctx context.Context, page *Page) Result
	// Status reports configuration and reachability.
	Status(ctx context.Context) Status
}

// NewSink builds the sink for cfg. A disabled config yields a sink that
// always reports "disabled". An enabled config without a host returns a
// ConfigurationError together with a sink that reports the same error on
// every attempt, so callers can log at startup and keep serving.
func NewSink(cfg Config) (Sink, error) {
	if !cfg.Enabled {
		return disabledSink{}, nil
	}
	if err := cfg.Validate(); err != nil {
		return misconfiguredSink{err: err}, err
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	var dialer net.Dialer
	return &networkSink{address: cfg.Address(), timeout: cfg.Timeout, dial: dialer.DialContext}, nil
}

// --- Disabled sink (no hardware attached) ---

type disabledSink struct{}

func (disabledSink) Send(context.Context, *Page) Result {
	return Result{OK: false, Outcome: OutcomeDisabled, Message: "disabled"}
}

func (disabledSink) Status(context.Context) Status {
	return Status{Enabled: false, Configured: false}
}

// --- Misconfigured sink (enabled without a host) ---

type misconfiguredSink struct {
	err error
}

func (s misconfiguredSink) Send(context.Context, *Page) Result {
	return Result{OK: false, Outcome: OutcomeFailed, Message: s.err.Error(), Err: s.err}
}

func (s misconfiguredSink) Status(context.Context) Status {
	return Status{Enabled: true, Configured: false, Error: s.err.Error()}
}

// --- Network sink (raw TCP, e.g. 192.168.1.100:9100) ---

type networkSink struct {
	address string
	timeout time.Duration
	dial    func(ctx context.Context, network, address string) (net.Conn, error)
}

func (s *networkSink) Send(ctx context.Context, page *Page) Result {
	if page == nil {
		page = NewPage(DefaultWidth)
	}

	if err := s.write(ctx, page.ESCPOS()); err != nil {
		wrapped := apperror.NewSinkUnavailableError("printer at "+s.address+" is unavailable", err)
		return Result{OK: false, Outcome: OutcomeFailed, Message: wrapped.Error(), Err: wrapped}
	}
	return Result{OK: true, Outcome: OutcomePrinted, Message: "Printed"}
}

func (s *networkSink) write(ctx context.Context, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	conn, err := s.dial(ctx, "tcp", s.address)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	deadline, _ := ctx.Deadline()
	if err := conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("write: set deadline: %w", err)
	}

	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func (s *networkSink) Status(ctx context.Context) Status {
	st := Status{Enabled: true, Configured: true, Address: s.address}

	dialTimeout := s.timeout
	if dialTimeout > 2*time.Second {
		dialTimeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	conn, err := s.dial(ctx, "tcp", s.address)
	if err != nil {
		st.Error = err.Error()
		return st
	}
	conn.Close()
	st.Reachable = true
	return st
}
