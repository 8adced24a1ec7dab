package max6921

import (
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
)

// Default configuration values.
const (
	DefaultSpeed           = 2 * physic.MegaHertz
	DefaultRefreshInterval = 1500 * time.Microsecond
	DefaultLatchPin        = "GPIO13"
)

// latchSettle is the hold time of the latch pulse that commits the
// shift register to the chip's outputs.
const latchSettle = 1 * time.Microsecond

// Config describes the hardware attachment. On Linux the SPI data and
// clock lines belong to the port device, so the port is addressed by
// its spireg name rather than by pin numbers; only the latch line is a
// directly driven GPIO.
type Config struct {
	// Port is the spireg name of the SPI port. Empty selects the first
	// available port.
	Port string

	// Speed is the SPI clock frequency. Must be > 0.
	Speed physic.Frequency

	// Latch is the pin wired to the MAX6921 LOAD input.
	Latch gpio.PinOut

	// RefreshInterval is the dwell time per grid during Refresh. It
	// trades per-grid brightness against visible flicker; one full
	// refresh cycle takes GridCount times this value. Must be > 0.
	RefreshInterval time.Duration
}

// DefaultConfig returns the configuration used when Init is called
// with a nil Config: 2MHz SPI on the first available port, latch on
// GPIO13, 1500µs dwell per grid. The latch pin is resolved through
// gpioreg, so host.Init must have run first.
func DefaultConfig() Config {
	return Config{
		Speed:           DefaultSpeed,
		Latch:           gpioreg.ByName(DefaultLatchPin),
		RefreshInterval: DefaultRefreshInterval,
	}
}

// Dev drives a MAX6921 multiplexing a 9-grid vacuum-fluorescent
// display. The zero value is an uninitialized device; call Init before
// any other operation.
//
// All methods serialize behind one mutex: every transmission occupies
// the single bus and latch line and reads the whole buffer, so no
// finer-grained locking is meaningful. A transmit-and-latch sequence
// for one grid is never interrupted; a partial frame would latch
// garbled segment data.
type Dev struct {
	mu    sync.Mutex
	port  spi.PortCloser
	conn  spi.Conn
	latch gpio.PinOut
	cfg   Config
	buf   [GridCount]Pattern
	tx    [frameBytes]byte
	ready bool
}

func (d *Dev) String() string {
	return fmt.Sprintf("MAX6921 VFD %d grids", GridCount)
}

// Init brings up the device: opens and configures the SPI port, drives
// the latch low, and clears the display buffer. A nil config selects
// DefaultConfig. Calling Init on a device that is already initialized
// is a no-op.
func (d *Dev) Init(config *Config) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ready {
		return nil
	}

	cfg, err := resolveConfig(config)
	if err != nil {
		return err
	}

	port, err := spireg.Open(cfg.Port)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrHardware, err)
	}

	return d.setup(port, cfg)
}

// initPort is Init with the SPI port supplied by the caller instead of
// resolved through spireg. Tests use it to run the driver over a
// recording port.
func (d *Dev) initPort(port spi.PortCloser, config *Config) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ready {
		return nil
	}

	cfg, err := resolveConfig(config)
	if err != nil {
		return err
	}

	return d.setup(port, cfg)
}

func resolveConfig(config *Config) (Config, error) {
	if config == nil {
		cfg := DefaultConfig()
		if cfg.Latch == nil {
			return Config{}, fmt.Errorf("%w: latch pin %s not found", ErrInvalidParam, DefaultLatchPin)
		}
		return cfg, nil
	}
	if config.Speed <= 0 {
		return Config{}, fmt.Errorf("%w: speed must be > 0", ErrInvalidParam)
	}
	if config.RefreshInterval <= 0 {
		return Config{}, fmt.Errorf("%w: refresh interval must be > 0", ErrInvalidParam)
	}
	if config.Latch == nil || config.Latch == gpio.INVALID {
		return Config{}, fmt.Errorf("%w: latch pin is invalid", ErrInvalidParam)
	}
	return *config, nil
}

func (d *Dev) setup(port spi.PortCloser, cfg Config) error {
	c, err := port.Connect(cfg.Speed, spi.Mode0, 8)
	if err != nil {
		_ = port.Close()
		return fmt.Errorf("%w: %v", ErrHardware, err)
	}

	if err := cfg.Latch.Out(gpio.Low); err != nil {
		_ = port.Close()
		return fmt.Errorf("%w: %v", ErrHardware, err)
	}

	d.port = port
	d.conn = c
	d.latch = cfg.Latch
	d.cfg = cfg
	d.buf = [GridCount]Pattern{}
	d.ready = true
	return nil
}

// Initialized reports whether the device is ready for display
// operations.
func (d *Dev) Initialized() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ready
}

// Close blanks the display, releases the SPI port and returns the
// device to the uninitialized state. The buffer is cleared and one
// full refresh cycle runs first so the tube visibly darkens before
// power-down.
func (d *Dev) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.ready {
		return ErrNotInitialized
	}

	d.buf = [GridCount]Pattern{}
	err := d.refresh()

	if cerr := d.port.Close(); err == nil {
		err = cerr
	}

	d.port = nil
	d.conn = nil
	d.latch = nil
	d.ready = false
	return err
}

// Halt blanks the display without releasing the port.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.ready {
		return ErrNotInitialized
	}

	d.buf = [GridCount]Pattern{}
	return d.refresh()
}

// WriteSegments stores a segment pattern for one grid. The change is
// buffered; nothing reaches the hardware until Refresh.
func (d *Dev) WriteSegments(grid int, pattern Pattern) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.ready {
		return ErrNotInitialized
	}
	if grid < 0 || grid >= GridCount {
		return ErrInvalidGrid
	}

	d.buf[grid] = pattern
	return nil
}

// ReadSegments returns the buffered pattern for one grid.
func (d *Dev) ReadSegments(grid int) (Pattern, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.ready {
		return Blank, ErrNotInitialized
	}
	if grid < 0 || grid >= GridCount {
		return Blank, ErrInvalidGrid
	}

	return d.buf[grid], nil
}

// WriteDigit stores the canonical pattern for a decimal digit 0..9.
func (d *Dev) WriteDigit(grid, digit int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.ready {
		return ErrNotInitialized
	}
	if grid < 0 || grid >= GridCount {
		return ErrInvalidGrid
	}
	if digit < 0 || digit > 9 {
		return fmt.Errorf("%w: digit %d", ErrInvalidParam, digit)
	}

	d.buf[grid] = digitPatterns[digit]
	return nil
}

// Clear sets every buffer slot to Blank.
func (d *Dev) Clear() error {
	return d.Fill(Blank)
}

// Fill sets every buffer slot to the given pattern.
func (d *Dev) Fill(pattern Pattern) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.ready {
		return ErrNotInitialized
	}

	for i := range d.buf {
		d.buf[i] = pattern
	}
	return nil
}

// WriteString clears the buffer and maps s onto the grids left to
// right. Digits '0'-'9', '-' and ' ' consume one grid each; '.' does
// not consume a grid but sets the decimal point of the preceding grid.
// Unrecognized bytes are skipped and anything beyond the 9th grid is
// ignored.
func (d *Dev) WriteString(s string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.ready {
		return ErrNotInitialized
	}

	d.buf = [GridCount]Pattern{}

	grid := 0
	for i := 0; i < len(s) && grid < GridCount; i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			d.buf[grid] = digitPatterns[c-'0']
			grid++
		case c == '-':
			d.buf[grid] = Dash
			grid++
		case c == ' ':
			d.buf[grid] = Blank
			grid++
		case c == '.':
			// A decimal point rides on the previous grid.
			if grid > 0 {
				d.buf[grid-1] |= Dot
			}
		}
	}
	return nil
}

// WriteInt displays a decimal integer right-aligned across the grids.
func (d *Dev) WriteInt(v int) error {
	return d.WriteString(fmt.Sprintf("%*d", GridCount, v))
}

// Buffer exposes the display buffer for direct manipulation when the
// buffered write operations are insufficient. Mutations are visible on
// the next Refresh. Returns nil when the device is not initialized.
// The returned pointer is not synchronized with other methods; callers
// mixing it with concurrent use must provide their own exclusion.
func (d *Dev) Buffer() *[GridCount]Pattern {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.ready {
		return nil
	}
	return &d.buf
}

// Refresh transmits the buffer to the display, one grid at a time in
// ascending order. Each grid's frame is shifted out, latched, and held
// for RefreshInterval; only one grid is lit at any instant, so the
// dwell is what produces the persistence-of-vision image. The call
// blocks for about GridCount times RefreshInterval. The first bus or
// pin error aborts the cycle, leaving the display on the last latched
// grid until the next successful refresh.
func (d *Dev) Refresh() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.ready {
		return ErrNotInitialized
	}
	return d.refresh()
}

func (d *Dev) refresh() error {
	for grid := 0; grid < GridCount; grid++ {
		d.tx = encodeFrame(0, gridMask(grid), d.buf[grid])
		if err := d.transmit(); err != nil {
			return err
		}
		time.Sleep(d.cfg.RefreshInterval)
	}
	return nil
}

// SendCommand transmits a frame with the 3 command bits set to code
// and all grid and segment bits zero. What each code means is up to
// the circuit around the chip, not this driver.
func (d *Dev) SendCommand(code uint8) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.ready {
		return ErrNotInitialized
	}
	if code > maxCommand {
		return fmt.Errorf("%w: command code %d", ErrInvalidParam, code)
	}

	d.tx = encodeFrame(code, 0, 0)
	return d.transmit()
}

// transmit shifts the scratch frame out and pulses the latch to commit
// it to the chip's outputs.
func (d *Dev) transmit() error {
	if err := d.conn.Tx(d.tx[:], nil); err != nil {
		return fmt.Errorf("max6921: transmit: %w", err)
	}
	if err := d.latch.Out(gpio.High); err != nil {
		return fmt.Errorf("max6921: latch: %w", err)
	}
	time.Sleep(latchSettle)
	if err := d.latch.Out(gpio.Low); err != nil {
		return fmt.Errorf("max6921: latch: %w", err)
	}
	return nil
}
