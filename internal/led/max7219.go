// Package led implements the display drivers behind the engine's commit
// interface: a MAX7219 SPI chain for real hardware and a console
// simulator for headless runs.
package led

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/SeanoNET/PicoPixels/internal/frame"
)

// MAX7219 register addresses.
const (
	regNoop        = 0x00
	regDigit0      = 0x01
	regDecodeMode  = 0x09
	regIntensity   = 0x0A
	regScanLimit   = 0x0B
	regShutdown    = 0x0C
	regDisplayTest = 0x0F
)

// DefaultSPISpeed is a safe clock for MAX7219 chains on jumper wires; the
// chip tops out at 10MHz.
const DefaultSPISpeed = 4 * physic.MegaHertz

// MAX7219 drives a chain of cascaded 8x8 modules over SPI. Module 0 is
// the leftmost 8 columns of the panel. Each register write is repeated
// per module in reverse chain order so the last pair shifted out lands in
// the first chip.
type MAX7219 struct {
	port    spi.PortCloser
	conn    spi.Conn
	modules int
}

// NewMAX7219 opens the named SPI port (empty string picks the first one)
// and initializes the chain.
func NewMAX7219(dev string, modules int, speed physic.Frequency) (*MAX7219, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("led: host init: %w", err)
	}
	port, err := spireg.Open(dev)
	if err != nil {
		return nil, fmt.Errorf("led: open spi %q: %w", dev, err)
	}
	d, err := NewMAX7219FromPort(port, modules, speed)
	if err != nil {
		port.Close()
		return nil, err
	}
	return d, nil
}

// NewMAX7219FromPort wires the driver onto an already-open port. Tests
// use this with a spitest recorder.
func NewMAX7219FromPort(port spi.PortCloser, modules int, speed physic.Frequency) (*MAX7219, error) {
	if modules <= 0 {
		return nil, fmt.Errorf("led: invalid module count %d", modules)
	}
	if speed <= 0 {
		speed = DefaultSPISpeed
	}
	conn, err := port.Connect(speed, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("led: spi connect: %w", err)
	}
	d := &MAX7219{port: port, conn: conn, modules: modules}
	if err := d.init(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *MAX7219) init() error {
	seq := []struct{ reg, val byte }{
		{regDisplayTest, 0x00},
		{regScanLimit, 0x07}, // all 8 digit rows
		{regDecodeMode, 0x00},
		{regShutdown, 0x01}, // normal operation
	}
	for _, s := range seq {
		if err := d.writeAll(s.reg, s.val); err != nil {
			return err
		}
	}
	// blank all rows
	for row := 0; row < 8; row++ {
		if err := d.writeAll(byte(regDigit0+row), 0x00); err != nil {
			return err
		}
	}
	return nil
}

// writeAll latches the same register/value pair into every chip.
func (d *MAX7219) writeAll(reg, val byte) error {
	buf := make([]byte, 0, d.modules*2)
	for m := 0; m < d.modules; m++ {
		buf = append(buf, reg, val)
	}
	return d.conn.Tx(buf, nil)
}

// Commit pushes the buffer to the chain row by row.
func (d *MAX7219) Commit(f *frame.Buffer) error {
	for row := 0; row < 8 && row < f.Height(); row++ {
		buf := make([]byte, 0, d.modules*2)
		for m := d.modules - 1; m >= 0; m-- {
			buf = append(buf, byte(regDigit0+row), f.PackRow(m*8, row))
		}
		if err := d.conn.Tx(buf, nil); err != nil {
			return fmt.Errorf("led: row %d: %w", row, err)
		}
	}
	return nil
}

// SetBrightness maps the 0-15 level straight onto the intensity register.
func (d *MAX7219) SetBrightness(level int) error {
	if level < 0 || level > 15 {
		return fmt.Errorf("led: brightness %d out of range", level)
	}
	return d.writeAll(regIntensity, byte(level))
}

// Close blanks the chain, puts it in shutdown and releases the port.
func (d *MAX7219) Close() error {
	for row := 0; row < 8; row++ {
		_ = d.writeAll(byte(regDigit0+row), 0x00)
	}
	_ = d.writeAll(regShutdown, 0x00)
	return d.port.Close()
}
