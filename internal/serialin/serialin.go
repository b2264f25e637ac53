// Package serialin turns byte streams (a serial port, stdin) into command
// requests for the engine. Each source runs its own reader goroutine and
// feeds a channel; the engine drains that channel without ever blocking
// its frame cadence on input.
package serialin

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
	"github.com/tarm/serial"

	"github.com/SeanoNET/PicoPixels/internal/render"
)

// Port wraps an open serial port whose reader produces requests and whose
// writer carries the reply lines back to the sender.
type Port struct {
	rw io.ReadWriteCloser
	mu sync.Mutex
}

// OpenPort opens dev at the given baud rate.
func OpenPort(dev string, baud int) (*Port, error) {
	rw, err := serial.OpenPort(&serial.Config{Name: dev, Baud: baud})
	if err != nil {
		return nil, fmt.Errorf("serialin: open %q: %w", dev, err)
	}
	return &Port{rw: rw}, nil
}

// Feed reads lines from the port until it fails, sending each as a
// request whose reply is written back over the same port. It closes
// nothing; call Close separately on shutdown.
func (p *Port) Feed(requests chan<- render.Request, log zerolog.Logger) {
	feed(p.rw, p.reply, requests, log)
}

func (p *Port) reply(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.rw, "%s\r\n", s)
}

func (p *Port) Close() error { return p.rw.Close() }

// FeedReader reads lines from r (typically stdin), replying on w.
func FeedReader(r io.Reader, w io.Writer, requests chan<- render.Request, log zerolog.Logger) {
	var mu sync.Mutex
	reply := func(s string) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(w, s)
	}
	feed(r, reply, requests, log)
}

func feed(r io.Reader, reply func(string), requests chan<- render.Request, log zerolog.Logger) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		requests <- render.Request{Line: sc.Text(), Reply: reply}
	}
	if err := sc.Err(); err != nil {
		log.Warn().Err(err).Msg("input source closed with error")
	} else {
		log.Info().Msg("input source closed")
	}
}
