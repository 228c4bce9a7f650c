// Package serialconsole feeds line-oriented commands from a serial
// port (or any byte stream) into the command interpreter and writes
// each result back as a response line.
package serialconsole

import (
	"bufio"
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog"
	"go.bug.st/serial"

	"github.com/armkit/armctl/internal/gcode"
)

// MaxLineLen is the maximum accepted command line length, inclusive.
// Longer input is discarded with an error response and the accumulation
// buffer is reset.
const MaxLineLen = 256

// Console runs the read/execute/respond loop over one byte stream.
type Console struct {
	rw     io.ReadWriter
	interp *gcode.Interpreter
	log    zerolog.Logger
}

func New(rw io.ReadWriter, interp *gcode.Interpreter, log zerolog.Logger) *Console {
	return &Console{rw: rw, interp: interp, log: log}
}

// Open dials a serial port and wraps it in a Console. The caller owns
// closing the returned port.
func Open(portName string, baud int, interp *gcode.Interpreter, log zerolog.Logger) (*Console, serial.Port, error) {
	port, err := serial.Open(portName, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, nil, err
	}
	return New(port, interp, log), port, nil
}

// Run consumes the stream until EOF, read error, or context
// cancellation. Lines terminate on '\n' or '\r'. A '\n' directly after
// a '\r' is the tail of a CRLF pair and is absorbed; any other empty
// line is executed as a no-op and answered with "ok".
func (c *Console) Run(ctx context.Context) error {
	reader := bufio.NewReader(c.rw)
	buf := make([]byte, 0, MaxLineLen)
	overflowed := false
	var prev byte

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		b, err := reader.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if b == '\n' || b == '\r' {
			if b == '\n' && prev == '\r' {
				prev = b
				continue
			}
			prev = b
			if overflowed {
				overflowed = false
				buf = buf[:0]
				c.respond("error: Line too long")
				continue
			}
			line := string(buf)
			buf = buf[:0]
			c.respond(c.interp.Execute(line).Render())
			continue
		}
		prev = b

		if overflowed {
			continue
		}
		if len(buf) >= MaxLineLen {
			overflowed = true
			c.log.Warn().Msg("serial line exceeded max length, discarding")
			buf = buf[:0]
			continue
		}
		buf = append(buf, b)
	}
}

func (c *Console) respond(text string) {
	if _, err := io.WriteString(c.rw, text+"\n"); err != nil {
		c.log.Error().Err(err).Msg("serial write failed")
	}
}
