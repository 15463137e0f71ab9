// Package input turns a raw terminal byte stream into per-frame key state.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a movement key counts as held after its last
// byte. Terminals only repeat keys, they never report releases.
const keyHoldDuration = 30 * time.Millisecond

// Input is the key state for one frame. Movement keys are held states;
// toggles fire once per press.
type Input struct {
	Quit  bool
	Left  bool
	Right bool
	Up    bool
	Down  bool

	ToggleShape bool // space
	ToggleSword bool // x
	Reset       bool // r

	Pressed []byte
}

type keyState struct {
	left, right, up, down time.Time
}

// Stream delivers bytes read from a terminal and remembers when each
// movement key was last seen.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool

	// pending holds an escape sequence prefix cut off at the end of the
	// previous drain.
	pending []byte
}

// StartStream spawns a goroutine reading r until it fails. The goroutine
// exits when r returns an error, so callers must close the underlying
// reader to stop it.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		defer close(s.ch)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadInput drains pending bytes without blocking and returns the frame's
// input. A closed stream reports Quit.
func ReadInput(s *Stream) Input {
	return s.read(time.Now())
}

func (s *Stream) read(now time.Time) Input {
	var buf []byte
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}
	return s.parse(buf, now)
}

func (s *Stream) parse(buf []byte, now time.Time) Input {
	in := Input{Quit: s.closed, Pressed: buf}
	if len(s.pending) > 0 {
		buf = append(s.pending, buf...)
		s.pending = nil
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b == '\x1b' {
			if rest := buf[i+1:]; len(rest) == 0 || (len(rest) == 1 && rest[0] == '[') {
				s.pending = append([]byte(nil), buf[i:]...)
				break
			}
			if buf[i+1] == '[' && s.arrow(buf[i+2], now) {
				i += 2
				continue
			}
		}
		switch b {
		case 'q', 'Q', 0x03: // ctrl-c arrives as a byte in raw mode
			in.Quit = true
		case 'a', 'A', 'h':
			s.state.left = now
		case 'd', 'D', 'l':
			s.state.right = now
		case 'w', 'W', 'k':
			s.state.up = now
		case 's', 'S', 'j':
			s.state.down = now
		case ' ':
			in.ToggleShape = true
		case 'x', 'X':
			in.ToggleSword = true
		case 'r', 'R':
			in.Reset = true
		}
	}

	in.Left = now.Sub(s.state.left) < keyHoldDuration
	in.Right = now.Sub(s.state.right) < keyHoldDuration
	in.Up = now.Sub(s.state.up) < keyHoldDuration
	in.Down = now.Sub(s.state.down) < keyHoldDuration
	return in
}

func (s *Stream) arrow(code byte, now time.Time) bool {
	switch code {
	case 'A':
		s.state.up = now
	case 'B':
		s.state.down = now
	case 'C':
		s.state.right = now
	case 'D':
		s.state.left = now
	default:
		return false
	}
	return true
}
