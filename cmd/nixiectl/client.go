package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fopscorp/nixiewatch/internal/serialproto"
)

// client speaks the time protocol over an open serial link.
type client struct {
	w io.Writer
	r *bufio.Reader
}

func newClient(rw io.ReadWriter) *client {
	return &client{w: rw, r: bufio.NewReader(rw)}
}

// get asks the watch for its time.
func (c *client) get() (hours, minutes uint8, err error) {
	if _, err := c.w.Write([]byte("?")); err != nil {
		return 0, 0, fmt.Errorf("send query: %w", err)
	}
	return c.reply()
}

// set sets the watch time and returns the time the watch confirmed.
func (c *client) set(hours, minutes uint8) (uint8, uint8, error) {
	req := serialproto.FormatTime(nil, hours, minutes)
	// the watch takes HH:MM without the newline
	if _, err := c.w.Write(req[:serialproto.ReplyLen-1]); err != nil {
		return 0, 0, fmt.Errorf("send time: %w", err)
	}
	h, m, err := c.reply()
	if err != nil {
		return 0, 0, err
	}
	if h != hours || m != minutes {
		return h, m, fmt.Errorf("watch confirmed %02d:%02d, asked for %02d:%02d", h, m, hours, minutes)
	}
	return h, m, nil
}

func (c *client) reply() (uint8, uint8, error) {
	var line []byte
	for {
		var err error
		line, err = c.r.ReadBytes('\n')
		if err != nil {
			return 0, 0, fmt.Errorf("read reply: %w", err)
		}
		if len(line) == 0 || line[0] != serialproto.CommentPrefix {
			break
		}
	}
	h, m, err := serialproto.ParseReply(line)
	if err != nil {
		return 0, 0, fmt.Errorf("reply %q: %w", line, err)
	}
	return h, m, nil
}
