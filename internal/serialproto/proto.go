// Package serialproto implements the line protocol used to read and set the watch time
// over its serial link.
//
// A request containing '?' anywhere is answered with the current time as "HH:MM\n".
// A request of the form "HH:MM" sets the time when both fields are in range, and the
// accepted time is echoed back. Anything else is ignored.
package serialproto

import (
	"bytes"
	"errors"
)

// MaxRequest is the most bytes considered per request. Longer input is truncated.
const MaxRequest = 64

// ReplyLen is the length of a time reply, newline included.
const ReplyLen = 6

// CommentPrefix starts every console log line, so clients can skip them between replies.
const CommentPrefix = '#'

// Result is the outcome of parsing one request.
type Result struct {
	// Reply is what to send back. Empty means stay silent.
	Reply []byte
	// Hours and Minutes hold the requested time when Set is true.
	Hours   uint8
	Minutes uint8
	Set     bool
}

// Parse interprets one request against the current time.
func Parse(in []byte, hours, minutes uint8) Result {
	if len(in) > MaxRequest {
		in = in[:MaxRequest]
	}
	if bytes.IndexByte(in, '?') >= 0 {
		return Result{Reply: FormatTime(nil, hours, minutes)}
	}
	if bytes.IndexByte(in, ':') < 0 || len(in) < 5 {
		return Result{}
	}
	h, ok := twoDigits(in[0], in[1])
	if !ok {
		return Result{}
	}
	m, ok := twoDigits(in[3], in[4])
	if !ok {
		return Result{}
	}
	if h >= 24 || m >= 60 {
		return Result{}
	}
	return Result{
		Reply:   FormatTime(nil, h, m),
		Hours:   h,
		Minutes: m,
		Set:     true,
	}
}

func twoDigits(a, b byte) (uint8, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return (a-'0')*10 + (b - '0'), true
}

// FormatTime appends "HH:MM\n" to dst. Values above 99 wrap to two digits.
func FormatTime(dst []byte, hours, minutes uint8) []byte {
	return append(dst,
		'0'+hours/10%10, '0'+hours%10,
		':',
		'0'+minutes/10%10, '0'+minutes%10,
		'\n')
}

var errBadReply = errors.New("serialproto: malformed time reply")

// ParseReply reads a "HH:MM" reply as sent by the watch. Surrounding whitespace is ignored.
func ParseReply(b []byte) (hours, minutes uint8, err error) {
	b = bytes.TrimSpace(b)
	if len(b) != 5 || b[2] != ':' {
		return 0, 0, errBadReply
	}
	h, ok := twoDigits(b[0], b[1])
	if !ok {
		return 0, 0, errBadReply
	}
	m, ok := twoDigits(b[3], b[4])
	if !ok {
		return 0, 0, errBadReply
	}
	if h >= 24 || m >= 60 {
		return 0, 0, errBadReply
	}
	return h, m, nil
}
