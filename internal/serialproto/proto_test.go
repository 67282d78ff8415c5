package serialproto

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestParse(t *testing.T) {
	testData := []struct {
		name  string
		in    string
		h, m  uint8
		reply string
		set   bool
		wantH uint8
		wantM uint8
	}{
		{name: "query", in: "?", h: 7, m: 5, reply: "07:05\n"},
		{name: "query midnight", in: "?\r\n", h: 0, m: 0, reply: "00:00\n"},
		{name: "query wins over set", in: "12:00?", h: 1, m: 2, reply: "01:02\n"},
		{name: "set", in: "13:37", h: 1, m: 2, reply: "13:37\n", set: true, wantH: 13, wantM: 37},
		{name: "set with newline", in: "23:59\n", reply: "23:59\n", set: true, wantH: 23, wantM: 59},
		{name: "set midnight", in: "00:00", h: 5, m: 5, reply: "00:00\n", set: true},
		{name: "hours out of range", in: "25:00"},
		{name: "minutes out of range", in: "12:60"},
		{name: "too short", in: "1:30"},
		{name: "no marker", in: "hello"},
		{name: "empty", in: ""},
		{name: "letters", in: "ab:cd"},
		{name: "digits below zero", in: "//:00"},
		{name: "colon elsewhere", in: "1234:"},
	}
	for _, test := range testData {
		t.Run(test.name, func(t *testing.T) {
			r := Parse([]byte(test.in), test.h, test.m)
			assert.Equal(t, string(r.Reply), test.reply)
			assert.Equal(t, r.Set, test.set)
			if test.set {
				assert.Equal(t, r.Hours, test.wantH)
				assert.Equal(t, r.Minutes, test.wantM)
			}
		})
	}
}

func TestParseTruncatesLongInput(t *testing.T) {
	in := make([]byte, 100)
	for i := range in {
		in[i] = 'x'
	}
	in[80] = '?'
	r := Parse(in, 1, 1)
	assert.Equal(t, len(r.Reply), 0)

	in[10] = '?'
	r = Parse(in, 1, 1)
	assert.Equal(t, string(r.Reply), "01:01\n")
}

func TestFormatTimeAppends(t *testing.T) {
	b := FormatTime([]byte("t="), 9, 3)
	assert.Equal(t, string(b), "t=09:03\n")
	assert.Equal(t, len(FormatTime(nil, 23, 59)), ReplyLen)
}

func TestParseReply(t *testing.T) {
	h, m, err := ParseReply([]byte("07:05\n"))
	assert.NilError(t, err)
	assert.Equal(t, h, uint8(7))
	assert.Equal(t, m, uint8(5))

	for _, bad := range []string{"", "7:05", "07-05", "24:00", "07:5x", "07:05:00"} {
		_, _, err := ParseReply([]byte(bad))
		assert.Assert(t, err != nil, "%q", bad)
	}
}
