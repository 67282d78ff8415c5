package serialproto

// Port is the byte channel the handler talks over. Read returns what is available without
// waiting for more; a USB CDC endpoint, a UART buffer or an io.ReadWriter all fit.
type Port interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
}

// writeAttempts bounds how many times a reply is pushed at a port that accepts nothing.
const writeAttempts = 16

// Handler serves requests arriving on a Port.
type Handler struct {
	port Port
	buf  [MaxRequest]byte
}

// NewHandler returns a handler bound to port.
func NewHandler(port Port) *Handler {
	return &Handler{port: port}
}

// Handle drains one request from the port and answers it using the given current time.
// It returns the requested time and true when the request set the clock. Transport
// errors are dropped; the host can ask again.
func (h *Handler) Handle(hours, minutes uint8) (uint8, uint8, bool) {
	n, _ := h.port.Read(h.buf[:])
	if n <= 0 {
		return 0, 0, false
	}
	r := Parse(h.buf[:n], hours, minutes)
	if len(r.Reply) > 0 {
		h.Print(r.Reply)
	}
	return r.Hours, r.Minutes, r.Set
}

// Print writes b to the port, retrying short writes a bounded number of times. It
// reports whether everything was written.
func (h *Handler) Print(b []byte) bool {
	stalled := 0
	for len(b) > 0 {
		n, err := h.port.Write(b)
		if n > 0 {
			b = b[n:]
			stalled = 0
			continue
		}
		stalled++
		if err != nil || stalled >= writeAttempts {
			return false
		}
	}
	return true
}
