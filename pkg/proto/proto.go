package proto

// Channel is an already-open writable link to a printer. Pairing and
// discovery belong to whoever hands the channel over; the driver only
// needs ordered writes and a connect-state query.
type Channel interface {
	IsConnected() bool
	Write(p []byte) (n int, err error)
}
