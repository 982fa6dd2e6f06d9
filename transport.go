package s7

import (
	"io"
	"net"
	"strconv"
	"time"
)

const (
	// TCPDefaultRecvTimeout receive timeout of one expected packet
	TCPDefaultRecvTimeout = 2 * time.Second
	// TCPDefaultConnectTimeout TCP dial timeout
	TCPDefaultConnectTimeout = 5 * time.Second
)

// tcpTransport owns the TCP connection of one session. It only moves raw
// bytes; framing and S7 semantics live in Client.
type tcpTransport struct {
	conn           net.Conn
	recvTimeout    time.Duration
	connectTimeout time.Duration
}

// open dials the remote host with TCP_NODELAY set.
func (sf *tcpTransport) open(host string, port int) error {
	conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, strconv.Itoa(port)), sf.connectTimeout)
	if err != nil {
		return ErrTCPConnectionFailed
	}
	if tcp, ok := conn.(*net.TCPConn); ok {
		_ = tcp.SetNoDelay(true)
	}
	sf.conn = conn
	return nil
}

// send writes the whole buffer.
func (sf *tcpTransport) send(b []byte) error {
	if sf.conn == nil {
		return ErrClosedConnection
	}
	if _, err := sf.conn.Write(b); err != nil {
		return ErrTCPDataSend
	}
	return nil
}

// recvExact reads exactly len(dst) bytes within the receive timeout. On
// timeout any residue sitting in the socket is drained before reporting,
// so a later request does not resynchronize against half of a stale
// frame. Note the drain may discard a frame that arrived just after the
// deadline; the caller treats the session as out of sync either way.
func (sf *tcpTransport) recvExact(dst []byte) error {
	if sf.conn == nil {
		return ErrClosedConnection
	}
	if err := sf.conn.SetReadDeadline(time.Now().Add(sf.recvTimeout)); err != nil {
		return ErrTCPDataRecv
	}
	_, err := io.ReadFull(sf.conn, dst)
	switch {
	case err == nil:
		return nil
	case err == io.EOF, err == io.ErrUnexpectedEOF:
		return ErrTCPConnectionReset
	default:
		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
			sf.drain()
			return ErrTCPDataRecvTout
		}
		return ErrTCPDataRecv
	}
}

// drain discards whatever is pending on the socket without blocking.
func (sf *tcpTransport) drain() {
	var scratch [pduBufferSize]byte
	if err := sf.conn.SetReadDeadline(time.Now()); err != nil {
		return
	}
	for {
		if n, err := sf.conn.Read(scratch[:]); err != nil || n == 0 {
			return
		}
	}
}

// close shuts the connection down, idempotent.
func (sf *tcpTransport) close() error {
	if sf.conn == nil {
		return nil
	}
	err := sf.conn.Close()
	sf.conn = nil
	return err
}
