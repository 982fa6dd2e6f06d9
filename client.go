package s7

import (
	"sync"
	"time"
)

// Client is one S7 session. A session owns its TCP connection and a
// single working buffer, so it supports one operation in flight; the
// internal mutex serializes concurrent misuse instead of corrupting the
// buffer. Callers wanting parallelism use separate clients.
type Client struct {
	clogs
	mu sync.Mutex

	host     string
	port     int
	connType ConnectionType
	rack     int
	slot     int
	// raw TSAPs; remote is derived from connType/rack/slot unless set
	// explicitly via WithTSAP.
	localTSAP    uint16
	remoteTSAP   uint16
	explicitTSAP bool

	t tcpTransport

	// session state
	connected   bool
	pduLength   int
	lastPDUType byte
	lastError   Errno
	pdu         [pduBufferSize]byte
}

// Option custom option on the client.
type Option func(c *Client)

// WithPort set a non-default ISO-TCP port.
func WithPort(port int) Option {
	return func(c *Client) {
		c.port = port
	}
}

// WithConnectionType set the endpoint role encoded into the remote TSAP,
// default PG.
func WithConnectionType(t ConnectionType) Option {
	return func(c *Client) {
		c.connType = t
	}
}

// WithRackSlot set rack and slot of the addressed CPU, default 0/2.
func WithRackSlot(rack, slot int) Option {
	return func(c *Client) {
		c.rack = rack
		c.slot = slot
	}
}

// WithTSAP set raw local and remote TSAPs, overriding the
// connection-type/rack/slot derivation.
func WithTSAP(local, remote uint16) Option {
	return func(c *Client) {
		c.localTSAP = local
		c.remoteTSAP = remote
		c.explicitTSAP = true
	}
}

// WithRecvTimeout set the receive timeout of one expected packet,
// default 2s.
func WithRecvTimeout(t time.Duration) Option {
	return func(c *Client) {
		c.t.recvTimeout = t
	}
}

// WithConnectTimeout set the TCP dial timeout, default 5s.
func WithConnectTimeout(t time.Duration) Option {
	return func(c *Client) {
		c.t.connectTimeout = t
	}
}

// WithLogProvider set logger provider.
func WithLogProvider(p LogProvider) Option {
	return func(c *Client) {
		c.setLogProvider(p)
	}
}

// WithEnableLogger enable log output when you has set logger.
func WithEnableLogger() Option {
	return func(c *Client) {
		c.LogMode(true)
	}
}

// NewClient allocates a new Client for the given host. The connection is
// not established until Connect.
func NewClient(host string, opts ...Option) *Client {
	c := &Client{
		host:      host,
		port:      IsoTCPPort,
		connType:  ConnTypePG,
		rack:      0,
		slot:      2,
		localTSAP: 0x0100,
		t: tcpTransport{
			recvTimeout:    TCPDefaultRecvTimeout,
			connectTimeout: TCPDefaultConnectTimeout,
		},
		clogs: clogs{provider: newDefaultLogger("s7: ")},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Connect performs the three-stage handshake: TCP connection, ISO
// connection request, S7 PDU length negotiation. On any failure the
// socket is closed and the session reverts to its pre-connect state.
func (sf *Client) Connect() error {
	sf.mu.Lock()
	defer sf.mu.Unlock()

	if sf.connected {
		return nil
	}
	sf.Debugf("connecting to %s:%d", sf.host, sf.port)
	sf.lastError = 0
	if !sf.explicitTSAP {
		sf.remoteTSAP = uint16(sf.connType)<<8 | uint16(sf.rack*0x20+sf.slot)
	}

	err := sf.t.open(sf.host, sf.port)
	if err == nil {
		err = sf.openISOConnection()
		if err == nil {
			err = sf.negotiatePduLength()
		}
	}
	if err != nil {
		_ = sf.t.close()
		sf.pduLength = 0
		return sf.setErr(err)
	}
	sf.connected = true
	return nil
}

// Close releases the socket and resets the negotiated PDU length. A
// later Connect is permitted.
func (sf *Client) Close() error {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	err := sf.t.close()
	sf.pduLength = 0
	sf.connected = false
	return err
}

// IsConnected reports whether the three-stage handshake has completed.
func (sf *Client) IsConnected() bool {
	sf.mu.Lock()
	b := sf.connected
	sf.mu.Unlock()
	return b
}

// PduLength returns the negotiated PDU length, 0 before Connect.
func (sf *Client) PduLength() int {
	sf.mu.Lock()
	v := sf.pduLength
	sf.mu.Unlock()
	return v
}

// LastError returns the code of the most recent failure, nil if the last
// operation succeeded.
func (sf *Client) LastError() error {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	if sf.lastError == 0 {
		return nil
	}
	return sf.lastError
}

// setErr records err as the session's last error and passes it through.
func (sf *Client) setErr(err error) error {
	if err == nil {
		sf.lastError = 0
		return nil
	}
	if e, ok := err.(Errno); ok {
		sf.lastError = e
	}
	// a transport failure leaves the socket unusable
	switch err {
	case ErrTCPConnectionReset, ErrTCPDataSend:
		_ = sf.t.close()
		sf.connected = false
	}
	sf.Errorf("%v", err)
	return err
}

// openISOConnection sends the COTP connection request and expects a
// connection confirm.
func (sf *Client) openISOConnection() error {
	copy(sf.pdu[:], isoConnectionRequest[:])
	SetWordAt(sf.pdu[:], 16, sf.localTSAP)
	SetWordAt(sf.pdu[:], 20, sf.remoteTSAP)
	if err := sf.sendPacket(sf.pdu[:len(isoConnectionRequest)]); err != nil {
		return err
	}
	length, err := sf.recvIsoPacket()
	if err != nil {
		return err
	}
	if length != len(isoConnectionRequest) {
		return ErrIsoInvalidPDU
	}
	if sf.lastPDUType != 0xD0 { // CC - connection confirm
		return ErrIsoConnectionFailed
	}
	return nil
}

// negotiatePduLength agrees the S7 PDU size with the CPU.
func (sf *Client) negotiatePduLength() error {
	copy(sf.pdu[:], s7NegotiatePDU[:])
	SetWordAt(sf.pdu[:], 23, DefaultPduSizeRequested)
	if err := sf.sendPacket(sf.pdu[:len(s7NegotiatePDU)]); err != nil {
		return err
	}
	length, err := sf.recvIsoPacket()
	if err != nil {
		return err
	}
	if length != 27 || sf.pdu[17] != 0 || sf.pdu[18] != 0 {
		return ErrIsoNegotiatingPDU
	}
	sf.pduLength = int(GetWordAt(sf.pdu[:], 25))
	if sf.pduLength <= 0 {
		return ErrIsoNegotiatingPDU
	}
	sf.Debugf("PDU negotiated length: %d bytes", sf.pduLength)
	return nil
}

// sendPacket writes one assembled frame.
func (sf *Client) sendPacket(b []byte) error {
	sf.Debugf("sending % x", b)
	return sf.t.send(b)
}

// recvIsoPacket receives one ISO packet into the working buffer and
// returns its total length. Empty keep-alive frames (TPKT+COTP only) are
// skipped; any length outside [MinPduSize, MaxPduSize] is rejected. The
// COTP PDU type of the accepted frame is stored for the handshake.
func (sf *Client) recvIsoPacket() (int, error) {
	for {
		// TPKT header
		if err := sf.t.recvExact(sf.pdu[0:4]); err != nil {
			return 0, err
		}
		size := int(GetWordAt(sf.pdu[:], 2))
		if size == IsoHeaderSize {
			// empty frame, skip the COTP remainder and keep listening
			if err := sf.t.recvExact(sf.pdu[4:7]); err != nil {
				return 0, err
			}
			continue
		}
		if size < MinPduSize || size > MaxPduSize {
			return 0, ErrIsoInvalidPDU
		}
		// COTP remainder
		if err := sf.t.recvExact(sf.pdu[4:7]); err != nil {
			return 0, err
		}
		sf.lastPDUType = sf.pdu[5]
		// S7 payload
		if err := sf.t.recvExact(sf.pdu[IsoHeaderSize:size]); err != nil {
			return 0, err
		}
		sf.Debugf("received % x", sf.pdu[:size])
		return size, nil
	}
}
