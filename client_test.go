package s7

import (
	"encoding/binary"
	"io"
	"net"
	"reflect"
	"strconv"
	"sync"
	"testing"
)

// exchange is one scripted request/response pair of the mock PLC. A nil
// want skips the byte-for-byte request check; resp is written verbatim
// and may contain more than one frame.
type exchange struct {
	name string
	want []byte
	resp []byte
}

// mockPLC serves canned TPKT frames on a loopback listener, recording
// every request it receives.
type mockPLC struct {
	t  *testing.T
	ln net.Listener

	mu   sync.Mutex
	reqs [][]byte
}

func newMockPLC(t *testing.T, exchanges []exchange) *mockPLC {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	m := &mockPLC{t: t, ln: ln}
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		for _, ex := range exchanges {
			head := make([]byte, 4)
			if _, err := io.ReadFull(conn, head); err != nil {
				return
			}
			size := int(binary.BigEndian.Uint16(head[2:]))
			rest := make([]byte, size-4)
			if _, err := io.ReadFull(conn, rest); err != nil {
				return
			}
			got := append(head, rest...)
			m.mu.Lock()
			m.reqs = append(m.reqs, got)
			m.mu.Unlock()
			if ex.want != nil && !reflect.DeepEqual(got, ex.want) {
				m.t.Errorf("%s: request = % x, want % x", ex.name, got, ex.want)
			}
			if len(ex.resp) > 0 {
				if _, err := conn.Write(ex.resp); err != nil {
					return
				}
			}
		}
	}()
	return m
}

func (m *mockPLC) hostPort() (string, int) {
	host, portStr, _ := net.SplitHostPort(m.ln.Addr().String())
	port, _ := strconv.Atoi(portStr)
	return host, port
}

func (m *mockPLC) requests() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]byte(nil), m.reqs...)
}

// canned handshake frames: PG connection to rack 0 slot 2, PDU
// negotiated down to 240 bytes.
var (
	wantCRRequest = []byte{
		0x03, 0x00, 0x00, 0x16, 0x11, 0xe0, 0x00, 0x00, 0x00, 0x01, 0x00,
		0xc0, 0x01, 0x0a, 0xc1, 0x02, 0x01, 0x00, 0xc2, 0x02, 0x01, 0x02,
	}
	ccReply = []byte{
		0x03, 0x00, 0x00, 0x16, 0x11, 0xd0, 0x00, 0x01, 0x00, 0x0c, 0x00,
		0xc0, 0x01, 0x0a, 0xc1, 0x02, 0x01, 0x00, 0xc2, 0x02, 0x01, 0x02,
	}
	wantPNRequest = []byte{
		0x03, 0x00, 0x00, 0x19, 0x02, 0xf0, 0x80,
		0x32, 0x01, 0x00, 0x00, 0x04, 0x00, 0x00, 0x08, 0x00, 0x00,
		0xf0, 0x00, 0x00, 0x01, 0x00, 0x01, 0x01, 0xe0,
	}
	pnReply240 = []byte{
		0x03, 0x00, 0x00, 0x1b, 0x02, 0xf0, 0x80,
		0x32, 0x03, 0x00, 0x00, 0x04, 0x00, 0x00, 0x08, 0x00, 0x00,
		0x00, 0x00, // no error
		0xf0, 0x00, 0x00, 0x01, 0x00, 0x01,
		0x00, 0xf0, // PDU length 240
	}
)

func handshake() []exchange {
	return []exchange{
		{"iso connect", wantCRRequest, ccReply},
		{"negotiate", wantPNRequest, pnReply240},
	}
}

// connectedClient spins a mock PLC serving the handshake plus extra
// exchanges and returns a connected client.
func connectedClient(t *testing.T, extra ...exchange) (*Client, *mockPLC) {
	t.Helper()
	m := newMockPLC(t, append(handshake(), extra...))
	host, port := m.hostPort()
	client := NewClient(host, WithPort(port))
	if err := client.Connect(); err != nil {
		t.Fatalf("Connect() error = %v, wantErr %v", err, nil)
	}
	return client, m
}

func TestClientConnect(t *testing.T) {
	client, _ := connectedClient(t)
	defer client.Close()

	if !client.IsConnected() {
		t.Errorf("client IsConnected() = %v, want %v", false, true)
	}
	if got := client.PduLength(); got != 240 {
		t.Errorf("PduLength() = %v, want %v", got, 240)
	}
	if err := client.Close(); err != nil {
		t.Errorf("client Close() error = %v, wantErr %v", err, nil)
	}
	if client.IsConnected() {
		t.Errorf("client IsConnected() = %v, want %v", true, false)
	}
	if got := client.PduLength(); got != 0 {
		t.Errorf("PduLength() after Close = %v, want %v", got, 0)
	}
}

func TestClientConnectSkipsKeepAlive(t *testing.T) {
	// an empty TPKT+COTP frame before the connection confirm is skipped
	keepAlive := []byte{0x03, 0x00, 0x00, 0x07, 0x02, 0xf0, 0x80}
	m := newMockPLC(t, []exchange{
		{"iso connect", wantCRRequest, append(append([]byte{}, keepAlive...), ccReply...)},
		{"negotiate", wantPNRequest, pnReply240},
	})
	host, port := m.hostPort()
	client := NewClient(host, WithPort(port))
	if err := client.Connect(); err != nil {
		t.Fatalf("Connect() error = %v, wantErr %v", err, nil)
	}
	defer client.Close()
	if got := client.PduLength(); got != 240 {
		t.Errorf("PduLength() = %v, want %v", got, 240)
	}
}

func TestClientConnectRejectsBadPDUType(t *testing.T) {
	// a reply that is not a connection confirm fails the handshake
	badReply := append([]byte{}, ccReply...)
	badReply[5] = 0x80
	m := newMockPLC(t, []exchange{{"iso connect", nil, badReply}})
	host, port := m.hostPort()
	client := NewClient(host, WithPort(port))
	if err := client.Connect(); err != ErrIsoConnectionFailed {
		t.Errorf("Connect() error = %v, want %v", err, ErrIsoConnectionFailed)
	}
	if client.IsConnected() {
		t.Errorf("client IsConnected() = %v, want %v", true, false)
	}
}

func TestClientConnectRejectsOversizedFrame(t *testing.T) {
	// TPKT length above MaxPduSize is an invalid PDU
	badReply := append([]byte{}, ccReply...)
	binary.BigEndian.PutUint16(badReply[2:], 500)
	m := newMockPLC(t, []exchange{{"iso connect", nil, badReply}})
	host, port := m.hostPort()
	client := NewClient(host, WithPort(port))
	if err := client.Connect(); err != ErrIsoInvalidPDU {
		t.Errorf("Connect() error = %v, want %v", err, ErrIsoInvalidPDU)
	}
	if client.IsConnected() {
		t.Errorf("client IsConnected() = %v, want %v", true, false)
	}
	if client.LastError() != ErrIsoInvalidPDU {
		t.Errorf("LastError() = %v, want %v", client.LastError(), ErrIsoInvalidPDU)
	}
}

func TestClientTSAPDerivation(t *testing.T) {
	tests := []struct {
		name       string
		connType   ConnectionType
		rack, slot int
		want       uint16
	}{
		{"PG rack 0 slot 2", ConnTypePG, 0, 2, 0x0102},
		{"OP rack 0 slot 2", ConnTypeOP, 0, 2, 0x0202},
		{"basic rack 2 slot 3", ConnTypeBasic, 2, 3, 0x0343},
		{"PG rack 15 slot 31", ConnTypePG, 15, 31, 0x01FF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := append([]byte{}, wantCRRequest...)
			binary.BigEndian.PutUint16(want[20:], tt.want)
			m := newMockPLC(t, []exchange{
				{"iso connect", want, ccReply},
				{"negotiate", nil, pnReply240},
			})
			host, port := m.hostPort()
			client := NewClient(host, WithPort(port),
				WithConnectionType(tt.connType),
				WithRackSlot(tt.rack, tt.slot))
			if err := client.Connect(); err != nil {
				t.Fatalf("Connect() error = %v, wantErr %v", err, nil)
			}
			client.Close()
		})
	}
}

func TestClientNotConnected(t *testing.T) {
	client := NewClient("localhost")
	buf := make([]byte, 4)
	if err := client.ReadArea(AreaDB, 1, 0, 4, WLByte, buf); err != ErrClosedConnection {
		t.Errorf("ReadArea() error = %v, want %v", err, ErrClosedConnection)
	}
	if err := client.WriteArea(AreaDB, 1, 0, 4, WLByte, buf); err != ErrClosedConnection {
		t.Errorf("WriteArea() error = %v, want %v", err, ErrClosedConnection)
	}
	if _, err := client.GetPlcStatus(); err != ErrClosedConnection {
		t.Errorf("GetPlcStatus() error = %v, want %v", err, ErrClosedConnection)
	}
	if _, err := client.ReadSZL(0x0011, 0, 1024); err != ErrClosedConnection {
		t.Errorf("ReadSZL() error = %v, want %v", err, ErrClosedConnection)
	}
}
