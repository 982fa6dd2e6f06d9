package s7

import (
	"time"
)

// request copies one telegram into the working buffer, sends it and
// receives the reply, returning the reply length.
func (sf *Client) request(telegram []byte) (int, error) {
	n := copy(sf.pdu[:], telegram)
	if err := sf.sendPacket(sf.pdu[:n]); err != nil {
		return 0, err
	}
	return sf.recvIsoPacket()
}

// piService fires a program invocation telegram (start/stop) and checks
// the job reply.
func (sf *Client) piService(telegram []byte) error {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	if !sf.connected {
		return ErrClosedConnection
	}
	sf.lastError = 0
	length, err := sf.request(telegram)
	if err != nil {
		return sf.setErr(err)
	}
	if length <= 18 {
		return sf.setErr(ErrIsoInvalidPDU)
	}
	if GetWordAt(sf.pdu[:], 17) != 0 {
		return sf.setErr(ErrS7FunctionError)
	}
	return nil
}

// ColdStart restarts the PLC discarding the process image.
func (sf *Client) ColdStart() error { return sf.piService(s7ColdStart[:]) }

// HotStart restarts the PLC keeping the process image.
func (sf *Client) HotStart() error { return sf.piService(s7HotStart[:]) }

// Stop puts the PLC into STOP.
func (sf *Client) Stop() error { return sf.piService(s7Stop[:]) }

// GetPlcStatus queries the CPU run state.
func (sf *Client) GetPlcStatus() (CpuStatus, error) {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	if !sf.connected {
		return CpuStatusUnknown, ErrClosedConnection
	}
	sf.lastError = 0
	length, err := sf.request(s7GetStatus[:])
	if err != nil {
		return CpuStatusUnknown, sf.setErr(err)
	}
	if length <= 30 {
		return CpuStatusUnknown, sf.setErr(ErrIsoInvalidPDU)
	}
	if GetWordAt(sf.pdu[:], 27) != 0 {
		return CpuStatusUnknown, sf.setErr(ErrS7FunctionError)
	}
	return CpuStatusOf(sf.pdu[44]), nil
}

// GetPlcDateTime reads the PLC clock.
func (sf *Client) GetPlcDateTime() (time.Time, error) {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	if !sf.connected {
		return time.Time{}, ErrClosedConnection
	}
	sf.lastError = 0
	length, err := sf.request(s7GetClock[:])
	if err != nil {
		return time.Time{}, sf.setErr(err)
	}
	if length <= 30 {
		return time.Time{}, sf.setErr(ErrIsoInvalidPDU)
	}
	if GetWordAt(sf.pdu[:], 27) != 0 || sf.pdu[29] != 0xff {
		return time.Time{}, sf.setErr(ErrS7FunctionError)
	}
	return GetDateTimeAt(sf.pdu[:], 34), nil
}

// SetPlcDateTime writes t to the PLC clock.
func (sf *Client) SetPlcDateTime(t time.Time) error {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	if !sf.connected {
		return ErrClosedConnection
	}
	sf.lastError = 0
	copy(sf.pdu[:], s7SetClock[:])
	SetDateTimeAt(sf.pdu[:], 30, t)
	if err := sf.sendPacket(sf.pdu[:len(s7SetClock)]); err != nil {
		return sf.setErr(err)
	}
	length, err := sf.recvIsoPacket()
	if err != nil {
		return sf.setErr(err)
	}
	if length <= 30 {
		return sf.setErr(ErrIsoInvalidPDU)
	}
	if GetWordAt(sf.pdu[:], 27) != 0 {
		return sf.setErr(ErrS7FunctionError)
	}
	return nil
}

// SetPlcSystemDateTime writes the host clock to the PLC.
func (sf *Client) SetPlcSystemDateTime() error {
	return sf.SetPlcDateTime(time.Now())
}

// encodePassword pads or truncates the password to 8 bytes and applies
// the S7 XOR chain.
func encodePassword(password string) [8]byte {
	pwd := [8]byte{0x20, 0x20, 0x20, 0x20, 0x20, 0x20, 0x20, 0x20}
	copy(pwd[:], password)
	pwd[0] ^= 0x55
	pwd[1] ^= 0x55
	for c := 2; c < 8; c++ {
		pwd[c] ^= 0x55 ^ pwd[c-2]
	}
	return pwd
}

// SetSessionPassword authenticates the session against a protected CPU.
func (sf *Client) SetSessionPassword(password string) error {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	if !sf.connected {
		return ErrClosedConnection
	}
	sf.lastError = 0
	pwd := encodePassword(password)
	copy(sf.pdu[:], s7SetPassword[:])
	copy(sf.pdu[29:], pwd[:])
	if err := sf.sendPacket(sf.pdu[:len(s7SetPassword)]); err != nil {
		return sf.setErr(err)
	}
	length, err := sf.recvIsoPacket()
	if err != nil {
		return sf.setErr(err)
	}
	if length <= 32 {
		return sf.setErr(ErrIsoInvalidPDU)
	}
	if GetWordAt(sf.pdu[:], 27) != 0 {
		return sf.setErr(ErrS7FunctionError)
	}
	return nil
}

// ClearSessionPassword drops the session authentication.
func (sf *Client) ClearSessionPassword() error {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	if !sf.connected {
		return ErrClosedConnection
	}
	sf.lastError = 0
	length, err := sf.request(s7ClearPassword[:])
	if err != nil {
		return sf.setErr(err)
	}
	if length <= 30 {
		return sf.setErr(ErrIsoInvalidPDU)
	}
	if GetWordAt(sf.pdu[:], 27) != 0 {
		return sf.setErr(ErrS7FunctionError)
	}
	return nil
}

// GetAgBlockInfo queries the header of one block, e.g. (BlockDB, 100).
func (sf *Client) GetAgBlockInfo(blockType byte, blockNumber int) (*BlockInfo, error) {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	if !sf.connected {
		return nil, ErrClosedConnection
	}
	sf.lastError = 0
	copy(sf.pdu[:], s7BlockInfo[:])
	sf.pdu[30] = blockType
	// 5-digit decimal block number as ASCII
	n := blockNumber
	for i := 35; i >= 31; i-- {
		sf.pdu[i] = byte('0' + n%10)
		n /= 10
	}
	if err := sf.sendPacket(sf.pdu[:len(s7BlockInfo)]); err != nil {
		return nil, sf.setErr(err)
	}
	length, err := sf.recvIsoPacket()
	if err != nil {
		return nil, sf.setErr(err)
	}
	if length <= 32 {
		return nil, sf.setErr(ErrIsoInvalidPDU)
	}
	if GetWordAt(sf.pdu[:], 27) != 0 || sf.pdu[29] != 0xff {
		return nil, sf.setErr(ErrS7FunctionError)
	}
	return BlockInfoAt(sf.pdu[:], 42), nil
}

// DBGet queries the MC7 size of a data block and reads the whole block
// into buffer, returning the byte count read.
func (sf *Client) DBGet(db int, buffer []byte) (int, error) {
	block, err := sf.GetAgBlockInfo(BlockDB, db)
	if err != nil {
		return 0, err
	}
	size := block.MC7Size
	if size > len(buffer) {
		sf.mu.Lock()
		defer sf.mu.Unlock()
		return 0, sf.setErr(ErrS7BufferTooSmall)
	}
	if err := sf.ReadArea(AreaDB, db, 0, size, WLByte, buffer); err != nil {
		return 0, err
	}
	return size, nil
}

// IsoExchangeBuffer wraps data in a TPKT+COTP prefix, sends it and
// returns the reply stripped of the prefix. Opaque passthrough for
// telegrams this package does not model.
func (sf *Client) IsoExchangeBuffer(data []byte) ([]byte, error) {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	if !sf.connected {
		return nil, ErrClosedConnection
	}
	sf.lastError = 0
	if IsoHeaderSize+len(data) > len(sf.pdu) {
		return nil, sf.setErr(ErrIsoInvalidPDU)
	}
	copy(sf.pdu[:], tpktISO[:])
	SetWordAt(sf.pdu[:], 2, uint16(IsoHeaderSize+len(data)))
	copy(sf.pdu[IsoHeaderSize:], data)
	if err := sf.sendPacket(sf.pdu[:IsoHeaderSize+len(data)]); err != nil {
		return nil, sf.setErr(err)
	}
	length, err := sf.recvIsoPacket()
	if err != nil {
		return nil, sf.setErr(err)
	}
	out := make([]byte, length-IsoHeaderSize)
	copy(out, sf.pdu[IsoHeaderSize:length])
	return out, nil
}
