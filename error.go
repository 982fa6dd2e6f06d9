package s7

import (
	"errors"
	"fmt"
)

// ErrClosedConnection 连接已关闭
var ErrClosedConnection = errors.New("s7: use of closed connection")

// Errno is a stable numeric error code. Every failing operation returns
// one, so callers feeding dashboards can rely on the integer value while
// normal Go code just treats it as an error.
type Errno int

// transport, framing, negotiation and client precondition codes.
const (
	ErrTCPConnectionFailed Errno = 0x0001
	ErrTCPConnectionReset  Errno = 0x0002
	ErrTCPDataSend         Errno = 0x0003
	ErrTCPDataRecv         Errno = 0x0004
	ErrTCPDataRecvTout     Errno = 0x0005
	ErrIsoConnectionFailed Errno = 0x0006
	ErrIsoInvalidPDU       Errno = 0x0007
	ErrIsoNegotiatingPDU   Errno = 0x0008
	ErrIsoInvalidDataSize  Errno = 0x0009
	ErrS7InvalidParams     Errno = 0x000A
	ErrS7FunctionError     Errno = 0x000B
	ErrS7DataRead          Errno = 0x000C
	ErrS7DataWrite         Errno = 0x000D
	ErrS7BufferTooSmall    Errno = 0x000E
	ErrCliInvalidWordLen   Errno = 0x000F
	ErrCliSizeOverPDU      Errno = 0x0010
	ErrCliTooManyItems     Errno = 0x0011
	ErrCliInvalidPlcAnswer Errno = 0x0012
)

// CPU-side codes, produced by CpuError from the status byte or word the
// PLC puts into a reply item.
const (
	ErrCliAddressOutOfRange     Errno = 0x0100
	ErrCliInvalidTransportSize  Errno = 0x0101
	ErrCliWriteDataSizeMismatch Errno = 0x0102
	ErrCliItemNotAvailable      Errno = 0x0103
	ErrCliDataOverPDU           Errno = 0x0104
	ErrCliFunNotAvailable       Errno = 0x0105
	ErrCliNeedPassword          Errno = 0x0106
	ErrCliInvalidPassword       Errno = 0x0107
	ErrCliNoPasswordToSetClear  Errno = 0x0108
)

// Error implements error interface.
func (e Errno) Error() string {
	var name string
	switch e {
	case ErrTCPConnectionFailed:
		name = "TCP connection failed"
	case ErrTCPConnectionReset:
		name = "TCP connection reset by peer"
	case ErrTCPDataSend:
		name = "TCP data send failed"
	case ErrTCPDataRecv:
		name = "TCP data recv failed"
	case ErrTCPDataRecvTout:
		name = "TCP data recv timeout"
	case ErrIsoConnectionFailed:
		name = "ISO connection refused"
	case ErrIsoInvalidPDU:
		name = "ISO invalid PDU received"
	case ErrIsoNegotiatingPDU:
		name = "ISO PDU negotiation failed"
	case ErrIsoInvalidDataSize:
		name = "ISO invalid data size"
	case ErrS7InvalidParams:
		name = "S7 invalid parameters"
	case ErrS7FunctionError:
		name = "S7 function refused by CPU"
	case ErrS7DataRead:
		name = "S7 data read failed"
	case ErrS7DataWrite:
		name = "S7 data write failed"
	case ErrS7BufferTooSmall:
		name = "buffer too small"
	case ErrCliInvalidWordLen:
		name = "unsupported word length"
	case ErrCliSizeOverPDU:
		name = "request size exceeds negotiated PDU"
	case ErrCliTooManyItems:
		name = "too many items"
	case ErrCliInvalidPlcAnswer:
		name = "invalid PLC answer"
	case ErrCliAddressOutOfRange:
		name = "address out of range"
	case ErrCliInvalidTransportSize:
		name = "invalid transport size"
	case ErrCliWriteDataSizeMismatch:
		name = "write data size mismatch"
	case ErrCliItemNotAvailable:
		name = "item not available"
	case ErrCliDataOverPDU:
		name = "data exceeds PDU size"
	case ErrCliFunNotAvailable:
		name = "function not available"
	case ErrCliNeedPassword:
		name = "password required"
	case ErrCliInvalidPassword:
		name = "invalid password"
	case ErrCliNoPasswordToSetClear:
		name = "no password to set or clear"
	default:
		name = "unknown"
	}
	return fmt.Sprintf("s7: error '0x%04x' (%s)", int(e), name)
}

// Code returns the stable integer tag of the error.
func (e Errno) Code() int { return int(e) }

// CpuError maps an S7 CPU status code to the local error, nil for 0.
// Unknown codes surface as the generic function error.
func CpuError(code int) error {
	switch code {
	case 0x0000:
		return nil
	case 0x0005:
		return ErrCliAddressOutOfRange
	case 0x0006, 0x00DC:
		return ErrCliInvalidTransportSize
	case 0x0007:
		return ErrCliWriteDataSizeMismatch
	case 0x000A, 0xD209:
		return ErrCliItemNotAvailable
	case 0x8104:
		return ErrCliFunNotAvailable
	case 0x8500:
		return ErrCliDataOverPDU
	case 0xD241:
		return ErrCliNeedPassword
	case 0xD602:
		return ErrCliInvalidPassword
	case 0xD604, 0xD605:
		return ErrCliNoPasswordToSetClear
	default:
		return ErrS7FunctionError
	}
}
