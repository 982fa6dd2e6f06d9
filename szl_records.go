package s7

import (
	"strings"
	"time"
)

// Decoders for the SZL payload shapes the convenience getters below
// request. They are pure byte-slice parsers; the offsets follow the
// record layouts the S7 family documents for the respective SZL IDs.

// charsAt extracts a fixed-width character field, trimming padding.
func charsAt(b []byte, pos, length int) string {
	return strings.TrimRight(string(b[pos:pos+length]), " \x00")
}

// CpuInfo describes the CPU module, from SZL 0x001C.
type CpuInfo struct {
	ModuleTypeName string
	SerialNumber   string
	ASName         string
	Copyright      string
	ModuleName     string
}

// CpuInfoAt decodes a CpuInfo record at offset pos.
func CpuInfoAt(b []byte, pos int) *CpuInfo {
	return &CpuInfo{
		ModuleTypeName: charsAt(b, pos+172, 32),
		SerialNumber:   charsAt(b, pos+138, 24),
		ASName:         charsAt(b, pos+2, 24),
		Copyright:      charsAt(b, pos+104, 26),
		ModuleName:     charsAt(b, pos+36, 24),
	}
}

// OrderCode is the MLFB order number of the CPU, from SZL 0x0011.
type OrderCode struct {
	Code string
	V1   byte
	V2   byte
	V3   byte
}

// OrderCodeAt decodes an OrderCode record at offset pos; size is the
// total SZL data size, the firmware version sits in its last 3 bytes.
func OrderCodeAt(b []byte, pos, size int) *OrderCode {
	return &OrderCode{
		Code: charsAt(b, pos+2, 20),
		V1:   b[pos+size-3],
		V2:   b[pos+size-2],
		V3:   b[pos+size-1],
	}
}

// CpInfo describes a communication processor, from SZL 0x0131 index 1.
type CpInfo struct {
	MaxPduLength   int
	MaxConnections int
	MaxMpiRate     int
	MaxBusRate     int
}

// CpInfoAt decodes a CpInfo record at offset pos.
func CpInfoAt(b []byte, pos int) *CpInfo {
	return &CpInfo{
		MaxPduLength:   int(GetWordAt(b, pos+2)),
		MaxConnections: int(GetWordAt(b, pos+4)),
		MaxMpiRate:     int(GetWordAt(b, pos+6)),
		MaxBusRate:     int(GetWordAt(b, pos+10)),
	}
}

// Protection reports the CPU protection levels, from SZL 0x0232 index 4.
type Protection struct {
	SchSchal int // protection level set with the mode selector
	SchPar   int // parameterized protection level
	SchRel   int // valid protection level
	BartSch  int // mode selector position
	AnlSch   int // startup switch position
}

// ProtectionAt decodes a Protection record at offset pos.
func ProtectionAt(b []byte, pos int) *Protection {
	return &Protection{
		SchSchal: int(GetWordAt(b, pos+2)),
		SchPar:   int(GetWordAt(b, pos+4)),
		SchRel:   int(GetWordAt(b, pos+6)),
		BartSch:  int(GetWordAt(b, pos+8)),
		AnlSch:   int(GetWordAt(b, pos+10)),
	}
}

// BlockInfo is the header of one block as delivered by a block info
// query.
type BlockInfo struct {
	BlkFlags  byte
	BlkLang   byte
	BlkType   byte
	BlkNumber int
	LoadSize  int
	CodeDate  time.Time
	IntfDate  time.Time
	SBBLength int
	LocalData int
	MC7Size   int // the real size in bytes
	Author    string
	Family    string
	Header    string
	Version   byte
	Checksum  int
}

// siemensTimestamp converts a day count since 1984-01-01 into a date.
func siemensTimestamp(days int) time.Time {
	return time.Date(1984, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
}

// BlockInfoAt decodes a block header at offset pos.
func BlockInfoAt(b []byte, pos int) *BlockInfo {
	return &BlockInfo{
		BlkFlags:  b[pos+3],
		BlkLang:   b[pos+4],
		BlkType:   b[pos+5],
		BlkNumber: int(GetWordAt(b, pos+6)),
		LoadSize:  int(GetDWordAt(b, pos+8)),
		CodeDate:  siemensTimestamp(int(GetWordAt(b, pos+20))),
		IntfDate:  siemensTimestamp(int(GetWordAt(b, pos+26))),
		SBBLength: int(GetWordAt(b, pos+28)),
		LocalData: int(GetWordAt(b, pos+32)),
		MC7Size:   int(GetWordAt(b, pos+34)),
		Author:    charsAt(b, pos+36, 8),
		Family:    charsAt(b, pos+44, 8),
		Header:    charsAt(b, pos+52, 8),
		Version:   b[pos+60],
		Checksum:  int(GetWordAt(b, pos+62)),
	}
}

// GetCpuInfo reads SZL 0x001C and decodes the CPU identification.
func (sf *Client) GetCpuInfo() (*CpuInfo, error) {
	szl, err := sf.ReadSZL(0x001C, 0x0000, 1024)
	if err != nil {
		return nil, err
	}
	return CpuInfoAt(szl.Data, 0), nil
}

// GetOrderCode reads SZL 0x0011 and decodes the order code.
func (sf *Client) GetOrderCode() (*OrderCode, error) {
	szl, err := sf.ReadSZL(0x0011, 0x0000, 1024)
	if err != nil {
		return nil, err
	}
	return OrderCodeAt(szl.Data, 0, szl.DataSize()), nil
}

// GetCpInfo reads SZL 0x0131 index 1 and decodes the CP capabilities.
func (sf *Client) GetCpInfo() (*CpInfo, error) {
	szl, err := sf.ReadSZL(0x0131, 0x0001, 1024)
	if err != nil {
		return nil, err
	}
	return CpInfoAt(szl.Data, 0), nil
}

// GetProtection reads SZL 0x0232 index 4 and decodes the protection
// levels.
func (sf *Client) GetProtection() (*Protection, error) {
	szl, err := sf.ReadSZL(0x0232, 0x0004, 256)
	if err != nil {
		return nil, err
	}
	return ProtectionAt(szl.Data, 0), nil
}
