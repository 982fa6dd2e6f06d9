package s7

// SZL is one accumulated System State List entry, grown slice by slice.
type SZL struct {
	ID     uint16
	Index  uint16
	LenHdr uint16 // length of one record header
	NDR    uint16 // number of data records
	Data   []byte
}

// DataSize returns the accumulated byte count.
func (szl *SZL) DataSize() int { return len(szl.Data) }

// ReadSZL fetches the System State List entry id/index. The PLC delivers
// the entry in slices; the loop keeps requesting follow-ups, echoing the
// slice sequence number, until the PLC signals the last slice.
// bufferSize bounds the accumulated data.
func (sf *Client) ReadSZL(id, index uint16, bufferSize int) (*SZL, error) {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	if !sf.connected {
		return nil, ErrClosedConnection
	}
	sf.lastError = 0

	szl := &SZL{ID: id, Index: index, Data: make([]byte, 0, bufferSize)}
	var seqIn byte
	var seqOut uint16
	first := true
	for {
		if first {
			copy(sf.pdu[:], s7SZLFirst[:])
			seqOut++
			SetWordAt(sf.pdu[:], 11, seqOut)
			SetWordAt(sf.pdu[:], 29, id)
			SetWordAt(sf.pdu[:], 31, index)
			if err := sf.sendPacket(sf.pdu[:len(s7SZLFirst)]); err != nil {
				return nil, sf.setErr(err)
			}
		} else {
			copy(sf.pdu[:], s7SZLNext[:])
			seqOut++
			SetWordAt(sf.pdu[:], 11, seqOut)
			sf.pdu[24] = seqIn
			if err := sf.sendPacket(sf.pdu[:len(s7SZLNext)]); err != nil {
				return nil, sf.setErr(err)
			}
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
		var dataSZL, from int
		if first {
			// the first slice carries the SZL header: skip the echoed
			// ID/index words, capture record layout
			dataSZL = int(GetWordAt(sf.pdu[:], 31)) - 8
			szl.LenHdr = GetWordAt(sf.pdu[:], 37)
			szl.NDR = GetWordAt(sf.pdu[:], 39)
			from = 41
		} else {
			dataSZL = int(GetWordAt(sf.pdu[:], 31))
			from = 37
		}
		if dataSZL < 0 || from+dataSZL > length {
			return nil, sf.setErr(ErrCliInvalidPlcAnswer)
		}
		if len(szl.Data)+dataSZL > bufferSize {
			return nil, sf.setErr(ErrS7BufferTooSmall)
		}
		szl.Data = append(szl.Data, sf.pdu[from:from+dataSZL]...)
		seqIn = sf.pdu[24]
		first = false
		if sf.pdu[26] == 0x00 { // last slice
			return szl, nil
		}
	}
}
