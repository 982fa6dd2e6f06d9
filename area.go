package s7

// effectiveType applies the area override: counters and timers are always
// transferred with their own transport type.
func effectiveType(area AreaType, typ DataType) DataType {
	switch area {
	case AreaCT:
		return WLCounter
	case AreaTM:
		return WLTimer
	default:
		return typ
	}
}

// ReadArea reads amount elements of the given transport type from a data
// area into buffer, fragmenting the transfer across as many telegrams as
// the negotiated PDU length requires.
//
// Bit reads transfer a single bit per call. All other types except
// counters and timers are flattened to byte-wise transfers on the wire; the caller
// re-interprets the bytes. For counters and timers start is the cell
// number and every element is two bytes wide, for bits it is the bit
// address, for everything else the byte address.
func (sf *Client) ReadArea(area AreaType, db, start, amount int, typ DataType, buffer []byte) error {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	if !sf.connected {
		return ErrClosedConnection
	}
	sf.lastError = 0

	_type := effectiveType(area, typ)
	wordSize := _type.ByteLength()
	if wordSize == 0 {
		return sf.setErr(ErrCliInvalidWordLen)
	}

	switch {
	case _type == WLBit:
		amount = 1 // only 1 bit can be transferred at a time
	case _type != WLCounter && _type != WLTimer:
		amount *= wordSize
		wordSize = 1
		_type = WLByte
	}
	if len(buffer) < amount*wordSize {
		return sf.setErr(ErrS7BufferTooSmall)
	}

	maxElements := (sf.pduLength - readReplyHeaderSize) / wordSize
	offset := 0
	for amount > 0 {
		num := amount
		if num > maxElements {
			num = maxElements
		}
		size := num * wordSize

		copy(sf.pdu[:], s7ReadWrite[:sizeRD])
		sf.pdu[27] = byte(area)
		if area == AreaDB {
			SetWordAt(sf.pdu[:], 25, uint16(db))
		}
		address := start
		if _type == WLBit || _type == WLCounter || _type == WLTimer {
			sf.pdu[22] = byte(_type)
		} else {
			address = start << 3 // bit address
		}
		SetWordAt(sf.pdu[:], 23, uint16(num))
		sf.pdu[28] = byte(address >> 16)
		sf.pdu[29] = byte(address >> 8)
		sf.pdu[30] = byte(address)

		if err := sf.sendPacket(sf.pdu[:sizeRD]); err != nil {
			return sf.setErr(err)
		}
		length, err := sf.recvIsoPacket()
		if err != nil {
			return sf.setErr(err)
		}
		if length < 25 {
			return sf.setErr(ErrIsoInvalidDataSize)
		}
		if sf.pdu[21] != 0xff {
			return sf.setErr(CpuError(int(sf.pdu[21])))
		}
		copy(buffer[offset:], sf.pdu[25:25+size])

		offset += size
		amount -= num
		start += num * wordSize
	}
	return nil
}

// WriteArea writes amount elements of the given transport type from
// buffer into a data area, fragmenting like ReadArea.
func (sf *Client) WriteArea(area AreaType, db, start, amount int, typ DataType, buffer []byte) error {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	if !sf.connected {
		return ErrClosedConnection
	}
	sf.lastError = 0

	_type := effectiveType(area, typ)
	wordSize := _type.ByteLength()
	if wordSize == 0 {
		return sf.setErr(ErrCliInvalidWordLen)
	}

	switch {
	case _type == WLBit:
		amount = 1
	case _type != WLCounter && _type != WLTimer:
		amount *= wordSize
		wordSize = 1
		_type = WLByte
	}
	if len(buffer) < amount*wordSize {
		return sf.setErr(ErrS7BufferTooSmall)
	}

	maxElements := (sf.pduLength - writeReplyHeaderSize) / wordSize
	offset := 0
	for amount > 0 {
		num := amount
		if num > maxElements {
			num = maxElements
		}
		dataSize := num * wordSize
		isoSize := sizeWR + dataSize

		copy(sf.pdu[:], s7ReadWrite[:sizeWR])
		SetWordAt(sf.pdu[:], 2, uint16(isoSize))
		SetWordAt(sf.pdu[:], 15, uint16(dataSize+4))
		sf.pdu[17] = 0x05 // write var
		sf.pdu[27] = byte(area)
		if area == AreaDB {
			SetWordAt(sf.pdu[:], 25, uint16(db))
		}
		address := start
		bitLength := num
		if _type == WLBit || _type == WLCounter || _type == WLTimer {
			sf.pdu[22] = byte(_type)
		} else {
			address = start << 3 // bit address
			bitLength = dataSize << 3
		}
		SetWordAt(sf.pdu[:], 23, uint16(num))
		sf.pdu[28] = byte(address >> 16)
		sf.pdu[29] = byte(address >> 8)
		sf.pdu[30] = byte(address)
		switch _type {
		case WLBit:
			sf.pdu[32] = TsResBit
		case WLCounter, WLTimer:
			sf.pdu[32] = TsResOctet
		default:
			sf.pdu[32] = TsResByte
		}
		// in bits for plain transfers, in elements for bit/counter/timer
		SetWordAt(sf.pdu[:], 33, uint16(bitLength))
		copy(sf.pdu[sizeWR:], buffer[offset:offset+dataSize])

		if err := sf.sendPacket(sf.pdu[:isoSize]); err != nil {
			return sf.setErr(err)
		}
		length, err := sf.recvIsoPacket()
		if err != nil {
			return sf.setErr(err)
		}
		if length != 22 {
			return sf.setErr(ErrIsoInvalidPDU)
		}
		if sf.pdu[21] != 0xff {
			return sf.setErr(CpuError(int(sf.pdu[21])))
		}

		offset += dataSize
		amount -= num
		start += num * wordSize
	}
	return nil
}

// ReadAreaRaw reads amount untyped elements, deriving the transport type
// from the area: counter or timer cells for those areas, plain bytes
// otherwise.
func (sf *Client) ReadAreaRaw(area AreaType, db, start, amount int, buffer []byte) error {
	return sf.ReadArea(area, db, start, amount, rawType(area), buffer)
}

// WriteAreaRaw writes amount untyped elements, deriving the transport
// type like ReadAreaRaw.
func (sf *Client) WriteAreaRaw(area AreaType, db, start, amount int, buffer []byte) error {
	return sf.WriteArea(area, db, start, amount, rawType(area), buffer)
}

func rawType(area AreaType) DataType {
	switch area {
	case AreaCT:
		return WLCounter
	case AreaTM:
		return WLTimer
	default:
		return WLByte
	}
}
