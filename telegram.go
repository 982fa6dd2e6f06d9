package s7

// Telegram templates. Every operation copies its template into the
// session's working buffer and patches the copy; the arrays themselves
// are never written so independent sessions cannot corrupt each other.

// tpktISO TPKT + COTP data TPDU prefix for raw ISO exchange.
var tpktISO = [IsoHeaderSize]byte{
	0x03, 0x00, 0x00, 0x1f, // TPKT, length patched
	0x02, 0xf0, 0x80, // COTP data TPDU
}

// isoConnectionRequest ISO 8073 connection request.
// Bytes 16..17 take the local TSAP, bytes 20..21 the remote TSAP.
var isoConnectionRequest = [22]byte{
	0x03, 0x00, 0x00, 0x16, // TPKT, whole frame is 22 bytes
	0x11,       // COTP length after this byte
	0xE0,       // CR - connection request
	0x00, 0x00, // dst reference
	0x00, 0x01, // src reference
	0x00,       // class 0, no options
	0xC0,       // parameter: TPDU max size
	0x01, 0x0A, // length 1, 1024 bytes
	0xC1,       // parameter: src TSAP
	0x02,       // length 2
	0x01, 0x00, // local TSAP, patched
	0xC2,       // parameter: dst TSAP
	0x02,       // length 2
	0x01, 0x02, // remote TSAP, patched
}

// s7NegotiatePDU PDU length negotiation job.
// The requested PDU size is patched as a word at bytes 23..24.
var s7NegotiatePDU = [25]byte{
	0x03, 0x00, 0x00, 0x19, // TPKT
	0x02, 0xf0, 0x80, // COTP
	0x32,       // S7 protocol ID
	0x01,       // job
	0x00, 0x00, // redundancy identification
	0x04, 0x00, // PDU reference
	0x00, 0x08, // parameters length
	0x00, 0x00, // data length
	0xf0,       // function: setup communication
	0x00,       // reserved
	0x00, 0x01, // max AMQ calling
	0x00, 0x01, // max AMQ called
	0x01, 0xe0, // PDU length requested, patched
}

// s7ReadWrite read/write var request. The first sizeRD bytes form a read
// request, all sizeWR bytes a write request whose payload follows.
var s7ReadWrite = [sizeWR]byte{
	0x03, 0x00, 0x00, 0x1f, // TPKT, length patched for writes
	0x02, 0xf0, 0x80, // COTP
	0x32,       // S7 protocol ID
	0x01,       // job
	0x00, 0x00, // redundancy identification
	0x05, 0x00, // PDU reference
	0x00, 0x0e, // parameters length
	0x00, 0x00, // data length = size + 4, patched for writes
	0x04,         // function: 4 read var, 5 write var
	0x01,         // items count
	0x12,         // var specification
	0x0a,         // length of remaining item bytes
	0x10,         // syntax ID: S7ANY
	byte(WLByte), // transport size, patched
	0x00, 0x00,   // element count, patched
	0x00, 0x00, // DB number, patched
	byte(AreaDB),     // area code, patched
	0x00, 0x00, 0x00, // 3-byte area offset, patched
	// write request tail
	0x00,       // reserved
	0x04,       // result transport size, patched
	0x00, 0x00, // data length in bits or elements, patched
}

// s7MultiReadHeader multi var read request header, items follow.
var s7MultiReadHeader = [19]byte{
	0x03, 0x00, 0x00, 0x1f, // TPKT, length patched
	0x02, 0xf0, 0x80, // COTP
	0x32,       // S7 protocol ID
	0x01,       // job
	0x00, 0x00, // redundancy identification
	0x05, 0x00, // PDU reference
	0x00, 0x0e, // parameters length, patched
	0x00, 0x00, // data length
	0x04, // function: read var
	0x01, // items count, patched
}

// s7MultiReadItem one 12-byte item of a multi var read.
var s7MultiReadItem = [12]byte{
	0x12,         // var specification
	0x0a,         // length of remaining item bytes
	0x10,         // syntax ID: S7ANY
	byte(WLByte), // transport size, patched
	0x00, 0x00,   // element count, patched
	0x00, 0x00, // DB number, patched
	byte(AreaDB),     // area code, patched
	0x00, 0x00, 0x00, // 3-byte area offset, patched
}

// s7MultiWriteHeader multi var write request header.
var s7MultiWriteHeader = [19]byte{
	0x03, 0x00, 0x00, 0x1f, // TPKT, length patched
	0x02, 0xf0, 0x80, // COTP
	0x32,       // S7 protocol ID
	0x01,       // job
	0x00, 0x00, // redundancy identification
	0x05, 0x00, // PDU reference
	0x00, 0x0e, // parameters length, patched
	0x00, 0x00, // data length, patched
	0x05, // function: write var
	0x01, // items count, patched
}

// s7MultiWriteParam one 12-byte parameter item of a multi var write.
var s7MultiWriteParam = [12]byte{
	0x12,         // var specification
	0x0a,         // length of remaining item bytes
	0x10,         // syntax ID: S7ANY
	byte(WLByte), // transport size, patched
	0x00, 0x00,   // element count, patched
	0x00, 0x00, // DB number, patched
	byte(AreaDB),     // area code, patched
	0x00, 0x00, 0x00, // 3-byte area offset, patched
}

// s7ColdStart PLC cold start request.
var s7ColdStart = [39]byte{
	0x03, 0x00, 0x00, 0x27,
	0x02, 0xf0, 0x80,
	0x32, 0x01, 0x00, 0x00, 0x0f, 0x00, 0x00, 0x16, 0x00, 0x00,
	0x28, // PI service
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xfd, 0x00, 0x02, 0x43, 0x20,
	0x09, 0x50, 0x5f, 0x50, 0x52, 0x4f, 0x47, 0x52, 0x41, 0x4d, // "P_PROGRAM"
}

// s7HotStart PLC hot start request.
var s7HotStart = [37]byte{
	0x03, 0x00, 0x00, 0x25,
	0x02, 0xf0, 0x80,
	0x32, 0x01, 0x00, 0x00, 0x0c, 0x00, 0x00, 0x14, 0x00, 0x00,
	0x28, // PI service
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xfd, 0x00, 0x00,
	0x09, 0x50, 0x5f, 0x50, 0x52, 0x4f, 0x47, 0x52, 0x41, 0x4d, // "P_PROGRAM"
}

// s7Stop PLC stop request.
var s7Stop = [33]byte{
	0x03, 0x00, 0x00, 0x21,
	0x02, 0xf0, 0x80,
	0x32, 0x01, 0x00, 0x00, 0x0e, 0x00, 0x00, 0x10, 0x00, 0x00,
	0x29, // PI service: stop
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x09, 0x50, 0x5f, 0x50, 0x52, 0x4f, 0x47, 0x52, 0x41, 0x4d, // "P_PROGRAM"
}

// s7GetStatus PLC run state query (SZL 0x0424).
var s7GetStatus = [33]byte{
	0x03, 0x00, 0x00, 0x21,
	0x02, 0xf0, 0x80,
	0x32, 0x07, 0x00, 0x00, 0x2c, 0x00, 0x00, 0x08, 0x00, 0x08,
	0x00, 0x01, 0x12, 0x04, 0x11, 0x44, 0x01, 0x00,
	0xff, 0x09, 0x00, 0x04,
	0x04, 0x24, // SZL ID 0x0424
	0x00, 0x00,
}

// s7GetClock clock read request.
var s7GetClock = [29]byte{
	0x03, 0x00, 0x00, 0x1d,
	0x02, 0xf0, 0x80,
	0x32, 0x07, 0x00, 0x00, 0x38, 0x00, 0x00, 0x08, 0x00, 0x04,
	0x00, 0x01, 0x12, 0x04, 0x11, 0x47, 0x01, 0x00,
	0x0a, 0x00, 0x00, 0x00,
}

// s7SetClock clock write request; the date-time record is patched at
// bytes 30..38.
var s7SetClock = [39]byte{
	0x03, 0x00, 0x00, 0x27,
	0x02, 0xf0, 0x80,
	0x32, 0x07, 0x00, 0x00, 0x89, 0x03, 0x00, 0x08, 0x00, 0x0e,
	0x00, 0x01, 0x12, 0x04, 0x11, 0x47, 0x02, 0x00,
	0xff, 0x09, 0x00, 0x0a,
	0x00,       // reserved
	0x19, 0x13, // year, patched
	0x12, 0x06, 0x17, 0x37, 0x13, // month..second, patched
	0x00, 0x01, // msec + day of week, patched
}

// s7SetPassword session password request; the 8 encoded bytes go to 29..36.
var s7SetPassword = [37]byte{
	0x03, 0x00, 0x00, 0x25,
	0x02, 0xf0, 0x80,
	0x32, 0x07, 0x00, 0x00, 0x27, 0x00, 0x00, 0x08, 0x00, 0x0c,
	0x00, 0x01, 0x12, 0x04, 0x11, 0x45, 0x01, 0x00,
	0xff, 0x09, 0x00, 0x08,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // encoded password
}

// s7ClearPassword session password clear request.
var s7ClearPassword = [29]byte{
	0x03, 0x00, 0x00, 0x1d,
	0x02, 0xf0, 0x80,
	0x32, 0x07, 0x00, 0x00, 0x29, 0x00, 0x00, 0x08, 0x00, 0x04,
	0x00, 0x01, 0x12, 0x04, 0x11, 0x45, 0x02, 0x00,
	0x0a, 0x00, 0x00, 0x00,
}

// s7BlockInfo block info request. Byte 30 takes the block type character,
// bytes 31..35 the 5-digit ASCII block number.
var s7BlockInfo = [37]byte{
	0x03, 0x00, 0x00, 0x25,
	0x02, 0xf0, 0x80,
	0x32, 0x07, 0x00, 0x00, 0x05, 0x00, 0x00, 0x08, 0x00, 0x0c,
	0x00, 0x01, 0x12, 0x04, 0x11, 0x43, 0x03, 0x00,
	0xff, 0x09, 0x00, 0x08,
	0x30, 0x41, // "0" + block type
	0x30, 0x30, 0x30, 0x30, 0x30, // ASCII block number
	0x41, // "A"
}

// s7SZLFirst first SZL slice request. Sequence word at 11, ID word at 29,
// index word at 31.
var s7SZLFirst = [33]byte{
	0x03, 0x00, 0x00, 0x21,
	0x02, 0xf0, 0x80,
	0x32, 0x07, 0x00, 0x00,
	0x05, 0x00, // sequence out, patched
	0x00, 0x08, 0x00, 0x08,
	0x00, 0x01, 0x12, 0x04, 0x11, 0x44, 0x01, 0x00,
	0xff, 0x09, 0x00, 0x04,
	0x00, 0x00, // SZL ID, patched
	0x00, 0x00, // SZL index, patched
}

// s7SZLNext follow-up SZL slice request. Sequence word at 11, the slice
// number echoed from the PLC at byte 24.
var s7SZLNext = [33]byte{
	0x03, 0x00, 0x00, 0x21,
	0x02, 0xf0, 0x80,
	0x32, 0x07, 0x00, 0x00,
	0x06, 0x00, // sequence out, patched
	0x00, 0x0c, 0x00, 0x04,
	0x00, 0x01, 0x12, 0x08, 0x12, 0x44, 0x01,
	0x01, // slice sequence in, patched
	0x00, 0x00, 0x00, 0x00,
	0x0a, 0x00, 0x00, 0x00,
}
