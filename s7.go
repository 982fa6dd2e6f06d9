/*!
 * Constants which define the format of an ISO-on-TCP (RFC 1006) frame as
 * used by the S7 protocol. Every telegram on the wire is framed the same
 * way, only the S7 payload changes.
 *
 * <code>
 * <--------------------------- ISO-ON-TCP FRAME --------------------------->
 *                       <--------------- S7 PDU ------------------>
 *  +-------------+------+----------+------------+------------------+
 *  | TPKT        | COTP | Header   | Parameters | Data             |
 *  +-------------+------+----------+------------+------------------+
 *  |             |      |
 * (1)           (2)    (3)
 *
 * (1) ... TPKT = { 0x03, 0x00, lenHi, lenLo }, length covers the whole
 *         frame, TPKT included
 * (2) ... COTP data TPDU = { 0x02, 0xF0, 0x80 } (ISO 8073 class 0);
 *         connection request/confirm TPDUs are longer
 * (3) ... S7 header starts with protocol ID 0x32, job type, reference,
 *         parameter length and data length words
 *
 * IsoHeaderSize = 7  (TPKT + COTP data TPDU)
 * MinPduSize    = 16
 * MaxPduSize    = 487 (DefaultPduSizeRequested + IsoHeaderSize)
 * </code>
 */

/*
Package s7 provides a client for the Siemens S7 protocol over ISO-on-TCP
(RFC 1006, port 102). It negotiates the three-stage connection (TCP, ISO
connection request, S7 PDU length negotiation) and issues S7 function
requests: area read/write with fragmentation, multi-variable read/write,
SZL system state queries, PLC run state control, clock, session password
and block info.
*/
package s7

// proto defaults.
const (
	// IsoTCPPort default ISO-on-TCP port
	IsoTCPPort = 102
	// DefaultPduSizeRequested PDU size asked for during negotiation
	DefaultPduSizeRequested = 480
	// IsoHeaderSize TPKT(4) + COTP data TPDU(3)
	IsoHeaderSize = 7
	// MaxPduSize upper bound accepted for one ISO packet
	MaxPduSize = DefaultPduSizeRequested + IsoHeaderSize
	// MinPduSize lower bound accepted for one ISO packet
	MinPduSize = 16
)

const (
	sizeRD = 31 // read request telegram size
	sizeWR = 35 // write request telegram size, data follows

	readReplyHeaderSize  = 18 // reply overhead of a read fragment
	writeReplyHeaderSize = 35 // request overhead of a write fragment

	pduBufferSize = 2048 // session working buffer
)

// MaxVars max number of items of a multi read/write request.
const MaxVars = 20

// Result transport size tags found in S7 replies. The tag decides whether
// the length word of a reply item counts bits or bytes.
const (
	TsResBit   = 0x03
	TsResByte  = 0x04
	TsResInt   = 0x05
	TsResReal  = 0x07
	TsResOctet = 0x09
)
