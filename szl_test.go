package s7

import (
	"bytes"
	"testing"
)

func szlFirstReply() []byte {
	// first slice: 12 data bytes, more to follow
	resp := make([]byte, 53)
	resp[0] = 0x03
	SetWordAt(resp, 2, 53)
	copy(resp[4:7], []byte{0x02, 0xf0, 0x80})
	resp[7] = 0x32
	resp[8] = 0x07
	resp[24] = 0x02 // slice sequence
	resp[26] = 0x01 // more slices follow
	resp[29] = 0xff
	resp[30] = 0x09
	SetWordAt(resp, 31, 20) // 8 header bytes + 12 data bytes
	SetWordAt(resp, 33, 0x0011)
	SetWordAt(resp, 37, 28) // record header length
	SetWordAt(resp, 39, 1)  // one record
	for i := 0; i < 12; i++ {
		resp[41+i] = byte(i + 1)
	}
	return resp
}

func szlNextReply() []byte {
	// last slice: 8 data bytes
	resp := make([]byte, 45)
	resp[0] = 0x03
	SetWordAt(resp, 2, 45)
	copy(resp[4:7], []byte{0x02, 0xf0, 0x80})
	resp[7] = 0x32
	resp[8] = 0x07
	resp[24] = 0x03
	resp[26] = 0x00 // last slice
	resp[29] = 0xff
	resp[30] = 0x09
	SetWordAt(resp, 31, 8)
	for i := 0; i < 8; i++ {
		resp[37+i] = byte(i + 13)
	}
	return resp
}

func TestReadSZL(t *testing.T) {
	client, _ := connectedClient(t,
		exchange{
			"szl first",
			[]byte{
				0x03, 0x00, 0x00, 0x21, 0x02, 0xf0, 0x80,
				0x32, 0x07, 0x00, 0x00,
				0x00, 0x01, // sequence 1
				0x00, 0x08, 0x00, 0x08,
				0x00, 0x01, 0x12, 0x04, 0x11, 0x44, 0x01, 0x00,
				0xff, 0x09, 0x00, 0x04,
				0x00, 0x11, // SZL ID 0x0011
				0x00, 0x00, // index 0
			},
			szlFirstReply(),
		},
		exchange{
			"szl next",
			[]byte{
				0x03, 0x00, 0x00, 0x21, 0x02, 0xf0, 0x80,
				0x32, 0x07, 0x00, 0x00,
				0x00, 0x02, // sequence 2
				0x00, 0x0c, 0x00, 0x04,
				0x00, 0x01, 0x12, 0x08, 0x12, 0x44, 0x01,
				0x02, // echoed slice sequence
				0x00, 0x00, 0x00, 0x00,
				0x0a, 0x00, 0x00, 0x00,
			},
			szlNextReply(),
		},
	)
	defer client.Close()

	szl, err := client.ReadSZL(0x0011, 0x0000, 1024)
	if err != nil {
		t.Fatalf("ReadSZL() error = %v, wantErr %v", err, nil)
	}
	if szl.DataSize() != 20 {
		t.Errorf("DataSize() = %v, want %v", szl.DataSize(), 20)
	}
	want := make([]byte, 20)
	for i := range want {
		want[i] = byte(i + 1)
	}
	if !bytes.Equal(szl.Data, want) {
		t.Errorf("Data = % x, want % x", szl.Data, want)
	}
	if szl.LenHdr != 28 || szl.NDR != 1 {
		t.Errorf("LenHdr/NDR = %v/%v, want 28/1", szl.LenHdr, szl.NDR)
	}
}

func TestReadSZLSingleSlice(t *testing.T) {
	resp := szlFirstReply()
	resp[26] = 0x00 // everything in one slice
	client, m := connectedClient(t, exchange{"szl first", nil, resp})
	defer client.Close()

	szl, err := client.ReadSZL(0x0011, 0x0000, 1024)
	if err != nil {
		t.Fatalf("ReadSZL() error = %v, wantErr %v", err, nil)
	}
	if szl.DataSize() != 12 {
		t.Errorf("DataSize() = %v, want %v", szl.DataSize(), 12)
	}
	if got := len(m.requests()); got != 3 {
		t.Errorf("requests = %v, want %v", got, 3)
	}
}

func TestReadSZLFunctionError(t *testing.T) {
	resp := szlFirstReply()
	SetWordAt(resp, 27, 0x8104) // function not available
	client, _ := connectedClient(t, exchange{"szl first", nil, resp})
	defer client.Close()

	if _, err := client.ReadSZL(0x0424, 0x0000, 1024); err != ErrS7FunctionError {
		t.Errorf("ReadSZL() error = %v, want %v", err, ErrS7FunctionError)
	}
}

func TestReadSZLBufferTooSmall(t *testing.T) {
	client, _ := connectedClient(t, exchange{"szl first", nil, szlFirstReply()})
	defer client.Close()

	if _, err := client.ReadSZL(0x0011, 0x0000, 8); err != ErrS7BufferTooSmall {
		t.Errorf("ReadSZL() error = %v, want %v", err, ErrS7BufferTooSmall)
	}
}
