package s7

import (
	"testing"
)

func TestOrderCodeAt(t *testing.T) {
	data := make([]byte, 32)
	copy(data[2:], "6ES7 315-2EH14-0AB0 ")
	data[29] = 3
	data[30] = 2
	data[31] = 6
	oc := OrderCodeAt(data, 0, len(data))
	if oc.Code != "6ES7 315-2EH14-0AB0" {
		t.Errorf("Code = %q, want 6ES7 315-2EH14-0AB0", oc.Code)
	}
	if oc.V1 != 3 || oc.V2 != 2 || oc.V3 != 6 {
		t.Errorf("version = %d.%d.%d, want 3.2.6", oc.V1, oc.V2, oc.V3)
	}
}

func TestCpuInfoAt(t *testing.T) {
	data := make([]byte, 208)
	for i := range data {
		data[i] = ' '
	}
	copy(data[2:], "S7300/ET200M station")
	copy(data[36:], "CPU 315-2 PN/DP")
	copy(data[138:], "S C-X4U421302009")
	copy(data[172:], "CPU 315-2 PN/DP")
	info := CpuInfoAt(data, 0)
	if info.ASName != "S7300/ET200M station" {
		t.Errorf("ASName = %q", info.ASName)
	}
	if info.ModuleName != "CPU 315-2 PN/DP" {
		t.Errorf("ModuleName = %q", info.ModuleName)
	}
	if info.SerialNumber != "S C-X4U421302009" {
		t.Errorf("SerialNumber = %q", info.SerialNumber)
	}
	if info.ModuleTypeName != "CPU 315-2 PN/DP" {
		t.Errorf("ModuleTypeName = %q", info.ModuleTypeName)
	}
}

func TestCpInfoAt(t *testing.T) {
	data := make([]byte, 16)
	SetWordAt(data, 2, 480)
	SetWordAt(data, 4, 16)
	SetWordAt(data, 6, 187)
	SetWordAt(data, 10, 12000)
	info := CpInfoAt(data, 0)
	if info.MaxPduLength != 480 || info.MaxConnections != 16 ||
		info.MaxMpiRate != 187 || info.MaxBusRate != 12000 {
		t.Errorf("CpInfoAt() = %+v", info)
	}
}

func TestProtectionAt(t *testing.T) {
	data := make([]byte, 16)
	SetWordAt(data, 2, 1)
	SetWordAt(data, 4, 2)
	SetWordAt(data, 6, 3)
	SetWordAt(data, 8, 1)
	SetWordAt(data, 10, 2)
	p := ProtectionAt(data, 0)
	if p.SchSchal != 1 || p.SchPar != 2 || p.SchRel != 3 || p.BartSch != 1 || p.AnlSch != 2 {
		t.Errorf("ProtectionAt() = %+v", p)
	}
}

func TestGetOrderCode(t *testing.T) {
	// single-slice SZL 0x0011 carrying a 32 byte record
	resp := make([]byte, 73)
	resp[0] = 0x03
	SetWordAt(resp, 2, 73)
	copy(resp[4:7], []byte{0x02, 0xf0, 0x80})
	resp[7] = 0x32
	resp[8] = 0x07
	resp[26] = 0x00 // single slice
	resp[29] = 0xff
	SetWordAt(resp, 31, 40) // 8 header bytes + 32 data bytes
	SetWordAt(resp, 37, 32)
	SetWordAt(resp, 39, 1)
	copy(resp[41+2:], "6ES7 151-8AB01-0AB0 ")
	resp[41+29] = 1
	resp[41+30] = 0
	resp[41+31] = 2

	client, _ := connectedClient(t, exchange{"szl order code", nil, resp})
	defer client.Close()

	oc, err := client.GetOrderCode()
	if err != nil {
		t.Fatalf("GetOrderCode() error = %v, wantErr %v", err, nil)
	}
	if oc.Code != "6ES7 151-8AB01-0AB0" {
		t.Errorf("Code = %q", oc.Code)
	}
	if oc.V1 != 1 || oc.V2 != 0 || oc.V3 != 2 {
		t.Errorf("version = %d.%d.%d, want 1.0.2", oc.V1, oc.V2, oc.V3)
	}
}
