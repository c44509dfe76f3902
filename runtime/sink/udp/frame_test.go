package udp

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"dirpx.dev/dcast/apis/command"
	"dirpx.dev/dcast/apis/level"
	"dirpx.dev/dcast/apis/record"
)

// frameFixture freezes the wire layout. The receiver parses exactly
// these bytes; any mismatch is a protocol break, not a test to update.
var frameFixture = []byte{
	0x01, 0x00, 0x00, 0x00, 't', // auth_token
	0x01, 0x00, 0x00, 0x00, 'a', // app_id
	0x02,                          // level: info
	0x01, 0x00, 0x00, 0x00, 'x', // target
	0x02, 0x00, 0x00, 0x00, 'h', 'i', // message
	0x00,                                           // file: absent
	0x00,                                           // line: absent
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // unix_nanos: 0
}

func TestAppendFrame_Fixture(t *testing.T) {
	r := &record.Record{
		Level:   level.Info,
		Target:  "x",
		Message: "hi",
	}
	got := AppendFrame(nil, r, "t", "a")
	if !bytes.Equal(got, frameFixture) {
		t.Fatalf("frame = % x\nwant    % x", got, frameFixture)
	}
}

func TestAppendFrame_OptionalFieldsPresent(t *testing.T) {
	ts := time.Unix(0, 1234567890)
	r := &record.Record{
		Level:   level.Error,
		Target:  "engine",
		Message: "boom",
		File:    "main.go",
		Line:    7,
		Time:    ts,
	}
	got := AppendFrame(nil, r, "tok", "app")

	want := []byte{0x03, 0x00, 0x00, 0x00}
	want = append(want, "tok"...)
	want = append(want, 0x03, 0x00, 0x00, 0x00)
	want = append(want, "app"...)
	want = append(want, 0x04) // error
	want = append(want, 0x06, 0x00, 0x00, 0x00)
	want = append(want, "engine"...)
	want = append(want, 0x04, 0x00, 0x00, 0x00)
	want = append(want, "boom"...)
	want = append(want, 0x01, 0x07, 0x00, 0x00, 0x00)
	want = append(want, "main.go"...)
	want = append(want, 0x01, 0x07, 0x00, 0x00, 0x00)               // line present, 7
	want = append(want, 0xd2, 0x02, 0x96, 0x49, 0x00, 0x00, 0x00, 0x00) // 1234567890 LE
	if !bytes.Equal(got, want) {
		t.Fatalf("frame = % x\nwant    % x", got, want)
	}
}

func TestAppendFrame_RecordIdentityWins(t *testing.T) {
	r := &record.Record{
		Level:     level.Info,
		Target:    "x",
		Message:   "m",
		AuthToken: "override",
		AppID:     "app2",
	}
	got := AppendFrame(nil, r, "sink-token", "sink-app")
	if !bytes.Contains(got, []byte("override")) || !bytes.Contains(got, []byte("app2")) {
		t.Fatalf("frame does not carry the record's identity: % x", got)
	}
	if bytes.Contains(got, []byte("sink-token")) {
		t.Fatalf("frame carries the sink identity despite a record override")
	}
}

func TestSink_RoundTrip(t *testing.T) {
	// A local receiver verifies that what the sink sends parses back to
	// the same record fields.
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("ListenPacket: %v", err)
	}
	defer pc.Close()

	s, err := New("udp", pc.LocalAddr().String(), "t", "a")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close(context.Background())

	r := &record.Record{
		Level:   level.Warn,
		Target:  "engine::net",
		Message: "retrying",
		File:    "conn.go",
		Line:    99,
		Time:    time.Unix(12, 345).UTC(),
	}
	if err := s.WriteRecord(context.Background(), command.Write(r)); err != nil {
		t.Fatalf("WriteRecord: %v", err)
	}

	buf := make([]byte, 1024)
	_ = pc.SetReadDeadline(time.Now().Add(5 * time.Second))
	n, _, err := pc.ReadFrom(buf)
	if err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}

	want := AppendFrame(nil, r, "t", "a")
	if !bytes.Equal(buf[:n], want) {
		t.Fatalf("datagram = % x\nwant      % x", buf[:n], want)
	}
}

func TestNew_EmptyAddr(t *testing.T) {
	if _, err := New("udp", "", "", ""); err != ErrNoAddr {
		t.Fatalf("err = %v, want ErrNoAddr", err)
	}
}
