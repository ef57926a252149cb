package pcapseed

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/whitaker-io/butterfly"
)

// writeClassicPcap hand-builds a minimal classic-format pcap file (24-byte
// global header, linktype raw/ethernet, followed by one 16-byte record
// header plus payload per packet). gopacket's pcapgo.Reader only returns
// ReadPacketData's raw bytes, so the link-layer type and payload shape
// never need to resemble a real ethernet frame for this round trip.
func writeClassicPcap(t *testing.T, path string, packets [][]byte) {
	t.Helper()

	buf := &bytes.Buffer{}

	binary.Write(buf, binary.LittleEndian, uint32(0xa1b2c3d4)) // magic
	binary.Write(buf, binary.LittleEndian, uint16(2))          // version major
	binary.Write(buf, binary.LittleEndian, uint16(4))          // version minor
	binary.Write(buf, binary.LittleEndian, int32(0))           // thiszone
	binary.Write(buf, binary.LittleEndian, uint32(0))          // sigfigs
	binary.Write(buf, binary.LittleEndian, uint32(65535))      // snaplen
	binary.Write(buf, binary.LittleEndian, uint32(1))          // network: LINKTYPE_ETHERNET

	for _, p := range packets {
		binary.Write(buf, binary.LittleEndian, uint32(0))        // ts_sec
		binary.Write(buf, binary.LittleEndian, uint32(0))        // ts_usec
		binary.Write(buf, binary.LittleEndian, uint32(len(p)))   // incl_len
		binary.Write(buf, binary.LittleEndian, uint32(len(p)))   // orig_len
		buf.Write(p)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestLoadFileReadsPacketsInOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "capture.pcap")

	want := [][]byte{{0x01, 0x02}, {0x03}, {0x04, 0x05, 0x06}}
	writeClassicPcap(t, path, want)

	seq, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if seq.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", seq.Len(), len(want))
	}

	for i, raw := range want {
		bc, ok := seq.At(i).(butterfly.ByteCapable)
		if !ok {
			t.Fatalf("packet %d is not ByteCapable", i)
		}
		if !bytes.Equal(bc.Bytes(), raw) {
			t.Fatalf("packet %d = %v, want %v", i, bc.Bytes(), raw)
		}
	}
}

func TestLoadFileUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "capture.unknown")
	writeClassicPcap(t, path, [][]byte{{0x01}})

	// LoadFile itself doesn't filter by extension (LoadDir does); it
	// tries the classic pcapgo.Reader path for anything not .pcapng.
	seq, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if seq.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", seq.Len())
	}
}

func TestLoadDirSkipsUnsupportedAndEmptyFiles(t *testing.T) {
	dir := t.TempDir()

	writeClassicPcap(t, filepath.Join(dir, "a.pcap"), [][]byte{{0x01}, {0x02}})
	writeClassicPcap(t, filepath.Join(dir, "b.pcap"), [][]byte{{0x03}})
	writeClassicPcap(t, filepath.Join(dir, "empty.pcap"), nil)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	writeClassicPcap(t, filepath.Join(sub, "c.pcap"), [][]byte{{0x04}})

	seeds, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}

	if len(seeds) != 3 {
		t.Fatalf("LoadDir returned %d seeds, want 3 (a, b, nested/c; notes.txt and empty.pcap skipped)", len(seeds))
	}

	total := 0
	for _, seq := range seeds {
		total += seq.Len()
	}
	if total != 4 {
		t.Fatalf("total packets across seeds = %d, want 4", total)
	}
}

func TestLoadDirMissingDirectory(t *testing.T) {
	if _, err := LoadDir(filepath.Join(t.TempDir(), "does-not-exist")); err == nil {
		t.Fatal("expected an error walking a missing directory")
	}
}
