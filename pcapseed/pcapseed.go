// Package pcapseed loads fuzzing seed corpora from directories of
// packet captures, turning each capture file into a butterfly.Sequence
// of BytesPacket values — one per packet recorded in the capture.
package pcapseed

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/gopacket"
	"github.com/google/gopacket/pcapgo"
	"github.com/whitaker-io/butterfly"
)

var supportedExt = map[string]bool{
	".pcap":   true,
	".pcapng": true,
}

// LoadDir recursively walks dir and loads every .pcap/.pcapng file
// into a butterfly.Sequence. Unreadable or malformed files and files
// with an unsupported extension are skipped silently; a file that
// parses to zero packets is also skipped, since an empty sequence is
// not a useful seed. The returned slice preserves no particular
// ordering across files.
func LoadDir(dir string) ([]butterfly.Sequence, error) {
	var seeds []butterfly.Sequence

	walkErr := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if !supportedExt[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		seq, loadErr := LoadFile(path)
		if loadErr != nil || seq.Len() == 0 {
			return nil
		}

		seeds = append(seeds, seq)

		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return seeds, nil
}

// LoadFile parses a single capture file into a butterfly.Sequence of
// BytesPacket, one per captured packet, in capture order.
func LoadFile(path string) (butterfly.Sequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var src gopacket.PacketDataSource

	if strings.ToLower(filepath.Ext(path)) == ".pcapng" {
		r, err := pcapgo.NewNgReader(f, pcapgo.DefaultNgReaderOptions)
		if err != nil {
			return nil, err
		}
		src = r
	} else {
		r, err := pcapgo.NewReader(f)
		if err != nil {
			return nil, err
		}
		src = r
	}

	packets, err := readAll(src)
	if err != nil {
		return nil, err
	}

	seq := make(butterfly.PacketSlice, len(packets))
	for i, raw := range packets {
		seq[i] = butterfly.NewBytesPacket(raw)
	}

	return &seq, nil
}

// readAll drains a packet data source until io.EOF, copying each
// packet's raw bytes out (gopacket's ReadPacketData buffers may be
// reused by the reader on the next call).
func readAll(src gopacket.PacketDataSource) ([][]byte, error) {
	var out [][]byte

	for {
		data, _, err := src.ReadPacketData()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		cp := make([]byte, len(data))
		copy(cp, data)
		out = append(out, cp)
	}

	return out, nil
}
