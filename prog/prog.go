// Package prog loads programs into a 6502 address space: raw binary images
// and the textual hexdump format used all over the test suite.
package prog

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"moss/emu/log"
	"moss/hw/hwio"
)

// resetVector is where the CPU fetches its entry point from after a reset.
const resetVector = uint16(0xFFFC)

// AddrRangeError reports a program that does not fit the 64 KiB address
// space.
type AddrRangeError struct {
	Offset uint16
	Len    int
}

func (e *AddrRangeError) Error() string {
	return fmt.Sprintf("program of %d bytes at $%04X overflows the address space", e.Len, e.Offset)
}

// Load writes data starting at offset and stores entry into the reset
// vector, so the next CPU reset starts the program. Writes go through the
// bus peek/poke path: no cycle is consumed.
func Load(bus *hwio.Table, offset uint16, data []byte, entry uint16) error {
	if int(offset)+len(data) > 0x10000 {
		return &AddrRangeError{Offset: offset, Len: len(data)}
	}

	for i, b := range data {
		bus.Write8(offset+uint16(i), b)
	}
	hwio.Write16(bus, resetVector, entry)

	log.ModProg.InfoZ("program loaded").
		Hex16("offset", offset).
		Int("len", int64(len(data))).
		Hex16("entry", entry).
		End()
	return nil
}

// ReadFile loads a raw binary image from path at org, with the entry point
// at org. It returns the image size.
func ReadFile(bus *hwio.Table, path string, org uint16) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return len(data), Load(bus, org, data, org)
}

// A DumpLine is one line of a memory dump: contiguous bytes at an offset.
type DumpLine struct {
	Off   uint16
	Bytes []byte
}

// ParseDump parses a textual memory dump. Each line is
//
//	ADDR: xx xx xx ...
//
// with ADDR in hex. Blank lines and lines starting with # are skipped.
func ParseDump(dump string) ([]DumpLine, error) {
	var lines []DumpLine
	scan := bufio.NewScanner(strings.NewReader(dump))
	for scan.Scan() {
		line := scan.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		off, octets, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("malformed line: %s", line)
		}

		ioff, err := strconv.ParseUint(strings.TrimSpace(off), 16, 16)
		if err != nil {
			return nil, fmt.Errorf("malformed offset %s: %s", off, err)
		}

		var buf []byte
		for _, c := range octets {
			if c != ' ' && c != '\t' {
				buf = append(buf, byte(c))
			}
		}
		n, err := hex.Decode(buf, buf)
		if err != nil {
			return nil, fmt.Errorf("hex decode: %s", err)
		}

		lines = append(lines, DumpLine{Off: uint16(ioff), Bytes: buf[:n]})
	}
	if err := scan.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

// LoadDump parses dump and pokes every line into the bus.
func LoadDump(bus *hwio.Table, dump string) error {
	lines, err := ParseDump(dump)
	if err != nil {
		return err
	}
	for _, dl := range lines {
		if int(dl.Off)+len(dl.Bytes) > 0x10000 {
			return &AddrRangeError{Offset: dl.Off, Len: len(dl.Bytes)}
		}
		for i, b := range dl.Bytes {
			bus.Write8(dl.Off+uint16(i), b)
		}
	}
	return nil
}
