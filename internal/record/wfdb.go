package record

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	defaultGain       = 200.0
	defaultSampleRate = 250.0
)

// signalSpec is one signal line of a WFDB header.
type signalSpec struct {
	file     string
	format   int
	offset   int64
	gain     float64
	baseline int
	units    string
}

// header is a parsed WFDB .hea file.
type header struct {
	name       string
	sampleRate float64
	length     int // samples per signal, 0 when unknown
	signals    []signalSpec
}

// LoadWFDB reads channel of the WFDB record name stored in dir. Signal
// files in format 212 and 16 are supported. Samples are converted to
// physical units as (digital - baseline) / gain.
func LoadWFDB(dir, name string, channel int) (*Record, error) {
	hdrPath := filepath.Join(dir, name+".hea")
	raw, err := os.ReadFile(hdrPath)
	if err != nil {
		return nil, openErr(hdrPath, err)
	}
	hdr, err := parseHeader(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", hdrPath, err)
	}
	if channel < 0 || channel >= len(hdr.signals) {
		return nil, fmt.Errorf("%w: record %s has %d signals, asked for %d",
			ErrChannel, name, len(hdr.signals), channel)
	}

	sig := hdr.signals[channel]
	group, pos := frameGroup(hdr.signals, channel)
	for _, s := range group {
		if s.format != sig.format || s.offset != sig.offset {
			return nil, fmt.Errorf("%w: signals in %s disagree on format", ErrMalformed, sig.file)
		}
	}

	datPath := filepath.Join(dir, sig.file)
	data, err := os.ReadFile(datPath)
	if err != nil {
		return nil, openErr(datPath, err)
	}
	if sig.offset > int64(len(data)) {
		return nil, fmt.Errorf("%w: %s: byte offset %d past end of file", ErrMalformed, datPath, sig.offset)
	}
	data = data[sig.offset:]

	var stream []int
	switch sig.format {
	case 212:
		stream = decode212(data)
	case 16:
		stream = decode16(data)
	default:
		return nil, fmt.Errorf("%w: %s: unsupported signal format %d", ErrMalformed, datPath, sig.format)
	}

	n := len(stream) / len(group)
	if hdr.length > 0 && hdr.length < n {
		n = hdr.length
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: %s: no samples", ErrMalformed, datPath)
	}

	samples := make([]float64, n)
	for i := range samples {
		d := stream[i*len(group)+pos]
		samples[i] = float64(d-sig.baseline) / sig.gain
	}

	return &Record{
		name:       hdr.name,
		sampleRate: hdr.sampleRate,
		units:      sig.units,
		samples:    samples,
	}, nil
}

func openErr(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrMissing, path)
	}
	return fmt.Errorf("open %s: %w", path, err)
}

// frameGroup returns the signals stored in the same file as signals[idx]
// and idx's position among them. Samples of one file are interleaved in
// that order.
func frameGroup(signals []signalSpec, idx int) ([]signalSpec, int) {
	var group []signalSpec
	pos := 0
	for i, s := range signals {
		if s.file != signals[idx].file {
			continue
		}
		if i == idx {
			pos = len(group)
		}
		group = append(group, s)
	}
	return group, pos
}

func parseHeader(raw []byte) (header, error) {
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(raw))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return header{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if len(lines) == 0 {
		return header{}, fmt.Errorf("%w: empty header", ErrMalformed)
	}

	hdr, nsig, err := parseRecordLine(lines[0])
	if err != nil {
		return header{}, err
	}
	if len(lines)-1 < nsig {
		return header{}, fmt.Errorf("%w: header declares %d signals, found %d", ErrMalformed, nsig, len(lines)-1)
	}
	for i := range nsig {
		s, err := parseSignalLine(lines[1+i])
		if err != nil {
			return header{}, fmt.Errorf("signal %d: %w", i, err)
		}
		hdr.signals = append(hdr.signals, s)
	}
	return hdr, nil
}

// parseRecordLine parses "name[/segments] nsig [fs[/counter][(base)] [nsamp ...]]".
func parseRecordLine(line string) (header, int, error) {
	f := strings.Fields(line)
	if len(f) < 2 {
		return header{}, 0, fmt.Errorf("%w: record line %q", ErrMalformed, line)
	}
	if strings.Contains(f[0], "/") {
		return header{}, 0, fmt.Errorf("%w: multi-segment records are not supported", ErrMalformed)
	}

	hdr := header{name: f[0], sampleRate: defaultSampleRate}
	nsig, err := strconv.Atoi(f[1])
	if err != nil || nsig <= 0 {
		return header{}, 0, fmt.Errorf("%w: signal count %q", ErrMalformed, f[1])
	}
	if len(f) > 2 {
		fsField := f[2]
		if i := strings.IndexAny(fsField, "/("); i >= 0 {
			fsField = fsField[:i]
		}
		rate, err := strconv.ParseFloat(fsField, 64)
		if err != nil || rate < 0 {
			return header{}, 0, fmt.Errorf("%w: sampling frequency %q", ErrMalformed, f[2])
		}
		if rate > 0 {
			hdr.sampleRate = rate
		}
	}
	if len(f) > 3 {
		n, err := strconv.Atoi(f[3])
		if err != nil || n < 0 {
			return header{}, 0, fmt.Errorf("%w: sample count %q", ErrMalformed, f[3])
		}
		hdr.length = n
	}
	return hdr, nsig, nil
}

// parseSignalLine parses
// "file format[xskew][:spf][+offset] [gain[(baseline)][/units] [adcres [adczero ...]]]".
func parseSignalLine(line string) (signalSpec, error) {
	f := strings.Fields(line)
	if len(f) < 2 {
		return signalSpec{}, fmt.Errorf("%w: signal line %q", ErrMalformed, line)
	}
	s := signalSpec{file: f[0], gain: defaultGain}

	formatField := f[1]
	if i := strings.IndexByte(formatField, '+'); i >= 0 {
		off, err := strconv.ParseInt(formatField[i+1:], 10, 64)
		if err != nil || off < 0 {
			return signalSpec{}, fmt.Errorf("%w: byte offset in %q", ErrMalformed, f[1])
		}
		s.offset = off
		formatField = formatField[:i]
	}
	if i := strings.IndexAny(formatField, "x:"); i >= 0 {
		formatField = formatField[:i]
	}
	format, err := strconv.Atoi(formatField)
	if err != nil {
		return signalSpec{}, fmt.Errorf("%w: format %q", ErrMalformed, f[1])
	}
	s.format = format

	baselineSet := false
	if len(f) > 2 {
		g := f[2]
		if i := strings.IndexByte(g, '/'); i >= 0 {
			s.units = g[i+1:]
			g = g[:i]
		}
		if i := strings.IndexByte(g, '('); i >= 0 {
			j := strings.IndexByte(g, ')')
			if j < i {
				return signalSpec{}, fmt.Errorf("%w: baseline in %q", ErrMalformed, f[2])
			}
			b, err := strconv.Atoi(g[i+1 : j])
			if err != nil {
				return signalSpec{}, fmt.Errorf("%w: baseline in %q", ErrMalformed, f[2])
			}
			s.baseline = b
			baselineSet = true
			g = g[:i]
		}
		gain, err := strconv.ParseFloat(g, 64)
		if err != nil {
			return signalSpec{}, fmt.Errorf("%w: gain %q", ErrMalformed, f[2])
		}
		if gain != 0 {
			s.gain = gain
		}
	}
	// The ADC zero doubles as baseline when none is given.
	if !baselineSet && len(f) > 4 {
		z, err := strconv.Atoi(f[4])
		if err != nil {
			return signalSpec{}, fmt.Errorf("%w: adc zero %q", ErrMalformed, f[4])
		}
		s.baseline = z
	}
	if s.units == "" {
		s.units = "mV"
	}
	return s, nil
}

// decode212 unpacks pairs of 12-bit two's complement samples stored in
// three bytes. A trailing incomplete group yields the one sample it holds.
func decode212(data []byte) []int {
	out := make([]int, 0, len(data)*2/3+1)
	for i := 0; i+1 < len(data); i += 3 {
		b0, b1 := int(data[i]), int(data[i+1])
		out = append(out, signExtend12(b0|(b1&0x0f)<<8))
		if i+2 >= len(data) {
			break
		}
		b2 := int(data[i+2])
		out = append(out, signExtend12(b2|(b1&0xf0)<<4))
	}
	return out
}

func signExtend12(v int) int {
	if v&0x800 != 0 {
		return v - 0x1000
	}
	return v
}

// decode16 reads little-endian 16-bit two's complement samples.
func decode16(data []byte) []int {
	out := make([]int, len(data)/2)
	for i := range out {
		out[i] = int(int16(binary.LittleEndian.Uint16(data[2*i:])))
	}
	return out
}
