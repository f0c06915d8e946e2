package simdata

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// ErrBadRecord reports a corrupt or truncated record frame.
var ErrBadRecord = errors.New("malformed record")

// Writer writes length-framed binary records to a file. Each record is a
// big-endian uint32 payload length, the payload, and the same length again
// as a trailer.
type Writer struct {
	f *os.File
}

// OpenWriter creates (or truncates) path for record writing.
func OpenWriter(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("open %s for writing: %w", path, err)
	}
	return &Writer{f: f}, nil
}

// WriteRecord writes one framed record.
func (w *Writer) WriteRecord(payload []byte) error {
	var head [4]byte
	binary.BigEndian.PutUint32(head[:], uint32(len(payload)))

	if _, err := w.f.Write(head[:]); err != nil {
		return fmt.Errorf("write record header: %w", err)
	}
	if _, err := w.f.Write(payload); err != nil {
		return fmt.Errorf("write record payload: %w", err)
	}
	if _, err := w.f.Write(head[:]); err != nil {
		return fmt.Errorf("write record trailer: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (w *Writer) Close() error { return w.f.Close() }

// Reader reads length-framed binary records from a file.
type Reader struct {
	f *os.File
}

// OpenReader opens path for record reading.
func OpenReader(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s for reading: %w", path, err)
	}
	return &Reader{f: f}, nil
}

// ReadRecord reads the next record. Returns io.EOF cleanly at end of file;
// a truncated frame or mismatched trailer returns ErrBadRecord.
func (r *Reader) ReadRecord() ([]byte, error) {
	var head [4]byte
	if _, err := io.ReadFull(r.f, head[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: truncated header: %v", ErrBadRecord, err)
	}

	size := binary.BigEndian.Uint32(head[:])
	payload := make([]byte, size)
	if _, err := io.ReadFull(r.f, payload); err != nil {
		return nil, fmt.Errorf("%w: truncated payload: %v", ErrBadRecord, err)
	}

	var tail [4]byte
	if _, err := io.ReadFull(r.f, tail[:]); err != nil {
		return nil, fmt.Errorf("%w: truncated trailer: %v", ErrBadRecord, err)
	}
	if binary.BigEndian.Uint32(tail[:]) != size {
		return nil, fmt.Errorf("%w: trailer length %d does not match header %d",
			ErrBadRecord, binary.BigEndian.Uint32(tail[:]), size)
	}

	return payload, nil
}

// Close closes the underlying file.
func (r *Reader) Close() error { return r.f.Close() }

// Fwrite serializes the keyword as a single record: 8-byte padded name,
// 4-byte type tag, element count, then the elements.
func (k *Keyword) Fwrite(w *Writer) error {
	var buf bytes.Buffer

	name := make([]byte, maxKeywordName)
	copy(name, k.name)
	buf.Write(name)
	buf.WriteString(k.typ.String())

	var count [4]byte
	binary.BigEndian.PutUint32(count[:], uint32(k.Len()))
	buf.Write(count[:])

	var elem [4]byte
	switch k.typ {
	case Inte:
		for _, v := range k.ints {
			binary.BigEndian.PutUint32(elem[:], uint32(v))
			buf.Write(elem[:])
		}
	case Real:
		for _, v := range k.flts {
			binary.BigEndian.PutUint32(elem[:], math.Float32bits(v))
			buf.Write(elem[:])
		}
	}

	if err := w.WriteRecord(buf.Bytes()); err != nil {
		return fmt.Errorf("write keyword %s: %w", k.name, err)
	}
	return nil
}

// ReadKeyword decodes the next keyword record from the reader.
func ReadKeyword(r *Reader) (*Keyword, error) {
	payload, err := r.ReadRecord()
	if err != nil {
		return nil, err
	}

	const header = maxKeywordName + 4 + 4
	if len(payload) < header {
		return nil, fmt.Errorf("%w: keyword record too short (%d bytes)", ErrBadRecord, len(payload))
	}

	name := string(bytes.TrimRight(payload[:maxKeywordName], "\x00"))
	tag := string(payload[maxKeywordName : maxKeywordName+4])
	count := int(binary.BigEndian.Uint32(payload[maxKeywordName+4 : header]))

	var typ DataType
	switch tag {
	case "INTE":
		typ = Inte
	case "REAL":
		typ = Real
	default:
		return nil, fmt.Errorf("%w: unknown type tag %q", ErrBadRecord, tag)
	}

	if len(payload) != header+4*count {
		return nil, fmt.Errorf("%w: keyword %s declares %d elements but carries %d bytes",
			ErrBadRecord, name, count, len(payload)-header)
	}

	kw, err := NewKeyword(name, count, typ)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRecord, err)
	}

	for i := 0; i < count; i++ {
		raw := binary.BigEndian.Uint32(payload[header+4*i : header+4*i+4])
		switch typ {
		case Inte:
			kw.ints[i] = int32(raw)
		case Real:
			kw.flts[i] = math.Float32frombits(raw)
		}
	}
	return kw, nil
}
