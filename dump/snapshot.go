package dump

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"os"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/wippyai/rawtransfer/buffer"
	"github.com/wippyai/rawtransfer/errors"
	"github.com/wippyai/rawtransfer/producer"
	"github.com/wippyai/rawtransfer/schema"
)

const (
	magic      = "RTSN"
	version    = 1
	headerSize = 40
)

// Snapshot is the used prefix of one buffer plus its trailer.
type Snapshot struct {
	Source  string
	Data    []byte // starts with Source
	Trailer buffer.Trailer
	Layout  uint64 // schema fingerprint the buffer was captured against
}

var _ producer.Producer = (*Snapshot)(nil)

// Capture copies the used prefix of buf. source must be the text at its
// start.
func Capture(buf *buffer.Buffer, source string) (*Snapshot, error) {
	limit := buf.DataLimit()
	if uint32(len(source)) > limit || string(buf.Bytes()[:len(source)]) != source {
		return nil, errors.InvalidInput(errors.PhaseLoad, "buffer does not start with the given source")
	}
	tr := buf.Trailer()

	end := limit
	for end > 0 && buf.U8(end-1) == 0 {
		end--
	}
	if rootEnd := tr.Root + schema.Default().Root.Size; end < rootEnd && rootEnd <= limit {
		end = rootEnd
	}
	if end < uint32(len(source)) {
		end = uint32(len(source))
	}
	return &Snapshot{
		Source:  source,
		Data:    bytes.Clone(buf.Bytes()[:end]),
		Trailer: tr,
		Layout:  schema.Default().Fingerprint(),
	}, nil
}

// Restore writes the snapshot into buf and stamps its trailer.
func (s *Snapshot) Restore(buf *buffer.Buffer) error {
	if uint32(len(s.Data)) > buf.DataLimit() {
		return errors.OutOfBounds(errors.PhaseProduce, nil, len(s.Data), int(buf.DataLimit()))
	}
	buf.Clear(buf.Len())
	buf.Write(0, s.Data)
	buf.SetTrailer(s.Trailer)
	return nil
}

// Produce restores the snapshot when source and flavor match it.
func (s *Snapshot) Produce(_ context.Context, buf *buffer.Buffer, source string, flavor schema.Flavor) error {
	if source != s.Source {
		return errors.InvalidInput(errors.PhaseProduce, "snapshot holds a different source text")
	}
	if s.Trailer.IsTS != (flavor == schema.FlavorTyped) {
		return errors.InvalidInput(errors.PhaseProduce, "snapshot was produced in the %s flavor", s.flavor())
	}
	if want := schema.Default().Fingerprint(); s.Layout != want {
		return errors.LayoutMismatch(errors.PhaseProduce, want, s.Layout)
	}
	return s.Restore(buf)
}

func (s *Snapshot) flavor() schema.Flavor {
	if s.Trailer.IsTS {
		return schema.FlavorTyped
	}
	return schema.FlavorPlain
}

// Encode writes s to w.
func Encode(w io.Writer, s *Snapshot, c Codec) error {
	payload, used, err := compress(c, s.Data)
	if err != nil {
		return errors.Wrap(errors.PhaseLoad, errors.KindInvalidData, err, "compress snapshot")
	}

	hdr := make([]byte, headerSize)
	copy(hdr, magic)
	hdr[4] = version
	hdr[5] = byte(used)
	binary.LittleEndian.PutUint32(hdr[8:], uint32(len(s.Source)))
	binary.LittleEndian.PutUint32(hdr[12:], uint32(len(s.Data)))
	binary.LittleEndian.PutUint32(hdr[16:], s.Trailer.Root)
	hdr[20] = uint8(s.flavor())
	binary.LittleEndian.PutUint64(hdr[24:], s.Layout)
	binary.LittleEndian.PutUint64(hdr[32:], xxhash.Sum64(s.Data))

	if _, err := w.Write(hdr); err != nil {
		return err
	}
	_, err = w.Write(payload)
	return err
}

// Decode reads a snapshot written by Encode.
func Decode(r io.Reader) (*Snapshot, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidData, err, "read snapshot")
	}
	if len(raw) < headerSize || string(raw[:4]) != magic {
		return nil, errors.InvalidData(errors.PhaseLoad, nil, "not a snapshot")
	}
	if raw[4] != version {
		return nil, errors.Unsupported(errors.PhaseLoad, "snapshot version "+strconv.Itoa(int(raw[4])))
	}
	c := Codec(raw[5])
	if int(c) >= len(codecNames) {
		return nil, errors.Unsupported(errors.PhaseLoad, "snapshot codec "+c.String())
	}

	srcLen := binary.LittleEndian.Uint32(raw[8:])
	dataLen := binary.LittleEndian.Uint32(raw[12:])
	tr := buffer.Trailer{
		Root: binary.LittleEndian.Uint32(raw[16:]),
		IsTS: schema.Flavor(raw[20]) == schema.FlavorTyped,
	}
	layout := binary.LittleEndian.Uint64(raw[24:])
	sum := binary.LittleEndian.Uint64(raw[32:])

	data, err := decompress(c, raw[headerSize:], int(dataLen))
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidData, err, "decompress snapshot")
	}
	if uint32(len(data)) != dataLen || srcLen > dataLen {
		return nil, errors.InvalidData(errors.PhaseLoad, nil, "snapshot length does not match its header")
	}
	if got := xxhash.Sum64(data); got != sum {
		return nil, errors.New(errors.PhaseLoad, errors.KindChecksum).
			Value(got).
			Detail("checksum %016x, header says %016x", got, sum).
			Build()
	}
	return &Snapshot{Source: string(data[:srcLen]), Data: data, Trailer: tr, Layout: layout}, nil
}

// Save writes s to path.
func Save(path string, s *Snapshot, c Codec) error {
	var b bytes.Buffer
	if err := Encode(&b, s, c); err != nil {
		return err
	}
	return os.WriteFile(path, b.Bytes(), 0o644)
}

// Load reads the snapshot at path.
func Load(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindNotFound, err, path)
	}
	defer f.Close()
	return Decode(f)
}
