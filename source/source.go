// Package source wraps an input stream for a parser and resolves byte
// offsets to line and column positions.
//
// A Source records the offset of every line ending as bytes pass through
// Read. Resolving an offset to a position is a binary search over those
// offsets, so nothing is ever rescanned. The index only covers bytes that
// have been read: positions beyond the last read resolve on a best-effort
// basis.
//
// A Source is not safe for concurrent use. Reads and repositioning must come
// from a single owner, or the line index becomes inconsistent.
package source

import (
	"bytes"
	"io"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/risor-io/peg/errors"
)

// Source is a byte stream with incremental line-ending indexing.
type Source struct {
	r        io.ReadSeeker
	filename string
	logger   zerolog.Logger

	// pos is the absolute offset of the next byte to be read.
	pos int64

	// lineEnds holds, in strictly increasing order, the offset immediately
	// after each newline scanned so far.
	lineEnds []int64

	// scanned is the offset up to which bytes have been scanned for
	// newlines. Bytes below it are never scanned again.
	scanned int64

	// contiguous is the end of the gap-free scanned prefix starting at 0.
	contiguous int64

	eofReached bool
}

// Option configures a Source.
type Option func(*Source)

// WithFilename sets the filename reported in locations.
func WithFilename(name string) Option {
	return func(s *Source) {
		s.filename = name
	}
}

// WithLogger sets the logger used for warnings. By default the global
// zerolog logger is used.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Source) {
		s.logger = logger
	}
}

// New wraps r. Line counting assumes reads start at offset 0; if r is
// positioned elsewhere a warning is logged and the Source is still created.
// An error is returned only if the current stream position cannot be
// determined.
func New(r io.ReadSeeker, opts ...Option) (*Source, error) {
	s := &Source{r: r, logger: log.Logger}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	if pos != 0 {
		s.logger.Warn().
			Str("filename", s.filename).
			Int64("position", pos).
			Msg("line counting will be off if the stream is not rewound")
	}
	s.pos = pos
	return s, nil
}

// FromString returns a Source reading from str.
func FromString(str string, opts ...Option) *Source {
	s, _ := New(strings.NewReader(str), opts...)
	return s
}

// FromBytes returns a Source reading from b.
func FromBytes(b []byte, opts ...Option) *Source {
	s, _ := New(bytes.NewReader(b), opts...)
	return s
}

// Read reads up to n bytes from the current position and advances the
// position by the number of bytes read. Fewer than n bytes, possibly none,
// are returned at the end of the stream; that is not an error. Any other
// stream error is returned unmodified along with the bytes read before it,
// which are indexed like any others.
func (s *Source) Read(n int) ([]byte, error) {
	if n <= 0 {
		return []byte{}, nil
	}
	buf := make([]byte, n)
	read, err := io.ReadFull(s.r, buf)
	buf = buf[:read]
	start := s.pos
	s.pos += int64(read)
	s.scan(start, buf)
	switch err {
	case nil:
		return buf, nil
	case io.EOF, io.ErrUnexpectedEOF:
		s.eofReached = true
		return buf, nil
	default:
		return buf, err
	}
}

// scan records line endings in buf, which was read starting at offset start.
// Only bytes at or beyond the scanned mark are examined, so re-reading after
// seeking backwards never duplicates entries.
func (s *Source) scan(start int64, buf []byte) {
	end := start + int64(len(buf))
	if end <= s.scanned {
		return
	}
	if start > s.scanned {
		s.logger.Warn().
			Str("filename", s.filename).
			Int64("scanned", s.scanned).
			Int64("offset", start).
			Msg("reading past unscanned input; positions beyond it are unreliable")
	}
	from := int64(0)
	if start < s.scanned {
		from = s.scanned - start
	}
	for i := from; i < int64(len(buf)); {
		idx := bytes.IndexByte(buf[i:], '\n')
		if idx < 0 {
			break
		}
		i += int64(idx) + 1
		s.lineEnds = append(s.lineEnds, start+i)
	}
	// Once a gap exists the skipped bytes are never indexed, so the
	// gap-free prefix cannot grow past it.
	if s.contiguous == s.scanned && start <= s.contiguous {
		s.contiguous = end
	}
	s.scanned = end
}

// EOF reports whether the stream has no further bytes. It peeks one byte and
// seeks back, leaving the position unchanged.
func (s *Source) EOF() (bool, error) {
	var one [1]byte
	n, err := s.r.Read(one[:])
	if n > 0 {
		if _, serr := s.r.Seek(-int64(n), io.SeekCurrent); serr != nil {
			return false, serr
		}
		return false, nil
	}
	if err == io.EOF {
		return true, nil
	}
	return false, err
}

// Pos returns the absolute offset of the next byte to be read.
func (s *Source) Pos() int64 {
	return s.pos
}

// SetPos moves to the absolute offset pos. Moving backwards is always safe.
// Moving beyond the scanned input and reading from there leaves the skipped
// bytes unindexed, so positions after the gap resolve unreliably.
func (s *Source) SetPos(pos int64) error {
	newPos, err := s.r.Seek(pos, io.SeekStart)
	if err != nil {
		return err
	}
	s.pos = newPos
	return nil
}

// LineAndColumn resolves the absolute offset pos to a 1-based line and
// column. It never fails: offsets beyond the last known line ending are
// placed on the line after it.
func (s *Source) LineAndColumn(pos int64) (line, column int) {
	i := sort.Search(len(s.lineEnds), func(n int) bool {
		return s.lineEnds[n] > pos
	})
	var lineStart int64
	if i > 0 {
		lineStart = s.lineEnds[i-1]
	}
	return i + 1, int(pos-lineStart) + 1
}

// Location resolves pos like LineAndColumn and includes the filename.
func (s *Source) Location(pos int64) errors.SourceLocation {
	line, column := s.LineAndColumn(pos)
	return errors.SourceLocation{
		Filename: s.filename,
		Line:     line,
		Column:   column,
	}
}

// CurrentLocation returns the location of the current position.
func (s *Source) CurrentLocation() errors.SourceLocation {
	return s.Location(s.pos)
}

// LineEnds returns a copy of the recorded line-ending offsets.
func (s *Source) LineEnds() []int64 {
	ends := make([]int64, len(s.lineEnds))
	copy(ends, s.lineEnds)
	return ends
}

// Scanned returns the offset up to which input has been scanned.
func (s *Source) Scanned() int64 {
	return s.scanned
}

// Reliable reports whether positions up to pos resolve accurately, i.e. all
// input before pos has been scanned without gaps.
func (s *Source) Reliable(pos int64) bool {
	return pos <= s.contiguous
}

// EOFReached reports whether any read has hit the end of the stream.
func (s *Source) EOFReached() bool {
	return s.eofReached
}

// Filename returns the filename reported in locations.
func (s *Source) Filename() string {
	return s.filename
}
