package csvstream

import (
	"context"
	"io"

	"github.com/valyala/bytebufferpool"

	"github.com/go-data-exporter/csvstream/record"
)

// Result carries one record, or a terminal source error, from an
// asynchronous producer into a Stream.
type Result struct {
	Record record.Record
	Err    error
}

// Chunk carries one encoded chunk, or the terminal error, out of
// Stream.Chunks.
type Chunk struct {
	Bytes []byte
	Err   error
}

// Stream is the asynchronous counterpart of Iter. It pulls records from
// a channel, one per Next call, encoding them with the same rules and
// chunk contract: the first accepted record's chunk includes the header
// row, and a producer that closes the channel without sending anything
// produces no chunks at all.
//
// Exactly one Next call may be in flight at a time.
type Stream struct {
	src <-chan Result
	enc *Encoder
	buf *bytebufferpool.ByteBuffer

	err           error
	done          bool
	headerWritten bool
	accepted      int
}

// NewStream creates a Stream over src. Header names come from the first
// record received. Call Close when done to return the internal buffer to
// its pool.
func NewStream(src <-chan Result, opts ...Option) *Stream {
	return &Stream{
		src: src,
		enc: NewEncoder(opts...),
		buf: bytebufferpool.Get(),
	}
}

// Next blocks until the next record is available, encodes it and returns
// the chunk. It returns io.EOF once the producer closes the channel, the
// context error if ctx is done first, and any source or encoding error
// otherwise. Terminal errors and io.EOF are sticky; a context error is
// not, so a caller may resume with a fresh context.
func (s *Stream) Next(ctx context.Context) ([]byte, error) {
	for {
		if s.err != nil {
			return nil, s.err
		}
		if s.done {
			return nil, io.EOF
		}
		if s.enc.cfg.limit >= 0 && s.accepted >= s.enc.cfg.limit {
			s.done = true
			return nil, io.EOF
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case res, ok := <-s.src:
			if !ok {
				s.done = true
				return nil, io.EOF
			}
			if res.Err != nil {
				return nil, s.fail(res.Err)
			}

			mark := len(s.buf.B)
			if !s.headerWritten {
				if s.enc.cfg.writeHeader {
					var err error
					s.buf.B, err = s.enc.AppendHeader(s.buf.B, res.Record.Names())
					if err != nil {
						s.buf.B = s.buf.B[:mark]
						return nil, s.fail(err)
					}
				} else {
					s.enc.names = res.Record.Names()
				}
			}

			var accepted bool
			var err error
			s.buf.B, accepted, err = s.enc.appendRecord(s.buf.B, res.Record.Values())
			if err != nil {
				s.buf.B = s.buf.B[:mark]
				return nil, s.fail(err)
			}
			if !accepted {
				s.buf.B = s.buf.B[:mark]
				continue
			}
			s.headerWritten = true
			s.accepted++
			chunk := append([]byte(nil), s.buf.B...)
			s.buf.Reset()
			return chunk, nil
		}
	}
}

// Chunks drains the stream into a channel of Chunk values, closed after
// the final chunk or the terminal error. Cancelling ctx stops the drain.
func (s *Stream) Chunks(ctx context.Context) <-chan Chunk {
	out := make(chan Chunk)
	go func() {
		defer close(out)
		for {
			b, err := s.Next(ctx)
			if err == io.EOF {
				return
			}
			if err != nil {
				select {
				case out <- Chunk{Err: err}:
				case <-ctx.Done():
				}
				return
			}
			select {
			case out <- Chunk{Bytes: b}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Close releases the internal buffer. The Stream must not be used after
// Close.
func (s *Stream) Close() {
	if s.buf != nil {
		bytebufferpool.Put(s.buf)
		s.buf = nil
	}
	s.done = true
}

func (s *Stream) fail(err error) error {
	s.err = err
	s.done = true
	return err
}
