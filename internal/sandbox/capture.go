package sandbox

import "bytes"

// cappedBuffer keeps at most limit bytes and silently drops the rest so the
// writing process never blocks on a full pipe.
type cappedBuffer struct {
	buf   bytes.Buffer
	limit int64
	total int64
}

func newCappedBuffer(limit int64) *cappedBuffer {
	return &cappedBuffer{limit: limit}
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	b.total += int64(len(p))
	if b.limit <= 0 {
		return b.buf.Write(p)
	}
	if rem := b.limit - int64(b.buf.Len()); rem > 0 {
		if int64(len(p)) > rem {
			b.buf.Write(p[:rem])
		} else {
			b.buf.Write(p)
		}
	}
	return len(p), nil
}

func (b *cappedBuffer) Bytes() []byte {
	return b.buf.Bytes()
}

func (b *cappedBuffer) Truncated() bool {
	return b.total > int64(b.buf.Len())
}
