package fits

import (
	"io"
	"os"
)

const minDataBlockSize = 1 << 20

type dataSource interface {
	Size() int64
	Slice(offset int64, length int) ([]byte, error)
	ReadAt(p []byte, offset int64) (int, error)
	Close() error
}

type blockSource struct {
	file      *os.File
	size      int64
	blockSize int
	buf       []byte
	bufStart  int64
	bufLen    int
}

func newBlockSource(f *os.File, size int64, blockSize int) *blockSource {
	if blockSize < minDataBlockSize {
		blockSize = minDataBlockSize
	}
	return &blockSource{file: f, size: size, blockSize: blockSize}
}

func (bs *blockSource) Size() int64 {
	return bs.size
}

func (bs *blockSource) Close() error {
	if bs.file == nil {
		return nil
	}
	err := bs.file.Close()
	bs.file = nil
	bs.buf = nil
	bs.bufLen = 0
	return err
}

func (bs *blockSource) grow(need int) {
	if need <= bs.blockSize {
		return
	}
	newSize := bs.blockSize
	if newSize == 0 {
		newSize = minDataBlockSize
	}
	for newSize < need {
		newSize *= 2
	}
	bs.blockSize = newSize
	bs.buf = make([]byte, bs.blockSize)
	bs.bufLen = 0
	bs.bufStart = 0
}

func (bs *blockSource) ensure(offset int64, length int) error {
	if bs.file == nil {
		return io.EOF
	}
	if length > bs.blockSize {
		bs.grow(length)
	}
	if bs.buf == nil {
		bs.buf = make([]byte, bs.blockSize)
	}
	if offset >= bs.bufStart && offset+int64(length) <= bs.bufStart+int64(bs.bufLen) {
		return nil
	}
	if offset >= bs.size {
		bs.bufLen = 0
		return io.EOF
	}
	bs.bufStart = offset
	remain := bs.size - offset
	toRead := bs.blockSize
	if int64(toRead) > remain {
		toRead = int(remain)
	}
	n, err := bs.file.ReadAt(bs.buf[:toRead], offset)
	bs.bufLen = n
	if err != nil && err != io.EOF {
		return err
	}
	if n < length {
		return io.ErrUnexpectedEOF
	}
	return nil
}

func (bs *blockSource) Slice(offset int64, length int) ([]byte, error) {
	if length <= 0 {
		return nil, nil
	}
	if offset < 0 || offset+int64(length) > bs.size {
		return nil, io.ErrUnexpectedEOF
	}
	if err := bs.ensure(offset, length); err != nil {
		return nil, err
	}
	start := offset - bs.bufStart
	return bs.buf[start : start+int64(length)], nil
}

func (bs *blockSource) ReadAt(p []byte, offset int64) (int, error) {
	if bs.file == nil {
		return 0, io.EOF
	}
	return bs.file.ReadAt(p, offset)
}

type memSource struct {
	data []byte
}

func (ms *memSource) Size() int64 {
	return int64(len(ms.data))
}

func (ms *memSource) Close() error {
	ms.data = nil
	return nil
}

func (ms *memSource) Slice(offset int64, length int) ([]byte, error) {
	if length <= 0 {
		return nil, nil
	}
	if offset < 0 || offset+int64(length) > int64(len(ms.data)) {
		return nil, io.ErrUnexpectedEOF
	}
	return ms.data[offset : offset+int64(length)], nil
}

func (ms *memSource) ReadAt(p []byte, offset int64) (int, error) {
	if offset < 0 || offset >= int64(len(ms.data)) {
		return 0, io.EOF
	}
	n := copy(p, ms.data[offset:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
