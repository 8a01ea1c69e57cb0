package io

import (
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/exp/mmap"
)

// utf8BOM is stripped from the start of lyric files
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// MappedFile provides memory-mapped read access to a lyric file
type MappedFile struct {
	reader *mmap.ReaderAt
	size   int64
	path   string
}

// OpenMapped opens a file with memory mapping
func OpenMapped(path string) (*MappedFile, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}

	return &MappedFile{
		reader: reader,
		size:   int64(reader.Len()),
		path:   path,
	}, nil
}

// ReadAt reads len(p) bytes at offset
func (m *MappedFile) ReadAt(p []byte, off int64) (int, error) {
	return m.reader.ReadAt(p, off)
}

// Size returns the file size
func (m *MappedFile) Size() int64 {
	return m.size
}

// Path returns the file path
func (m *MappedFile) Path() string {
	return m.path
}

// Close closes the memory mapping
func (m *MappedFile) Close() error {
	return m.reader.Close()
}

// ReadRange reads bytes from start to end
func (m *MappedFile) ReadRange(start, end int64) ([]byte, error) {
	if end > m.size {
		end = m.size
	}
	if start >= end {
		return nil, nil
	}

	buf := make([]byte, end-start)
	_, err := m.reader.ReadAt(buf, start)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Text returns the whole file as UTF-8 text with any BOM removed
func (m *MappedFile) Text() (string, error) {
	data, err := m.ReadRange(0, m.size)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", m.path, err)
	}

	if len(data) >= len(utf8BOM) && string(data[:len(utf8BOM)]) == string(utf8BOM) {
		data = data[len(utf8BOM):]
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("read %s: not valid UTF-8", m.path)
	}
	return string(data), nil
}

// ReadText opens, reads and closes a lyric file
func ReadText(path string) (string, error) {
	f, err := OpenMapped(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	return f.Text()
}

// Exists reports whether path names a regular file
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
