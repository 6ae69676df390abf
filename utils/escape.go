package utils

import (
	"fmt"
	"io"

	_ "unsafe"
)

// These functions allow defeat of the escape analysis to prevent heap allocations.
// It is the caller responsibility to ensure this is safe

func _read(reader io.Reader, buf []byte) (n int, err error) {
	return reader.Read(buf)
}

func _write(writer io.Writer, buf []byte) (n int, err error) {
	return writer.Write(buf)
}

func _appendf(buf []byte, format string, v ...any) []byte {
	return fmt.Appendf(buf, format, v...)
}

//go:noescape
//go:linkname ReadNoEscape git.gammaspectra.live/P2Pool/go-cryptonight/utils._read
func ReadNoEscape(reader io.Reader, buf []byte) (n int, err error)

//go:noescape
//go:linkname WriteNoEscape git.gammaspectra.live/P2Pool/go-cryptonight/utils._write
func WriteNoEscape(writer io.Writer, buf []byte) (n int, err error)

//go:noescape
//go:linkname AppendfNoEscape git.gammaspectra.live/P2Pool/go-cryptonight/utils._appendf
func AppendfNoEscape(buf []byte, format string, v ...any) []byte
