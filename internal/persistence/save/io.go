package save

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"guildhall.quest/internal/sim/guild"
)

// WriteFile stores the canonical encoding zstd-compressed at rest and
// returns the digest of the canonical bytes. The compression wrapper is
// transparent: the canonical bytes, and therefore the digest, are unchanged.
func WriteFile(path string, s guild.State, draws uint64) (string, error) {
	b, err := Encode(s, draws)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return "", err
	}
	defer enc.Close()

	bw := bufio.NewWriterSize(enc, 256*1024)
	defer bw.Flush()

	if _, err := bw.Write(b); err != nil {
		return "", err
	}
	return Digest(b), nil
}

// ReadFile loads and decodes a compressed save.
func ReadFile(path string) (guild.State, uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return guild.State{}, 0, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return guild.State{}, 0, err
	}
	defer dec.Close()

	b, err := io.ReadAll(dec)
	if err != nil {
		return guild.State{}, 0, err
	}
	return Decode(b)
}
