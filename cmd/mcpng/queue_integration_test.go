package main

import (
	"bytes"
	"compress/gzip"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flga/mcpng"
)

// buildMinimalSchematic writes a gzipped 1x1x1 NBT schematic (one stone
// block) to path, for use as a text-queue job's input file.
func buildMinimalSchematic(t *testing.T, path string) {
	t.Helper()

	writeString := func(buf *bytes.Buffer, s string) {
		buf.WriteByte(byte(len(s) >> 8))
		buf.WriteByte(byte(len(s)))
		buf.WriteString(s)
	}
	writeShort := func(buf *bytes.Buffer, name string, v int16) {
		buf.WriteByte(2) // TAG_Short
		writeString(buf, name)
		buf.WriteByte(byte(v >> 8))
		buf.WriteByte(byte(v))
	}
	writeByteArray := func(buf *bytes.Buffer, name string, data []byte) {
		buf.WriteByte(7) // TAG_Byte_Array
		writeString(buf, name)
		n := int32(len(data))
		buf.WriteByte(byte(n >> 24))
		buf.WriteByte(byte(n >> 16))
		buf.WriteByte(byte(n >> 8))
		buf.WriteByte(byte(n))
		buf.Write(data)
	}

	var body bytes.Buffer
	writeShort(&body, "Height", 1)
	writeShort(&body, "Length", 1)
	writeShort(&body, "Width", 1)
	writeByteArray(&body, "Blocks", []byte{1})
	writeByteArray(&body, "Data", []byte{0})
	body.WriteByte(0) // TAG_End

	var full bytes.Buffer
	full.WriteByte(10) // TAG_Compound
	full.WriteByte(0)
	full.WriteByte(0) // empty root name
	full.Write(body.Bytes())

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	gw := gzip.NewWriter(f)
	if _, err := gw.Write(full.Bytes()); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
}

// TestProcessQueueStreamScopesPropertiesPerJob: job 2's header line must
// not inherit job 1's horzsize/vertsize overrides from its continuation
// lines — properties are scoped to the preceding header only.
func TestProcessQueueStreamScopesPropertiesPerJob(t *testing.T) {
	dir := t.TempDir()
	aIn := filepath.Join(dir, "a.schematic")
	bIn := filepath.Join(dir, "b.schematic")
	aOut := filepath.Join(dir, "a.png")
	bOut := filepath.Join(dir, "b.png")
	buildMinimalSchematic(t, aIn)
	buildMinimalSchematic(t, bIn)

	input := strings.Join([]string{
		aIn,
		"  outfile = " + aOut,
		"  horzsize = 10",
		"  vertsize = 10",
		bIn,
		"  outfile = " + bOut,
	}, "\n") + "\n"

	log := slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))
	sched := mcpng.NewScheduler(2, false)

	if err := processQueueStream(strings.NewReader(input), sched, log); err != nil {
		t.Fatalf("processQueueStream: %v", err)
	}
	sched.Stop()
	sched.Wait()

	aImg := decodePNGFile(t, aOut)
	bImg := decodePNGFile(t, bOut)

	wantAWidth, _ := mcpng.ImageSize(1, 1, 1, 10, 10)
	wantBWidth, _ := mcpng.ImageSize(1, 1, 1, mcpng.DefaultHorzSize, mcpng.DefaultVertSize)

	if aImg.Bounds().Dx() != wantAWidth {
		t.Errorf("a.png width = %d, want %d (horzsize=10 applied)", aImg.Bounds().Dx(), wantAWidth)
	}
	if bImg.Bounds().Dx() != wantBWidth {
		t.Errorf("b.png width = %d, want %d (defaults, not inherited from job 1)", bImg.Bounds().Dx(), wantBWidth)
	}
}

func decodePNGFile(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode(%s): %v", path, err)
	}
	return img
}
