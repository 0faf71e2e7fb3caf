package mcpng

import (
	"fmt"
	"io"
	"path"
	"strings"
)

// Unbounded is the crop-bound sentinel meaning "use the schematic's own
// extent on this axis".
const Unbounded = -1

// ErrorSink receives human-readable error strings produced while a Job
// runs, without interrupting the worker that reports them. Front ends
// implement this to route errors back to their own client (a text-queue
// connection, a JSON-over-TCP connection, or the process's own stderr).
type ErrorSink interface {
	Error(msg string)
}

// Job is one schematic-to-PNG render request, as assembled by a front end
// and handed to the scheduler.
type Job struct {
	Input  io.Reader
	Output io.Writer

	// InputName is used only to derive a default OutputName; it carries
	// no semantic weight otherwise.
	InputName  string
	OutputName string

	StartX, EndX int
	StartY, EndY int
	StartZ, EndZ int

	HorzSize int
	VertSize int

	NumCCWRotations int

	Markers []Marker

	Errors ErrorSink

	// Done, if set, is closed once Run returns, success or failure. Front
	// ends that need to wait for a specific job (the JSON-over-TCP front
	// end, to pair a response with its request) set this; the text-queue
	// front end, which is fire-and-forget, leaves it nil.
	Done chan struct{}
}

// DefaultHorzSize and DefaultVertSize are the tile half-dimensions used
// when a front end doesn't override them.
const (
	DefaultHorzSize = 4
	DefaultVertSize = 5
)

// NewJob returns a Job with crop bounds unbounded and tile sizes at their
// defaults, ready for a front end to fill in.
func NewJob() *Job {
	return &Job{
		StartX: Unbounded, EndX: Unbounded,
		StartY: Unbounded, EndY: Unbounded,
		StartZ: Unbounded, EndZ: Unbounded,
		HorzSize: DefaultHorzSize,
		VertSize: DefaultVertSize,
	}
}

// DefaultOutputName derives the default output file name from an input
// file name by replacing its extension with ".png". If inputName has no
// extension, ".png" is appended.
func DefaultOutputName(inputName string) string {
	ext := path.Ext(inputName)
	if ext == "" {
		return inputName + ".png"
	}
	return strings.TrimSuffix(inputName, ext) + ".png"
}

// clamp restricts v into [0, hi].
func clamp(v, hi int) int {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}

// resolvedCrop is a Job's crop bounds after resolving Unbounded sentinels
// against a schematic's actual extent.
type resolvedCrop struct {
	startX, endX int
	startY, endY int
	startZ, endZ int
}

// resolveCrop fills in Unbounded bounds from (sx, sy, sz) and clamps the
// rest. Start is clamped into [0, dim] and End into [0, dim-1] for both
// front ends, since crop's bounds are inclusive and an End of dim would
// address a cell past the schematic's extent; net does not change the
// result.
func (j *Job) resolveCrop(sx, sy, sz int, net bool) resolvedCrop {
	endHi := func(dim int) int {
		return dim - 1
	}

	r := resolvedCrop{
		startX: j.StartX, endX: j.EndX,
		startY: j.StartY, endY: j.EndY,
		startZ: j.StartZ, endZ: j.EndZ,
	}
	if r.startX == Unbounded {
		r.startX = 0
	}
	if r.endX == Unbounded {
		r.endX = sx - 1
	}
	if r.startY == Unbounded {
		r.startY = 0
	}
	if r.endY == Unbounded {
		r.endY = sy - 1
	}
	if r.startZ == Unbounded {
		r.startZ = 0
	}
	if r.endZ == Unbounded {
		r.endZ = sz - 1
	}

	r.startX, r.endX = clamp(r.startX, sx), clamp(r.endX, endHi(sx))
	r.startY, r.endY = clamp(r.startY, sy), clamp(r.endY, endHi(sy))
	r.startZ, r.endZ = clamp(r.startZ, sz), clamp(r.endZ, endHi(sz))
	return r
}

// crop extracts the sub-volume [startX,endX]x[startY,endY]x[startZ,endZ]
// (inclusive) from img into a new BlockImage. Reversed bounds (start >
// end on any axis) yield an empty result on that axis.
func crop(img *BlockImage, c resolvedCrop) *BlockImage {
	nx := c.endX - c.startX + 1
	ny := c.endY - c.startY + 1
	nz := c.endZ - c.startZ + 1
	if nx < 0 {
		nx = 0
	}
	if ny < 0 {
		ny = 0
	}
	if nz < 0 {
		nz = 0
	}
	out := NewBlockImage(nx, ny, nz)
	for y := 0; y < ny; y++ {
		for z := 0; z < nz; z++ {
			for x := 0; x < nx; x++ {
				t, m := img.Get(c.startX+x, c.startY+y, c.startZ+z)
				out.Set(x, y, z, t, m)
			}
		}
	}
	return out
}

// Run executes a single render job: decode, crop, rotate, render, encode.
// It never returns a fatal error to its caller; failures are reported
// through j.Errors (if set), so one bad job in a queue never brings the
// worker pool down.
func (j *Job) Run(net bool) {
	if j.Done != nil {
		defer close(j.Done)
	}
	if c, ok := j.Input.(io.Closer); ok {
		defer c.Close()
	}

	if j.OutputName == "" && j.InputName != "" {
		j.OutputName = DefaultOutputName(j.InputName)
	}

	dec, err := DecodeNBT(j.Input)
	if err != nil || !dec.IsValid() {
		j.reportErrorf("failed to parse schematic: %v", err)
		return
	}

	img, err := blockImageFromNBT(dec)
	if err != nil {
		j.reportErrorf("%v", err)
		return
	}

	c := j.resolveCrop(img.SizeX(), img.SizeY(), img.SizeZ(), net)
	if c.endX < c.startX || c.endY < c.startY || c.endZ < c.startZ {
		j.reportErrorf("the specified dimensions result in an empty area (%d, %d, %d)",
			c.endX-c.startX, c.endY-c.startY, c.endZ-c.startZ)
		return
	}
	cropped := crop(img, c)

	rotated := cropped
	for i := 0; i < ((j.NumCCWRotations % 4) + 4) % 4; i++ {
		rotated = rotated.RotateCCW()
	}

	horz, vert := j.HorzSize, j.VertSize
	if horz <= 0 {
		horz = DefaultHorzSize
	}
	if vert <= 0 {
		vert = DefaultVertSize
	}

	// Markers are matched against block coordinates as given, untransformed
	// by crop or rotation: they live in the request's own coordinate space,
	// only the block grid is cropped and rotated.
	out := Render(rotated, horz, vert, j.Markers)

	if c, ok := j.Output.(io.Closer); ok {
		defer c.Close()
	}
	if err := encodePNG(j.Output, out); err != nil {
		j.reportErrorf("failed to write output: %v", err)
	}
}

func (j *Job) reportErrorf(format string, args ...interface{}) {
	if j.Errors != nil {
		j.Errors.Error(fmt.Sprintf(format, args...))
	}
}
