package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/flga/mcpng"
)

// eot is the Ctrl+D control byte that ends one queued item's property
// block and pushes it for rendering.
const eot = 0x04

// textQueueSink reports job errors to stderr; one bad job never tears
// down the rest of the stream.
type textQueueSink struct {
	log  *slog.Logger
	name string
}

func (s *textQueueSink) Error(msg string) {
	s.log.Error(msg, slog.String("file", s.name))
}

// processQueueStream reads newline-delimited queue items from r and
// submits a mcpng.Job to sched for each one. A line
// starting with a non-whitespace, non-control byte begins a new item
// (its input file name); a line starting with whitespace is a property
// of the current item; a lone EOT byte (0x04) ends the current item's
// properties and queues it.
func processQueueStream(r io.Reader, sched *mcpng.Scheduler, log *slog.Logger) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	var current *mcpng.Job

	submit := func() {
		if current == nil {
			return
		}
		outName := current.OutputName
		if outName == "" {
			outName = mcpng.DefaultOutputName(current.InputName)
		}
		out, err := os.Create(outName)
		if err != nil {
			log.Error("cannot open file for writing", slog.String("file", outName), slog.Any("err", err))
			current = nil
			return
		}
		current.OutputName = outName
		current.Output = out
		sched.Submit(current)
		current = nil
	}

	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if line[0] <= ' ' {
			if line == string(rune(eot)) {
				submit()
				continue
			}
			if current == nil {
				log.Error("defining properties without a preceding input file", slog.Int("line", lineNum))
				continue
			}
			if err := processPropertyLine(current, line[1:]); err != nil {
				log.Error("job-construction error", slog.Int("line", lineNum), slog.Any("err", err))
			}
			continue
		}

		submit()

		f, err := os.Open(line)
		if err != nil {
			log.Error("cannot open file for reading", slog.String("file", line), slog.Any("err", err))
			continue
		}
		job := mcpng.NewJob()
		job.Input = f
		job.InputName = line
		job.Errors = &textQueueSink{log: log, name: line}
		current = job
	}
	submit()
	return scanner.Err()
}

// processPropertyLine parses a single indented "key value" line and
// applies it to item. Property names are case-insensitive, separated
// from the value by space, tab, '=' or ':'.
func processPropertyLine(item *mcpng.Job, line string) error {
	trimmed := strings.TrimLeft(line, " \t")
	sepIdx := strings.IndexAny(trimmed, " \t=:")
	if sepIdx < 0 {
		return fmt.Errorf("invalid property specification in line %q", line)
	}
	prop := trimmed[:sepIdx]
	if prop == "" {
		return fmt.Errorf("invalid property name in line %q", line)
	}
	value := trimmed[sepIdx+1:]
	if sep := trimmed[sepIdx]; sep == ' ' || sep == '\t' {
		// "name = value" splits on the whitespace before the real
		// separator; consume it so it doesn't end up in the value.
		rest := strings.TrimLeft(value, " \t")
		if rest != "" && (rest[0] == '=' || rest[0] == ':') {
			value = rest[1:]
		}
	}
	value = strings.TrimLeft(value, " \t")

	switch strings.ToLower(prop) {
	case "outputfile", "outfile":
		item.OutputName = value
	case "startx":
		item.StartX = parseIntOrUnbounded(value)
	case "endx":
		item.EndX = parseIntOrUnbounded(value)
	case "starty":
		item.StartY = parseIntOrUnbounded(value)
	case "endy":
		item.EndY = parseIntOrUnbounded(value)
	case "startz":
		item.StartZ = parseIntOrUnbounded(value)
	case "endz":
		item.EndZ = parseIntOrUnbounded(value)
	case "horzsize":
		if v, err := strconv.Atoi(value); err == nil {
			item.HorzSize = v
		}
	case "vertsize":
		if v, err := strconv.Atoi(value); err == nil {
			item.VertSize = v
		}
	case "numccwrotations":
		if v, err := strconv.Atoi(value); err == nil {
			item.NumCCWRotations = v
		}
	case "numcwrotations":
		if v, err := strconv.Atoi(value); err == nil {
			item.NumCCWRotations = (4 - (v%4+4)%4) % 4
		}
	case "marker":
		return addMarker(item, value)
	default:
		return fmt.Errorf("unknown property name: %q", prop)
	}
	return nil
}

func parseIntOrUnbounded(value string) int {
	v, err := strconv.Atoi(value)
	if err != nil {
		return mcpng.Unbounded
	}
	return v
}

// addMarker parses a "x, y, z, shape[, color]" marker specification and
// appends it to item.Markers.
func addMarker(item *mcpng.Job, value string) error {
	parts := strings.FieldsFunc(value, func(r rune) bool { return r == ',' || r == ';' })
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 4 {
		return fmt.Errorf("invalid marker specification: %q", value)
	}

	x, errX := strconv.Atoi(parts[0])
	y, errY := strconv.Atoi(parts[1])
	z, errZ := strconv.Atoi(parts[2])
	if errX != nil || errY != nil || errZ != nil {
		return fmt.Errorf("invalid marker coords in %q", value)
	}

	color := mcpng.NoColor
	if len(parts) >= 5 {
		v, err := strconv.ParseInt(strings.TrimPrefix(parts[4], "0x"), 16, 32)
		if err != nil {
			return fmt.Errorf("invalid marker color in %q", value)
		}
		color = int32(v)
	}

	marker, err := mcpng.NewMarker(x, y, z, parts[3], color)
	if err != nil {
		return fmt.Errorf("unknown marker shape in %q", value)
	}
	item.Markers = append(item.Markers, marker)
	return nil
}
