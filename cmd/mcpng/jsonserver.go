package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"strings"

	"github.com/flga/mcpng"
)

// welcomeMessage is sent immediately after a connection is accepted, so a
// client can confirm it's talking to the protocol version it expects.
var welcomeMessage = map[string]int{"MCSchematicToPng": 2}

// jsonServer accepts connections on a TCP listener and hands each one off
// to a fixed pool of render workers via sched.
type jsonServer struct {
	sched *mcpng.Scheduler
	log   *slog.Logger
}

func newJSONServer(sched *mcpng.Scheduler, log *slog.Logger) *jsonServer {
	return &jsonServer{sched: sched, log: log}
}

// serve accepts connections on ln until it's closed, spawning one
// goroutine per connection. It returns the error that stopped accepting.
func (s *jsonServer) serve(ln net.Listener) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		go s.handleConn(conn)
	}
}

// errSink collects the first error reported for a job, if any.
type errSink struct {
	msg string
}

func (e *errSink) Error(msg string) {
	if e.msg == "" {
		e.msg = msg
	}
}

func (s *jsonServer) handleConn(conn net.Conn) {
	defer conn.Close()

	ident := conn.RemoteAddr().String()
	s.log.Info("accepted connection", slog.String("conn", ident))

	ec := newEtbConn(conn)
	if err := ec.writeMessage(welcomeMessage); err != nil {
		s.log.Warn("failed to send welcome message", slog.String("conn", ident))
		return
	}

	for {
		req, err := ec.readRequest()
		if err != nil {
			if err != io.EOF {
				s.log.Warn("closing connection after bad request", slog.String("conn", ident), slog.Any("err", err))
			} else {
				s.log.Info("connection closed", slog.String("conn", ident))
			}
			return
		}

		switch req.Cmd {
		case "SetName":
			if req.Name != "" {
				ident = fmt.Sprintf("%s (%s)", req.Name, conn.RemoteAddr().String())
			}
		case "RenderSchematic":
			s.handleRenderSchematic(ec, req, ident)
		default:
			s.log.Warn("unknown cmd", slog.String("conn", ident), slog.String("cmd", req.Cmd))
			return
		}
	}
}

func (s *jsonServer) handleRenderSchematic(ec *etbConn, req request, ident string) {
	sendError := func(msg string) {
		ec.writeMessage(response{CmdID: req.CmdID, Status: "error", ErrorText: msg})
	}

	raw, err := base64.StdEncoding.DecodeString(req.BlockData)
	if err != nil {
		sendError("Failed to decode block data.")
		return
	}

	markers, err := parseJSONMarkers(req.Markers)
	if err != nil {
		sendError(err.Error())
		return
	}

	job := mcpng.NewJob()
	job.Input = bytes.NewReader(raw)
	job.InputName = "schematic"
	job.Output = &bytes.Buffer{}
	job.StartX, job.EndX = derefOr(req.StartX, mcpng.Unbounded), derefOr(req.EndX, mcpng.Unbounded)
	job.StartY, job.EndY = derefOr(req.StartY, mcpng.Unbounded), derefOr(req.EndY, mcpng.Unbounded)
	job.StartZ, job.EndZ = derefOr(req.StartZ, mcpng.Unbounded), derefOr(req.EndZ, mcpng.Unbounded)
	job.HorzSize = derefOr(req.HorzSize, mcpng.DefaultHorzSize)
	job.VertSize = derefOr(req.VertSize, mcpng.DefaultVertSize)
	if req.NumCWRotations != nil {
		job.NumCCWRotations = (4 - (*req.NumCWRotations%4+4)%4) % 4
	} else if req.NumCCWRotations != nil {
		job.NumCCWRotations = *req.NumCCWRotations
	}
	job.Markers = markers

	sink := &errSink{}
	job.Errors = sink
	job.Done = make(chan struct{})

	s.sched.Submit(job)
	<-job.Done

	if sink.msg != "" {
		sendError(sink.msg)
		return
	}

	out := job.Output.(*bytes.Buffer)
	ec.writeMessage(response{
		CmdID:   req.CmdID,
		Status:  "ok",
		PngData: base64.StdEncoding.EncodeToString(out.Bytes()),
	})
}

func derefOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

// parseJSONMarkers resolves each marker's shape name and hex color into a
// mcpng.Marker, mirroring the batch front end's own marker parsing: an
// unknown shape or an unparseable color is an error.
func parseJSONMarkers(reqs []markerRequest) ([]mcpng.Marker, error) {
	out := make([]mcpng.Marker, 0, len(reqs))
	for _, m := range reqs {
		color := mcpng.NoColor
		if strings.TrimSpace(m.Color) != "" {
			v, err := strconv.ParseInt(strings.TrimPrefix(m.Color, "0x"), 16, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid marker color specification: %q", m.Color)
			}
			color = int32(v)
		}
		marker, err := mcpng.NewMarker(m.X, m.Y, m.Z, m.Shape, color)
		if err != nil {
			return nil, fmt.Errorf("unknown marker shape: %q", m.Shape)
		}
		out = append(out, marker)
	}
	return out, nil
}
