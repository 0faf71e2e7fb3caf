package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
)

// etb is the message separator used by the JSON-over-TCP front end:
// messages are not length-prefixed, just split on this byte.
const etb = 0x17

// request is the shape of an incoming JSON-over-TCP command. Only the
// fields a given Cmd actually uses are populated by the client; the rest
// stay at their zero value.
type request struct {
	Cmd   string          `json:"Cmd"`
	CmdID json.RawMessage `json:"CmdID"`

	Name string `json:"Name"`

	BlockData string `json:"BlockData"`

	StartX *int `json:"StartX"`
	EndX   *int `json:"EndX"`
	StartY *int `json:"StartY"`
	EndY   *int `json:"EndY"`
	StartZ *int `json:"StartZ"`
	EndZ   *int `json:"EndZ"`

	HorzSize        *int `json:"HorzSize"`
	VertSize        *int `json:"VertSize"`
	NumCWRotations  *int `json:"NumCWRotations"`
	NumCCWRotations *int `json:"NumCCWRotations"`

	Markers []markerRequest `json:"Markers"`
}

type markerRequest struct {
	X, Y, Z int
	Shape   string
	Color   string
}

type response struct {
	CmdID     json.RawMessage `json:"CmdID,omitempty"`
	Status    string          `json:"Status"`
	ErrorText string          `json:"ErrorText,omitempty"`
	PngData   string          `json:"PngData,omitempty"`
}

// etbConn frames JSON messages over a net.Conn using the ETB byte as a
// delimiter.
type etbConn struct {
	conn net.Conn
	r    *bufio.Reader
}

func newEtbConn(conn net.Conn) *etbConn {
	return &etbConn{conn: conn, r: bufio.NewReader(conn)}
}

// readRequest reads bytes up to the next ETB and parses them as JSON. It
// returns io.EOF-wrapping errors unchanged so callers can distinguish a
// clean disconnect from a malformed message.
func (c *etbConn) readRequest() (request, error) {
	raw, err := c.r.ReadBytes(etb)
	if err != nil {
		return request{}, err
	}
	raw = raw[:len(raw)-1] // drop the trailing ETB
	var req request
	if err := json.Unmarshal(raw, &req); err != nil {
		return request{}, fmt.Errorf("invalid json: %w", err)
	}
	return req, nil
}

// writeMessage marshals v and writes it followed by an ETB.
func (c *etbConn) writeMessage(v interface{}) error {
	buf, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf = append(buf, etb)
	_, err = c.conn.Write(buf)
	return err
}
