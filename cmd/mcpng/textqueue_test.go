package main

import (
	"testing"

	"github.com/flga/mcpng"
)

func TestProcessPropertyLineSetsFields(t *testing.T) {
	job := mcpng.NewJob()
	cases := []struct {
		line string
	}{
		{"outfile=out.png"},
		{"StartX 1"},
		{"EndX:5"},
		{"HorzSize\t8"},
		{"VertSize 9"},
		{"NumCCWRotations=2"},
	}
	for _, c := range cases {
		if err := processPropertyLine(job, c.line); err != nil {
			t.Fatalf("processPropertyLine(%q): %v", c.line, err)
		}
	}
	if job.OutputName != "out.png" {
		t.Errorf("OutputName = %q, want out.png", job.OutputName)
	}
	if job.StartX != 1 {
		t.Errorf("StartX = %d, want 1", job.StartX)
	}
	if job.EndX != 5 {
		t.Errorf("EndX = %d, want 5", job.EndX)
	}
	if job.HorzSize != 8 {
		t.Errorf("HorzSize = %d, want 8", job.HorzSize)
	}
	if job.VertSize != 9 {
		t.Errorf("VertSize = %d, want 9", job.VertSize)
	}
	if job.NumCCWRotations != 2 {
		t.Errorf("NumCCWRotations = %d, want 2", job.NumCCWRotations)
	}
}

func TestProcessPropertyLineSpacedSeparator(t *testing.T) {
	job := mcpng.NewJob()
	cases := []struct {
		line string
	}{
		{"outfile = spaced.png"},
		{"horzsize = 10"},
		{"vertsize : 11"},
	}
	for _, c := range cases {
		if err := processPropertyLine(job, c.line); err != nil {
			t.Fatalf("processPropertyLine(%q): %v", c.line, err)
		}
	}
	if job.OutputName != "spaced.png" {
		t.Errorf("OutputName = %q, want spaced.png", job.OutputName)
	}
	if job.HorzSize != 10 {
		t.Errorf("HorzSize = %d, want 10", job.HorzSize)
	}
	if job.VertSize != 11 {
		t.Errorf("VertSize = %d, want 11", job.VertSize)
	}
}

func TestProcessPropertyLineNumCWRotationsConverts(t *testing.T) {
	job := mcpng.NewJob()
	if err := processPropertyLine(job, "numcwrotations=1"); err != nil {
		t.Fatalf("processPropertyLine: %v", err)
	}
	if job.NumCCWRotations != 3 {
		t.Errorf("NumCCWRotations = %d, want 3 (1 CW == 3 CCW)", job.NumCCWRotations)
	}
}

func TestProcessPropertyLineUnknownPropertyIsAnError(t *testing.T) {
	job := mcpng.NewJob()
	if err := processPropertyLine(job, "notaproperty=1"); err == nil {
		t.Fatal("expected an error for an unrecognized property name")
	}
}

func TestProcessPropertyLineCaseInsensitiveNames(t *testing.T) {
	job := mcpng.NewJob()
	if err := processPropertyLine(job, "OUTFILE=x.png"); err != nil {
		t.Fatalf("processPropertyLine: %v", err)
	}
	if job.OutputName != "x.png" {
		t.Errorf("OutputName = %q, want x.png", job.OutputName)
	}
}

func TestAddMarkerParsesCSVWithColor(t *testing.T) {
	job := mcpng.NewJob()
	if err := addMarker(job, "1, 2, 3, Cube, 0xff0000"); err != nil {
		t.Fatalf("addMarker: %v", err)
	}
	if len(job.Markers) != 1 {
		t.Fatalf("len(Markers) = %d, want 1", len(job.Markers))
	}
	m := job.Markers[0]
	if m.X != 1 || m.Y != 2 || m.Z != 3 {
		t.Errorf("marker coords = (%d,%d,%d), want (1,2,3)", m.X, m.Y, m.Z)
	}
	if m.Color != 0xff0000 {
		t.Errorf("marker color = %#x, want 0xff0000", m.Color)
	}
}

func TestAddMarkerDefaultsColorWhenOmitted(t *testing.T) {
	job := mcpng.NewJob()
	if err := addMarker(job, "0;0;0;Cube"); err != nil {
		t.Fatalf("addMarker: %v", err)
	}
	if job.Markers[0].Color != mcpng.NoColor {
		t.Errorf("marker color = %#x, want NoColor sentinel", job.Markers[0].Color)
	}
}

func TestAddMarkerUnknownShapeIsAnError(t *testing.T) {
	job := mcpng.NewJob()
	if err := addMarker(job, "0,0,0,NotAShape"); err == nil {
		t.Fatal("expected an error for an unknown marker shape")
	}
}

func TestAddMarkerTooFewFieldsIsAnError(t *testing.T) {
	job := mcpng.NewJob()
	if err := addMarker(job, "0,0,Cube"); err == nil {
		t.Fatal("expected an error for a marker spec missing a coordinate")
	}
}

func TestParseIntOrUnbounded(t *testing.T) {
	if v := parseIntOrUnbounded("5"); v != 5 {
		t.Errorf("parseIntOrUnbounded(\"5\") = %d, want 5", v)
	}
	if v := parseIntOrUnbounded("not a number"); v != mcpng.Unbounded {
		t.Errorf("parseIntOrUnbounded(garbage) = %d, want Unbounded", v)
	}
}
