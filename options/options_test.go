package options

import (
	"bytes"
	"errors"
	"flag"
	"log"
	"strings"
	"testing"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })
	return &buf
}

func TestParseDefaults(t *testing.T) {
	o, err := Parse([]string{"shader.frag"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if o.FragmentPath != "shader.frag" {
		t.Errorf("FragmentPath = %q, want shader.frag", o.FragmentPath)
	}
	if o.OutputFile != "output.png" {
		t.Errorf("OutputFile = %q, want output.png", o.OutputFile)
	}
	if o.WarmupFrames != 2 {
		t.Errorf("WarmupFrames = %d, want 2", o.WarmupFrames)
	}
	if o.Width != 640 || o.Height != 480 {
		t.Errorf("size = %dx%d, want 640x480", o.Width, o.Height)
	}
	if o.Persist || o.Animate || o.ExitAfterCompile || o.ExitAfterLink {
		t.Errorf("boolean flags set without being given: %+v", o)
	}
	if o.VertexPath != "" || o.BinaryDumpPath != "" {
		t.Errorf("optional paths set without being given: %+v", o)
	}
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(*ShaderOptions) bool
	}{
		{"persist", []string{"--persist", "a.frag"}, func(o *ShaderOptions) bool { return o.Persist }},
		{"animate", []string{"a.frag", "--animate"}, func(o *ShaderOptions) bool { return o.Animate }},
		{"exit_compile", []string{"--exit_compile", "a.frag"}, func(o *ShaderOptions) bool { return o.ExitAfterCompile }},
		{"exit_linking", []string{"--exit_linking", "a.frag"}, func(o *ShaderOptions) bool { return o.ExitAfterLink }},
		{"output", []string{"--output", "out.png", "a.frag"}, func(o *ShaderOptions) bool { return o.OutputFile == "out.png" }},
		{"vertex", []string{"a.frag", "--vertex", "v.vert"}, func(o *ShaderOptions) bool { return o.VertexPath == "v.vert" }},
		{"dump_bin", []string{"--dump_bin", "prog.bin", "a.frag"}, func(o *ShaderOptions) bool { return o.BinaryDumpPath == "prog.bin" }},
		{"warmup", []string{"--warmup", "5", "a.frag"}, func(o *ShaderOptions) bool { return o.WarmupFrames == 5 }},
		{"size", []string{"--width", "320", "--height", "200", "a.frag"}, func(o *ShaderOptions) bool { return o.Width == 320 && o.Height == 200 }},
		{"dialect", []string{"--dialect", "webgl2", "a.frag"}, func(o *ShaderOptions) bool { return o.Dialect == DialectWebGL2 }},
		{"value after positional", []string{"a.frag", "--output", "x.png"}, func(o *ShaderOptions) bool { return o.OutputFile == "x.png" }},
		{"value looks like a flag", []string{"--output", "--persist", "a.frag"}, func(o *ShaderOptions) bool { return o.OutputFile == "--persist" && !o.Persist }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := Parse(tt.args)
			if err != nil {
				t.Fatalf("Parse(%v) error = %v", tt.args, err)
			}
			if o.FragmentPath != "a.frag" {
				t.Errorf("FragmentPath = %q, want a.frag", o.FragmentPath)
			}
			if !tt.check(o) {
				t.Errorf("Parse(%v) = %+v", tt.args, o)
			}
		})
	}
}

func TestParseFirstPositionalWins(t *testing.T) {
	logs := captureLog(t)

	o, err := Parse([]string{"first.frag", "--animate", "second.frag", "third.frag"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if o.FragmentPath != "first.frag" {
		t.Errorf("FragmentPath = %q, want first.frag", o.FragmentPath)
	}
	if !o.Animate {
		t.Error("flag after the first positional was not parsed")
	}
	for _, extra := range []string{"second.frag", "third.frag"} {
		if !strings.Contains(logs.String(), "Ignoring extra argument "+extra) {
			t.Errorf("no warning for %s in log: %q", extra, logs.String())
		}
	}
}

func TestParseUnknownFlagIsNotFatal(t *testing.T) {
	logs := captureLog(t)

	o, err := Parse([]string{"--bogus", "--persist", "a.frag"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !o.Persist || o.FragmentPath != "a.frag" {
		t.Errorf("Parse() = %+v", o)
	}
	if !strings.Contains(logs.String(), "Unknown argument: --bogus") {
		t.Errorf("unknown flag not reported: %q", logs.String())
	}
}

func TestParseOnlyExactDoubleDashTokensAreFlags(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		wantFragment string
		wantUnknown  string
		wantPersist  bool
	}{
		{"flag with inline value", []string{"--persist=maybe", "a.frag"}, "a.frag", "--persist=maybe", false},
		{"triple dash", []string{"---weird", "a.frag"}, "a.frag", "---weird", false},
		{"abbreviated help", []string{"--h", "a.frag"}, "a.frag", "--h", false},
		{"inline size", []string{"--width=320", "a.frag"}, "a.frag", "--width=320", false},
		{"bare terminator", []string{"--", "a.frag", "--persist"}, "a.frag", "Unknown argument: --\n", true},
		{"single dash is positional", []string{"-persist", "a.frag"}, "-persist", "", false},
		{"single dash help is positional", []string{"-h"}, "-h", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := captureLog(t)

			o, err := Parse(tt.args)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.args, err)
			}
			if o.FragmentPath != tt.wantFragment {
				t.Errorf("FragmentPath = %q, want %q", o.FragmentPath, tt.wantFragment)
			}
			if o.Persist != tt.wantPersist {
				t.Errorf("Persist = %v, want %v", o.Persist, tt.wantPersist)
			}
			if tt.wantUnknown != "" && !strings.Contains(logs.String(), tt.wantUnknown) {
				t.Errorf("log %q does not report %q", logs.String(), tt.wantUnknown)
			}
			if tt.wantUnknown == "" && strings.Contains(logs.String(), "Unknown argument") {
				t.Errorf("unexpected unknown-argument warning: %q", logs.String())
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	captureLog(t)

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"no arguments", nil, ErrNoFragmentShader},
		{"flags only", []string{"--persist", "--animate"}, ErrNoFragmentShader},
		{"help", []string{"--help"}, flag.ErrHelp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.args)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%v) error = %v, want %v", tt.args, err, tt.want)
			}
		})
	}

	invalid := [][]string{
		{"--warmup", "0", "a.frag"},
		{"--width", "-1", "a.frag"},
		{"--dialect", "hlsl", "a.frag"},
		{"--output", "", "a.frag"},
		{"a.frag", "--output"},
		{"--warmup", "two", "a.frag"},
	}
	for _, args := range invalid {
		if _, err := Parse(args); err == nil {
			t.Errorf("Parse(%v) succeeded, want error", args)
		}
	}
}

func TestUsage(t *testing.T) {
	var buf bytes.Buffer
	Usage(&buf)
	for _, name := range []string{"--persist", "--exit_compile", "--dump_bin", "--warmup", "--help"} {
		if !strings.Contains(buf.String(), name) {
			t.Errorf("usage text missing %s", name)
		}
	}
}
