package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    log.Level
		wantErr bool
	}{
		{"debug", log.DebugLevel, false},
		{"INFO", log.InfoLevel, false},
		{"warning", log.WarnLevel, false},
		{" error ", log.ErrorLevel, false},
		{"verbose", log.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestComponentPrefix(t *testing.T) {
	var buf bytes.Buffer
	l := Component(New(&buf, log.DebugLevel), "Grid")
	l.Warn("out of bounds", "x", 9)

	out := buf.String()
	if !strings.Contains(out, "Grid") {
		t.Errorf("output %q does not contain component prefix", out)
	}
	if !strings.Contains(out, "x=9") {
		t.Errorf("output %q does not contain key/value pair", out)
	}
}

func TestFromContext(t *testing.T) {
	if got := FromContext(context.Background()); got != Default() {
		t.Errorf("FromContext(empty) = %p, want default %p", got, Default())
	}

	l := New(&bytes.Buffer{}, log.InfoLevel)
	ctx := WithLogger(context.Background(), l)
	if got := FromContext(ctx); got != l {
		t.Errorf("FromContext(ctx) = %p, want %p", got, l)
	}
}
