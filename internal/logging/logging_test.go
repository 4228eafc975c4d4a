package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "", want: slog.LevelInfo},
		{in: "info", want: slog.LevelInfo},
		{in: " DEBUG ", want: slog.LevelDebug},
		{in: "warn", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "trace", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLevel(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseLevel(%q) expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseLevel(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestConfigure_FiltersByLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	if err := configure(&buf, LevelWarn); err != nil {
		t.Fatalf("configure() error = %v", err)
	}

	slog.Info("Hidden message.")
	slog.Warn("Configuration works but is limited.", "region", "southamerica-east1")

	out := buf.String()
	if strings.Contains(out, "Hidden message.") {
		t.Errorf("info message logged at warn level:\n%s", out)
	}
	if !strings.Contains(out, "region=southamerica-east1") {
		t.Errorf("warn message missing:\n%s", out)
	}
}

func TestConfigure_InvalidLevelKeepsLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	if err := configure(&bytes.Buffer{}, "loud"); err == nil {
		t.Fatal("configure() expected error")
	}
	if slog.Default() != prev {
		t.Error("default logger replaced despite invalid level")
	}
}
