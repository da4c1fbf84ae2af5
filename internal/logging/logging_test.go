package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewTagsService(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Output: &buf})

	log.Info().Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"service":"policyscan"`) {
		t.Errorf("output missing service field: %s", out)
	}
	if !strings.Contains(out, `"message":"hello"`) {
		t.Errorf("output missing message: %s", out)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Output: &buf})

	log.Info().Msg("suppressed")
	if buf.Len() != 0 {
		t.Errorf("info output at warn level: %s", buf.String())
	}

	log.Warn().Msg("emitted")
	if buf.Len() == 0 {
		t.Error("warn output missing at warn level")
	}
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	log := Component(New(Config{Output: &buf}), "ocr")

	log.Info().Msg("tick")
	if !strings.Contains(buf.String(), `"component":"ocr"`) {
		t.Errorf("output missing component field: %s", buf.String())
	}
}

func TestNopDiscards(t *testing.T) {
	log := Nop()
	log.Error().Msg("dropped")
}
