package output

import (
	"bytes"
	"strings"
	"testing"
)

type sample struct {
	Name      string   `json:"name"`
	Total     float64  `json:"total"`
	AvgActual *float64 `json:"avgActual"`
	Notes     string   `json:"notes,omitempty"`
	Rows      []int    `json:"rows"`
}

func TestDeterministicEncodeNullVsZero(t *testing.T) {
	zero := 0.0
	withZero, err := DeterministicEncode(sample{Name: "a", AvgActual: &zero})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	withNil, err := DeterministicEncode(sample{Name: "a"})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	if !strings.Contains(string(withZero), `"avgActual":0`) {
		t.Errorf("recapped-at-zero should encode 0, got %s", withZero)
	}
	if !strings.Contains(string(withNil), `"avgActual":null`) {
		t.Errorf("never-recapped should encode explicit null, got %s", withNil)
	}
}

func TestDeterministicEncodeOmitEmpty(t *testing.T) {
	data, err := DeterministicEncode(sample{Name: "a"})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if strings.Contains(string(data), "notes") {
		t.Errorf("omitempty field should be dropped, got %s", data)
	}
}

func TestDeterministicEncodeNilSliceIsEmptyArray(t *testing.T) {
	data, err := DeterministicEncode(sample{Name: "a"})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if !strings.Contains(string(data), `"rows":[]`) {
		t.Errorf("nil slice should encode as [], got %s", data)
	}
}

func TestDeterministicEncodeRepeatable(t *testing.T) {
	v := map[string]interface{}{
		"zebra": 1.23456789,
		"alpha": []float64{1.0000001, 2},
		"mid":   sample{Name: "x", Total: 10.5},
	}

	first, err := DeterministicEncode(v)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := DeterministicEncode(v)
		if err != nil {
			t.Fatalf("encode failed: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("encoding not byte-identical:\n%s\n%s", first, again)
		}
	}
}

func TestDeterministicEncodeFloatNormalization(t *testing.T) {
	data, err := DeterministicEncode(map[string]float64{"v": 0.1234567891})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if !strings.Contains(string(data), "0.123457") {
		t.Errorf("float should round to 6 places, got %s", data)
	}
}
