package timex

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"string form", `"1h30m"`, 90 * time.Minute, false},
		{"seconds string", `"15s"`, 15 * time.Second, false},
		{"nanoseconds number", `1000000000`, time.Second, false},
		{"invalid string", `"bogus"`, 0, true},
		{"invalid type", `[1]`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.Duration != tt.want {
				t.Errorf("got %v, want %v", d.Duration, tt.want)
			}
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Duration{90 * time.Minute})
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	if string(b) != `"1h30m0s"` {
		t.Errorf("unexpected output: %s", b)
	}
}
