package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{name: "iso date", input: "2024-03-15", want: NewDate(2024, time.March, 15)},
		{name: "surrounding whitespace", input: " 2024-03-15 ", want: NewDate(2024, time.March, 15)},
		{name: "slashes", input: "2024/03/15", wantErr: true},
		{name: "day first", input: "15-03-2024", wantErr: true},
		{name: "invalid day", input: "2024-02-30", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDate(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %v", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tc.want.Time) {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestDateScan(t *testing.T) {
	want := NewDate(2024, time.July, 4)
	sources := []any{
		time.Date(2024, time.July, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.July, 4, 0, 0, 0, 0, time.FixedZone("UTC+2", 2*60*60)),
		"2024-07-04",
		"2024-07-04T00:00:00Z",
		[]byte("2024-07-04"),
	}

	for _, src := range sources {
		var d Date
		if err := d.Scan(src); err != nil {
			t.Fatalf("scan %#v: %v", src, err)
		}
		if d.String() != want.String() {
			t.Fatalf("scan %#v: expected %s, got %s", src, want, d)
		}
	}

	var d Date
	if err := d.Scan(nil); err == nil {
		t.Fatal("expected error scanning NULL")
	}
	if err := d.Scan(42); err == nil {
		t.Fatal("expected error scanning int")
	}
}

func TestDateJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Date Date `json:"date"`
	}{Date: NewDate(2023, time.December, 1)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"date":"2023-12-01"}` {
		t.Fatalf("unexpected JSON: %s", data)
	}

	var decoded struct {
		Date Date `json:"date"`
	}
	if err := json.Unmarshal([]byte(`{"date":"2023-12-01"}`), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Date.String() != "2023-12-01" {
		t.Fatalf("unexpected date: %s", decoded.Date)
	}
	if err := json.Unmarshal([]byte(`{"date":"12/01/2023"}`), &decoded); err == nil {
		t.Fatal("expected error for malformed date")
	}
}
