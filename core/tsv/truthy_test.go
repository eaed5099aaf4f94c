package tsv

import "testing"

func TestTruthy(t *testing.T) {
	cases := map[string]bool{
		"yes": true, "YES": true, "Yes": true,
		"true": true, "TRUE": true,
		"1": true, "y": true, "T": true,
		" yes ": true,
		"":      false, "no": false, "0": false, "false": false,
		"-": false, "nan": false, "2": false,
	}
	for in, want := range cases {
		if got := Truthy(in); got != want {
			t.Errorf("Truthy(%q) = %v, want %v", in, got, want)
		}
	}
}
