package domain_test

import (
	"testing"
	"time"

	"studyhub/internal/modules/timer/domain"
)

func TestFormat(t *testing.T) {
	t.Parallel()
	cases := map[time.Duration]string{
		0:                              "00:00",
		59 * time.Second:               "00:59",
		61 * time.Minute:               "01:01:00",
		60 * time.Minute:               "01:00:00",
		59*time.Minute + 5*time.Second: "59:05",
		-time.Second:                   "00:00",
	}
	for in, want := range cases {
		if got := domain.Format(in); got != want {
			t.Fatalf("Format(%s) = %q, want %q", in, got, want)
		}
	}
}
