package normalize

import (
	"errors"
	"testing"
	"time"
)

func TestDateResolver_Rollover(t *testing.T) {
	r := NewDateResolver(time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC))

	tests := []struct {
		desc     string
		wantYear int
	}{
		{"Dec 5", 2023},
		{"Apr 1", 2023},
		{"Mar 14", 2024},
		{"Feb 29", 2024},
		{"Jan 2", 2024},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, err := r.ResolveAs(tt.desc, DateOnly)
			if err != nil {
				t.Fatalf("ResolveAs(%q) error = %v", tt.desc, err)
			}
			if got.Year() != tt.wantYear {
				t.Errorf("ResolveAs(%q).Year() = %d, want %d", tt.desc, got.Year(), tt.wantYear)
			}
		})
	}
}

func TestDateResolver_DateOnly(t *testing.T) {
	r := NewDateResolver(time.Date(2018, time.February, 1, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		desc string
		want time.Time
	}{
		{"Jan 11", time.Date(2018, time.January, 11, 0, 0, 0, 0, time.UTC)},
		{"Jan11", time.Date(2018, time.January, 11, 0, 0, 0, 0, time.UTC)},
		{"  Oct&nbsp;28 ", time.Date(2017, time.October, 28, 0, 0, 0, 0, time.UTC)},
		{"Expected return: Nov 3", time.Date(2017, time.November, 3, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, err := r.ResolveAs(tt.desc, DateOnly)
			if err != nil {
				t.Fatalf("ResolveAs(%q) error = %v", tt.desc, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ResolveAs(%q) = %v, want %v", tt.desc, got, tt.want)
			}
		})
	}
}

func TestDateResolver_DateTime(t *testing.T) {
	r := NewDateResolver(time.Date(2018, time.March, 10, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		desc string
		want time.Time
	}{
		{"Mar 9 - 7:45 PM", time.Date(2018, time.March, 9, 19, 45, 0, 0, time.UTC)},
		{"Mar 9 - 9:05 AM", time.Date(2018, time.March, 9, 9, 5, 0, 0, time.UTC)},
		{"Dec 30 - 11:59 PM", time.Date(2017, time.December, 30, 23, 59, 0, 0, time.UTC)},
		// 12 AM is not shifted back to midnight
		{"Mar 1 - 12:15 AM", time.Date(2018, time.March, 1, 12, 15, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, err := r.ResolveAs(tt.desc, DateTime)
			if err != nil {
				t.Fatalf("ResolveAs(%q) error = %v", tt.desc, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ResolveAs(%q) = %v, want %v", tt.desc, got, tt.want)
			}
		})
	}
}

func TestDateResolver_Failures(t *testing.T) {
	r := NewDateResolver(time.Date(2018, time.March, 10, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name   string
		desc   string
		layout Layout
	}{
		{"no match", "yesterday", DateOnly},
		{"unknown month", "Foo 12", DateOnly},
		{"four letter month", "Sept 12", DateOnly},
		{"day zero", "Jan 0", DateOnly},
		{"day past month end", "Feb 30", DateOnly},
		{"missing time", "Mar 9", DateTime},
		{"noon overflows", "Mar 9 - 12:30 PM", DateTime},
		{"bad minute", "Mar 9 - 7:75 PM", DateTime},
		{"empty", "", DateOnly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.ResolveAs(tt.desc, tt.layout)
			if err == nil {
				t.Fatalf("ResolveAs(%q) = %v, want error", tt.desc, got)
			}
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("error %v does not wrap ErrMalformed", err)
			}
			var re *ResolutionError
			if !errors.As(err, &re) || re.Field != "date" || re.Input != tt.desc {
				t.Errorf("error %#v lacks field/input detail", err)
			}
			if !got.IsZero() {
				t.Errorf("failed resolution returned %v, want zero time", got)
			}
		})
	}
}

func TestDateResolver_ResolvePicksLayout(t *testing.T) {
	r := NewDateResolver(time.Date(2018, time.March, 10, 0, 0, 0, 0, time.UTC))

	got, err := r.Resolve("Mar 9 - 7:45 PM")
	if err != nil || got.Hour() != 19 {
		t.Errorf("Resolve(date-with-time) = %v, %v", got, err)
	}
	got, err = r.Resolve("Mar 9")
	if err != nil || got.Hour() != 0 || got.Day() != 9 {
		t.Errorf("Resolve(date-only) = %v, %v", got, err)
	}

	for _, desc := range []string{
		"Mar 9 - 12:30 PM",
		"Mar 9 - 7:75 PM",
		"Mar 9 - 7:30 XM",
		"Mar 9 7:30 PM",
	} {
		got, err := r.Resolve(desc)
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("Resolve(%q) = %v, %v, want ErrMalformed", desc, got, err)
		}
		if !got.IsZero() {
			t.Errorf("Resolve(%q) returned %v, want zero time", desc, got)
		}
	}
}

func TestDateResolver_KeepsLocation(t *testing.T) {
	loc := time.FixedZone("ET", -5*3600)
	r := NewDateResolver(time.Date(2018, time.March, 10, 0, 0, 0, 0, loc))
	got, err := r.Resolve("Mar 9")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.Location() != loc {
		t.Errorf("Location() = %v, want %v", got.Location(), loc)
	}
	if r.ReferenceYear() != 2018 || r.ReferenceMonth() != time.March {
		t.Errorf("reference = %d/%v", r.ReferenceYear(), r.ReferenceMonth())
	}
}
