package normalize

import (
	"errors"
	"testing"
)

func TestDecodeSalary(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "$8.7K", want: 8700},
		{in: "$10.0K", want: 10000},
		{in: "$3.5K", want: 3500},
		{in: " FD $11.2K ", want: 11200},
		{in: "garbage", wantErr: true},
		{in: "$8K", wantErr: true},
		{in: "$8.75K", wantErr: true},
		{in: "8.7K", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := DecodeSalary(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformed) {
					t.Errorf("DecodeSalary(%q) error = %v, want ErrMalformed", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeSalary(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("DecodeSalary(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
