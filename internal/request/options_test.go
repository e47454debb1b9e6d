package request

import (
	"errors"
	"testing"
)

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name    string
		bag     map[string]string
		want    Options
		wantErr bool
	}{
		{"nil bag uses defaults", nil, Options{Quality: DefaultQuality}, false},
		{"empty bag uses defaults", map[string]string{}, Options{Quality: DefaultQuality}, false},
		{"flags parsed", map[string]string{"fast": "true", "force": "1", "backup": "false"},
			Options{Fast: true, Force: true, Quality: DefaultQuality}, false},
		{"quality parsed", map[string]string{"quality": "85"}, Options{Quality: 85}, false},
		{"quality zero allowed", map[string]string{"quality": "0"}, Options{Quality: 0}, false},
		{"quality too high", map[string]string{"quality": "101"}, Options{}, true},
		{"quality negative", map[string]string{"quality": "-3"}, Options{}, true},
		{"quality non-numeric", map[string]string{"quality": "high"}, Options{}, true},
		{"bad boolean", map[string]string{"fast": "yes please"}, Options{}, true},
		{"unknown key", map[string]string{"threads": "4"}, Options{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOptions(tt.bag)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOptions() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrBadOption) {
					t.Errorf("err = %v, want ErrBadOption", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestOperation_Bulk(t *testing.T) {
	bulk := []Operation{OpBulkConvert, OpBulkAudio, OpCompressImage}
	single := []Operation{OpConvert, OpMute, OpExtractAudio, OpConvertImage}

	for _, op := range bulk {
		if !op.Bulk() {
			t.Errorf("%s should be bulk", op)
		}
	}
	for _, op := range single {
		if op.Bulk() {
			t.Errorf("%s should not be bulk", op)
		}
	}
}
