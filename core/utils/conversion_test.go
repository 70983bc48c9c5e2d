package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToInt64(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    int64
		wantErr bool
	}{
		{"Int", 5, 5, false},
		{"Uint8", uint8(7), 7, false},
		{"WholeFloat", 12.0, 12, false},
		{"FractionalFloat", 12.5, 0, true},
		{"String", " 42 ", 42, false},
		{"FloatString", "3.0", 3, false},
		{"Bytes", []byte("9"), 9, false},
		{"Garbage", "abc", 0, true},
		{"Struct", struct{}{}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToInt64(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToFloat64(t *testing.T) {
	f, err := ToFloat64(float32(0.1))
	assert.NoError(t, err)
	assert.Equal(t, 0.1, f)

	f, err = ToFloat64("12.25")
	assert.NoError(t, err)
	assert.Equal(t, 12.25, f)

	f, err = ToFloat64(int64(10))
	assert.NoError(t, err)
	assert.Equal(t, 10.0, f)

	_, err = ToFloat64("ten")
	assert.Error(t, err)
}

func TestToBool(t *testing.T) {
	b, err := ToBool("TRUE")
	assert.NoError(t, err)
	assert.True(t, b)

	b, err = ToBool(int8(0))
	assert.NoError(t, err)
	assert.False(t, b)

	_, err = ToBool(2)
	assert.Error(t, err)
}

func TestToString(t *testing.T) {
	assert.Equal(t, "12", ToString(12.0))
	assert.Equal(t, "0.5", ToString(float32(0.5)))
	assert.Equal(t, "abc", ToString([]byte("abc")))
	assert.Equal(t, "", ToString(nil))
}

func TestParseTime(t *testing.T) {
	want := time.Date(2024, 8, 1, 10, 30, 0, 0, time.UTC)

	for _, s := range []string{"2024-08-01 10:30:00", "2024-08-01T10:30:00", "2024-08-01T10:30:00Z"} {
		got, err := ParseTime(s)
		assert.NoError(t, err, s)
		assert.True(t, want.Equal(got), s)
	}

	d, err := ParseTime("2024-08-01")
	assert.NoError(t, err)
	assert.Equal(t, 1, d.Day())

	_, err = ParseTime("yesterday")
	assert.Error(t, err)
}
