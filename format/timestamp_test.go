package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTimestamp_Compare(t *testing.T) {
	tests := []struct {
		name string
		a, b Timestamp
		want int
	}{
		{"equal", Timestamp{Sec: 10, Nsec: 500}, Timestamp{Sec: 10, Nsec: 500}, 0},
		{"sec earlier", Timestamp{Sec: 9, Nsec: 999}, Timestamp{Sec: 10, Nsec: 0}, -1},
		{"sec later", Timestamp{Sec: 11, Nsec: 0}, Timestamp{Sec: 10, Nsec: 999}, 1},
		{"nsec earlier", Timestamp{Sec: 10, Nsec: 100}, Timestamp{Sec: 10, Nsec: 200}, -1},
		{"nsec later", Timestamp{Sec: 10, Nsec: 300}, Timestamp{Sec: 10, Nsec: 200}, 1},
		{"negative sec", Timestamp{Sec: -5, Nsec: 0}, Timestamp{Sec: 0, Nsec: 0}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.a.Compare(tt.b))
			require.Equal(t, -tt.want, tt.b.Compare(tt.a))
		})
	}
}

func TestTimestamp_RoundTripV3(t *testing.T) {
	orig := Timestamp{Sec: 0x1122334455, Nsec: 999999999}

	buf := make([]byte, TimestampV3Size)
	EncodeTimestampV3(buf, orig)

	require.Equal(t, orig, DecodeTimestampV3(buf))
}

func TestTimestamp_RoundTripV2(t *testing.T) {
	t.Run("whole microseconds survive", func(t *testing.T) {
		orig := Timestamp{Sec: 1700000000, Nsec: 123456000}

		buf := make([]byte, TimestampV2Size)
		EncodeTimestampV2(buf, orig)

		require.Equal(t, orig, DecodeTimestampV2(buf))
	})

	t.Run("sub-microsecond precision truncates", func(t *testing.T) {
		orig := Timestamp{Sec: 1700000000, Nsec: 123456789}

		buf := make([]byte, TimestampV2Size)
		EncodeTimestampV2(buf, orig)

		require.Equal(t, Timestamp{Sec: 1700000000, Nsec: 123456000}, DecodeTimestampV2(buf))
	})
}

func TestTimestamp_VersionDispatch(t *testing.T) {
	orig := Timestamp{Sec: 42, Nsec: 7000}

	for _, version := range []LogVersion{LogVersionV2, LogVersionV3} {
		buf := make([]byte, TimestampSize(version))
		EncodeTimestamp(version, buf, orig)
		require.Equal(t, orig, DecodeTimestamp(version, buf))
	}
}
