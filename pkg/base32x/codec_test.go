package base32x_test

import (
	"crypto/rand"
	"encoding/base32"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salescoach/authkit/pkg/base32x"
)

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	for size := 0; size <= 64; size++ {
		b := make([]byte, size)
		_, err := rand.Read(b)
		require.NoError(t, err)

		decoded := base32x.Decode(base32x.Encode(b))
		assert.Equal(t, b, decoded, "round trip failed for %d bytes", size)
	}
}

func TestEncodeMatchesStdlib(t *testing.T) {
	t.Parallel()

	b := []byte("sales-training-secret")
	assert.Equal(t, base32.StdEncoding.EncodeToString(b), base32x.Encode(b))
}

func TestDecodePermissive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []byte
	}{
		{
			name:  "clean input",
			input: "MZXW6YTBOI======",
			want:  []byte("foobar"),
		},
		{
			name:  "lowercase accepted",
			input: "mzxw6ytboi",
			want:  []byte("foobar"),
		},
		{
			name:  "spaces and dashes dropped",
			input: "MZXW 6YTB-OI",
			want:  []byte("foobar"),
		},
		{
			name:  "garbage characters dropped",
			input: "MZ!XW@6Y#TB$OI%",
			want:  []byte("foobar"),
		},
		{
			name:  "empty input",
			input: "",
			want:  []byte{},
		},
		{
			name:  "only invalid characters",
			input: "!@#$%^&*()01",
			want:  []byte{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, base32x.Decode(tt.input))
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "MZXW6YTBOI", base32x.Normalize("mzxw 6ytb-oi"))
	assert.Equal(t, "ABC234", base32x.Normalize("abc 234"))
	assert.Equal(t, "", base32x.Normalize("!@#"))
}
