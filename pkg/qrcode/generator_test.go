package qrcode_test

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salescoach/authkit/pkg/qrcode"
)

func TestPNG(t *testing.T) {
	t.Parallel()

	data, err := qrcode.PNG("otpauth://totp/SalesCoach:coach%40example.com?secret=ABC", 128)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
}

func TestPNGEmptyContent(t *testing.T) {
	t.Parallel()

	_, err := qrcode.PNG("   \t\n", 128)
	assert.ErrorIs(t, err, qrcode.ErrEmptyContent)
}

func TestPNGDefaultSize(t *testing.T) {
	t.Parallel()

	data, err := qrcode.PNG("hello", 0)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, qrcode.DefaultSize, img.Bounds().Dx())
}

func TestDataURI(t *testing.T) {
	t.Parallel()

	uri, err := qrcode.DataURI("hello", 64)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
}
