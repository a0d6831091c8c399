package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/cleancity/api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG.
var pngPixel = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89,
}

func validReport() model.ReportInput {
	return model.ReportInput{
		Name:        "Ana",
		Contact:     "555-0101",
		Location:    "5th & Main",
		WasteType:   model.WasteIllegalDumping,
		Description: "trash pile blocking sidewalk",
	}
}

func TestValidateReport(t *testing.T) {
	t.Run("valid input is trimmed", func(t *testing.T) {
		in := validReport()
		in.Name = "  Ana "
		out, err := ValidateReport(in)
		require.NoError(t, err)
		assert.Equal(t, "Ana", out.Name)
		assert.Equal(t, model.WasteIllegalDumping, out.WasteType)
	})

	t.Run("missing fields are all reported", func(t *testing.T) {
		_, err := ValidateReport(model.ReportInput{Name: "   "})

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		fields := make([]string, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			fields = append(fields, f.Field)
		}
		assert.Equal(t, []string{"name", "contact", "location", "wasteType", "description"}, fields)
	})

	t.Run("unknown waste type", func(t *testing.T) {
		in := validReport()
		in.WasteType = "asbestos"
		_, err := ValidateReport(in)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown waste type "asbestos"`)
	})
}

func TestValidateSignup(t *testing.T) {
	out, err := ValidateSignup(model.SignupInput{Name: " Ana ", Email: " ana@example.com ", Password: " secret "})
	require.NoError(t, err)
	assert.Equal(t, "Ana", out.Name)
	assert.Equal(t, "ana@example.com", out.Email)
	assert.Equal(t, " secret ", out.Password)

	_, err = ValidateSignup(model.SignupInput{Name: "Ana", Email: "not-an-email", Password: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email: is not a valid email address")

	_, err = ValidateSignup(model.SignupInput{})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Fields, 3)
}

func TestEncodePhoto(t *testing.T) {
	url, err := EncodePhoto(pngPixel, 1024)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
	assert.True(t, IsPhotoDataURL(url))

	empty, err := EncodePhoto(nil, 1024)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = EncodePhoto([]byte("plain text, not a picture"), 1024)
	assert.ErrorIs(t, err, ErrInvalidPhoto)

	_, err = EncodePhoto(pngPixel, 10)
	assert.ErrorIs(t, err, ErrInvalidPhoto)
}
