package validator

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/cleancity/api/internal/model"
	"github.com/mcnijman/go-emailaddress"
)

var ErrInvalidPhoto = errors.New("photo must be an image")

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every field that failed, in form order.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return "invalid input: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// ValidateReport checks the report form and returns it with text fields
// trimmed. The photo is passed through untouched.
func ValidateReport(in model.ReportInput) (model.ReportInput, error) {
	out := model.ReportInput{
		Name:        strings.TrimSpace(in.Name),
		Contact:     strings.TrimSpace(in.Contact),
		Location:    strings.TrimSpace(in.Location),
		WasteType:   model.WasteType(strings.TrimSpace(string(in.WasteType))),
		Description: strings.TrimSpace(in.Description),
		Photo:       in.Photo,
	}

	verr := &ValidationError{}
	required(verr, "name", out.Name)
	required(verr, "contact", out.Contact)
	required(verr, "location", out.Location)
	if out.WasteType == "" {
		verr.add("wasteType", "is required")
	} else if !out.WasteType.Valid() {
		verr.add("wasteType", fmt.Sprintf("unknown waste type %q", out.WasteType))
	}
	required(verr, "description", out.Description)

	return out, verr.orNil()
}

// ValidateSignup checks the sign-up form. Name and email are trimmed; the
// password is kept exactly as typed.
func ValidateSignup(in model.SignupInput) (model.SignupInput, error) {
	out := model.SignupInput{
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.TrimSpace(in.Email),
		Password: in.Password,
	}

	verr := &ValidationError{}
	required(verr, "name", out.Name)
	if out.Email == "" {
		verr.add("email", "is required")
	} else if _, err := emailaddress.Parse(out.Email); err != nil {
		verr.add("email", "is not a valid email address")
	}
	if out.Password == "" {
		verr.add("password", "is required")
	}

	return out, verr.orNil()
}

func required(verr *ValidationError, field, value string) {
	if value == "" {
		verr.add(field, "is required")
	}
}

// EncodePhoto turns an uploaded image into the data URL stored on the
// report. Empty input yields an empty string.
func EncodePhoto(data []byte, maxBytes int64) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return "", fmt.Errorf("%w: %d bytes exceeds the %d byte limit", ErrInvalidPhoto, len(data), maxBytes)
	}

	mime := http.DetectContentType(data)
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%w: got %s", ErrInvalidPhoto, mime)
	}

	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// IsPhotoDataURL reports whether s is an image data URL, the form photos
// take when the client encodes them before a JSON submission.
func IsPhotoDataURL(s string) bool {
	return strings.HasPrefix(s, "data:image/") && strings.Contains(s, ";base64,")
}
