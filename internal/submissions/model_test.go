package submissions

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thebar-catering/thebar-site/internal/validation"
)

func validContactRequest() CreateSubmissionRequest {
	return CreateSubmissionRequest{
		Form:      FormContact,
		Name:      "Jana Novak",
		Email:     "jana@example.com",
		Phone:     "+420775505805",
		EventType: "wedding",
		Message:   "June wedding for 80 guests",
	}
}

func validPopupRequest() CreateSubmissionRequest {
	return CreateSubmissionRequest{
		Form:      FormPopup,
		Name:      "Petr Svoboda",
		Email:     "petr@example.com",
		Phone:     "+420 602 123 456",
		Service:   "Premium Flair",
		EventDate: "2026-06-12",
	}
}

func TestValidate_AcceptsBothForms(t *testing.T) {
	contact := validContactRequest()
	assert.NoError(t, contact.Validate())

	popup := validPopupRequest()
	assert.NoError(t, popup.Validate())
}

func TestValidate_ReportsEveryFailingField(t *testing.T) {
	req := CreateSubmissionRequest{Form: FormPopup, Email: "nope", Phone: "abc"}

	err := req.Validate()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[string]validation.Code{
		FieldName:    validation.CodeRequired,
		FieldEmail:   validation.CodeInvalidEmail,
		FieldPhone:   validation.CodeInvalidPhone,
		FieldDate:    validation.CodeRequired,
		FieldService: validation.CodeRequired,
	}, verr.Fields)
	assert.Equal(t, "submissions: invalid fields: date, email, name, phone, service", verr.Error())
}

func TestValidate_UnknownForm(t *testing.T) {
	req := validContactRequest()
	req.Form = "newsletter"
	assert.ErrorIs(t, req.Validate(), ErrUnknownForm)
}

func TestNormalize_LegacyContactPayload(t *testing.T) {
	req := CreateSubmissionRequest{
		Name:    "  Jana Novak ",
		Email:   "jana@example.com",
		Phone:   "+420775505805",
		Service: "Premium Flair",
		Message: "Hello",
		Locale:  " EN ",
	}
	req.Normalize()

	assert.Equal(t, FormContact, req.Form)
	assert.Equal(t, "Jana Novak", req.Name)
	assert.Equal(t, "Premium Flair", req.EventType)
	assert.Empty(t, req.Service)
	assert.Equal(t, "en", req.Locale)
	assert.NoError(t, req.Validate())
}

func TestNormalize_InfersPopupFromDate(t *testing.T) {
	req := validPopupRequest()
	req.Form = ""
	req.Normalize()
	assert.Equal(t, FormPopup, req.Form)
}

func TestRequestFromValuesRoundTrip(t *testing.T) {
	values := map[string]string{
		FieldName:      "Jana Novak",
		FieldEmail:     "jana@example.com",
		FieldPhone:     "+420775505805",
		FieldEventType: "wedding",
		FieldMessage:   "June wedding for 80 guests",
	}
	req := RequestFromValues(FormContact, values, "cs")
	assert.Equal(t, "wedding", req.EventType)
	assert.Equal(t, "cs", req.Locale)
	for field, want := range values {
		assert.Equal(t, want, req.Values()[field])
	}
}

func TestRequiredFieldsReturnsCopy(t *testing.T) {
	fields := RequiredFields(FormContact)
	fields[0] = "mutated"
	assert.Equal(t, FieldName, RequiredFields(FormContact)[0])
	assert.Empty(t, RequiredFields("unknown"))
}
