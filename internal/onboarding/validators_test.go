package onboarding

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDisplayName_Valid(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"Alex", "Jordan Smith", "  Sam  ", "李明"} {
		res := ValidateDisplayName(name)
		assert.True(t, res.Valid, "expected %q to be valid", name)
		assert.Empty(t, res.Errors)
	}
}

func TestValidateDisplayName_Required(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "   "} {
		res := ValidateDisplayName(name)
		assert.False(t, res.Valid)
		assert.Len(t, res.Errors, 1)
		assert.Equal(t, "display_name", res.Errors[0].Field)
		assert.Contains(t, res.Errors[0].Message, "required")
	}
}

func TestValidateDisplayName_Length(t *testing.T) {
	t.Parallel()

	res := ValidateDisplayName("A")
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors[0].Message, "at least")

	res = ValidateDisplayName(strings.Repeat("a", 51))
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors[0].Message, "at most")

	// Surrounding whitespace is trimmed before the length check.
	res = ValidateDisplayName("  " + strings.Repeat("a", 50) + "  ")
	assert.True(t, res.Valid)
}

func TestValidateDisplayName_BlockedWords(t *testing.T) {
	t.Parallel()

	res := ValidateDisplayName("Hot XXX Massage")
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors[0].Message, "inappropriate content")

	// Blocklist matches whole words only.
	res = ValidateDisplayName("Essex Therapist")
	assert.True(t, res.Valid)
}

func TestValidateBio_OptionalWhenEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidateBio("", BioShort).Valid)
	assert.True(t, ValidateBio("   ", BioLong).Valid)
}

func TestValidateBio_Bounds(t *testing.T) {
	t.Parallel()

	res := ValidateBio("too short", BioShort)
	assert.False(t, res.Valid)
	assert.Equal(t, "bio_short", res.Errors[0].Field)
	assert.Contains(t, res.Errors[0].Message, "at least")

	res = ValidateBio(strings.Repeat("a", 501), BioShort)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors[0].Message, "at most")

	// The long class allows up to 5000 characters.
	long := strings.Repeat("a", 501)
	assert.True(t, ValidateBio(long, BioLong).Valid)

	res = ValidateBio(strings.Repeat("a", 5001), BioLong)
	assert.False(t, res.Valid)
	assert.Equal(t, "bio_long", res.Errors[0].Field)
	assert.Contains(t, res.Errors[0].Message, "at most")
}

func TestValidatePhoneE164(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidatePhoneE164("+12145551234").Valid)
	assert.True(t, ValidatePhoneE164("+442071234567").Valid)

	res := ValidatePhoneE164("")
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors[0].Message, "required")

	for _, phone := range []string{"12145551234", "+0123456789", "+1 214 555 1234", "+1214555abcd"} {
		res := ValidatePhoneE164(phone)
		assert.False(t, res.Valid, "expected %q to be rejected", phone)
		assert.Equal(t, "phone_public_e164", res.Errors[0].Field)
	}
}

func TestValidateOutcallRadius(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidateOutcallRadius(nil).Valid)

	ok := 25
	assert.True(t, ValidateOutcallRadius(&ok).Valid)

	low := 3
	res := ValidateOutcallRadius(&low)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors[0].Message, "at least")

	high := 150
	res = ValidateOutcallRadius(&high)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors[0].Message, "at most")
}

func TestValidateDuration(t *testing.T) {
	t.Parallel()

	for _, d := range []int{30, 60, 90, 120, 180, 240} {
		assert.True(t, ValidateDuration(d).Valid, "duration %d should be allowed", d)
	}

	res := ValidateDuration(45)
	assert.False(t, res.Valid)
	assert.Equal(t, "duration_minutes", res.Errors[0].Field)
	assert.Contains(t, res.Errors[0].Message, "must be one of")
}

func TestValidatePrice(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidatePrice(5000).Valid)
	assert.True(t, ValidatePrice(100000).Valid)

	res := ValidatePrice(0)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors[0].Message, "greater than 0")

	res = ValidatePrice(4999)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors[0].Message, "at least $50.00")

	res = ValidatePrice(100001)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors[0].Message, "at most $1000.00")
}

func TestValidateProfileFields_AccumulatesAllErrors(t *testing.T) {
	t.Parallel()

	radius := 2
	res := ValidateProfileFields(ProfileFields{
		DisplayName:        "",
		PhonePublicE164:    "not-a-phone",
		BioShort:           "short",
		OutcallRadiusMiles: &radius,
	})

	assert.False(t, res.Valid)

	grouped := GroupErrors(res.Errors)
	assert.Contains(t, grouped, "display_name")
	assert.Contains(t, grouped, "phone_public_e164")
	assert.Contains(t, grouped, "bio_short")
	assert.Contains(t, grouped, "outcall_radius_miles")
}
