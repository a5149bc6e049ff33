package services

import (
	"regexp"
	"strings"

	"masseurmatch_backend/internal/models"
)

// ModerationService screens profile text before it reaches the public
// directory. A flagged verdict keeps the profile out of the admin-approved
// path until a reviewer looks at it.
type ModerationService interface {
	ScreenProfileText(fields ...string) models.AutoModeration
}

type ModerationServiceImpl struct {
	flagged *regexp.Regexp
	blocked *regexp.Regexp
}

func NewModerationService() ModerationService {
	return &ModerationServiceImpl{
		// Terms that need a human decision.
		flagged: regexp.MustCompile(`(?i)\b(escort|erotic|nuru|sensual|happy\s*ending)\b`),
		// Terms that are never acceptable on a listing.
		blocked: regexp.MustCompile(`(?i)\b(sex|xxx|fuck|hookup|full\s*service)\b`),
	}
}

func (s *ModerationServiceImpl) ScreenProfileText(fields ...string) models.AutoModeration {
	text := strings.Join(fields, " ")
	if text == "" {
		return models.ModerationAutoPassed
	}
	if s.blocked.MatchString(text) {
		return models.ModerationAutoBlocked
	}
	if s.flagged.MatchString(text) {
		return models.ModerationAutoFlagged
	}
	return models.ModerationAutoPassed
}
