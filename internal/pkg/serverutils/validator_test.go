package serverutils

import (
	"testing"
	"time"

	"studybuddy-be/internal/apperror"
	"studybuddy-be/internal/dto"

	"github.com/stretchr/testify/assert"
)

func TestValidateRequest(t *testing.T) {
	valid := dto.CreatePlanRequest{
		Subject:       "Biology",
		Topics:        []string{"Genetics"},
		ExamDate:      time.Now().AddDate(0, 0, 10),
		DailyMinutes:  60,
		SessionLength: 30,
	}
	assert.NoError(t, ValidateRequest(valid))

	missing := dto.CreatePlanRequest{}
	err := ValidateRequest(missing)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.Contains(t, err.Error(), "Subject")

	outOfRange := dto.ReviewCardRequest{Quality: 9}
	err = ValidateRequest(outOfRange)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.Contains(t, err.Error(), "Quality")
}
