package common

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateDBError(t *testing.T) {
	assert.NoError(t, TranslateDBError(nil))
	assert.ErrorIs(t, TranslateDBError(gorm.ErrDuplicatedKey), ErrDomain)
	assert.ErrorIs(t, TranslateDBError(gorm.ErrRecordNotFound), ErrNotFound)
	assert.ErrorIs(t, TranslateDBError(context.Canceled), ErrCancelled)
	assert.ErrorIs(t, TranslateDBError(context.DeadlineExceeded), ErrCancelled)

	// unknown failures pass through untranslated
	boom := errors.New("disk on fire")
	assert.Equal(t, boom, TranslateDBError(boom))
}
