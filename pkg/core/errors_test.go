package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrInvalidQID,
		ErrQIDTooLong,
		ErrStorageUnavailable,
		ErrConstraintViolation,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.NotErrorIs(t, a, b)
		}
	}
}

func TestSentinelErrors_SurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("%w: connection reset", ErrStorageUnavailable)
	assert.True(t, errors.Is(wrapped, ErrStorageUnavailable))

	doubly := fmt.Errorf("record outcome: %w", wrapped)
	assert.True(t, errors.Is(doubly, ErrStorageUnavailable))
	assert.False(t, errors.Is(doubly, ErrConstraintViolation))
}
