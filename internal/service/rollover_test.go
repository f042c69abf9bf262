package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRollover_SameDay(t *testing.T) {
	morning := time.Date(2026, 8, 29, 7, 0, 0, 0, time.Local)
	evening := time.Date(2026, 8, 29, 23, 59, 0, 0, time.Local)

	assert.False(t, Rollover(morning, evening))
}

func TestRollover_AcrossMidnight(t *testing.T) {
	beforeMidnight := time.Date(2026, 8, 28, 23, 59, 0, 0, time.Local)
	afterMidnight := time.Date(2026, 8, 29, 0, 1, 0, 0, time.Local)

	assert.True(t, Rollover(beforeMidnight, afterMidnight))
}

func TestRollover_ZeroLastUpdated(t *testing.T) {
	assert.True(t, Rollover(time.Time{}, time.Now()))
}
