package services

import (
	"time"

	"github.com/google/uuid"
)

// ISO-8601 in UTC with millisecond precision, e.g. 2025-03-01T10:15:30.123Z
const TIMESTAMP_LAYOUT = "2006-01-02T15:04:05.000Z"

type UuidGenerator struct{}

func NewUuidGenerator() *UuidGenerator {
	return &UuidGenerator{}
}

func (g *UuidGenerator) NewId() string {
	return uuid.NewString()
}

type UtcClock struct{}

func NewUtcClock() *UtcClock {
	return &UtcClock{}
}

func (c *UtcClock) Now() string {
	return time.Now().UTC().Format(TIMESTAMP_LAYOUT)
}
