package ratelimiter

import (
	"context"
	"errors"
	"fmt"
)

var ErrRateLimitExceeded = errors.New("rate limit exceeded")

type Interval struct {
	value int
}

var (
	Minute = Interval{}
	Hour   = Interval{value: 1}
)

func (i Interval) String() string {
	if i == Hour {
		return "hour"
	}
	return "minute"
}

type Limit struct {
	Value    uint16
	Interval Interval
}

type Result struct {
	IsAllowed bool
}

func Allowed() Result {
	return Result{IsAllowed: true}
}

func NotAllowed() Result {
	return Result{IsAllowed: false}
}

// Key builds the counter key for a subject (normalized email, IP, ...) within a scope.
func Key(scope string, subject string) string {
	return fmt.Sprintf("ratelimit::%s::%s", scope, subject)
}

type RateLimiter interface {
	CheckLimit(ctx context.Context, key string, limit Limit) Result
}
