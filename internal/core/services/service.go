package services

import "context"

// Service is a single use case. Cross-cutting behaviour (delivery, alerting,
// rate limiting) is added by wrapping one Service in another.
type Service[T any, S any] interface {
	Run(ctx context.Context, input T) (S, error)
}
