package account

import (
	"context"
	c "secureauth/internal/core/domain/common"
	"time"
)

// DeliveryFailure describes a partial failure: the account was created or its
// password rotated, but the user never received the new credentials.
type DeliveryFailure struct {
	AccountID ID
	Email     c.Email
	Kind      CredentialsKind
	Reason    string
	At        time.Time
}

type DeliveryFailureAlerter interface {
	AlertDeliveryFailure(ctx context.Context, failure DeliveryFailure) error
}
