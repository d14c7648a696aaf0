package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/oms/backend/internal/domain/order"
	"github.com/oms/backend/internal/interfaces/http/dto"
)

// Context keys for actor identity
const (
	MerchantIDKey = "merchant_id"
	ActorKey      = "actor"
)

// Headers carrying actor identity. Authentication happens at the gateway;
// this service trusts the forwarded identity headers.
const (
	MerchantIDHeader = "X-Merchant-ID"
	UserIDHeader     = "X-User-ID"
	UserRoleHeader   = "X-User-Role"
)

// ActorContext resolves the merchant and the acting user from the identity
// headers. Requests without a complete, well-formed identity are rejected
// before reaching any handler.
func ActorContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		merchantID, err := uuid.Parse(c.GetHeader(MerchantIDHeader))
		if err != nil {
			abortUnauthorized(c, "Missing or invalid merchant identity")
			return
		}

		userID, err := uuid.Parse(c.GetHeader(UserIDHeader))
		if err != nil {
			abortUnauthorized(c, "Missing or invalid user identity")
			return
		}

		role := order.Role(c.GetHeader(UserRoleHeader))
		if !role.IsValid() {
			abortUnauthorized(c, "Missing or unknown user role")
			return
		}

		c.Set(MerchantIDKey, merchantID)
		c.Set(ActorKey, order.Actor{ID: userID, Role: role})

		c.Next()
	}
}

// GetMerchantID retrieves the merchant ID placed by ActorContext
func GetMerchantID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(MerchantIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// GetActor retrieves the actor placed by ActorContext
func GetActor(c *gin.Context) (order.Actor, bool) {
	v, ok := c.Get(ActorKey)
	if !ok {
		return order.Actor{}, false
	}
	actor, ok := v.(order.Actor)
	return actor, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.ErrCodeUnauthorized, message, GetRequestID(c)))
}
