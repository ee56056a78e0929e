package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/company-task-api/internal/middleware"
	"github.com/yukikurage/company-task-api/internal/services"
)

var (
	errInvalidBool = errors.New("must be true or false")
	errInvalidUUID = errors.New("must be a UUID")
)

// queryError names the query parameter that failed to parse.
type queryError struct {
	key string
	err error
}

func (e *queryError) Error() string { return e.key + ": " + e.err.Error() }

func (e *queryError) Unwrap() error { return e.err }

// currentActor builds the service-level caller from the token claims.
func currentActor(c *gin.Context) (services.Actor, bool) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return services.Actor{}, false
	}
	id, err := claims.UserID()
	if err != nil {
		return services.Actor{}, false
	}
	return services.Actor{ID: id, IsAdmin: claims.IsAdmin}, true
}

// queryString returns nil for an absent or empty parameter.
func queryString(c *gin.Context, key string) *string {
	value, ok := c.GetQuery(key)
	if !ok || value == "" {
		return nil
	}
	return &value
}

func queryEnum[T any](c *gin.Context, key string, parse func(string) (T, error)) (*T, error) {
	raw := queryString(c, key)
	if raw == nil {
		return nil, nil
	}
	value, err := parse(*raw)
	if err != nil {
		// The enum parsers already name the enum type.
		return nil, err
	}
	return &value, nil
}

func queryBool(c *gin.Context, key string) (*bool, error) {
	raw := queryString(c, key)
	if raw == nil {
		return nil, nil
	}
	value, err := strconv.ParseBool(*raw)
	if err != nil {
		return nil, &queryError{key: key, err: errInvalidBool}
	}
	return &value, nil
}

func queryUUID(c *gin.Context, key string) (*uuid.UUID, error) {
	raw := queryString(c, key)
	if raw == nil {
		return nil, nil
	}
	value, err := uuid.Parse(*raw)
	if err != nil {
		return nil, &queryError{key: key, err: errInvalidUUID}
	}
	return &value, nil
}
