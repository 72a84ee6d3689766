package client

import (
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/lemon-client/internal/constants"
	"github.com/google/go-querystring/query"
)

// encodeQuery turns a tagged parameter struct into url.Values. A nil params
// value, or a nil pointer to a struct, yields no values.
func encodeQuery(params interface{}) (url.Values, error) {
	if params == nil {
		return nil, nil
	}

	values, err := query.Values(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", constants.ErrUnexpectedQueryParams, err)
	}

	return values, nil
}
