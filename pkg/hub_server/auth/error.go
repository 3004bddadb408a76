package auth

import (
	"errors"
	"fmt"

	"github.com/codatende/webhookhub/pkg/hub_server/model"
)

var ErrAPITokenError = errors.New("")  // Base error for API token
var ErrDashboardError = errors.New("") // Base error for dashboard sessions

var ErrAPITokenRequired = fmt.Errorf("API key required%w", ErrAPITokenError)
var ErrInvalidAPITokenString = fmt.Errorf("invalid API key string%w", ErrAPITokenError)
var ErrMismatchAPIToken = fmt.Errorf("invalid API key%w", ErrAPITokenError)
var ErrRevokedAPIToken = fmt.Errorf("API key is inactive%w", ErrAPITokenError)
var ErrExpiredAPIToken = fmt.Errorf("API key expired%w", ErrAPITokenError)
var ErrAPITokenNotFound = fmt.Errorf("API key not found%w%w", ErrAPITokenError, model.ErrNotFound)
var ErrPermissionDenied = fmt.Errorf("permission denied%w", ErrAPITokenError)

var ErrInvalidDashboardToken = fmt.Errorf("invalid dashboard token%w", ErrDashboardError)
