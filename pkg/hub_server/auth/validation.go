package auth

import (
	"fmt"

	"github.com/codatende/webhookhub/pkg/hub_server/model"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/samber/lo"
)

func validatePermissions(value interface{}) error {
	permissions, _ := value.([]Permission)
	for _, p := range permissions {
		if !lo.Contains(KnownPermissions, p) {
			return fmt.Errorf("unknown permission %q", p)
		}
	}
	return nil
}

func ValidateCreateAPITokenRequest(req CreateAPITokenRequest) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.User, validation.Required),
		validation.Field(&req.CompanyID, validation.Required),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Permissions, validation.Required, validation.By(validatePermissions)),
		validation.Field(&req.ExpiresAt, validation.NilOrNotEmpty),
	)
	if err != nil {
		return fmt.Errorf("%s%w", err.Error(), model.ErrInvalidParameter)
	}
	return nil
}

func ValidateUpdateAPITokenRequest(req UpdateAPITokenRequest) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.User, validation.Required),
		validation.Field(&req.CompanyID, validation.Required),
		validation.Field(&req.ID, validation.Required),
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&req.Permissions, validation.By(validatePermissions)),
	)
	if err != nil {
		return fmt.Errorf("%s%w", err.Error(), model.ErrInvalidParameter)
	}
	return nil
}

func ValidateAPITokenIDRequest(req APITokenIDRequest) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.User, validation.Required),
		validation.Field(&req.CompanyID, validation.Required),
		validation.Field(&req.ID, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("%s%w", err.Error(), model.ErrInvalidParameter)
	}
	return nil
}
