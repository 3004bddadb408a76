package connection

import (
	"fmt"

	"github.com/codatende/webhookhub/pkg/hub_server/model"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var providers = []interface{}{
	model.ProviderCloudAPI,
	model.ProviderUazAPI,
	model.ProviderNotificaMe,
	model.ProviderManual,
}

var statuses = []interface{}{
	model.ConnectionDisconnected,
	model.ConnectionConnecting,
	model.ConnectionWaitingQR,
	model.ConnectionConnected,
}

func ValidateCreateConnectionRequest(req CreateConnectionRequest) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.Requester, validation.Required),
		validation.Field(&req.CompanyID, validation.Required),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.Provider, validation.Required, validation.In(providers...)),
		validation.Field(&req.PhoneNumberID, validation.When(req.Provider == model.ProviderCloudAPI && req.AccessToken != "", validation.Required)),
		validation.Field(&req.InstanceID, validation.When(req.Provider == model.ProviderNotificaMe, validation.Required)),
		validation.Field(&req.UazAPIURL, validation.When(req.Provider == model.ProviderUazAPI, validation.Required), is.URL),
		validation.Field(&req.UazAPIToken, validation.When(req.Provider == model.ProviderUazAPI, validation.Required)),
	)
	if err != nil {
		return fmt.Errorf("%s%w", err.Error(), model.ErrInvalidParameter)
	}
	return nil
}

func ValidateUpdateConnectionRequest(req UpdateConnectionRequest) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.ID, validation.Required),
		validation.Field(&req.Requester, validation.Required),
		validation.Field(&req.CompanyID, validation.Required),
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&req.UazAPIURL, is.URL),
	)
	if err != nil {
		return fmt.Errorf("%s%w", err.Error(), model.ErrInvalidParameter)
	}
	return nil
}

func ValidateConnectionIDRequest(req ConnectionIDRequest) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.ID, validation.Required),
		validation.Field(&req.CompanyID, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("%s%w", err.Error(), model.ErrInvalidParameter)
	}
	return nil
}

func ValidateTransitionRequest(req TransitionRequest) error {
	if err := ValidateConnectionIDRequest(req.ConnectionIDRequest); err != nil {
		return err
	}
	err := validation.Validate(req.Status, validation.Required, validation.In(statuses...))
	if err != nil {
		return fmt.Errorf("status: %s%w", err.Error(), model.ErrInvalidParameter)
	}
	return nil
}
