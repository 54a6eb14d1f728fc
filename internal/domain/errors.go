package domain

import (
	"errors"
	"fmt"
)

var (
	ErrTransport          = errors.New("could not reach the storefront service")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLoginFailed        = errors.New("login failed, try again later")

	ErrCartEmpty          = fmt.Errorf("%w: cart is empty", ErrValidation)
	ErrCartMustKeepItem   = fmt.Errorf("%w: cart must keep at least one product", ErrValidation)
	ErrMissingOrderID     = fmt.Errorf("%w: order id not found in the payment response", ErrValidation)
	ErrInvalidOrderID     = fmt.Errorf("%w: order id in the payment response is not a number", ErrValidation)
	ErrMissingCredentials = fmt.Errorf("%w: username and password are required", ErrValidation)
	ErrTicketIncomplete   = fmt.Errorf("%w: select a product and write a subject", ErrValidation)
	ErrMissingTransaction = fmt.Errorf("%w: transaction token is required", ErrValidation)
	ErrInvalidQuantity    = fmt.Errorf("%w: quantity must be at least 1", ErrValidation)

	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderNotPayable    = errors.New("order is not in a payable state")
	ErrCheckoutInProgress = errors.New("a payment request is already in progress")
	ErrNoOpenCheckout     = errors.New("no checkout widget is open")
	ErrPaymentStart       = errors.New("could not start the payment process")
	ErrAuthorization      = errors.New("could not authorize the payment")
	ErrPaymentProcessing  = errors.New("error processing the payment response, please check your order")

	ErrSessionNotFound = errors.New("session not found")
)
