package service

import "github.com/duvindu/saffron/internal/domain"

// Checkout errors
var (
	ErrEmptyCart           = domain.Errorf(domain.EINVALID, "", "Cart is empty")
	ErrPaymentNotSucceeded = domain.Errorf(domain.EPAYMENT, "", "Payment has not succeeded")
	ErrAmountMismatch      = domain.Errorf(domain.ECONFLICT, "", "Payment amount does not match order total")
	ErrUnknownShippingRate = domain.Errorf(domain.EINVALID, "", "Unknown shipping option")
)
