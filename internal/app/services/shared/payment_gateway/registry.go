package payment_gateway

import (
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/pkg/exceptions"
)

// Registry resolves a provider by the name used in the route.
type Registry map[string]contracts.PaymentProvider

func NewRegistry(providers ...contracts.PaymentProvider) Registry {
	registry := make(Registry, len(providers))
	for _, provider := range providers {
		registry[provider.Name()] = provider
	}
	return registry
}

func (r Registry) Get(name string) (contracts.PaymentProvider, error) {
	provider, ok := r[name]
	if !ok {
		return nil, exceptions.ErrPaymentProviderNotFound(nil, name)
	}
	return provider, nil
}
