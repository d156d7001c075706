package indicator

import (
	"slices"
	"sync"

	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// IndicatorRegistry manages all available indicators.
type IndicatorRegistry interface {
	RegisterIndicator(indicator Indicator) error
	GetIndicator(name types.IndicatorType) (Indicator, error)
	// ListIndicators returns indicators in registration order.
	ListIndicators() []types.IndicatorType
	RemoveIndicator(name types.IndicatorType) error
}

// IndicatorRegistryV1 manages all available indicators.
type IndicatorRegistryV1 struct {
	indicators map[types.IndicatorType]Indicator
	order      []types.IndicatorType
	mu         sync.RWMutex
}

// NewIndicatorRegistry creates a new, empty indicator registry.
func NewIndicatorRegistry() IndicatorRegistry {
	return &IndicatorRegistryV1{
		indicators: make(map[types.IndicatorType]Indicator),
		order:      []types.IndicatorType{},
		mu:         sync.RWMutex{},
	}
}

// DefaultIndicators returns the standard indicator suite in computation order:
// SMA, EMA, RSI, Bollinger Bands, MACD, VWAP, Fibonacci retracement.
func DefaultIndicators() []Indicator {
	return []Indicator{
		NewSMA(),
		NewEMA(),
		NewRSI(),
		NewBollingerBands(),
		NewMACD(),
		NewVWAP(),
		NewFibonacciRetracement(),
	}
}

// NewDefaultRegistry creates a registry holding DefaultIndicators.
func NewDefaultRegistry() IndicatorRegistry {
	registry := &IndicatorRegistryV1{
		indicators: make(map[types.IndicatorType]Indicator),
		order:      []types.IndicatorType{},
		mu:         sync.RWMutex{},
	}

	for _, indicator := range DefaultIndicators() {
		registry.indicators[indicator.Name()] = indicator
		registry.order = append(registry.order, indicator.Name())
	}

	return registry
}

// RegisterIndicator adds an indicator to the end of the registry.
func (r *IndicatorRegistryV1) RegisterIndicator(indicator Indicator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := indicator.Name()
	if _, exists := r.indicators[name]; exists {
		return errors.Newf(errors.ErrCodeIndicatorAlreadyExists, "RegisterIndicator: indicator with name %s already registered", name)
	}

	r.indicators[name] = indicator
	r.order = append(r.order, name)

	return nil
}

// GetIndicator retrieves an indicator by name.
func (r *IndicatorRegistryV1) GetIndicator(name types.IndicatorType) (Indicator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	indicator, exists := r.indicators[name]
	if !exists {
		return nil, errors.Newf(errors.ErrCodeIndicatorNotFound, "GetIndicator: indicator with name %s not found", name)
	}

	return indicator, nil
}

// ListIndicators returns a list of all registered indicator names in registration order.
func (r *IndicatorRegistryV1) ListIndicators() []types.IndicatorType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.order)
}

// RemoveIndicator removes an indicator from the registry.
func (r *IndicatorRegistryV1) RemoveIndicator(name types.IndicatorType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.indicators[name]; !exists {
		return errors.Newf(errors.ErrCodeIndicatorNotFound, "RemoveIndicator: indicator with name %s not found", name)
	}

	delete(r.indicators, name)
	r.order = slices.DeleteFunc(r.order, func(n types.IndicatorType) bool {
		return n == name
	})

	return nil
}
