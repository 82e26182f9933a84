package bincodec

import (
	"reflect"
	"sync"

	"github.com/pkg/errors"
)

// ErrNilType is returned when nil is passed to LookupEncoder.
var ErrNilType = errors.New("cannot perform an encoder lookup on <nil>")

// ErrNoEncoder is returned when there wasn't an encoder available for a type.
type ErrNoEncoder struct {
	Type reflect.Type
}

func (ene ErrNoEncoder) Error() string {
	if ene.Type == nil {
		return "no encoder found for <nil>"
	}
	return "no encoder found for " + ene.Type.String()
}

// DefaultRegistry is the Registry used by the top-level Marshal functions.
var DefaultRegistry = NewRegistryBuilder().Build()

// A RegistryBuilder is used to build a Registry. This type is not goroutine
// safe.
type RegistryBuilder struct {
	typeEncoders      map[reflect.Type]ValueEncoder
	interfaceEncoders []interfaceValueEncoder
	kindEncoders      map[reflect.Kind]ValueEncoder
}

// A Registry is used to store and retrieve encoders for types, interfaces,
// and kinds. Lookup results are cached, so a Registry is cheap to consult
// repeatedly and safe for concurrent use.
type Registry struct {
	typeEncoders      map[reflect.Type]ValueEncoder
	interfaceEncoders []interfaceValueEncoder
	kindEncoders      map[reflect.Kind]ValueEncoder

	mu sync.RWMutex
}

// NewEmptyRegistryBuilder creates a new RegistryBuilder with no encoders
// registered.
func NewEmptyRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{
		typeEncoders:      make(map[reflect.Type]ValueEncoder),
		interfaceEncoders: make([]interfaceValueEncoder, 0),
		kindEncoders:      make(map[reflect.Kind]ValueEncoder),
	}
}

// NewRegistryBuilder creates a new RegistryBuilder with the default encoders
// registered.
func NewRegistryBuilder() *RegistryBuilder {
	rb := NewEmptyRegistryBuilder()
	defaultValueEncoders.RegisterDefaultEncoders(rb)
	return rb
}

// RegisterEncoder will register the provided ValueEncoder for the provided
// type. If t is an interface, the encoder applies to every type that
// implements it.
func (rb *RegistryBuilder) RegisterEncoder(t reflect.Type, enc ValueEncoder) *RegistryBuilder {
	if t.Kind() == reflect.Interface {
		for idx, ir := range rb.interfaceEncoders {
			if ir.i == t {
				rb.interfaceEncoders[idx].ve = enc
				return rb
			}
		}

		rb.interfaceEncoders = append(rb.interfaceEncoders, interfaceValueEncoder{i: t, ve: enc})
		return rb
	}
	rb.typeEncoders[t] = enc
	return rb
}

// RegisterDefaultEncoder will register the provided ValueEncoder to the
// provided kind.
func (rb *RegistryBuilder) RegisterDefaultEncoder(kind reflect.Kind, enc ValueEncoder) *RegistryBuilder {
	rb.kindEncoders[kind] = enc
	return rb
}

// Build creates a Registry from the current state of this RegistryBuilder.
func (rb *RegistryBuilder) Build() *Registry {
	registry := new(Registry)

	registry.typeEncoders = make(map[reflect.Type]ValueEncoder, len(rb.typeEncoders))
	for t, enc := range rb.typeEncoders {
		registry.typeEncoders[t] = enc
	}

	registry.interfaceEncoders = make([]interfaceValueEncoder, len(rb.interfaceEncoders))
	copy(registry.interfaceEncoders, rb.interfaceEncoders)

	registry.kindEncoders = make(map[reflect.Kind]ValueEncoder, len(rb.kindEncoders))
	for kind, enc := range rb.kindEncoders {
		registry.kindEncoders[kind] = enc
	}

	return registry
}

// LookupEncoder will inspect the registry for an encoder that satisfies the
// type provided. An encoder registered for a specific type will take
// precedence over an encoder registered for an interface the type satisfies,
// which takes precedence over an encoder for the reflect.Kind of the value.
// If no encoder can be found, an error is returned.
func (r *Registry) LookupEncoder(t reflect.Type) (ValueEncoder, error) {
	if t == nil {
		return nil, ErrNilType
	}
	r.mu.RLock()
	enc, found := r.typeEncoders[t]
	r.mu.RUnlock()
	if found {
		if enc == nil {
			return nil, ErrNoEncoder{Type: t}
		}
		return enc, nil
	}

	enc, found = r.lookupInterfaceEncoder(t)
	if found {
		r.mu.Lock()
		r.typeEncoders[t] = enc
		r.mu.Unlock()
		return enc, nil
	}

	enc, found = r.kindEncoders[t.Kind()]
	if !found {
		r.mu.Lock()
		r.typeEncoders[t] = nil
		r.mu.Unlock()
		return nil, ErrNoEncoder{Type: t}
	}

	r.mu.Lock()
	r.typeEncoders[t] = enc
	r.mu.Unlock()
	return enc, nil
}

func (r *Registry) lookupInterfaceEncoder(t reflect.Type) (ValueEncoder, bool) {
	for _, ienc := range r.interfaceEncoders {
		if !t.Implements(ienc.i) {
			continue
		}

		return ienc.ve, true
	}
	return nil, false
}

type interfaceValueEncoder struct {
	i  reflect.Type
	ve ValueEncoder
}
