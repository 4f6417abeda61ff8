package api

import "github.com/JaimeStill/pure-pdf/internal/operations"

// Domain holds the domain systems served by the API.
type Domain struct {
	Operations operations.System
}

func NewDomain(runtime *Runtime) *Domain {
	return &Domain{
		Operations: runtime.Operations,
	}
}
