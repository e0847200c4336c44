package domain

import "context"

// Validator checks a rendered document against the Facturae 3.2.1 schema.
type Validator interface {
	Validate(ctx context.Context, document []byte) error
}

// Signer produces a signed (.xsig) document from an unsigned one using the
// company certificate and its password.
type Signer interface {
	Sign(ctx context.Context, document, certificate []byte, password string) ([]byte, error)
}
