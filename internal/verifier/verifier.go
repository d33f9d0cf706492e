// Package verifier holds the ports to the external customer and product
// catalogs. Exists answers whether the referenced entity is registered; a
// returned error means the lookup itself failed and says nothing about
// existence.
package verifier

import "context"

type CustomerVerifier interface {
	Exists(ctx context.Context, customerID int) (bool, error)
}

type ProductVerifier interface {
	Exists(ctx context.Context, productID int) (bool, error)
}
