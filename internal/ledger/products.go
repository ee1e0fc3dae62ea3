// internal/ledger/products.go
package ledger

import (
	"context"

	"github.com/resona/resona-api/internal/models"
)

func (c *Client) GetProducts(ctx context.Context, s Session) ([]models.Product, error) {
	var ws []wireProduct
	if err := c.call(ctx, s, "getProducts", &ws); err != nil {
		return nil, err
	}
	d := c.decoder()
	out := d.products(ws)
	return out, d.err
}

func (c *Client) GetArtistProducts(ctx context.Context, s Session, artist string) ([]models.Product, error) {
	var ws []wireProduct
	if err := c.call(ctx, s, "getArtistProducts", &ws, artist); err != nil {
		return nil, err
	}
	d := c.decoder()
	out := d.products(ws)
	return out, d.err
}

func (c *Client) AddProduct(ctx context.Context, s Session, product models.Product) error {
	return c.call(ctx, s, "addProduct", nil, encodeProduct(product))
}

func (c *Client) UpdateProduct(ctx context.Context, s Session, product models.Product) error {
	return c.call(ctx, s, "updateProduct", nil, encodeProduct(product))
}

func (c *Client) DeleteProduct(ctx context.Context, s Session, productID string) error {
	return c.call(ctx, s, "deleteProduct", nil, productID)
}

func (c *Client) MintCertificate(ctx context.Context, s Session, cert models.Certificate) error {
	return c.call(ctx, s, "mintCertificate", nil, encodeCertificate(cert))
}

// Verification is the public authenticity record of a product.
type Verification struct {
	Product     *models.Product     `json:"product,omitempty"`
	Certificate *models.Certificate `json:"certificate,omitempty"`
}

func (v Verification) Verified() bool {
	return v.Product != nil && v.Certificate != nil
}

func (c *Client) VerifyProduct(ctx context.Context, s Session, productID string) (*Verification, error) {
	var w wireVerification
	if err := c.call(ctx, s, "verifyProduct", &w, productID); err != nil {
		return nil, err
	}
	d := c.decoder()
	out := &Verification{}
	if w.Product != nil {
		p := d.product(*w.Product)
		out.Product = &p
	}
	if w.Certificate != nil {
		cert := d.certificate(*w.Certificate)
		out.Certificate = &cert
	}
	return out, d.err
}
