// internal/models/product.go
package models

import (
	"errors"
	"fmt"
)

var ErrVariantFields = errors.New("product fields do not match its type")

type Product struct {
	ID                string      `json:"id"`
	Artist            string      `json:"artist"`
	Name              string      `json:"name"`
	Description       string      `json:"description"`
	Price             int64       `json:"price"`
	Inventory         int64       `json:"inventory"`
	Images            []string    `json:"images"`
	ProductType       ProductType `json:"product_type"`
	Blockchain        *Blockchain `json:"blockchain,omitempty"`
	RoyaltyPercentage *int64      `json:"royalty_percentage,omitempty"`
	UnlockableContent *string     `json:"unlockable_content,omitempty"`
	Supply            *int64      `json:"supply,omitempty"`
	SKU               *string     `json:"sku,omitempty"`
	ShippingDetails   *string     `json:"shipping_details,omitempty"`
	MintCertificate   bool        `json:"mint_certificate"`
	AttachNfcQrTag    bool        `json:"attach_nfc_qr_tag"`
	AuthenticityLink  *string     `json:"authenticity_link,omitempty"`
}

// HasStock reports whether the product is held in hub inventory.
// NFT-only products exist purely on chain.
func (p *Product) HasStock() bool {
	return p.ProductType == ProductTypePhysical || p.ProductType == ProductTypePhygital
}

// CheckVariantFields verifies the optional fields agree with the product type:
// nft products carry no shipping details and physical products carry no chain metadata.
func (p *Product) CheckVariantFields() error {
	switch p.ProductType {
	case ProductTypeNFT:
		if p.ShippingDetails != nil && *p.ShippingDetails != "" {
			return fmt.Errorf("%w: nft products cannot have shipping details", ErrVariantFields)
		}
	case ProductTypePhysical:
		if p.Blockchain != nil {
			return fmt.Errorf("%w: physical products cannot have a blockchain", ErrVariantFields)
		}
		if p.RoyaltyPercentage != nil {
			return fmt.Errorf("%w: physical products cannot have a royalty percentage", ErrVariantFields)
		}
	case ProductTypePhygital:
	default:
		return fmt.Errorf("%w: unknown product type %q", ErrVariantFields, p.ProductType)
	}

	if p.RoyaltyPercentage != nil && (*p.RoyaltyPercentage < 0 || *p.RoyaltyPercentage > 100) {
		return fmt.Errorf("%w: royalty percentage must be between 0 and 100", ErrVariantFields)
	}

	return nil
}

type Certificate struct {
	ID               string     `json:"id"`
	ProductID        string     `json:"product_id"`
	ArtistID         string     `json:"artist_id"`
	MetadataHash     string     `json:"metadata_hash"`
	Timestamp        int64      `json:"timestamp"`
	Version          int64      `json:"version"`
	Blockchain       Blockchain `json:"blockchain"`
	AuthenticityLink string     `json:"authenticity_link"`
}
