// internal/services/certificate_service.go
package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/resona/resona-api/internal/cache"
	"github.com/resona/resona-api/internal/ledger"
	"github.com/resona/resona-api/internal/models"
	"github.com/resona/resona-api/internal/utils"
)

type CertificateService struct {
	ledger *ledger.Client
	cache  *cache.QueryCache
	now    func() time.Time
}

// VerificationResult is the public authenticity check for a product.
type VerificationResult struct {
	ledger.Verification
	Authentic   bool `json:"verified"`
	HashMatches bool `json:"hash_matches"`
}

// certificateMetadata is the canonical product metadata a certificate hashes.
type certificateMetadata struct {
	ID          string             `json:"id"`
	Artist      string             `json:"artist"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	ProductType models.ProductType `json:"product_type"`
	Blockchain  *models.Blockchain `json:"blockchain"`
	Supply      *int64             `json:"supply"`
	SKU         *string            `json:"sku"`
	Royalty     *int64             `json:"royalty_percentage"`
}

func NewCertificateService(client *ledger.Client, queryCache *cache.QueryCache) *CertificateService {
	return &CertificateService{
		ledger: client,
		cache:  queryCache,
		now:    time.Now,
	}
}

// MetadataHash is the SHA-256 of the product's canonical metadata.
func MetadataHash(p *models.Product) string {
	data, _ := json.Marshal(certificateMetadata{
		ID:          p.ID,
		Artist:      p.Artist,
		Name:        p.Name,
		Description: p.Description,
		ProductType: p.ProductType,
		Blockchain:  p.Blockchain,
		Supply:      p.Supply,
		SKU:         p.SKU,
		Royalty:     p.RoyaltyPercentage,
	})
	return utils.HashString(string(data))
}

// Mint issues a certificate for the product. A product that already has one
// gets the next version.
func (s *CertificateService) Mint(ctx context.Context, session ledger.Session, product *models.Product) (*models.Certificate, error) {
	version := int64(1)
	if existing, err := s.ledger.VerifyProduct(ctx, session, product.ID); err == nil && existing.Certificate != nil {
		version = existing.Certificate.Version + 1
	}

	now := s.now()
	cert := models.Certificate{
		ID:           utils.CertificateID(product.ID, now),
		ProductID:    product.ID,
		ArtistID:     session.Principal,
		MetadataHash: MetadataHash(product),
		Timestamp:    now.UnixNano(),
		Version:      version,
		Blockchain:   models.BlockchainICP,
	}
	if product.Blockchain != nil {
		cert.Blockchain = *product.Blockchain
	}
	if product.AuthenticityLink != nil {
		cert.AuthenticityLink = *product.AuthenticityLink
	}

	if err := s.ledger.MintCertificate(ctx, session, cert); err != nil {
		return nil, err
	}

	s.cache.Invalidate(cache.CertificateMinted...)
	logMutation(session, "mint_certificate", cert.ID)
	return &cert, nil
}

func (s *CertificateService) Verify(ctx context.Context, session ledger.Session, productID string) (*VerificationResult, error) {
	v, err := cached(ctx, s.cache, session, cache.VerifyProduct, func(ctx context.Context) (*ledger.Verification, error) {
		return s.ledger.VerifyProduct(ctx, session, productID)
	}, productID)
	if err != nil {
		return nil, err
	}

	result := &VerificationResult{Verification: *v, Authentic: v.Verified()}
	if result.Authentic {
		result.HashMatches = v.Certificate.MetadataHash == MetadataHash(v.Product)
	}
	return result, nil
}
