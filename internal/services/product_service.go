// internal/services/product_service.go
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/resona/resona-api/internal/cache"
	"github.com/resona/resona-api/internal/config"
	"github.com/resona/resona-api/internal/ledger"
	"github.com/resona/resona-api/internal/models"
	"github.com/resona/resona-api/internal/utils"
)

type ProductService struct {
	ledger       *ledger.Client
	cache        *cache.QueryCache
	certificates *CertificateService
	config       *config.Config
}

type ProductRequest struct {
	Name              string             `json:"name" validate:"required,min=1,max=200"`
	Description       string             `json:"description" validate:"required"`
	Price             int64              `json:"price" validate:"gt=0"`
	Inventory         int64              `json:"inventory" validate:"min=0"`
	Images            []string           `json:"images" validate:"omitempty,dive,url"`
	ProductType       models.ProductType `json:"product_type" validate:"required,product_type"`
	Blockchain        *models.Blockchain `json:"blockchain,omitempty" validate:"omitempty,blockchain"`
	RoyaltyPercentage *int64             `json:"royalty_percentage,omitempty" validate:"omitempty,min=0,max=100"`
	UnlockableContent *string            `json:"unlockable_content,omitempty"`
	Supply            *int64             `json:"supply,omitempty" validate:"omitempty,min=1"`
	SKU               *string            `json:"sku,omitempty"`
	ShippingDetails   *string            `json:"shipping_details,omitempty"`
	MintCertificate   bool               `json:"mint_certificate"`
	AttachNfcQrTag    bool               `json:"attach_nfc_qr_tag"`
}

// CreatedProduct reports a new product and, when requested, its certificate.
// A failed mint leaves the product in place and sets CertificateError.
type CreatedProduct struct {
	Product          *models.Product     `json:"product"`
	Certificate      *models.Certificate `json:"certificate,omitempty"`
	CertificateError string              `json:"certificate_error,omitempty"`
}

func NewProductService(client *ledger.Client, queryCache *cache.QueryCache, certificates *CertificateService, cfg *config.Config) *ProductService {
	return &ProductService{
		ledger:       client,
		cache:        queryCache,
		certificates: certificates,
		config:       cfg,
	}
}

func (s *ProductService) List(ctx context.Context, session ledger.Session) (ListResult[models.Product], error) {
	return degrade(s.all(ctx, session))
}

func (s *ProductService) ListByArtist(ctx context.Context, session ledger.Session, artist string) (ListResult[models.Product], error) {
	return degrade(s.byArtist(ctx, session, artist))
}

func (s *ProductService) all(ctx context.Context, session ledger.Session) ([]models.Product, error) {
	return cached(ctx, s.cache, session, cache.Products, func(ctx context.Context) ([]models.Product, error) {
		return s.ledger.GetProducts(ctx, session)
	})
}

func (s *ProductService) byArtist(ctx context.Context, session ledger.Session, artist string) ([]models.Product, error) {
	return cached(ctx, s.cache, session, cache.ArtistProducts, func(ctx context.Context) ([]models.Product, error) {
		return s.ledger.GetArtistProducts(ctx, session, artist)
	}, artist)
}

// Get finds a product in the catalogue.
func (s *ProductService) Get(ctx context.Context, session ledger.Session, productID string) (*models.Product, error) {
	products, err := s.all(ctx, session)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == productID {
			p := products[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("product %s: %w", productID, ledger.ErrNotFound)
}

func (s *ProductService) Create(ctx context.Context, session ledger.Session, req *ProductRequest) (*CreatedProduct, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	product := s.buildProduct(session, utils.NewResourceID("product"), req)
	if err := product.CheckVariantFields(); err != nil {
		return nil, err
	}

	if err := s.ledger.AddProduct(ctx, session, *product); err != nil {
		return nil, err
	}
	s.cache.Invalidate(cache.ProductMutation...)
	logMutation(session, "add_product", product.ID)

	result := &CreatedProduct{Product: product}
	if product.MintCertificate {
		cert, err := s.certificates.Mint(ctx, session, product)
		if err != nil {
			logrus.WithError(err).WithField("product_id", product.ID).Warn("Product created but certificate minting failed")
			result.CertificateError = err.Error()
		} else {
			result.Certificate = cert
		}
	}

	return result, nil
}

func (s *ProductService) Update(ctx context.Context, session ledger.Session, productID string, req *ProductRequest) (*models.Product, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	product := s.buildProduct(session, productID, req)
	if err := product.CheckVariantFields(); err != nil {
		return nil, err
	}

	if err := s.ledger.UpdateProduct(ctx, session, *product); err != nil {
		return nil, err
	}
	s.cache.Invalidate(cache.ProductMutation...)
	logMutation(session, "update_product", productID)
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, session ledger.Session, productID string) error {
	if err := s.ledger.DeleteProduct(ctx, session, productID); err != nil {
		return err
	}
	s.cache.Invalidate(cache.ProductMutation...)
	logMutation(session, "delete_product", productID)
	return nil
}

// buildProduct applies the per-type defaults. Fields that cannot apply to the
// type are kept so CheckVariantFields can report them.
func (s *ProductService) buildProduct(session ledger.Session, id string, req *ProductRequest) *models.Product {
	product := &models.Product{
		ID:                id,
		Artist:            session.Principal,
		Name:              strings.TrimSpace(req.Name),
		Description:       req.Description,
		Price:             req.Price,
		Inventory:         req.Inventory,
		Images:            req.Images,
		ProductType:       req.ProductType,
		Blockchain:        req.Blockchain,
		RoyaltyPercentage: req.RoyaltyPercentage,
		UnlockableContent: req.UnlockableContent,
		Supply:            req.Supply,
		SKU:               req.SKU,
		ShippingDetails:   req.ShippingDetails,
		MintCertificate:   req.MintCertificate,
		AttachNfcQrTag:    req.AttachNfcQrTag && req.ProductType == models.ProductTypePhygital,
	}
	if product.Images == nil {
		product.Images = []string{}
	}

	switch req.ProductType {
	case models.ProductTypeNFT:
		product.Inventory = 0
		product.SKU = nil
		if product.Supply == nil {
			one := int64(1)
			product.Supply = &one
		}
	case models.ProductTypePhysical:
		product.UnlockableContent = nil
		product.Supply = nil
	case models.ProductTypePhygital:
		product.Supply = nil
	}

	if req.ProductType != models.ProductTypePhysical && product.Blockchain == nil {
		icp := models.BlockchainICP
		product.Blockchain = &icp
	}

	if product.MintCertificate {
		link := s.authenticityLink(id)
		product.AuthenticityLink = &link
	}
	return product
}

func (s *ProductService) authenticityLink(productID string) string {
	return strings.TrimRight(s.config.Server.PublicURL, "/") + "/verify/" + productID
}
