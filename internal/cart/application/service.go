package application

import (
	"context"
	"log/slog"

	"github.com/pixelmart/storefront/internal/cart/domain"
	"github.com/pixelmart/storefront/pkg/apperror"
)

// Service owns every mutation of a user's cart. Each mutation persists the
// full document and returns it re-joined with current product data, so the
// response is always the authoritative state.
//
// Requested quantities are deliberately not checked against product stock;
// the catalog is only consulted to resolve references.
type Service struct {
	log      *slog.Logger
	carts    CartRepository
	products ProductFinder
}

func NewService(log *slog.Logger, carts CartRepository, products ProductFinder) *Service {
	return &Service{log: log, carts: carts, products: products}
}

func (s *Service) Get(ctx context.Context, userID string) (domain.View, error) {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		if apperror.Code(err) == apperror.CodeNotFound {
			return domain.View{Items: []domain.ItemView{}}, nil
		}
		return domain.View{}, err
	}
	return s.join(ctx, cart)
}

func (s *Service) AddItem(ctx context.Context, userID, productID string, quantity int) (domain.View, error) {
	if productID == "" {
		return domain.View{}, apperror.New(apperror.CodeInvalid, "product ID is required")
	}
	if quantity <= 0 {
		quantity = 1
	}
	if _, err := s.products.Get(ctx, productID); err != nil {
		return domain.View{}, err
	}

	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return domain.View{}, err
	}
	cart.Add(productID, quantity)
	if err := s.carts.Save(ctx, cart); err != nil {
		return domain.View{}, err
	}
	return s.join(ctx, cart)
}

// SetQuantity resolves the product before writing, same as AddItem, so a
// dangling reference can never be stored through either mutation path.
func (s *Service) SetQuantity(ctx context.Context, userID, productID string, quantity int) (domain.View, error) {
	if productID == "" {
		return domain.View{}, apperror.New(apperror.CodeInvalid, "product ID is required")
	}
	if _, err := s.products.Get(ctx, productID); err != nil {
		return domain.View{}, err
	}

	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return domain.View{}, err
	}
	cart.Set(productID, quantity)
	cart.Prune()
	if err := s.carts.Save(ctx, cart); err != nil {
		return domain.View{}, err
	}
	return s.join(ctx, cart)
}

func (s *Service) RemoveItem(ctx context.Context, userID, productID string) (domain.View, error) {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return domain.View{}, err
	}
	cart.Remove(productID)
	if err := s.carts.Save(ctx, cart); err != nil {
		return domain.View{}, err
	}
	return s.join(ctx, cart)
}

func (s *Service) getOrCreate(ctx context.Context, userID string) (domain.Cart, error) {
	cart, err := s.carts.Get(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if apperror.Code(err) == apperror.CodeNotFound {
		return domain.New(userID), nil
	}
	return domain.Cart{}, err
}

// join repopulates the cart with live product documents. Items whose product
// has vanished from the catalog are omitted from the view.
func (s *Service) join(ctx context.Context, cart domain.Cart) (domain.View, error) {
	ids := make([]string, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.products.GetMany(ctx, ids)
	if err != nil {
		return domain.View{}, err
	}

	view := domain.View{Items: []domain.ItemView{}}
	for _, item := range cart.Items {
		p, ok := products[item.ProductID]
		if !ok {
			s.log.Warn("cart references missing product", "user_id", cart.UserID, "product_id", item.ProductID)
			continue
		}
		view.Items = append(view.Items, domain.ItemView{Product: p, Quantity: item.Quantity})
	}
	return view, nil
}
