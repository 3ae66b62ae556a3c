package orderControllers

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hackwithroshan/autocosmic-shop-sub000/cart"
	"github.com/hackwithroshan/autocosmic-shop-sub000/models"
)

var ErrInsufficientStock = errors.New("insufficient stock")

// Store is the gorm-backed order persistence layer.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// CreateOrder persists the order and decrements stock in one transaction.
// Each referenced product row is locked for the duration, so two concurrent
// checkouts cannot both take the last unit. Variant-level stock is
// decremented when the line selects an option, product-level otherwise.
func (s *Store) CreateOrder(order *models.Order, lines []cart.Line) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, line := range lines {
			var product models.Product
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Preload("Variants.Options").
				First(&product, "id = ?", line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("product %d does not exist", line.ProductID)
				}
				return err
			}

			if product.EffectiveStock(line.VariantSelection) < line.Quantity {
				return fmt.Errorf("%w for product: %s", ErrInsufficientStock, product.Name)
			}

			if err := decrementStock(tx, &product, line); err != nil {
				return err
			}

			order.Items = append(order.Items, models.OrderItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
			})
		}

		return tx.Create(order).Error
	})
}

func decrementStock(tx *gorm.DB, product *models.Product, line cart.Line) error {
	if product.HasVariants && len(line.VariantSelection) > 0 {
		for gi := range product.Variants {
			group := &product.Variants[gi]
			want, ok := line.VariantSelection[group.Name]
			if !ok {
				continue
			}
			for oi := range group.Options {
				opt := &group.Options[oi]
				if opt.Value == want {
					opt.Stock -= line.Quantity
					return tx.Model(opt).Update("stock", opt.Stock).Error
				}
			}
		}
	}
	product.Stock -= line.Quantity
	return tx.Model(product).Update("stock", product.Stock).Error
}

// ListFilter narrows ListOrders. Empty fields mean "any".
type ListFilter struct {
	Status models.OrderStatus
	UserID string
}

// ListOrders returns orders newest first with items and product fields
// populated.
func (s *Store) ListOrders(filter ListFilter) ([]models.Order, error) {
	q := s.db.Preload("Items").Preload("Items.Product").Order("created_at DESC")
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}

	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder fetches one order by numeric id or order ref.
func (s *Store) GetOrder(id string) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Items").Preload("Items.Product").
		Where("id::text = ? OR order_ref = ?", id, id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus overwrites status (and tracking info when provided) and
// nothing else; date, items and total stay immutable after creation.
func (s *Store) UpdateStatus(id string, status models.OrderStatus, trackingInfo *string) (*models.Order, error) {
	updates := map[string]interface{}{"status": status}
	if trackingInfo != nil {
		updates["tracking_info"] = *trackingInfo
	}

	res := s.db.Model(&models.Order{}).Where("id::text = ? OR order_ref = ?", id, id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return s.GetOrder(id)
}
