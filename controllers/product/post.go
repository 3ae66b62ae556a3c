package productControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hackwithroshan/autocosmic-shop-sub000/models"
)

type variantOptionInput struct {
	Value string  `json:"value" binding:"required"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

type variantGroupInput struct {
	Name    string               `json:"name" binding:"required"`
	Options []variantOptionInput `json:"options"`
}

type productInput struct {
	Name        string              `json:"name" binding:"required"`
	Description string              `json:"description"`
	Price       float64             `json:"price" binding:"required,gt=0"`
	MRP         float64             `json:"mrp"`
	Stock       int                 `json:"stock" binding:"min=0"`
	ImageURL    string              `json:"image_url"`
	CategoryID  uint                `json:"category_id"`
	HasVariants bool                `json:"has_variants"`
	Variants    []variantGroupInput `json:"variants"`
}

func (in *productInput) toModel() models.Product {
	p := models.Product{
		Name:        in.Name,
		Slug:        models.Slugify(in.Name),
		Description: in.Description,
		Price:       in.Price,
		MRP:         in.MRP,
		Stock:       in.Stock,
		ImageURL:    in.ImageURL,
		CategoryID:  in.CategoryID,
		HasVariants: in.HasVariants,
	}
	for _, g := range in.Variants {
		group := models.VariantGroup{Name: g.Name}
		for _, o := range g.Options {
			group.Options = append(group.Options, models.VariantOption{
				Value: o.Value,
				Price: o.Price,
				Stock: o.Stock,
			})
		}
		p.Variants = append(p.Variants, group)
	}
	return p
}

// POST /api/products (admin)
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input productInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		product := input.toModel()
		if err := product.ValidateVariants(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := db.Create(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"error": "a product with this name already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}
