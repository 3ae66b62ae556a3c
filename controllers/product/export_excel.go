package productControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/hackwithroshan/autocosmic-shop-sub000/models"
)

// GET /api/products/export-excel (admin)
func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Preload("Category").Preload("Variants.Options").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create sheet"})
			return
		}

		headers := []string{
			"ID", "Name", "Slug", "Price", "MRP", "Stock",
			"Category", "Variants", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Name)
			row.AddCell().SetValue(p.Slug)
			row.AddCell().SetValue(p.Price)
			row.AddCell().SetValue(p.MRP)
			row.AddCell().SetValue(p.Stock)
			row.AddCell().SetValue(p.Category.Name)
			row.AddCell().SetValue(variantSummary(p))
			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write sheet"})
			return
		}
	}
}

func variantSummary(p models.Product) string {
	if !p.HasVariants {
		return ""
	}
	summary := ""
	for _, g := range p.Variants {
		if summary != "" {
			summary += "; "
		}
		summary += g.Name + ":"
		for i, o := range g.Options {
			if i > 0 {
				summary += ","
			}
			summary += o.Value
		}
	}
	return summary
}
