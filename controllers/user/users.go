package userControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hackwithroshan/autocosmic-shop-sub000/models"
)

// UserProfile is a User plus the order aggregates derived at read time.
// Segment, TotalOrders and TotalSpent are never stored.
type UserProfile struct {
	models.User
	TotalOrders int     `json:"total_orders"`
	TotalSpent  float64 `json:"total_spent"`
	Segment     string  `json:"segment"`
}

type orderAggregate struct {
	UserID      string
	TotalOrders int
	TotalSpent  float64
}

func aggregateOrders(db *gorm.DB, userIDs []string) (map[string]orderAggregate, error) {
	var rows []orderAggregate
	err := db.Model(&models.Order{}).
		Select("user_id, COUNT(*) AS total_orders, COALESCE(SUM(total), 0) AS total_spent").
		Where("user_id IN ?", userIDs).
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	agg := make(map[string]orderAggregate, len(rows))
	for _, r := range rows {
		agg[r.UserID] = r
	}
	return agg, nil
}

func profileFor(user models.User, agg orderAggregate) UserProfile {
	return UserProfile{
		User:        user,
		TotalOrders: agg.TotalOrders,
		TotalSpent:  agg.TotalSpent,
		Segment:     models.SegmentFor(agg.TotalOrders, agg.TotalSpent),
	}
}

// GET /api/users/me
func GetMe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		agg, err := aggregateOrders(db, []string{user.ID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load order history"})
			return
		}

		c.JSON(http.StatusOK, profileFor(user, agg[user.ID]))
	}
}

type updateMeInput struct {
	Name    *string         `json:"name"`
	Phone   *string         `json:"phone"`
	Address *models.Address `json:"address"`
}

// PUT /api/users/me
func UpdateMe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		var input updateMeInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Phone != nil {
			updates["phone"] = *input.Phone
		}
		if input.Address != nil {
			updates["street"] = input.Address.Street
			updates["city"] = input.Address.City
			updates["state"] = input.Address.State
			updates["postal_code"] = input.Address.PostalCode
			updates["country"] = input.Address.Country
		}

		if len(updates) > 0 {
			if err := db.Model(&user).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
				return
			}
		}

		c.JSON(http.StatusOK, user)
	}
}

// GET /api/users (admin)
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.Order("created_at desc").Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch users"})
			return
		}

		ids := make([]string, len(users))
		for i, u := range users {
			ids[i] = u.ID
		}
		agg, err := aggregateOrders(db, ids)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load order history"})
			return
		}

		profiles := make([]UserProfile, len(users))
		for i, u := range users {
			profiles[i] = profileFor(u, agg[u.ID])
		}
		c.JSON(http.StatusOK, profiles)
	}
}
