package admin

import (
	"fmt"

	"github.com/bleep333/fake-shop-sub001/internal/audit"
	"github.com/bleep333/fake-shop-sub001/internal/auth"
	"github.com/bleep333/fake-shop-sub001/internal/database"
	"github.com/bleep333/fake-shop-sub001/internal/models"
	"github.com/bleep333/fake-shop-sub001/internal/scope"

	"github.com/gofiber/fiber/v2"
)

type UserResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"`
	CreatedAt string `json:"created_at"`
}

// GET /api/admin/users?search=ann
func ListUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		pred := scope.Build(
			scope.FilterSpec{SearchText: c.Query("search")},
			*ident,
			"name", "email",
		)

		var users []models.User
		if err := pred.Apply(database.DB.Model(&models.User{})).
			Order("created_at DESC, id DESC").
			Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list users")
		}

		resp := make([]UserResponse, 0, len(users))
		for _, u := range users {
			resp = append(resp, UserResponse{
				ID:        u.ID,
				Name:      u.Name,
				Email:     u.Email,
				IsAdmin:   u.IsAdmin,
				CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		return c.JSON(resp)
	}
}

type UpdateUserRequest struct {
	IsAdmin *bool `json:"is_admin"`
}

// PUT /api/admin/users/:id
func UpdateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "User id is invalid")
		}

		var body UpdateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.IsAdmin == nil {
			return fiber.NewError(fiber.StatusBadRequest, "is_admin is required")
		}

		if uint(id) == ident.UserID && !*body.IsAdmin {
			return fiber.NewError(fiber.StatusBadRequest, "You cannot revoke your own admin access")
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}

		before := user.IsAdmin
		user.IsAdmin = *body.IsAdmin
		if err := database.DB.Save(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update user")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      ident.UserID,
			UserName:    ident.Email,
			EntityType:  "user",
			EntityID:    user.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("User %s admin flag: %t -> %t", user.Email, before, user.IsAdmin),
			Before:      fiber.Map{"is_admin": before},
			After:       fiber.Map{"is_admin": user.IsAdmin},
		}); logErr != nil {
			fmt.Printf("Could not write audit log: %v\n", logErr)
		}

		return c.JSON(UserResponse{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			IsAdmin:   user.IsAdmin,
			CreatedAt: user.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

// DELETE /api/admin/users/:id
func DeleteUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "User id is invalid")
		}

		if uint(id) == ident.UserID {
			return fiber.NewError(fiber.StatusBadRequest, "You cannot delete your own account")
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}

		var orderCount int64
		database.DB.Model(&models.Order{}).Where("user_id = ?", id).Count(&orderCount)
		if orderCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "User has orders and cannot be deleted")
		}

		tx := database.DB.Begin()
		if err := tx.Delete(&models.CartItem{}, "user_id = ?", id).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete user's cart")
		}
		if err := tx.Delete(&models.WishlistItem{}, "user_id = ?", id).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete user's wishlist")
		}
		if err := tx.Delete(&user).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete user")
		}
		if err := tx.Commit().Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete user")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      ident.UserID,
			UserName:    ident.Email,
			EntityType:  "user",
			EntityID:    user.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("User deleted: %s", user.Email),
			Before:      fiber.Map{"email": user.Email, "name": user.Name},
		}); logErr != nil {
			fmt.Printf("Could not write audit log: %v\n", logErr)
		}

		return c.JSON(fiber.Map{"deleted": user.ID})
	}
}
