package handlers

import (
	"net/http"
	"strings"

	"warehouse/internal/domain"
	"warehouse/internal/repositories"
	"warehouse/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// userView is the users-module row; the password hash never leaves the
// repository layer.
type userView struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	Status       string  `json:"status"`
	WarehouseIDs []int64 `json:"warehouse_ids,omitempty"`
}

func toUserView(rec repositories.UserRecord) userView {
	return userView{
		ID:           rec.ID,
		Name:         rec.Name,
		Email:        rec.Email,
		Role:         rec.Role,
		Status:       rec.Status,
		WarehouseIDs: rec.WarehouseIDs,
	}
}

// GET /api/users
func GetUsers(c *gin.Context) {
	recs, err := userStore.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	out := make([]userView, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toUserView(rec))
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

// GET /api/users/:id
func GetUserByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	rec, err := userStore.FindByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": toUserView(rec)})
}

type createUserRequest struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	Role         string  `json:"role"`
	WarehouseIDs []int64 `json:"warehouse_ids"`
}

// POST /api/users
func CreateUser(c *gin.Context) {
	var req createUserRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	req.Name = utils.NormalizeSpace(req.Name)
	req.Email = utils.NormalizeEmail(req.Email)
	if req.Name == "" || req.Email == "" || len(req.Password) < 6 {
		RespondDomainError(c, domain.ValidationError{Msg: "name, email and a password of at least 6 characters are required"})
		return
	}
	if !validRole(req.Role) {
		RespondDomainError(c, domain.ValidationError{Field: "role", Msg: "must be admin, manager or staff"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "password hashing failed", Err: err})
		return
	}

	id, err := userStore.Create(repositories.UserRecord{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         strings.ToLower(req.Role),
		Status:       "active",
		WarehouseIDs: req.WarehouseIDs,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "user created",
		"user": userView{
			ID:           id,
			Name:         req.Name,
			Email:        req.Email,
			Role:         strings.ToLower(req.Role),
			Status:       "active",
			WarehouseIDs: req.WarehouseIDs,
		},
	})
}

type updateUserRequest struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	Status       string  `json:"status"`
	WarehouseIDs []int64 `json:"warehouse_ids"`
}

// PUT /api/users/:id
func UpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateUserRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	existing, err := userStore.FindByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if s := utils.NormalizeSpace(req.Name); s != "" {
		existing.Name = s
	}
	if s := utils.NormalizeEmail(req.Email); s != "" {
		existing.Email = s
	}
	if s := strings.ToLower(utils.TrimOrEmpty(req.Role)); s != "" {
		if !validRole(s) {
			RespondDomainError(c, domain.ValidationError{Field: "role", Msg: "must be admin, manager or staff"})
			return
		}
		existing.Role = s
	}
	if s := strings.ToLower(utils.TrimOrEmpty(req.Status)); s != "" {
		existing.Status = s
	}
	if req.WarehouseIDs != nil {
		existing.WarehouseIDs = req.WarehouseIDs
	}

	if err := userStore.Update(existing); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user updated", "user": toUserView(existing)})
}

// DELETE /api/users/:id
func DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := userStore.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

func validRole(role string) bool {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case domain.RoleAdmin, domain.RoleManager, domain.RoleStaff:
		return true
	default:
		return false
	}
}
