package admin

import (
	"errors"
	"strconv"

	"github.com/honeyfoods-shop/internal/http/response"
	"github.com/honeyfoods-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token     string                 `json:"token"`
	User      map[string]interface{} `json:"user"`
	ExpiresAt string                 `json:"expires_at"`
}

// AdminLogin 管理员登录
func (h *Handler) AdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	admin, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			requestLog(c).Warnw("admin_login_rejected",
				"username", req.Username,
				"client_ip", c.ClientIP(),
			)
			respondError(c, response.CodeUnauthorized, "invalid username or password", nil)
			return
		}
		respondError(c, response.CodeInternal, "login failed", err)
		return
	}
	response.Success(c, LoginResponse{
		Token: token,
		User: map[string]interface{}{
			"id":       admin.ID,
			"username": admin.Username,
			"is_super": admin.IsSuper,
		},
		ExpiresAt: expiresAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// UpdatePasswordRequest 修改密码请求
type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UpdateAdminPassword 修改管理员密码
func (h *Handler) UpdateAdminPassword(c *gin.Context) {
	id, ok := getAdminID(c)
	if !ok {
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	if err := h.AuthService.ChangePassword(id, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrInvalidPassword) {
			respondError(c, response.CodeBadRequest, "old password is incorrect", nil)
			return
		}
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "admin not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to change password", err)
		return
	}

	response.Success(c, nil)
}

// GetAdmins 获取管理员列表
func (h *Handler) GetAdmins(c *gin.Context) {
	admins, err := h.AuthService.ListAdmins()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load admins", err)
		return
	}
	response.Success(c, admins)
}

// CreateAdminRequest 创建管理员请求
type CreateAdminRequest struct {
	Username string   `json:"username" binding:"required"`
	Password string   `json:"password" binding:"required"`
	IsSuper  bool     `json:"is_super"`
	Roles    []string `json:"roles"`
}

// CreateAdmin 创建管理员账号
func (h *Handler) CreateAdmin(c *gin.Context) {
	var req CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	admin, err := h.AuthService.CreateAdmin(req.Username, req.Password, req.IsSuper)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateUsername) {
			respondError(c, response.CodeBadRequest, "username already exists", nil)
			return
		}
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, response.CodeBadRequest, "username and password are required", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to create admin", err)
		return
	}

	if len(req.Roles) > 0 && h.AuthzService != nil {
		if err := h.AuthzService.SetAdminRoles(admin.ID, req.Roles); err != nil {
			requestLog(c).Warnw("admin_assign_roles_failed", "admin_id", admin.ID, "error", err)
		}
	}
	response.Success(c, admin)
}

// DeleteAdmin 删除管理员账号
func (h *Handler) DeleteAdmin(c *gin.Context) {
	operatorID, ok := getAdminID(c)
	if !ok {
		return
	}
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || targetID == 0 {
		respondError(c, response.CodeBadRequest, "invalid admin id", nil)
		return
	}

	if err := h.AuthService.DeleteAdmin(operatorID, uint(targetID)); err != nil {
		switch {
		case errors.Is(err, service.ErrCannotDeleteSelf):
			respondError(c, response.CodeBadRequest, "cannot delete the current account", nil)
		case errors.Is(err, service.ErrCannotDeleteLastAdmin):
			respondError(c, response.CodeBadRequest, "cannot delete the last admin", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "admin not found", nil)
		default:
			respondError(c, response.CodeInternal, "failed to delete admin", err)
		}
		return
	}
	response.Success(c, nil)
}

// SetAdminRolesRequest 设置管理员角色请求
type SetAdminRolesRequest struct {
	Roles []string `json:"roles"`
}

// SetAdminRoles 覆盖设置管理员角色
func (h *Handler) SetAdminRoles(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || targetID == 0 {
		respondError(c, response.CodeBadRequest, "invalid admin id", nil)
		return
	}
	var req SetAdminRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	if err := h.AuthzService.SetAdminRoles(uint(targetID), req.Roles); err != nil {
		respondError(c, response.CodeInternal, "failed to set admin roles", err)
		return
	}
	roles, err := h.AuthzService.GetAdminRoles(uint(targetID))
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load admin roles", err)
		return
	}
	response.Success(c, gin.H{"roles": roles})
}

// GetRoles 列出可用角色
func (h *Handler) GetRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load roles", err)
		return
	}
	response.Success(c, roles)
}
