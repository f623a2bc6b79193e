package server

import (
	"net/http"
	"strings"

	userdomain "github.com/collectpay/collectpay/internal/user/domain"
	"github.com/gin-gonic/gin"
)

type createUserRequest struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Role     string   `json:"role"`
	AppIDs   []string `json:"appIds"`
}

type updateUserRequest struct {
	Username *string  `json:"username"`
	Email    *string  `json:"email"`
	Role     *string  `json:"role"`
	IsActive *bool    `json:"isActive"`
	AppIDs   []string `json:"appIds"`
}

type assignAppsRequest struct {
	AppIDs []string `json:"appIds"`
}

func (s *Server) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	user, err := s.userSvc.Create(c.Request.Context(), userdomain.CreateUserRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		AppIDs:   req.AppIDs,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": user})
}

func (s *Server) ListUsers(c *gin.Context) {
	users, err := s.userSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(users), "data": users})
}

func (s *Server) GetUser(c *gin.Context) {
	view, err := s.userSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("userId")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": view})
}

func (s *Server) UpdateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	user, err := s.userSvc.Update(c.Request.Context(), strings.TrimSpace(c.Param("userId")), userdomain.UpdateUserRequest{
		Username: req.Username,
		Email:    req.Email,
		Role:     req.Role,
		IsActive: req.IsActive,
		AppIDs:   req.AppIDs,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user})
}

func (s *Server) DeleteUser(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("userId"))
	if err := s.userSvc.Delete(c.Request.Context(), userID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"userId": userID, "deleted": true}})
}

func (s *Server) AssignApps(c *gin.Context) {
	var req assignAppsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	userID := strings.TrimSpace(c.Param("userId"))
	if err := s.userSvc.AssignApps(c.Request.Context(), userID, req.AppIDs); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"userId": userID, "appIds": req.AppIDs}})
}
