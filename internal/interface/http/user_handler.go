package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-user-accounts/internal/application"
	"github.com/oksasatya/go-ddd-user-accounts/pkg/response"
)

// UserUseCases bundles the operations served over HTTP.
type UserUseCases struct {
	Create         *application.CreateUser
	Update         *application.UpdateUser
	ChangePassword *application.ChangePassword
	Activate       *application.ActivateUser
	Deactivate     *application.DeactivateUser
	Block          *application.BlockUser
	Delete         *application.DeleteUser
	FindByID       *application.FindUserByID
	FindByEmail    *application.FindUserByEmail
	List           *application.ListUsers
	Search         *application.SearchUsers
}

type UserHandler struct {
	uc     UserUseCases
	Logger *logrus.Logger
}

func NewUserHandler(uc UserUseCases, logger *logrus.Logger) *UserHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &UserHandler{uc: uc, Logger: logger}
}

// Value rules live in the domain, so bodies carry no binding tags.
type createUserRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
	Password  string `json:"password"`
}

type updateUserRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type listUsersQuery struct {
	Page      int    `form:"page" binding:"gte=0"`
	Size      int    `form:"size" binding:"gte=0,lte=100"`
	OrderBy   string `form:"orderBy"`
	Direction string `form:"direction"`
}

type searchUsersQuery struct {
	Q    string `form:"q" binding:"required"`
	Size int    `form:"size" binding:"gte=0"`
}

type byEmailQuery struct {
	Email string `form:"email" binding:"required"`
}

type pageMeta struct {
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	PageNumber int   `json:"page_number"`
	PageSize   int   `json:"page_size"`
	IsFirst    bool  `json:"is_first"`
	IsLast     bool  `json:"is_last"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	out, err := h.uc.Create.Execute(c.Request.Context(), application.CreateUserInput{
		Name:      req.Name,
		Email:     req.Email,
		Telephone: req.Telephone,
		Password:  req.Password,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, out, "user created", nil)
}

func (h *UserHandler) List(c *gin.Context) {
	var q listUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err)
		return
	}
	page, err := h.uc.List.Execute(c.Request.Context(), application.ListUsersInput{
		Page:      q.Page,
		Size:      q.Size,
		OrderBy:   q.OrderBy,
		Direction: q.Direction,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, page.Items, "users", pageMeta{
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
		IsFirst:    page.IsFirst,
		IsLast:     page.IsLast,
	})
}

func (h *UserHandler) Search(c *gin.Context) {
	var q searchUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err)
		return
	}
	found, err := h.uc.Search.Execute(c.Request.Context(), q.Q, q.Size)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, found, "search results", map[string]any{"count": len(found)})
}

func (h *UserHandler) GetByEmail(c *gin.Context) {
	var q byEmailQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err)
		return
	}
	out, err := h.uc.FindByEmail.Execute(c.Request.Context(), q.Email)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, out, "user", nil)
}

func (h *UserHandler) Get(c *gin.Context) {
	out, err := h.uc.FindByID.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, out, "user", nil)
}

func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	out, err := h.uc.Update.Execute(c.Request.Context(), application.UpdateUserInput{
		ID:        c.Param("id"),
		Name:      req.Name,
		Email:     req.Email,
		Telephone: req.Telephone,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, out, "user updated", nil)
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	out, err := h.uc.ChangePassword.Execute(c.Request.Context(), application.ChangePasswordInput{
		ID:              c.Param("id"),
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, out, "password changed", nil)
}

func (h *UserHandler) Activate(c *gin.Context) {
	h.transition(c, h.uc.Activate.Execute, "user activated")
}

func (h *UserHandler) Deactivate(c *gin.Context) {
	h.transition(c, h.uc.Deactivate.Execute, "user deactivated")
}

func (h *UserHandler) Block(c *gin.Context) {
	h.transition(c, h.uc.Block.Execute, "user blocked")
}

func (h *UserHandler) transition(c *gin.Context, exec func(ctx context.Context, id string) (application.UserOutput, error), message string) {
	out, err := exec(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, out, message, nil)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.uc.Delete.Execute(c.Request.Context(), id); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, map[string]any{"id": id, "deleted": true}, "user deleted", nil)
}
