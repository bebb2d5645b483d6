package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ficct.app/scrum/internal/http/dto"
	"ficct.app/scrum/internal/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, ctx, err)
		return
	}

	user, err := h.userService.Create(ctx, req.Name, req.Email, req.AvatarURL)
	if err != nil {
		respondError(c, ctx, err, "failed to create user")
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

func (h *UserHandler) GetByID(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.Get(ctx, id)
	if err != nil {
		respondError(c, ctx, err, "failed to load user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *UserHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, ctx, err)
		return
	}

	user, err := h.userService.Update(ctx, id, req.Name, req.AvatarURL)
	if err != nil {
		respondError(c, ctx, err, "failed to update user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
