package controllers

import (
	"takeout/pkg/resp"
	"takeout/services"
	"takeout/utils"

	"github.com/gin-gonic/gin"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController { return &CartController{Svc: s} }

// POST /user/shoppingCart/add
func (h *CartController) Add(c *gin.Context) {
	var in services.CartIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.Add(c.Request.Context(), services.Customer(utils.CurrentUserID(c)), in); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, nil)
}

// GET /user/shoppingCart/list
func (h *CartController) List(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context(), services.Customer(utils.CurrentUserID(c)))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, items)
}

// POST /user/shoppingCart/sub
func (h *CartController) Sub(c *gin.Context) {
	var in services.CartIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.Sub(c.Request.Context(), services.Customer(utils.CurrentUserID(c)), in); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, nil)
}

// DELETE /user/shoppingCart/clean
func (h *CartController) Clean(c *gin.Context) {
	if err := h.Svc.Clear(c.Request.Context(), services.Customer(utils.CurrentUserID(c))); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, nil)
}
