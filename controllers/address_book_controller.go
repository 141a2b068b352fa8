package controllers

import (
	"takeout/pkg/resp"
	"takeout/services"
	"takeout/utils"

	"github.com/gin-gonic/gin"
)

type AddressBookController struct{ Svc *services.AddressBookService }

func NewAddressBookController(s *services.AddressBookService) *AddressBookController {
	return &AddressBookController{Svc: s}
}

// POST /user/addressBook
func (h *AddressBookController) Add(c *gin.Context) {
	var in services.AddressIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	a, err := h.Svc.Add(c.Request.Context(), services.Customer(utils.CurrentUserID(c)), in)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, a)
}

// GET /user/addressBook/list
func (h *AddressBookController) List(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context(), services.Customer(utils.CurrentUserID(c)))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, list)
}
