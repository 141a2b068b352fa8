// controllers/admin_order_controller.go
package controllers

import (
	"takeout/pkg/resp"
	"takeout/services"
	"takeout/utils"

	"github.com/gin-gonic/gin"
)

// AdminOrderController: ฝั่งพนักงานร้าน (/admin/order)
type AdminOrderController struct{ Svc *services.OrderService }

func NewAdminOrderController(s *services.OrderService) *AdminOrderController {
	return &AdminOrderController{Svc: s}
}

func staff(c *gin.Context) services.Actor { return services.Staff(utils.CurrentUserID(c)) }

// ---------------- Queries ----------------

// GET /admin/order/details/:id
func (h *AdminOrderController) Details(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	o, err := h.Svc.Detail(c.Request.Context(), staff(c), id)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, o)
}

// GET /admin/order/conditionSearch?page=&pageSize=&number=&phone=&status=&beginTime=&endTime=
func (h *AdminOrderController) ConditionSearch(c *gin.Context) {
	var q services.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	page, err := h.Svc.Search(c.Request.Context(), q)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, page)
}

// GET /admin/order/statistics
func (h *AdminOrderController) Statistics(c *gin.Context) {
	st, err := h.Svc.Statistics(c.Request.Context())
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, st)
}

// ---------------- Transitions ----------------

// PUT /admin/order/confirm
func (h *AdminOrderController) Confirm(c *gin.Context) {
	var in services.ConfirmIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.Confirm(c.Request.Context(), staff(c), in); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, nil)
}

// PUT /admin/order/rejection
func (h *AdminOrderController) Rejection(c *gin.Context) {
	var in services.RejectIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.Reject(c.Request.Context(), staff(c), in); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, nil)
}

// PUT /admin/order/cancel
func (h *AdminOrderController) Cancel(c *gin.Context) {
	var in services.CancelIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.Cancel(c.Request.Context(), staff(c), in); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, nil)
}

// PUT /admin/order/delivery/:id
func (h *AdminOrderController) Delivery(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.Svc.Deliver(c.Request.Context(), staff(c), id); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, nil)
}

// PUT /admin/order/complete/:id
func (h *AdminOrderController) Complete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.Svc.Complete(c.Request.Context(), staff(c), id); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, nil)
}
