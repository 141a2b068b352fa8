package controllers

import (
	"net/http"

	"takeout/pkg/resp"
	"takeout/services"
	"takeout/utils"

	"github.com/gin-gonic/gin"
)

// OrderController: ฝั่งลูกค้า (/user/order)
type OrderController struct{ Svc *services.OrderService }

func NewOrderController(s *services.OrderService) *OrderController { return &OrderController{Svc: s} }

func customer(c *gin.Context) services.Actor { return services.Customer(utils.CurrentUserID(c)) }

// POST /user/order/submit
func (h *OrderController) Submit(c *gin.Context) {
	var in services.SubmitIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := h.Svc.Submit(c.Request.Context(), customer(c), in)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, out)
}

// PUT /user/order/payment
func (h *OrderController) Payment(c *gin.Context) {
	var in services.PayIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := h.Svc.Pay(c.Request.Context(), customer(c), in)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /user/order/orderDetail/:id
func (h *OrderController) Detail(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	o, err := h.Svc.Detail(c.Request.Context(), customer(c), id)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, o)
}

// GET /user/order/historyOrders?page=&pageSize=&status=
func (h *OrderController) History(c *gin.Context) {
	var q services.HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	page, err := h.Svc.History(c.Request.Context(), customer(c), q)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, page)
}

// PUT /user/order/cancel/:id
func (h *OrderController) Cancel(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.Svc.CancelByCustomer(c.Request.Context(), customer(c), id); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, nil)
}

// POST /user/order/repetition/:id
func (h *OrderController) Repetition(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.Svc.Repeat(c.Request.Context(), customer(c), id); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, nil)
}

// GET /user/order/reminder/:id
func (h *OrderController) Reminder(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.Svc.Reminder(c.Request.Context(), customer(c), id); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, nil)
}

// GET /user/order/qrcode/:id  → image/png
func (h *OrderController) QRCode(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	png, err := h.Svc.PickupQRCode(c.Request.Context(), customer(c), id)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
