package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/ovofarm/backoffice/internal/models"
	"github.com/ovofarm/backoffice/internal/service"
	"github.com/ovofarm/backoffice/internal/validation"
)

// RegisterOrderRoutes registers the order CRUD routes.
func RegisterOrderRoutes(r gin.IRouter, svc *service.OrderService, v *validatorv10.Validate) {
	r.POST("/orders", func(c *gin.Context) {
		var req validation.OrderRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		order, err := svc.CreateOrder(c.Request.Context(), orderFromRequest(&req))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	})

	r.GET("/orders", func(c *gin.Context) {
		orders, err := svc.ListOrders(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	})

	r.GET("/orders/:id", func(c *gin.Context) {
		order, err := svc.GetOrder(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	})

	r.PUT("/orders/:id", func(c *gin.Context) {
		var req validation.OrderRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		order, err := svc.UpdateOrder(c.Request.Context(), c.Param("id"), orderFromRequest(&req))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	})

	r.DELETE("/orders/:id", func(c *gin.Context) {
		if err := svc.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
}

func orderFromRequest(req *validation.OrderRequest) *models.Order {
	lines := make([]models.OrderLine, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = models.OrderLine{
			ProductType:  l.ProductType,
			ProductColor: l.ProductColor,
			Quantity:     l.Quantity,
			UnitPrice:    l.UnitPrice,
			Subtotal:     l.Subtotal,
		}
	}
	return &models.Order{
		UserID:     req.UserID,
		Lines:      lines,
		TotalPrice: req.TotalPrice,
		OrderDate:  req.OrderDate,
		State:      models.OrderState(req.State),
	}
}
