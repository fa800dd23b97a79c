package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/ovofarm/backoffice/internal/models"
	"github.com/ovofarm/backoffice/internal/service"
	"github.com/ovofarm/backoffice/internal/validation"
)

// RegisterPaymentRoutes registers the payment CRUD routes.
func RegisterPaymentRoutes(r gin.IRouter, svc *service.PaymentService, v *validatorv10.Validate) {
	r.POST("/payments", func(c *gin.Context) {
		var req validation.PaymentRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		pay, err := svc.RecordPayment(c.Request.Context(), paymentFromRequest(&req))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, pay)
	})

	r.GET("/payments/:id", func(c *gin.Context) {
		pay, err := svc.GetPayment(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, pay)
	})

	r.PUT("/payments/:id", func(c *gin.Context) {
		var req validation.PaymentRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		pay, err := svc.UpdatePayment(c.Request.Context(), c.Param("id"), paymentFromRequest(&req))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, pay)
	})

	r.DELETE("/payments/:id", func(c *gin.Context) {
		if err := svc.DeletePayment(c.Request.Context(), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
}

func paymentFromRequest(req *validation.PaymentRequest) *models.Payment {
	return &models.Payment{
		UserID:     req.UserID,
		BillID:     req.BillID,
		AmountPaid: req.AmountPaid,
		Method:     models.PaymentMethod(req.Method),
	}
}
