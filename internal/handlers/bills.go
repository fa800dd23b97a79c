package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/ovofarm/backoffice/internal/models"
	"github.com/ovofarm/backoffice/internal/service"
	"github.com/ovofarm/backoffice/internal/validation"
)

// RegisterBillRoutes registers the bill CRUD routes.
func RegisterBillRoutes(r gin.IRouter, svc *service.BillingService, v *validatorv10.Validate) {
	r.POST("/bills", func(c *gin.Context) {
		var req validation.BillRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		bill, err := svc.IssueBill(c.Request.Context(), billFromRequest(&req))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, bill)
	})

	r.GET("/bills", func(c *gin.Context) {
		views, err := svc.ListBills(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"bills": views})
	})

	r.GET("/bills/:id", func(c *gin.Context) {
		bill, err := svc.GetBill(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, bill)
	})

	r.PUT("/bills/:id", func(c *gin.Context) {
		var req validation.BillRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		bill, err := svc.UpdateBill(c.Request.Context(), c.Param("id"), billFromRequest(&req))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, bill)
	})

	r.DELETE("/bills/:id", func(c *gin.Context) {
		if err := svc.DeleteBill(c.Request.Context(), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
}

func billFromRequest(req *validation.BillRequest) *models.Bill {
	return &models.Bill{
		OrderID:    req.OrderID,
		IssueDate:  req.IssueDate,
		TotalPrice: req.TotalPrice,
		Paid:       req.Paid,
	}
}
