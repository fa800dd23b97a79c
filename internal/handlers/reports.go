package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ovofarm/backoffice/internal/service"
)

// ReportServices groups the services the reporting routes read from.
type ReportServices struct {
	Orders   *service.OrderService
	Billing  *service.BillingService
	Payments *service.PaymentService
	Stats    *service.StatsService
}

// RegisterReportRoutes registers the read-only reporting routes:
// month filters, role-split bill views, income aggregates and the
// statistics snapshot.
func RegisterReportRoutes(r gin.IRouter, svcs ReportServices) {
	r.GET("/reports/orders/month", func(c *gin.Context) {
		orders, err := svcs.Orders.OrdersInCurrentMonth(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	})

	r.GET("/reports/orders/month/count", func(c *gin.Context) {
		count, err := svcs.Orders.CountOrdersInCurrentMonth(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": count})
	})

	r.GET("/reports/orders/count/:userId", func(c *gin.Context) {
		count, err := svcs.Orders.CountOrdersByCustomer(c.Request.Context(), c.Param("userId"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": count})
	})

	r.GET("/reports/bills/customer/:userId", func(c *gin.Context) {
		views, err := svcs.Billing.BillsForCustomer(c.Request.Context(), c.Param("userId"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"bills": views})
	})

	r.GET("/reports/bills/customers", func(c *gin.Context) {
		views, err := svcs.Billing.CustomerBills(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"bills": views})
	})

	r.GET("/reports/bills/company", func(c *gin.Context) {
		views, err := svcs.Billing.CompanyBills(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"bills": views})
	})

	r.GET("/reports/bills/month/count", func(c *gin.Context) {
		count, err := svcs.Billing.CountCustomerBillsInCurrentMonth(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": count})
	})

	r.GET("/reports/sales/month", func(c *gin.Context) {
		total, err := svcs.Billing.MonthlySalesTotal(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"total": total})
	})

	r.GET("/reports/sales/best-customer", func(c *gin.Context) {
		name, err := svcs.Billing.BestCustomerOfMonth(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"best_customer": name})
	})

	r.GET("/reports/income", func(c *gin.Context) {
		total, err := svcs.Payments.TotalIncome(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"total": total})
	})

	r.GET("/reports/income/month", func(c *gin.Context) {
		total, err := svcs.Payments.TotalIncomeCurrentMonth(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"total": total})
	})

	r.GET("/reports/general", func(c *gin.Context) {
		snap, err := svcs.Stats.GeneralStatistics(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, snap)
	})
}
