package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rizalf/pos-billing-backend/internal/billing/domain"
	"github.com/rizalf/pos-billing-backend/internal/billing/repository"
	"github.com/rizalf/pos-billing-backend/internal/billing/service"
	"github.com/rizalf/pos-billing-backend/internal/platform/logger"
)

type BillingHandler struct {
	billingService service.BillingService
}

func NewBillingHandler(bs service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: bs}
}

func (h *BillingHandler) RegisterRoutes(router *gin.RouterGroup) {
	billRoutes := router.Group("/bills")
	{
		billRoutes.POST("", h.CreateBill)
		billRoutes.GET("", h.ListBills)
		billRoutes.GET("/:id", h.GetBill)
		billRoutes.PUT("/:id", h.UpdateBill)
		billRoutes.DELETE("/:id", h.DeleteBill)
	}
}

func parseBillID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bill id"})
		return 0, false
	}
	return id, true
}

// writeBillError maps the billing error taxonomy onto HTTP statuses. Domain
// failures are request-scoped; anything else is treated as a storage fault.
func writeBillError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrInvalidBillRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrCustomerNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, repository.ErrBillNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Error("Billing Hdl: unhandled service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func (h *BillingHandler) CreateBill(c *gin.Context) {
	var req domain.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("CreateBill Hdl: bad request", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	bill, err := h.billingService.CreateBill(c.Request.Context(), req)
	if err != nil {
		writeBillError(c, err, "Failed to create bill")
		return
	}
	c.JSON(http.StatusCreated, bill)
}

func (h *BillingHandler) ListBills(c *gin.Context) {
	bills, err := h.billingService.ListBills(c.Request.Context())
	if err != nil {
		logger.Error("ListBills Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bills"})
		return
	}
	c.JSON(http.StatusOK, bills)
}

func (h *BillingHandler) GetBill(c *gin.Context) {
	id, ok := parseBillID(c)
	if !ok {
		return
	}

	view, err := h.billingService.GetBill(c.Request.Context(), id)
	if err != nil {
		writeBillError(c, err, "Failed to get bill")
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *BillingHandler) UpdateBill(c *gin.Context) {
	id, ok := parseBillID(c)
	if !ok {
		return
	}

	var req domain.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("UpdateBill Hdl: bad request", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	bill, err := h.billingService.UpdateBill(c.Request.Context(), id, req)
	if err != nil {
		writeBillError(c, err, "Failed to update bill")
		return
	}
	c.JSON(http.StatusOK, bill)
}

func (h *BillingHandler) DeleteBill(c *gin.Context) {
	id, ok := parseBillID(c)
	if !ok {
		return
	}

	if err := h.billingService.DeleteBill(c.Request.Context(), id); err != nil {
		writeBillError(c, err, "Failed to delete bill")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bill deleted successfully"})
}
