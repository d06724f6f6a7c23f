package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cekapguard/agency-api/internal/application/service"
	"github.com/cekapguard/agency-api/internal/domain/enum"
	"github.com/cekapguard/agency-api/internal/presentation/http/dto/response"
	"github.com/cekapguard/agency-api/pkg/pagination"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List handles listing customers
func (h *CustomerHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	search := c.Query("search")

	params := &pagination.PaginationParams{Page: page, PerPage: perPage}

	result, err := h.customerService.ListCustomers(c.Request.Context(), params, search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Customers retrieved successfully", result)
}

// Get handles retrieving a single customer
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// Update handles updating a customer's mutable fields
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	var req struct {
		Name          *string              `json:"name"`
		Phone         *string              `json:"phone"`
		IC            *string              `json:"ic"`
		Email         *string              `json:"email"`
		AssetRegNo    *string              `json:"asset_reg_no"`
		PolicyType    *enum.PolicyType     `json:"policy_type"`
		OthersDefault *enum.OthersCategory `json:"others_default"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if req.IC != nil {
		formatted := service.FormatIC(*req.IC)
		req.IC = &formatted
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), &service.UpdateCustomerInput{
		ID:            id,
		Name:          req.Name,
		Phone:         req.Phone,
		IC:            req.IC,
		Email:         req.Email,
		AssetRegNo:    req.AssetRegNo,
		PolicyType:    req.PolicyType,
		OthersDefault: req.OthersDefault,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated successfully", customer)
}

// CheckDuplicate runs the advisory duplicate probe used while the
// operator is still typing a draft. A match is a warning, never an
// error.
func (h *CustomerHandler) CheckDuplicate(c *gin.Context) {
	var req struct {
		CustomerID *uuid.UUID `json:"customer_id"`
		Name       string     `json:"name"`
		IC         string     `json:"ic"`
		IsCompany  bool       `json:"is_company"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	candidate := &service.CustomerCandidate{
		CustomerID: req.CustomerID,
		Name:       req.Name,
		IC:         service.FormatIC(req.IC),
		IsCompany:  req.IsCompany,
	}

	match, err := h.customerService.FindDuplicate(c.Request.Context(), candidate)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Duplicate check completed", gin.H{
		"duplicate": match != nil,
		"match":     match,
	})
}
