package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cekapguard/agency-api/internal/application/service"
	"github.com/cekapguard/agency-api/internal/domain/enum"
	"github.com/cekapguard/agency-api/internal/presentation/http/dto/response"
	"github.com/cekapguard/agency-api/pkg/pagination"
)

// DocumentHandler handles invoice and receipt HTTP requests
type DocumentHandler struct {
	documentService *service.DocumentService
	exportService   *service.ExportService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService *service.DocumentService, exportService *service.ExportService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		exportService:   exportService,
	}
}

type othersEntryRequest struct {
	Category enum.OthersCategory `json:"category" binding:"required"`
	Amount   float64             `json:"amount"`
}

type customerCandidateRequest struct {
	CustomerID    *uuid.UUID           `json:"customer_id"`
	Name          string               `json:"name" binding:"required"`
	Phone         string               `json:"phone"`
	IC            string               `json:"ic"`
	Email         *string              `json:"email"`
	IsCompany     bool                 `json:"is_company"`
	AssetRegNo    string               `json:"asset_reg_no"`
	PolicyType    enum.PolicyType      `json:"policy_type"`
	OthersDefault *enum.OthersCategory `json:"others_default"`
}

// Create handles finalizing a draft into an issued document
func (h *DocumentHandler) Create(c *gin.Context) {
	var req struct {
		Type           enum.DocType             `json:"type" binding:"required"`
		Customer       customerCandidateRequest `json:"customer" binding:"required"`
		Date           string                   `json:"date"`
		AssetType      enum.AssetType           `json:"asset_type" binding:"required"`
		Amount         float64                  `json:"amount"`
		OthersCategory *enum.OthersCategory     `json:"others_category"`
		OthersEntries  []othersEntryRequest     `json:"others_entries"`
		ServiceCharge  float64                  `json:"service_charge"`
		IssuedCompany  string                   `json:"issued_company"`
		Details        string                   `json:"details"`
		Remarks        string                   `json:"remarks"`
		AttachmentURL  *string                  `json:"attachment_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	ic := service.FormatIC(req.Customer.IC)

	var entries []service.OthersEntryInput
	for _, e := range req.OthersEntries {
		entries = append(entries, service.OthersEntryInput{Category: e.Category, Amount: e.Amount})
	}

	input := &service.CreateDocumentInput{
		Customer: service.CustomerCandidate{
			CustomerID:    req.Customer.CustomerID,
			Name:          req.Customer.Name,
			Phone:         req.Customer.Phone,
			IC:            ic,
			Email:         req.Customer.Email,
			IsCompany:     req.Customer.IsCompany,
			AssetType:     req.AssetType,
			AssetRegNo:    req.Customer.AssetRegNo,
			PolicyType:    req.Customer.PolicyType,
			OthersDefault: req.Customer.OthersDefault,
		},
		Draft: service.AssembleDocumentInput{
			Type:           req.Type,
			CustomerName:   req.Customer.Name,
			CustomerIC:     ic,
			IssuedCompany:  req.IssuedCompany,
			Date:           date,
			AssetType:      req.AssetType,
			BaseAmount:     req.Amount,
			OthersCategory: req.OthersCategory,
			OthersEntries:  entries,
			ServiceCharge:  req.ServiceCharge,
			Details:        req.Details,
			Remarks:        req.Remarks,
			AttachmentURL:  req.AttachmentURL,
			Staff:          GetStaffContext(c),
		},
	}

	doc, err := h.documentService.CreateDocument(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, fmt.Sprintf("%s %s created", doc.Type, doc.DocNumber), doc)
}

// List handles listing documents with filters
func (h *DocumentHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	input := &service.ListDocumentsInput{
		Pagination: &pagination.PaginationParams{Page: page, PerPage: perPage},
		Search:     c.Query("search"),
	}

	if typeStr := c.Query("type"); typeStr != "" {
		docType := enum.DocType(typeStr)
		if !docType.Valid() {
			response.BadRequest(c, "Invalid document type filter")
			return
		}
		input.Type = &docType
	}

	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		if customerID, err := uuid.Parse(customerIDStr); err == nil {
			input.CustomerID = &customerID
		}
	}

	result, err := h.documentService.ListDocuments(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Documents retrieved successfully", result)
}

// Get handles retrieving a single document
func (h *DocumentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid document ID")
		return
	}

	doc, err := h.documentService.GetDocument(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Document retrieved successfully", doc)
}

// Pay handles marking an invoice paid and issuing its linked receipt
func (h *DocumentHandler) Pay(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid document ID")
		return
	}

	invoice, receipt, err := h.documentService.MarkPaid(c.Request.Context(), id, GetStaffContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, fmt.Sprintf("Invoice %s marked paid", invoice.DocNumber), gin.H{
		"invoice": invoice,
		"receipt": receipt,
	})
}

// Export streams the full document register as CSV
func (h *DocumentHandler) Export(c *gin.Context) {
	filename := fmt.Sprintf("documents-%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := h.exportService.WriteCSV(c.Request.Context(), c.Writer); err != nil {
		response.Error(c, err)
		return
	}
}

// Reconcile lists invoices whose payment writes drifted apart
func (h *DocumentHandler) Reconcile(c *gin.Context) {
	drift, err := h.documentService.ReconcilePayments(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment reconciliation completed", gin.H{
		"drifted": len(drift),
		"items":   drift,
	})
}
