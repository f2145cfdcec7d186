package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"tradefair/src/app/http/dto"
	"tradefair/src/app/http/response"
	"tradefair/src/app/middleware"
	"tradefair/src/core/domain"
	"tradefair/src/core/ports"
	"tradefair/src/core/usecase"
)

// ProductHandler handles the catalog endpoints.
type ProductHandler struct {
	productService *usecase.ProductService
}

func NewProductHandler(productService *usecase.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func (h *ProductHandler) Create(c *gin.Context) {
	shedID, ok := parseParamID(c, "shed_id", "shed id")
	if !ok {
		return
	}
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", middleware.GetRequestID(c))
		return
	}
	product, err := h.productService.Create(c.Request.Context(), middleware.GetActor(c), shedID, productInput(req))
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.Created(c, productBody(product))
}

func (h *ProductHandler) Update(c *gin.Context) {
	productID, ok := parseParamID(c, "product_id", "product id")
	if !ok {
		return
	}
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", middleware.GetRequestID(c))
		return
	}
	product, err := h.productService.Update(c.Request.Context(), middleware.GetActor(c), productID, productInput(req))
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, productBody(product))
}

func (h *ProductHandler) Delete(c *gin.Context) {
	productID, ok := parseParamID(c, "product_id", "product id")
	if !ok {
		return
	}
	if err := h.productService.Delete(c.Request.Context(), middleware.GetActor(c), productID); err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.NoContent(c)
}

func (h *ProductHandler) Get(c *gin.Context) {
	productID, ok := parseParamID(c, "product_id", "product id")
	if !ok {
		return
	}
	product, err := h.productService.Get(c.Request.Context(), productID)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, productBody(product))
}

func (h *ProductHandler) List(c *gin.Context) {
	filter, ok := parseProductFilter(c)
	if !ok {
		return
	}
	products, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	out := make([]gin.H, 0, len(products))
	for i := range products {
		out = append(out, productBody(&products[i]))
	}
	response.OK(c, gin.H{"products": out})
}

func parseProductFilter(c *gin.Context) (ports.ProductFilter, bool) {
	var filter ports.ProductFilter
	if v := c.Query("shed_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.BadRequest(c, "invalid shed_id", middleware.GetRequestID(c))
			return filter, false
		}
		filter.ShedID = &id
	}
	if v := c.Query("min_price"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			response.BadRequest(c, "invalid min_price", middleware.GetRequestID(c))
			return filter, false
		}
		filter.MinPrice = &p
	}
	if v := c.Query("max_price"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			response.BadRequest(c, "invalid max_price", middleware.GetRequestID(c))
			return filter, false
		}
		filter.MaxPrice = &p
	}
	filter.Search = c.Query("search")
	return filter, true
}

func productInput(req dto.ProductRequest) usecase.ProductInput {
	return usecase.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		ImageURL:    req.ImageURL,
	}
}

func productBody(p *domain.Product) gin.H {
	body := gin.H{
		"product_id":  p.ID,
		"shed_id":     p.ShedID,
		"vendor_id":   p.VendorID,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"quantity":    p.Quantity,
	}
	if p.ImageURL != nil {
		body["image_url"] = *p.ImageURL
	}
	return body
}
