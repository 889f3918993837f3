// File: test/internal/apitest/server.go

// Package apitest 提供一个内存版的商城 API 假服务，
// 接口形状与真实服务端一致：snake_case JSON、金额十进制串、Cookie 会话。
package apitest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/ericlagergren/decimal"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type user struct {
	Name     string
	Email    string
	Password string
}

type product struct {
	ID            uuid.UUID
	Name          string
	Description   string
	Price         string
	StockQuantity int32
	CategoryID    uuid.UUID
	Category      string
	Seller        string
	ImageURL      string
}

type category struct {
	ID   uuid.UUID
	Name string
}

// Server 假商城服务端
type Server struct {
	mu         sync.Mutex
	users      map[string]user            // email -> user
	sessions   map[string]string          // token -> email
	categories []category
	products   []product
	carts      map[string]map[uuid.UUID]int32 // email -> productID -> quantity

	httpServer *httptest.Server
}

// NewServer 启动假服务
func NewServer() *Server {
	s := &Server{
		users:    make(map[string]user),
		sessions: make(map[string]string),
		carts:    make(map[string]map[uuid.UUID]int32),
	}

	e := echo.New()
	e.HideBanner = true

	v1 := e.Group("/api/v1")
	v1.POST("/users", s.createUser)
	v1.POST("/users/login", s.login)
	v1.POST("/users/logout", s.logout)
	v1.GET("/users/me", s.me)
	v1.GET("/users/products", s.listMyProducts)
	v1.POST("/users/products", s.createProduct)
	v1.PUT("/users/products/:id", s.updateProduct)
	v1.GET("/products", s.listProducts)
	v1.GET("/products/categories", s.listCategories)
	v1.GET("/products/:id", s.getProduct)
	v1.GET("/cart-products", s.getCart)
	v1.GET("/cart-products/count", s.cartCount)
	v1.POST("/cart-products", s.addCartProduct)
	v1.PUT("/cart-products/:product_id", s.updateCartProduct)
	v1.DELETE("/cart-products/:product_id", s.deleteCartProduct)

	s.httpServer = httptest.NewServer(e)
	return s
}

// URL 服务基础地址
func (s *Server) URL() string {
	return s.httpServer.URL
}

// Close 关闭服务
func (s *Server) Close() {
	s.httpServer.Close()
}

// ExpireSessions 作废全部会话，模拟服务端 Cookie 失效
func (s *Server) ExpireSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[string]string)
}

// SeedCategory 预置类目
func (s *Server) SeedCategory(name string) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := category{ID: uuid.New(), Name: name}
	s.categories = append(s.categories, c)
	return c.ID
}

// SeedProduct 预置商品
func (s *Server) SeedProduct(name, price string, stock int32, categoryID uuid.UUID, seller string) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	categoryName := ""
	for _, c := range s.categories {
		if c.ID == categoryID {
			categoryName = c.Name
		}
	}
	p := product{
		ID:            uuid.New(),
		Name:          name,
		Price:         price,
		StockQuantity: stock,
		CategoryID:    categoryID,
		Category:      categoryName,
		Seller:        seller,
	}
	s.products = append(s.products, p)
	return p.ID
}

// 认证

func (s *Server) currentUser(c echo.Context) (user, bool) {
	cookie, err := c.Cookie("session")
	if err != nil {
		return user{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	email, ok := s.sessions[cookie.Value]
	if !ok {
		return user{}, false
	}
	u, ok := s.users[email]
	return u, ok
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
}

// 用户

func (s *Server) createUser(c echo.Context) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[req.Email]; exists {
		// 真实服务端对重复邮箱返回 403
		return c.JSON(http.StatusForbidden, echo.Map{"error": "email already exists"})
	}
	s.users[req.Email] = user{Name: req.Name, Email: req.Email, Password: req.Password}
	return c.JSON(http.StatusOK, echo.Map{"message": "User created successfully"})
}

func (s *Server) login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	s.mu.Lock()
	u, ok := s.users[req.Email]
	if !ok || u.Password != req.Password {
		s.mu.Unlock()
		return unauthorized(c)
	}
	token := uuid.NewString()
	s.sessions[token] = u.Email
	s.mu.Unlock()

	c.SetCookie(&http.Cookie{Name: "session", Value: token, Path: "/"})
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged in successfully"})
}

func (s *Server) logout(c echo.Context) error {
	if cookie, err := c.Cookie("session"); err == nil {
		s.mu.Lock()
		delete(s.sessions, cookie.Value)
		s.mu.Unlock()
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out successfully"})
}

func (s *Server) me(c echo.Context) error {
	u, ok := s.currentUser(c)
	if !ok {
		return unauthorized(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"name": u.Name, "email": u.Email})
}

// 商品

func productJSON(p product) echo.Map {
	out := echo.Map{
		"id":             p.ID,
		"name":           p.Name,
		"price":          p.Price,
		"stock_quantity": p.StockQuantity,
		"category_id":    p.CategoryID,
		"category":       p.Category,
		"seller":         p.Seller,
	}
	if p.Description != "" {
		out["description"] = p.Description
	}
	if p.ImageURL != "" {
		out["image_url"] = p.ImageURL
	}
	return out
}

func listMeta(pageID, pageSize int32, total int) echo.Map {
	pageCount := (total + int(pageSize) - 1) / int(pageSize)
	return echo.Map{
		"page_id":     pageID,
		"page_size":   pageSize,
		"page_count":  pageCount,
		"total_count": total,
	}
}

func queryInt32(c echo.Context, name string, def int32) int32 {
	if raw := c.QueryParam(name); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return int32(v)
		}
	}
	return def
}

func (s *Server) listProducts(c echo.Context) error {
	pageID := queryInt32(c, "page_id", 1)
	pageSize := queryInt32(c, "page_size", 20)
	categoryFilter := c.QueryParam("category_id")

	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []product
	for _, p := range s.products {
		if categoryFilter != "" && p.CategoryID.String() != categoryFilter {
			continue
		}
		matched = append(matched, p)
	}

	start := int(pageID-1) * int(pageSize)
	end := start + int(pageSize)
	if start > len(matched) {
		start = len(matched)
	}
	if end > len(matched) {
		end = len(matched)
	}

	data := make([]echo.Map, 0, end-start)
	for _, p := range matched[start:end] {
		data = append(data, productJSON(p))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"meta": listMeta(pageID, pageSize, len(matched)),
		"data": data,
	})
}

func (s *Server) getProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			return c.JSON(http.StatusOK, productJSON(p))
		}
	}
	return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
}

func (s *Server) listCategories(c echo.Context) error {
	pageID := queryInt32(c, "page_id", 1)
	pageSize := queryInt32(c, "page_size", 20)

	s.mu.Lock()
	defer s.mu.Unlock()

	data := make([]echo.Map, 0, len(s.categories))
	for _, cat := range s.categories {
		data = append(data, echo.Map{"id": cat.ID, "name": cat.Name})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"meta": listMeta(pageID, pageSize, len(data)),
		"data": data,
	})
}

func (s *Server) listMyProducts(c echo.Context) error {
	u, ok := s.currentUser(c)
	if !ok {
		return unauthorized(c)
	}
	pageID := queryInt32(c, "page_id", 1)
	pageSize := queryInt32(c, "page_size", 20)

	s.mu.Lock()
	defer s.mu.Unlock()

	data := make([]echo.Map, 0)
	for _, p := range s.products {
		if p.Seller == u.Name {
			data = append(data, productJSON(p))
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"meta": listMeta(pageID, pageSize, len(data)),
		"data": data,
	})
}

type saveProductRequest struct {
	Name          string  `json:"name"`
	Description   *string `json:"description"`
	Price         string  `json:"price"`
	StockQuantity int32   `json:"stock_quantity"`
	CategoryID    string  `json:"category_id"`
	ImageURL      *string `json:"image_url"`
}

func (s *Server) createProduct(c echo.Context) error {
	u, ok := s.currentUser(c)
	if !ok {
		return unauthorized(c)
	}
	var req saveProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category_id"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	categoryName := ""
	for _, cat := range s.categories {
		if cat.ID == categoryID {
			categoryName = cat.Name
		}
	}
	p := product{
		ID:            uuid.New(),
		Name:          req.Name,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		CategoryID:    categoryID,
		Category:      categoryName,
		Seller:        u.Name,
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}
	s.products = append(s.products, p)
	return c.JSON(http.StatusOK, echo.Map{"message": "Product created successfully"})
}

func (s *Server) updateProduct(c echo.Context) error {
	u, ok := s.currentUser(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req saveProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID != id {
			continue
		}
		if s.products[i].Seller != u.Name {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your product"})
		}
		s.products[i].Name = req.Name
		s.products[i].Price = req.Price
		s.products[i].StockQuantity = req.StockQuantity
		if req.Description != nil {
			s.products[i].Description = *req.Description
		}
		if req.ImageURL != nil {
			s.products[i].ImageURL = *req.ImageURL
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "Product updated successfully"})
	}
	return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
}

// 购物车

func (s *Server) cartOf(email string) map[uuid.UUID]int32 {
	cart, ok := s.carts[email]
	if !ok {
		cart = make(map[uuid.UUID]int32)
		s.carts[email] = cart
	}
	return cart
}

func (s *Server) addCartProduct(c echo.Context) error {
	u, ok := s.currentUser(c)
	if !ok {
		return unauthorized(c)
	}
	var req struct {
		ProductID uuid.UUID `json:"product_id"`
		Quantity  int32     `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == req.ProductID {
			s.cartOf(u.Email)[req.ProductID] += req.Quantity
			return c.JSON(http.StatusOK, echo.Map{"message": "Product added to cart"})
		}
	}
	return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
}

func (s *Server) updateCartProduct(c echo.Context) error {
	u, ok := s.currentUser(c)
	if !ok {
		return unauthorized(c)
	}
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product_id"})
	}
	var req struct {
		Quantity int32 `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.cartOf(u.Email)
	if _, ok := cart[productID]; !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "cart product not found"})
	}
	cart[productID] = req.Quantity
	return c.JSON(http.StatusOK, echo.Map{"message": "Cart updated"})
}

func (s *Server) deleteCartProduct(c echo.Context) error {
	u, ok := s.currentUser(c)
	if !ok {
		return unauthorized(c)
	}
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product_id"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cartOf(u.Email), productID)
	return c.JSON(http.StatusOK, echo.Map{"message": "Product removed from cart"})
}

func (s *Server) cartCount(c echo.Context) error {
	u, ok := s.currentUser(c)
	if !ok {
		return unauthorized(c)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var count int32
	for _, qty := range s.cartOf(u.Email) {
		count += qty
	}
	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

// getCart 汇总购物车。金额用十进制精确计算后按两位小数输出，
// 运费固定 5.00，税按小计的 10% 计。
func (s *Server) getCart(c echo.Context) error {
	u, ok := s.currentUser(c)
	if !ok {
		return unauthorized(c)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	subtotal := new(decimal.Big)
	items := make([]echo.Map, 0)
	for productID, qty := range s.cartOf(u.Email) {
		for _, p := range s.products {
			if p.ID != productID {
				continue
			}
			price, pok := new(decimal.Big).SetString(p.Price)
			if !pok {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": fmt.Sprintf("bad price for %s", p.Name)})
			}
			lineTotal := new(decimal.Big).Mul(price, decimal.New(int64(qty), 0))
			subtotal.Add(subtotal, lineTotal)

			items = append(items, echo.Map{
				"id":       p.ID,
				"name":     p.Name,
				"price":    moneyText(price),
				"quantity": qty,
				"subtotal": moneyText(lineTotal),
			})
		}
	}

	shipping, _ := new(decimal.Big).SetString("5.00")
	if len(items) == 0 {
		shipping = new(decimal.Big)
	}
	taxRate, _ := new(decimal.Big).SetString("0.1")
	tax := new(decimal.Big).Mul(subtotal, taxRate)
	total := new(decimal.Big).Add(subtotal, shipping)
	total.Add(total, tax)

	return c.JSON(http.StatusOK, echo.Map{
		"products": items,
		"subtotal": moneyText(subtotal),
		"shipping": moneyText(shipping),
		"tax":      moneyText(tax),
		"total":    moneyText(total),
	})
}

func moneyText(v *decimal.Big) string {
	out := new(decimal.Big).Copy(v)
	out.Context.RoundingMode = decimal.ToNearestAway
	out.Quantize(2)
	return out.String()
}
