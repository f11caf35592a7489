// Package fakebao is an in-memory stand-in for the BAO REST backend. It answers with the
// same JSON shapes and detail messages as the real server and counts every request.
package fakebao

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/fekuna/bao-console/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type account struct {
	id       int64
	email    string
	password string
	role     model.Role
	entityID int64
	first    string
	last     string
}

type failure struct {
	status int
	detail string
}

type Server struct {
	*httptest.Server

	mu        sync.Mutex
	seq       map[string]int64
	accounts  map[string]*account
	sessions  map[string]model.User
	students  map[int64]model.Student
	products  map[int64]model.Product
	orders    map[int64]model.Order
	uniforms  map[int64]model.UniformVariant
	counts    map[string]int
	total     int
	failNext  map[string]failure
	lastBody  map[string][]byte
	clockFunc func() time.Time
}

func New() *Server {
	gin.SetMode(gin.TestMode)
	s := &Server{
		seq:       map[string]int64{},
		accounts:  map[string]*account{},
		sessions:  map[string]model.User{},
		students:  map[int64]model.Student{},
		products:  map[int64]model.Product{},
		orders:    map[int64]model.Order{},
		uniforms:  map[int64]model.UniformVariant{},
		counts:    map[string]int{},
		failNext:  map[string]failure{},
		lastBody:  map[string][]byte{},
		clockFunc: time.Now,
	}
	s.Server = httptest.NewServer(s.router())
	return s
}

func (s *Server) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.countRequests())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to IMS-BAO API"})
	})

	r.POST("/auth/register", s.register)
	r.POST("/auth/login", s.login)
	r.POST("/auth/logout", s.logout)
	r.GET("/auth/me", s.requireSession, s.me)

	r.GET("/students", s.requireSession, s.requireAdmin, s.listStudents)
	r.GET("/students/:id", s.requireSession, s.getStudent)
	r.POST("/students", s.createStudent)
	r.PUT("/students/:id", s.requireSession, s.updateStudent)
	r.DELETE("/students/:id", s.requireSession, s.requireAdmin, s.deleteStudent)

	r.GET("/products", s.requireSession, s.listProducts)
	r.GET("/products/:id", s.getProduct)
	r.POST("/products", s.requireSession, s.requireAdmin, s.createProduct)
	r.PUT("/products/:id", s.requireSession, s.requireAdmin, s.updateProduct)
	r.DELETE("/products/:id", s.requireSession, s.requireAdmin, s.deleteProduct)
	r.POST("/upload-image", s.requireSession, s.uploadImage)

	r.GET("/orders", s.listOrders)
	r.GET("/orders/:id", s.getOrder)
	r.POST("/orders", s.createOrder)
	r.PUT("/orders/:id", s.updateOrder)
	r.DELETE("/orders/:id", s.deleteOrder)

	r.GET("/uniforms", s.listUniforms)
	r.GET("/uniforms/:id", s.listUniformsByProduct)
	r.POST("/uniforms", s.requireSession, s.requireAdmin, s.createUniform)
	r.DELETE("/uniforms/:id", s.requireSession, s.requireAdmin, s.deleteUniform)
	return r
}

func (s *Server) countRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Request.Method + " " + c.FullPath()
		s.mu.Lock()
		s.counts[key]++
		s.total++
		f, fail := s.failNext[key]
		if fail {
			delete(s.failNext, key)
		}
		s.mu.Unlock()
		if fail {
			c.AbortWithStatusJSON(f.status, gin.H{"detail": f.detail})
			return
		}
		c.Next()
	}
}

// Requests is the number of requests received so far.
func (s *Server) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// Count returns hits for a route template such as "POST /orders" or "DELETE /products/:id".
func (s *Server) Count(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[route]
}

// FailNext makes the next request to route answer status with detail.
func (s *Server) FailNext(route string, status int, detail string) {
	s.mu.Lock()
	s.failNext[route] = failure{status: status, detail: detail}
	s.mu.Unlock()
}

// SetClock fixes the time used for createdAt stamps.
func (s *Server) SetClock(fn func() time.Time) {
	s.mu.Lock()
	s.clockFunc = fn
	s.mu.Unlock()
}

func (s *Server) next(kind string) int64 {
	s.seq[kind]++
	return s.seq[kind]
}

func hashPassword(pw string) string {
	sum := sha256.Sum256([]byte(pw))
	return hex.EncodeToString(sum[:])
}

// AddAccount seeds a login. Students get a linked student record.
func (s *Server) AddAccount(email, password string, role model.Role, first, last string) model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc := &account{
		id:       s.next("user"),
		email:    email,
		password: hashPassword(password),
		role:     role,
		first:    first,
		last:     last,
	}
	if role == model.RoleStudent {
		uid := acc.id
		st := model.Student{ID: s.next("student"), FirstName: first, LastName: last, College: "CCS", Program: "BSIT", UserID: &uid}
		s.students[st.ID] = st
		acc.entityID = st.ID
	} else {
		acc.entityID = s.next("admin")
	}
	s.accounts[email] = acc
	return s.userFor(acc)
}

// Session creates a live session for a seeded account and returns its id.
func (s *Server) Session(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[email]
	if !ok {
		panic("fakebao: unknown account " + email)
	}
	return s.openSession(acc)
}

func (s *Server) openSession(acc *account) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s%d%d", acc.email, s.clockFunc().UnixNano(), len(s.sessions))))
	sid := hex.EncodeToString(sum[:])
	s.sessions[sid] = s.userFor(acc)
	return sid
}

func (s *Server) userFor(acc *account) model.User {
	eid := acc.entityID
	u := model.User{UserID: acc.id, Email: acc.email, Role: acc.role, EntityID: &eid}
	data := &model.EntityData{FirstName: acc.first, LastName: acc.last}
	if st, ok := s.students[acc.entityID]; ok && acc.role == model.RoleStudent {
		data.College = st.College
		data.Program = st.Program
	}
	u.EntityData = data
	return u
}

func (s *Server) AddStudent(st model.Student) model.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	st.ID = s.next("student")
	s.students[st.ID] = st
	return st
}

// AddProduct seeds a product. StoredStatus is kept as given so drift can be simulated.
func (s *Server) AddProduct(p model.Product) model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.next("product")
	if p.StoredStatus == "" {
		p.StoredStatus = string(model.DeriveStatus(p.Quantity))
	}
	s.products[p.ID] = p
	return p
}

func (s *Server) AddOrder(o model.Order) model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	o.ID = s.next("order")
	if o.CreatedAt == nil {
		ts := model.NewTimestamp(s.clockFunc())
		o.CreatedAt = &ts
	}
	o.Product = nil
	s.orders[o.ID] = o
	return s.withProduct(o)
}

func (s *Server) AddUniform(v model.UniformVariant) model.UniformVariant {
	s.mu.Lock()
	defer s.mu.Unlock()
	v.ID = s.next("uniform")
	v.Product = nil
	s.uniforms[v.ID] = v
	return v
}

// Products returns the stored products ordered by id.
func (s *Server) Products() []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedProducts()
}

func (s *Server) Product(id int64) (model.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	return p, ok
}

func (s *Server) Orders() []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedOrders()
}

func (s *Server) Uniforms() []model.UniformVariant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedUniforms()
}

func (s *Server) Students() []model.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Student, 0, len(s.students))
	for _, st := range s.students {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LastBody is the raw JSON of the latest request to route.
func (s *Server) LastBody(route string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastBody[route]
}

func (s *Server) sortedProducts() []model.Product {
	out := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Server) sortedOrders() []model.Order {
	out := make([]model.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, s.withProduct(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Server) sortedUniforms() []model.UniformVariant {
	out := make([]model.UniformVariant, 0, len(s.uniforms))
	for _, v := range s.uniforms {
		if p, ok := s.products[v.ProductID]; ok {
			pc := p
			v.Product = &pc
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Server) withProduct(o model.Order) model.Order {
	if p, ok := s.products[o.ProductID]; ok {
		pc := p
		o.Product = &pc
	} else {
		o.Product = nil
	}
	return o
}

func detail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": msg})
}

type fieldIssue struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func missing(c *gin.Context, fields ...string) {
	issues := make([]fieldIssue, len(fields))
	for i, f := range fields {
		issues[i] = fieldIssue{Loc: []string{"body", f}, Msg: "field required", Type: "value_error.missing"}
	}
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": issues})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": []fieldIssue{{
			Loc: []string{"path", "id"}, Msg: "value is not a valid integer", Type: "type_error.integer",
		}}})
		return 0, false
	}
	return id, true
}

func (s *Server) bind(c *gin.Context, dst interface{}) bool {
	raw, err := c.GetRawData()
	if err != nil {
		detail(c, http.StatusBadRequest, "unreadable body")
		return false
	}
	s.mu.Lock()
	s.lastBody[c.Request.Method+" "+c.FullPath()] = raw
	s.mu.Unlock()
	if err := jsonUnmarshal(raw, dst); err != nil {
		detail(c, http.StatusUnprocessableEntity, "invalid JSON body")
		return false
	}
	return true
}

func (s *Server) uploadImage(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		missing(c, "file")
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": "/uploads/" + filepath.Base(fh.Filename)})
}

func decimalPtr(d *float64) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := decimal.NewFromFloat(*d)
	return &v
}
