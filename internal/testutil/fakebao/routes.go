package fakebao

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/fekuna/bao-console/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

var jsonUnmarshal = json.Unmarshal

const userKey = "fakebao.user"

func (s *Server) requireSession(c *gin.Context) {
	sid, err := c.Cookie("session_id")
	if err != nil || sid == "" {
		sid = c.GetHeader("X-Session-Id")
	}
	s.mu.Lock()
	u, ok := s.sessions[sid]
	s.mu.Unlock()
	if sid == "" || !ok {
		detail(c, http.StatusUnauthorized, "Not authenticated")
		return
	}
	c.Set(userKey, u)
	c.Next()
}

func (s *Server) requireAdmin(c *gin.Context) {
	if currentUser(c).Role != model.RoleAdmin {
		detail(c, http.StatusForbidden, "Admin access required")
		return
	}
	c.Next()
}

func currentUser(c *gin.Context) model.User {
	u, _ := c.Get(userKey)
	user, _ := u.(model.User)
	return user
}

type registerBody struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Role      string  `json:"role"`
	FirstName string  `json:"firstname"`
	LastName  string  `json:"lastname"`
	College   *string `json:"college"`
	Program   *string `json:"program"`
}

func (s *Server) register(c *gin.Context) {
	var body registerBody
	if !s.bind(c, &body) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[body.Email]; exists {
		detail(c, http.StatusBadRequest, "Email already registered")
		return
	}
	role := model.Role(body.Role)
	if !role.Valid() {
		detail(c, http.StatusBadRequest, "Role must be 'admin' or 'student'")
		return
	}
	if role == model.RoleStudent && (body.College == nil || *body.College == "" || body.Program == nil || *body.Program == "") {
		detail(c, http.StatusBadRequest, "College and program required for students")
		return
	}
	acc := &account{
		id:       s.next("user"),
		email:    body.Email,
		password: hashPassword(body.Password),
		role:     role,
		first:    body.FirstName,
		last:     body.LastName,
	}
	if role == model.RoleStudent {
		uid := acc.id
		st := model.Student{ID: s.next("student"), FirstName: body.FirstName, LastName: body.LastName, College: *body.College, Program: *body.Program, UserID: &uid}
		s.students[st.ID] = st
		acc.entityID = st.ID
	} else {
		acc.entityID = s.next("admin")
	}
	s.accounts[acc.email] = acc
	c.JSON(http.StatusOK, gin.H{
		"message": "Registration successful",
		"user": gin.H{
			"id":        acc.id,
			"email":     acc.email,
			"role":      acc.role,
			"entity_id": acc.entityID,
		},
	})
}

func (s *Server) login(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !s.bind(c, &body) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[body.Email]
	if !ok || acc.password != hashPassword(body.Password) {
		detail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	sid := s.openSession(acc)
	c.JSON(http.StatusOK, gin.H{
		"message":    "Login successful",
		"session_id": sid,
		"user":       s.sessions[sid],
	})
}

// logout reads the cookie only, like the real server.
func (s *Server) logout(c *gin.Context) {
	if sid, err := c.Cookie("session_id"); err == nil {
		s.mu.Lock()
		delete(s.sessions, sid)
		s.mu.Unlock()
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (s *Server) me(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

func (s *Server) listStudents(c *gin.Context) {
	c.JSON(http.StatusOK, s.Students())
}

func (s *Server) getStudent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	u := currentUser(c)
	if u.Role == model.RoleStudent && (u.EntityID == nil || *u.EntityID != id) {
		detail(c, http.StatusForbidden, "Can only view your own profile")
		return
	}
	s.mu.Lock()
	st, found := s.students[id]
	s.mu.Unlock()
	if !found {
		detail(c, http.StatusNotFound, "Student not found")
		return
	}
	c.JSON(http.StatusOK, st)
}

type studentBody struct {
	FirstName *string `json:"firstname"`
	LastName  *string `json:"lastname"`
	College   *string `json:"college"`
	Program   *string `json:"program"`
}

func (s *Server) createStudent(c *gin.Context) {
	var body studentBody
	if !s.bind(c, &body) {
		return
	}
	var absent []string
	for name, v := range map[string]*string{"firstname": body.FirstName, "lastname": body.LastName, "college": body.College, "program": body.Program} {
		if v == nil {
			absent = append(absent, name)
		}
	}
	if len(absent) > 0 {
		missing(c, absent...)
		return
	}
	s.mu.Lock()
	st := model.Student{ID: s.next("student"), FirstName: *body.FirstName, LastName: *body.LastName, College: *body.College, Program: *body.Program}
	s.students[st.ID] = st
	s.mu.Unlock()
	c.JSON(http.StatusOK, st)
}

func (s *Server) updateStudent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	u := currentUser(c)
	if u.Role == model.RoleStudent && (u.EntityID == nil || *u.EntityID != id) {
		detail(c, http.StatusForbidden, "Can only update your own profile")
		return
	}
	var body studentBody
	if !s.bind(c, &body) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st, found := s.students[id]
	if !found {
		detail(c, http.StatusNotFound, "Student not found")
		return
	}
	if body.FirstName != nil {
		st.FirstName = *body.FirstName
	}
	if body.LastName != nil {
		st.LastName = *body.LastName
	}
	if body.College != nil {
		st.College = *body.College
	}
	if body.Program != nil {
		st.Program = *body.Program
	}
	s.students[id] = st
	c.JSON(http.StatusOK, st)
}

func (s *Server) deleteStudent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.students[id]; !found {
		detail(c, http.StatusNotFound, "Student not found")
		return
	}
	delete(s.students, id)
	c.JSON(http.StatusOK, gin.H{"message": "Student deleted successfully"})
}

type productBody struct {
	Name     *string  `json:"productName"`
	Category *string  `json:"productCategory"`
	Price    *float64 `json:"price"`
	Status   *string  `json:"status"`
	Quantity *int     `json:"quantity"`
	Image    *string  `json:"image"`
}

func (s *Server) listProducts(c *gin.Context) {
	c.JSON(http.StatusOK, s.Products())
}

func (s *Server) getProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, found := s.Product(id)
	if !found {
		detail(c, http.StatusNotFound, "Product not found")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) createProduct(c *gin.Context) {
	var body productBody
	if !s.bind(c, &body) {
		return
	}
	var absent []string
	if body.Name == nil {
		absent = append(absent, "productName")
	}
	if body.Category == nil {
		absent = append(absent, "productCategory")
	}
	if body.Price == nil {
		absent = append(absent, "price")
	}
	if body.Status == nil {
		absent = append(absent, "status")
	}
	if body.Quantity == nil {
		absent = append(absent, "quantity")
	}
	if len(absent) > 0 {
		missing(c, absent...)
		return
	}
	s.mu.Lock()
	p := model.Product{
		ID:           s.next("product"),
		Name:         *body.Name,
		Category:     model.Category(*body.Category),
		Price:        *decimalPtr(body.Price),
		StoredStatus: *body.Status,
		Quantity:     *body.Quantity,
		Image:        body.Image,
	}
	s.products[p.ID] = p
	s.mu.Unlock()
	c.JSON(http.StatusOK, p)
}

func (s *Server) updateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var body productBody
	if !s.bind(c, &body) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, found := s.products[id]
	if !found {
		detail(c, http.StatusNotFound, "Product not found")
		return
	}
	if body.Name != nil {
		p.Name = *body.Name
	}
	if body.Category != nil {
		p.Category = model.Category(*body.Category)
	}
	if body.Price != nil {
		p.Price = *decimalPtr(body.Price)
	}
	if body.Status != nil {
		p.StoredStatus = *body.Status
	}
	if body.Quantity != nil {
		p.Quantity = *body.Quantity
	}
	if body.Image != nil {
		p.Image = body.Image
	}
	s.products[id] = p
	c.JSON(http.StatusOK, p)
}

func (s *Server) deleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.products[id]; !found {
		detail(c, http.StatusNotFound, "Product not found")
		return
	}
	delete(s.products, id)
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

func (s *Server) listOrders(c *gin.Context) {
	c.JSON(http.StatusOK, s.Orders())
}

func (s *Server) getOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, found := s.orders[id]
	if !found {
		detail(c, http.StatusNotFound, "Order not found")
		return
	}
	c.JSON(http.StatusOK, s.withProduct(o))
}

// parseISO accepts what datetime.fromisoformat does for the shapes clients send.
func parseISO(v string) (time.Time, bool) {
	for _, layout := range []string{model.WireTimeLayout, "2006-01-02T15:04:05.999999", "2006-01-02", time.RFC3339} {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (s *Server) createOrder(c *gin.Context) {
	var body struct {
		ProductID   *int64   `json:"productId"`
		DateToClaim *string  `json:"dateToClaim"`
		Status      *string  `json:"status"`
		Amount      *float64 `json:"amount"`
	}
	if !s.bind(c, &body) {
		return
	}
	var absent []string
	if body.ProductID == nil {
		absent = append(absent, "productId")
	}
	if body.DateToClaim == nil {
		absent = append(absent, "dateToClaim")
	}
	if body.Status == nil {
		absent = append(absent, "status")
	}
	if body.Amount == nil {
		absent = append(absent, "amount")
	}
	if len(absent) > 0 {
		missing(c, absent...)
		return
	}
	claim, ok := parseISO(*body.DateToClaim)
	if !ok {
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.products[*body.ProductID]; !found {
		// foreign key violation surfaces as a bare 500
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	created := model.NewTimestamp(s.clockFunc())
	o := model.Order{
		ID:          s.next("order"),
		ProductID:   *body.ProductID,
		DateToClaim: model.NewTimestamp(claim),
		Status:      model.OrderStatus(*body.Status),
		Amount:      decimal.NewFromFloat(*body.Amount),
		CreatedAt:   &created,
	}
	s.orders[o.ID] = o
	c.JSON(http.StatusOK, o)
}

func (s *Server) updateOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var body struct {
		DateClaimed *string `json:"dateClaimed"`
		Status      *string `json:"status"`
	}
	if !s.bind(c, &body) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, found := s.orders[id]
	if !found {
		detail(c, http.StatusNotFound, "Order not found")
		return
	}
	if body.DateClaimed != nil && *body.DateClaimed != "" {
		t, ok := parseISO(*body.DateClaimed)
		if !ok {
			c.String(http.StatusInternalServerError, "Internal Server Error")
			return
		}
		ts := model.NewTimestamp(t)
		o.DateClaimed = &ts
	}
	if body.Status != nil && *body.Status != "" {
		o.Status = model.OrderStatus(*body.Status)
	}
	s.orders[id] = o
	c.JSON(http.StatusOK, o)
}

func (s *Server) deleteOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.orders[id]; !found {
		detail(c, http.StatusNotFound, "Order not found")
		return
	}
	delete(s.orders, id)
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}

func (s *Server) listUniforms(c *gin.Context) {
	c.JSON(http.StatusOK, s.Uniforms())
}

func (s *Server) listUniformsByProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	all := s.Uniforms()
	out := make([]model.UniformVariant, 0, len(all))
	for _, v := range all {
		if v.ProductID == id {
			out = append(out, v)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) createUniform(c *gin.Context) {
	var body struct {
		ProductID *int64  `json:"productId"`
		Size      *string `json:"sizeType"`
		Gender    *string `json:"gender"`
		Type      *string `json:"type"`
		Piece     *string `json:"piece"`
		Buyer     *string `json:"buyer"`
		Quantity  *int    `json:"quantity"`
	}
	if !s.bind(c, &body) {
		return
	}
	var absent []string
	if body.ProductID == nil {
		absent = append(absent, "productId")
	}
	if body.Size == nil {
		absent = append(absent, "sizeType")
	}
	if body.Gender == nil {
		absent = append(absent, "gender")
	}
	if body.Type == nil {
		absent = append(absent, "type")
	}
	if len(absent) > 0 {
		missing(c, absent...)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.products[*body.ProductID]; !found {
		detail(c, http.StatusNotFound, "Product not found")
		return
	}
	v := model.UniformVariant{
		ID:        s.next("uniform"),
		ProductID: *body.ProductID,
		Size:      model.Size(*body.Size),
		Gender:    model.Gender(*body.Gender),
		Type:      model.UniformType(*body.Type),
		Quantity:  body.Quantity,
	}
	if body.Piece != nil {
		v.Piece = model.Piece(*body.Piece)
	}
	if body.Buyer != nil {
		v.Buyer = *body.Buyer
	}
	s.uniforms[v.ID] = v
	c.JSON(http.StatusOK, v)
}

func (s *Server) deleteUniform(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.uniforms[id]; !found {
		detail(c, http.StatusNotFound, "Uniform not found")
		return
	}
	delete(s.uniforms, id)
	c.JSON(http.StatusOK, gin.H{"message": "Uniform deleted successfully"})
}
