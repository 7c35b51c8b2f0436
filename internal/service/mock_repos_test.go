package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/melluro/repair-requests-system-2026/config"
	"github.com/melluro/repair-requests-system-2026/internal/model"
	"github.com/melluro/repair-requests-system-2026/internal/repository"
	pkgerrors "github.com/melluro/repair-requests-system-2026/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = "user-" + user.Username
	}
	if user.Role == nil {
		user.Role = roleByID(user.RoleID)
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (m *mockUserRepo) ListByRole(_ context.Context, roleID uint) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.RoleID == roleID {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].FullName < result[j].FullName })
	return result, nil
}

// roleByID 按固定字典构造角色关联
func roleByID(id uint) *model.Role {
	names := map[uint]string{
		model.RoleIDAdministrator:  model.RoleAdministrator,
		model.RoleIDOperator:       model.RoleOperator,
		model.RoleIDSpecialist:     model.RoleSpecialist,
		model.RoleIDManager:        model.RoleManager,
		model.RoleIDQualityManager: model.RoleQualityManager,
	}
	if name, ok := names[id]; ok {
		return &model.Role{ID: id, Name: name}
	}
	return nil
}

// ── Mock ClientRepository ──

type mockClientRepo struct {
	clients map[string]*model.Client // key: client_id
}

func newMockClientRepo() *mockClientRepo {
	return &mockClientRepo{clients: make(map[string]*model.Client)}
}

func (m *mockClientRepo) GetByID(_ context.Context, id string) (*model.Client, error) {
	if c, ok := m.clients[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClientRepo) GetByPhone(_ context.Context, phone string) (*model.Client, error) {
	for _, c := range m.clients {
		if c.Phone == phone {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClientRepo) List(_ context.Context) ([]model.Client, error) {
	var result []model.Client
	for _, c := range m.clients {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].FullName < result[j].FullName })
	return result, nil
}

// ── Mock RequestRepository ──

// mockRequestRepo 同时持有客户与设备表，模拟受理事务的解析/创建语义
type mockRequestRepo struct {
	requests    map[string]*model.Request
	clients     *mockClientRepo       // 共享客户表，电话为身份键
	equipment   map[string]*model.Equipment // key: serial_number
	assignments map[string][]string   // request_id → specialist_ids
	users       *mockUserRepo         // 构造 Specialists 关联用
	idCounter   int
}

func newMockRequestRepo(clients *mockClientRepo, users *mockUserRepo) *mockRequestRepo {
	return &mockRequestRepo{
		requests:    make(map[string]*model.Request),
		clients:     clients,
		equipment:   make(map[string]*model.Equipment),
		assignments: make(map[string][]string),
		users:       users,
	}
}

func (m *mockRequestRepo) CreateIntake(_ context.Context, client *model.Client, equipment *model.Equipment, req *model.Request) error {
	// 客户：电话号码为身份键
	existing, err := m.clients.GetByPhone(nil, client.Phone)
	if err == nil {
		*client = *existing
	} else {
		m.idCounter++
		client.ID = fmt.Sprintf("client-%d", m.idCounter)
		cp := *client
		m.clients.clients[client.ID] = &cp
	}

	// 设备：序列号为身份键
	if eq, ok := m.equipment[equipment.SerialNumber]; ok {
		*equipment = *eq
	} else {
		m.idCounter++
		equipment.ID = fmt.Sprintf("equip-%d", m.idCounter)
		equipment.ClientID = client.ID
		cp := *equipment
		m.equipment[equipment.SerialNumber] = &cp
	}

	m.idCounter++
	req.ID = fmt.Sprintf("req-%d", m.idCounter)
	req.ClientID = client.ID
	req.EquipmentID = equipment.ID
	m.requests[req.ID] = req
	return nil
}

func (m *mockRequestRepo) GetByID(_ context.Context, id string) (*model.Request, error) {
	req, ok := m.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m.withAssociations(req), nil
}

func (m *mockRequestRepo) List(_ context.Context, filters *repository.RequestListFilters) ([]model.Request, error) {
	var result []model.Request
	for _, req := range m.requests {
		if filters != nil && filters.StatusID != 0 && req.StatusID != filters.StatusID {
			continue
		}
		if filters != nil && filters.SpecialistID != "" && !m.assigned(req.ID, filters.SpecialistID) {
			continue
		}
		result = append(result, *m.withAssociations(req))
	}
	// 求助标记优先、创建时间倒序
	sort.Slice(result, func(i, j int) bool {
		if result[i].HelpNeeded != result[j].HelpNeeded {
			return result[i].HelpNeeded
		}
		return result[i].CreationDate.After(result[j].CreationDate)
	})
	return result, nil
}

func (m *mockRequestRepo) ListCompleted(_ context.Context) ([]model.Request, error) {
	var result []model.Request
	for _, req := range m.requests {
		if req.StatusID == model.StatusCompleted && req.CompletionDate != nil {
			result = append(result, *req)
		}
	}
	return result, nil
}

func (m *mockRequestRepo) NumberExists(_ context.Context, number string) (bool, error) {
	for _, req := range m.requests {
		if req.RequestNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRequestRepo) UpdateStatus(_ context.Context, id string, statusID uint, completion *time.Time) error {
	req, ok := m.requests[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	req.StatusID = statusID
	if completion != nil {
		req.CompletionDate = completion
	}
	return nil
}

func (m *mockRequestRepo) AdvanceStatusIf(_ context.Context, id string, fromStatusID, toStatusID uint) error {
	if req, ok := m.requests[id]; ok && req.StatusID == fromStatusID {
		req.StatusID = toStatusID
	}
	return nil
}

func (m *mockRequestRepo) AssignSpecialist(_ context.Context, requestID, specialistID string) error {
	if m.assigned(requestID, specialistID) {
		return nil // 幂等
	}
	m.assignments[requestID] = append(m.assignments[requestID], specialistID)
	return nil
}

func (m *mockRequestRepo) UpdateDeadline(_ context.Context, id string, deadline time.Time) error {
	req, ok := m.requests[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	req.DeadlineDate = &deadline
	return nil
}

func (m *mockRequestRepo) UpdateHelpNeeded(_ context.Context, id string, needed bool) error {
	req, ok := m.requests[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	req.HelpNeeded = needed
	return nil
}

func (m *mockRequestRepo) assigned(requestID, specialistID string) bool {
	for _, id := range m.assignments[requestID] {
		if id == specialistID {
			return true
		}
	}
	return false
}

// withAssociations 构造带关联的副本，模拟 Preload
func (m *mockRequestRepo) withAssociations(req *model.Request) *model.Request {
	cp := *req
	if c, ok := m.clients.clients[req.ClientID]; ok {
		cp.Client = c
	}
	for _, eq := range m.equipment {
		if eq.ID == req.EquipmentID {
			cp.Equipment = eq
			break
		}
	}
	cp.Specialists = nil
	for _, id := range m.assignments[req.ID] {
		if u, ok := m.users.users[id]; ok {
			cp.Specialists = append(cp.Specialists, *u)
		} else {
			cp.Specialists = append(cp.Specialists, model.User{ID: id})
		}
	}
	return &cp
}

// ── Mock PartRepository ──

type mockPartRepo struct {
	parts     map[string]*model.Part        // key: part_id
	usages    map[string]*model.RequestPart // key: request_id|part_id
	idCounter int
}

func newMockPartRepo() *mockPartRepo {
	return &mockPartRepo{
		parts:  make(map[string]*model.Part),
		usages: make(map[string]*model.RequestPart),
	}
}

func (m *mockPartRepo) Create(_ context.Context, part *model.Part) error {
	if part.ID == "" {
		m.idCounter++
		part.ID = fmt.Sprintf("part-%d", m.idCounter)
	}
	m.parts[part.ID] = part
	return nil
}

func (m *mockPartRepo) GetByID(_ context.Context, id string) (*model.Part, error) {
	if p, ok := m.parts[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPartRepo) GetByName(_ context.Context, name string) (*model.Part, error) {
	for _, p := range m.parts {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPartRepo) List(_ context.Context) ([]model.Part, error) {
	var result []model.Part
	for _, p := range m.parts {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// AssignToRequest 模拟事务语义：校验失败库存不变、重复领用累加用量
func (m *mockPartRepo) AssignToRequest(_ context.Context, requestID, partID string, quantity int) error {
	part, ok := m.parts[partID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if part.StockQuantity < quantity {
		return fmt.Errorf("%w: 配件 %s 现有 %d，申请 %d",
			pkgerrors.ErrInsufficientStock, part.Name, part.StockQuantity, quantity)
	}
	part.StockQuantity -= quantity

	key := requestID + "|" + partID
	if usage, ok := m.usages[key]; ok {
		usage.Quantity += quantity
		return nil
	}
	m.usages[key] = &model.RequestPart{RequestID: requestID, PartID: partID, Quantity: quantity}
	return nil
}

func (m *mockPartRepo) ListForRequest(_ context.Context, requestID string) ([]model.RequestPart, error) {
	var result []model.RequestPart
	for _, usage := range m.usages {
		if usage.RequestID == requestID {
			cp := *usage
			cp.Part = m.parts[usage.PartID]
			result = append(result, cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].PartID < result[j].PartID })
	return result, nil
}

// ── Mock CommentRepository ──

type mockCommentRepo struct {
	comments  []model.Comment
	idCounter int
}

func newMockCommentRepo() *mockCommentRepo {
	return &mockCommentRepo{}
}

func (m *mockCommentRepo) Create(_ context.Context, comment *model.Comment) error {
	m.idCounter++
	comment.ID = fmt.Sprintf("comment-%d", m.idCounter)
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	m.comments = append(m.comments, *comment)
	return nil
}

func (m *mockCommentRepo) ListByRequest(_ context.Context, requestID string) ([]model.Comment, error) {
	var result []model.Comment
	for _, c := range m.comments {
		if c.RequestID == requestID {
			result = append(result, c)
		}
	}
	return result, nil
}

// ── Mock ReviewRepository ──

type mockReviewRepo struct {
	reviews   []model.Review
	idCounter int
}

func newMockReviewRepo() *mockReviewRepo {
	return &mockReviewRepo{}
}

func (m *mockReviewRepo) Create(_ context.Context, review *model.Review) error {
	m.idCounter++
	review.ID = fmt.Sprintf("review-%d", m.idCounter)
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}
	m.reviews = append(m.reviews, *review)
	return nil
}

func (m *mockReviewRepo) ListByRequest(_ context.Context, requestID string) ([]model.Review, error) {
	var result []model.Review
	for _, r := range m.reviews {
		if r.RequestID == requestID {
			result = append(result, r)
		}
	}
	return result, nil
}

// ── 测试辅助 ──

// testRepos 聚合全部 mock，组装成可注入 Service 的 Repository
type testRepos struct {
	user    *mockUserRepo
	client  *mockClientRepo
	request *mockRequestRepo
	part    *mockPartRepo
	comment *mockCommentRepo
	review  *mockReviewRepo
	repo    *repository.Repository
}

func newTestRepos() *testRepos {
	users := newMockUserRepo()
	clients := newMockClientRepo()
	requests := newMockRequestRepo(clients, users)
	parts := newMockPartRepo()
	comments := newMockCommentRepo()
	reviews := newMockReviewRepo()
	return &testRepos{
		user:    users,
		client:  clients,
		request: requests,
		part:    parts,
		comment: comments,
		review:  reviews,
		repo: &repository.Repository{
			User:    users,
			Client:  clients,
			Request: requests,
			Part:    parts,
			Comment: comments,
			Review:  reviews,
		},
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-key-for-unit-testing-2026",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
		Request: config.RequestConfig{DeadlineDays: 7},
	}
}

// seedUser 预置一个用户（含角色关联）
func seedUser(users *mockUserRepo, id, username, password string, roleID uint) *model.User {
	user := &model.User{
		ID:        id,
		Username:  username,
		Password:  password,
		FullName:  "测试-" + username,
		RoleID:    roleID,
		Role:      roleByID(roleID),
		CreatedAt: time.Now(),
	}
	users.users[id] = user
	return user
}
