package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tillpoint/internal/errorcode"
	"tillpoint/internal/models"
	"tillpoint/internal/printqueue"
	"tillpoint/internal/service"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseClaims   service.TokenClaims
	parseErr      error

	lastSignUp      service.SignUpParams
	lastGenUsername string
	lastGenPassword string
	lastParseToken  string
}

func (m *mockAuth) SignUp(ctx context.Context, p service.SignUpParams) (int, error) {
	m.lastSignUp = p
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (service.TokenClaims, error) {
	m.lastParseToken = token
	return m.parseClaims, m.parseErr
}

type mockBusinesses struct {
	createID   int
	createErr  error
	business   *models.Business
	getErr     error
	resolved   *models.Business
	resolveErr error
	updateErr  error

	lastCreate    service.BusinessParams
	lastSubdomain string
}

func (m *mockBusinesses) Create(ctx context.Context, p service.BusinessParams) (int, error) {
	m.lastCreate = p
	return m.createID, m.createErr
}
func (m *mockBusinesses) Get(ctx context.Context, id int) (*models.Business, error) {
	return m.business, m.getErr
}
func (m *mockBusinesses) ResolveSubdomain(ctx context.Context, sub string) (*models.Business, error) {
	m.lastSubdomain = sub
	return m.resolved, m.resolveErr
}
func (m *mockBusinesses) Update(ctx context.Context, b models.Business) error {
	return m.updateErr
}

type mockCatalog struct {
	createCategoryID int
	categories       []models.Category
	createProductID  int
	product          *models.Product
	products         []models.Product
	err              error

	lastProduct service.ProductParams
	deleteCalls int
}

func (m *mockCatalog) CreateCategory(ctx context.Context, businessID int, name string) (int, error) {
	return m.createCategoryID, m.err
}
func (m *mockCatalog) ListCategories(ctx context.Context, businessID int) ([]models.Category, error) {
	return m.categories, m.err
}
func (m *mockCatalog) DeleteCategory(ctx context.Context, businessID, id int) error {
	m.deleteCalls++
	return m.err
}
func (m *mockCatalog) CreateProduct(ctx context.Context, businessID int, p service.ProductParams) (int, error) {
	m.lastProduct = p
	return m.createProductID, m.err
}
func (m *mockCatalog) GetProduct(ctx context.Context, businessID, id int) (*models.Product, error) {
	return m.product, m.err
}
func (m *mockCatalog) ListProducts(ctx context.Context, businessID int) ([]models.Product, error) {
	return m.products, m.err
}
func (m *mockCatalog) UpdateProduct(ctx context.Context, businessID, id int, p service.ProductParams) error {
	m.lastProduct = p
	return m.err
}
func (m *mockCatalog) DeleteProduct(ctx context.Context, businessID, id int) error {
	m.deleteCalls++
	return m.err
}

type mockCustomers struct {
	createID int
	customer *models.Customer
	list     []models.Customer
	err      error
}

func (m *mockCustomers) Create(ctx context.Context, businessID int, p service.CustomerParams) (int, error) {
	return m.createID, m.err
}
func (m *mockCustomers) Get(ctx context.Context, businessID, id int) (*models.Customer, error) {
	return m.customer, m.err
}
func (m *mockCustomers) List(ctx context.Context, businessID int) ([]models.Customer, error) {
	return m.list, m.err
}
func (m *mockCustomers) Update(ctx context.Context, businessID, id int, p service.CustomerParams) error {
	return m.err
}
func (m *mockCustomers) Delete(ctx context.Context, businessID, id int) error {
	return m.err
}

type mockSales struct {
	sale      *models.Sale
	recordErr error
	getSale   *models.Sale
	getErr    error
	list      []models.Sale
	listErr   error

	lastRecord service.SaleParams
	lastFrom   time.Time
	lastTo     time.Time
}

func (m *mockSales) Record(ctx context.Context, businessID, cashierID int, p service.SaleParams) (*models.Sale, error) {
	m.lastRecord = p
	return m.sale, m.recordErr
}
func (m *mockSales) Get(ctx context.Context, businessID, id int) (*models.Sale, error) {
	return m.getSale, m.getErr
}
func (m *mockSales) List(ctx context.Context, businessID int, from, to time.Time) ([]models.Sale, error) {
	m.lastFrom = from
	m.lastTo = to
	return m.list, m.listErr
}

type mockInvoices struct {
	invoice   *models.Invoice
	createErr error
	list      []models.Invoice
	err       error
	payErr    error
}

func (m *mockInvoices) CreateFromSale(ctx context.Context, businessID, saleID int, dueAt time.Time) (*models.Invoice, error) {
	return m.invoice, m.createErr
}
func (m *mockInvoices) Get(ctx context.Context, businessID, id int) (*models.Invoice, error) {
	return m.invoice, m.err
}
func (m *mockInvoices) List(ctx context.Context, businessID int) ([]models.Invoice, error) {
	return m.list, m.err
}
func (m *mockInvoices) MarkPaid(ctx context.Context, businessID, id int) error {
	return m.payErr
}

type mockReports struct {
	summary service.SalesSummary
	err     error
}

func (m *mockReports) SalesSummary(ctx context.Context, businessID int, from, to time.Time) (service.SalesSummary, error) {
	return m.summary, m.err
}

type mockReceipts struct {
	html string
	err  error

	lastSaleID int
}

func (m *mockReceipts) RenderSale(ctx context.Context, businessID, saleID int) (string, error) {
	m.lastSaleID = saleID
	return m.html, m.err
}

// instantExecutor completes every print immediately.
type instantExecutor struct{}

func (instantExecutor) Print(job *printqueue.Job) error { return nil }

// ---- Shared Test Helpers ----

// newTestRouter wires a full router around mocked services. The error
// registry persists under registryPath so tests stay isolated.
func newTestRouter(s *service.Service, registryPath string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	reg := errorcode.New(registryPath, nil)
	q := printqueue.New(instantExecutor{}, nil)
	h := NewHandler(s, reg, q, nil)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
