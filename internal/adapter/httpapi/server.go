package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/example/inventory-order-service/internal/domain"
	"github.com/example/inventory-order-service/internal/usecase"
)

// Server exposes the catalog and order operations over HTTP. Every route
// sits behind bearer authentication; the resolved principal scopes all
// order reads and writes.
type Server struct {
	Router   *mux.Router
	Log      zerolog.Logger
	Resolver domain.PrincipalResolver

	placeOrder  usecase.PlaceOrder
	listOrders  usecase.ListOrders
	getOrder    usecase.GetOrder
	deleteOrder usecase.DeleteOrder

	registerProduct usecase.RegisterProduct
	getProduct      usecase.GetProduct
	listProducts    usecase.ListProducts
	updateProduct   usecase.UpdateProduct
	removeProduct   usecase.RemoveProduct
}

func NewServer(resolver domain.PrincipalResolver, catalog domain.ProductCatalog,
	ledger domain.OrderLedger, events domain.OrderEventPublisher, log zerolog.Logger) *Server {

	s := &Server{
		Router:   mux.NewRouter(),
		Log:      log,
		Resolver: resolver,

		placeOrder:  usecase.PlaceOrder{Catalog: catalog, Ledger: ledger, Events: events, Log: log},
		listOrders:  usecase.ListOrders{Ledger: ledger, Catalog: catalog},
		getOrder:    usecase.GetOrder{Ledger: ledger, Catalog: catalog},
		deleteOrder: usecase.DeleteOrder{Ledger: ledger},

		registerProduct: usecase.RegisterProduct{Catalog: catalog},
		getProduct:      usecase.GetProduct{Catalog: catalog},
		listProducts:    usecase.ListProducts{Catalog: catalog},
		updateProduct:   usecase.UpdateProduct{Catalog: catalog},
		removeProduct:   usecase.RemoveProduct{Catalog: catalog},
	}

	s.Router.Use(s.logRequests)

	api := s.Router.PathPrefix("/").Subrouter()
	api.Use(s.authenticate)

	api.HandleFunc("/products", s.handleRegisterProduct).Methods(http.MethodPost)
	api.HandleFunc("/products", s.handleListProducts).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", s.handleGetProduct).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", s.handleUpdateProduct).Methods(http.MethodPut)
	api.HandleFunc("/products/{id}", s.handleRemoveProduct).Methods(http.MethodDelete)

	api.HandleFunc("/orders", s.handlePlaceOrder).Methods(http.MethodPost)
	api.HandleFunc("/orders", s.handleListOrders).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}", s.handleGetOrder).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}", s.handleDeleteOrder).Methods(http.MethodDelete)

	return s
}

type registerProductRequest struct {
	Name          string          `json:"name"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	StockQuantity int             `json:"stock_quantity"`
}

func (s *Server) handleRegisterProduct(w http.ResponseWriter, r *http.Request) {
	var req registerProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, badRequestError("invalid request body"))
		return
	}
	p, err := s.registerProduct.Execute(r.Context(), req.Name, req.UnitPrice, req.StockQuantity)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.listProducts.Execute(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, products)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.getProduct.Execute(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

type updateProductRequest struct {
	Name          *string          `json:"name"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
	StockQuantity *int             `json:"stock_quantity"`
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, badRequestError("invalid request body"))
		return
	}
	p, err := s.updateProduct.Execute(r.Context(), mux.Vars(r)["id"], domain.ProductPatch{
		Name:          req.Name,
		UnitPrice:     req.UnitPrice,
		StockQuantity: req.StockQuantity,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleRemoveProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.removeProduct.Execute(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type placeOrderRequest struct {
	LineItems []domain.LineItem `json:"line_items"`
}

func (s *Server) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, badRequestError("invalid request body"))
		return
	}
	o, err := s.placeOrder.Execute(r.Context(), principalFrom(r.Context()), req.LineItems)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, o)
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	views, err := s.listOrders.Execute(r.Context(), principalFrom(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	v, err := s.getOrder.Execute(r.Context(), principalFrom(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := s.deleteOrder.Execute(r.Context(), principalFrom(r.Context()), mux.Vars(r)["id"]); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	ProductID string `json:"product_id,omitempty"`
	Available *int   `json:"available,omitempty"`
	Requested *int   `json:"requested,omitempty"`
}

type badRequestError string

func (e badRequestError) Error() string { return string(e) }

// writeError maps domain errors onto the HTTP surface. Conflicts and
// validation failures carry enough detail for the caller to adjust the
// request; anything unexpected is a plain 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var (
		insufficient *domain.InsufficientStockError
		notFound     *domain.ProductNotFoundError
		badQuantity  *domain.InvalidQuantityError
		inconsistent *domain.StockInconsistencyError
		badRequest   badRequestError
	)
	switch {
	case errors.As(err, &inconsistent):
		s.Log.Error().Err(err).Msg("stock inconsistency reported to client")
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal", Message: "internal error"})
	case errors.As(err, &insufficient):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:     "insufficient_stock",
			Message:   insufficient.Error(),
			ProductID: insufficient.ProductID,
			Available: &insufficient.Available,
			Requested: &insufficient.Requested,
		})
	case errors.As(err, &notFound):
		s.writeJSON(w, http.StatusNotFound, errorResponse{
			Error:     "product_not_found",
			Message:   notFound.Error(),
			ProductID: notFound.ProductID,
		})
	case errors.As(err, &badQuantity):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:     "invalid_quantity",
			Message:   badQuantity.Error(),
			ProductID: badQuantity.ProductID,
		})
	case errors.Is(err, domain.ErrNoItems):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "no_items", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicateName):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "duplicate_name", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidStock), errors.Is(err, domain.ErrValidation):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_request", Message: err.Error()})
	case errors.As(err, &badRequest):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_request", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "not_found", Message: "not found"})
	default:
		s.Log.Error().Err(err).Msg("request failed")
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal", Message: "internal error"})
	}
}
