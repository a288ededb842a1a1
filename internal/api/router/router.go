package router

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "bistroboss/docs" // registra a especificação OpenAPI gerada
	"bistroboss/internal/api/cart"
	"bistroboss/internal/api/menu"
	"bistroboss/internal/api/payment"
	"bistroboss/internal/api/stats"
	"bistroboss/internal/api/user"
	"bistroboss/internal/pkg/logger"
	"bistroboss/internal/pkg/middleware"
)

// LivenessMessage é o texto servido em GET /.
const LivenessMessage = "boss is sitting"

// Handlers reúne os Handlers já inicializados por injeção de dependências.
type Handlers struct {
	User    *user.Handler
	Menu    *menu.Handler
	Cart    *cart.Handler
	Payment *payment.Handler
	Stats   *stats.Handler
}

// Gates são as dependências dos middlewares de acesso.
type Gates struct {
	Verifier    middleware.TokenVerifier
	Identity    middleware.IdentityLookup
	ServiceName string
}

// NewRouter configura e retorna o roteador HTTP principal.
func NewRouter(h Handlers, g Gates, log logger.Logger) http.Handler {
	mux := http.NewServeMux()

	auth := middleware.Authenticate(g.Verifier, log)
	admin := middleware.RequireAdmin(g.Identity, log)

	// --- Health Check ---
	mux.HandleFunc("GET /{$}", LivenessHandler)

	// --- Identidade ---
	mux.HandleFunc("POST /jwt", h.User.IssueTokenHandler)
	mux.HandleFunc("GET /users", middleware.Chain(h.User.ListUsersHandler, auth, admin))
	mux.HandleFunc("POST /users", h.User.RegisterUserHandler)
	mux.HandleFunc("GET /users/admin/{email}", middleware.Chain(h.User.CheckAdminHandler, auth))
	// TODO: exigir auth+admin aqui assim que o painel web enviar o token nesta chamada.
	mux.HandleFunc("PATCH /users/admin/{id}", h.User.PromoteUserHandler)

	// --- Cardápio e avaliações ---
	mux.HandleFunc("GET /menu", h.Menu.ListMenuHandler)
	mux.HandleFunc("POST /menu", middleware.Chain(h.Menu.AddMenuItemHandler, auth, admin))
	mux.HandleFunc("DELETE /menu/{id}", middleware.Chain(h.Menu.DeleteMenuItemHandler, auth, admin))
	mux.HandleFunc("GET /reviews", h.Menu.ListReviewsHandler)

	// --- Carrinho ---
	mux.HandleFunc("GET /carts", middleware.Chain(h.Cart.ListCartHandler, auth))
	mux.HandleFunc("POST /carts", h.Cart.AddCartItemHandler)
	mux.HandleFunc("DELETE /carts/{id}", h.Cart.RemoveCartItemHandler)

	// --- Pagamentos ---
	mux.HandleFunc("POST /create-payment-intent", middleware.Chain(h.Payment.CreatePaymentIntentHandler, auth))
	mux.HandleFunc("POST /payments", middleware.Chain(h.Payment.CommitPaymentHandler, auth))

	// --- Admin ---
	mux.HandleFunc("GET /admin-stats", middleware.Chain(h.Stats.AdminStatsHandler, auth, admin))

	// --- Documentação ---
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	var handler http.Handler = mux
	handler = middleware.CORS(handler)
	if g.ServiceName != "" {
		handler = middleware.Tracing(g.ServiceName)(handler)
	}
	return handler
}

// LivenessHandler responde que o serviço está de pé.
func LivenessHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(LivenessMessage))
}
