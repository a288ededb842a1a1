package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// Nossos pacotes de infraestrutura e utilitários
	"bistroboss/config"
	"bistroboss/internal/pkg/cache"
	"bistroboss/internal/pkg/database"
	"bistroboss/internal/pkg/gateway"
	"bistroboss/internal/pkg/logger"
	"bistroboss/internal/pkg/mq"
	"bistroboss/internal/pkg/obs"
	"bistroboss/internal/pkg/token"

	// Camadas para Injeção de Dependências
	"bistroboss/internal/api/cart"
	"bistroboss/internal/api/menu"
	"bistroboss/internal/api/payment"
	"bistroboss/internal/api/router"
	"bistroboss/internal/api/stats"
	"bistroboss/internal/api/user"
	"bistroboss/internal/repository/cartrepo"
	"bistroboss/internal/repository/menurepo"
	"bistroboss/internal/repository/paymentrepo"
	"bistroboss/internal/repository/reviewrepo"
	"bistroboss/internal/repository/statsrepo"
	"bistroboss/internal/repository/userrepo"
	"bistroboss/internal/service/cartservice"
	"bistroboss/internal/service/menuservice"
	"bistroboss/internal/service/paymentservice"
	"bistroboss/internal/service/statsservice"
	"bistroboss/internal/service/userservice"
)

// @title BistroBoss API
// @version 1.0
// @description API do restaurante: cardápio, carrinho, pagamentos e painel administrativo.
// @host localhost:5000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Informe "Bearer <token>".
func main() {
	// 1. Configuração e Inicialização
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Configuração inválida: %v", err)
	}
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Configurações carregadas.", map[string]interface{}{"env": cfg.Environment})

	shutdownTracer, err := obs.InitTracer(context.Background(), cfg.ServiceName, cfg.OTLPEndpoint, cfg.Environment)
	if err != nil {
		log.Fatal("Falha ao iniciar o tracing.", err)
	}

	// 2. Conexão com Recursos de Infraestrutura

	// A. Banco de Dados (PostgreSQL)
	db, err := database.NewPostgresDB(cfg.DSN())
	if err != nil {
		log.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	log.Info("Conexão PostgreSQL estabelecida.", nil)

	// B. Cache (Redis), opcional
	var cacheClient cache.Client = cache.Noop{}
	if cfg.RedisAddr != "" {
		redisClient, err := cache.NewRedisClient(cfg.RedisAddr)
		if err != nil {
			log.Warn("Redis indisponível; o cache será ignorado até voltar.", map[string]interface{}{"error": err.Error()})
		} else {
			log.Info("Conexão Redis estabelecida.", nil)
		}
		cacheClient = redisClient
	}

	// C. Eventos (RabbitMQ), opcional
	var publisher paymentservice.EventPublisher
	if cfg.AMQPURL != "" {
		p, err := mq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatal("Falha ao conectar ao RabbitMQ.", err)
		}
		defer p.Close()
		publisher = p
		log.Info("Publicador de eventos pronto.", map[string]interface{}{"exchange": cfg.AMQPExchange})
	}

	// 3. INJEÇÃO DE DEPENDÊNCIAS
	// Ordem: Repository -> Service -> Handler
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)

	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, log)
	menuRepo := menurepo.NewMenuRepository(db, cacheClient, cfg.DBTimeout, cfg.MenuCacheTTL, log)
	reviewRepo := reviewrepo.NewReviewRepository(db, cacheClient, cfg.DBTimeout, cfg.MenuCacheTTL, log)
	cartRepo := cartrepo.NewCartRepository(db, cfg.DBTimeout, log)
	paymentRepo := paymentrepo.NewPaymentRepository(db, cfg.DBTimeout, log)
	statsRepo := statsrepo.NewStatsRepository(db, cfg.DBTimeout, log)
	log.Debug("Repositórios inicializados.", nil)

	userSvc := userservice.NewService(userRepo, tokenSvc, log)
	menuSvc := menuservice.NewService(menuRepo, reviewRepo, log)
	cartSvc := cartservice.NewService(cartRepo, log)
	paymentSvc := paymentservice.NewService(paymentRepo, gateway.NewStripeGateway(cfg.PaymentSecretKey), publisher,
		paymentservice.Options{Currency: cfg.PaymentCurrency, VerifyCharge: cfg.PaymentVerifyCharge}, log)
	statsSvc := statsservice.NewService(statsRepo, log)
	log.Debug("Serviços inicializados.", nil)

	handlers := router.Handlers{
		User:    user.NewHandler(userSvc, log),
		Menu:    menu.NewHandler(menuSvc, log),
		Cart:    cart.NewHandler(cartSvc, log),
		Payment: payment.NewHandler(paymentSvc, log),
		Stats:   stats.NewHandler(statsSvc, log),
	}
	gates := router.Gates{
		Verifier:    tokenSvc,
		Identity:    userRepo,
		ServiceName: cfg.ServiceName,
	}

	// 4. Configuração e Início do Roteador/Servidor
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.NewRouter(handlers, gates, log),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		log.Info("Servidor BistroBoss ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(fmt.Sprintf("Servidor falhou na porta %s.", cfg.Port), err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}
	if err := shutdownTracer(ctx); err != nil {
		log.Error("Falha ao encerrar o tracing.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}
