package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/config"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/handler"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/middleware"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/pricing"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/repository"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/service"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository / Engine ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	insumoRepo := repository.NewInsumoRepository(db)
	produtoRepo := repository.NewProdutoRepository(db)
	receitaRepo := repository.NewReceitaRepository(db)
	comboRepo := repository.NewComboRepository(db)
	complementoRepo := repository.NewComplementoRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)

	// ── Pricing engine over the catalog snapshot ─────────────────────────────
	engine := pricing.New(repository.NewCatalogoReader(db))

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	insumoSvc := service.NewInsumoService(insumoRepo, dispatcher)
	produtoSvc := service.NewProdutoService(produtoRepo, dispatcher)
	receitaSvc := service.NewReceitaService(receitaRepo, insumoRepo, produtoRepo, comboRepo, dispatcher)
	comboSvc := service.NewComboService(comboRepo, produtoRepo, receitaRepo, dispatcher)
	complementoSvc := service.NewComplementoService(complementoRepo, produtoRepo, receitaRepo, comboRepo, engine)
	pedidoSvc := service.NewPedidoService(pedidoRepo, produtoRepo, receitaRepo, comboRepo, complementoRepo, engine, dispatcher)
	precificacaoSvc := service.NewPrecificacaoService(engine, produtoRepo, receitaRepo, comboRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	insumosH := handler.NewInsumosHandler(insumoSvc)
	produtosH := handler.NewProdutosHandler(produtoSvc)
	receitasH := handler.NewReceitasHandler(receitaSvc)
	combosH := handler.NewCombosHandler(comboSvc)
	complementosH := handler.NewComplementosHandler(complementoSvc)
	pedidosH := handler.NewPedidosHandler(pedidoSvc)
	precificacaoH := handler.NewPrecificacaoHandler(precificacaoSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Public menu price check — no auth required
	r.GET("/v1/precos/:tipo/:id", precificacaoH.Preco)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Perfis: atendente, gerente, administrador — declared per-endpoint
		leitura := middleware.RequireRole("atendente", "gerente", "administrador")
		gestao := middleware.RequireRole("gerente", "administrador")
		admin := middleware.RequireRole("administrador")

		v1.POST("/pedidos", leitura, pedidosH.Registrar)
		v1.GET("/pedidos", leitura, pedidosH.Listar)
		v1.GET("/pedidos/:id", leitura, pedidosH.Buscar)
		v1.DELETE("/pedidos/:id", gestao, pedidosH.Cancelar)

		v1.GET("/custos/:tipo/:id", gestao, precificacaoH.Custo)

		v1.GET("/insumos", leitura, insumosH.Listar)
		v1.GET("/insumos/:id", leitura, insumosH.Buscar)
		insumos := v1.Group("/insumos", gestao)
		{
			insumos.POST("", insumosH.Criar)
			insumos.PUT("/:id", insumosH.Atualizar)
			insumos.DELETE("/:id", insumosH.Desativar)
		}

		v1.GET("/produtos", leitura, produtosH.Listar)
		v1.GET("/produtos/:id", leitura, produtosH.Buscar)
		produtos := v1.Group("/produtos", gestao)
		{
			produtos.POST("", produtosH.Criar)
			produtos.PUT("/:id", produtosH.Atualizar)
			produtos.DELETE("/:id", produtosH.Desativar)
		}

		v1.GET("/receitas", leitura, receitasH.Listar)
		v1.GET("/receitas/:id", leitura, receitasH.Buscar)
		receitas := v1.Group("/receitas", gestao)
		{
			receitas.POST("", receitasH.Criar)
			receitas.PUT("/:id", receitasH.Atualizar)
			receitas.DELETE("/:id", receitasH.Desativar)
			receitas.POST("/:id/componentes", receitasH.AddComponente)
			receitas.DELETE("/:id/componentes/:componente_id", receitasH.RemoveComponente)
		}

		v1.GET("/combos", leitura, combosH.Listar)
		v1.GET("/combos/:id", leitura, combosH.Buscar)
		combos := v1.Group("/combos", gestao)
		{
			combos.POST("", combosH.Criar)
			combos.PUT("/:id", combosH.Atualizar)
			combos.DELETE("/:id", combosH.Desativar)
			combos.POST("/:id/itens", combosH.AddItem)
			combos.DELETE("/:id/itens/:item_id", combosH.RemoveItem)
			combos.POST("/:id/secoes", combosH.AddSecao)
			combos.DELETE("/:id/secoes/:secao_id", combosH.RemoveSecao)
			combos.POST("/:id/secoes/:secao_id/itens", combosH.AddSecaoItem)
			combos.DELETE("/:id/secoes/:secao_id/itens/:item_id", combosH.RemoveSecaoItem)
		}

		v1.GET("/complementos", leitura, complementosH.Listar)
		v1.GET("/complementos/:id", leitura, complementosH.Buscar)
		v1.GET("/vinculos/:tipo/:id", leitura, complementosH.VinculosDoPai)
		complementos := v1.Group("/complementos", gestao)
		{
			complementos.POST("", complementosH.Criar)
			complementos.PUT("/:id", complementosH.Atualizar)
			complementos.DELETE("/:id", complementosH.Desativar)
			complementos.POST("/:id/itens", complementosH.AddItem)
			complementos.DELETE("/:id/itens/:item_id", complementosH.RemoveItem)
			complementos.POST("/vinculos", complementosH.Vincular)
			complementos.DELETE("/vinculos/:vinculo_id", complementosH.Desvincular)
		}

		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", usuariosH.Criar)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Atualizar)
			usuarios.DELETE("/:id", usuariosH.Desativar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
