package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodstore/internal/auth"
	"foodstore/internal/bootstrap"
	"foodstore/internal/config"
	"foodstore/internal/handler"
	"foodstore/internal/infra/db"
	"foodstore/internal/infra/messaging"
	infraRepo "foodstore/internal/infra/repository"
	"foodstore/internal/logger"
	"foodstore/internal/server"
	"foodstore/internal/usecase"
	"foodstore/internal/validator"

	"github.com/google/uuid"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

// 送信先を閉じられる publisher
type invoicePublisher interface {
	usecase.InvoiceEventPublisher
	Close() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	appLog := logger.New("foodstore", cfg.LogLevel, os.Stdout)
	slog.SetDefault(appLog.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLog); err != nil {
		appLog.Error("service_failed", slog.Any("error", err))
		os.Exit(1)
	}
	appLog.Info("service_stopped")
}

func run(ctx context.Context, cfg config.Config, appLog *logger.Logger) error {
	//DB接続
	gormDB, err := db.Connect(ctx, cfg, appLog.WithComponent("gorm"))
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer db.Close(gormDB)

	if err := db.Migrate(gormDB); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	roleRepo := infraRepo.NewRoleGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	categoryRepo := infraRepo.NewMenuCategoryGormRepository(gormDB)
	itemRepo := infraRepo.NewMenuItemGormRepository(gormDB)
	invoiceRepo := infraRepo.NewInvoiceGormRepository(gormDB)
	invoiceLineRepo := infraRepo.NewInvoiceLineGormRepository(gormDB)
	historyRepo := infraRepo.NewOrderHistoryGormRepository(gormDB)
	reportRepo := infraRepo.NewReportGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()

	//JWT issuer
	issuer := auth.NewJWTIssuer(cfg)

	//ロールと初期管理者
	seeder := bootstrap.NewSeeder(roleRepo, userRepo, hasher, idGen, clock, appLog.WithComponent("bootstrap"))
	if err := seeder.Run(ctx, cfg); err != nil {
		return err
	}

	//会計イベント（RabbitMQが無ければ送らない）
	var publisher invoicePublisher = messaging.NopPublisher{}
	if cfg.RabbitMQURL != "" {
		p, err := messaging.Dial(cfg.RabbitMQURL, appLog.WithComponent("messaging"))
		if err != nil {
			return fmt.Errorf("connect rabbitmq: %w", err)
		}
		publisher = p
	}
	defer publisher.Close()

	//Usecase生成
	auditUC := usecase.NewAuditUsecase(auditRepo, clock, appLog.WithComponent("audit"))
	accountUC := usecase.NewAccountUsecase(txm, userRepo, validator.NewAccountValidator(), hasher, verifier, issuer, idGen, clock, appLog.WithComponent("account"), auditUC)
	cartUC := usecase.NewCartUsecase(cartRepo, cartItemRepo, itemRepo)
	checkoutUC := usecase.NewCheckoutUsecase(cartRepo, cartItemRepo, txm, publisher, idGen, clock, appLog.WithComponent("checkout"))
	orderUC := usecase.NewOrderUsecase(invoiceRepo, invoiceLineRepo, historyRepo)
	catalogUC := usecase.NewCatalogUsecase(categoryRepo, itemRepo, idGen, auditUC)
	reportUC := usecase.NewReportUsecase(reportRepo)

	//Handler生成
	mw := handler.AuthMiddlewares{Parser: issuer, UserRepo: userRepo}

	e := server.New(cfg, appLog.WithComponent("http"))
	server.RegisterRoutes(e, mw,
		handler.NewAccountHandler(accountUC, auditUC),
		handler.NewReportHandler(reportUC),
		handler.NewCustomerHandler(cartUC, checkoutUC, orderUC, catalogUC),
		handler.NewStaffHandler(catalogUC),
	)

	//Server起動
	addr := cfg.Port
	if addr == "" {
		addr = "8080"
	}
	if addr[0] != ':' {
		addr = ":" + addr
	}
	return server.Run(ctx, e, addr, appLog.WithComponent("http"))
}
