package main

import (
	"log"
	"time"

	"syrupstore/internal/config"
	"syrupstore/internal/domain/model"
	"syrupstore/internal/handler"
	"syrupstore/internal/infra/db"
	infraRepo "syrupstore/internal/infra/repository"
	"syrupstore/internal/mail"
	"syrupstore/internal/receipt"
	"syrupstore/internal/server"
	"syrupstore/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(userID int64, isStaff bool, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":   userID,
		"staff": isStaff,
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func main() {
	//.envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		log.Fatal(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//アクセストークン
	issuer := &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 24 * time.Hour,
	}

	//Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, issuer, 12)
	productUC := usecase.NewProductUsecase(productRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, cartRepo, productRepo)
	orderUC := usecase.NewOrderUsecase(txManager)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager)

	//メール通知とレシートサービスクライアント
	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.FromEmail)
	notifier := mail.NewNotifier(mailer, cfg.StoreName, cfg.AdminEmail)
	receiptClient := receipt.NewClient(cfg.ReceiptServiceURL)

	//Handler生成
	authH := handler.NewAuthHandler(authUC)
	productH := handler.NewProductHandler(productUC)
	shippingH := handler.NewShippingHandler()
	cartH := handler.NewCartHandler(cartUC)
	orderH := handler.NewOrderHandler(orderUC, authUC, notifier, receiptClient)
	adminProductH := handler.NewAdminProductHandler(productUC)
	adminOrderH := handler.NewAdminOrderHandler(adminOrderUC, authUC, notifier)

	//Server起動
	e := server.New()
	server.RegisterRoutes(e, cfg, authH, productH, shippingH, cartH, orderH, adminProductH, adminOrderH)

	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := server.Start(e, addr); err != nil {
		log.Fatal(err)
	}
}
