package main

import (
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	"app/internal/infra/payment"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"
	auth "app/internal/usecase/auth_usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
)

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func newJWTIssuer(secret string) *jwtIssuer {
	//アクセストークン
	return &jwtIssuer{
		secret:    []byte(secret),
		accessTTL: 15 * time.Minute,
	}
}

func (i *jwtIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	//.envがあれば読む（無くても環境変数だけで動く）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		panic(err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.BalanceTransaction{},
		&model.Category{},
		&model.Product{},
		&model.PriceHistory{},
		&model.ProductChangeLog{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.PaymentMock{},
		&model.Address{},
		&model.GarageVehicle{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成

	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	addressRepo := infraRepo.NewAddressGormRepository(gormDB)
	garageRepo := infraRepo.NewGarageGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	clock := auth.SystemClock{}

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()

	//JWT issuer
	issuer := newJWTIssuer(cfg.JWTSecret)

	//外部決済プロバイダ（設定があるときだけ）
	var provider usecase.PaymentProvider
	if cfg.UseRealPayments {
		provider = payment.NewYooKassaClient(cfg.YooKassaShopID, cfg.YooKassaSecretKey)
	}
	returnURL := cfg.SiteBaseURL + "/orders"

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(userRepo, hasher, clock)
	loginUC := auth.NewLoginUsecase(userRepo, verifier, issuer, clock)
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo, txManager)
	cartUC := usecase.NewCartUsecase(cartRepo, cartItemRepo, productRepo)
	orderUC := usecase.NewOrderUsecase(txManager, provider, returnURL)
	paymentMockUC := usecase.NewPaymentMockUsecase(txManager)
	webhookUC := usecase.NewPaymentWebhookUsecase(txManager)
	accountUC := usecase.NewAccountUsecase(userRepo, txManager)
	addressUC := usecase.NewAddressUsecase(addressRepo)
	garageUC := usecase.NewGarageUsecase(garageRepo)

	//Handler生成
	handlers := server.Handlers{
		Auth:           handler.NewAuthHandler(registerUC, loginUC),
		Product:        handler.NewProductHandler(productUC),
		AdminProduct:   handler.NewAdminProductHandler(productUC),
		Cart:           handler.NewCartHandler(cartUC),
		Order:          handler.NewOrderHandler(orderUC),
		PaymentMock:    handler.NewPaymentMockHandler(paymentMockUC),
		PaymentWebhook: handler.NewPaymentWebhookHandler(webhookUC),
		Account:        handler.NewAccountHandler(accountUC),
		Address:        handler.NewAddressHandler(addressUC),
		Garage:         handler.NewGarageHandler(garageUC),
	}

	//Server起動
	e := server.New(cfg, handlers)
	if err := server.Start(e, ":"+cfg.Port); err != nil {
		panic(err)
	}
}
