package main

import (
	"time"

	"github.com/TuanDoan14112003/storebuilder-backend/internal/config"
	"github.com/TuanDoan14112003/storebuilder-backend/internal/domain/model"
	"github.com/TuanDoan14112003/storebuilder-backend/internal/handler"
	"github.com/TuanDoan14112003/storebuilder-backend/internal/infra/db"
	infraRepo "github.com/TuanDoan14112003/storebuilder-backend/internal/infra/repository"
	"github.com/TuanDoan14112003/storebuilder-backend/internal/server"
	"github.com/TuanDoan14112003/storebuilder-backend/internal/usecase"
	auth "github.com/TuanDoan14112003/storebuilder-backend/internal/usecase/auth_usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

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

func (i *jwtIssuer) Issue(userID int64, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	//.envは無くてもいい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	var logger *zap.Logger
	if cfg.GoEnv == "prod" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Store{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	storeRepo := infraRepo.NewStoreGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	clock := &realClock{}

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()

	//JWT issuer
	issuer := newJWTIssuer(cfg.JWTSecret)

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(userRepo, hasher, clock)
	loginUC := auth.NewLoginUsecase(userRepo, verifier, issuer, clock)
	storeUC := usecase.NewStoreUsecase(storeRepo, productRepo, userRepo)
	productUC := usecase.NewProductUsecase(storeRepo, productRepo)
	cartUC := usecase.NewCartUsecase(txManager, cartRepo, cartItemRepo, productRepo)
	checkoutUC := usecase.NewCheckoutUsecase(txManager, cartRepo, cartItemRepo)
	orderUC := usecase.NewOrderUsecase(txManager)

	//Handler生成
	handlers := server.Handlers{
		Auth:    handler.NewAuthHandler(registerUC, loginUC, cartUC),
		Store:   handler.NewStoreHandler(storeUC, productUC, orderUC),
		Product: handler.NewProductHandler(productUC),
		Cart:    handler.NewCartHandler(cartUC, checkoutUC),
		Order:   handler.NewOrderHandler(orderUC, checkoutUC),
	}

	//Server起動
	e := server.New(cfg, logger)
	server.RegisterRoutes(e, cfg, handlers)

	logger.Info("listening", zap.String("port", cfg.Port))
	if err := server.Start(e, cfg.Port); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}
