package handlers

import (
	"technest/internal/config"
	"technest/internal/repos"
	"technest/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	AuthHandler     *AuthHandler
	ProductHandler  *ProductHandler
	CartHandler     *CartHandler
	AccountHandler  *AccountHandler
	CheckoutHandler *CheckoutHandler
	UploadHandler   *UploadHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	userRepo := repos.NewUserRepo(db)
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	voucherRepo := repos.NewVoucherRepo(db)

	authSvc := services.NewAuthService(userRepo)
	catalogSvc := services.NewCatalogService(prodRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	accountSvc := services.NewAccountService(userRepo)
	voucherSvc := services.NewVoucherService(voucherRepo)
	checkoutSvc := services.NewCheckoutService(db, cartRepo, prodRepo, orderRepo, voucherRepo)

	return &Deps{
		AuthHandler:     &AuthHandler{Auth: authSvc},
		ProductHandler:  &ProductHandler{Catalog: catalogSvc},
		CartHandler:     &CartHandler{Cart: cartSvc},
		AccountHandler:  &AccountHandler{Account: accountSvc, Vouchers: voucherSvc, Orders: orderRepo},
		CheckoutHandler: &CheckoutHandler{Checkout: checkoutSvc},
		UploadHandler:   &UploadHandler{MediaDir: cfg.MediaDir},
	}
}
